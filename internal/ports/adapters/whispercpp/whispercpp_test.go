package whispercpp

import (
	"encoding/json"
	"math"
	"testing"
)

func parseOutput(t *testing.T, raw string) whisperOutput {
	t.Helper()
	var out whisperOutput
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		t.Fatalf("unmarshal fixture: %v", err)
	}
	return out
}

func TestFlatten_WordTimestamps(t *testing.T) {
	raw := parseOutput(t, `{
		"language": "en",
		"segments": [
			{"start": 0, "end": 1.2, "text": " Hello world. ", "words": [
				{"start": 0, "end": 0.5, "word": " Hello", "p": 0.98},
				{"start": 0.5, "end": 1.2, "word": "world.", "p": 0.91},
				{"start": 1.2, "end": 1.2, "word": "", "p": 0}
			]}
		]
	}`)

	res := flatten(raw)
	if res.Language != "en" {
		t.Fatalf("language %q", res.Language)
	}
	if res.Text != "Hello world." {
		t.Fatalf("text %q", res.Text)
	}
	if len(res.Words) != 2 {
		t.Fatalf("expected 2 words (empty and zero-length dropped), got %d", len(res.Words))
	}
	if res.Words[0].Text != "Hello" || res.Words[0].Confidence != 0.98 {
		t.Fatalf("unexpected first word: %+v", res.Words[0])
	}
	if res.Words[0].Speaker != "Speaker 1" {
		t.Fatalf("unexpected speaker: %q", res.Words[0].Speaker)
	}
	if len(res.Diarization) != 1 {
		t.Fatalf("expected 1 diarization span, got %d", len(res.Diarization))
	}
}

func TestFlatten_SynthesizesWordTimeline(t *testing.T) {
	raw := parseOutput(t, `{
		"segments": [
			{"start": 10, "end": 14, "text": "one two three four"}
		]
	}`)

	res := flatten(raw)
	if len(res.Words) != 4 {
		t.Fatalf("expected 4 synthesized words, got %d", len(res.Words))
	}
	if math.Abs(res.Words[0].Start-10) > 1e-9 || math.Abs(res.Words[0].End-11) > 1e-9 {
		t.Fatalf("unexpected first word times: %+v", res.Words[0])
	}
	if math.Abs(res.Words[3].End-14) > 1e-9 {
		t.Fatalf("expected last word to end at segment end, got %+v", res.Words[3])
	}
}

func TestFlatten_AlternatesSpeakersOnGaps(t *testing.T) {
	raw := parseOutput(t, `{
		"segments": [
			{"start": 0, "end": 2, "text": "first voice"},
			{"start": 2.5, "end": 4, "text": "still first"},
			{"start": 10, "end": 12, "text": "second voice"}
		]
	}`)

	res := flatten(raw)
	if len(res.Diarization) != 3 {
		t.Fatalf("expected 3 spans, got %d", len(res.Diarization))
	}
	if res.Diarization[0].Speaker != "Speaker 1" || res.Diarization[1].Speaker != "Speaker 1" {
		t.Fatalf("short gap should keep the speaker: %+v", res.Diarization[:2])
	}
	if res.Diarization[2].Speaker != "Speaker 2" {
		t.Fatalf("long gap should switch the speaker: %+v", res.Diarization[2])
	}
}

func TestFlatten_SkipsEmptySegments(t *testing.T) {
	raw := parseOutput(t, `{
		"segments": [
			{"start": 0, "end": 1, "text": "   "},
			{"start": 1, "end": 2, "text": "kept"}
		]
	}`)

	res := flatten(raw)
	if res.Text != "kept" {
		t.Fatalf("text %q", res.Text)
	}
	if len(res.Diarization) != 1 {
		t.Fatalf("expected 1 span, got %d", len(res.Diarization))
	}
}
