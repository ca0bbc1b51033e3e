package types

// Word is a single transcribed word with timing. Produced by the ASR
// adapter; sequences are time-ordered and non-overlapping by contract.
type Word struct {
	Text       string  `json:"text"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Confidence float64 `json:"confidence"`
	Speaker    string  `json:"speaker,omitempty"`
}

// DiarizationSpan is a speaker-attributed time span over the audio track.
type DiarizationSpan struct {
	Speaker string  `json:"speaker"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Text    string  `json:"text"`
}

// TranscriptionResult is what the ASR port returns for one media file.
type TranscriptionResult struct {
	Text        string            `json:"text"`
	Language    string            `json:"language,omitempty"`
	Words       []Word            `json:"words"`
	Diarization []DiarizationSpan `json:"diarization,omitempty"`
}

// Segment is a sentence-like span of contiguous words. Built fresh per
// ranking call, never persisted.
type Segment struct {
	Start   float64
	End     float64
	Text    string
	Speaker string
}

func (s Segment) Duration() float64 { return s.End - s.Start }

// Features maps the seven fixed feature keys to values in [0,1].
type Features map[string]float64

// SegmentRef records a source segment that overlaps a returned clip.
type SegmentRef struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Text    string  `json:"text"`
	Speaker string  `json:"speaker,omitempty"`
}

// ClipScore is a scored single-segment clip candidate.
type ClipScore struct {
	Start    float64
	End      float64
	Duration float64
	Score    float64
	Features Features
	Segments []SegmentRef
	Reason   string
	Text     string
}

// ClipSegment is one piece of a multi-segment clip, with a 1-based
// position in the final cut.
type ClipSegment struct {
	Start    float64
	End      float64
	Duration float64
	Score    float64
	Text     string
	Order    int
}

// MultiSegmentClip stitches several non-contiguous high-value segments
// into one composite clip. Segments are ordered by time ascending.
type MultiSegmentClip struct {
	Segments      []ClipSegment
	TotalDuration float64
	CombinedScore float64
	Features      Features
	Reason        string
	FullText      string
}

// Manifest describes one full run's delivery artifacts.
type Manifest struct {
	Input string         `json:"input"`
	Clips []ManifestClip `json:"clips"`
}

// ManifestClip is a single rendered clip entry in the manifest.
type ManifestClip struct {
	ID        string   `json:"id"`
	Kind      string   `json:"kind"` // "highlight" or "pro"
	StartSec  float64  `json:"start_sec"`
	EndSec    float64  `json:"end_sec"`
	Score     float64  `json:"score"`
	Reason    string   `json:"reason"`
	Text      string   `json:"text"`
	Strategy  string   `json:"strategy,omitempty"`
	File      string   `json:"file"`
	Subtitles string   `json:"subtitles,omitempty"`
	Segments  []MPiece `json:"segments,omitempty"`
}

// MPiece is the manifest view of one ClipSegment.
type MPiece struct {
	Order    int     `json:"order"`
	StartSec float64 `json:"start_sec"`
	EndSec   float64 `json:"end_sec"`
}
