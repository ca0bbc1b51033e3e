package subtitles

import (
	"fmt"
	"strings"

	"github.com/Gautamrajanand/clipforge/internal/types"
)

// RenderClipASS builds an ASS subtitle document for the clip window
// [start, end]. Word-level timestamps drive karaoke highlighting; when the
// window has no words the whole text is shown as a single plain event.
func RenderClipASS(words []types.Word, fallbackText string, start, end float64) string {
	clipWords := collectWords(words, start, end)
	if len(clipWords) == 0 {
		return renderPlain(fallbackText, end-start)
	}
	return renderKaraoke(packWords(clipWords))
}

type wword struct {
	Start float64
	End   float64
	Text  string
}

type line struct {
	Start float64
	End   float64
	Words []wword
}

func collectWords(words []types.Word, start, end float64) []wword {
	var out []wword
	for _, w := range words {
		if w.End <= start || w.Start >= end {
			continue
		}
		text := strings.TrimSpace(w.Text)
		if text == "" {
			continue
		}
		ws := w.Start
		we := w.End
		if ws < start {
			ws = start
		}
		if we > end {
			we = end
		}
		// Event times are clip-local: each clip ships its own subtitle
		// file, not a full-timeline one.
		out = append(out, wword{Start: ws - start, End: we - start, Text: sanitizeASS(text)})
	}
	return out
}

func packWords(words []wword) []line {
	var out []line
	cur := line{Start: words[0].Start}
	// Hard budgets trade exact transcript grouping for consistently
	// readable chunks on vertical-video layouts.
	charBudget := 42
	wordBudget := 9
	curLen := 0
	for i, w := range words {
		wl := len([]rune(w.Text))
		nextLen := curLen
		if curLen > 0 {
			nextLen++
		}
		nextLen += wl
		if len(cur.Words) >= wordBudget || nextLen > charBudget {
			cur.End = cur.Words[len(cur.Words)-1].End
			out = append(out, cur)
			cur = line{Start: w.Start}
			curLen = 0
		}
		cur.Words = append(cur.Words, w)
		if curLen > 0 {
			curLen++
		}
		curLen += wl
		if i == len(words)-1 {
			cur.End = w.End
			out = append(out, cur)
		}
	}
	return out
}

func renderKaraoke(lines []line) string {
	var b strings.Builder
	b.WriteString(assHeader())
	b.WriteString("\n[Events]\n")
	b.WriteString("Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n")
	for _, ln := range lines {
		b.WriteString("Dialogue: 0,")
		b.WriteString(assTime(ln.Start))
		b.WriteString(",")
		b.WriteString(assTime(ln.End))
		b.WriteString(",Clip,,0,0,0,,")
		for _, w := range ln.Words {
			durCS := int((w.End - w.Start) * 100)
			if durCS < 1 {
				durCS = 1
			}
			b.WriteString(fmt.Sprintf("{\\k%d}%s ", durCS, w.Text))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderPlain(text string, dur float64) string {
	var b strings.Builder
	b.WriteString(assHeader())
	b.WriteString("\n[Events]\n")
	b.WriteString("Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n")
	b.WriteString("Dialogue: 0,0:00:00.00,")
	b.WriteString(assTime(dur))
	b.WriteString(",Clip,,0,0,0,,")
	b.WriteString(sanitizeASS(text))
	b.WriteString("\n")
	return b.String()
}

func assHeader() string {
	return strings.TrimSpace(`
[Script Info]
ScriptType: v4.00+
PlayResX: 1080
PlayResY: 1920
ScaledBorderAndShadow: yes

[V4+ Styles]
Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding
Style: Clip, Inter, 78, &H00FFFFFF, &H00FFD200, &H00000000, &H64000000, 1,0,0,0,100,100,0,0,1,6,2,2, 80,80,85,1
`)
}

func assTime(sec float64) string {
	if sec < 0 {
		sec = 0
	}
	totalCS := int(sec*100 + 0.5)
	hs := totalCS / 360000
	totalCS -= hs * 360000
	ms := totalCS / 6000
	totalCS -= ms * 6000
	s := totalCS / 100
	cs := totalCS % 100
	return fmt.Sprintf("%d:%02d:%02d.%02d", hs, ms, s, cs)
}

func sanitizeASS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "{", "(")
	s = strings.ReplaceAll(s, "}", ")")
	return strings.TrimSpace(s)
}
