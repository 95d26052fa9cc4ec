package classify

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Diff file labels.
const (
	ReferenceLabel = "reference"
	ResultLabel    = "result"
)

// UnifiedDiff renders a context-free unified diff between the expected
// ("reference") and actual ("result") texts, both split on "\n". Only
// changed lines appear: each hunk lists removed lines with "-" then added
// lines with "+". Every output line ends in a newline. Equal texts give "".
func UnifiedDiff(expected, actual string) string {
	if expected == actual {
		return ""
	}

	a := strings.Split(expected, "\n")
	b := strings.Split(actual, "\n")

	enc := newLineEncoder()
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMainRunes(enc.encode(a), enc.encode(b), false)

	var sb strings.Builder
	sb.WriteString("--- " + ReferenceLabel + "\n")
	sb.WriteString("+++ " + ResultLabel + "\n")

	var h *hunk
	ai, bi := 0, 0
	for _, d := range diffs {
		lines := enc.decode(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			h.writeTo(&sb)
			h = nil
			ai += len(lines)
			bi += len(lines)
		case diffmatchpatch.DiffDelete:
			if h == nil {
				h = &hunk{aStart: ai, bStart: bi}
			}
			h.removed = append(h.removed, lines...)
			ai += len(lines)
		case diffmatchpatch.DiffInsert:
			if h == nil {
				h = &hunk{aStart: ai, bStart: bi}
			}
			h.added = append(h.added, lines...)
			bi += len(lines)
		}
	}
	h.writeTo(&sb)

	return sb.String()
}

// hunk is a maximal run of changed lines between two equal regions.
type hunk struct {
	aStart, bStart int
	removed, added []string
}

func (h *hunk) writeTo(sb *strings.Builder) {
	if h == nil {
		return
	}
	fmt.Fprintf(sb, "@@ -%s +%s @@\n", formatRange(h.aStart, len(h.removed)), formatRange(h.bStart, len(h.added)))
	for _, line := range h.removed {
		sb.WriteString("-" + line + "\n")
	}
	for _, line := range h.added {
		sb.WriteString("+" + line + "\n")
	}
}

// formatRange renders a hunk range: 1-based start, with the length omitted
// when it is 1 and the start pointing at the preceding line when it is 0.
func formatRange(start, length int) string {
	beginning := start + 1
	switch length {
	case 1:
		return strconv.Itoa(beginning)
	case 0:
		beginning--
	}
	return fmt.Sprintf("%d,%d", beginning, length)
}

// lineEncoder maps each distinct line to a single rune so the character
// diff in diffmatchpatch becomes a line diff.
type lineEncoder struct {
	index map[string]rune
	lines []string
}

func newLineEncoder() *lineEncoder {
	return &lineEncoder{index: make(map[string]rune)}
}

func (e *lineEncoder) encode(lines []string) []rune {
	runes := make([]rune, len(lines))
	for i, line := range lines {
		r, ok := e.index[line]
		if !ok {
			r = indexToRune(len(e.lines))
			e.index[line] = r
			e.lines = append(e.lines, line)
		}
		runes[i] = r
	}
	return runes
}

func (e *lineEncoder) decode(text string) []string {
	runes := []rune(text)
	lines := make([]string, len(runes))
	for i, r := range runes {
		lines[i] = e.lines[runeToIndex(r)]
	}
	return lines
}

// Runes start at 1 and skip the surrogate block so that every code point
// survives the []rune to string round trip inside diffmatchpatch.
const (
	surrogateMin = 0xD800
	surrogateLen = 0x800
)

func indexToRune(i int) rune {
	r := rune(i + 1)
	if r >= surrogateMin {
		r += surrogateLen
	}
	return r
}

func runeToIndex(r rune) int {
	if r >= surrogateMin+surrogateLen {
		r -= surrogateLen
	}
	return int(r) - 1
}
