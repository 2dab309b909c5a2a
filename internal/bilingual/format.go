// Package bilingual pairs parallel-language prayer texts for display.
package bilingual

import (
	"strings"

	"github.com/verte-zerg/lumen/internal/model"
)

// Separator joins the two halves of a paired line. Presentation code splits on
// it with SplitPair; nothing else should interpret it.
const Separator = "|||"

// LineKind classifies a formatted output line.
type LineKind int

// Line kinds.
const (
	Single LineKind = iota
	Paired
	Blank
)

// FormattedLine is one rendering-ready output line.
type FormattedLine struct {
	Kind   LineKind
	First  string
	Second string
}

// String renders the line in its joined textual form.
func (l FormattedLine) String() string {
	switch l.Kind {
	case Paired:
		return l.First + Separator + l.Second
	case Blank:
		return ""
	default:
		return l.First
	}
}

// Format renders text according to mode as a single newline-joined block.
//
// Paired modes interleave the two languages line by line. When the line
// counts differ, no pairing is attempted and the first language block is
// followed by a blank line and the full second language block.
func Format(text model.BilingualText, mode model.DisplayMode) string {
	switch mode {
	case model.SecondaryOnly:
		return text.Secondary
	case model.PrimaryThenSecondary:
		return interleave(text.Primary, text.Secondary)
	case model.SecondaryThenPrimary:
		return interleave(text.Secondary, text.Primary)
	default:
		return text.Primary
	}
}

// FormatLines returns the structured form of Format: joining the String of
// each line with "\n" reproduces Format exactly. Single-language modes and
// the mismatch fallback yield Single lines carrying the raw text, and Blank
// for empty ones.
func FormatLines(text model.BilingualText, mode model.DisplayMode) []FormattedLine {
	var first, second string
	switch mode {
	case model.PrimaryThenSecondary:
		first, second = text.Primary, text.Secondary
	case model.SecondaryThenPrimary:
		first, second = text.Secondary, text.Primary
	default:
		return singleLines(Format(text, mode))
	}
	fLines := strings.Split(first, "\n")
	gLines := strings.Split(second, "\n")
	if len(fLines) != len(gLines) {
		return singleLines(first + "\n\n" + second)
	}
	return pairLines(fLines, gLines)
}

func interleave(first, second string) string {
	fLines := strings.Split(first, "\n")
	gLines := strings.Split(second, "\n")
	if len(fLines) != len(gLines) {
		return first + "\n\n" + second
	}
	lines := pairLines(fLines, gLines)
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = line.String()
	}
	return strings.Join(out, "\n")
}

func pairLines(fLines, gLines []string) []FormattedLine {
	out := make([]FormattedLine, 0, len(fLines))
	for i := range fLines {
		f := strings.TrimSpace(fLines[i])
		g := strings.TrimSpace(gLines[i])
		switch {
		case f == "" && g == "":
			out = append(out, FormattedLine{Kind: Blank})
		case f == "":
			// An empty first-language line suppresses its counterpart.
			continue
		case g == "":
			out = append(out, FormattedLine{Kind: Single, First: f})
		default:
			out = append(out, FormattedLine{Kind: Paired, First: f, Second: g})
		}
	}
	return out
}

func singleLines(block string) []FormattedLine {
	if block == "" {
		return nil
	}
	raw := strings.Split(block, "\n")
	out := make([]FormattedLine, 0, len(raw))
	for _, line := range raw {
		if line == "" {
			out = append(out, FormattedLine{Kind: Blank})
			continue
		}
		out = append(out, FormattedLine{Kind: Single, First: line})
	}
	return out
}

// SplitPair splits a formatted line on Separator. paired is false when the
// line carries no separator, in which case first holds the whole line.
func SplitPair(line string) (first, second string, paired bool) {
	first, second, paired = strings.Cut(line, Separator)
	return first, second, paired
}
