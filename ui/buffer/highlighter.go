package buffer

import (
	"sort"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

type Colorscheme map[Syntax]tcell.Style

// Gets the tcell.Style from the Colorscheme map for the given Syntax.
// If the Syntax cannot be found in the map, either the `Default` Syntax
// is used, or `tcell.StyleDefault` is returned if the Default is not assigned.
func (c *Colorscheme) GetStyle(s Syntax) tcell.Style {
	if c != nil {
		if val, ok := (*c)[s]; ok {
			return val // Try to return the requested value
		} else if s != Default {
			if val, ok := (*c)[Default]; ok {
				return val // Use default colorscheme value, instead
			}
		}
	}

	return tcell.StyleDefault // No value for Default; use default style.
}

// A Match colors the runes of a line from Col up to, but not including, EndCol.
type Match struct {
	Col    int
	EndCol int
	Syntax Syntax
}

type candidate struct {
	start, end int // Bytes of the line
	rule       int
}

// HighlightLine returns the matches of `lang` on a single line of text, sorted
// by column. Matches never overlap: scanning left to right, the earliest match
// wins and everything it covers is skipped. A rule with a capture group only
// covers its first group.
func HighlightLine(lang *Language, line []byte) []Match {
	if lang == nil || len(line) == 0 {
		return nil
	}

	var cands []candidate
	for i, rule := range lang.Rules {
		for _, loc := range rule.Pattern.FindAllSubmatchIndex(line, -1) {
			c := candidate{loc[0], loc[1], i}
			if len(loc) >= 4 && loc[2] >= 0 {
				c.start, c.end = loc[2], loc[3]
			}
			if c.end > c.start {
				cands = append(cands, c)
			}
		}
	}

	sort.SliceStable(cands, func(a, b int) bool {
		if cands[a].start != cands[b].start {
			return cands[a].start < cands[b].start
		}
		return cands[a].rule < cands[b].rule
	})

	var matches []Match
	covered := 0
	for _, c := range cands {
		if c.start < covered {
			continue
		}
		covered = c.end
		matches = append(matches, Match{
			Col:    utf8.RuneCount(line[:c.start]),
			EndCol: utf8.RuneCount(line[:c.end]),
			Syntax: lang.Rules[c.rule].Syntax,
		})
	}
	return matches
}

// A Highlighter can answer how to color any part of a provided Buffer. Lines are
// highlighted lazily: edits invalidate lines, and drawing updates the invalidated
// lines that are in view.
type Highlighter struct {
	Buffer      Buffer
	Language    *Language
	Colorscheme *Colorscheme

	lineMatches [][]Match // nil entries are invalidated
}

func NewHighlighter(buffer Buffer, lang *Language, colorscheme *Colorscheme) *Highlighter {
	return &Highlighter{
		Buffer:      buffer,
		Language:    lang,
		Colorscheme: colorscheme,
		lineMatches: make([][]Match, buffer.Lines()),
	}
}

// sync throws away every cached line when the number of lines in the buffer changed.
func (h *Highlighter) sync() {
	if lines := h.Buffer.Lines(); len(h.lineMatches) != lines {
		h.lineMatches = make([][]Match, lines)
	}
}

// UpdateLines forces the highlighting matches for lines between startLine to
// endLine, inclusively, to be updated.
func (h *Highlighter) UpdateLines(startLine, endLine int) {
	h.sync()
	for i := Max(startLine, 0); i <= endLine && i < len(h.lineMatches); i++ {
		matches := HighlightLine(h.Language, h.Buffer.Line(i))
		if matches == nil {
			matches = make([]Match, 0)
		}
		h.lineMatches[i] = matches
	}
}

// UpdateInvalidatedLines only updates the highlighting for lines that are invalidated
// between lines startLine and endLine, inclusively.
func (h *Highlighter) UpdateInvalidatedLines(startLine, endLine int) {
	h.sync()
	for i := Max(startLine, 0); i <= endLine && i < len(h.lineMatches); i++ {
		if h.lineMatches[i] == nil {
			h.UpdateLines(i, i)
		}
	}
}

func (h *Highlighter) InvalidateLines(startLine, endLine int) {
	for i := Max(startLine, 0); i <= endLine && i < len(h.lineMatches); i++ {
		h.lineMatches[i] = nil
	}
}

func (h *Highlighter) GetLineMatches(line int) []Match {
	if line < 0 || line >= len(h.lineMatches) {
		return nil
	}
	return h.lineMatches[line]
}

// SyntaxAt returns the Syntax of the rune at line, col, using the cached matches.
func (h *Highlighter) SyntaxAt(line, col int) Syntax {
	for _, m := range h.GetLineMatches(line) {
		if col < m.Col {
			break
		}
		if col < m.EndCol {
			return m.Syntax
		}
	}
	return Default
}

func (h *Highlighter) GetStyle(s Syntax) tcell.Style {
	return h.Colorscheme.GetStyle(s)
}
