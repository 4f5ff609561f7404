// Package ui renders analysis results for the terminal: a plain-text
// annotated listing and an interactive Bubble Tea browser.
package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"rill/internal/hints"
	"rill/internal/source"
)

var (
	typeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	paramStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	chainStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	gutter     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

type insertion struct {
	offset uint32
	order  int // original hint index, keeps splices stable
	text   string
}

// Annotate splices hint labels into the file text: binding types
// render as ': T' after the binding, parameter names as 'name: '
// before the argument, and chaining types as a trailing marker after
// the chained expression. Lines get a width-aligned number gutter.
func Annotate(file *source.File, hintList []hints.Hint, colored bool) string {
	inserts := make([]insertion, 0, len(hintList))
	for i, h := range hintList {
		switch h.Kind {
		case hints.TypeHint:
			inserts = append(inserts, insertion{
				offset: h.Range.End,
				order:  i,
				text:   style(typeStyle, ": "+h.Label, colored),
			})
		case hints.ParameterHint:
			inserts = append(inserts, insertion{
				offset: h.Range.Start,
				order:  i,
				text:   style(paramStyle, h.Label+": ", colored),
			})
		case hints.ChainingHint:
			inserts = append(inserts, insertion{
				offset: h.Range.End,
				order:  i,
				text:   style(chainStyle, " ‹"+h.Label+"›", colored),
			})
		}
	}
	sort.SliceStable(inserts, func(i, j int) bool {
		if inserts[i].offset != inserts[j].offset {
			return inserts[i].offset < inserts[j].offset
		}
		return inserts[i].order < inserts[j].order
	})

	var b strings.Builder
	content := string(file.Content)
	prev := 0
	for _, ins := range inserts {
		off := int(ins.offset)
		if off < prev || off > len(content) {
			continue
		}
		b.WriteString(content[prev:off])
		b.WriteString(ins.text)
		prev = off
	}
	b.WriteString(content[prev:])

	return numberLines(b.String(), colored)
}

func numberLines(text string, colored bool) string {
	lines := strings.Split(text, "\n")
	width := runewidth.StringWidth(fmt.Sprint(len(lines)))
	var b strings.Builder
	for i, line := range lines {
		if i == len(lines)-1 && line == "" {
			break
		}
		num := fmt.Sprintf("%*d │ ", width, i+1)
		b.WriteString(style(gutter, num, colored))
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

func style(s lipgloss.Style, text string, colored bool) string {
	if !colored {
		return text
	}
	return s.Render(text)
}

// HintLine formats one hint as 'path:line:col kind label' for the
// plain listing output.
func HintLine(file *source.File, h hints.Hint) string {
	lc := file.LineColOf(h.Range.Start)
	return fmt.Sprintf("%s:%d:%d\t%s\t%s", file.Path, lc.Line, lc.Col, h.Kind, h.Label)
}
