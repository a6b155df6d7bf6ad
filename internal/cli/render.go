// Package cli renders command results for a terminal.
package cli

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/at-ishikawa/simplevoice/internal/converter"
	"github.com/at-ishikawa/simplevoice/internal/dictionary"
	"github.com/at-ishikawa/simplevoice/internal/voice"
	"github.com/fatih/color"
)

type Renderer struct {
	out     io.Writer
	bold    *color.Color
	warning *color.Color
	success *color.Color
	failure *color.Color
}

func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{
		out:     out,
		bold:    color.New(color.Bold),
		warning: color.New(color.FgYellow, color.Bold),
		success: color.New(color.FgGreen),
		failure: color.New(color.FgRed),
	}
}

// Conversion prints the converted text with unconverted words highlighted,
// followed by the list of those words.
func (r *Renderer) Conversion(result converter.Result) {
	unconverted := make(map[string]struct{}, len(result.Unconverted))
	for _, word := range result.Unconverted {
		unconverted[word] = struct{}{}
	}

	for _, token := range converter.Tokenize(result.Text) {
		if _, ok := unconverted[strings.ToLower(token.Text)]; ok {
			_, _ = r.warning.Fprint(r.out, token.Text)
			continue
		}
		_, _ = fmt.Fprint(r.out, token.Text)
	}
	_, _ = fmt.Fprintln(r.out)

	if len(result.Unconverted) > 0 {
		_, _ = r.warning.Fprintf(r.out, "未変換の英単語: %s\n", strings.Join(result.Unconverted, ", "))
	}
}

// Status prints a tool message, colored by whether it reports success.
func (r *Renderer) Status(message string) {
	switch {
	case strings.HasPrefix(message, "✓"):
		_, _ = r.success.Fprintln(r.out, message)
	case strings.HasPrefix(message, "エラー"), strings.HasPrefix(message, "Error"), strings.HasPrefix(message, "✗"):
		_, _ = r.failure.Fprintln(r.out, message)
	default:
		_, _ = fmt.Fprintln(r.out, message)
	}
}

// Entries prints the dictionary as an aligned table.
func (r *Renderer) Entries(entries []dictionary.Entry) {
	if len(entries) == 0 {
		_, _ = fmt.Fprintln(r.out, "辞書は空です")
		return
	}

	width := 0
	for _, entry := range entries {
		width = max(width, utf8.RuneCountInString(entry.Key))
	}
	for _, entry := range entries {
		_, _ = r.bold.Fprintf(r.out, "%-*s", width, entry.Key)
		_, _ = fmt.Fprintf(r.out, "  %s\n", entry.Reading)
	}
	_, _ = fmt.Fprintf(r.out, "\n合計: %d エントリ\n", len(entries))
}

// Models prints the voice catalogue and marks the selected model.
func (r *Renderer) Models(models []voice.Model, selected string) {
	width := 0
	for _, model := range models {
		width = max(width, utf8.RuneCountInString(model.Name))
	}
	for _, model := range models {
		marker := " "
		if model.Name == selected {
			marker = "*"
		}
		_, _ = fmt.Fprintf(r.out, "%s ", marker)
		_, _ = r.bold.Fprintf(r.out, "%-*s", width, model.Name)
		_, _ = fmt.Fprintf(r.out, "  %s\n", model.Description)
	}
}

// Import prints the counts of a dictionary import.
func (r *Renderer) Import(source string, result dictionary.ImportResult) {
	_, _ = r.success.Fprintf(r.out, "✓ %s を取り込みました\n", source)
	_, _ = fmt.Fprintf(r.out, "追加: %d件, 更新: %d件, スキップ: %d件\n", result.Added, result.Updated, result.Skipped)
}
