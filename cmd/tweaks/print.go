package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/evan-idocoding/tweaks/store"
)

type printer struct {
	w    io.Writer
	json bool

	path     func(string, ...any) string
	value    func(string, ...any) string
	override func(string, ...any) string
	dim      func(string, ...any) string
}

func newPrinter(cfg *MainConfig, w io.Writer) *printer {
	p := &printer{
		w:        w,
		json:     cfg.JSON,
		path:     fmt.Sprintf,
		value:    fmt.Sprintf,
		override: fmt.Sprintf,
		dim:      fmt.Sprintf,
	}
	if cfg.colors(w) {
		p.path = forced(color.RGB(196, 96, 16))
		p.value = forced(color.RGB(128, 216, 236))
		p.override = forced(color.RGB(255, 0, 196))
		p.dim = forced(color.New(color.FgBlue))
	}
	return p
}

// forced colors regardless of color.NoColor, which only looks at stdout.
func forced(c *color.Color) func(string, ...any) string {
	c.EnableColor()
	return c.SprintfFunc()
}

func (p *printer) items(items []store.Item) error {
	if p.json {
		return p.encode(store.Snapshot{Items: items})
	}
	for _, it := range items {
		val := p.value("%s", it.Value)
		if it.Source == store.SourceOverride {
			val = p.override("%s", it.Value)
		}
		_, err := fmt.Fprintf(p.w, "%s / %s / %s = %s %s\n",
			p.path("%s", it.Category), p.path("%s", it.Collection), p.path("%s", it.Name),
			val, p.dim("(%s, default %s)", it.Kind, it.DefaultValue))
		if err != nil {
			return err
		}
	}
	return nil
}

func (p *printer) detail(it store.Item) error {
	if p.json {
		return p.encode(it)
	}
	rows := [][2]string{
		{"id", it.Identifier},
		{"kind", it.Kind},
		{"value", it.Value},
		{"default", it.DefaultValue},
		{"source", it.Source.String()},
		{"possible", it.PossibleValues},
		{"min", it.Minimum},
		{"max", it.Maximum},
		{"step", it.Step},
		{"precision", it.Precision},
	}
	for _, row := range rows {
		if row[1] == "" {
			continue
		}
		if _, err := fmt.Fprintf(p.w, "%s\t%s\n", p.dim("%s", row[0]), p.value("%s", row[1])); err != nil {
			return err
		}
	}
	return nil
}

func (p *printer) encode(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
