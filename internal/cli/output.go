package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/hueforge/internal/colour"
	"github.com/jmylchreest/hueforge/internal/config"
	"github.com/jmylchreest/hueforge/internal/generate"
)

const swatchWidth = 9

// printer writes command results in the configured format.
type printer struct {
	w       io.Writer
	format  string
	preview bool
	style   *lipgloss.Renderer
}

func (a *app) printer(w io.Writer) *printer {
	p := &printer{
		w:       w,
		format:  a.cfg.Output.Format,
		preview: previewEnabled(a.cfg.Output.Preview, w),
	}
	if p.preview {
		p.style = lipgloss.NewRenderer(w)
		p.style.SetColorProfile(termenv.TrueColor)
	}
	return p
}

// previewEnabled resolves the preview mode. Auto only previews when w is
// a terminal.
func previewEnabled(mode string, w io.Writer) bool {
	switch mode {
	case config.PreviewAlways:
		return true
	case config.PreviewNever:
		return false
	}
	if file, ok := w.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}

// swatch renders hex as a solid block labelled in its best text colour.
func (p *printer) swatch(hex string) string {
	c, err := colour.ParseHex(hex)
	if err != nil {
		return hex
	}
	return p.style.NewStyle().
		Background(lipgloss.Color(c.Hex())).
		Foreground(lipgloss.Color(colour.BestTextOn(c))).
		Width(swatchWidth).
		Align(lipgloss.Center).
		Render(c.Hex())
}

// palette prints an ordered palette map.
func (p *printer) palette(pm *colour.PaletteMap) error {
	switch p.format {
	case config.FormatJSON:
		data, err := pm.MarshalJSON()
		if err != nil {
			return fmt.Errorf("failed to convert to JSON: %w", err)
		}
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "", "  "); err != nil {
			return fmt.Errorf("failed to convert to JSON: %w", err)
		}
		buf.WriteByte('\n')
		_, err = p.w.Write(buf.Bytes())
		return err
	case config.FormatYAML:
		return p.yaml(pm)
	}

	width := 0
	for _, key := range pm.Keys() {
		width = max(width, len(key))
	}
	for key, colours := range pm.All() {
		cells := colours
		if p.preview {
			cells = make([]string, len(colours))
			for i, hex := range colours {
				cells[i] = p.swatch(hex)
			}
		}
		if pm.Len() == 1 {
			fmt.Fprintln(p.w, strings.Join(cells, "\n"))
			continue
		}
		fmt.Fprintf(p.w, "%-*s  %s\n", width, key, strings.Join(cells, " "))
	}
	return nil
}

// value prints a structured result. Hex output falls back to the table
// produced by text.
func (p *printer) value(v any, text func() string) error {
	switch p.format {
	case config.FormatJSON:
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case config.FormatYAML:
		return p.yaml(v)
	}
	_, err := io.WriteString(p.w, text())
	return err
}

func (p *printer) yaml(v any) error {
	enc := yaml.NewEncoder(p.w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to convert to YAML: %w", err)
	}
	return enc.Close()
}

// roles prints a 60/30/10 role set.
func (p *printer) roles(rs generate.RoleSet) error {
	return p.value(rs, func() string {
		table := NewTable([]string{"ROLE", "HEX", "L", "C", "H", "DERIVED"})
		for _, col := range []int{2, 3, 4} {
			table.AlignRight(col)
		}
		for _, r := range rs.Roles() {
			hex := r.Hex
			if p.preview {
				hex = p.swatch(hex)
			}
			derived := ""
			if r.Derived {
				derived = "yes"
			}
			table.AddRow([]string{
				string(r.Role),
				hex,
				fmt.Sprintf("%.3f", r.L),
				fmt.Sprintf("%.3f", r.C),
				fmt.Sprintf("%.1f", r.H),
				derived,
			})
		}
		return table.Render()
	})
}
