package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/okian/aura/internal/adapters/render/css"
	"github.com/okian/aura/internal/domain/model"
)

// Output formats.
const (
	formatSummary = "summary"
	formatJSON    = "json"
	formatCSS     = "css"
)

// ErrFormat reports an unsupported --output value.
var ErrFormat = errors.New("unsupported output format")

func checkFormat(f string) error {
	switch f {
	case formatSummary, formatJSON, formatCSS:
		return nil
	default:
		return fmt.Errorf("%w: %q (valid: summary, json, css)", ErrFormat, f)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeRendering prints r in the requested format.
func writeRendering(w io.Writer, r model.Rendering, format string) error {
	switch format {
	case formatJSON:
		return writeJSON(w, r)
	case formatCSS:
		_, err := fmt.Fprintf(w, "%s\n\n%s\n", css.Render(r.Descriptor).Rule(".aura"), css.Keyframes)
		return err
	}

	d := r.Descriptor
	outline := string(d.Outline.Kind)
	if d.Outline.Sides > 0 {
		outline += " (" + strconv.Itoa(d.Outline.Sides) + " sides)"
	}
	if d.Outline.Star != nil {
		outline += " (" + strconv.Itoa(d.Outline.Star.Points) + " points)"
	}

	t := NewTable([]string{"FIELD", "VALUE"})
	if r.Location != nil {
		t.AddRow([]string{"Location", r.Location.Label()})
	}
	mode := d.Mode.String()
	if r.RequestedMode != d.Mode {
		mode += " (via " + r.RequestedMode.String() + ")"
	}
	t.AddRow([]string{"Mode", mode})
	t.AddRow([]string{"Seed", strconv.FormatInt(r.Seed, 10)})
	t.AddRow([]string{"Weather", r.Severity.Label})
	t.AddRow([]string{"Severity", fmt.Sprintf("%.0f%%", r.Severity.Score*100)})
	t.AddRow([]string{"Temperature", num(r.Weather.Temperature) + " °C"})
	t.AddRow([]string{"Wind", num(r.Weather.WindSpeed) + " km/h"})
	t.AddRow([]string{"Cloud cover", num(r.Weather.CloudCover) + " %"})
	t.AddRow([]string{"Outline", outline})
	t.AddRow([]string{"Layers", strconv.Itoa(len(d.Layers))})
	t.AddRow([]string{"Base colour", css.BaseColor(d.Layers)})
	t.AddRow([]string{"Opacity", num(d.Opacity)})
	t.AddRow([]string{"Pulse", num(d.AnimationPeriod) + " s"})
	_, err := fmt.Fprint(w, t.Render())
	return err
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
