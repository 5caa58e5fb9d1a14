package lipgloss

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/thermo"
	"github.com/fwojciec/thermo/catalog"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

const (
	undefined = "n/a"
	gap       = "  "
	lineWidth = 78
)

// Renderer writes styled results to w. Colors are used only when w is a
// terminal that supports them.
type Renderer struct {
	w      io.Writer
	styles Styles
}

// New creates a Renderer writing to w.
func New(w io.Writer, theme thermo.Theme) *Renderer {
	return &Renderer{w: w, styles: NewStyles(lipgloss.NewRenderer(w), theme)}
}

// Properties renders the result of a point query.
func (r *Renderer) Properties(title string, p thermo.Properties) error {
	return r.print(r.heading(title), r.table([]row{
		{"Temperature", general(p.Temperature), "K"},
		{"Pressure", general(p.Pressure), "kPa"},
		{"Density", general(p.Density), "mol/dm³"},
		{"Enthalpy", general(p.Enthalpy), "J/mol"},
		{"Entropy", general(p.Entropy), "J/(mol·K)"},
		{"Quality", general(p.Quality), ""},
		{"Cp", general(p.Cp), "J/(mol·K)"},
		{"Cv", general(p.Cv), "J/(mol·K)"},
		{"Speed of sound", general(p.SoundSpeed), "m/s"},
	}))
}

// Info renders reference properties.
func (r *Renderer) Info(title string, info thermo.FluidInfo) error {
	var tpT, tpP *float64
	if info.TriplePoint != nil {
		tpT, tpP = info.TriplePoint.Temperature, info.TriplePoint.Pressure
	}
	return r.print(r.heading(title), r.table([]row{
		{"Safety class", text(info.SafetyClass), ""},
		{"GWP", exact(info.GWP), ""},
		{"ODP", exact(info.ODP), ""},
		{"Critical temperature", exact(info.CriticalTemperature), "K"},
		{"Normal boiling point", exact(info.NormalBoilingPoint), "K"},
		{"CAS number", text(info.CAS), ""},
		{"Triple point T", exact(tpT), "K"},
		{"Triple point P", exact(tpP), "kPa"},
		{"Molar mass", exact(info.MolarMass), "g/mol"},
		{"Adiabatic index", exact(info.AdiabaticIndex), ""},
	}))
}

// Dome renders both saturation branches side by side, followed by the
// critical point.
func (r *Renderer) Dome(title string, d thermo.Dome) error {
	s := r.styles
	header := []string{"liquid P [kPa]", "liquid H [J/mol]", "vapor P [kPa]", "vapor H [J/mol]"}
	n := max(len(d.Liquid), len(d.Vapor))
	cells := make([][]string, n)
	for i := range n {
		cells[i] = []string{"", "", "", ""}
		if i < len(d.Liquid) {
			cells[i][0] = fixed(d.Liquid[i].Pressure)
			cells[i][1] = fixed(d.Liquid[i].Enthalpy)
		}
		if i < len(d.Vapor) {
			cells[i][2] = fixed(d.Vapor[i].Pressure)
			cells[i][3] = fixed(d.Vapor[i].Enthalpy)
		}
	}
	widths := make([]int, len(header))
	for c, h := range header {
		widths[c] = runewidth.StringWidth(h)
		for _, line := range cells {
			widths[c] = max(widths[c], runewidth.StringWidth(line[c]))
		}
	}
	colStyle := []lipgloss.Style{s.Liquid, s.Liquid, s.Vapor, s.Vapor}

	var b strings.Builder
	for c, h := range header {
		if c > 0 {
			b.WriteString(gap)
		}
		b.WriteString(s.Label.Render(runewidth.FillLeft(h, widths[c])))
	}
	for _, line := range cells {
		b.WriteString("\n")
		for c, cell := range line {
			if c > 0 {
				b.WriteString(gap)
			}
			b.WriteString(colStyle[c].Render(runewidth.FillLeft(cell, widths[c])))
		}
	}
	crit := fmt.Sprintf("critical point: T %s K, P %s kPa, H %s J/mol",
		fixed(d.Critical.Temperature), fixed(d.Critical.Pressure), fixed(d.Critical.Enthalpy))
	footer := fmt.Sprintf("%d liquid, %d vapor points", len(d.Liquid), len(d.Vapor))
	return r.print(r.heading(title), strings.TrimRight(b.String(), " "), s.Critical.Render(crit), s.Muted.Render(footer))
}

// Catalog renders the available fluids and mixtures.
func (r *Renderer) Catalog(c catalog.Catalog) error {
	return r.print(
		r.heading(fmt.Sprintf("Fluids (%d)", len(c.Fluids))), columns(c.Fluids),
		r.heading(fmt.Sprintf("Mixtures (%d)", len(c.Mixtures))), columns(c.Mixtures),
	)
}

// Error renders err.
func (r *Renderer) Error(err error) error {
	return r.print(r.styles.Error.Render("error: " + err.Error()))
}

func (r *Renderer) print(blocks ...string) error {
	_, err := io.WriteString(r.w, strings.Join(blocks, "\n")+"\n")
	return err
}

// heading underlines title to its display width.
func (r *Renderer) heading(title string) string {
	rule := strings.Repeat("─", uniseg.StringWidth(title))
	return r.styles.Heading.Render(title) + "\n" + r.styles.Muted.Render(rule)
}

type row struct {
	label, value, unit string
}

// table aligns label, value and unit columns. Padding is applied before
// styling so escape sequences do not affect the widths.
func (r *Renderer) table(rows []row) string {
	s := r.styles
	var lw, vw int
	for _, row := range rows {
		lw = max(lw, runewidth.StringWidth(row.label))
		vw = max(vw, runewidth.StringWidth(row.value))
	}
	lines := make([]string, len(rows))
	for i, row := range rows {
		value := runewidth.FillLeft(row.value, vw)
		if row.value == undefined {
			value = s.Muted.Render(value)
		}
		line := s.Label.Render(runewidth.FillRight(row.label, lw)) + gap + value
		if row.unit != "" {
			line += " " + s.Unit.Render(row.unit)
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// columns lays names out in rows no wider than lineWidth.
func columns(names []string) string {
	if len(names) == 0 {
		return undefined
	}
	var w int
	for _, n := range names {
		w = max(w, runewidth.StringWidth(n))
	}
	perLine := max(1, (lineWidth+len(gap))/(w+len(gap)))
	var b strings.Builder
	for i, n := range names {
		switch {
		case i == 0:
		case i%perLine == 0:
			b.WriteString("\n")
		default:
			b.WriteString(gap)
		}
		if (i+1)%perLine == 0 || i == len(names)-1 {
			b.WriteString(n)
		} else {
			b.WriteString(runewidth.FillRight(n, w))
		}
	}
	return b.String()
}

// general formats a computed value with up to 10 significant digits.
func general(v *float64) string {
	if v == nil {
		return undefined
	}
	return strconv.FormatFloat(*v, 'g', 10, 64)
}

// exact formats an already rounded value without further rounding.
func exact(v *float64) string {
	if v == nil {
		return undefined
	}
	return fixed(*v)
}

func fixed(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func text(v *string) string {
	if v == nil {
		return undefined
	}
	return *v
}
