// Package chart renders the student profile against the best matching role.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/spigell/skillmatch/internal/skills"
)

const (
	studentLabel = "Student"
	minLevel     = 0
	maxLevel     = 10
)

var (
	studentColor = color.RGBA{B: 255, A: 255}
	targetColor  = color.RGBA{R: 255, G: 165, A: 255}
)

// Series is one line of the comparison.
type Series struct {
	Label  string
	Values skills.Vector
}

// Comparison is what a Sink renders.
type Comparison struct {
	Title      string
	Categories skills.Categories
	Student    Series
	Target     Series
}

// Sink renders a comparison.
type Sink interface {
	Render(c *Comparison) error
}

// NewComparison builds the comparison of the student with a company role.
func NewComparison(categories skills.Categories, student, requirements skills.Vector, company, role string) (*Comparison, error) {
	if err := student.Validate(categories.Len()); err != nil {
		return nil, fmt.Errorf("student: %w", err)
	}
	if err := requirements.Validate(categories.Len()); err != nil {
		return nil, fmt.Errorf("requirements: %w", err)
	}

	target := fmt.Sprintf("%s - %s", company, role)
	return &Comparison{
		Title:      fmt.Sprintf("Skill Profile Comparison: Student vs. %s", target),
		Categories: categories,
		Student:    Series{Label: studentLabel, Values: student},
		Target:     Series{Label: target, Values: requirements},
	}, nil
}

// PlotSink saves the comparison as an image. The format follows the
// extension of Path.
type PlotSink struct {
	Path   string
	Width  vg.Length
	Height vg.Length
}

func NewPlotSink(path string) *PlotSink {
	return &PlotSink{Path: path, Width: 12 * vg.Inch, Height: 6 * vg.Inch}
}

func (s *PlotSink) Render(c *Comparison) error {
	if s.Path == "" {
		return errors.New("chart path is required")
	}

	p, err := Plot(c)
	if err != nil {
		return err
	}

	if err := p.Save(s.Width, s.Height, s.Path); err != nil {
		return fmt.Errorf("saving chart to %q: %w", s.Path, err)
	}
	return nil
}

// Plot lays the comparison out: categories on x, levels on a fixed 0-10 y axis.
func Plot(c *Comparison) (*plot.Plot, error) {
	p := plot.New()

	p.Title.Text = c.Title
	p.X.Label.Text = "Skill Categories"
	p.Y.Label.Text = "Skill Ratings"

	p.NominalX(c.Categories...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter

	p.Add(plotter.NewGrid())

	zero := plotter.NewFunction(func(float64) float64 { return 0 })
	zero.Color = color.Black
	zero.Width = vg.Points(1)
	zero.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	p.Add(zero)

	for _, series := range []struct {
		Series
		color color.Color
	}{
		{c.Student, studentColor},
		{c.Target, targetColor},
	} {
		line, scatter, err := plotter.NewLinePoints(levels(series.Values))
		if err != nil {
			return nil, fmt.Errorf("plotting %q: %w", series.Label, err)
		}
		line.Color = series.color
		scatter.Color = series.color
		scatter.Shape = draw.CircleGlyph{}

		p.Add(line, scatter)
		p.Legend.Add(series.Label, line, scatter)
	}

	p.Y.Min = minLevel
	p.Y.Max = maxLevel
	p.Legend.Top = true

	return p, nil
}

func levels(v skills.Vector) plotter.XYs {
	xys := make(plotter.XYs, len(v))
	for i, level := range v {
		xys[i].X = float64(i)
		xys[i].Y = float64(level)
	}
	return xys
}
