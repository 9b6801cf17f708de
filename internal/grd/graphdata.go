// Package grd parses instrument-exported GRD measurement files into an
// in-memory graph model: file-level sample metadata, a shared axis
// description (channel names and units), and one or more numbered curves
// each holding a samples-by-channels matrix.
//
// The model is built once by Read/ReadFile and is read-only afterwards;
// downstream consumers (summaries, charts, the ingestion store) never
// mutate it.
package grd

import (
	"errors"
	"fmt"
	"strings"
)

// Lookup failure sentinels. Accessors wrap these with context so callers
// can match with errors.Is.
var (
	// ErrChannelNotFound is returned when a channel name is not present in
	// the axis description.
	ErrChannelNotFound = errors.New("channel not found")

	// ErrCurveNotFound is returned when no curve carries the requested
	// curve number.
	ErrCurveNotFound = errors.New("curve not found")

	// ErrNoCurves is returned by LatestCurve when the file contained no
	// curve blocks.
	ErrNoCurves = errors.New("no curves")
)

// Curve is one time-series dataset within a GRD file. Data rows are in
// file order; columns follow the axis description of the owning GraphData.
type Curve struct {
	// Number is the curve identifier from the curve-description tag. The
	// format does not guarantee uniqueness across a file; lookups take the
	// first match.
	Number int

	// StartDate is the verbatim text of the curve's date tag.
	StartDate string

	// Key is the legend label from the curve's legend tag.
	Key string

	// Duration is the curve length in seconds, computed as end minus start
	// from the curve's time tag.
	Duration float64

	// Points is the declared point count from the curve's points tag. It
	// is a hint from the instrument and is not validated against the
	// actual number of data rows.
	Points int

	// Data holds the sample rows. Each row has one value per channel in
	// the axis description; the parser does not enforce the width, so a
	// file without an axis block can still carry rows.
	Data [][]float64
}

// Len returns the number of data rows.
func (c *Curve) Len() int { return len(c.Data) }

// Column returns the values of column col across all rows, in row order.
func (c *Curve) Column(col int) []float64 {
	out := make([]float64, len(c.Data))
	for i, row := range c.Data {
		out[i] = row[col]
	}
	return out
}

// String renders the curve's property summary.
func (c *Curve) String() string {
	return strings.Join([]string{
		fmt.Sprintf("curve number: %d", c.Number),
		fmt.Sprintf("start_date:   %s", c.StartDate),
		fmt.Sprintf("key:          %s", c.Key),
		fmt.Sprintf("duration:     %.3f [s]", c.Duration),
		fmt.Sprintf("points:       %d", c.Points),
	}, "\n")
}

// GraphData is the parsed representation of one GRD file.
type GraphData struct {
	// Names lists the channel names in axis-description order. Units is
	// index-aligned with Names; a unit may be empty.
	Names []string
	Units []string

	// Curves holds the parsed curve blocks in file order.
	Curves []*Curve

	// Preamble metadata, each the remainder after the fixed label prefix.
	SampleName   string
	Date         string
	SpecificInfo string
	UserInfo     string

	// Comment holds the trimmed lines of the comment block. A block whose
	// only content is blank collapses to an empty slice, so "no comment"
	// and "one blank comment line" are not distinguishable after parse.
	Comment []string
}

// ChannelIndex returns the column position of the named channel.
func (g *GraphData) ChannelIndex(channel string) (int, error) {
	for i, n := range g.Names {
		if n == channel {
			return i, nil
		}
	}
	return 0, fmt.Errorf("channel %q: %w", channel, ErrChannelNotFound)
}

// Unit returns the unit string of the named channel.
func (g *GraphData) Unit(channel string) (string, error) {
	col, err := g.ChannelIndex(channel)
	if err != nil {
		return "", err
	}
	return g.Units[col], nil
}

// CurveByNumber returns the first curve carrying the given number. Curve
// numbers are not guaranteed unique; first match wins.
func (g *GraphData) CurveByNumber(number int) (*Curve, error) {
	for _, c := range g.Curves {
		if c.Number == number {
			return c, nil
		}
	}
	return nil, fmt.Errorf("curve %d: %w", number, ErrCurveNotFound)
}

// ChannelData returns the named channel's column of the given curve, in
// original row order.
func (g *GraphData) ChannelData(curveNumber int, channel string) ([]float64, error) {
	col, err := g.ChannelIndex(channel)
	if err != nil {
		return nil, err
	}
	c, err := g.CurveByNumber(curveNumber)
	if err != nil {
		return nil, err
	}
	return c.Column(col), nil
}

// LatestCurve returns the most recently appended curve.
func (g *GraphData) LatestCurve() (*Curve, error) {
	if len(g.Curves) == 0 {
		return nil, ErrNoCurves
	}
	return g.Curves[len(g.Curves)-1], nil
}

// String renders the file's property summary including all curves.
func (g *GraphData) String() string {
	parts := []string{
		fmt.Sprintf("sample name:   %s", g.SampleName),
		fmt.Sprintf("date:          %s", g.Date),
		fmt.Sprintf("specific info: %s", g.SpecificInfo),
		fmt.Sprintf("user info:     %s", g.UserInfo),
		fmt.Sprintf("comment:       %s", strings.Join(g.Comment, "\n")),
		fmt.Sprintf("names:         %v", g.Names),
		fmt.Sprintf("units:         %v", g.Units),
		"",
		"curves:",
	}
	for _, c := range g.Curves {
		parts = append(parts, c.String())
	}
	return strings.Join(parts, "\n")
}
