// Package curvestats computes per-channel descriptive statistics over a
// parsed GRD curve. It is read-only over the graph model.
package curvestats

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/grdkit/internal/grd"
)

// Summary describes one channel of one curve.
type Summary struct {
	Channel string
	Unit    string
	N       int
	Min     float64
	Max     float64
	Mean    float64
	StdDev  float64
}

// String renders the summary as a single aligned line.
func (s Summary) String() string {
	unit := s.Unit
	if unit == "" {
		unit = "-"
	}
	return fmt.Sprintf("%-20s %-6s n=%-6d min=%-12.6g max=%-12.6g mean=%-12.6g stddev=%.6g",
		s.Channel, unit, s.N, s.Min, s.Max, s.Mean, s.StdDev)
}

// Summarize computes the statistics for one channel of the curve with the
// given number. Lookup failures propagate the grd sentinel errors.
func Summarize(g *grd.GraphData, curveNumber int, channel string) (Summary, error) {
	unit, err := g.Unit(channel)
	if err != nil {
		return Summary{}, err
	}
	values, err := g.ChannelData(curveNumber, channel)
	if err != nil {
		return Summary{}, err
	}

	s := Summary{Channel: channel, Unit: unit, N: len(values)}
	if len(values) == 0 {
		return s, nil
	}
	s.Min = floats.Min(values)
	s.Max = floats.Max(values)
	s.Mean = stat.Mean(values, nil)
	s.StdDev = stat.StdDev(values, nil)
	return s, nil
}

// SummarizeCurve computes one Summary per channel of the given curve, in
// axis-description order.
func SummarizeCurve(g *grd.GraphData, curveNumber int) ([]Summary, error) {
	if _, err := g.CurveByNumber(curveNumber); err != nil {
		return nil, err
	}
	out := make([]Summary, 0, len(g.Names))
	for _, name := range g.Names {
		s, err := Summarize(g, curveNumber, name)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
