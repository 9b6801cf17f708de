package grd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGraph(t *testing.T) *GraphData {
	t.Helper()
	g, err := Read(strings.NewReader(fullFixture))
	require.NoError(t, err)
	return g
}

func TestChannelIndex(t *testing.T) {
	g := testGraph(t)

	col, err := g.ChannelIndex("Time")
	require.NoError(t, err)
	assert.Equal(t, 0, col)

	col, err = g.ChannelIndex("Input_Voltage")
	require.NoError(t, err)
	assert.Equal(t, 1, col)

	_, err = g.ChannelIndex("Pressure")
	assert.ErrorIs(t, err, ErrChannelNotFound)
}

func TestUnit(t *testing.T) {
	g := testGraph(t)

	unit, err := g.Unit("Input_Voltage")
	require.NoError(t, err)
	assert.Equal(t, "V", unit)

	_, err = g.Unit("Pressure")
	assert.ErrorIs(t, err, ErrChannelNotFound)
}

func TestCurveByNumber(t *testing.T) {
	g := testGraph(t)

	c, err := g.CurveByNumber(2)
	require.NoError(t, err)
	assert.Equal(t, " run two", c.Key)

	_, err = g.CurveByNumber(99)
	assert.ErrorIs(t, err, ErrCurveNotFound)
}

func TestCurveByNumberFirstMatchWins(t *testing.T) {
	// The format does not guarantee unique curve numbers; the lookup
	// must return the earliest match.
	g := &GraphData{Curves: []*Curve{
		{Number: 5, Key: "first"},
		{Number: 5, Key: "second"},
	}}
	c, err := g.CurveByNumber(5)
	require.NoError(t, err)
	assert.Equal(t, "first", c.Key)
}

func TestChannelData(t *testing.T) {
	g := testGraph(t)

	got, err := g.ChannelData(1, "Input_Voltage")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, got)

	got, err = g.ChannelData(2, "Time")
	require.NoError(t, err)
	assert.Equal(t, []float64{0}, got)

	_, err = g.ChannelData(1, "Pressure")
	assert.ErrorIs(t, err, ErrChannelNotFound)

	_, err = g.ChannelData(42, "Time")
	assert.ErrorIs(t, err, ErrCurveNotFound)
}

func TestLatestCurve(t *testing.T) {
	g := testGraph(t)
	c, err := g.LatestCurve()
	require.NoError(t, err)
	assert.Equal(t, 2, c.Number)

	empty := &GraphData{}
	_, err = empty.LatestCurve()
	assert.ErrorIs(t, err, ErrNoCurves)
}

func TestCurveColumn(t *testing.T) {
	c := &Curve{Data: [][]float64{{1, 10}, {2, 20}, {3, 30}}}
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, []float64{10, 20, 30}, c.Column(1))
}

func TestSummaryStrings(t *testing.T) {
	g := testGraph(t)
	s := g.String()
	assert.Contains(t, s, "sample name:   Steel probe A")
	assert.Contains(t, s, "curve number: 1")
	assert.Contains(t, s, "duration:     2.500 [s]")
	assert.Contains(t, s, "curve number: 2")
}
