package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/grdkit/internal/config"
	"github.com/banshee-data/grdkit/internal/grd"
)

const fixture = ` Sample name :Steel probe A
#START axis description
Index  Start        End          R1 R2 R3 R4 R5 R6 Unit  Name
1      0.000000E+0  1.000000E+0  0  0  0  0  0  0  s     Time
2      0.000000E+0  2.500000E+0  0  0  0  0  0  0  V     Voltage
#END axis description
#START Curve description 1
#START Curve Data
0.0 1.0
0.5 2.0
1.0 3.0
#END Curve 1 - end of curve data
`

func parseFixture(t *testing.T) *grd.GraphData {
	t.Helper()
	g, err := grd.Read(strings.NewReader(fixture))
	require.NoError(t, err)
	return g
}

func TestRenderHTML(t *testing.T) {
	g := parseFixture(t)

	var buf bytes.Buffer
	err := RenderHTML(&buf, g, 1, "Time", nil)
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, "Steel probe A")
	assert.Contains(t, html, "Voltage (V)")
	assert.Contains(t, html, "Time (s)")
}

func TestRenderHTMLWithConfig(t *testing.T) {
	g := parseFixture(t)
	theme := "light"
	cfg := &config.PlotConfig{Theme: &theme}

	var buf bytes.Buffer
	require.NoError(t, RenderHTML(&buf, g, 1, "Time", cfg))
	assert.Contains(t, buf.String(), "light")
}

func TestRenderHTMLTickLabels(t *testing.T) {
	g := parseFixture(t)

	// Default config scales tick values with SI prefixes.
	var buf bytes.Buffer
	require.NoError(t, RenderHTML(&buf, g, 1, "Time", nil))
	assert.Contains(t, buf.String(), "500.000 ms")

	// With si_prefix off the labels stay fixed-point.
	buf.Reset()
	siPrefix := false
	decimals := 1
	cfg := &config.PlotConfig{SIPrefix: &siPrefix, Decimals: &decimals}
	require.NoError(t, RenderHTML(&buf, g, 1, "Time", cfg))
	assert.Contains(t, buf.String(), "0.5 s")
	assert.NotContains(t, buf.String(), "500.0 ms")
}

func TestRenderHTMLLookupFailures(t *testing.T) {
	g := parseFixture(t)
	var buf bytes.Buffer

	err := RenderHTML(&buf, g, 9, "Time", nil)
	assert.ErrorIs(t, err, grd.ErrCurveNotFound)

	err = RenderHTML(&buf, g, 1, "Pressure", nil)
	assert.ErrorIs(t, err, grd.ErrChannelNotFound)
}

func TestSavePNG(t *testing.T) {
	g := parseFixture(t)
	path := filepath.Join(t.TempDir(), "curve1.png")

	require.NoError(t, SavePNG(path, g, 1, "Time"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestSavePNGLookupFailures(t *testing.T) {
	g := parseFixture(t)
	path := filepath.Join(t.TempDir(), "bad.png")

	assert.ErrorIs(t, SavePNG(path, g, 9, "Time"), grd.ErrCurveNotFound)
	assert.ErrorIs(t, SavePNG(path, g, 1, "Pressure"), grd.ErrChannelNotFound)
}

func TestAxisLabel(t *testing.T) {
	g := parseFixture(t)
	assert.Equal(t, "Voltage (V)", axisLabel(g, "Voltage"))
	assert.Equal(t, "Pressure", axisLabel(g, "Pressure"))
}
