package db

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/grdkit/internal/grd"
	"github.com/banshee-data/grdkit/internal/monitoring"
)

const fixture = ` Sample name :Steel probe A
 Date        :2026-03-14
#START comment
 annealed twice
#END comment
#START axis description
Index  Start        End          R1 R2 R3 R4 R5 R6 Unit  Name
1      0.000000E+0  1.000000E+0  0  0  0  0  0  0  s     Time
2      0.000000E+0  2.500000E+0  0  0  0  0  0  0  V     Voltage
#END axis description
#START Curve description 1
#START Time: 0,0 2,0
#START Curve Legend : run one
#START Curve Data
0.0 1,5
1.0 2,5
2.0 3,5
#END Curve 1 - end of curve data
`

func newTestDB(t *testing.T) *DB {
	t.Helper()
	monitoring.SetLogger(t.Logf)
	t.Cleanup(func() { monitoring.SetLogger(nil) })

	d, err := NewDB(filepath.Join(t.TempDir(), "grd_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := d.Close(); err != nil {
			t.Errorf("failed to close test database: %v", err)
		}
	})
	return d
}

func parseFixture(t *testing.T) *grd.GraphData {
	t.Helper()
	g, err := grd.Read(strings.NewReader(fixture))
	require.NoError(t, err)
	return g
}

func TestRecordAndReadBack(t *testing.T) {
	d := newTestDB(t)
	g := parseFixture(t)

	fileID, err := d.RecordGraph("probe_a.grd", g)
	require.NoError(t, err)

	files, err := d.Files()
	require.NoError(t, err)
	require.Len(t, files, 1)
	f := files[0]
	assert.Equal(t, fileID, f.FileID)
	assert.Equal(t, "probe_a.grd", f.Path)
	assert.Equal(t, "Steel probe A", f.SampleName)
	assert.Equal(t, "2026-03-14", f.Date)
	assert.Equal(t, "annealed twice", f.Comment)
	assert.NotEmpty(t, f.ImportID)

	curves, err := d.CurvesForFile(fileID)
	require.NoError(t, err)
	require.Len(t, curves, 1)
	c := curves[0]
	assert.Equal(t, 1, c.CurveNumber)
	assert.Equal(t, " run one", c.Legend)
	assert.InDelta(t, 2.0, c.Duration, 1e-12)
	assert.Equal(t, 3, c.RowCount)
}

func TestChannelDataRoundTrip(t *testing.T) {
	d := newTestDB(t)
	g := parseFixture(t)

	fileID, err := d.RecordGraph("probe_a.grd", g)
	require.NoError(t, err)

	stored, err := d.ChannelData(fileID, 1, "Voltage")
	require.NoError(t, err)
	want, err := g.ChannelData(1, "Voltage")
	require.NoError(t, err)
	assert.Equal(t, want, stored)
}

func TestChannelDataLookupFailures(t *testing.T) {
	d := newTestDB(t)
	fileID, err := d.RecordGraph("probe_a.grd", parseFixture(t))
	require.NoError(t, err)

	_, err = d.ChannelData(fileID, 1, "Pressure")
	assert.ErrorIs(t, err, grd.ErrChannelNotFound)

	_, err = d.ChannelData(fileID, 42, "Voltage")
	assert.ErrorIs(t, err, grd.ErrCurveNotFound)
}

func TestRepeatedImportsStayDistinct(t *testing.T) {
	d := newTestDB(t)
	g := parseFixture(t)

	_, err := d.RecordGraph("probe_a.grd", g)
	require.NoError(t, err)
	_, err = d.RecordGraph("probe_a.grd", g)
	require.NoError(t, err)

	files, err := d.Files()
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.NotEqual(t, files[0].ImportID, files[1].ImportID)
}
