package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samirrijal/footprint/internal/adapters/s2index"
	"github.com/samirrijal/footprint/internal/core/domain"
	"github.com/samirrijal/footprint/internal/core/usecases"
)

func newTestCLI() (*cli, *bytes.Buffer) {
	var out bytes.Buffer
	index := s2index.New()
	return &cli{
		svc:   usecases.NewFootprintService(index, domain.DefaultFootprintParams()),
		index: index,
		out:   &out,
	}, &out
}

func TestCLI_Cell(t *testing.T) {
	c, out := newTestCLI()

	require.NoError(t, c.run([]string{"cell", "--lat", "43.263", "--lng", "-2.935"}))

	var cell domain.Cell
	require.NoError(t, json.Unmarshal(out.Bytes(), &cell))
	assert.Equal(t, 15, cell.Level)
	assert.Equal(t, c.svc.LocationCell(domain.GeoPoint{Lat: 43.263, Lon: -2.935}), cell)
}

func TestCLI_PathIDs(t *testing.T) {
	c, out := newTestCLI()

	require.NoError(t, c.run([]string{"path", "--lat", "0", "--lng", "0", "--ids"}))

	var ids []domain.CellID
	require.NoError(t, json.Unmarshal(out.Bytes(), &ids))
	assert.Len(t, ids, 21)
}

func TestCLI_Range(t *testing.T) {
	c, out := newTestCLI()

	require.NoError(t, c.run([]string{"range", "--lat", "10", "--lng", "10"}))

	var r domain.CellRange
	require.NoError(t, json.Unmarshal(out.Bytes(), &r))
	assert.Equal(t, c.svc.CellRange(domain.GeoPoint{Lat: 10, Lon: 10}), r)
}

func TestCLI_Seen(t *testing.T) {
	c, out := newTestCLI()

	require.NoError(t, c.run([]string{"seen", "--steps", "43.263,-2.935; 0,0", "--lat", "43.263", "--lng", "-2.935"}))

	var res struct {
		Seen bool `json:"seen"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	assert.True(t, res.Seen)
}

func TestCLI_SeenFeatures(t *testing.T) {
	c, out := newTestCLI()

	require.NoError(t, c.run([]string{"seen", "--steps", "0,0", "--features", "0,0;10,10"}))

	var res struct {
		Unseen []domain.GeoPoint `json:"unseen"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	assert.Equal(t, []domain.GeoPoint{{Lat: 10, Lon: 10}}, res.Unseen)
}

func TestCLI_RoutePolyline(t *testing.T) {
	c, out := newTestCLI()

	require.NoError(t, c.run([]string{"route", "--polyline", "_p~iF~ps|U_ulLnnqC_mqNvxq`@"}))

	var fps []domain.StepFootprint
	require.NoError(t, json.Unmarshal(out.Bytes(), &fps))
	require.Len(t, fps, 3)
	assert.InDelta(t, 38.5, fps[0].Step.Lat, 1e-5)
}

func TestCLI_ProjectAndDistance(t *testing.T) {
	c, out := newTestCLI()

	require.NoError(t, c.run([]string{"project", "--lat", "0", "--lng", "0", "--distance-km", "0", "--bearing", "77"}))
	var p domain.GeoPoint
	require.NoError(t, json.Unmarshal(out.Bytes(), &p))
	assert.InDelta(t, 0, p.Lat, 1e-9)
	assert.InDelta(t, 0, p.Lon, 1e-9)

	out.Reset()
	require.NoError(t, c.run([]string{"distance", "--lat1", "0", "--lng1", "0", "--lat2", "0", "--lng2", "1"}))
	var d map[string]float64
	require.NoError(t, json.Unmarshal(out.Bytes(), &d))
	assert.InDelta(t, 111319.49, d["distance_m"], 1)
}

func TestCLI_InRange(t *testing.T) {
	c, out := newTestCLI()

	require.NoError(t, c.run([]string{"in-range", "--lat", "1", "--lng", "1", "--feature-lat", "1", "--feature-lng", "1"}))

	var v domain.Visibility
	require.NoError(t, json.Unmarshal(out.Bytes(), &v))
	assert.True(t, v.InRange)
	assert.Equal(t, 0.0, v.DistanceMeters)
}

func TestCLI_KML(t *testing.T) {
	c, out := newTestCLI()

	require.NoError(t, c.run([]string{"kml", "--lat", "1", "--lng", "1", "--name", "test"}))

	assert.Equal(t, 21, strings.Count(out.String(), "<Polygon>"))
}

func TestCLI_Errors(t *testing.T) {
	c, _ := newTestCLI()

	assert.ErrorIs(t, c.run(nil), errUsage)
	assert.ErrorIs(t, c.run([]string{"teleport"}), errUsage)
	assert.ErrorIs(t, c.run([]string{"cell", "--lat", "1"}), errUsage)
	assert.ErrorIs(t, c.run([]string{"cell", "--bogus"}), errUsage)
	assert.ErrorIs(t, c.run([]string{"route"}), errUsage)
	assert.ErrorIs(t, c.run([]string{"route", "--steps", "1,1", "--polyline", "_p~iF~ps|U"}), errUsage)
	assert.ErrorIs(t, c.run([]string{"cell", "--lat", "95", "--lng", "0"}), domain.ErrInvalidCoordinate)
	assert.Error(t, c.run([]string{"cell", "--lat", "north", "--lng", "0"}))
	assert.Error(t, c.run([]string{"seen", "--steps", "1;2", "--lat", "1", "--lng", "1"}))
}

func TestCLI_Help(t *testing.T) {
	c, out := newTestCLI()

	require.NoError(t, c.run([]string{"help"}))
	assert.Contains(t, out.String(), "COMMANDS:")
}

func TestCLI_Params(t *testing.T) {
	c, out := newTestCLI()

	require.NoError(t, c.run([]string{"params"}))

	var p domain.FootprintParams
	require.NoError(t, json.Unmarshal(out.Bytes(), &p))
	assert.Equal(t, domain.DefaultFootprintParams(), p)
}

func TestUsageOnly(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantDone bool
		toStdout bool
	}{
		{"no command", nil, 2, true, false},
		{"help", []string{"help"}, 0, true, true},
		{"help flag", []string{"--help"}, 0, true, true},
		{"command", []string{"cell", "--lat", "1", "--lng", "1"}, 0, false, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer

			code, done := usageOnly(tc.args, &stdout, &stderr)

			assert.Equal(t, tc.wantCode, code)
			assert.Equal(t, tc.wantDone, done)
			switch {
			case !tc.wantDone:
				assert.Empty(t, stdout.String())
				assert.Empty(t, stderr.String())
			case tc.toStdout:
				assert.Contains(t, stdout.String(), "COMMANDS:")
			default:
				assert.Contains(t, stderr.String(), "COMMANDS:")
			}
		})
	}
}
