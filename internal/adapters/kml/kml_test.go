package kml_test

import (
	"bytes"
	"encoding/xml"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samirrijal/footprint/internal/adapters/kml"
	"github.com/samirrijal/footprint/internal/adapters/s2index"
	"github.com/samirrijal/footprint/internal/core/domain"
	"github.com/samirrijal/footprint/internal/core/usecases"
)

func TestWriteFootprint(t *testing.T) {
	idx := s2index.New()
	svc := usecases.NewFootprintService(idx, domain.DefaultFootprintParams())
	step := domain.GeoPoint{Lat: 43.263, Lon: -2.935}
	path := svc.CellPath(step)

	var buf bytes.Buffer
	require.NoError(t, kml.WriteFootprint(&buf, "bilbao", step, path, idx))

	out := buf.String()
	assert.Equal(t, len(path), strings.Count(out, "<Polygon>"))
	assert.Equal(t, len(path)+1, strings.Count(out, "<Placemark>"))
	assert.Contains(t, out, "<name>bilbao</name>")
	for _, c := range path {
		assert.Contains(t, out, "<name>"+c.Token+"</name>")
	}

	// well-formed XML
	dec := xml.NewDecoder(&buf)
	for {
		_, err := dec.Token()
		if err != nil {
			assert.Equal(t, "EOF", err.Error())
			break
		}
	}
}
