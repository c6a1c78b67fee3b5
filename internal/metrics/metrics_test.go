package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorCounts(t *testing.T) {
	c := NewCollector()

	c.BytesLoaded("file", 2880)
	c.BytesLoaded("file", 5760)
	c.BytesLoaded("s3", 100)
	c.UnitsScanned(3)
	c.LayerComputed(0, time.Millisecond, nil)
	c.LayerComputed(1, time.Millisecond, errors.New("boom"))

	assert.Equal(t, 8640.0, testutil.ToFloat64(c.bytesLoaded.WithLabelValues("file")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.filesLoaded.WithLabelValues("file")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.filesLoaded.WithLabelValues("s3")))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.unitsScanned))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.layers.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.layers.WithLabelValues("error")))
}

func TestCollectorsAreIndependent(t *testing.T) {
	a, b := NewCollector(), NewCollector()
	a.UnitsScanned(1)
	assert.Equal(t, 0.0, testutil.ToFloat64(b.unitsScanned))
}

func TestWriteTextfile(t *testing.T) {
	c := NewCollector()
	c.UnitsScanned(2)

	path := filepath.Join(t.TempDir(), "fits.prom")
	require.NoError(t, c.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "fits_units_scanned_total 2"))
}
