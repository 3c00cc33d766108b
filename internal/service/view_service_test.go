package service

import (
	"archive/zip"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sbinet/npyio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"embview/internal/domain"
	"embview/internal/meta"
	"embview/internal/projection"
	"embview/internal/render"
	"embview/internal/store"
)

func newService() *ViewServiceImpl {
	return NewViewService(store.NewLoader(), meta.NewLoader(), projection.NewPCA(), render.NewHTML(render.Options{}))
}

func writeStore(t *testing.T, dir string, m *mat.Dense) string {
	t.Helper()
	path := filepath.Join(dir, "embeddings_index.npz")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	zw := zip.NewWriter(f)
	w, err := zw.Create("arr_0.npy")
	require.NoError(t, err)
	require.NoError(t, npyio.Write(w, m))
	require.NoError(t, zw.Close())
	return path
}

func writeMeta(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "embeddings_meta.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestBuildEndToEnd(t *testing.T) {
	dir := t.TempDir()
	storePath := writeStore(t, dir, mat.NewDense(3, 5, []float64{
		0, 0, 0, 0, 0,
		1, 0, 0, 0, 0,
		0, 1, 0, 0, 0,
	}))
	metaPath := writeMeta(t, dir, `[{"filename":"a"},{"filename":"b"},{"filename":"c"}]`)
	outPath := filepath.Join(dir, "view.html")

	written, err := newService().Build(storePath, metaPath, outPath)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(written))
	assert.Equal(t, "view.html", filepath.Base(written))

	doc, err := os.ReadFile(outPath)
	require.NoError(t, err)

	const marker = "const points = "
	idx := strings.Index(string(doc), marker)
	require.GreaterOrEqual(t, idx, 0)
	payload := string(doc)[idx+len(marker):]
	payload = payload[:strings.Index(payload, ";")]

	var records []struct {
		X     *float64 `json:"x"`
		Y     *float64 `json:"y"`
		Label string   `json:"label"`
	}
	require.NoError(t, json.Unmarshal([]byte(payload), &records))
	require.Len(t, records, 3)
	for i, want := range []string{"a", "b", "c"} {
		assert.Equal(t, want, records[i].Label)
		require.NotNil(t, records[i].X)
		require.NotNil(t, records[i].Y)
	}
}

func TestBuildCountMismatchWritesNothing(t *testing.T) {
	dir := t.TempDir()
	storePath := writeStore(t, dir, mat.NewDense(5, 3, []float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
		1, 1, 0,
		0, 1, 1,
	}))
	metaPath := writeMeta(t, dir, `[{"filename":"a"},{"filename":"b"},{"filename":"c"},{"filename":"d"}]`)
	outPath := filepath.Join(dir, "view.html")

	_, err := newService().Build(storePath, metaPath, outPath)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCountMismatch)

	_, statErr := os.Stat(outPath)
	assert.True(t, os.IsNotExist(statErr), "no output may be written on failure")
}

func TestBuildMissingStoreFailsBeforeLabels(t *testing.T) {
	dir := t.TempDir()
	// Deliberately broken metadata: it must never be parsed when the
	// array store itself is absent.
	metaPath := writeMeta(t, dir, `not json`)
	outPath := filepath.Join(dir, "view.html")

	_, err := newService().Build(filepath.Join(dir, "absent.npz"), metaPath, outPath)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, statErr := os.Stat(outPath)
	assert.True(t, os.IsNotExist(statErr))
}
