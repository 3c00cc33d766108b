// Package store reads embedding matrices out of NumPy .npz archives.
package store

import (
	"errors"
	"fmt"
	"os"

	"github.com/sbinet/npyio/npz"

	"embview/internal/domain"
)

// Loader reads the first array stored in an .npz archive, the layout
// numpy.savez produces. Later arrays in the same archive are ignored.
type Loader struct{}

func NewLoader() *Loader { return &Loader{} }

// Load opens the archive at path and decodes its first stored array into
// a domain.Matrix. The shape is preserved as stored; float32 elements are
// widened to float64.
func (l *Loader) Load(path string) (domain.Matrix, error) {
	f, err := npz.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.Matrix{}, fmt.Errorf("%w: %s", domain.ErrNotFound, path)
		}
		return domain.Matrix{}, fmt.Errorf("open array store %s: %w", path, err)
	}
	defer f.Close()

	keys := f.Keys()
	if len(keys) == 0 {
		return domain.Matrix{}, fmt.Errorf("%w in %s", domain.ErrEmptyStore, path)
	}
	key := keys[0]

	hdr := f.Header(key)
	if hdr.Descr.Fortran {
		return domain.Matrix{}, fmt.Errorf("array %q in %s: fortran-order arrays are not supported", key, path)
	}

	data, err := readFloats(f, key, hdr.Descr.Type)
	if err != nil {
		return domain.Matrix{}, fmt.Errorf("array %q in %s: %w", key, path, err)
	}

	shape := make([]int, len(hdr.Descr.Shape))
	copy(shape, hdr.Descr.Shape)
	return domain.Matrix{Shape: shape, Data: data}, nil
}

// readFloats decodes the named array as a flat float64 slice, accepting
// the two float dtypes numpy.savez writes for embedding matrices.
func readFloats(f *npz.Reader, key, dtype string) ([]float64, error) {
	switch dtype {
	case "<f8", ">f8", "|f8":
		var vals []float64
		if err := f.Read(key, &vals); err != nil {
			return nil, err
		}
		return vals, nil
	case "<f4", ">f4", "|f4":
		var vals []float32
		if err := f.Read(key, &vals); err != nil {
			return nil, err
		}
		out := make([]float64, len(vals))
		for i, v := range vals {
			out[i] = float64(v)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported dtype %q", dtype)
	}
}
