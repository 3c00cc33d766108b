package domain

import "errors"

// Sentinel errors for the pipeline. They are raised at the point of
// detection and propagate uncaught to the process boundary.
var (
	// ErrNotFound indicates a missing input file.
	ErrNotFound = errors.New("input file not found")
	// ErrEmptyStore indicates an array store with zero stored arrays.
	ErrEmptyStore = errors.New("no arrays stored")
	// ErrCountMismatch indicates that the metadata entry count does not
	// match the embedding row count.
	ErrCountMismatch = errors.New("metadata count mismatch")
	// ErrBadRank indicates an embedding array that is not a 2D matrix.
	ErrBadRank = errors.New("expected a 2D array of embeddings")
)

// Matrix is an embedding array exactly as stored: the full shape and the
// element values in row-major order, widened to float64. Rank validation
// is deferred to the projector, so Shape may have any length here.
type Matrix struct {
	Shape []int
	Data  []float64
}

// Rows returns the leading dimension, the number of embedding vectors
// for a 2D store. Zero for scalar arrays.
func (m Matrix) Rows() int {
	if len(m.Shape) == 0 {
		return 0
	}
	return m.Shape[0]
}

// Cols returns the embedding dimensionality. Zero for non-2D arrays.
func (m Matrix) Cols() int {
	if len(m.Shape) != 2 {
		return 0
	}
	return m.Shape[1]
}

// Point is one projected embedding. Its label lives in the metadata list
// at the same positional index and is paired in by the renderer.
type Point struct {
	X float64
	Y float64
}

// MatrixLoader reads an embedding matrix from an array store file.
type MatrixLoader interface {
	Load(path string) (Matrix, error)
}

// LabelLoader reads exactly expected labels from a metadata file.
type LabelLoader interface {
	Load(path string, expected int) ([]string, error)
}

// Projector reduces an N×D matrix to one 2D point per row.
type Projector interface {
	Project(m Matrix) ([]Point, error)
}

// Renderer turns projected points into a self-contained document and
// writes it to disk.
type Renderer interface {
	Build(points []Point, labels []string) (string, error)
	Write(doc string, path string) error
}
