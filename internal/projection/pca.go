// Package projection reduces embedding matrices to two dimensions with
// PCA, computed through a thin SVD so no D×D covariance matrix is built.
package projection

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"embview/internal/domain"
)

// PCA projects mean-centered rows onto their top two right singular
// directions. The target dimension is fixed at 2.
type PCA struct{}

func NewPCA() *PCA { return &PCA{} }

// Project returns one 2D point per matrix row, in row order. When fewer
// than two principal directions exist (D = 1, or a single row), the
// missing coordinates are zero rather than an error.
func (p *PCA) Project(m domain.Matrix) ([]domain.Point, error) {
	if len(m.Shape) != 2 {
		return nil, fmt.Errorf("%w: got rank %d", domain.ErrBadRank, len(m.Shape))
	}
	rows, cols := m.Rows(), m.Cols()
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("%w: got shape %v", domain.ErrBadRank, m.Shape)
	}
	if len(m.Data) != rows*cols {
		return nil, fmt.Errorf("matrix data length %d does not match shape %v", len(m.Data), m.Shape)
	}

	centered := mat.NewDense(rows, cols, append([]float64(nil), m.Data...))
	for j := 0; j < cols; j++ {
		col := mat.Col(nil, j, centered)
		mean := stat.Mean(col, nil)
		for i := 0; i < rows; i++ {
			centered.Set(i, j, centered.At(i, j)-mean)
		}
	}

	var svd mat.SVD
	if ok := svd.Factorize(centered, mat.SVDThin); !ok {
		return nil, fmt.Errorf("svd of %dx%d embedding matrix did not converge", rows, cols)
	}
	var v mat.Dense
	svd.VTo(&v)

	// V columns are the principal directions; at most min(rows, cols)
	// exist, so absent axes stay zero.
	_, ndirs := v.Dims()
	axes := min(2, ndirs)
	components := mat.NewDense(cols, 2, nil)
	for i := 0; i < cols; i++ {
		for j := 0; j < axes; j++ {
			components.Set(i, j, v.At(i, j))
		}
	}

	var projected mat.Dense
	projected.Mul(centered, components)

	points := make([]domain.Point, rows)
	for i := range points {
		points[i] = domain.Point{X: projected.At(i, 0), Y: projected.At(i, 1)}
	}
	return points, nil
}
