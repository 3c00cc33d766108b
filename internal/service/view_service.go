package service

import (
	"path/filepath"

	"embview/internal/domain"
)

// ViewServiceImpl runs the load, project, render pipeline once. Any error
// aborts the run before the output file is touched.
type ViewServiceImpl struct {
	matrices  domain.MatrixLoader
	labels    domain.LabelLoader
	projector domain.Projector
	renderer  domain.Renderer
}

func NewViewService(matrices domain.MatrixLoader, labels domain.LabelLoader, projector domain.Projector, renderer domain.Renderer) *ViewServiceImpl {
	return &ViewServiceImpl{matrices: matrices, labels: labels, projector: projector, renderer: renderer}
}

// Build reads the array store and metadata, projects the embeddings to 2D
// and writes the rendered view to outputPath. It returns the resolved
// absolute path of the written file.
func (s *ViewServiceImpl) Build(storePath, metaPath, outputPath string) (string, error) {
	matrix, err := s.matrices.Load(storePath)
	if err != nil {
		return "", err
	}
	labels, err := s.labels.Load(metaPath, matrix.Rows())
	if err != nil {
		return "", err
	}
	points, err := s.projector.Project(matrix)
	if err != nil {
		return "", err
	}
	doc, err := s.renderer.Build(points, labels)
	if err != nil {
		return "", err
	}
	if err := s.renderer.Write(doc, outputPath); err != nil {
		return "", err
	}
	abs, err := filepath.Abs(outputPath)
	if err != nil {
		return outputPath, nil
	}
	return abs, nil
}
