package ui

import "microtest/internal/domain"

// Viewer displays the failures of a saved run
type Viewer interface {
	View(report *domain.RunReport) error
}

var _ Viewer = (*ErrorViewer)(nil)
