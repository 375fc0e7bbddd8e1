package ports

import "github.com/learnc/course-portal/internal/core/domain"

// CatalogService exposes the static course catalog for display.
type CatalogService interface {
	ListParts() []domain.CoursePart
	FindPart(id int) (*domain.CoursePart, error)
}
