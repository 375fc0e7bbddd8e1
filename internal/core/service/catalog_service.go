package service

import (
	"fmt"

	"github.com/learnc/course-portal/internal/core/domain"
)

// CatalogService holds the static course catalog. The parts are built once at
// construction and never mutated; lookups return copies so callers cannot
// reach into the shared slices.
type CatalogService struct {
	parts []domain.CoursePart
}

func NewCatalogService() *CatalogService {
	return &CatalogService{parts: buildParts()}
}

// ListParts returns the parts in catalog order.
func (s *CatalogService) ListParts() []domain.CoursePart {
	out := make([]domain.CoursePart, len(s.parts))
	for i, p := range s.parts {
		out[i] = clonePart(p)
	}
	return out
}

// FindPart returns the part with the given id, or ErrPartNotFound.
func (s *CatalogService) FindPart(id int) (*domain.CoursePart, error) {
	for _, p := range s.parts {
		if p.ID == id {
			clone := clonePart(p)
			return &clone, nil
		}
	}
	return nil, domain.ErrPartNotFound
}

func clonePart(p domain.CoursePart) domain.CoursePart {
	clone := p
	clone.Classes = append([]domain.CourseClass(nil), p.Classes...)
	return clone
}

// makeClasses generates the fixed ten classes of a part.
func makeClasses(partID int) []domain.CourseClass {
	classes := make([]domain.CourseClass, 0, domain.ClassesPerPart)
	for i := 1; i <= domain.ClassesPerPart; i++ {
		classes = append(classes, domain.CourseClass{
			ID:          i,
			Title:       fmt.Sprintf("Class %02d", i),
			Description: fmt.Sprintf("Learn essential concepts in Part %d, Class %02d.", partID, i),
		})
	}
	return classes
}

func buildParts() []domain.CoursePart {
	specs := []struct {
		title       string
		description string
	}{
		{
			"Part 1: Fundamentals",
			"Begin your C programming journey! Learn the fundamentals, syntax basics, and write your first programs. Perfect for absolute beginners.",
		},
		{
			"Part 2: Variables & Data Types",
			"Master variables, constants, and data types in C. Understand memory allocation, type casting, and how to work with different numeric and character types.",
		},
		{
			"Part 3: Control Flow",
			"Learn conditional statements, loops, and program flow control. Master if-else, switch, for, while, and do-while loops to build dynamic programs.",
		},
		{
			"Part 4: Functions & Scope",
			"Dive into functions, parameters, return values, and variable scope. Learn to write reusable, modular code and understand recursion.",
		},
		{
			"Part 5: Arrays & Strings",
			"Work with arrays, multidimensional arrays, and string manipulation. Learn essential algorithms for searching, sorting, and string operations.",
		},
		{
			"Part 6: Pointers & Memory",
			"Master pointers, memory addresses, and dynamic memory allocation. Understand the power and pitfalls of pointer arithmetic and memory management.",
		},
		{
			"Part 7: Structures & Unions",
			"Learn to create custom data types with structures and unions. Organize complex data and build more sophisticated programs.",
		},
		{
			"Part 8: Advanced Topics",
			"Explore file I/O, preprocessor directives, error handling, and advanced C features. Prepare for real-world programming challenges.",
		},
	}

	parts := make([]domain.CoursePart, 0, len(specs))
	for i, sp := range specs {
		id := i + 1
		parts = append(parts, domain.CoursePart{
			ID:          id,
			Title:       sp.title,
			Description: sp.description,
			Classes:     makeClasses(id),
		})
	}
	return parts
}
