package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/learnc/course-portal/internal/api/metrics"
	"github.com/learnc/course-portal/internal/core/domain"
	"github.com/learnc/course-portal/internal/core/ports"
)

// CourseHandler serves the catalog pages: dashboard, part detail, part start.
type CourseHandler struct {
	catalog ports.CatalogService
}

func NewCourseHandler(catalog ports.CatalogService) *CourseHandler {
	return &CourseHandler{catalog: catalog}
}

// Index routes the bare domain: authenticated users land on the dashboard,
// everyone else on the login page.
func (h *CourseHandler) Index(c echo.Context) error {
	if currentUser(c) != nil {
		return c.Redirect(http.StatusSeeOther, "/dashboard")
	}
	return c.Redirect(http.StatusSeeOther, "/login")
}

// Dashboard renders the catalog overview.
func (h *CourseHandler) Dashboard(c echo.Context) error {
	return c.Render(http.StatusOK, "dashboard", echo.Map{
		"Title": "Dashboard",
		"User":  currentUser(c),
		"Parts": h.catalog.ListParts(),
		"Flash": popFlash(c),
	})
}

// PartDetail renders one part with its classes.
func (h *CourseHandler) PartDetail(c echo.Context) error {
	part, err := h.partFromPath(c)
	if err != nil {
		return err
	}

	metrics.PartViewsTotal.WithLabelValues(strconv.Itoa(part.ID)).Inc()
	return c.Render(http.StatusOK, "part_detail", echo.Map{
		"Title": part.Title,
		"User":  currentUser(c),
		"Part":  part,
		"Flash": popFlash(c),
	})
}

// StartPart acknowledges a "start" submission. There is no progress state to
// record; the handler just confirms and sends the user back to the overview.
func (h *CourseHandler) StartPart(c echo.Context) error {
	part, err := h.partFromPath(c)
	if err != nil {
		return err
	}

	metrics.PartStartsTotal.WithLabelValues(strconv.Itoa(part.ID)).Inc()
	setFlash(c, "success", fmt.Sprintf("%s kicked off. Feel free to explore other parts anytime.", part.Title))
	return c.Redirect(http.StatusSeeOther, "/dashboard")
}

func (h *CourseHandler) partFromPath(c echo.Context) (*domain.CoursePart, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return nil, domain.ErrPartNotFound
	}
	return h.catalog.FindPart(id)
}
