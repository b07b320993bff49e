package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/mathplan/internal/app/models"
	"github.com/yigit/mathplan/internal/app/models/dto"
	"github.com/yigit/mathplan/internal/app/services"
	"github.com/yigit/mathplan/internal/middleware"
	"github.com/yigit/mathplan/internal/pkg/helpers"
)

// CatalogController serves the reference catalog
type CatalogController struct {
	catalogService services.CatalogService
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(catalogService services.CatalogService) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
	}
}

func matchesCourse(c models.Course, query string) bool {
	query = strings.ToLower(query)
	return strings.Contains(strings.ToLower(c.ID), query) ||
		strings.Contains(strings.ToLower(c.Label), query) ||
		strings.Contains(strings.ToLower(c.Title), query)
}

// ListCourses lists catalog courses
// @Summary List courses
// @Description Lists catalog courses, optionally filtered by id, label or title
// @Tags catalog
// @Produce json
// @Param q query string false "Case-insensitive filter"
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(25)
// @Success 200 {object} dto.APIResponse{data=dto.CourseListResponse} "Courses retrieved successfully"
// @Failure 503 {object} dto.ErrorResponse "Reference catalog unavailable"
// @Router /courses [get]
func (c *CatalogController) ListCourses(ctx *gin.Context) {
	courses, err := c.catalogService.ListCourses(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if query := strings.TrimSpace(ctx.Query("q")); query != "" {
		filtered := make([]models.Course, 0, len(courses))
		for _, course := range courses {
			if matchesCourse(course, query) {
				filtered = append(filtered, course)
			}
		}
		courses = filtered
	}

	page, size := helpers.ParsePaginationParams(ctx)
	pageItems, pagination := helpers.Paginate(courses, page, size)

	response := dto.CourseListResponse{
		Courses:    make([]dto.CourseResponse, 0, len(pageItems)),
		Pagination: pagination,
	}
	for _, course := range pageItems {
		response.Courses = append(response.Courses, dto.NewCourseResponse(course))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      response,
		Timestamp: time.Now(),
	})
}

// GetCourse retrieves a course by id
// @Summary Get course
// @Tags catalog
// @Produce json
// @Param id path string true "Course ID" example(M 160)
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse} "Course retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id} [get]
func (c *CatalogController) GetCourse(ctx *gin.Context) {
	course, err := c.catalogService.GetCourse(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.NewCourseResponse(*course),
		Timestamp: time.Now(),
	})
}

// ListCourseGroups lists the explicit course groups
// @Summary List course groups
// @Tags catalog
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.CourseGroupResponse} "Course groups retrieved successfully"
// @Failure 503 {object} dto.ErrorResponse "Reference catalog unavailable"
// @Router /course-groups [get]
func (c *CatalogController) ListCourseGroups(ctx *gin.Context) {
	catalog, err := c.catalogService.Snapshot(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	courses := catalog.Planner.Reference().Courses
	groups := make([]dto.CourseGroupResponse, 0, len(catalog.Groups))
	for _, g := range catalog.Groups {
		groups = append(groups, dto.NewCourseGroupResponse(g, courses))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      groups,
		Timestamp: time.Now(),
	})
}

// ListMajors lists the majors with math requirements
// @Summary List majors
// @Tags catalog
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.MajorResponse} "Majors retrieved successfully"
// @Router /majors [get]
func (c *CatalogController) ListMajors(ctx *gin.Context) {
	majors, err := c.catalogService.ListMajors(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	response := make([]dto.MajorResponse, 0, len(majors))
	for _, m := range majors {
		response = append(response, dto.NewMajorResponse(m))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      response,
		Timestamp: time.Now(),
	})
}

// GetMajor retrieves the decoded requirements of a major
// @Summary Get major
// @Tags catalog
// @Produce json
// @Param code path string true "Program code" example(BZ-BS)
// @Success 200 {object} dto.APIResponse{data=dto.MajorResponse} "Major retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Major not found"
// @Router /majors/{code} [get]
func (c *CatalogController) GetMajor(ctx *gin.Context) {
	major, err := c.catalogService.GetMajor(ctx, strings.ToUpper(ctx.Param("code")))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.NewMajorResponse(*major),
		Timestamp: time.Now(),
	})
}

// ReloadCatalog forces a reload of the reference catalog
// @Summary Reload catalog
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.CatalogVersionResponse} "Catalog reloaded"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Admin role required"
// @Failure 503 {object} dto.ErrorResponse "Reference catalog unavailable"
// @Router /catalog/reload [post]
func (c *CatalogController) ReloadCatalog(ctx *gin.Context) {
	catalog, err := c.catalogService.Reload(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.NewCatalogVersionResponse(catalog.Version, catalog.LoadedAt, len(catalog.Courses), len(catalog.Majors)),
		Timestamp: time.Now(),
	})
}
