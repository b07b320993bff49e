package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/mathplan/internal/app/models/dto"
	"github.com/yigit/mathplan/internal/app/services"
	"github.com/yigit/mathplan/internal/middleware"
)

// PlanController computes course plans
type PlanController struct {
	planService services.PlanService
}

// NewPlanController creates a new PlanController
func NewPlanController(planService services.PlanService) *PlanController {
	return &PlanController{
		planService: planService,
	}
}

// splitList splits a comma-separated query parameter, dropping blanks. A missing
// parameter yields nil.
func splitList(value string, present bool) []string {
	if !present {
		return nil
	}
	out := []string{}
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// GetStudentPlan computes the plan of a stored student
// @Summary Get a student's plan
// @Description Computes the critical, recommended and typical course sequences of a student.
// @Description Without majors the student's selected majors are used.
// @Tags plans
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Param majors query string false "Comma-separated program codes" example(BZ-BS,CHEM-BS)
// @Param variant query string false "Single variant" Enums(critical, recommended, typical)
// @Param canRegister query string false "Comma-separated courses the student may register for"
// @Success 200 {object} dto.APIResponse{data=dto.PlanResponse} "Plan computed successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid majors or variant"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Student or major not found"
// @Failure 503 {object} dto.ErrorResponse "Reference catalog unavailable"
// @Router /students/{id}/plan [get]
func (c *PlanController) GetStudentPlan(ctx *gin.Context) {
	variant, err := services.ParseVariant(ctx.Query("variant"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	majorsParam, hasMajors := ctx.GetQuery("majors")
	canRegisterParam, hasCanRegister := ctx.GetQuery("canRegister")

	plan, err := c.planService.StudentPlan(ctx, ctx.Param("id"), splitList(majorsParam, hasMajors))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	response, err := plan.Response(variant, splitList(canRegisterParam, hasCanRegister))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      response,
		Timestamp: time.Now(),
	})
}

// PreviewPlan computes a plan for an inline student record
// @Summary Preview a plan
// @Description Computes course sequences for a record that is not stored. Nothing is cached.
// @Tags plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.PreviewPlanRequest true "Majors and student record"
// @Success 200 {object} dto.APIResponse{data=dto.PlanResponse} "Plan computed successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Major not found"
// @Router /plans/preview [post]
func (c *PlanController) PreviewPlan(ctx *gin.Context) {
	var req dto.PreviewPlanRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	plan, err := c.planService.Preview(ctx, req.Student.ToDomain(), req.Majors)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	response, err := plan.Response(req.Variant, req.CanRegister)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      response,
		Timestamp: time.Now(),
	})
}
