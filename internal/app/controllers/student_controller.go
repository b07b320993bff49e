package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/mathplan/internal/app/models/dto"
	"github.com/yigit/mathplan/internal/app/services"
	"github.com/yigit/mathplan/internal/middleware"
)

// StudentController manages stored academic records
type StudentController struct {
	studentService services.StudentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService) *StudentController {
	return &StudentController{
		studentService: studentService,
	}
}

// GetStudentRecord retrieves a student's academic record
// @Summary Get a student's record
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.StudentRecordResponse} "Record retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id}/record [get]
func (c *StudentController) GetStudentRecord(ctx *gin.Context) {
	rec, err := c.studentService.GetRecord(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.NewStudentRecordResponse(rec),
		Timestamp: time.Now(),
	})
}

// SaveStudentRecord replaces a student's academic record
// @Summary Save a student's record
// @Description Creates or replaces the completed, transfer and placement rows of a student.
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Param request body dto.SaveStudentRecordRequest true "Academic record"
// @Success 200 {object} dto.APIResponse{data=dto.StudentRecordResponse} "Record saved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Major not found"
// @Router /students/{id}/record [put]
func (c *StudentController) SaveStudentRecord(ctx *gin.Context) {
	var req dto.SaveStudentRecordRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	rec := req.ToModel(ctx.Param("id"))
	if err := c.studentService.SaveRecord(ctx, ctx.Param("id"), rec); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.NewStudentRecordResponse(rec),
		Timestamp: time.Now(),
	})
}
