package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/mathplan/internal/app/controllers"
	"github.com/yigit/mathplan/internal/app/models/dto"
	"github.com/yigit/mathplan/internal/middleware"
	"github.com/yigit/mathplan/internal/pkg/auth"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	catalogController *controllers.CatalogController,
	planController *controllers.PlanController,
	studentController *controllers.StudentController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.APIResponse{
			Data:      gin.H{"status": "ok"},
			Timestamp: time.Now(),
		})
	})

	// --- Public catalog routes ---
	courses := v1.Group("/courses")
	{
		courses.GET("", catalogController.ListCourses)
		courses.GET("/:id", catalogController.GetCourse)
	}
	v1.GET("/course-groups", catalogController.ListCourseGroups)

	majors := v1.Group("/majors")
	{
		majors.GET("", catalogController.ListMajors)
		majors.GET("/:code", catalogController.GetMajor)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth(), authMiddleware.RoleRequired(auth.RoleAdvisor, auth.RoleAdmin))
	{
		students := authenticated.Group("/students/:id")
		{
			students.GET("/plan", planController.GetStudentPlan)
			students.GET("/record", studentController.GetStudentRecord)
			students.PUT("/record", studentController.SaveStudentRecord)
		}

		authenticated.POST("/plans/preview", planController.PreviewPlan)
	}

	// Catalog maintenance is limited to admins
	admin := v1.Group("/catalog")
	admin.Use(authMiddleware.JWTAuth(), authMiddleware.RoleRequired(auth.RoleAdmin))
	{
		admin.POST("/reload", catalogController.ReloadCatalog)
	}
}
