package app

import (
	"educonnect_backend/docs"
	"educonnect_backend/internal/config"
	"educonnect_backend/internal/middleware"
	"educonnect_backend/internal/model"
	"educonnect_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.Health)

	api := router.Group("/api")

	// Public reads and auth endpoints.
	{
		api.POST("/auth/register", c.auth.Register)
		api.POST("/auth/login", c.auth.Login)

		api.GET("/tests", c.test.List)
		api.GET("/tests/:testId", c.test.Get)
		api.GET("/assignments", c.assignment.List)
		api.GET("/assignments/:assignmentId", c.assignment.Get)
		api.GET("/polls", c.poll.List)
		api.GET("/polls/:pollId", c.poll.Get)
		api.GET("/posts", c.post.List)
		api.GET("/posts/:postId", c.post.Get)
		api.GET("/resources", c.resource.List)
		api.GET("/resources/:resourceId", c.resource.Get)
		api.GET("/resources/:resourceId/download", c.resource.Download)
	}

	// Any authenticated caller: profile, attempts and ballots.
	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(cfg))
	{
		authed.GET("/users/me", c.user.GetProfile)
		authed.PUT("/users/me", c.user.UpdateProfile)

		authed.POST("/tests/:testId/submit", c.test.Submit)
		authed.POST("/assignments/:assignmentId/submit", c.assignment.Submit)
		authed.POST("/polls/:pollId/vote", c.poll.Vote)
	}

	// Authoring roles only; per-resource ownership is checked in the services.
	authoring := api.Group("")
	authoring.Use(middleware.AuthMiddleware(cfg),
		middleware.RoleMiddleware(model.Teacher, model.Institution))
	{
		authoring.POST("/tests", c.test.Create)
		authoring.PUT("/tests/:testId", c.test.Update)
		authoring.DELETE("/tests/:testId", c.test.Delete)
		authoring.POST("/tests/:testId/submissions/:studentId/grade", c.test.Grade)

		authoring.POST("/assignments", c.assignment.Create)
		authoring.PUT("/assignments/:assignmentId", c.assignment.Update)
		authoring.DELETE("/assignments/:assignmentId", c.assignment.Delete)
		authoring.POST("/assignments/:assignmentId/submissions/:studentId/grade", c.assignment.Grade)

		authoring.POST("/polls", c.poll.Create)
		authoring.PUT("/polls/:pollId", c.poll.Update)
		authoring.DELETE("/polls/:pollId", c.poll.Delete)

		authoring.POST("/posts", c.post.Create)
		authoring.PUT("/posts/:postId", c.post.Update)
		authoring.DELETE("/posts/:postId", c.post.Delete)

		authoring.POST("/resources", c.resource.Upload)
		authoring.DELETE("/resources/:resourceId", c.resource.Delete)
	}
}
