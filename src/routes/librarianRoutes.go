package routes

import (
	"github.com/anhimov/library/src/controllers"
	"github.com/gin-gonic/gin"
)

func SetupLibrarianRoutes(router *gin.Engine, controller *controllers.LibrarianController, guards ...gin.HandlerFunc) {
	// Public routes
	router.GET("/login", controller.LoginForm)
	router.POST("/login", controller.Login)
	router.POST("/logout", controller.Logout)

	// Protected routes
	librarian := router.Group("/librarians")
	librarian.Use(guards...)
	{
		librarian.GET("", controller.GetLibrarians)
		librarian.POST("", controller.CreateLibrarian)
		librarian.DELETE("/:id", controller.DeleteLibrarian)
	}
}
