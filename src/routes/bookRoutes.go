package routes

import (
	"github.com/anhimov/library/src/controllers"
	"github.com/gin-gonic/gin"
)

func SetupBookRoutes(router *gin.Engine, controller *controllers.BookController, guards ...gin.HandlerFunc) {
	// Protected routes
	book := router.Group("/books")
	book.Use(guards...)
	{
		book.GET("", controller.GetBooks)
		book.GET("/new", controller.NewBook)
		book.POST("", controller.CreateBook)

		book.GET("/search", controller.SearchForm)
		book.POST("/search", controller.Search)

		// Spreadsheet
		book.GET("/export", controller.ExportBooks)
		book.GET("/import", controller.ImportForm)
		book.POST("/import", controller.ImportBooks)

		book.GET("/:id", controller.GetBook)
		book.GET("/:id/edit", controller.EditBook)
		book.PATCH("/:id", controller.UpdateBook)
		book.DELETE("/:id", controller.DeleteBook)

		book.PATCH("/:id/assign", controller.AssignBook)
		book.PATCH("/:id/release", controller.ReleaseBook)
	}
}
