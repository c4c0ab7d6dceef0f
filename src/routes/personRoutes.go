package routes

import (
	"github.com/anhimov/library/src/controllers"
	"github.com/gin-gonic/gin"
)

func SetupPersonRoutes(router *gin.Engine, controller *controllers.PersonController, guards ...gin.HandlerFunc) {
	// Protected routes
	person := router.Group("/people")
	person.Use(guards...)
	{
		person.GET("", controller.GetPeople)
		person.GET("/new", controller.NewPerson)
		person.POST("", controller.CreatePerson)
		person.GET("/:id", controller.GetPerson)
		person.GET("/:id/edit", controller.EditPerson)
		person.PATCH("/:id", controller.UpdatePerson)
		person.DELETE("/:id", controller.DeletePerson)
	}
}
