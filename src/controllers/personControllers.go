package controllers

import (
	"errors"
	"net/http"

	"github.com/anhimov/library/src/dtos"
	"github.com/anhimov/library/src/services"
	"github.com/anhimov/library/src/validators"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PersonController struct {
	service   *services.PersonService
	validator *validators.PersonValidator
	log       *zap.Logger
}

func NewPersonController(service *services.PersonService, log *zap.Logger) *PersonController {
	return &PersonController{
		service:   service,
		validator: validators.NewPersonValidator(service),
		log:       log,
	}
}

func (c *PersonController) fail(ctx *gin.Context, err error) {
	c.log.Error("Person request failed", zap.String("path", ctx.Request.URL.Path), zap.Error(err))
	renderError(ctx, http.StatusInternalServerError, "Something went wrong")
}

// GetPeople handles GET /people
func (c *PersonController) GetPeople(ctx *gin.Context) {
	people, err := c.service.ListPeople(ctx.Request.Context())
	if err != nil {
		c.fail(ctx, err)
		return
	}
	render(ctx, http.StatusOK, "people/index", gin.H{"people": people})
}

// GetPerson handles GET /people/:id along with the books the person holds
func (c *PersonController) GetPerson(ctx *gin.Context) {
	id, ok := idParam(ctx, "person")
	if !ok {
		return
	}

	person, err := c.service.GetPersonByID(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrPersonNotFound) {
			renderError(ctx, http.StatusNotFound, "Person not found")
			return
		}
		c.fail(ctx, err)
		return
	}

	books, err := c.service.GetBooksOwnedBy(ctx.Request.Context(), id)
	if err != nil {
		c.fail(ctx, err)
		return
	}
	render(ctx, http.StatusOK, "people/show", gin.H{"person": person, "books": books})
}

// NewPerson handles GET /people/new
func (c *PersonController) NewPerson(ctx *gin.Context) {
	render(ctx, http.StatusOK, "people/new", gin.H{"person": dtos.PersonForm{}})
}

// CreatePerson handles POST /people
func (c *PersonController) CreatePerson(ctx *gin.Context) {
	var form dtos.PersonForm
	errs := validators.BindFailure(ctx.ShouldBind(&form))

	checked, err := c.validator.Validate(ctx.Request.Context(), &form)
	if err != nil {
		c.fail(ctx, err)
		return
	}
	errs = append(errs, checked...)
	if errs.HasErrors() {
		renderForm(ctx, "people/new", gin.H{"person": form}, errs)
		return
	}

	if _, err := c.service.CreatePerson(ctx.Request.Context(), form.ToModel()); err != nil {
		c.fail(ctx, err)
		return
	}
	redirect(ctx, "/people")
}

// EditPerson handles GET /people/:id/edit
func (c *PersonController) EditPerson(ctx *gin.Context) {
	id, ok := idParam(ctx, "person")
	if !ok {
		return
	}

	person, err := c.service.GetPersonByID(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrPersonNotFound) {
			renderError(ctx, http.StatusNotFound, "Person not found")
			return
		}
		c.fail(ctx, err)
		return
	}
	render(ctx, http.StatusOK, "people/edit", gin.H{"id": id, "person": dtos.PersonFormFrom(person)})
}

// UpdatePerson handles PATCH /people/:id
func (c *PersonController) UpdatePerson(ctx *gin.Context) {
	id, ok := idParam(ctx, "person")
	if !ok {
		return
	}

	var form dtos.PersonForm
	errs := validators.BindFailure(ctx.ShouldBind(&form))
	errs = append(errs, validators.CheckStruct(&form)...)
	if errs.HasErrors() {
		renderForm(ctx, "people/edit", gin.H{"id": id, "person": form}, errs)
		return
	}

	if err := c.service.UpdatePerson(ctx.Request.Context(), id, form.ToModel()); err != nil {
		c.fail(ctx, err)
		return
	}
	redirect(ctx, "/people")
}

// DeletePerson handles DELETE /people/:id
func (c *PersonController) DeletePerson(ctx *gin.Context) {
	id, ok := idParam(ctx, "person")
	if !ok {
		return
	}

	if err := c.service.DeletePerson(ctx.Request.Context(), id); err != nil {
		c.fail(ctx, err)
		return
	}
	redirect(ctx, "/people")
}
