package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/anhimov/library/src/dtos"
	"github.com/anhimov/library/src/services"
	"github.com/anhimov/library/src/validators"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type BookController struct {
	books     *services.BookService
	people    *services.PersonService
	catalog   *services.CatalogService
	validator *validators.BookValidator
	log       *zap.Logger
}

func NewBookController(books *services.BookService, people *services.PersonService, catalog *services.CatalogService, log *zap.Logger) *BookController {
	return &BookController{
		books:     books,
		people:    people,
		catalog:   catalog,
		validator: validators.NewBookValidator(books),
		log:       log,
	}
}

func (c *BookController) fail(ctx *gin.Context, err error) {
	c.log.Error("Book request failed", zap.String("path", ctx.Request.URL.Path), zap.Error(err))
	renderError(ctx, http.StatusInternalServerError, "Something went wrong")
}

// GetBooks handles GET /books?page=&size=&sort_by_year=
func (c *BookController) GetBooks(ctx *gin.Context) {
	page, ok := optionalInt(ctx, "page")
	if !ok {
		return
	}
	size, ok := optionalInt(ctx, "size")
	if !ok {
		return
	}
	sortByYear, err := strconv.ParseBool(ctx.DefaultQuery("sort_by_year", "false"))
	if err != nil {
		renderError(ctx, http.StatusBadRequest, "Invalid sort_by_year parameter")
		return
	}

	bookPage, err := c.books.ListBooks(ctx.Request.Context(), page, size, sortByYear)
	if err != nil {
		if errors.Is(err, services.ErrInvalidPage) {
			renderError(ctx, http.StatusBadRequest, err.Error())
			return
		}
		c.fail(ctx, err)
		return
	}
	render(ctx, http.StatusOK, "books/index", gin.H{"bookPage": bookPage})
}

// SearchForm handles GET /books/search
func (c *BookController) SearchForm(ctx *gin.Context) {
	render(ctx, http.StatusOK, "books/search", gin.H{})
}

// Search handles POST /books/search with the query form field
func (c *BookController) Search(ctx *gin.Context) {
	query := ctx.PostForm("query")
	if query == "" {
		query = ctx.Query("query")
	}

	books, err := c.books.SearchBooksByTitle(ctx.Request.Context(), query)
	if err != nil {
		c.fail(ctx, err)
		return
	}
	render(ctx, http.StatusOK, "books/search", gin.H{"query": query, "books": books})
}

// GetBook handles GET /books/:id. The view gets either the current owner or the
// people the book can be assigned to.
func (c *BookController) GetBook(ctx *gin.Context) {
	id, ok := idParam(ctx, "book")
	if !ok {
		return
	}

	book, err := c.books.GetBookByID(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrBookNotFound) {
			renderError(ctx, http.StatusNotFound, "Book not found")
			return
		}
		c.fail(ctx, err)
		return
	}

	data := gin.H{"book": book}
	owner, err := c.books.GetBookOwner(ctx.Request.Context(), id)
	if err != nil {
		c.fail(ctx, err)
		return
	}
	if owner != nil {
		data["bookOwner"] = owner
	} else {
		people, err := c.people.ListPeople(ctx.Request.Context())
		if err != nil {
			c.fail(ctx, err)
			return
		}
		data["people"] = people
	}
	render(ctx, http.StatusOK, "books/show", data)
}

// NewBook handles GET /books/new
func (c *BookController) NewBook(ctx *gin.Context) {
	render(ctx, http.StatusOK, "books/new", gin.H{"book": dtos.BookForm{}})
}

// CreateBook handles POST /books
func (c *BookController) CreateBook(ctx *gin.Context) {
	var form dtos.BookForm
	errs := validators.BindFailure(ctx.ShouldBind(&form))

	checked, err := c.validator.Validate(ctx.Request.Context(), &form)
	if err != nil {
		c.fail(ctx, err)
		return
	}
	errs = append(errs, checked...)
	if errs.HasErrors() {
		renderForm(ctx, "books/new", gin.H{"book": form}, errs)
		return
	}

	if _, err := c.books.CreateBook(ctx.Request.Context(), form.ToModel()); err != nil {
		if errors.Is(err, services.ErrDuplicateBook) {
			validators.RejectDuplicateBook(&errs)
			renderForm(ctx, "books/new", gin.H{"book": form}, errs)
			return
		}
		c.fail(ctx, err)
		return
	}
	redirect(ctx, "/books")
}

// EditBook handles GET /books/:id/edit
func (c *BookController) EditBook(ctx *gin.Context) {
	id, ok := idParam(ctx, "book")
	if !ok {
		return
	}

	book, err := c.books.GetBookByID(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrBookNotFound) {
			renderError(ctx, http.StatusNotFound, "Book not found")
			return
		}
		c.fail(ctx, err)
		return
	}
	render(ctx, http.StatusOK, "books/edit", gin.H{"id": id, "book": dtos.BookFormFrom(book)})
}

// UpdateBook handles PATCH /books/:id
func (c *BookController) UpdateBook(ctx *gin.Context) {
	id, ok := idParam(ctx, "book")
	if !ok {
		return
	}

	var form dtos.BookForm
	errs := validators.BindFailure(ctx.ShouldBind(&form))
	errs = append(errs, validators.CheckStruct(&form)...)
	if errs.HasErrors() {
		renderForm(ctx, "books/edit", gin.H{"id": id, "book": form}, errs)
		return
	}

	if err := c.books.UpdateBook(ctx.Request.Context(), id, form.ToModel()); err != nil {
		c.fail(ctx, err)
		return
	}
	redirect(ctx, "/books")
}

// DeleteBook handles DELETE /books/:id
func (c *BookController) DeleteBook(ctx *gin.Context) {
	id, ok := idParam(ctx, "book")
	if !ok {
		return
	}

	if err := c.books.DeleteBook(ctx.Request.Context(), id); err != nil {
		c.fail(ctx, err)
		return
	}
	redirect(ctx, "/books")
}

// AssignBook handles PATCH /books/:id/assign with the personId form field
func (c *BookController) AssignBook(ctx *gin.Context) {
	id, ok := idParam(ctx, "book")
	if !ok {
		return
	}

	var form dtos.AssignForm
	if err := ctx.ShouldBind(&form); err != nil {
		renderError(ctx, http.StatusBadRequest, "Invalid person")
		return
	}

	person, err := c.people.GetPersonByID(ctx.Request.Context(), form.PersonId)
	if err != nil {
		if errors.Is(err, services.ErrPersonNotFound) {
			renderError(ctx, http.StatusBadRequest, "Person not found")
			return
		}
		c.fail(ctx, err)
		return
	}

	if err := c.books.AssignBook(ctx.Request.Context(), id, person); err != nil {
		c.fail(ctx, err)
		return
	}
	redirect(ctx, fmt.Sprintf("/books/%d", id))
}

// ReleaseBook handles PATCH /books/:id/release
func (c *BookController) ReleaseBook(ctx *gin.Context) {
	id, ok := idParam(ctx, "book")
	if !ok {
		return
	}

	if err := c.books.ReleaseBook(ctx.Request.Context(), id); err != nil {
		c.fail(ctx, err)
		return
	}
	redirect(ctx, fmt.Sprintf("/books/%d", id))
}

// ExportBooks handles GET /books/export
func (c *BookController) ExportBooks(ctx *gin.Context) {
	ctx.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Header("Content-Disposition", `attachment; filename="books.xlsx"`)
	if err := c.catalog.ExportBooks(ctx.Request.Context(), ctx.Writer); err != nil {
		c.log.Error("Export failed", zap.Error(err))
		ctx.Status(http.StatusInternalServerError)
	}
}

// ImportForm handles GET /books/import
func (c *BookController) ImportForm(ctx *gin.Context) {
	render(ctx, http.StatusOK, "books/import", gin.H{})
}

// ImportBooks handles POST /books/import with either a multipart file field
// or a Google Drive share link in the url field
func (c *BookController) ImportBooks(ctx *gin.Context) {
	if link := ctx.PostForm("url"); link != "" {
		result, err := c.catalog.ImportBooksFromDrive(ctx.Request.Context(), link)
		c.importDone(ctx, result, err)
		return
	}

	header, err := ctx.FormFile("file")
	if err != nil {
		render(ctx, http.StatusBadRequest, "books/import", gin.H{"error": "An .xlsx file or a Google Drive link is required"})
		return
	}
	file, err := header.Open()
	if err != nil {
		c.fail(ctx, err)
		return
	}
	defer file.Close()

	result, err := c.catalog.ImportBooks(ctx.Request.Context(), file)
	c.importDone(ctx, result, err)
}

func (c *BookController) importDone(ctx *gin.Context, result *services.ImportResult, err error) {
	switch {
	case err == nil:
		render(ctx, http.StatusOK, "books/import", gin.H{"result": result})
	case errors.Is(err, services.ErrNothingImported):
		render(ctx, http.StatusUnprocessableEntity, "books/import", gin.H{"result": result, "error": err.Error()})
	case result != nil:
		c.fail(ctx, err)
	default:
		c.log.Warn("Import rejected", zap.Error(err))
		render(ctx, http.StatusBadRequest, "books/import", gin.H{"error": err.Error()})
	}
}
