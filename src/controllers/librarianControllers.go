package controllers

import (
	"errors"
	"net/http"

	"github.com/anhimov/library/src/middleware"
	"github.com/anhimov/library/src/models"
	"github.com/anhimov/library/src/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type LibrarianController struct {
	service *services.LibrarianService
	secure  bool
	log     *zap.Logger
}

// NewLibrarianController builds the controller; secure marks the token cookie HTTPS-only.
func NewLibrarianController(service *services.LibrarianService, secure bool, log *zap.Logger) *LibrarianController {
	return &LibrarianController{service: service, secure: secure, log: log}
}

// LoginForm handles GET /login
func (c *LibrarianController) LoginForm(ctx *gin.Context) {
	render(ctx, http.StatusOK, "login", gin.H{})
}

// Login handles POST /login, answering with a token cookie and a redirect for
// browsers or the bare token for JSON clients
func (c *LibrarianController) Login(ctx *gin.Context) {
	var request models.LoginRequest
	if err := ctx.ShouldBind(&request); err != nil {
		render(ctx, http.StatusBadRequest, "login", gin.H{"error": "Username and password are required"})
		return
	}

	token, err := c.service.Authenticate(ctx.Request.Context(), request.Username, request.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			render(ctx, http.StatusUnauthorized, "login", gin.H{"error": err.Error(), "username": request.Username})
			return
		}
		c.log.Error("Login failed", zap.Error(err))
		renderError(ctx, http.StatusInternalServerError, "Something went wrong")
		return
	}

	if wantsJSON(ctx) {
		ctx.JSON(http.StatusOK, gin.H{"token": token})
		return
	}
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(middleware.TokenCookie, token, int(services.TokenTTL.Seconds()), "/", "", c.secure, true)
	redirect(ctx, "/books")
}

// Logout handles POST /logout
func (c *LibrarianController) Logout(ctx *gin.Context) {
	ctx.SetCookie(middleware.TokenCookie, "", -1, "/", "", c.secure, true)
	redirect(ctx, "/login")
}

// GetLibrarians handles GET /librarians
func (c *LibrarianController) GetLibrarians(ctx *gin.Context) {
	librarians, err := c.service.ListLibrarians(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, librarians)
}

// CreateLibrarian handles POST /librarians
func (c *LibrarianController) CreateLibrarian(ctx *gin.Context) {
	var request models.LoginRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	librarian, err := c.service.CreateLibrarian(ctx.Request.Context(), request.Username, request.Password)
	if err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, models.RegisterResponse{ID: librarian.Id, Username: librarian.Username})
}

// DeleteLibrarian handles DELETE /librarians/:id
func (c *LibrarianController) DeleteLibrarian(ctx *gin.Context) {
	id, ok := idParam(ctx, "librarian")
	if !ok {
		return
	}

	if err := c.service.DeleteLibrarian(ctx.Request.Context(), id); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.Status(http.StatusNoContent)
}
