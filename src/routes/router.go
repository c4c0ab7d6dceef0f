package routes

import (
	"context"
	"fmt"
	"net/http"

	"github.com/anhimov/library/src/config"
	"github.com/anhimov/library/src/controllers"
	"github.com/anhimov/library/src/middleware"
	"github.com/anhimov/library/src/repositories"
	"github.com/anhimov/library/src/services"
	"github.com/anhimov/library/src/utils"
	"github.com/anhimov/library/src/views"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NewRouter wires repositories, services and controllers into a gin engine.
func NewRouter(cfg *config.Config, db *gorm.DB, log *zap.Logger) (*gin.Engine, error) {
	templates, err := views.Templates(cfg.AuthEnabled())
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	router := gin.New()
	router.Use(middleware.RequestLogger(log), gin.Recovery(), middleware.SetupCORS(cfg.CORSOrigins))
	router.SetHTMLTemplate(templates)

	// Services setup
	bookRepository := repositories.NewBookRepository(db)
	personRepository := repositories.NewPersonRepository(db)
	bookService := services.NewBookService(bookRepository, log)
	personService := services.NewPersonService(personRepository, bookRepository, log)
	catalogService := services.NewCatalogService(bookService, personService, log)
	if cfg.DriveEnabled() {
		drive, err := utils.NewGoogleDrive(context.Background(), cfg.GoogleDriveCredentialsPath, cfg.GoogleDriveCredentialsJSON, log)
		if err != nil {
			return nil, err
		}
		catalogService.WithDrive(drive)
	}

	var guards []gin.HandlerFunc
	if cfg.AuthEnabled() {
		guards = append(guards, middleware.AuthMiddleware(cfg.JWTSecret))
		librarianService := services.NewLibrarianService(db, cfg.JWTSecret, log)
		secure := cfg.GinMode == gin.ReleaseMode
		SetupLibrarianRoutes(router, controllers.NewLibrarianController(librarianService, secure, log), guards...)
	} else {
		log.Warn("JWT_SECRET is not set, library routes are not protected")
	}

	// Routes setup
	SetupBookRoutes(router, controllers.NewBookController(bookService, personService, catalogService, log), guards...)
	SetupPersonRoutes(router, controllers.NewPersonController(personService, log), guards...)
	router.GET("/health", controllers.NewHealthController(db).Health)

	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/books")
	})
	router.NoRoute(controllers.NotFound)

	return router, nil
}

// NewHandler lets HTML forms reach PATCH and DELETE routes.
func NewHandler(router *gin.Engine) http.Handler {
	return middleware.MethodOverride(router)
}
