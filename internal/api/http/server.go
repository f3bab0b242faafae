package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/i474232898/weathertracker/internal/cities"
	"github.com/i474232898/weathertracker/internal/metrics"
	"github.com/i474232898/weathertracker/internal/views"
	"github.com/i474232898/weathertracker/internal/weather"
)

const (
	msgNotFound    = "Page not found"
	msgServerError = "Server error. Please try again later."
)

// Deps are the components the HTTP layer serves.
type Deps struct {
	Weather         *weather.Service
	Cities          *cities.Catalog
	Metrics         *metrics.Metrics // optional
	SuggestionLimit int
	Log             zerolog.Logger
}

// NewApp builds the Fiber application with middleware, views and all routes.
func NewApp(deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "weathertracker",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		Views:                 views.New(),
		ErrorHandler:          errorHandler(deps.Log),
	})

	// Global middleware
	app.Use(requestid.New(requestid.Config{
		Generator:  uuid.NewString,
		ContextKey: requestIDKey,
	}))
	app.Use(requestLogger(deps.Log, deps.Metrics))
	app.Use(recover.New())

	app.Use("/static", filesystem.New(filesystem.Config{
		Root:   http.FS(views.Static()),
		MaxAge: 3600,
	}))

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weathertracker",
		})
	})

	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	RegisterRoutes(app, deps)
	return app
}

// errorHandler renders the error page for browser routes and a JSON body under /api/.
func errorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		msg := msgServerError

		var e *fiber.Error
		if errors.As(err, &e) {
			code = e.Code
			if code < fiber.StatusInternalServerError {
				msg = e.Message
			}
		}

		api := strings.HasPrefix(c.Path(), "/api/")
		if code == fiber.StatusNotFound && !api {
			msg = msgNotFound
		}

		if code >= fiber.StatusInternalServerError {
			log.Error().Err(err).Str("path", c.Path()).Str("request_id", requestID(c)).Msg("request failed")
		}

		if api {
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": msg,
			})
		}
		return c.Status(code).Render("error", views.Page{Title: "Error", Error: msg})
	}
}
