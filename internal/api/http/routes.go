package httpapi

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weathertracker/internal/store"
	"github.com/i474232898/weathertracker/internal/views"
	"github.com/i474232898/weathertracker/internal/weather"
)

const (
	msgMissingLocation = "Please enter a location"
	msgUnavailable     = "Could not retrieve weather data for the specified location. Please try again."
	msgInvalidLocation = "Location must be at most 200 characters"
)

var validate = validator.New()

type handlers struct {
	deps Deps
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, deps Deps) {
	h := &handlers{deps: deps}

	app.Get("/", h.index)
	app.Get("/weather", h.weatherPage)

	api := app.Group("/api")
	api.Get("/city-suggestions", h.citySuggestions)
	api.Get("/weather", h.weatherJSON)
	api.Get("/weather/history", h.weatherHistory)
}

// locationQuery holds the location query parameter.
type locationQuery struct {
	Location string `validate:"required,max=200"`
}

func parseLocationQuery(c *fiber.Ctx) locationQuery {
	return locationQuery{Location: strings.TrimSpace(c.Query("location"))}
}

func (q locationQuery) validate() error {
	if err := validate.Struct(q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, msgInvalidLocation)
	}
	return nil
}

func (h *handlers) index(c *fiber.Ctx) error {
	return c.Render("index", views.Page{Title: "Weather Tracker"})
}

// weatherPage renders the report for ?location=, or an error page when the lookup fails.
func (h *handlers) weatherPage(c *fiber.Ctx) error {
	q := parseLocationQuery(c)
	if q.Location == "" {
		return c.Render("index", views.Page{Title: "Weather Tracker", Error: msgMissingLocation})
	}
	if err := q.validate(); err != nil {
		return err
	}

	res := h.deps.Weather.Lookup(c.UserContext(), q.Location)
	switch res.Kind {
	case weather.OK:
		return c.Render("index", views.Page{
			Title:    "Weather in " + res.Report.City,
			Location: q.Location,
			Weather:  &res.Report,
		})
	case weather.Unavailable:
		return c.Render("error", views.Page{Title: "Error", Error: msgUnavailable})
	default:
		return c.Render("error", views.Page{Title: "Error", Error: "An error occurred: " + res.Error().Error()})
	}
}

// citySuggestions always answers with a JSON array, empty when nothing matches.
func (h *handlers) citySuggestions(c *fiber.Ctx) error {
	names := h.deps.Cities.Suggest(c.Query("q"), h.deps.SuggestionLimit)
	if h.deps.Metrics != nil {
		h.deps.Metrics.ObserveSuggestions(len(names))
	}
	return c.JSON(names)
}

func (h *handlers) weatherJSON(c *fiber.Ctx) error {
	q := parseLocationQuery(c)
	if q.Location == "" {
		return fiber.NewError(fiber.StatusBadRequest, "location query parameter is required")
	}
	if err := q.validate(); err != nil {
		return err
	}

	res := h.deps.Weather.Lookup(c.UserContext(), q.Location)
	switch res.Kind {
	case weather.OK:
		return c.JSON(res.Report)
	case weather.Unavailable:
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":   true,
			"message": msgUnavailable,
		})
	default:
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":   true,
			"message": "An error occurred: " + res.Error().Error(),
		})
	}
}

func (h *handlers) weatherHistory(c *fiber.Ctx) error {
	q := parseLocationQuery(c)
	if q.Location == "" {
		return fiber.NewError(fiber.StatusBadRequest, "location query parameter is required")
	}
	if err := q.validate(); err != nil {
		return err
	}

	snapshots, err := h.deps.Weather.History(c.UserContext(), q.Location)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "no weather history for requested location")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load weather history")
	}

	return c.JSON(fiber.Map{
		"location":  q.Location,
		"snapshots": snapshots,
	})
}
