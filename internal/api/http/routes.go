package httpapi

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/coastkeepers/shorecast/internal/site"
	"github.com/coastkeepers/shorecast/internal/weather"
)

var validate = validator.New()

// forecastResponse is the payload the page renderer consumes. Available is
// false when the multi-day feed could not be fetched; that is never a 5xx,
// the page shows its static fallback instead.
type forecastResponse struct {
	Available bool                       `json:"available"`
	Days      []weather.DailySummary     `json:"days"`
	Current   *weather.CurrentConditions `json:"current"`
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/forecast", func(c *fiber.Ctx) error {
		var q forecastQuery
		q.Days = c.QueryInt("days", weather.MaxForecastDays)
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		days, err := service.MultiDayForecast(c.Context())
		if err != nil {
			return c.JSON(forecastResponse{
				Available: false,
				Days:      []weather.DailySummary{},
			})
		}
		if len(days) > q.Days {
			days = days[:q.Days]
		}

		// The current-conditions overlay only shows when the multi-day
		// forecast succeeded, so it is only fetched on that path.
		current, err := service.CurrentConditions(c.Context())
		if err != nil {
			current = nil
		}

		return c.JSON(forecastResponse{
			Available: true,
			Days:      days,
			Current:   current,
		})
	})

	v1.Get("/locations", func(c *fiber.Ctx) error {
		return c.JSON(site.Beaches())
	})

	v1.Get("/crew", func(c *fiber.Ctx) error {
		return c.JSON(site.Crew())
	})

	v1.Get("/events", func(c *fiber.Ctx) error {
		var q eventsQuery
		q.Date = c.Query("date")
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		events := site.Events()
		if q.Date != "" {
			events = site.EventsOn(q.Date)
		}
		if events == nil {
			events = []site.CleanupEvent{}
		}
		return c.JSON(events)
	})
}

// forecastQuery holds query parameters for the forecast endpoint.
type forecastQuery struct {
	Days int `validate:"min=1,max=4"`
}

// eventsQuery holds query parameters for the events endpoint.
type eventsQuery struct {
	Date string `validate:"omitempty,datetime=2006-01-02"`
}
