package httpapi

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/bike-sharing-dashboard/internal/dashboard"
	"github.com/i474232898/bike-sharing-dashboard/internal/logging"
	"github.com/i474232898/bike-sharing-dashboard/internal/rental"
	"github.com/i474232898/bike-sharing-dashboard/internal/store"
)

var validate = validator.New()

// RegisterRoutes wires the dashboard page, the health check and the JSON API
// into the Fiber app.
func RegisterRoutes(app *fiber.App, service *rental.Service, defaultVariant dashboard.Variant) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "bike-sharing-dashboard",
			"records": service.Table().Len(),
		})
	})

	app.Get("/", func(c *fiber.Ctx) error {
		variant, err := variantQuery(c, defaultVariant)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		bounds, _ := service.Bounds()
		return c.Render("dashboard", fiber.Map{
			"PageTitle": variant.PageTitle,
			"Variant":   variant.Name,
			"Variants":  dashboard.Names(),
			"Wide":      variant.Layout == dashboard.LayoutWide,
			"Min":       formatDay(bounds.Start),
			"Max":       formatDay(bounds.End),
		})
	})

	v1 := app.Group("/api/v1")

	v1.Get("/bounds", func(c *fiber.Ctx) error {
		bounds, ok := service.Bounds()
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "no rental data loaded")
		}
		return c.JSON(fiber.Map{
			"start":   formatDay(bounds.Start),
			"end":     formatDay(bounds.End),
			"records": service.Table().Len(),
		})
	})

	v1.Get("/dashboard", func(c *fiber.Ctx) error {
		snap, err := snapshotQuery(c, service)
		if err != nil {
			return err
		}
		return c.JSON(snap)
	})

	v1.Get("/daily", func(c *fiber.Ctx) error {
		snap, err := snapshotQuery(c, service)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"range": snap.Range, "daily": snap.Daily})
	})

	v1.Get("/seasons", func(c *fiber.Ctx) error {
		snap, err := snapshotQuery(c, service)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"range": snap.Range, "seasons": snap.Seasons})
	})

	v1.Get("/weather", func(c *fiber.Ctx) error {
		snap, err := snapshotQuery(c, service)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"range": snap.Range, "weather": snap.Weather})
	})

	v1.Get("/view", func(c *fiber.Ctx) error {
		variant, err := variantQuery(c, defaultVariant)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		snap, err := snapshotQuery(c, service)
		if err != nil {
			return err
		}
		return c.JSON(dashboard.Build(snap, variant))
	})

	v1.Get("/export.csv", func(c *fiber.Ctx) error {
		snap, err := snapshotQuery(c, service)
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		if err := store.WriteDailyCSV(&buf, snap.Daily); err != nil {
			logging.Error("daily export failed", "range", snap.Range.String(), "err", err)
			return fiber.NewError(fiber.StatusInternalServerError, "failed to export daily summary")
		}

		c.Attachment(fmt.Sprintf("daily_%s_%s.csv", formatDay(snap.Range.Start), formatDay(snap.Range.End)))
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		return c.Send(buf.Bytes())
	})
}

// RegisterUnavailable answers every request with 503 and the load error: an
// HTML page for the dashboard page, the JSON error body for everything else.
// It replaces RegisterRoutes when the dataset could not be loaded.
func RegisterUnavailable(app *fiber.App, loadErr error) {
	msg := "dataset unavailable"
	if loadErr != nil {
		msg = loadErr.Error()
	}

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusServiceUnavailable).Render("unavailable", fiber.Map{
			"Message": msg,
		})
	})
	app.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusServiceUnavailable, msg)
	})
}

// snapshotQuery binds and validates the range query, then runs the pipeline.
func snapshotQuery(c *fiber.Ctx, service *rental.Service) (rental.Snapshot, error) {
	bounds, _ := service.Bounds()

	var req rangeQuery
	if err := req.bind(c, bounds); err != nil {
		return rental.Snapshot{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := req.check(); err != nil {
		return rental.Snapshot{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return service.Snapshot(req.toRange()), nil
}

func variantQuery(c *fiber.Ctx, def dashboard.Variant) (dashboard.Variant, error) {
	name := c.Query("variant")
	if name == "" {
		return def, nil
	}
	return dashboard.Lookup(name)
}

// rangeQuery holds the inclusive date range of a dashboard request.
type rangeQuery struct {
	Start time.Time `validate:"required"`
	End   time.Time `validate:"required,gtefield=Start"`
}

// bind parses start and end. A missing bound falls back to the table bounds.
func (q *rangeQuery) bind(c *fiber.Ctx, bounds rental.DateRange) error {
	q.Start = bounds.Start
	q.End = bounds.End

	if s := c.Query("start"); s != "" {
		t, err := parseDay(s)
		if err != nil {
			return fmt.Errorf("invalid start: %w", err)
		}
		q.Start = t
	}
	if s := c.Query("end"); s != "" {
		t, err := parseDay(s)
		if err != nil {
			return fmt.Errorf("invalid end: %w", err)
		}
		q.End = t
	}
	return nil
}

func (q rangeQuery) check() error {
	if err := validate.Struct(q); err != nil {
		// Prefer the domain message; it names both dates.
		if rerr := q.toRange().Validate(); rerr != nil {
			return rerr
		}
		return err
	}
	return nil
}

func (q rangeQuery) toRange() rental.DateRange {
	return rental.DateRange{Start: q.Start, End: q.End}
}

// parseDay accepts a calendar date (2006-01-02) or an RFC3339 timestamp and
// truncates it to its day.
func parseDay(s string) (time.Time, error) {
	if t, err := time.Parse(rental.DateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return rental.Day(t), nil
	}
	return time.Time{}, errors.New("invalid date format; use YYYY-MM-DD or RFC3339")
}

func formatDay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(rental.DateLayout)
}
