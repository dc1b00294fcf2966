package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/iudanet/carewatch/internal/models"
	"github.com/iudanet/carewatch/internal/validation"
	pkgapi "github.com/iudanet/carewatch/pkg/api"
)

// addReadingInput параметры команды readings add
type addReadingInput struct {
	Status         string
	RecordedAt     string // RFC3339, пусто = время сервера
	HeartRate      float64
	TargetDistance float64
}

func (c *Cli) runAddReading(ctx context.Context, in addReadingInput) error {
	req := pkgapi.AddReadingRequest{
		HeartRate:      in.HeartRate,
		TargetDistance: in.TargetDistance,
		Status:         strings.ToLower(strings.TrimSpace(in.Status)),
	}

	if in.RecordedAt != "" {
		recordedAt, err := time.Parse(time.RFC3339, in.RecordedAt)
		if err != nil {
			return fmt.Errorf("invalid --recorded-at, expected RFC3339: %w", err)
		}
		req.RecordedAt = &recordedAt
	}

	// Те же правила, что на сервере: не гоняем заведомо плохой запрос
	if err := validation.ValidateReading(&models.Reading{
		HeartRate:      req.HeartRate,
		TargetDistance: req.TargetDistance,
		Status:         req.Status,
	}); err != nil {
		return fmt.Errorf("invalid reading: %w", err)
	}

	var reading *pkgapi.Reading
	err := c.withToken(ctx, func(token string) error {
		var err error
		reading, err = c.readings.AddReading(ctx, token, req)
		return err
	})
	if err != nil {
		return err
	}

	c.io.Println("✓ Reading saved!")
	c.printReading(reading)

	return nil
}

func (c *Cli) runListReadings(ctx context.Context, page, pageSize int) error {
	if page < 1 {
		return fmt.Errorf("page must be >= 1")
	}
	if pageSize < 1 {
		return fmt.Errorf("page size must be >= 1")
	}

	var resp *pkgapi.ReadingListResponse
	err := c.withToken(ctx, func(token string) error {
		var err error
		resp, err = c.readings.ListReadings(ctx, token, page, pageSize)
		return err
	})
	if err != nil {
		return err
	}

	c.io.Println("=== Readings ===")
	c.io.Println()

	if len(resp.Rows) == 0 {
		c.io.Println("No readings found.")
		c.io.Printf("Total: %d\n", resp.Total)
		return nil
	}

	c.io.Printf("%-8s %-20s %10s %10s  %s\n", "ID", "RECORDED", "HEART", "DIST(m)", "STATUS")
	for _, r := range resp.Rows {
		c.io.Printf("%-8d %-20s %10.1f %10.2f  %s\n",
			r.ID,
			r.RecordedAt.UTC().Format("2006-01-02 15:04:05"),
			r.HeartRate,
			r.TargetDistance,
			r.Status,
		)
	}

	pages := (resp.Total + int64(pageSize) - 1) / int64(pageSize)
	c.io.Println()
	c.io.Printf("Page %d of %d, total: %d\n", page, pages, resp.Total)

	return nil
}

func (c *Cli) runDeleteReading(ctx context.Context, id int64, confirmed bool) error {
	if id <= 0 {
		return fmt.Errorf("invalid reading ID: %d", id)
	}

	if !confirmed {
		answer, err := c.io.ReadInput(fmt.Sprintf("Delete reading %d? (yes/no): ", id))
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if answer != "yes" && answer != "y" {
			c.io.Println("Deletion cancelled.")
			return nil
		}
	}

	err := c.withToken(ctx, func(token string) error {
		return c.readings.DeleteReading(ctx, token, id)
	})
	if err != nil {
		return fmt.Errorf("failed to delete reading: %w", err)
	}

	c.io.Printf("✓ Reading %d deleted.\n", id)
	return nil
}

func (c *Cli) runMockReading(ctx context.Context) error {
	var mock *pkgapi.MockReading
	err := c.withToken(ctx, func(token string) error {
		var err error
		mock, err = c.readings.MockReading(ctx, token)
		return err
	})
	if err != nil {
		return err
	}

	ts := time.Unix(int64(mock.Timestamp), 0).UTC()

	c.io.Println("=== Sample Reading ===")
	c.io.Printf("Heart rate:      %.1f bpm\n", mock.HeartRate)
	c.io.Printf("Target distance: %.2f m\n", mock.TargetDistance)
	c.io.Printf("Status:          %s\n", mock.Status)
	c.io.Printf("Timestamp:       %s\n", ts.Format(time.RFC3339))

	return nil
}

func (c *Cli) printReading(r *pkgapi.Reading) {
	c.io.Printf("ID:              %d\n", r.ID)
	c.io.Printf("Heart rate:      %.1f bpm\n", r.HeartRate)
	c.io.Printf("Target distance: %.2f m\n", r.TargetDistance)
	c.io.Printf("Status:          %s\n", r.Status)
	c.io.Printf("Recorded at:     %s\n", r.RecordedAt.UTC().Format(time.RFC3339))
}
