package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/julianstephens/almanac/internal/hijri"
	"github.com/julianstephens/almanac/internal/keyring"
	"github.com/julianstephens/almanac/internal/storage"
	"github.com/julianstephens/almanac/internal/storage/postgres"
	"github.com/julianstephens/almanac/internal/utils"
)

type DoctorCmd struct{}

type check struct {
	name string
	// warnOnly checks print a warning instead of failing the run.
	warnOnly bool
	run      func(*Context) error
}

var doctorChecks = []check{
	{name: "Database reachable", run: checkDBReachable},
	{name: "Connection string", run: checkConnString},
	{name: "Clock/timezone", run: checkClockTimezone},
	{name: "Observance table", run: checkObservances},
	{name: "OS keyring", warnOnly: true, run: checkKeyring},
}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	ctx.printf("Running diagnostics...\n\n")

	hasError := false
	for _, c := range doctorChecks {
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			ctx.printf("⚠ %s: WARNING\n", c.name)
			ctx.printf("   %v\n", err)
		default:
			ctx.printf("❌ %s: FAIL\n", c.name)
			ctx.printf("   Error: %v\n", err)
			hasError = true
		}
	}

	ctx.printf("\n")
	if hasError {
		ctx.printf("Diagnostics completed with errors.\n")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.printf("All diagnostics passed!\n")
	return nil
}

func checkDBReachable(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	if _, err := ctx.Store.GetAllHabits(true); err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}
	return nil
}

func checkConnString(ctx *Context) error {
	if !storage.IsPostgresDSN(ctx.DSN) {
		if _, err := os.Stat(ctx.DSN); err != nil {
			return fmt.Errorf("database file: %w", err)
		}
		return nil
	}
	return postgres.ValidateConnString(ctx.DSN)
}

func checkClockTimezone(ctx *Context) error {
	now := ctx.now()
	if now.Year() < 2000 {
		return fmt.Errorf("system clock appears incorrect: %s", now.Format(time.RFC3339))
	}
	loc := ctx.location()
	if !utils.ValidateTimezone(loc.String()) {
		return fmt.Errorf("timezone %q cannot be loaded", loc.String())
	}
	return nil
}

// checkObservances verifies the table answers for a known date: 1 Shawwal.
func checkObservances(ctx *Context) error {
	t, err := hijri.HijriToGregorian(1445, 10, 1)
	if err != nil {
		return err
	}
	if len(ctx.table().EventsForDate(t)) == 0 && ctx.Config != nil && ctx.Config.Calendar.ObservancesFile == "" {
		return fmt.Errorf("built-in observance table returned nothing for %s", t.Format(time.DateOnly))
	}
	return nil
}

func checkKeyring(*Context) error {
	if !keyring.IsAvailable() {
		return keyring.ErrKeyringUnavailable
	}
	return nil
}
