package cli

import (
	"fmt"

	"github.com/julianstephens/almanac/internal/constants"
	"github.com/julianstephens/almanac/internal/hijri"
	"github.com/julianstephens/almanac/internal/render"
	"github.com/julianstephens/almanac/internal/utils"
)

type HijriCmd struct {
	Date string `arg:"" optional:"" help:"Gregorian date in YYYY-MM-DD format (default: today)."`
}

func (c *HijriCmd) Run(ctx *Context) error {
	day, err := ctx.parseDay(c.Date)
	if err != nil {
		return err
	}

	d := hijri.GregorianToHijri(day.Time(ctx.location()))
	render.HijriDate(ctx.out(), day, d, ctx.table().Lookup(d))
	return nil
}

type GregorianCmd struct {
	Year  int `arg:"" help:"Hijri year."`
	Month int `arg:"" help:"Hijri month (1-12)."`
	Day   int `arg:"" help:"Hijri day (1-30)."`
}

func (c *GregorianCmd) Run(ctx *Context) error {
	t, err := hijri.HijriToGregorian(c.Year, c.Month, c.Day)
	if err != nil {
		return err
	}

	day := utils.DayOf(t)
	d := hijri.GregorianToHijri(t)
	render.HijriDate(ctx.out(), day, d, ctx.table().Lookup(d))
	return nil
}

type EventsCmd struct {
	Date string `arg:"" optional:"" help:"First Gregorian date, YYYY-MM-DD (default: today)."`
	Days int    `help:"Number of days to scan." default:"${upcoming_days}"`
}

func (c *EventsCmd) Validate() error {
	if c.Days < 1 || c.Days > constants.MaxUpcomingDays {
		return fmt.Errorf("days must be between 1 and %d", constants.MaxUpcomingDays)
	}
	return nil
}

func (c *EventsCmd) Run(ctx *Context) error {
	day, err := ctx.parseDay(c.Date)
	if err != nil {
		return err
	}

	occ := ctx.table().Upcoming(day.Time(ctx.location()), c.Days)
	render.Upcoming(ctx.out(), occ)
	return nil
}
