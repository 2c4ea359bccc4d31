package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/julianstephens/almanac/internal/constants"
	"github.com/julianstephens/almanac/internal/render"
	"github.com/julianstephens/almanac/internal/watcher"
)

type WatchCmd struct {
	Once     bool   `help:"Run a single check now and exit."`
	Schedule string `help:"Cron schedule (default: watch.schedule from config)."`
}

func (c *WatchCmd) schedule(ctx *Context) string {
	if c.Schedule != "" {
		return c.Schedule
	}
	if ctx.Config != nil && ctx.Config.Watch.Schedule != "" {
		return ctx.Config.Watch.Schedule
	}
	return constants.DefaultWatchSchedule
}

func (c *WatchCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	checker := watcher.New(ctx.Store, ctx.table(), c.schedule(ctx),
		watcher.WithLocation(ctx.location()),
		watcher.WithClock(ctx.now),
		watcher.WithReportHandler(func(r watcher.Report) {
			render.Report(ctx.out(), r)
		}),
	)

	if c.Once {
		checkCtx, cancel := context.WithTimeout(context.Background(), constants.WatchCheckTimeout)
		defer cancel()

		report, err := checker.Check(checkCtx)
		if err != nil {
			return err
		}
		render.Report(ctx.out(), report)
		return nil
	}

	if err := checker.Start(); err != nil {
		return err
	}
	ctx.printf("Watching on schedule %q, press Ctrl+C to stop\n", c.schedule(ctx))

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-sigCtx.Done()

	checker.Stop()
	return nil
}
