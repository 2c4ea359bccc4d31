package cli

import (
	"fmt"
	"os"

	"github.com/julianstephens/almanac/internal/storage"
)

type InitCmd struct {
	Force bool `help:"Delete an existing SQLite database and start fresh."`
}

func (c *InitCmd) Run(ctx *Context) error {
	if c.Force && !storage.IsPostgresDSN(ctx.DSN) {
		if err := ctx.Store.Close(); err != nil {
			return err
		}
		if err := os.Remove(ctx.DSN); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.printf("Initialized almanac storage at: %s\n", ctx.Store.GetConfigPath())
	return nil
}

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *Context) error {
	applied, err := ctx.Store.Migrate(func(msg string) {
		ctx.printf("%s\n", msg)
	})
	if err != nil {
		return err
	}
	if applied > 0 {
		ctx.printf("Migrated %s\n", ctx.Store.GetConfigPath())
	}
	return nil
}
