package main

import (
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/almanac/internal/cli"
	"github.com/julianstephens/almanac/internal/config"
	"github.com/julianstephens/almanac/internal/constants"
	"github.com/julianstephens/almanac/internal/errors"
	"github.com/julianstephens/almanac/internal/keyring"
	"github.com/julianstephens/almanac/internal/logger"
	"github.com/julianstephens/almanac/internal/storage"
	"github.com/julianstephens/almanac/internal/storage/postgres"
	"github.com/julianstephens/almanac/internal/utils"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"string" default:"${config_path}"`
	DB      string `name:"db" help:"SQLite file path or PostgreSQL connection string. PostgreSQL credentials must NOT be embedded; use .pgpass or 'almanac keyring set'." type:"string"`
	Debug   bool   `help:"Enable debug logging to stderr."`

	Init      cli.InitCmd      `cmd:"" help:"Initialize almanac storage."`
	Migrate   cli.MigrateCmd   `cmd:"" help:"Run database migrations."`
	Doctor    cli.DoctorCmd    `cmd:"" help:"Run health checks and diagnostics."`
	Habit     cli.HabitCmd     `cmd:"" help:"Manage habits and habit tracking."`
	Hijri     cli.HijriCmd     `cmd:"" help:"Convert a Gregorian date to the Hijri calendar."`
	Gregorian cli.GregorianCmd `cmd:"" help:"Convert a Hijri date to the Gregorian calendar."`
	Events    cli.EventsCmd    `cmd:"" help:"List Islamic observances in a date range."`
	Keyring   cli.KeyringCmd   `cmd:"" help:"Manage secrets in the OS keyring."`
	Backup    cli.BackupCmd    `cmd:"" help:"Manage SQLite database backups."`
	Tui       cli.TuiCmd       `cmd:"" help:"Open the interactive dashboard."`
	Watch     cli.WatchCmd     `cmd:"" help:"Warn about streaks at risk on a schedule."`
	DebugCmd  cli.DebugCmd     `cmd:"" name:"debug" help:"Debug commands for troubleshooting."`
}

func main() {
	vars := kong.Vars(cli.Vars())
	vars["config_path"] = config.DefaultPath()

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Hijri calendar and habit streak tracker"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		vars,
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}
	if CLI.Debug {
		cfg.Logging.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		errors.Fatal(err)
	}

	if err := logger.Init(logger.Config{
		Debug: cfg.Logging.Debug,
		Level: cfg.Logging.Level,
		Dir:   cfg.Logging.Dir,
	}); err != nil {
		errors.Fatal(fmt.Errorf("failed to initialize logger: %w", err))
	}

	dsn, err := config.ResolveDSN(CLI.DB, cfg, keyring.GetConnectionString)
	if err != nil {
		errors.Fatal(err)
	}
	// Connection strings typed on the command line or in config must not carry a password.
	if storage.IsPostgresDSN(dsn) && (CLI.DB != "" || cfg.Storage.DSN != "") {
		if err := postgres.ValidateConnString(dsn); err != nil {
			errors.Fatal(err)
		}
	}

	loc, err := utils.LoadLocation(cfg.Timezone)
	if err != nil {
		errors.Fatal(err)
	}
	table, err := cli.OpenObservances(cfg.Calendar.ObservancesFile)
	if err != nil {
		errors.Fatal(err)
	}

	store := cli.NewStore(dsn)
	defer store.Close()

	logger.Debug("Starting command", "command", ctx.Command(), "store", store.GetConfigPath())

	appCtx := &cli.Context{
		Store:       store,
		Config:      cfg,
		DSN:         dsn,
		Location:    loc,
		Observances: table,
	}

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		errors.Fatal(err)
	}
}
