package constants

import "time"

const (
	AppName            = "almanac"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/almanac"
	DefaultConfigFile  = "config.yaml"
	DefaultDBFile      = "almanac.db"
	DefaultDotEnvFile  = ".env"
	EnvPrefix          = "ALMANAC_"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Logging constants
	LogDirName      = "logs"
	LogFileName     = "almanac.log"
	LogMaxSizeMB    = 10
	LogMaxBackups   = 3
	LogMaxAgeDays   = 28
	DefaultLogLevel = "warn"

	DefaultTimezone = "Local"

	// Watcher constants
	DefaultWatchSchedule = "0 20 * * *"
	WatchCheckTimeout    = 30 * time.Second

	// Events constants
	DefaultUpcomingDays = 30
	MaxUpcomingDays     = 400
)
