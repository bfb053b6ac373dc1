package constants

// Log file settings.
const (
	// CLILogFileName is the name of the rotating log file.
	// This file is located in ~/.syncstatus/logs/syncstatus.log
	CLILogFileName = "syncstatus.log"

	// LogMaxSizeMB is the size at which the log file is rotated.
	LogMaxSizeMB = 10

	// LogMaxBackups is the number of rotated files kept.
	LogMaxBackups = 3

	// LogMaxAgeDays is how long rotated files are kept.
	LogMaxAgeDays = 28

	// LogCompress enables gzip compression of rotated files.
	LogCompress = true
)

// State file names.
const (
	// GlobalConfigName is the name of the configuration file.
	GlobalConfigName = "config.yaml"

	// StateDBName is the bbolt database holding the last sync outcome.
	StateDBName = "state.db"

	// SessionFileName is the YAML file holding the signed-in account.
	SessionFileName = "session.yaml"
)
