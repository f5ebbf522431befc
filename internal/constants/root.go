package constants

const (
	AppName            = "studyplan"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/studyplan/studyplan.db"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// CompactDateFormat is the date format the plan generator emits (YYYYMMDD)
	CompactDateFormat = "20060102"

	// DBConnectionEnv names the environment variable consulted for a PostgreSQL connection string
	DBConnectionEnv = "STUDYPLAN_DB_CONNECTION"

	// DefaultTestPlace is used when a plan is submitted without a location
	DefaultTestPlace = "somewhere"

	// Flattened view item id prefixes
	WeekItemPrefix = "week-"
	TaskItemPrefix = "task-"
)
