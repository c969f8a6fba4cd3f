package config

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	// DefaultDatabasePath is the default path for the catalog database
	DefaultDatabasePath = "./catalog.db"

	// DefaultTasksDatabasePath backs the task queue when the catalog lives in postgres
	DefaultTasksDatabasePath = "./catalog-tasks.db"

	DefaultAuditRetentionDays   = 30
	DefaultAuditCleanupSchedule = "0 3 * * *"
)
