package config

// EnvPrefix is passed to envconfig; variables are still named explicitly
// on each field so the prefix only guards against accidental matches.
const EnvPrefix = "CARHUB"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	// DefaultSQLiteDSN backs local development when CARHUB_USE_SQLITE is set
	// without an explicit DSN.
	DefaultSQLiteDSN = "file:carhub.db?cache=shared"
)

const (
	EnvAppEnv     = "CARHUB_APP_ENV"
	EnvPort       = "CARHUB_APP_PORT"
	EnvRedisURL   = "CARHUB_REDIS_URL"
	EnvJWTSecret  = "CARHUB_JWT_SECRET"
	EnvJWTIssuer  = "CARHUB_JWT_ISSUER"
	EnvJWTExpMins = "CARHUB_JWT_EXPIRATION_MINUTES"

	EnvDBDSN  = "CARHUB_DB_DSN"
	EnvDBHost = "CARHUB_DB_HOST"
	EnvDBUser = "CARHUB_DB_USER"
	EnvDBName = "CARHUB_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
