package config

// EnvPrefix is the envconfig namespace for every JewelBooks variable.
const EnvPrefix = "JEWELBOOKS"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv   = "JEWELBOOKS_APP_ENV"
	EnvPort     = "JEWELBOOKS_APP_PORT"
	EnvDBDSN    = "JEWELBOOKS_DB_DSN"
	EnvDBHost   = "JEWELBOOKS_DB_HOST"
	EnvDBUser   = "JEWELBOOKS_DB_USER"
	EnvDBName   = "JEWELBOOKS_DB_NAME"
	EnvRedisURL = "JEWELBOOKS_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
