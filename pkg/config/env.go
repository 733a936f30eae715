package config

// EnvPrefix is the envconfig prefix for all variables.
const EnvPrefix = "FOODDELIVERY"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "FOODDELIVERY_DB_DSN"
	EnvDBHost = "FOODDELIVERY_DB_HOST"
	EnvDBUser = "FOODDELIVERY_DB_USER"
	EnvDBName = "FOODDELIVERY_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
