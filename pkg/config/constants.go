package config

// EnvPrefix is passed to envconfig; individual fields carry explicit
// SUBTRACK_* names so the prefix stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv   = "SUBTRACK_APP_ENV"
	EnvPort     = "SUBTRACK_APP_PORT"
	EnvMongoURI = "SUBTRACK_MONGO_URI"
)
