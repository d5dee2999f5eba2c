package config

const (
	EnvPrefix = "LIBROS"

	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Environment variable names referenced outside struct tags.
const (
	EnvAppEnv                 = "LIBROS_APP_ENV"
	EnvPort                   = "LIBROS_APP_PORT"
	EnvDBDSN                  = "LIBROS_DB_DSN"
	EnvDBHost                 = "LIBROS_DB_HOST"
	EnvDBUser                 = "LIBROS_DB_USER"
	EnvDBName                 = "LIBROS_DB_NAME"
	EnvRedisURL               = "LIBROS_REDIS_URL"
	EnvJWTSecret              = "LIBROS_JWT_SECRET"
	EnvJWTIssuer              = "LIBROS_JWT_ISSUER"
	EnvJWTExpMins             = "LIBROS_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "LIBROS_REFRESH_TOKEN_TTL_MINUTES"
	EnvSeedAdminUsername      = "LIBROS_SEED_ADMIN_USERNAME"
	EnvSeedAdminPassword      = "LIBROS_SEED_ADMIN_PASSWORD"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
