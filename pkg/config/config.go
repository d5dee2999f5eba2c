package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Seed          SeedConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"LIBROS_APP_ENV" required:"true"`
	Port         string `envconfig:"LIBROS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"LIBROS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"LIBROS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"LIBROS_DB_DSN"`
	Driver string `envconfig:"LIBROS_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"LIBROS_DB_HOST"`
	LegacyPort     int    `envconfig:"LIBROS_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"LIBROS_DB_USER"`
	LegacyPassword string `envconfig:"LIBROS_DB_PASSWORD"`
	LegacyName     string `envconfig:"LIBROS_DB_NAME"`
	LegacySSLMode  string `envconfig:"LIBROS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"LIBROS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"LIBROS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"LIBROS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"LIBROS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"LIBROS_REDIS_URL" required:"true"`
	Address      string        `envconfig:"LIBROS_REDIS_ADDR"`
	Password     string        `envconfig:"LIBROS_REDIS_PASSWORD"`
	DB           int           `envconfig:"LIBROS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"LIBROS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"LIBROS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"LIBROS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"LIBROS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"LIBROS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"LIBROS_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"LIBROS_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"LIBROS_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"LIBROS_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"LIBROS_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"LIBROS_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"LIBROS_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"LIBROS_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"LIBROS_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"LIBROS_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginUsernameLimit int           `envconfig:"LIBROS_AUTH_RATE_LIMIT_LOGIN_USERNAME_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"LIBROS_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"LIBROS_AUTO_MIGRATE" default:"false"`
}

// SeedConfig bootstraps the first admin account when the users table is empty.
type SeedConfig struct {
	AdminUsername string `envconfig:"LIBROS_SEED_ADMIN_USERNAME"`
	AdminPassword string `envconfig:"LIBROS_SEED_ADMIN_PASSWORD"`
	AdminName     string `envconfig:"LIBROS_SEED_ADMIN_NAME" default:"Administrator"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   "/" + db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
