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
	News          NewsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.FeatureFlags.UseSQLite {
		cfg.DB.Driver = DriverSQLite
		if cfg.DB.DSN == "" {
			cfg.DB.DSN = DefaultSQLiteDSN
		}
		return &cfg, nil
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"CARHUB_APP_ENV" required:"true"`
	Port         string `envconfig:"CARHUB_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"CARHUB_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CARHUB_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"CARHUB_DB_DSN"`
	Driver string `envconfig:"CARHUB_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"CARHUB_DB_HOST"`
	LegacyPort     int    `envconfig:"CARHUB_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"CARHUB_DB_USER"`
	LegacyPassword string `envconfig:"CARHUB_DB_PASSWORD"`
	LegacyName     string `envconfig:"CARHUB_DB_NAME"`
	LegacySSLMode  string `envconfig:"CARHUB_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"CARHUB_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CARHUB_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CARHUB_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CARHUB_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"CARHUB_REDIS_URL" required:"true"`
	Address      string        `envconfig:"CARHUB_REDIS_ADDR"`
	Password     string        `envconfig:"CARHUB_REDIS_PASSWORD"`
	DB           int           `envconfig:"CARHUB_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CARHUB_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CARHUB_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CARHUB_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CARHUB_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CARHUB_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"CARHUB_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"CARHUB_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"CARHUB_JWT_EXPIRATION_MINUTES" required:"true"`
}

// Expiration returns the access token lifetime configured in minutes.
func (j JWTConfig) Expiration() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"CARHUB_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"CARHUB_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"CARHUB_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"CARHUB_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"CARHUB_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"CARHUB_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"CARHUB_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"CARHUB_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"CARHUB_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"CARHUB_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"CARHUB_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"CARHUB_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"CARHUB_AUTO_MIGRATE" default:"false"`
}

type NewsConfig struct {
	FeedURL     string        `envconfig:"CARHUB_NEWS_FEED_URL"`
	Timeout     time.Duration `envconfig:"CARHUB_NEWS_TIMEOUT" default:"10s"`
	CacheTTL    time.Duration `envconfig:"CARHUB_NEWS_CACHE_TTL" default:"10m"`
	MaxArticles int           `envconfig:"CARHUB_NEWS_MAX_ARTICLES" default:"20"`
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
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
