package container

import (
	"fmt"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"github.com/mustyfdn/app-portal/pkg/validator"
)

// SessionStoreInMemory and SessionStoreRedis are the accepted SESSION_STORE
// values.
const (
	SessionStoreInMemory = "inmemory"
	SessionStoreRedis    = "redis"
)

// Config holds the whole process configuration, taken from environment
// variables. A .env file in the working directory is loaded first when
// present so local runs do not need to export anything.
type Config struct {
	Port int `env:"PORT,default=5005" validate:"required,min=1,max=65535"`

	DatabaseDSN string `env:"DATABASE_DSN,required" validate:"required"`
	DBDebug     bool   `env:"DB_DEBUG,default=false"`

	AdminUsername string `env:"ADMIN_USERNAME,required" validate:"required"`
	AdminPassword string `env:"ADMIN_PASSWORD,required" validate:"required"`

	SessionSecret string        `env:"SESSION_SECRET,required" validate:"required"`
	SessionTTL    time.Duration `env:"SESSION_TTL,default=24h" validate:"required"`
	SessionStore  string        `env:"SESSION_STORE,default=inmemory" validate:"required,oneof=inmemory redis"`

	RedisAddress  string `env:"REDIS_ADDRESS,default="`
	RedisPassword string `env:"REDIS_PASSWORD,default="`
	RedisDB       int    `env:"REDIS_DB,default=0"`

	CompanyName string `env:"COMPANY_NAME,default=App Portal" validate:"required"`
	CompanyIcon string `env:"COMPANY_ICON,default=/assets/icon.png" validate:"required"`

	ProbeTimeout time.Duration `env:"PROBE_TIMEOUT,default=30s" validate:"required"`

	// TraceCollectorURL points to a Jaeger collector endpoint. Tracing stays
	// off when empty.
	TraceCollectorURL string `env:"TRACE_COLLECTOR_URL,default="`
}

// LoadConfig reads the environment into a Config. The .env file is optional,
// a missing file is not an error.
func LoadConfig() (cfg Config, err error) {
	_ = godotenv.Load()

	err = envdecode.Decode(&cfg)
	if err != nil {
		err = fmt.Errorf("error reading config from environment: %w", err)
		return
	}

	err = validator.Validate(cfg)
	if err != nil {
		err = fmt.Errorf("config validation error: %w", err)
		return
	}

	if cfg.SessionStore == SessionStoreRedis && cfg.RedisAddress == "" {
		err = fmt.Errorf("config validation error: SESSION_STORE=redis needs REDIS_ADDRESS")
		return
	}

	return cfg, nil
}
