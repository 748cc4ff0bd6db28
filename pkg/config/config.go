package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the envconfig prefix shared by every Car ModifyX service.
const EnvPrefix = "MODIFYX"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Pricing      PricingConfig
	Builder      BuilderConfig
	FeatureFlags FeatureFlagsConfig
	Stripe       StripeConfig
	ImageGen     ImageGenConfig
	GCP          GCPConfig
	PubSub       PubSubConfig
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
	Env          string `envconfig:"MODIFYX_APP_ENV" required:"true"`
	Port         string `envconfig:"MODIFYX_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"MODIFYX_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MODIFYX_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"MODIFYX_DB_DSN"`
	Driver string `envconfig:"MODIFYX_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"MODIFYX_DB_HOST"`
	Port     int    `envconfig:"MODIFYX_DB_PORT" default:"5432"`
	User     string `envconfig:"MODIFYX_DB_USER"`
	Password string `envconfig:"MODIFYX_DB_PASSWORD"`
	Name     string `envconfig:"MODIFYX_DB_NAME"`
	SSLMode  string `envconfig:"MODIFYX_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"MODIFYX_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"MODIFYX_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"MODIFYX_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"MODIFYX_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"MODIFYX_REDIS_URL" required:"true"`
	Password     string        `envconfig:"MODIFYX_REDIS_PASSWORD"`
	DB           int           `envconfig:"MODIFYX_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MODIFYX_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MODIFYX_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MODIFYX_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MODIFYX_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MODIFYX_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"MODIFYX_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"MODIFYX_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"MODIFYX_JWT_EXPIRATION_MINUTES" default:"1440"`
}

// PricingConfig carries the cart pricing policy. Values are decimal strings so
// the pricing engine owns the parse; the aggregator never hardcodes them.
type PricingConfig struct {
	FreeShippingThreshold string `envconfig:"MODIFYX_PRICING_FREE_SHIPPING_THRESHOLD" default:"100"`
	FlatShippingFee       string `envconfig:"MODIFYX_PRICING_FLAT_SHIPPING_FEE" default:"10.99"`
	TaxRate               string `envconfig:"MODIFYX_PRICING_TAX_RATE" default:"0.07"`
	SameDayFee            string `envconfig:"MODIFYX_PRICING_SAME_DAY_FEE" default:"5"`
}

type BuilderConfig struct {
	SessionTTL       time.Duration `envconfig:"MODIFYX_BUILDER_SESSION_TTL" default:"24h"`
	ColorOptionPrice string        `envconfig:"MODIFYX_BUILDER_COLOR_PRICE" default:"150000"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"MODIFYX_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"MODIFYX_AUTO_MIGRATE" default:"false"`
}

type StripeConfig struct {
	APIKey string `envconfig:"MODIFYX_STRIPE_API_KEY"`
	Env    string `envconfig:"MODIFYX_STRIPE_ENV" default:"test"`
}

// Environment returns the normalized Stripe environment (test/live).
func (s StripeConfig) Environment() string {
	env := strings.TrimSpace(strings.ToLower(s.Env))
	if env == "" {
		return "test"
	}
	return env
}

type ImageGenConfig struct {
	APIKey  string        `envconfig:"MODIFYX_OPENAI_API_KEY"`
	Model   string        `envconfig:"MODIFYX_IMAGEGEN_MODEL" default:"dall-e-3"`
	Size    string        `envconfig:"MODIFYX_IMAGEGEN_SIZE" default:"1024x1024"`
	Timeout time.Duration `envconfig:"MODIFYX_IMAGEGEN_TIMEOUT" default:"60s"`
}

type GCPConfig struct {
	ProjectID string `envconfig:"MODIFYX_GCP_PROJECT_ID"`
}

type PubSubConfig struct {
	OrdersTopic string `envconfig:"MODIFYX_PUBSUB_ORDERS_TOPIC" default:"modifyx-order-events"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	values := map[string]string{
		"MODIFYX_DB_HOST": db.Host,
		"MODIFYX_DB_USER": db.User,
		"MODIFYX_DB_NAME": db.Name,
	}
	for _, env := range []string{"MODIFYX_DB_HOST", "MODIFYX_DB_USER", "MODIFYX_DB_NAME"} {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either MODIFYX_DB_DSN or %s are required", strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
