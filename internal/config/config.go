package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Abdurahmanit/GroupProject/campus-service/internal/platform/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const insecureDefaultSecret = "change-me-campus-secret"

type Config struct {
	ServiceName string           `mapstructure:"service_name"`
	HTTP        HTTPConfig       `mapstructure:"http"`
	Mongo       MongoConfig      `mapstructure:"mongo"`
	Redis       RedisConfig      `mapstructure:"redis"`
	JWT         JWTConfig        `mapstructure:"jwt"`
	OTP         OTPConfig        `mapstructure:"otp"`
	Store       StoreConfig      `mapstructure:"store"`
	Mail        MailConfig       `mapstructure:"mail"`
	SMTP        SMTPConfig       `mapstructure:"smtp"`
	MailerSend  MailerSendConfig `mapstructure:"mailersend"`
	NATS        NATSConfig       `mapstructure:"nats"`
	Log         logger.Config    `mapstructure:"log"`
	Prometheus  MetricsConfig    `mapstructure:"prometheus"`
	OTel        TracingConfig    `mapstructure:"otel"`
}

type HTTPConfig struct {
	Port            string        `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type MongoConfig struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
	// AccessTTL applies to access tokens minted at login.
	AccessTTL time.Duration `mapstructure:"access_ttl"`
	// RefreshAccessTTL applies to access tokens minted by the refresh endpoint.
	RefreshAccessTTL time.Duration `mapstructure:"refresh_access_ttl"`
	RefreshTTL       time.Duration `mapstructure:"refresh_ttl"`
}

type OTPConfig struct {
	TTL         time.Duration `mapstructure:"ttl"`
	MaxAttempts int           `mapstructure:"max_attempts"`
}

// StoreConfig selects the record store. The memory driver keeps users
// and campus records in process and is meant for local runs.
type StoreConfig struct {
	Driver  string        `mapstructure:"driver"`
	Timeout time.Duration `mapstructure:"timeout"`
}

const (
	StoreDriverMongo  = "mongo"
	StoreDriverMemory = "memory"
)

type MailConfig struct {
	Provider string        `mapstructure:"provider"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type SMTPConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
	SenderEmail string `mapstructure:"sender_email"`
	Encryption  string `mapstructure:"encryption"`
	ServerName  string `mapstructure:"server_name"`
}

type MailerSendConfig struct {
	APIKey    string `mapstructure:"api_key"`
	FromEmail string `mapstructure:"from_email"`
	FromName  string `mapstructure:"from_name"`
}

type NATSConfig struct {
	URL string `mapstructure:"url"`
}

type MetricsConfig struct {
	MetricsPort string `mapstructure:"metrics_port"`
}

type TracingConfig struct {
	ExporterOTLPEndpoint string `mapstructure:"exporter_otlp_endpoint"`
}

var defaults = map[string]any{
	"service_name":                "campus-service",
	"http.port":                   "8080",
	"http.read_timeout":           "10s",
	"http.write_timeout":          "15s",
	"http.idle_timeout":           "60s",
	"http.shutdown_timeout":       "10s",
	"mongo.uri":                   "mongodb://localhost:27017",
	"mongo.database":              "campus_info",
	"redis.addr":                  "localhost:6379",
	"redis.password":              "",
	"redis.db":                    0,
	"jwt.secret":                  insecureDefaultSecret,
	"jwt.issuer":                  "campus-service",
	"jwt.access_ttl":              "10m",
	"jwt.refresh_access_ttl":      "5m",
	"jwt.refresh_ttl":             "24h",
	"otp.ttl":                     "5m",
	"otp.max_attempts":            5,
	"store.driver":                StoreDriverMongo,
	"store.timeout":               "5s",
	"mail.provider":               "smtp",
	"mail.timeout":                "10s",
	"smtp.host":                   "",
	"smtp.port":                   587,
	"smtp.username":               "",
	"smtp.password":               "",
	"smtp.sender_email":           "",
	"smtp.encryption":             "starttls",
	"smtp.server_name":            "",
	"mailersend.api_key":          "",
	"mailersend.from_email":       "",
	"mailersend.from_name":        "Campus Info",
	"nats.url":                    "",
	"log.level":                   "info",
	"log.format":                  "json",
	"prometheus.metrics_port":     "9094",
	"otel.exporter_otlp_endpoint": "",
}

// Load reads configuration from an optional .env file and the process
// environment. Nested keys map to upper-cased, underscore-joined
// variables: jwt.access_ttl is read from JWT_ACCESS_TTL.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET must be set")
	}
	switch c.Store.Driver {
	case StoreDriverMongo:
		if c.Mongo.URI == "" || c.Mongo.Database == "" {
			return errors.New("MONGO_URI and MONGO_DATABASE must be set")
		}
	case StoreDriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}
	if c.JWT.AccessTTL <= 0 || c.JWT.RefreshTTL <= 0 || c.JWT.RefreshAccessTTL <= 0 {
		return errors.New("token lifetimes must be positive")
	}
	if c.OTP.TTL <= 0 {
		return errors.New("OTP_TTL must be positive")
	}
	switch strings.ToLower(c.Mail.Provider) {
	case "smtp", "mailersend":
	default:
		return fmt.Errorf("unknown MAIL_PROVIDER %q", c.Mail.Provider)
	}
	return nil
}

// UsesDefaultSecret reports whether the JWT secret was left at its
// insecure default.
func (c *Config) UsesDefaultSecret() bool {
	return c.JWT.Secret == insecureDefaultSecret
}
