package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/Alijeyrad/hms_backend/pkg/constants"
)

// legacyEnv maps the plain environment variables used by existing
// deployments onto config keys. HMS_* variables still take precedence.
var legacyEnv = map[string]string{
	"mongo.uri":                 "MONGO_URI",
	"authentication.jwt.secret": "JWT_SECRET",
	"email.smtp.host":           "SMTP_HOST",
	"email.smtp.port":           "SMTP_PORT",
	"email.smtp.username":       "SMTP_USER",
	"email.smtp.password":       "SMTP_PASS",
	"server.frontend_url":       "FRONTEND_URL",
	"server.port":               "PORT",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("mongo.database", "hospital")
	v.SetDefault("mongo.connect_timeout_seconds", 10)
	v.SetDefault("mongo.auto_migrate", true)

	v.SetDefault("redis.addr", "localhost:6379")

	v.SetDefault("server.port", 5000)
	v.SetDefault("server.timeout_seconds", 30)
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.frontend_url", "http://localhost:3000")
	v.SetDefault("server.body_limit_mb", 10)
	v.SetDefault("server.cors.enabled", true)
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.rate_limit.enabled", true)
	v.SetDefault("server.rate_limit.max", 60)
	v.SetDefault("server.rate_limit.expiration_seconds", 60)

	v.SetDefault("authentication.jwt.issuer", constants.ServiceName)
	v.SetDefault("authentication.jwt.audience", constants.ServiceName)
	v.SetDefault("authentication.jwt.ttl_minutes", 24*60)
	v.SetDefault("authentication.reset_code_ttl_minutes", 15)
	v.SetDefault("authentication.reset_max_attempts", 5)
	v.SetDefault("authentication.phone_region", constants.DefaultRegion)

	v.SetDefault("authorization.enable_audit", false)

	v.SetDefault("email.app_name", "Hospital Management System")
	v.SetDefault("email.smtp.port", 587)
	v.SetDefault("email.smtp.timeout_seconds", 30)

	v.SetDefault("payment.hospital_charge", constants.DefaultHospitalCharge)

	v.SetDefault("storage.driver", "local")
	v.SetDefault("storage.max_upload_mb", 5)
	v.SetDefault("storage.local.dir", "uploads")
	v.SetDefault("storage.image_prefix", "images")
	v.SetDefault("storage.slip_prefix", "slips")

	v.SetDefault("observability.service_name", constants.ServiceName)
	v.SetDefault("observability.service_version", "dev")
	v.SetDefault("observability.metrics.path", "/metrics")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output.stdout", true)
}

// Load builds a Config from an optional config file in configPath plus the
// environment. Missing files are not an error.
func Load(v *viper.Viper, configPath string) (*Config, error) {
	v.SetConfigName(constants.ConfigName)
	v.SetConfigType(constants.ConfigFormat)
	if configPath != "" {
		v.AddConfigPath(configPath)
	}

	// HMS_MONGO_URI overrides mongo.uri, and so on.
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, env := range legacyEnv {
		prefixed := constants.EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, env); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", env, err)
		}
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

func ReadConfig(configPath string) (*Config, error) {
	return Load(viper.New(), configPath)
}

func MustReadConfig(path string) *Config {
	cfg, err := ReadConfig(path)
	if err != nil {
		panic(err)
	}
	return cfg
}
