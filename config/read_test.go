package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_LegacyEnvironment(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://db:27017")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_USER", "mailer")
	t.Setenv("SMTP_PASS", "pw")
	t.Setenv("FRONTEND_URL", "https://hms.example.com")

	cfg, err := Load(viper.New(), t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "mongodb://db:27017", cfg.Mongo.URI)
	assert.Equal(t, "s3cret", cfg.Authentication.JWT.Secret)
	assert.Equal(t, "smtp.example.com", cfg.Email.SMTP.Host)
	assert.Equal(t, "mailer", cfg.Email.SMTP.Username)
	assert.Equal(t, "pw", cfg.Email.SMTP.Password)
	assert.Equal(t, "https://hms.example.com", cfg.Server.FrontendURL)

	assert.Equal(t, 500.0, cfg.Payment.HospitalCharge)
	assert.Equal(t, "local", cfg.Storage.Driver)
	assert.Equal(t, 5000, cfg.Server.Port)
}

func TestLoad_PrefixedEnvironmentWins(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://legacy")
	t.Setenv("HMS_MONGO_URI", "mongodb://prefixed")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load(viper.New(), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "mongodb://prefixed", cfg.Mongo.URI)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`
mongo:
  uri: mongodb://file:27017
  database: hms_test
authentication:
  jwt:
    secret: from-file
payment:
  hospital_charge: 750
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0o600))

	cfg, err := Load(viper.New(), dir)
	require.NoError(t, err)
	assert.Equal(t, "hms_test", cfg.Mongo.Database)
	assert.Equal(t, "from-file", cfg.Authentication.JWT.Secret)
	assert.Equal(t, 750.0, cfg.Payment.HospitalCharge)
}

func TestLoad_MissingRequired(t *testing.T) {
	_, err := Load(viper.New(), t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mongo.uri")
	assert.Contains(t, err.Error(), "jwt.secret")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Mongo:          MongoConfig{URI: "mongodb://x", Database: "hms"},
			Authentication: AuthenticationConfig{JWT: JWTConfig{Secret: "k"}},
			Server:         ServerConfig{Port: 8080},
			Storage:        StorageConfig{Driver: "local"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, true},
		{"negative charge", func(c *Config) { c.Payment.HospitalCharge = -1 }, true},
		{"unknown driver", func(c *Config) { c.Storage.Driver = "ftp" }, true},
		{"s3 without bucket", func(c *Config) { c.Storage.Driver = "s3" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
