package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	DB         DBConfig
	Admin      AdminConfig
	Log        LogConfig
	CORS       CORSConfig
	Generation GenerationConfig
	Repair     RepairConfig
	License    LicenseConfig
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// AdminConfig holds the admin password gate and its session token settings.
type AdminConfig struct {
	PasswordHash string        `mapstructure:"password_hash"`
	JWTSecret    string        `mapstructure:"jwt_secret"`
	Issuer       string        `mapstructure:"issuer"`
	TokenExpiry  time.Duration `mapstructure:"token_expiry"`
}

// LicenseConfig holds license issuance limits.
type LicenseConfig struct {
	MaxBatch int `mapstructure:"max_batch"`
}

// RepairConfig holds the opt-in parts of the reply repair pipeline.
type RepairConfig struct {
	Fallbacks   []string `mapstructure:"fallbacks"`
	SchemaCheck bool     `mapstructure:"schema_check"`
}

// GenerationProviderConfig holds settings for a single text generation provider.
type GenerationProviderConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	BaseURL      string `mapstructure:"base_url"`
	MaxRetries   int    `mapstructure:"max_retries"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// GenerationConfig holds text generation settings with multi-provider support.
type GenerationConfig struct {
	// Legacy flat fields, used when no primary provider is set
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`

	// TimeoutSecs bounds one whole generation call, fallbacks and retries included.
	TimeoutSecs int `mapstructure:"timeout_secs"`
	// Retries is the number of extra attempts made against a failing provider chain.
	Retries    int           `mapstructure:"retries"`
	RetryDelay time.Duration `mapstructure:"retry_delay"`

	Primary   GenerationProviderConfig `mapstructure:"primary"`
	Secondary GenerationProviderConfig `mapstructure:"secondary"`
	Tertiary  GenerationProviderConfig `mapstructure:"tertiary"`
}

// Timeout returns the per-request generation deadline.
func (g *GenerationConfig) Timeout() time.Duration {
	if g.TimeoutSecs <= 0 {
		return 30 * time.Second
	}
	return time.Duration(g.TimeoutSecs) * time.Second
}

// PrimaryConfig returns the primary provider config, falling back to legacy flat fields.
func (g *GenerationConfig) PrimaryConfig() *GenerationProviderConfig {
	if g.Primary.Provider != "" {
		return &g.Primary
	}
	return &GenerationProviderConfig{
		Provider:     g.Provider,
		APIKey:       g.APIKey,
		DefaultModel: g.DefaultModel,
		TimeoutSecs:  g.TimeoutSecs,
	}
}

// SecondaryConfig returns the secondary provider config, or nil if not configured.
func (g *GenerationConfig) SecondaryConfig() *GenerationProviderConfig {
	if g.Secondary.Provider != "" {
		return &g.Secondary
	}
	return nil
}

// TertiaryConfig returns the tertiary provider config, or nil if not configured.
func (g *GenerationConfig) TertiaryConfig() *GenerationProviderConfig {
	if g.Tertiary.Provider != "" {
		return &g.Tertiary
	}
	return nil
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// Database drivers.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"
)

// DBConfig holds license store connection settings.
type DBConfig struct {
	Driver     string `mapstructure:"driver"`
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	User       string `mapstructure:"user"`
	Password   string `mapstructure:"password"`
	Name       string `mapstructure:"name"`
	SSLMode    string `mapstructure:"sslmode"`
	SQLitePath string `mapstructure:"sqlite_path"`
	MaxOpen    int    `mapstructure:"max_open"`
	MaxIdle    int    `mapstructure:"max_idle"`
}

// DSN returns the driver-specific connection string.
func (d *DBConfig) DSN() string {
	if d.Driver == DriverSQLite {
		return d.SQLitePath
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// MigrateURL returns the database URL in the form golang-migrate expects.
func (d *DBConfig) MigrateURL() string {
	if d.Driver == DriverSQLite {
		return "sqlite://" + d.SQLitePath
	}
	return d.DSN()
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LoadDotEnv loads a .env file into the process environment when one exists.
// Variables already set in the environment win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("config.LoadDotEnv %s: %w", p, err)
		}
	}
	return nil
}

// Load reads configuration from environment variables with the TICKETSCAN_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TICKETSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":10000")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.driver", DriverSQLite)
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "ticketscan")
	v.SetDefault("db.password", "ticketscan_secret")
	v.SetDefault("db.name", "ticketscan_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.sqlite_path", "ticketscan.db")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// Admin defaults
	v.SetDefault("admin.password_hash", "")
	v.SetDefault("admin.jwt_secret", "change-me-in-production")
	v.SetDefault("admin.issuer", "ticketscan")
	v.SetDefault("admin.token_expiry", "12h")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Generation defaults (legacy flat)
	v.SetDefault("generation.provider", "cohere")
	v.SetDefault("generation.api_key", "")
	v.SetDefault("generation.default_model", "command")
	v.SetDefault("generation.timeout_secs", 30)
	v.SetDefault("generation.retries", 1)
	v.SetDefault("generation.retry_delay", "500ms")

	for _, tier := range []string{"primary", "secondary", "tertiary"} {
		v.SetDefault("generation."+tier+".provider", "")
		v.SetDefault("generation."+tier+".api_key", "")
		v.SetDefault("generation."+tier+".default_model", "")
		v.SetDefault("generation."+tier+".base_url", "")
		v.SetDefault("generation."+tier+".max_retries", 2)
		v.SetDefault("generation."+tier+".timeout_secs", 30)
	}

	// Repair defaults
	v.SetDefault("repair.fallbacks", "")
	v.SetDefault("repair.schema_check", false)

	// License defaults
	v.SetDefault("license.max_batch", 500)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string][]string{
		"server.port":              {"TICKETSCAN_SERVER_PORT"},
		"server.read_timeout":      {"TICKETSCAN_SERVER_READ_TIMEOUT"},
		"server.write_timeout":     {"TICKETSCAN_SERVER_WRITE_TIMEOUT"},
		"server.environment":       {"TICKETSCAN_SERVER_ENVIRONMENT"},
		"db.driver":                {"TICKETSCAN_DB_DRIVER"},
		"db.host":                  {"TICKETSCAN_DB_HOST"},
		"db.port":                  {"TICKETSCAN_DB_PORT"},
		"db.user":                  {"TICKETSCAN_DB_USER"},
		"db.password":              {"TICKETSCAN_DB_PASSWORD"},
		"db.name":                  {"TICKETSCAN_DB_NAME"},
		"db.sslmode":               {"TICKETSCAN_DB_SSLMODE"},
		"db.sqlite_path":           {"TICKETSCAN_DB_SQLITE_PATH"},
		"db.max_open":              {"TICKETSCAN_DB_MAX_OPEN"},
		"db.max_idle":              {"TICKETSCAN_DB_MAX_IDLE"},
		"admin.password_hash":      {"TICKETSCAN_ADMIN_PASSWORD_HASH", "ADMIN_PASSWORD_HASH"},
		"admin.jwt_secret":         {"TICKETSCAN_ADMIN_JWT_SECRET"},
		"admin.issuer":             {"TICKETSCAN_ADMIN_ISSUER"},
		"admin.token_expiry":       {"TICKETSCAN_ADMIN_TOKEN_EXPIRY"},
		"log.level":                {"TICKETSCAN_LOG_LEVEL"},
		"log.format":               {"TICKETSCAN_LOG_FORMAT"},
		"cors.allowed_origins":     {"TICKETSCAN_CORS_ALLOWED_ORIGINS"},
		"generation.provider":      {"TICKETSCAN_GENERATION_PROVIDER"},
		"generation.api_key":       {"TICKETSCAN_GENERATION_API_KEY", "COHERE_API_KEY"},
		"generation.default_model": {"TICKETSCAN_GENERATION_DEFAULT_MODEL"},
		"generation.timeout_secs":  {"TICKETSCAN_GENERATION_TIMEOUT_SECS"},
		"generation.retries":       {"TICKETSCAN_GENERATION_RETRIES"},
		"generation.retry_delay":   {"TICKETSCAN_GENERATION_RETRY_DELAY"},
		"repair.fallbacks":         {"TICKETSCAN_REPAIR_FALLBACKS"},
		"repair.schema_check":      {"TICKETSCAN_REPAIR_SCHEMA_CHECK"},
		"license.max_batch":        {"TICKETSCAN_LICENSE_MAX_BATCH"},
	}
	for _, tier := range []string{"primary", "secondary", "tertiary"} {
		for _, field := range []string{"provider", "api_key", "default_model", "base_url", "max_retries", "timeout_secs"} {
			key := "generation." + tier + "." + field
			envBindings[key] = []string{"TICKETSCAN_GENERATION_" + strings.ToUpper(tier+"_"+field)}
		}
	}
	for key, envs := range envBindings {
		_ = v.BindEnv(append([]string{key}, envs...)...)
	}

	cfg := &Config{}

	// Render and similar platforms set PORT. Use it if TICKETSCAN_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("TICKETSCAN_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Driver:     v.GetString("db.driver"),
		Host:       v.GetString("db.host"),
		Port:       v.GetInt("db.port"),
		User:       v.GetString("db.user"),
		Password:   v.GetString("db.password"),
		Name:       v.GetString("db.name"),
		SSLMode:    v.GetString("db.sslmode"),
		SQLitePath: v.GetString("db.sqlite_path"),
		MaxOpen:    v.GetInt("db.max_open"),
		MaxIdle:    v.GetInt("db.max_idle"),
	}
	if cfg.DB.Driver != DriverPostgres && cfg.DB.Driver != DriverSQLite {
		return nil, fmt.Errorf("config: unsupported db driver %q", cfg.DB.Driver)
	}
	cfg.Admin = AdminConfig{
		PasswordHash: v.GetString("admin.password_hash"),
		JWTSecret:    v.GetString("admin.jwt_secret"),
		Issuer:       v.GetString("admin.issuer"),
		TokenExpiry:  v.GetDuration("admin.token_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}

	cfg.Generation = GenerationConfig{
		Provider:     v.GetString("generation.provider"),
		APIKey:       v.GetString("generation.api_key"),
		DefaultModel: v.GetString("generation.default_model"),
		TimeoutSecs:  v.GetInt("generation.timeout_secs"),
		Retries:      v.GetInt("generation.retries"),
		RetryDelay:   v.GetDuration("generation.retry_delay"),
		Primary:      providerConfig(v, "primary"),
		Secondary:    providerConfig(v, "secondary"),
		Tertiary:     providerConfig(v, "tertiary"),
	}

	cfg.Repair = RepairConfig{
		Fallbacks:   splitList(v.GetString("repair.fallbacks")),
		SchemaCheck: v.GetBool("repair.schema_check"),
	}

	cfg.License = LicenseConfig{
		MaxBatch: v.GetInt("license.max_batch"),
	}

	return cfg, nil
}

func providerConfig(v *viper.Viper, tier string) GenerationProviderConfig {
	prefix := "generation." + tier + "."
	return GenerationProviderConfig{
		Provider:     v.GetString(prefix + "provider"),
		APIKey:       v.GetString(prefix + "api_key"),
		DefaultModel: v.GetString(prefix + "default_model"),
		BaseURL:      v.GetString(prefix + "base_url"),
		MaxRetries:   v.GetInt(prefix + "max_retries"),
		TimeoutSecs:  v.GetInt(prefix + "timeout_secs"),
	}
}

// splitList parses a comma-separated setting, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
