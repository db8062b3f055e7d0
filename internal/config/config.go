package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mrqz-remodeling/console-api/internal/secrets"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	Redis     RedisConfig
	Storage   StorageConfig
	Secrets   SecretsConfig
	Document  DocumentConfig
	Mail      MailConfig
	Jobs      JobsConfig
	Logging   LoggingConfig
	Server    ServerConfig
	CORS      CORSConfig
	Security  SecurityConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name        string
	Environment string
	Port        int
}

type DatabaseConfig struct {
	// Driver is "postgres" or "sqlite"
	Driver          string
	Host            string
	Port            int
	Name            string
	User            string
	Password        string
	SSLMode         string
	SQLitePath      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
	// AutoMigrate runs gorm AutoMigrate at startup; intended for local sqlite use
	AutoMigrate bool
}

// AuthConfig configures the identity gate
type AuthConfig struct {
	// JWTSecret verifies HS256 tokens issued by the identity provider
	JWTSecret string
	Issuer    string
	Audience  string
	// AllowedEmails is the single allow-list; comma separated in the environment
	AllowedEmails []string
	APIKey        string
	// SessionStore is "memory" or "redis"
	SessionStore string
	// SessionTTL in seconds
	SessionTTL int
	LoginURL   string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type StorageConfig struct {
	Mode                  string
	LocalBasePath         string
	CloudConnectionString string
	CloudContainer        string
}

type SecretsConfig struct {
	// Source is "environment", "vault", or "auto"
	Source       string
	KeyVaultName string
	CacheEnabled bool
	CacheTTL     int // seconds
}

// DocumentConfig holds the quotation letterhead and renderer settings
type DocumentConfig struct {
	CompanyName    string
	AddressLine    string
	Phone          string
	Email          string
	Website        string
	ChromePath     string
	TimeoutSeconds int
}

type MailConfig struct {
	Enabled  bool
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type JobsConfig struct {
	Enabled          bool
	ReconcileCron    string
	SessionPurgeCron string
}

type LoggingConfig struct {
	Level  string
	Format string
	// File enables rotated file output in addition to stderr
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type ServerConfig struct {
	ReadTimeout    int
	WriteTimeout   int
	RequestTimeout int
	EnableSwagger  bool
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

// SecurityConfig holds security header configuration
type SecurityConfig struct {
	EnableHSTS            bool
	HSTSMaxAge            int
	HSTSIncludeSubdomains bool
	HSTSPreload           bool
	ContentSecurityPolicy string
	FrameOptions          string
	ContentTypeNosniff    bool
	ReferrerPolicy        string
	PermissionsPolicy     string
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled               bool
	RequestsPerMinute     int
	RequestsPerMinuteAuth int
	WhitelistIPs          []string
	WhitelistPaths        []string
}

// ConnectionString builds the PostgreSQL connection string
func (d *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

// ConnMaxLifetimeDuration returns connection max lifetime as duration
func (d *DatabaseConfig) ConnMaxLifetimeDuration() time.Duration {
	return time.Duration(d.ConnMaxLifetime) * time.Second
}

// ReadTimeoutDuration returns read timeout as duration
func (s *ServerConfig) ReadTimeoutDuration() time.Duration {
	return time.Duration(s.ReadTimeout) * time.Second
}

// WriteTimeoutDuration returns write timeout as duration
func (s *ServerConfig) WriteTimeoutDuration() time.Duration {
	return time.Duration(s.WriteTimeout) * time.Second
}

// RequestTimeoutDuration returns request timeout as duration
func (s *ServerConfig) RequestTimeoutDuration() time.Duration {
	return time.Duration(s.RequestTimeout) * time.Second
}

// SessionTTLDuration returns the session cache TTL
func (a *AuthConfig) SessionTTLDuration() time.Duration {
	return time.Duration(a.SessionTTL) * time.Second
}

// TimeoutDuration returns the PDF render timeout
func (d *DocumentConfig) TimeoutDuration() time.Duration {
	return time.Duration(d.TimeoutSeconds) * time.Second
}

// Load loads configuration from file and environment variables without
// touching the secret store. Use LoadWithSecrets for full resolution.
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// The identity provider's client uses ALLOWED_EMAILS; accept it as an alias
	if len(cfg.Auth.AllowedEmails) == 0 {
		if raw := os.Getenv("ALLOWED_EMAILS"); raw != "" {
			cfg.Auth.AllowedEmails = SplitList(raw)
		}
	}
	cfg.Auth.AllowedEmails = normalizeList(cfg.Auth.AllowedEmails)

	if cfg.Secrets.KeyVaultName == "" {
		cfg.Secrets.KeyVaultName = v.GetString("AZURE_KEY_VAULT_NAME")
	}

	return &cfg, nil
}

// LoadWithSecrets loads configuration and resolves credentials through the
// secrets provider. In development the provider reads environment variables;
// with secrets.source=vault (or auto outside development) it reads Azure Key Vault.
func LoadWithSecrets(ctx context.Context, logger *zap.Logger) (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	provider, err := secrets.NewProvider(&secrets.ProviderConfig{
		Source:       secrets.Source(cfg.Secrets.Source),
		VaultName:    cfg.Secrets.KeyVaultName,
		Environment:  cfg.App.Environment,
		CacheEnabled: cfg.Secrets.CacheEnabled,
		CacheTTL:     time.Duration(cfg.Secrets.CacheTTL) * time.Second,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize secrets provider: %w", err)
	}

	resolve := func(target *string, secretName, envName string) {
		if value, err := provider.GetOrEnv(ctx, secretName, envName); err == nil && value != "" {
			*target = value
		}
	}

	resolve(&cfg.Database.Password, "database-password", "DATABASE_PASSWORD")
	resolve(&cfg.Auth.JWTSecret, "auth-jwt-secret", "AUTH_JWTSECRET")
	resolve(&cfg.Auth.APIKey, "auth-api-key", "AUTH_APIKEY")
	resolve(&cfg.Mail.Password, "smtp-password", "MAIL_PASSWORD")
	resolve(&cfg.Redis.Password, "redis-password", "REDIS_PASSWORD")
	resolve(&cfg.Storage.CloudConnectionString, "storage-connection-string", "STORAGE_CLOUDCONNECTIONSTRING")

	logger.Info("secrets resolved", zap.String("source", string(provider.Source())))
	return cfg, nil
}

// SplitList splits a comma separated value, trimming blanks
func SplitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// normalizeList flattens entries that still contain commas, which happens when
// a list arrives from a single environment variable
func normalizeList(values []string) []string {
	var out []string
	for _, v := range values {
		out = append(out, SplitList(v)...)
	}
	return out
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "MRQZ Remodeling Console API")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.port", 8080)

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "remodeling")
	v.SetDefault("database.user", "remodeling")
	v.SetDefault("database.password", "remodeling")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.sqlitePath", "remodeling.db")
	v.SetDefault("database.maxOpenConns", 25)
	v.SetDefault("database.maxIdleConns", 5)
	v.SetDefault("database.connMaxLifetime", 300)
	v.SetDefault("database.autoMigrate", false)

	v.SetDefault("auth.jwtSecret", "")
	v.SetDefault("auth.issuer", "")
	v.SetDefault("auth.audience", "authenticated")
	v.SetDefault("auth.allowedEmails", []string{})
	v.SetDefault("auth.apiKey", "")
	v.SetDefault("auth.sessionStore", "memory")
	v.SetDefault("auth.sessionTTL", 900)
	v.SetDefault("auth.loginUrl", "/login")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("storage.mode", "local")
	v.SetDefault("storage.localBasePath", "./storage")
	v.SetDefault("storage.cloudContainer", "quotations")

	v.SetDefault("secrets.source", "auto")
	v.SetDefault("secrets.cacheEnabled", true)
	v.SetDefault("secrets.cacheTTL", 300)

	v.SetDefault("document.companyName", "MRQZ REMODELING LLC")
	v.SetDefault("document.addressLine", "Denver, Colorado 80210")
	v.SetDefault("document.phone", "(720) 736-9728")
	v.SetDefault("document.email", "robmarq47@gmail.com")
	v.SetDefault("document.website", "www.mrqzremodeling.com")
	v.SetDefault("document.chromePath", "")
	v.SetDefault("document.timeoutSeconds", 30)

	v.SetDefault("mail.enabled", false)
	v.SetDefault("mail.host", "localhost")
	v.SetDefault("mail.port", 587)
	v.SetDefault("mail.user", "")
	v.SetDefault("mail.password", "")
	v.SetDefault("mail.from", "robmarq47@gmail.com")

	v.SetDefault("jobs.enabled", true)
	v.SetDefault("jobs.reconcileCron", "0 0 3 * * *")
	v.SetDefault("jobs.sessionPurgeCron", "0 */5 * * * *")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file", "")
	v.SetDefault("logging.maxSizeMB", 100)
	v.SetDefault("logging.maxBackups", 5)
	v.SetDefault("logging.maxAgeDays", 30)
	v.SetDefault("logging.compress", true)

	v.SetDefault("server.readTimeout", 30)
	v.SetDefault("server.writeTimeout", 60)
	v.SetDefault("server.requestTimeout", 60)
	v.SetDefault("server.enableSwagger", true)

	v.SetDefault("cors.allowedOrigins", []string{})
	v.SetDefault("cors.allowedMethods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowedHeaders", []string{"Accept", "Authorization", "Content-Type", "X-API-Key", "X-Request-ID"})
	v.SetDefault("cors.exposedHeaders", []string{"Content-Disposition", "X-Request-ID"})
	v.SetDefault("cors.allowCredentials", true)
	v.SetDefault("cors.maxAge", 300)

	v.SetDefault("security.enableHSTS", false)
	v.SetDefault("security.hstsMaxAge", 31536000)
	v.SetDefault("security.hstsIncludeSubdomains", true)
	v.SetDefault("security.hstsPreload", false)
	v.SetDefault("security.contentSecurityPolicy", "default-src 'self'")
	v.SetDefault("security.frameOptions", "DENY")
	v.SetDefault("security.contentTypeNosniff", true)
	v.SetDefault("security.referrerPolicy", "strict-origin-when-cross-origin")
	v.SetDefault("security.permissionsPolicy", "geolocation=(), microphone=(), camera=()")

	v.SetDefault("rateLimit.enabled", true)
	v.SetDefault("rateLimit.requestsPerMinute", 60)
	v.SetDefault("rateLimit.requestsPerMinuteAuth", 120)
	v.SetDefault("rateLimit.whitelistIPs", []string{"127.0.0.1", "::1"})
	v.SetDefault("rateLimit.whitelistPaths", []string{"/health", "/health/db", "/health/ready"})
}
