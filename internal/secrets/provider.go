package secrets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
)

// Source defines where secrets are loaded from
type Source string

const (
	// SourceEnvironment loads secrets from environment variables
	SourceEnvironment Source = "environment"
	// SourceVault loads secrets from Azure Key Vault
	SourceVault Source = "vault"
	// SourceAuto uses the environment in development and the vault elsewhere
	SourceAuto Source = "auto"
)

// ErrSecretNotFound is returned when no source holds a value for the secret
var ErrSecretNotFound = errors.New("secret not found")

// Provider abstracts secret retrieval from different sources
type Provider struct {
	source Source
	vault  *VaultClient
	logger *zap.Logger
}

// ProviderConfig holds configuration for the secrets provider
type ProviderConfig struct {
	Source       Source
	VaultName    string
	Environment  string
	CacheEnabled bool
	CacheTTL     time.Duration
}

// ResolveSource turns "auto" (or an empty value) into a concrete source for the environment
func ResolveSource(source Source, environment string) Source {
	if source != SourceAuto && source != "" {
		return source
	}
	switch environment {
	case "development", "local", "test", "":
		return SourceEnvironment
	default:
		return SourceVault
	}
}

// NewProvider creates a new secrets provider
func NewProvider(cfg *ProviderConfig, logger *zap.Logger) (*Provider, error) {
	source := ResolveSource(cfg.Source, cfg.Environment)

	provider := &Provider{
		source: source,
		logger: logger,
	}

	switch source {
	case SourceEnvironment:
	case SourceVault:
		if cfg.VaultName == "" {
			return nil, fmt.Errorf("vault name required when using vault secret source")
		}
		vault, err := NewVaultClient(&VaultConfig{
			VaultName:    cfg.VaultName,
			CacheEnabled: cfg.CacheEnabled,
			CacheTTL:     cfg.CacheTTL,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize vault client: %w", err)
		}
		provider.vault = vault
	default:
		return nil, fmt.Errorf("unknown secret source: %s", source)
	}

	logger.Info("Secrets provider initialized",
		zap.String("source", string(source)),
		zap.String("environment", cfg.Environment),
	)

	return provider, nil
}

// Get retrieves a secret by name. For the environment source the name is
// the environment variable; for the vault source it is the Key Vault secret name.
func (p *Provider) Get(ctx context.Context, name string) (string, error) {
	switch p.source {
	case SourceEnvironment:
		value := os.Getenv(name)
		if value == "" {
			return "", fmt.Errorf("%w: environment variable '%s' not set", ErrSecretNotFound, name)
		}
		return value, nil
	case SourceVault:
		if p.vault == nil {
			return "", fmt.Errorf("vault client not initialized")
		}
		return p.vault.GetSecret(ctx, name)
	default:
		return "", fmt.Errorf("unknown secret source: %s", p.source)
	}
}

// GetOrEnv prefers an explicitly set environment variable, then the configured source.
// In environment mode secretName is ignored and envName is the only lookup.
func (p *Provider) GetOrEnv(ctx context.Context, secretName, envName string) (string, error) {
	if envValue := os.Getenv(envName); envValue != "" {
		p.logger.Debug("Using environment variable override", zap.String("env_name", envName))
		return envValue, nil
	}
	if p.source == SourceEnvironment {
		return "", fmt.Errorf("%w: environment variable '%s' not set", ErrSecretNotFound, envName)
	}
	return p.Get(ctx, secretName)
}

// Source returns the current secret source
func (p *Provider) Source() Source {
	return p.source
}
