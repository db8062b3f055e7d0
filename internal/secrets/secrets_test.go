package secrets

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeGetter struct {
	values map[string]string
	calls  int
	err    error
}

func (f *fakeGetter) GetSecret(_ context.Context, name, _ string, _ *azsecrets.GetSecretOptions) (azsecrets.GetSecretResponse, error) {
	f.calls++
	if f.err != nil {
		return azsecrets.GetSecretResponse{}, f.err
	}
	resp := azsecrets.GetSecretResponse{}
	if v, ok := f.values[name]; ok {
		resp.Value = &v
	}
	return resp, nil
}

func TestResolveSource(t *testing.T) {
	assert.Equal(t, SourceEnvironment, ResolveSource(SourceAuto, "development"))
	assert.Equal(t, SourceEnvironment, ResolveSource("", ""))
	assert.Equal(t, SourceVault, ResolveSource(SourceAuto, "production"))
	assert.Equal(t, SourceVault, ResolveSource(SourceVault, "development"))
}

func TestNewProvider_VaultRequiresName(t *testing.T) {
	_, err := NewProvider(&ProviderConfig{Source: SourceVault}, zap.NewNop())
	require.Error(t, err)
}

func TestProvider_EnvironmentSource(t *testing.T) {
	t.Setenv("MAIL_PASSWORD", "s3cret")

	p, err := NewProvider(&ProviderConfig{Source: SourceAuto, Environment: "development"}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, SourceEnvironment, p.Source())

	value, err := p.GetOrEnv(context.Background(), "smtp-password", "MAIL_PASSWORD")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", value)

	_, err = p.GetOrEnv(context.Background(), "redis-password", "REDIS_PASSWORD_UNSET")
	assert.ErrorIs(t, err, ErrSecretNotFound)
}

func TestProvider_EnvOverridesVault(t *testing.T) {
	t.Setenv("AUTH_JWTSECRET", "from-env")
	getter := &fakeGetter{values: map[string]string{"auth-jwt-secret": "from-vault"}}
	p := &Provider{
		source: SourceVault,
		vault:  newVaultClient(getter, &VaultConfig{}, zap.NewNop()),
		logger: zap.NewNop(),
	}

	value, err := p.GetOrEnv(context.Background(), "auth-jwt-secret", "AUTH_JWTSECRET")
	require.NoError(t, err)
	assert.Equal(t, "from-env", value)
	assert.Zero(t, getter.calls)

	value, err = p.GetOrEnv(context.Background(), "auth-jwt-secret", "AUTH_JWTSECRET_UNSET")
	require.NoError(t, err)
	assert.Equal(t, "from-vault", value)
}

func TestVaultClient_CachesUntilExpiry(t *testing.T) {
	getter := &fakeGetter{values: map[string]string{"database-password": "pw"}}
	client := newVaultClient(getter, &VaultConfig{CacheEnabled: true, CacheTTL: time.Minute}, zap.NewNop())
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	client.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		value, err := client.GetSecret(context.Background(), "database-password")
		require.NoError(t, err)
		assert.Equal(t, "pw", value)
	}
	assert.Equal(t, 1, getter.calls)

	now = now.Add(2 * time.Minute)
	_, err := client.GetSecret(context.Background(), "database-password")
	require.NoError(t, err)
	assert.Equal(t, 2, getter.calls)

	client.ClearCache()
	_, err = client.GetSecret(context.Background(), "database-password")
	require.NoError(t, err)
	assert.Equal(t, 3, getter.calls)
}

func TestVaultClient_Errors(t *testing.T) {
	client := newVaultClient(&fakeGetter{}, &VaultConfig{}, zap.NewNop())
	_, err := client.GetSecret(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrSecretNotFound)

	boom := errors.New("forbidden")
	client = newVaultClient(&fakeGetter{err: boom}, &VaultConfig{}, zap.NewNop())
	_, err = client.GetSecret(context.Background(), "any")
	assert.ErrorIs(t, err, boom)
}
