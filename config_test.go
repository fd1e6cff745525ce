package zaim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("ZAIM_CONSUMER_KEY", "key")
	t.Setenv("ZAIM_CONSUMER_SECRET", "secret")
	t.Setenv("ZAIM_ACCESS_TOKEN", "token")
	t.Setenv("ZAIM_ACCESS_TOKEN_SECRET", "token-secret")
	t.Setenv("ZAIM_TIMEOUT", "5s")
	t.Setenv("ZAIM_DELETE_VIA_PUT", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "key", cfg.ConsumerKey)
	assert.Equal(t, "secret", cfg.ConsumerSecret)
	assert.Equal(t, "token", cfg.AccessToken)
	assert.Equal(t, "token-secret", cfg.AccessTokenSecret)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.True(t, cfg.DeleteViaPut)
	assert.Equal(t, "https://api.zaim.net", cfg.BaseURL)
	assert.Equal(t, "https://auth.zaim.net/users/auth", cfg.AuthorizeURL)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigBadTimeout(t *testing.T) {
	t.Setenv("ZAIM_TIMEOUT", "forever")
	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr []string
	}{
		{name: "complete", cfg: Config{ConsumerKey: "k", ConsumerSecret: "s"}},
		{name: "missing secret", cfg: Config{ConsumerKey: "k"}, wantErr: []string{"consumer secret is required"}},
		{name: "missing both", cfg: Config{}, wantErr: []string{"consumer key is required", "consumer secret is required"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			for _, want := range tt.wantErr {
				assert.ErrorContains(t, err, want)
			}
		})
	}
}
