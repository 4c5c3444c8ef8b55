package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DevelopmentDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.IsProduction())
	assert.True(t, cfg.AuthEnabled)
	assert.Equal(t, 3000, cfg.Port)
}

func TestLoad_ProductionJWTSecret(t *testing.T) {
	cases := map[string]struct {
		secret  string
		auth    string
		wantErr bool
	}{
		"missing secret":       {secret: "", auth: "true", wantErr: true},
		"blank secret":         {secret: "   ", auth: "true", wantErr: true},
		"default secret":       {secret: DefaultJWTSecret, auth: "true", wantErr: true},
		"real secret":          {secret: "k9v3-prod-signing-key", auth: "true"},
		"auth disabled":        {secret: "", auth: "false"},
		"auth off, default ok": {secret: DefaultJWTSecret, auth: "false"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("APP_ENV", "production")
			t.Setenv("JWT_SECRET", tc.secret)
			t.Setenv("AUTH_ENABLED", tc.auth)

			cfg, err := Load()
			if tc.wantErr {
				require.ErrorIs(t, err, ErrWeakJWTSecret)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			assert.True(t, cfg.IsProduction())
		})
	}
}

func TestAllowedOrigins(t *testing.T) {
	cfg := &Config{CORSOrigins: " https://a.example ,, https://b.example "}
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins())
}
