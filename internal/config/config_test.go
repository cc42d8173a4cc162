package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.Port)
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.NotEmpty(t, cfg.UploadDir)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "valid development config",
			cfg:     Config{Port: "8080", JWTSecret: "dev-secret", UploadDir: "public"},
			wantErr: false,
		},
		{
			name:    "missing port",
			cfg:     Config{JWTSecret: "dev-secret", UploadDir: "public"},
			wantErr: true,
		},
		{
			name:    "missing secret",
			cfg:     Config{Port: "8080", UploadDir: "public"},
			wantErr: true,
		},
		{
			name:    "default secret rejected in production",
			cfg:     Config{Port: "8080", JWTSecret: "your-secret-key-change-in-production", UploadDir: "public", Env: "production"},
			wantErr: true,
		},
		{
			name:    "short secret rejected in production",
			cfg:     Config{Port: "8080", JWTSecret: "short", UploadDir: "public", Env: "production"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
