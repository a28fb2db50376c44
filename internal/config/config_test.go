package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		content string

		want            func(t *testing.T, cfg *Config)
		wantError       bool
		wantErrorString string
	}{
		{
			name: "Full config",
			content: `
remote:
  base_url: https://example.supabase.co
  api_key: anon-key
user:
  id: user-1
  email: learner@example.com
sync:
  interval_seconds: 120
`,
			want: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "https://example.supabase.co", cfg.Remote.BaseURL)
				assert.Equal(t, "anon-key", cfg.Remote.APIKey)
				assert.Equal(t, "user-1", cfg.User.ID)
				assert.Equal(t, 120, cfg.Sync.IntervalSeconds)
				assert.True(t, cfg.Enabled())
			},
		},
		{
			name:    "Empty config falls back to defaults",
			content: "",
			want: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 60, cfg.Sync.IntervalSeconds)
				assert.False(t, cfg.Enabled())
			},
		},
		{
			name: "Invalid URL rejected",
			content: `
remote:
  base_url: not-a-url
  api_key: anon-key
`,
			wantError:       true,
			wantErrorString: "invalid configuration",
		},
		{
			name: "Interval below minimum rejected",
			content: `
sync:
  interval_seconds: 1
`,
			wantError:       true,
			wantErrorString: "invalid configuration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tt.content))
			if tt.wantError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrorString)
				return
			}
			require.NoError(t, err)
			tt.want(t, cfg)
		})
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 60, cfg.Sync.IntervalSeconds)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PREPDECK_REMOTE_URL", "https://env.supabase.co")
	t.Setenv("PREPDECK_API_KEY", "env-key")
	t.Setenv("PREPDECK_USER_ID", "env-user")

	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, "https://env.supabase.co", cfg.Remote.BaseURL)
	assert.Equal(t, "env-key", cfg.Remote.APIKey)
	assert.Equal(t, "env-user", cfg.User.ID)
	assert.True(t, cfg.Enabled())
}
