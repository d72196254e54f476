package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestLoadDefaults(t *testing.T) {
	resetViper(t)
	SetDefaults()

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, defaultStorePath, cfg.Store.Path)
	assert.Equal(t, defaultServerPort, cfg.Server.Port)
	assert.Equal(t, defaultCronSpec, cfg.Schedule.Cron)
	assert.Equal(t, defaultMaxArticles, cfg.Fetch.MaxArticles)
	assert.Equal(t, defaultTimeout, cfg.Fetch.Timeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Empty(t, cfg.Sites)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "valid",
			cfg: Config{
				Store: Store{Path: "data/test.db"},
				Sites: []Site{{Name: "tribune", URL: "https://t.example"}},
			},
		},
		{
			name:    "missing store path",
			cfg:     Config{},
			wantErr: true,
		},
		{
			name: "site without name",
			cfg: Config{
				Store: Store{Path: "data/test.db"},
				Sites: []Site{{URL: "https://t.example"}},
			},
			wantErr: true,
		},
		{
			name: "site without url",
			cfg: Config{
				Store: Store{Path: "data/test.db"},
				Sites: []Site{{Name: "tribune"}},
			},
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

func TestSiteByName(t *testing.T) {
	cfg := Config{Sites: []Site{
		{Name: "tribune", URL: "https://t.example"},
		{Name: "gazette", URL: "https://g.example"},
	}}

	site, err := cfg.SiteByName("gazette")
	require.NoError(t, err)
	assert.Equal(t, "https://g.example", site.URL)

	_, err = cfg.SiteByName("missing")
	assert.Error(t, err)
}

func TestLoggerConfig(t *testing.T) {
	cfg := Config{Logging: Logging{Level: "debug", Development: true}}
	lc := cfg.LoggerConfig()
	assert.Equal(t, "debug", lc.Level)
	assert.True(t, lc.Development)
}
