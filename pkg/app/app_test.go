package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gonewx/diary/internal/api"
	"github.com/gonewx/diary/pkg/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "diary.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_FlagOverrides(t *testing.T) {
	t.Setenv(config.APIURLEnv, "http://from-env:9000")
	path := writeConfig(t, "api:\n  baseUrl: http://from-file:8080\n")

	tests := []struct {
		name      string
		cfg       Config
		wantURL   string
		wantWidth int
	}{
		{"环境变量优先于文件", Config{ConfigPath: path}, "http://from-env:9000", config.WindowWidth},
		{"命令行优先于环境变量", Config{ConfigPath: path, APIURL: "http://from-flag/"}, "http://from-flag", config.WindowWidth},
		{"覆盖宽度", Config{ConfigPath: path, Width: 1280}, "http://from-env:9000", 1280},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LoadConfig(tt.cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.wantURL, got.API.BaseURL)
			assert.Equal(t, tt.wantWidth, got.Window.Width)
		})
	}
}

func TestLoadConfig_InvalidOverride(t *testing.T) {
	t.Setenv(config.APIURLEnv, "")
	path := writeConfig(t, "")

	_, err := LoadConfig(Config{ConfigPath: path, APIURL: "not a url"})
	assert.ErrorContains(t, err, "配置无效")
}

func TestApplyAPIConfig(t *testing.T) {
	newApp := func(override bool) *App {
		cfg := config.DefaultConfig()
		return &App{
			client:      api.NewClient(cfg.API.BaseURL, cfg.API.RequestTimeout.Std(), nil),
			diaryConfig: cfg,
			apiOverride: override,
		}
	}
	update := config.APIConfig{
		BaseURL:        "http://reloaded:8080",
		RequestTimeout: config.Duration(2 * time.Second),
	}

	t.Run("热加载更新地址", func(t *testing.T) {
		a := newApp(false)
		a.ApplyAPIConfig(update)
		assert.Equal(t, "http://reloaded:8080", a.client.BaseURL())
		assert.Equal(t, 2*time.Second, a.diaryConfig.API.RequestTimeout.Std())
	})

	t.Run("命令行地址保持不变", func(t *testing.T) {
		a := newApp(true)
		a.ApplyAPIConfig(update)
		assert.Equal(t, "http://localhost:8080", a.client.BaseURL())
		assert.Equal(t, 2*time.Second, a.diaryConfig.API.RequestTimeout.Std())
	})
}

func TestApplyConfigUpdates_ClosedChannel(t *testing.T) {
	updates := make(chan *config.DiaryConfig)
	close(updates)
	a := &App{configUpdates: updates}

	a.applyConfigUpdates()
	assert.Nil(t, a.configUpdates)
}
