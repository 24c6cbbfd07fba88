package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.DataDir != "data" {
		t.Errorf("Expected DataDir 'data', got %q", cfg.DataDir)
	}

	if cfg.WordCloud.Width != 3840 || cfg.WordCloud.Height != 2160 {
		t.Errorf("Expected 3840x2160, got %dx%d", cfg.WordCloud.Width, cfg.WordCloud.Height)
	}

	if cfg.WordCloud.BackgroundColor != "white" {
		t.Errorf("Expected background 'white', got %q", cfg.WordCloud.BackgroundColor)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("Expected LogLevel 'info', got %q", cfg.LogLevel)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should be valid: %v", err)
	}
}

func TestLoad_CreateDefault(t *testing.T) {
	// Use temp directory
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ".chat_stats", "config.json")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// Should be default config
	if cfg.WordCloud.Width != 3840 {
		t.Errorf("Expected default Width 3840, got %d", cfg.WordCloud.Width)
	}

	// File should exist now
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("Config file was not created")
	}
}

func TestLoad_ExistingConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	// Create initial config
	initialCfg := Default()
	initialCfg.WordCloud.Width = 1920
	initialCfg.TopWords = 15
	if err := Save(configPath, initialCfg); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	// Load it back
	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.WordCloud.Width != 1920 {
		t.Errorf("Expected Width 1920, got %d", cfg.WordCloud.Width)
	}
	if cfg.TopWords != 15 {
		t.Errorf("Expected TopWords 15, got %d", cfg.TopWords)
	}
}

func TestLoad_PartialConfigKeepsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	data := `{"data_dir": "/srv/chat", "word_cloud": {"height": 1080}}`
	if err := os.WriteFile(configPath, []byte(data), 0600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.DataDir != "/srv/chat" {
		t.Errorf("Expected DataDir '/srv/chat', got %q", cfg.DataDir)
	}
	if cfg.WordCloud.Height != 1080 {
		t.Errorf("Expected Height 1080, got %d", cfg.WordCloud.Height)
	}
	if cfg.WordCloud.Width != 3840 {
		t.Errorf("Expected default Width 3840, got %d", cfg.WordCloud.Width)
	}
	if cfg.WordCloud.BackgroundColor != "white" {
		t.Errorf("Expected default background, got %q", cfg.WordCloud.BackgroundColor)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	if err := os.WriteFile(configPath, []byte("{invalid"), 0600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	if _, err := Load(configPath); err == nil {
		t.Error("Expected error for invalid JSON")
	}
}

func TestPaths(t *testing.T) {
	cfg := Default()
	cfg.DataDir = "/data"

	if got := cfg.InputPath(); got != filepath.Join("/data", "result.json") {
		t.Errorf("InputPath() = %q", got)
	}
	if got := cfg.OutputPath(); got != "/data" {
		t.Errorf("OutputPath() = %q", got)
	}
	if got := cfg.StopWordsPath(); got != filepath.Join("/data", "persian_stop_words.txt") {
		t.Errorf("StopWordsPath() = %q", got)
	}
	if got := cfg.FontPath(); got != filepath.Join("/data", "NotoNaskhArabic-Regular.ttf") {
		t.Errorf("FontPath() = %q", got)
	}

	cfg.InputFile = "/exports/chat.json"
	cfg.OutputDir = "/out"
	cfg.FontFile = "fonts/Vazir.ttf"
	if got := cfg.InputPath(); got != "/exports/chat.json" {
		t.Errorf("Absolute InputPath() = %q", got)
	}
	if got := cfg.OutputPath(); got != "/out" {
		t.Errorf("OutputPath() override = %q", got)
	}
	if got := cfg.FontPath(); got != filepath.Join("/data", "fonts", "Vazir.ttf") {
		t.Errorf("Relative FontPath() = %q", got)
	}
	if got := cfg.WordCloudOptions().FontPath; got != cfg.FontPath() {
		t.Errorf("WordCloudOptions().FontPath = %q", got)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("CHAT_STATS_DATA_DIR", "/env/data")
	t.Setenv("CHAT_STATS_FONT", "/env/font.ttf")
	t.Setenv("CHAT_STATS_LOG_LEVEL", "DEBUG")
	t.Setenv("CHAT_STATS_SEED", "99")
	t.Setenv("CHAT_STATS_BACKGROUND", "#000000")

	cfg := Default().ApplyEnv()

	if cfg.DataDir != "/env/data" {
		t.Errorf("Expected DataDir from env, got %q", cfg.DataDir)
	}
	if cfg.FontPath() != "/env/font.ttf" {
		t.Errorf("Expected font from env, got %q", cfg.FontPath())
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected LogLevel 'debug', got %q", cfg.LogLevel)
	}
	if cfg.WordCloud.RandomSeed != 99 {
		t.Errorf("Expected seed 99, got %d", cfg.WordCloud.RandomSeed)
	}
	if cfg.WordCloud.BackgroundColor != "#000000" {
		t.Errorf("Expected background from env, got %q", cfg.WordCloud.BackgroundColor)
	}
}

func TestApplyEnv_InvalidValuesIgnored(t *testing.T) {
	t.Setenv("CHAT_STATS_LOG_LEVEL", "verbose")
	t.Setenv("CHAT_STATS_SEED", "abc")

	cfg := Default().ApplyEnv()

	if cfg.LogLevel != "info" {
		t.Errorf("Expected LogLevel to stay 'info', got %q", cfg.LogLevel)
	}
	if cfg.WordCloud.RandomSeed != 1 {
		t.Errorf("Expected default seed, got %d", cfg.WordCloud.RandomSeed)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"default", func(c *Config) {}, false},
		{"empty data dir", func(c *Config) { c.DataDir = " " }, true},
		{"negative top words", func(c *Config) { c.TopWords = -1 }, true},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }, true},
		{"zero width", func(c *Config) { c.WordCloud.Width = 0 }, true},
		{"bad background", func(c *Config) { c.WordCloud.BackgroundColor = "sky" }, true},
		{"hex background", func(c *Config) { c.WordCloud.BackgroundColor = "#112233" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetConfigPath(t *testing.T) {
	path := GetConfigPath()
	if filepath.Base(path) != "config.json" {
		t.Errorf("Expected config.json, got %q", path)
	}
	if filepath.Base(filepath.Dir(path)) != ".chat_stats" {
		t.Errorf("Expected .chat_stats directory, got %q", path)
	}
}

func TestLogPath(t *testing.T) {
	tmpDir := t.TempDir()
	cfg, err := Load(filepath.Join(tmpDir, "config.json"))
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Dir != tmpDir {
		t.Errorf("Expected Dir %q, got %q", tmpDir, cfg.Dir)
	}
	if got := cfg.LogPath(); got != filepath.Join(tmpDir, "logs", DefaultLogFile) {
		t.Errorf("LogPath() = %q", got)
	}

	cfg.LogFile = " /var/log/chat_stats.log "
	if got := cfg.LogPath(); got != "/var/log/chat_stats.log" {
		t.Errorf("Explicit LogPath() = %q", got)
	}

	unloaded := Default()
	if got := unloaded.LogPath(); filepath.Dir(filepath.Dir(got)) != filepath.Dir(GetConfigPath()) {
		t.Errorf("Expected default log under the config directory, got %q", got)
	}
}
