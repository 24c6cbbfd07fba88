package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"chat_stats/pkg/wordcloud"
)

// Config represents the application configuration
type Config struct {
	DataDir       string          `json:"data_dir"`
	InputFile     string          `json:"input_file"`
	OutputDir     string          `json:"output_dir"`
	StopWordsFile string          `json:"stop_words_file"`
	FontFile      string          `json:"font_file"`
	WordCloud     WordCloudConfig `json:"word_cloud"`
	TopWords      int             `json:"top_words"`
	LogLevel      string          `json:"log_level"`
	LogFormat     string          `json:"log_format"`
	LogFile       string          `json:"log_file"`

	// Dir is the directory the configuration was loaded from.
	Dir string `json:"-"`
}

// WordCloudConfig holds image layout settings
type WordCloudConfig struct {
	Width            int     `json:"width"`
	Height           int     `json:"height"`
	BackgroundColor  string  `json:"background_color"`
	MaxWords         int     `json:"max_words"`
	MinWordLength    int     `json:"min_word_length"`
	MinFontSize      int     `json:"min_font_size"`
	MaxFontSize      int     `json:"max_font_size"` // 0 derives it from the two most frequent words
	FontStep         int     `json:"font_step"`
	PreferHorizontal float64 `json:"prefer_horizontal"`
	RelativeScaling  float64 `json:"relative_scaling"`
	Margin           int     `json:"margin"`
	RandomSeed       int64   `json:"random_seed"`
}

// Default file names inside the data directory
const (
	DefaultInputFile     = "result.json"
	DefaultStopWordsFile = "persian_stop_words.txt"
	DefaultFontFile      = "NotoNaskhArabic-Regular.ttf"
)

// Default returns a configuration with default values
func Default() Config {
	wc := wordcloud.DefaultOptions()
	return Config{
		DataDir: "data",
		WordCloud: WordCloudConfig{
			Width:            wc.Width,
			Height:           wc.Height,
			BackgroundColor:  wc.BackgroundColor,
			MaxWords:         wc.MaxWords,
			MinWordLength:    wc.MinWordLength,
			MinFontSize:      wc.MinFontSize,
			MaxFontSize:      wc.MaxFontSize,
			FontStep:         wc.FontStep,
			PreferHorizontal: wc.PreferHorizontal,
			RelativeScaling:  wc.RelativeScaling,
			Margin:           wc.Margin,
			RandomSeed:       wc.RandomSeed,
		},
		TopWords:  0,
		LogLevel:  "info",
		LogFormat: "json",
	}
}

// Load loads configuration from the specified path
// If the file doesn't exist, creates one with default values
func Load(configPath string) (Config, error) {
	// Ensure directory exists
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return Config{}, fmt.Errorf("failed to create config directory: %w", err)
	}

	// Try to read existing config
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Create default config
			cfg := Default()
			if err := Save(configPath, cfg); err != nil {
				return Config{}, fmt.Errorf("failed to create default config: %w", err)
			}
			cfg.Dir = configDir
			return cfg, nil
		}
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	// Parse on top of defaults so missing keys keep their default values
	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.Dir = configDir

	return cfg, nil
}

// Save saves the configuration to the specified path
func Save(configPath string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// ApplyEnv overrides config values from CHAT_STATS_* environment variables
func (c Config) ApplyEnv() Config {
	overrides := map[string]*string{
		"CHAT_STATS_DATA_DIR":   &c.DataDir,
		"CHAT_STATS_INPUT":      &c.InputFile,
		"CHAT_STATS_OUTPUT_DIR": &c.OutputDir,
		"CHAT_STATS_STOP_WORDS": &c.StopWordsFile,
		"CHAT_STATS_FONT":       &c.FontFile,
		"CHAT_STATS_BACKGROUND": &c.WordCloud.BackgroundColor,
		"CHAT_STATS_LOG_FILE":   &c.LogFile,
		"CHAT_STATS_LOG_FORMAT": &c.LogFormat,
	}
	for key, field := range overrides {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*field = v
		}
	}

	if level := strings.ToLower(strings.TrimSpace(os.Getenv("CHAT_STATS_LOG_LEVEL"))); level != "" {
		switch level {
		case "debug", "info", "warn", "error":
			c.LogLevel = level
		}
	}

	if seed := os.Getenv("CHAT_STATS_SEED"); seed != "" {
		if v, err := strconv.ParseInt(seed, 10, 64); err == nil {
			c.WordCloud.RandomSeed = v
		}
	}

	return c
}

// Validate checks if the configuration is valid
func (c Config) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("data_dir is required")
	}

	if c.TopWords < 0 {
		return fmt.Errorf("top_words must not be negative, got: %d", c.TopWords)
	}

	switch strings.ToLower(c.LogFormat) {
	case "", "json", "text":
	default:
		return fmt.Errorf("unsupported log_format: %s", c.LogFormat)
	}

	return c.WordCloudOptions().Validate()
}

// InputPath returns the chat export to read
func (c Config) InputPath() string {
	return c.inDataDir(c.InputFile, DefaultInputFile)
}

// OutputPath returns the directory the image is written to
func (c Config) OutputPath() string {
	if strings.TrimSpace(c.OutputDir) != "" {
		return c.OutputDir
	}
	return c.DataDir
}

// StopWordsPath returns the stop-word list to load
func (c Config) StopWordsPath() string {
	return c.inDataDir(c.StopWordsFile, DefaultStopWordsFile)
}

// FontPath returns the font used for rendering
func (c Config) FontPath() string {
	return c.inDataDir(c.FontFile, DefaultFontFile)
}

// inDataDir resolves name against the data directory unless it is absolute
func (c Config) inDataDir(name, fallback string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = fallback
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

// WordCloudOptions converts the word cloud settings for the renderer
func (c Config) WordCloudOptions() wordcloud.Options {
	wc := c.WordCloud
	return wordcloud.Options{
		Width:            wc.Width,
		Height:           wc.Height,
		BackgroundColor:  wc.BackgroundColor,
		FontPath:         c.FontPath(),
		MaxWords:         wc.MaxWords,
		MinWordLength:    wc.MinWordLength,
		MinFontSize:      wc.MinFontSize,
		MaxFontSize:      wc.MaxFontSize,
		FontStep:         wc.FontStep,
		PreferHorizontal: wc.PreferHorizontal,
		RelativeScaling:  wc.RelativeScaling,
		Margin:           wc.Margin,
		RandomSeed:       wc.RandomSeed,
	}
}

// DefaultLogFile is the log file name inside <config dir>/logs.
const DefaultLogFile = "chat_stats.log"

// LogPath returns where logs go: log_file when set, otherwise a logs
// directory next to the loaded configuration.
func (c Config) LogPath() string {
	if path := strings.TrimSpace(c.LogFile); path != "" {
		return path
	}
	dir := c.Dir
	if dir == "" {
		dir = filepath.Dir(GetConfigPath())
	}
	return filepath.Join(dir, "logs", DefaultLogFile)
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".chat_stats/config.json"
	}
	return filepath.Join(homeDir, ".chat_stats", "config.json")
}
