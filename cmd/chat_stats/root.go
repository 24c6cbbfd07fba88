package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"chat_stats/pkg/config"
	"chat_stats/pkg/display"
	"chat_stats/pkg/logging"
	"chat_stats/pkg/stats"
	"chat_stats/pkg/textproc"
	"chat_stats/pkg/version"
	"chat_stats/pkg/wordcloud"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// cliOptions holds flag values; they override config and environment only
// when set explicitly.
type cliOptions struct {
	configPath string
	input      string
	outputDir  string
	background string
	logLevel   string
	width      int
	height     int
	maxWords   int
	top        int
	seed       int64
	copyPath   bool
	raw        bool
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	opts := &cliOptions{}

	rootCmd := &cobra.Command{
		Use:   "chat_stats",
		Short: "Render a word cloud from a Telegram chat export",
		Long: `chat_stats reads a Telegram chat export (result.json), drops Persian
stop-words and renders the remaining words as a word cloud (result.png).

Examples:
  chat_stats                          # data/result.json -> data/result.png
  chat_stats --input chat.json --top 20
  chat_stats text > words.txt         # extracted text only`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWordCloud(cmd, opts, stdout)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "config file (default ~/.chat_stats/config.json)")
	flags.StringVarP(&opts.input, "input", "i", "", "chat export to read")
	flags.StringVarP(&opts.outputDir, "output-dir", "o", "", "directory for result.png")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.BoolVar(&opts.raw, "raw", false, "split on whitespace without Persian normalization")

	rootCmd.Flags().IntVar(&opts.width, "width", 0, "image width in pixels")
	rootCmd.Flags().IntVar(&opts.height, "height", 0, "image height in pixels")
	rootCmd.Flags().StringVar(&opts.background, "background", "", "background color name or #rrggbb")
	rootCmd.Flags().IntVar(&opts.maxWords, "max-words", 0, "maximum number of words in the cloud")
	rootCmd.Flags().Int64Var(&opts.seed, "seed", 0, "layout random seed")
	rootCmd.Flags().IntVarP(&opts.top, "top", "n", 0, "print the N most frequent words")
	rootCmd.Flags().BoolVar(&opts.copyPath, "copy", false, "copy the image path to the clipboard (OSC 52)")

	rootCmd.AddCommand(newTextCommand(opts, stdout))
	rootCmd.AddCommand(newVersionCommand(stdout))

	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	return rootCmd
}

func newTextCommand(opts *cliOptions, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "text",
		Short: "Print the extracted text without rendering",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, res, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			cs, err := stats.Open(cfg.InputPath(), res)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(stdout, cs.ExtractText())
			return err
		},
	}
}

func newVersionCommand(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(stdout, version.Details())
			return err
		},
	}
}

// execute runs the command line and returns the process exit code. Logs are
// discarded until the configuration selects a destination, so a failure is
// reported once on stderr.
func execute(args []string, stdout, stderr io.Writer) int {
	slog.SetDefault(slog.New(slog.DiscardHandler))
	cmd := newRootCommand(stdout, stderr)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		slog.Error("command_failed", "error", err)
		display.New(stderr).Error(err)
		return 1
	}
	return 0
}

func runWordCloud(cmd *cobra.Command, opts *cliOptions, stdout io.Writer) error {
	cfg, res, err := setup(cmd, opts)
	if err != nil {
		return err
	}

	// The font is a startup resource: fail before touching the export.
	renderer, err := wordcloud.New(cfg.WordCloudOptions())
	if err != nil {
		return err
	}

	cs, err := stats.Open(cfg.InputPath(), res)
	if err != nil {
		return err
	}

	printer := display.New(stdout)
	if cfg.TopWords > 0 {
		if err := printer.TopWords(cs.TopWords(cfg.TopWords)); err != nil {
			return err
		}
	}

	path, err := cs.GenerateWordCloudWith(cfg.OutputPath(), renderer)
	if err != nil {
		return err
	}
	slog.Info("word_cloud_written", "path", path)

	if opts.copyPath {
		if err := printer.CopyPath(path); err != nil {
			return err
		}
	}
	return printer.Done()
}

// setup resolves configuration, starts logging and loads the text resources.
func setup(cmd *cobra.Command, opts *cliOptions) (config.Config, stats.Resources, error) {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return config.Config{}, stats.Resources{}, err
	}

	if _, err := logging.Init(cfg); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to initialize logging: %v\n", err)
	}
	slog.Info("startup",
		"version", version.Summary(),
		"input", cfg.InputPath(),
		"output_dir", cfg.OutputPath(),
		"raw", opts.raw,
	)

	res, err := loadResources(cfg, opts.raw)
	if err != nil {
		return config.Config{}, stats.Resources{}, err
	}
	return cfg, res, nil
}

func loadConfig(cmd *cobra.Command, opts *cliOptions) (config.Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to load .env file: %v\n", err)
	}

	path := opts.configPath
	if path == "" {
		path = config.GetConfigPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	cfg = cfg.ApplyEnv()

	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.InputFile = opts.input
	}
	if flags.Changed("output-dir") {
		cfg.OutputDir = opts.outputDir
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if flags.Changed("width") {
		cfg.WordCloud.Width = opts.width
	}
	if flags.Changed("height") {
		cfg.WordCloud.Height = opts.height
	}
	if flags.Changed("background") {
		cfg.WordCloud.BackgroundColor = opts.background
	}
	if flags.Changed("max-words") {
		cfg.WordCloud.MaxWords = opts.maxWords
	}
	if flags.Changed("seed") {
		cfg.WordCloud.RandomSeed = opts.seed
	}
	if flags.Changed("top") {
		cfg.TopWords = opts.top
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func loadResources(cfg config.Config, raw bool) (stats.Resources, error) {
	if !raw {
		return stats.LoadResources(cfg.StopWordsPath())
	}
	normalizer := textproc.NopNormalizer{}
	stopWords, err := textproc.LoadStopWords(cfg.StopWordsPath(), normalizer)
	if err != nil {
		return stats.Resources{}, err
	}
	return stats.Resources{
		Normalizer: normalizer,
		Tokenizer:  textproc.WhitespaceTokenizer{},
		StopWords:  stopWords,
	}, nil
}
