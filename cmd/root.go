package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	viperlib "github.com/spf13/viper"

	"github.com/zjrosen/vikey/internal/config"
	"github.com/zjrosen/vikey/internal/log"
	"github.com/zjrosen/vikey/internal/playground"
	"github.com/zjrosen/vikey/internal/registers"
	"github.com/zjrosen/vikey/internal/tracing"
	"github.com/zjrosen/vikey/vikey"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version    = "dev"
	cfgFile    string
	registerDB string
	dumpWords  bool
	cfg        config.Config
	debugFlag  bool

	// viper is a custom viper instance with "::" as key delimiter instead of ".".
	// Nested paths are written like "theme::preset", so keys containing "."
	// can be used as literal map keys in the config file without being
	// interpreted as nested paths.
	viper = viperlib.NewWithOptions(viperlib.KeyDelimiter("::"))
)

var rootCmd = &cobra.Command{
	Use:     "vikey",
	Short:   "A modal keystroke parser and reference playground",
	Long:    `vikey is a vi-family modal keystroke parser. This binary hosts a reference playground that exercises the parser against a real text buffer.`,
	Version: version,
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Launch the playground buffer",
	RunE:  runPlay,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/vikey/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"enable debug mode with logging (also: VIKEY_DEBUG=1)")
	playCmd.Flags().StringVar(&registerDB, "register-db", "",
		"path to the register database (default: ~/.config/vikey/registers.db)")
	playCmd.Flags().BoolVar(&dumpWords, "dump-words", false,
		"print the word/WORD boundaries of each positional argument and exit, instead of launching the buffer")

	_ = viper.BindPFlag("registers::db_path", playCmd.Flags().Lookup("register-db"))

	rootCmd.AddCommand(playCmd)
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("ui::show_status_bar", defaults.UI.ShowStatusBar)
	viper.SetDefault("ui::show_line_numbers", defaults.UI.ShowLineNums)
	viper.SetDefault("ui::tab_width", defaults.UI.TabWidth)
	viper.SetDefault("theme::preset", defaults.Theme.Preset)
	viper.SetDefault("theme::mode", defaults.Theme.Mode)
	viper.SetDefault("registers::db_path", defaults.Registers.DBPath)
	viper.SetDefault("registers::cache_ttl_seconds", defaults.Registers.CacheTTLSeconds)
	viper.SetDefault("tracing::enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing::exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing::sample_rate", defaults.Tracing.SampleRate)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if _, err := os.Stat(".vikey/config.yaml"); err == nil {
			viper.SetConfigFile(".vikey/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "vikey"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		var configNotFound viperlib.ConfigFileNotFoundError
		if errors.As(err, &configNotFound) {
			defaultPath := ".vikey/config.yaml"
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
				log.Info(log.CatConfig, "config loaded", "path", defaultPath)
			}
		}
	} else {
		log.Info(log.CatConfig, "config loaded", "path", viper.ConfigFileUsed())
	}

	_ = viper.Unmarshal(&cfg)
}

func runPlay(cmd *cobra.Command, args []string) error {
	if dumpWords {
		return runDumpWords(args)
	}

	debug := os.Getenv("VIKEY_DEBUG") != "" || debugFlag
	if debug {
		logPath := os.Getenv("VIKEY_LOG")
		if logPath == "" {
			logPath = "debug.log"
		}
		cleanup, err := log.InitWithTeaLog(logPath, "vikey")
		if err != nil {
			return fmt.Errorf("initializing logging: %w", err)
		}
		defer cleanup()
		log.Info(log.CatConfig, "vikey playground starting", "version", version, "debug", true, "logPath", logPath)
	}

	if err := config.ValidateTheme(cfg.Theme); err != nil {
		return fmt.Errorf("invalid theme configuration: %w", err)
	}
	if err := config.ValidateTracing(cfg.Tracing); err != nil {
		return fmt.Errorf("invalid tracing configuration: %w", err)
	}

	if registerDB != "" {
		cfg.Registers.DBPath = registerDB
	}
	if cfg.Registers.DBPath == "" {
		cfg.Registers.DBPath = config.DefaultRegistersDBPath()
	}

	bank, err := registers.OpenBank(cfg.Registers)
	if err != nil {
		return fmt.Errorf("opening register bank: %w", err)
	}
	defer bank.Close()

	tracer, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("configuring tracing: %w", err)
	}
	defer tracer.Shutdown(context.Background())

	cfgPath := viper.ConfigFileUsed()
	var watcher *config.Watcher
	if cfgPath != "" {
		watcher, err = config.NewWatcher(cfgPath)
		if err != nil {
			log.ErrorErr(log.CatWatcher, "failed to start config watcher, live reload disabled", err, "path", cfgPath)
			watcher = nil
		} else {
			defer watcher.Stop()
		}
	}

	model := playground.New(cfg, cfgPath, bank, tracer, watcher)
	p := tea.NewProgram(&model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		if debug {
			log.Error(log.CatConfig, "vikey playground exited with error", "error", err)
		}
		return fmt.Errorf("running program: %w", err)
	}

	if debug {
		log.Info(log.CatConfig, "vikey playground shutting down")
	}
	return nil
}

// runDumpWords is a standalone word-iterator demo: for each line (taken from
// args, or a couple of built-in samples if none are given) it prints the
// word and WORD boundaries vikey.NewWordIter finds, one per line as
// "index: slice". Grounded on word.rs's own WordIter smoke test, which
// prints the Lower-then-Upper boundaries of a couple of hardcoded strings.
func runDumpWords(args []string) error {
	lines := args
	if len(lines) == 0 {
		lines = []string{".test.some....words    ", ".test.some    words    "}
	}

	for _, line := range lines {
		fmt.Printf("Testing words: %q\n", line)
		dumpWordIter(line, vikey.WordLower)

		fmt.Printf("Testing WORDs: %q\n", line)
		dumpWordIter(line, vikey.WordUpper)
	}
	return nil
}

func dumpWordIter(line string, kind vikey.Word) {
	it := vikey.NewWordIter(line, kind)
	for {
		start, slice, ok := it.Next()
		if !ok {
			break
		}
		fmt.Printf("%d: %q\n", start, slice)
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags).
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
