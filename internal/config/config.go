package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	LogLevel    string   `mapstructure:"log_level"`
	Format      string   `mapstructure:"format"`
	Extensions  []string `mapstructure:"extensions"`
	MaxDepth    int      `mapstructure:"max_depth"`
	SkipVisited bool     `mapstructure:"skip_visited"`
	DryRun      bool     `mapstructure:"dry_run"`
	ColorPath   string   `mapstructure:"color_path"`
	ColorInfo   string   `mapstructure:"color_info"`
	ColorDim    string   `mapstructure:"color_dim"`
}

// C is the global config instance
var C Config

var extensionRe = regexp.MustCompile(`^\.?[A-Za-z0-9_-]+$`)

// Validate checks the loaded values
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.LogLevel, validation.Required, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.Format, validation.Required, validation.In("plaintext")),
		validation.Field(&c.Extensions, validation.Required, validation.Each(validation.Required, validation.Match(extensionRe))),
		validation.Field(&c.MaxDepth, validation.Min(0)),
	)
}

// Init initializes configuration with viper
func Init() error {
	viper.SetDefault("log_level", "warn")
	viper.SetDefault("format", "plaintext")
	viper.SetDefault("extensions", []string{".md"})
	viper.SetDefault("max_depth", 0)        // No limit
	viper.SetDefault("skip_visited", false) // Re-tangle documents reached twice
	viper.SetDefault("dry_run", false)
	viper.SetDefault("color_path", "36") // Cyan
	viper.SetDefault("color_info", "32") // Green
	viper.SetDefault("color_dim", "90")  // Gray

	viper.SetConfigName("tangle")
	viper.SetConfigType("yaml")

	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "tangle"))
		viper.AddConfigPath(home)
	}
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("TANGLE")
	viper.AutomaticEnv()

	// A missing config file is fine; a malformed one is reported
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("read config: %w", err)
		}
	}

	return Load()
}

// Load unmarshals the current viper state into C and validates it
func Load() error {
	C = Config{}
	if err := viper.Unmarshal(&C); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	C.LogLevel = strings.ToLower(strings.TrimSpace(C.LogLevel))
	C.Extensions = splitList(C.Extensions)
	if err := C.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// splitList flattens entries holding several comma or space separated
// values, as environment variables do
func splitList(items []string) []string {
	var out []string
	for _, item := range items {
		out = append(out, strings.FieldsFunc(item, func(r rune) bool {
			return r == ',' || unicode.IsSpace(r)
		})...)
	}
	return out
}

// GetLogLevel returns the configured slog level
func GetLogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(C.LogLevel)); err != nil {
		return slog.LevelWarn
	}
	return level
}

// GetFormat returns the source format
func GetFormat() string {
	return C.Format
}

// GetExtensions returns the markdown extensions, each with a leading dot
func GetExtensions() []string {
	out := make([]string, 0, len(C.Extensions))
	for _, e := range C.Extensions {
		out = append(out, "."+strings.TrimPrefix(e, "."))
	}
	return out
}

// GetMaxDepth returns the link depth limit, 0 for none
func GetMaxDepth() int {
	return C.MaxDepth
}

// GetSkipVisited returns whether documents are tangled at most once per run
func GetSkipVisited() bool {
	return C.SkipVisited
}

// GetDryRun returns whether writes are only reported
func GetDryRun() bool {
	return C.DryRun
}

// GetColorPath returns ANSI color code for paths
func GetColorPath() string {
	return C.ColorPath
}

// GetColorInfo returns ANSI color code for info strings
func GetColorInfo() string {
	return C.ColorInfo
}

// GetColorDim returns ANSI color code for secondary text
func GetColorDim() string {
	return C.ColorDim
}
