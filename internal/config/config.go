package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/mithrel/chatextract/internal/transcript"
)

// applyDefaults seeds Viper with defaults defined in GetConfigOptions.
func applyDefaults(v *viper.Viper) {
	for _, o := range GetConfigOptions() {
		v.SetDefault(o.Key, o.Default)
	}
}

// Load resolves configuration with precedence: defaults < file < .env < env.
// Flags are applied later by the commands that own them.
func Load(ctx context.Context, v *viper.Viper) error {
	if v.ConfigFileUsed() == "" {
		v.SetConfigName("config")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "chatextract"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "chatextract"))
		}
		v.AddConfigPath(".")
	}

	applyDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	// A .env in the working directory feeds the environment; real
	// environment variables win because godotenv never overrides them.
	_ = godotenv.Load()

	v.SetEnvPrefix("chatextract")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if strings.TrimSpace(v.GetString("output_dir")) == "" {
		v.Set("output_dir", "extracted")
	}
	return nil
}

// DefaultConfigPath resolves the standard config.toml location.
func DefaultConfigPath() string {
	xdg := os.Getenv("XDG_CONFIG_HOME")
	if xdg == "" {
		home, _ := os.UserHomeDir()
		xdg = filepath.Join(home, ".config")
	}
	return filepath.Join(xdg, "chatextract", "config.toml")
}

type ConfigOption struct {
	Key     string
	Default any
	Comment string
}

// GetConfigOptions returns the configuration options, their defaults and
// meanings. Defaults, validation and config generation all read this table.
func GetConfigOptions() []ConfigOption {
	return []ConfigOption{
		{Key: "output_dir", Default: "extracted", Comment: "Base directory for extracted output; files go to output_dir/<export folder name>"},

		{Key: "log.level", Default: "info", Comment: "Log level: trace|debug|info|warn|error"},

		{Key: "list.sample_titles", Default: 2, Comment: "Number of sample titles shown per date"},
		{Key: "list.title_width", Default: 30, Comment: "Sample titles are cut to this many characters"},

		{Key: "html.enabled", Default: true, Comment: "Generate chat.html next to the extracted JSON"},
		{Key: "html.title", Default: "Chat Export", Comment: "Title of the generated HTML document"},

		{Key: "transcript.strategy", Default: "timeline", Comment: "Message ordering: timeline (all nodes by time) or branch (current branch only)"},

		{Key: "show.style", Default: "dracula", Comment: "glamour style for pretty transcripts"},
		{Key: "show.word_wrap", Default: 80, Comment: "Word wrap width for pretty transcripts"},
	}
}

// CheckConfigValidity reports every invalid setting at once.
func CheckConfigValidity(v *viper.Viper) error {
	var errs []error
	if strings.TrimSpace(v.GetString("output_dir")) == "" {
		errs = append(errs, errors.New("output_dir is required"))
	}
	if lvl := v.GetString("log.level"); lvl != "" {
		if _, err := zerolog.ParseLevel(strings.ToLower(lvl)); err != nil {
			errs = append(errs, fmt.Errorf("log.level %q is not a valid level", lvl))
		}
	}
	if v.GetInt("list.sample_titles") < 0 {
		errs = append(errs, errors.New("list.sample_titles must not be negative"))
	}
	if v.GetInt("list.title_width") <= 0 {
		errs = append(errs, errors.New("list.title_width must be greater than 0"))
	}
	if _, ok := transcript.ParseStrategy(v.GetString("transcript.strategy")); !ok {
		errs = append(errs, fmt.Errorf("transcript.strategy %q must be timeline or branch", v.GetString("transcript.strategy")))
	}
	if v.GetInt("show.word_wrap") <= 0 {
		errs = append(errs, errors.New("show.word_wrap must be greater than 0"))
	}
	return errors.Join(errs...)
}
