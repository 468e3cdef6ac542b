package wire

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/mithrel/chatextract/internal/config"
)

// App aggregates the resolved configuration and shared services.
type App struct {
	Cfg *viper.Viper
	Log zerolog.Logger
}

// BuildApp validates the config and wires the logger. Diagnostics go to
// logOut (stderr when nil) so stdout stays reserved for results.
func BuildApp(ctx context.Context, v *viper.Viper, logOut io.Writer) (*App, error) {
	if err := config.CheckConfigValidity(v); err != nil {
		return nil, err
	}
	if logOut == nil {
		logOut = os.Stderr
	}
	level, err := zerolog.ParseLevel(strings.ToLower(v.GetString("log.level")))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: logOut, TimeFormat: time.RFC3339, NoColor: !isTerminal(logOut)}).
		Level(level).
		With().
		Timestamp().
		Logger()
	return &App{Cfg: v, Log: logger}, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
