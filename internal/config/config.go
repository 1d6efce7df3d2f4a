package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/atomicstack/demo-crawler/internal/app"
	"github.com/spf13/pflag"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envLogFile = "DEMO_CRAWLER_LOG_FILE"
	envTrace   = "DEMO_CRAWLER_TRACE"
	envDir     = "DEMO_CRAWLER_DIR"
	envWidth   = "DEMO_CRAWLER_WIDTH"
	envHeight  = "DEMO_CRAWLER_HEIGHT"
)

// Flags holds the values bound to a flag set.
type Flags struct {
	LogFile string
	Trace   bool
	Dir     string
	Width   int
	Height  int
}

// BindFlags registers the options on fs. Defaults come from environ so an
// explicit flag always wins over the environment.
func BindFlags(fs *pflag.FlagSet, environ []string) *Flags {
	env := parseEnv(environ)
	f := &Flags{}
	fs.StringVar(&f.LogFile, "log-file", envOrDefault(env, envLogFile, ""), "path to the log file")
	fs.BoolVar(&f.Trace, "trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	fs.StringVar(&f.Dir, "dir", envOrDefault(env, envDir, ""), "directory the file picker starts in")
	fs.IntVar(&f.Width, "width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	fs.IntVar(&f.Height, "height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	return f
}

// Config builds the runtime configuration from the bound values and the
// positional arguments.
func (f *Flags) Config(args []string) (Config, error) {
	if len(args) > 1 {
		return Config{}, fmt.Errorf("at most one file may be given (got %d)", len(args))
	}
	cfg := Config{
		App: app.Config{
			Dir:    f.Dir,
			Width:  f.Width,
			Height: f.Height,
		},
		Logging: Logging{
			FilePath: f.LogFile,
			Trace:    f.Trace,
		},
		Flags: map[string]string{
			"dir":     f.Dir,
			"width":   strconv.Itoa(f.Width),
			"height":  strconv.Itoa(f.Height),
			"trace":   strconv.FormatBool(f.Trace),
			"logFile": f.LogFile,
		},
		Args: append([]string(nil), args...),
	}
	if len(args) == 1 {
		cfg.App.Path = args[0]
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadArgs parses args and environ without a command wrapper.
func LoadArgs(args []string, environ []string) (Config, error) {
	fs := pflag.NewFlagSet("demo-crawler", pflag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))
	flags := BindFlags(fs, environ)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return flags.Config(fs.Args())
}

// Validate rejects negative sizes and a picker directory that is not a
// directory.
func Validate(cfg Config) error {
	if cfg.App.Width < 0 {
		return fmt.Errorf("width must be >= 0 (got %d)", cfg.App.Width)
	}
	if cfg.App.Height < 0 {
		return fmt.Errorf("height must be >= 0 (got %d)", cfg.App.Height)
	}
	if cfg.App.Dir != "" {
		info, err := os.Stat(cfg.App.Dir)
		if err != nil {
			return fmt.Errorf("dir: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("dir: %s is not a directory", cfg.App.Dir)
		}
	}
	return nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}
