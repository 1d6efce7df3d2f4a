package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/atomicstack/demo-crawler/internal/app"
	"github.com/atomicstack/demo-crawler/internal/config"
	"github.com/atomicstack/demo-crawler/internal/logging"
	"github.com/atomicstack/demo-crawler/internal/logging/events"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func main() {
	if err := newRootCmd(os.Environ()).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(environ []string) *cobra.Command {
	var flags *config.Flags
	cmd := &cobra.Command{
		Use:           "demo-crawler [file]",
		Short:         "Browse recorded game demos in the terminal",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			runtimeCfg, err := flags.Config(args)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Configuration error: %v\n", err)
				return err
			}
			logging.Configure(runtimeCfg.Logging.FilePath)
			logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

			traceStartup(runtimeCfg)

			if err := app.Run(runtimeCfg.App); err != nil {
				logging.Error(err)
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				return err
			}
			return nil
		},
	}
	flags = config.BindFlags(cmd.Flags(), environ)
	return cmd
}

func traceStartup(cfg config.Config) {
	events.App.Start(startupTracePayload(cfg))
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":   os.Args,
		"file":   cfg.App.Path,
		"flags":  flags,
		"config": cfg,
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}
	payload["tty"] = inspectTerminals(os.Stdin, os.Stdout, os.Stderr)
	return payload
}

type ttyReport struct {
	Size   *ttySize   `json:"size,omitempty"`
	Checks []ttyCheck `json:"checks"`
}

type ttySize struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyCheck struct {
	Name     string `json:"name"`
	Terminal bool   `json:"is_terminal"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	Error    string `json:"error,omitempty"`
}

// inspectTerminals reports which of files is a terminal. The first terminal
// with a readable size supplies Size.
func inspectTerminals(files ...*os.File) ttyReport {
	report := ttyReport{Checks: make([]ttyCheck, 0, len(files))}
	for _, f := range files {
		check := inspectTerminal(f)
		if report.Size == nil && check.Terminal && check.Error == "" {
			report.Size = &ttySize{Source: check.Name, Width: check.Width, Height: check.Height}
		}
		report.Checks = append(report.Checks, check)
	}
	return report
}

func inspectTerminal(f *os.File) ttyCheck {
	check := ttyCheck{Name: strings.TrimPrefix(f.Name(), "/dev/")}
	fd := int(f.Fd())
	if fd < 0 || !term.IsTerminal(fd) {
		return check
	}
	check.Terminal = true
	width, height, err := term.GetSize(fd)
	if err != nil {
		check.Error = err.Error()
		return check
	}
	check.Width, check.Height = width, height
	return check
}
