package main

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/atomicstack/demo-crawler/internal/app"
	"github.com/atomicstack/demo-crawler/internal/config"
)

func TestInspectTerminalsIncludesStandardDescriptors(t *testing.T) {
	info := inspectTerminals(os.Stdin, os.Stdout, os.Stderr)
	if len(info.Checks) != 3 {
		t.Fatalf("expected 3 check entries, got %d", len(info.Checks))
	}
	expected := []string{"stdin", "stdout", "stderr"}
	for i, name := range expected {
		if info.Checks[i].Name != name {
			t.Fatalf("expected check %d name %q, got %q", i, name, info.Checks[i].Name)
		}
	}
}

func TestStartupTracePayloadIncludesFlags(t *testing.T) {
	cfg := config.Config{
		App: app.Config{
			Path:   "match.dem",
			Dir:    "demos",
			Width:  80,
			Height: 24,
		},
		Logging: config.Logging{
			FilePath: "trace.log",
			Trace:    true,
		},
		Flags: map[string]string{
			"dir":    "demos",
			"width":  "80",
			"height": "24",
		},
		Args: []string{"match.dem"},
	}

	payload := startupTracePayload(cfg)

	flagsValue, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	if flagsValue["dir"] != "demos" {
		t.Fatalf("expected dir flag %q, got %v", "demos", flagsValue["dir"])
	}
	if flagsValue["width"] != "80" {
		t.Fatalf("expected width 80, got %v", flagsValue["width"])
	}
	if flagsValue["height"] != "24" {
		t.Fatalf("expected height 24, got %v", flagsValue["height"])
	}
	if flagsValue["trace"] != true {
		t.Fatalf("expected trace flag true, got %v", flagsValue["trace"])
	}
	if flagsValue["logFile"] != "trace.log" {
		t.Fatalf("expected log file trace.log, got %v", flagsValue["logFile"])
	}
	if payload["file"] != "match.dem" {
		t.Fatalf("expected file match.dem, got %v", payload["file"])
	}

	if _, ok := payload["tty"].(ttyReport); !ok {
		t.Fatalf("expected tty details in payload")
	}
	if cfgValue, ok := payload["config"].(config.Config); !ok {
		t.Fatalf("expected config in payload")
	} else if cfgValue.App != cfg.App {
		t.Fatalf("expected app config %#v, got %#v", cfg.App, cfgValue.App)
	}
}

func TestRootCommandRejectsBadArguments(t *testing.T) {
	cases := map[string][]string{
		"two files":      {"a.dem", "b.dem"},
		"negative width": {"--width=-1"},
		"unknown flag":   {"--socket=x"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			cmd := newRootCmd(nil)
			var stderr strings.Builder
			cmd.SetOut(io.Discard)
			cmd.SetErr(&stderr)
			cmd.SetArgs(args)
			if err := cmd.Execute(); err == nil {
				t.Fatalf("expected %v to be rejected", args)
			}
		})
	}
}

func TestRootCommandRegistersFlags(t *testing.T) {
	cmd := newRootCmd([]string{"DEMO_CRAWLER_WIDTH=120"})
	for _, name := range []string{"log-file", "trace", "dir", "width", "height"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Fatalf("expected flag %q to be registered", name)
		}
	}
	if got := cmd.Flags().Lookup("width").DefValue; got != "120" {
		t.Fatalf("expected width default from environment, got %q", got)
	}
}

func TestInspectTerminalsSkipsRegularFiles(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "check")
	if err != nil {
		t.Fatalf("create temp file: %v", err)
	}
	defer f.Close()
	report := inspectTerminals(f)
	if report.Size != nil {
		t.Fatalf("expected no size for a regular file, got %#v", report.Size)
	}
	if len(report.Checks) != 1 || report.Checks[0].Terminal {
		t.Fatalf("expected one non-terminal check, got %#v", report.Checks)
	}
}
