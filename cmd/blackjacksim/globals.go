package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
)

// Globals are flags shared by every command.
type Globals struct {
	LogLevel  string `default:"warn" enum:"debug,info,warn,error" env:"BJSIM_LOG_LEVEL" help:"Log level (debug|info|warn|error)"`
	LogFormat string `default:"text" enum:"text,json,logfmt" env:"BJSIM_LOG_FORMAT" help:"Log format (text|json|logfmt)"`
	NoColor   bool   `env:"BJSIM_NO_COLOR" help:"Disable coloured output"`
}

// logger builds the process logger. Logs go to w, results to stdout.
func (g *Globals) logger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(g.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	formatter := log.TextFormatter
	switch g.LogFormat {
	case "json":
		formatter = log.JSONFormatter
	case "logfmt":
		formatter = log.LogfmtFormatter
	}

	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       formatter,
		ReportTimestamp: true,
		Prefix:          "blackjacksim",
	}), nil
}

// stdout returns the result writer, configuring colour first.
func (g *Globals) stdout() io.Writer {
	if g.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	return os.Stdout
}
