package main

import (
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vitalvas/oasamples/config"
	"github.com/vitalvas/oasamples/logger"
)

// flagKeys maps flag names to configuration keys.
var flagKeys = map[string]string{
	"verbose":   "verbosity",
	"log-json":  "log_json",
	"addr":      "serve.addr",
	"ui":        "serve.ui",
	"base-path": "serve.base_path",
	"title":     "serve.title",
	"max-conns": "serve.max_conns",
	"debounce":  "watch.debounce_ms",
}

type commandContext struct {
	configPath string

	stdout io.Writer
	stderr io.Writer

	cfg *config.Config
	log *logger.Logger
}

func newCommandContext(stdout, stderr io.Writer) *commandContext {
	return &commandContext{
		stdout: stdout,
		stderr: stderr,
		log:    logger.Nop(),
	}
}

// load resolves the effective configuration for cmd and builds the logger.
func (c *commandContext) load(cmd *cobra.Command) error {
	v, err := config.New(strings.TrimSpace(c.configPath))
	if err != nil {
		return err
	}
	if err := config.BindFlags(v, cmd.Flags(), flagKeys); err != nil {
		return err
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	c.cfg = cfg
	c.log = logger.New(logger.Config{
		Verbosity: cfg.Verbosity,
		JSON:      cfg.LogJSON,
		Output:    c.stderr,
	})
	return nil
}

// targets prefers targets given on the command line over configured ones.
func (c *commandContext) targets(args []string) []string {
	if len(args) > 0 {
		return args
	}
	if c.cfg != nil {
		return c.cfg.Targets
	}
	return nil
}

func (c *commandContext) sync() {
	c.log.Sync()
}
