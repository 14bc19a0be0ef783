package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kumarlokesh/morse-tree/internal/config"
	"github.com/kumarlokesh/morse-tree/internal/logging"
	"github.com/kumarlokesh/morse-tree/internal/morse"
)

type rootOptions struct {
	configPath  string
	tablePath   string
	tableFormat string
	strict      bool
	logLevel    string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "morse",
		Short:         "Encode and decode text with a dot/dash code tree",
		Long:          `Builds a binary code tree from a table of symbol codes and uses it to translate text to code groups and back.`,
		Example:       `morse encode "Hello World"`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to config file")
	flags.StringVarP(&opts.tablePath, "table", "t", "", "code table file (default: built-in international table)")
	flags.StringVar(&opts.tableFormat, "table-format", "", "table file format: text, json, yaml, cbor or msgpack (default: from extension)")
	flags.BoolVar(&opts.strict, "strict", false, "fail on characters missing from the table")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (default: from config)")

	cmd.AddCommand(
		newEncodeCmd(opts),
		newDecodeCmd(opts),
		newTreeCmd(opts),
		newTableCmd(opts),
		newDemoCmd(opts),
	)
	return cmd
}

// load resolves configuration and flags into a codec
func (o *rootOptions) load(cmd *cobra.Command) (*morse.Codec, error) {
	cfg, err := config.LoadConfig(o.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("table") {
		cfg.Table.Path = o.tablePath
	}
	if flags.Changed("table-format") {
		cfg.Table.Format = o.tableFormat
	}
	if flags.Changed("strict") {
		cfg.Codec.Strict = o.strict
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = o.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Pretty)
	if err != nil {
		return nil, err
	}

	table, err := cfg.LoadTable()
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("path", cfg.Table.Path).Int("symbols", table.Len()).Msg("loaded code table")

	return morse.NewCodec(table, morse.WithPolicy(cfg.Policy()), morse.WithLogger(logger.With().Str("component", "codec").Logger()))
}

// input joins args with spaces, or reads in when there are none. A single
// trailing newline is dropped from piped input.
func input(args []string, in io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	text := strings.TrimSuffix(string(data), "\n")
	return strings.TrimSuffix(text, "\r"), nil
}
