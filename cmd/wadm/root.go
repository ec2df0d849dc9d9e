package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Sternrassler/wadm-client/internal/config"
	"github.com/Sternrassler/wadm-client/pkg/client"
	"github.com/Sternrassler/wadm-client/pkg/logging"
	"github.com/Sternrassler/wadm-client/pkg/pagination"
)

// app carries the state shared by all commands once initialize ran.
type app struct {
	cfgFile string
	debug   bool

	cfg    *config.Config
	logger zerolog.Logger
	client *client.Client
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "wadm",
		Short: "Query the Werk aan de Muur art catalog",
		Long: `wadm talks to the Werk aan de Muur REST API. It checks connectivity and
credentials, lists artworks of a user or an album, fetches single artworks
and can expose all of it as a read-only JSON gateway.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.initialize,
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ./wadm.yaml)")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "log every outgoing request")

	root.AddCommand(
		newPingCmd(a),
		newArtworksCmd(a),
		newAlbumCmd(a),
		newArtworkCmd(a),
		newServeCmd(a),
	)
	return root
}

// initialize loads the configuration, sets up logging and creates the client.
func (a *app) initialize(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Changed("debug") {
		cfg.Debug = a.debug
	}
	if cfg.Debug {
		cfg.Logging.Level = string(logging.LevelDebug)
	}
	a.cfg = cfg

	a.logger = logging.Setup(loggingConfig(cfg.Logging, cmd.ErrOrStderr())).
		With().Str("component", "cli").Logger()

	collector := pagination.NewCollector(pagination.Config{MaxPages: cfg.MaxPages}).
		WithLogger(logging.NewLogger("pagination"))

	a.client, err = client.New(cfg.ClientConfig(),
		client.WithLogger(logging.NewLogger("wadm-client")),
		client.WithCollector(collector),
	)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	return nil
}

// loggingConfig maps the CLI logging settings. Colors are only used when
// stderr is a terminal.
func loggingConfig(cfg config.LoggingConfig, out io.Writer) logging.Config {
	tty := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	return logging.Config{
		Level:   logging.LogLevel(cfg.Level),
		Pretty:  cfg.Format == "console",
		NoColor: !cfg.Color || !tty,
		Output:  out,
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
