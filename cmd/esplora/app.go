package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/dando385/esplora-cli/internal/config"
	"github.com/dando385/esplora-cli/internal/dispatch"
	"github.com/dando385/esplora-cli/internal/display"
	"github.com/dando385/esplora-cli/internal/env"
	"github.com/dando385/esplora-cli/internal/logger"
	"github.com/dando385/esplora-cli/internal/provider"
	"github.com/dando385/esplora-cli/internal/request"
)

// Setting keys. Each is a persistent flag and an ESPLORA_* variable
// (dashes become underscores, e.g. ESPLORA_LOG_LEVEL).
const (
	keyConfig     = "config"
	keyNetwork    = "network"
	keyChain      = "chain"
	keyProvider   = "provider"
	keyFormat     = "format"
	keyTimeout    = "timeout"
	keyMaxRetries = "max-retries"
	keyLogLevel   = "log-level"
	keyLogFormat  = "log-format"
	keyEnvFile    = "env-file"
)

// app holds what one invocation resolves at startup.
type app struct {
	v      *viper.Viper
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	cfg    *config.Config
	log    logger.AppLogger
	net    *chaincfg.Params
	format display.Format

	// newService builds the data service for the selected endpoint.
	newService func(cfg *config.Config, p config.Provider, log logger.AppLogger) dispatch.Service
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	v := viper.New()
	v.SetEnvPrefix("ESPLORA")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return &app{
		v:      v,
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		newService: func(cfg *config.Config, p config.Provider, log logger.AppLogger) dispatch.Service {
			return provider.NewClient(cfg, p, log)
		},
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "esplora",
		Short: "Query an Esplora block explorer and broadcast transactions",
		Long: `Query transactions, blocks, headers, script history and fee estimates
from an Esplora HTTP API, and broadcast signed transactions.

Settings resolve as: flags, then ESPLORA_* environment variables (a .env file
in the working directory is loaded first), then the YAML config file, then
built-in defaults.`,
		Args:          usageArgs(cobra.NoArgs),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	pf := root.PersistentFlags()
	addGlobalFlags(pf)
	if err := a.v.BindPFlags(pf); err != nil {
		// only fails on a nil flag set
		panic(err)
	}

	root.AddCommand(
		getTxCmd(a),
		getTxAtBlockIndexCmd(a),
		getTxStatusCmd(a),
		getHeaderByHashCmd(a),
		getBlockStatusCmd(a),
		getBlockByHashCmd(a),
		getMerkleProofCmd(a),
		getMerkleBlockCmd(a),
		getOutputStatusCmd(a),
		broadcastCmd(a),
		getHeightCmd(a),
		getTipHashCmd(a),
		getBlockHashCmd(a),
		getFeeEstimatesCmd(a),
		getScriptHashTransactionsCmd(a),
		getBlocksCmd(a),
		statusCmd(a),
	)
	return root
}

// addGlobalFlags registers the settings every command accepts. Settings that
// also live in the config file default to zero so an unset flag never
// shadows it.
func addGlobalFlags(fs *pflag.FlagSet) {
	fs.String(keyConfig, config.DefaultConfigFile, "Config file path")
	fs.String(keyNetwork, "", "Esplora base URL (default "+config.DefaultNetwork+")")
	fs.String(keyChain, "", "Chain for address handling: mainnet|testnet|signet|regtest")
	fs.String(keyProvider, "", "Use a named provider from the config file")
	fs.String(keyFormat, string(display.FormatTerminal), "Output format: terminal|json")
	fs.Duration(keyTimeout, 0, "Per-request timeout (default from config)")
	fs.Int(keyMaxRetries, 0, "Read retries on network errors and 5xx (broadcast never retries)")
	fs.String(keyLogLevel, "", "Log level: debug|info|warn|error")
	fs.String(keyLogFormat, "", "Log format: text|json")
	fs.String(keyEnvFile, env.DefaultFile, "Dotenv file loaded before config")
}

// setup loads .env, config and logging once per invocation. It performs no
// network access. Commands call it after their arguments parse, so a parse
// error is reported ahead of a config problem.
func (a *app) setup() error {
	if a.cfg != nil {
		return nil
	}

	if _, err := env.Load(a.v.GetString(keyEnvFile)); err != nil {
		return err
	}

	cfg, err := config.Load(a.v.GetString(keyConfig))
	if err != nil {
		return err
	}

	o := config.Overrides{
		Network:   a.v.GetString(keyNetwork),
		Chain:     a.v.GetString(keyChain),
		Timeout:   a.v.GetDuration(keyTimeout),
		LogLevel:  a.v.GetString(keyLogLevel),
		LogFormat: a.v.GetString(keyLogFormat),
	}
	if a.v.IsSet(keyMaxRetries) {
		n := a.v.GetInt(keyMaxRetries)
		o.MaxRetries = &n
	}
	cfg.Apply(o)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	a.format, err = display.ParseFormat(a.v.GetString(keyFormat))
	if err != nil {
		return &usageError{err: err}
	}
	a.net, err = request.ChainParams(cfg.Chain)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	a.log, err = logger.New(cfg.Log, a.stderr)
	if err != nil {
		return err
	}
	for _, w := range cfg.Warnings() {
		a.log.Warn("config warning", "detail", w)
	}

	a.cfg = cfg
	return nil
}

// run dispatches op against the selected endpoint and renders the result.
func (a *app) run(ctx context.Context, op request.Operation) error {
	if err := a.setup(); err != nil {
		return err
	}

	endpoint, err := a.cfg.Endpoint(a.v.GetString(keyProvider))
	if err != nil {
		return &usageError{err: err}
	}
	a.log.Debug("endpoint selected", "provider", endpoint.Name, "url", endpoint.URL)

	svc := a.newService(a.cfg, endpoint, a.log)
	res, err := dispatch.New(svc, a.log).Dispatch(ctx, op)
	if err != nil {
		return err
	}

	return display.Render(a.stdout, res, display.Options{
		Format:   a.format,
		Provider: endpoint.Name,
		Net:      a.net,
	})
}
