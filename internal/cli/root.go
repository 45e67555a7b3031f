// Package cli implements the paynow command-line tool.
package cli

import (
	"fmt"
	"os"

	"splitpay/internal/config"
	"splitpay/internal/logger"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// options holds the flags shared by every subcommand.
type options struct {
	configPath string
	logLevel   string
}

// NewRootCmd builds the command tree.
func NewRootCmd(version string) *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "paynow",
		Short: "Generate, verify and split PayNow QR payments",
		Long: `paynow builds Singapore PayNow QR payloads, renders them as PNG images,
verifies scanned payloads and apportions restaurant bills between diners.

Configuration comes from the YAML file given by --config (or SPLITPAY_CONFIG)
and the environment, e.g. PAYNOW_RECIPIENT_PHONE and PAYNOW_RECIPIENT_NAME.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "YAML configuration file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Override the configured log level")

	root.AddCommand(newEncodeCmd(opts))
	root.AddCommand(newDecodeCmd())
	root.AddCommand(newRenderCmd(opts))
	root.AddCommand(newSplitCmd(opts))
	root.AddCommand(newRecipientsCmd(opts))
	root.AddCommand(newTokenCmd(opts))
	return root
}

// Execute runs the root command
func Execute(version string) error {
	if err := NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func (o *options) loadConfig() (*config.Config, error) {
	config.LoadEnv()
	path := o.configPath
	if path == "" {
		path = os.Getenv("SPLITPAY_CONFIG")
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	return cfg, nil
}

// newLogger writes to the command's stderr so stdout stays clean for
// payloads and machine-readable output.
func newLogger(cmd *cobra.Command, cfg *config.Config) (*logrus.Logger, error) {
	log, err := logger.NewWithOutput(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	return log, nil
}
