package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newEncodeCmd(opts *options) *cobra.Command {
	flags := &requestFlags{}
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Print a PayNow payload string",
		Example: `  paynow encode --amount 118 --reference "Test split"
  paynow encode --type uen --id 201403121W --name "ACME PTE LTD" --amount 12.50`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			log, err := newLogger(cmd, cfg)
			if err != nil {
				return err
			}
			svc, err := flags.newPayNowService(cmd, cfg, log)
			if err != nil {
				return err
			}
			req, err := flags.request(cfg)
			if err != nil {
				return err
			}

			res, err := svc.GeneratePayload(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Payload)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}
