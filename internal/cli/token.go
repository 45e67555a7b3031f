package cli

import (
	"fmt"
	"time"

	"splitpay/internal/utils"

	"github.com/spf13/cobra"
)

func newTokenCmd(opts *options) *cobra.Command {
	var (
		userID string
		role   string
		ttl    time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Sign an API access token for the recipient endpoints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			tok, err := utils.GenerateToken(cfg.JWT.Secret, cfg.JWT.Issuer, userID, role, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "User id the token is issued to")
	cmd.Flags().StringVar(&role, "role", "user", "Role: admin, user or viewer")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
