package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"splitpay/internal/app"
	"splitpay/internal/repositories"

	"github.com/spf13/cobra"
)

func newRecipientsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recipients",
		Short: "Manage stored PayNow recipients",
	}
	cmd.AddCommand(newRecipientsImportCmd(opts))
	cmd.AddCommand(newRecipientsListCmd(opts))
	return cmd
}

func newRecipientsImportCmd(opts *options) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "import <paynow_info.json>",
		Short: "Copy recipients from a JSON file into PostgreSQL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := repositories.NewRecipientFileStore(args[0])
			if err != nil {
				return err
			}
			if dryRun {
				all, err := src.List(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d recipients would be imported\n", len(all))
				return nil
			}

			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			log, err := newLogger(cmd, cfg)
			if err != nil {
				return err
			}
			db, err := repositories.OpenDB(cfg.Database, log)
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}

			n, err := importRecipients(cmd.Context(), src, repositories.NewRecipientRepository(db, nil, log))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d recipients\n", n)
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Only count the recipients in the file")
	return cmd
}

// importRecipients saves every recipient in src into dst, overwriting
// existing entries for the same user.
func importRecipients(ctx context.Context, src, dst repositories.RecipientRepository) (int, error) {
	all, err := src.List(ctx)
	if err != nil {
		return 0, err
	}
	for i, r := range all {
		if err := dst.Save(ctx, r); err != nil {
			return i, fmt.Errorf("failed to import recipient %s: %w", r.UserID, err)
		}
	}
	return len(all), nil
}

func newRecipientsListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recipients in the configured store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			log, err := newLogger(cmd, cfg)
			if err != nil {
				return err
			}
			a, err := app.New(cfg, log)
			if err != nil {
				return err
			}
			defer a.Close()

			all, err := a.Recipients.List(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "USER\tPHONE\tNAME")
			for _, r := range all {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", r.UserID, r.Phone, r.Name)
			}
			return tw.Flush()
		},
	}
}
