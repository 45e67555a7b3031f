package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"splitpay/internal/services/paynow"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newDecodeCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "decode <payload|->",
		Short: "Verify a PayNow payload and print its fields",
		Long: `decode checks the CRC of a scanned PayNow payload and prints the recipient,
amount and reference it encodes. Pass - to read the payload from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := args[0]
			if raw == "-" {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}
				raw = string(data)
			}

			p, err := paynow.Decode(strings.TrimSpace(raw))
			if err != nil {
				return err
			}
			summary, err := p.Summary()
			if err != nil {
				return err
			}
			return writeSummary(cmd.OutOrStdout(), summary, format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, json or yaml")
	return cmd
}

func writeSummary(w io.Writer, s *paynow.Summary, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return err
		}
		return enc.Close()
	case "text":
		editable := "fixed"
		if s.AmountEditable {
			editable = "editable"
		}
		fmt.Fprintf(w, "Checksum:   %s (valid)\n", s.Checksum)
		fmt.Fprintf(w, "Recipient:  %s %s\n", s.RecipientType, s.RecipientID)
		fmt.Fprintf(w, "Name:       %s\n", s.RecipientName)
		fmt.Fprintf(w, "Amount:     SGD %s (%s)\n", s.Amount, editable)
		fmt.Fprintf(w, "Reference:  %s\n", s.Reference)
		fmt.Fprintf(w, "Expires:    %s\n", s.ExpiryDate)
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
