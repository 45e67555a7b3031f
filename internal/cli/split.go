package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"splitpay/internal/app"
	"splitpay/internal/services/paynow"
	"splitpay/internal/services/split"

	"github.com/spf13/cobra"
)

// splitFile is the input document: the same shape the HTTP endpoint takes.
type splitFile struct {
	Bill   split.Bill         `json:"bill"`
	People []split.Assignment `json:"people"`
}

type splitShare struct {
	split.Share
	Payload string `json:"payload,omitempty"`
}

func newSplitCmd(opts *options) *cobra.Command {
	var (
		format   string
		payloads bool
	)
	cmd := &cobra.Command{
		Use:   "split <bill.json>",
		Short: "Apportion a bill between diners",
		Long: `split reads {"bill": {...}, "people": [...]} and prints what each diner
owes, with tax and service charge shared in proportion to item prices.
With --payloads each share also gets a PayNow payload for the configured
recipient.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := readSplitFile(args[0])
			if err != nil {
				return err
			}
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			log, err := newLogger(cmd, cfg)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			res, err := split.NewService(log).Split(ctx, in.Bill, in.People)
			if err != nil {
				return err
			}

			shares := make([]splitShare, len(res.Shares))
			var recipientPhone, recipientName string
			var svc paynow.Service
			if payloads {
				renderer, err := app.NewRenderer(cfg.PayNow)
				if err != nil {
					return err
				}
				svc = paynow.NewService(app.ServiceConfig(cfg.PayNow), renderer, nil, nil, nil, log)
			}
			for i, share := range res.Shares {
				shares[i] = splitShare{Share: share}
				if svc == nil {
					continue
				}
				pay, err := svc.GeneratePayload(ctx, paynow.GenerateRequest{
					Amount:     share.Total,
					Reference:  share.Reference,
					PersonName: fmt.Sprintf("Person %d", share.PersonID),
				})
				if err != nil {
					return err
				}
				shares[i].Payload = pay.Payload
				recipientPhone, recipientName = pay.PayTo, pay.Request.RecipientName
			}

			out := cmd.OutOrStdout()
			switch format {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(struct {
					ID         string             `json:"id"`
					Restaurant string             `json:"restaurant"`
					Charges    []split.ItemCharge `json:"charges"`
					Shares     []splitShare       `json:"shares"`
				}{res.ID, res.Restaurant, res.Charges, shares})
			case "text":
				writeSplitText(out, res, shares, recipientPhone, recipientName)
				return nil
			default:
				return fmt.Errorf("unknown format %q", format)
			}
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&payloads, "payloads", false, "Generate a PayNow payload for every share")
	return cmd
}

func readSplitFile(path string) (*splitFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bill: %w", err)
	}
	var in splitFile
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("invalid bill %s: %w", path, err)
	}
	return &in, nil
}

func writeSplitText(w io.Writer, res *split.Result, shares []splitShare, phone, name string) {
	fmt.Fprintf(w, "%s\n\n", res.Restaurant)
	for _, c := range res.Charges {
		fmt.Fprintf(w, "%2d. %-30s %8s\n", c.Index, c.Name, c.Total.StringFixed(2))
	}
	for _, s := range shares {
		fmt.Fprintln(w)
		if s.Payload == "" {
			fmt.Fprintf(w, "Person %d owes $%s (%s)\n", s.PersonID, s.Total.StringFixed(2), s.Reference)
			continue
		}
		fmt.Fprintln(w, split.FormatPaymentMessage(s.Share, phone, name, res.Restaurant))
		fmt.Fprintln(w, s.Payload)
	}
}
