package split

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatPaymentMessage renders the text sent to a diner beside their QR code.
func FormatPaymentMessage(share Share, recipientPhone, recipientName, restaurant string) string {
	var b strings.Builder
	b.WriteString("💰 *Your Bill Split*\n\n")
	if restaurant != "" {
		fmt.Fprintf(&b, "📍 %s\n\n", restaurant)
	}

	b.WriteString("*Your items:*\n")
	one := decimal.NewFromInt(1)
	for _, l := range share.Lines {
		if l.Ratio.LessThan(one) {
			pct := l.Ratio.Mul(decimal.NewFromInt(100)).Round(0)
			fmt.Fprintf(&b, "• %s (%s%% share) - $%s\n", l.Name, pct.String(), l.Amount.StringFixed(2))
		} else {
			fmt.Fprintf(&b, "• %s - $%s\n", l.Name, l.Amount.StringFixed(2))
		}
	}

	fmt.Fprintf(&b, "\n*Total Amount: $%s*\n", share.Total.StringFixed(2))
	b.WriteString("\n*Pay to:*\n")
	fmt.Fprintf(&b, "📱 %s\n", recipientPhone)
	fmt.Fprintf(&b, "👤 %s\n", recipientName)
	b.WriteString("\nPlease scan the QR code below to pay via PayNow:")
	return b.String()
}
