package split

import (
	"fmt"
	"strconv"

	appErrors "splitpay/internal/errors"
	"splitpay/internal/utils/validation"

	"github.com/shopspring/decimal"
)

// round2 rounds half away from zero to cents.
func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Apportion spreads the bill's tax and service charge over its items in
// proportion to price. A zero subtotal charges nothing extra.
func Apportion(bill Bill) []ItemCharge {
	charges := make([]ItemCharge, len(bill.Items))
	for i, item := range bill.Items {
		tax, service := decimal.Zero, decimal.Zero
		if !bill.Subtotal.IsZero() {
			tax = round2(item.Price.Mul(bill.Tax).Div(bill.Subtotal))
			service = round2(item.Price.Mul(bill.ServiceCharge).Div(bill.Subtotal))
		}
		charges[i] = ItemCharge{
			Index:         i + 1,
			Name:          item.Name,
			Price:         item.Price,
			Tax:           tax,
			ServiceCharge: service,
			Total:         round2(item.Price.Add(tax).Add(service)),
		}
	}
	return charges
}

// EvenShare is the ratio for an item shared evenly among n diners. It is
// zero for n below one.
func EvenShare(n int) decimal.Decimal {
	if n <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(1).Div(decimal.NewFromInt(int64(n)))
}

// shareOf prices one diner's items at their share ratio. The total is
// rounded to cents once, after summing.
func shareOf(charges []ItemCharge, p Assignment) (Share, error) {
	lines, err := personLines(charges, p)
	if err != nil {
		return Share{}, err
	}
	return Share{
		PersonID: p.PersonID,
		Position: p.Position,
		Lines:    lines,
		Total:    sumLines(lines),
	}, nil
}

func personLines(charges []ItemCharge, p Assignment) ([]Line, error) {
	v := validation.New()
	lines := make([]Line, 0, len(p.Items))
	for _, idx := range p.Items {
		field := fmt.Sprintf("people[%d].items", p.PersonID)
		if idx < 1 || idx > len(charges) {
			v.AddError(field, fmt.Sprintf("item %d does not exist", idx))
			continue
		}
		if n, ok := p.SharedWith[strconv.Itoa(idx)]; ok && n < 1 {
			v.AddError(field, fmt.Sprintf("item %d must be shared by at least one diner", idx))
			continue
		}
		ratio := p.Ratio(idx)
		if ratio.IsNegative() {
			v.AddError(field, fmt.Sprintf("item %d has a negative share ratio", idx))
			continue
		}
		c := charges[idx-1]
		lines = append(lines, Line{
			Name:   c.Name,
			Ratio:  ratio,
			Amount: c.Total.Mul(ratio),
		})
	}
	if err := v.Err(); err != nil {
		return nil, appErrors.Wrap(appErrors.ErrValidation, err)
	}
	return lines, nil
}

func sumLines(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Amount)
	}
	return round2(total)
}
