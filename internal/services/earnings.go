package services

import (
	"github.com/shopspring/decimal"

	"eventhub/models"
)

// The organizer keeps 80% of an accepted order's price. The displayed
// breakdown uses its own 15% + 5% + 10% = 30% split on top of that figure.
// The two formulas are intentionally independent and are not reconciled
// with each other; both are reproduced exactly as the product defines them.
var (
	sellerShare   = decimal.NewFromFloat(0.80)
	gstRate       = decimal.NewFromFloat(0.15)
	platformRate  = decimal.NewFromFloat(0.05)
	deductionRate = decimal.NewFromFloat(0.10)
	netRate       = decimal.NewFromFloat(0.70)
)

// ComputeEarnings folds the accepted subset of orders into the organizer's
// earnings figure: sum of price x 0.8 per accepted order. Pure and
// deterministic over the given set.
func ComputeEarnings(orders []models.Order) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		if o.Status != models.OrderAccepted {
			continue
		}
		price := decimal.NewFromFloat(o.EventPrice)
		total = total.Add(price.Mul(sellerShare))
	}
	return total
}

// EarningsBreakdown is the display table derived from the earnings figure.
type EarningsBreakdown struct {
	GST         decimal.Decimal `json:"gst"`
	PlatformFee decimal.Decimal `json:"platform_fee"`
	Deductions  decimal.Decimal `json:"deductions"`
	Net         decimal.Decimal `json:"net"`
	Total       decimal.Decimal `json:"total"`
}

// ComputeBreakdown derives the fixed breakdown rows from earnings.
func ComputeBreakdown(earnings decimal.Decimal) EarningsBreakdown {
	return EarningsBreakdown{
		GST:         earnings.Mul(gstRate),
		PlatformFee: earnings.Mul(platformRate),
		Deductions:  earnings.Mul(deductionRate),
		Net:         earnings.Mul(netRate),
		Total:       earnings,
	}
}

// Rows flattens the breakdown into the (label, amount) pairs the report
// renders, in display order.
func (b EarningsBreakdown) Rows() [][2]string {
	return [][2]string{
		{"Total GST (15%)", b.GST.StringFixed(2)},
		{"Total Platform Fee (5%)", b.PlatformFee.StringFixed(2)},
		{"Total Deductions", b.Deductions.StringFixed(2)},
		{"Net Earnings", b.Net.StringFixed(2)},
		{"Total Earnings", b.Total.StringFixed(2)},
	}
}
