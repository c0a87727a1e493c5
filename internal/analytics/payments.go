package analytics

import (
	"time"

	"chopengine/internal/model"

	"github.com/shopspring/decimal"
)

const hoursPerDay = 24

// PaymentShare is one payment mode's slice of today's takings.
type PaymentShare struct {
	Mode    string            `json:"mode"`
	Total   decimal.Decimal   `json:"total"`
	Percent decimal.Decimal   `json:"percent"`
	Hourly  []decimal.Decimal `json:"hourly"`
}

type PaymentBreakdown struct {
	Modes          []PaymentShare    `json:"modes"`
	Combined       decimal.Decimal   `json:"combined"`
	CombinedHourly []decimal.Decimal `json:"combinedHourly"`
}

// Payments splits today's orders by normalized payment mode. Orders with an
// unrecognised mode are left out. Hourly series are cumulative across the day
// and never decrease; negative order totals contribute 0 to them.
func Payments(orders []Order, now time.Time) PaymentBreakdown {
	today := Today(now)
	loc := now.Location()

	totals := make(map[string]decimal.Decimal, len(model.PaymentModes))
	perHour := make(map[string]*[hoursPerDay]decimal.Decimal, len(model.PaymentModes))
	for _, m := range model.PaymentModes {
		perHour[m] = &[hoursPerDay]decimal.Decimal{}
	}
	var combinedPerHour [hoursPerDay]decimal.Decimal

	for _, o := range orders {
		if !today.Contains(o.CreatedAt) {
			continue
		}
		mode, ok := model.NormalizePaymentMode(o.PaymentMode)
		if !ok {
			continue
		}
		totals[mode] = totals[mode].Add(o.Total)

		h := o.CreatedAt.In(loc).Hour()
		v := o.Total
		if v.IsNegative() {
			v = decimal.Zero
		}
		perHour[mode][h] = perHour[mode][h].Add(v)
		combinedPerHour[h] = combinedPerHour[h].Add(v)
	}

	var b PaymentBreakdown
	for _, m := range model.PaymentModes {
		b.Combined = b.Combined.Add(totals[m])
	}
	for _, m := range model.PaymentModes {
		b.Modes = append(b.Modes, PaymentShare{
			Mode:    m,
			Total:   totals[m],
			Percent: percentOf(totals[m], b.Combined),
			Hourly:  cumulative(perHour[m][:]),
		})
	}
	b.CombinedHourly = cumulative(combinedPerHour[:])
	return b
}

func cumulative(in []decimal.Decimal) []decimal.Decimal {
	out := make([]decimal.Decimal, len(in))
	running := decimal.Zero
	for i, v := range in {
		running = running.Add(v)
		out[i] = running
	}
	return out
}
