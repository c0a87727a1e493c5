package analytics

import (
	"time"

	"chopengine/internal/model"

	"github.com/shopspring/decimal"
)

// ChannelTotals splits revenue by orderType. Orders with an unknown or
// missing type are only counted in Total and Count.
type ChannelTotals struct {
	Online   decimal.Decimal `json:"online"`
	InStore  decimal.Decimal `json:"instore"`
	Chowdeck decimal.Decimal `json:"chowdeck"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"count"`
}

func (c *ChannelTotals) add(o Order) {
	switch o.channel() {
	case model.ChannelOnline:
		c.Online = c.Online.Add(o.Total)
	case model.ChannelInStore:
		c.InStore = c.InStore.Add(o.Total)
	case model.ChannelChowdeck:
		c.Chowdeck = c.Chowdeck.Add(o.Total)
	}
	c.Total = c.Total.Add(o.Total)
	c.Count++
}

// RevenueRollup answers the banner questions. CalendarWeek starts on Sunday
// and BusinessWeek on Monday; the two are reported separately on purpose.
type RevenueRollup struct {
	Today        ChannelTotals `json:"today"`
	CalendarWeek ChannelTotals `json:"calendarWeek"`
	BusinessWeek ChannelTotals `json:"businessWeek"`
	Month        ChannelTotals `json:"month"`
}

func Revenue(orders []Order, now time.Time) RevenueRollup {
	today, cal, biz, month := Today(now), CalendarWeek(now), BusinessWeek(now), Month(now)
	var r RevenueRollup
	for _, o := range orders {
		ts := o.CreatedAt
		if today.Contains(ts) {
			r.Today.add(o)
		}
		if cal.Contains(ts) {
			r.CalendarWeek.add(o)
		}
		if biz.Contains(ts) {
			r.BusinessWeek.add(o)
		}
		if month.Contains(ts) {
			r.Month.add(o)
		}
	}
	return r
}

// WindowTotals sums orders inside w by channel.
func WindowTotals(orders []Order, w Window) ChannelTotals {
	var c ChannelTotals
	for _, o := range orders {
		if w.Contains(o.CreatedAt) {
			c.add(o)
		}
	}
	return c
}

// DailyOnlineTotal is today's online revenue.
func DailyOnlineTotal(orders []Order, now time.Time) decimal.Decimal {
	return WindowTotals(orders, Today(now)).Online
}

// DailyShopTotal is today's in-store revenue.
func DailyShopTotal(orders []Order, now time.Time) decimal.Decimal {
	return WindowTotals(orders, Today(now)).InStore
}
