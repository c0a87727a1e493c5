package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var lagos = time.FixedZone("WAT", 3600)

// Thursday 15 Oct 2026, mid-afternoon.
var now = time.Date(2026, time.October, 15, 14, 30, 0, 0, lagos)

func at(day, hour int) time.Time {
	return time.Date(2026, time.October, day, hour, 0, 0, 0, lagos)
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func assertDec(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), append([]interface{}{"want %s got %s", want, got.String()}, msgAndArgs...)...)
}

func order(orderType, mode string, total int64, ts time.Time, items ...LineItem) Order {
	return Order{OrderType: orderType, PaymentMode: mode, Total: dec(total), CreatedAt: ts, Items: items}
}

func line(name string, qty, price int64) LineItem {
	return LineItem{Name: name, Quantity: dec(qty), Price: dec(price)}
}

// ── Windows ──────────────────────────────────────────────────────────────────

func TestWeekStarts(t *testing.T) {
	assert.Equal(t, at(11, 0), StartOfWeekSunday(now))
	assert.Equal(t, at(12, 0), StartOfWeekMonday(now))

	sunday := at(11, 9)
	assert.Equal(t, at(11, 0), StartOfWeekSunday(sunday))
	assert.Equal(t, at(5, 0), StartOfWeekMonday(sunday), "sunday belongs to the previous business week")

	assert.Equal(t, at(1, 0), StartOfMonth(now))
}

func TestWindowContains_ZeroTimeNeverMatches(t *testing.T) {
	w := Window{From: time.Time{}, To: now}
	assert.False(t, w.Contains(time.Time{}))
}

// ── Revenue ──────────────────────────────────────────────────────────────────

func TestDailyTotals_YesterdayExcluded(t *testing.T) {
	orders := []Order{
		order("online", "cash", 100, at(15, 9)),
		order("instore", "cash", 50, at(14, 9)),
	}
	assertDec(t, "100", DailyOnlineTotal(orders, now))
	assertDec(t, "0", DailyShopTotal(orders, now))
}

func TestRevenue_ChannelsAndWeekConventions(t *testing.T) {
	orders := []Order{
		order("online", "cash", 1000, at(15, 9)),
		order("INSTORE", "card", 400, at(15, 10)),
		order("chowdeck", "transfer", 300, at(15, 11)),
		order("", "cash", 50, at(15, 12)),
		order("online", "cash", 700, at(11, 12)),  // Sunday
		order("instore", "cash", 200, at(12, 12)), // Monday
		order("online", "cash", 900, at(2, 12)),
		order("online", "cash", 5000, time.Time{}),
		order("online", "cash", 9000, time.Date(2026, time.September, 30, 12, 0, 0, 0, lagos)),
	}

	r := Revenue(orders, now)

	assertDec(t, "1000", r.Today.Online)
	assertDec(t, "400", r.Today.InStore)
	assertDec(t, "300", r.Today.Chowdeck)
	assertDec(t, "1750", r.Today.Total, "untyped order counts in total only")
	assert.Equal(t, 4, r.Today.Count)

	assertDec(t, "2650", r.CalendarWeek.Total)
	assert.Equal(t, 6, r.CalendarWeek.Count)
	assertDec(t, "1950", r.BusinessWeek.Total)
	assert.Equal(t, 5, r.BusinessWeek.Count)

	assertDec(t, "3550", r.Month.Total)
	assertDec(t, "2600", r.Month.Online)
}

// ── Payments ─────────────────────────────────────────────────────────────────

func TestPayments_SharesAndCumulativeSeries(t *testing.T) {
	orders := []Order{
		order("instore", "cash", 1000, at(15, 9)),
		order("online", "UPI", 500, at(15, 10)),
		order("online", "card", 500, at(15, 10)),
		order("online", "crypto", 800, at(15, 11)),
		order("instore", "cash", 400, at(14, 11)),
	}

	b := Payments(orders, now)
	require.Len(t, b.Modes, 3)
	assertDec(t, "2000", b.Combined)

	byMode := map[string]PaymentShare{}
	for _, m := range b.Modes {
		require.Len(t, m.Hourly, 24)
		byMode[m.Mode] = m
	}
	assertDec(t, "1000", byMode["cash"].Total)
	assertDec(t, "50", byMode["cash"].Percent)
	assertDec(t, "500", byMode["transfer"].Total, "upi is read as transfer")
	assertDec(t, "25", byMode["transfer"].Percent)
	assertDec(t, "25", byMode["card"].Percent)

	tr := byMode["transfer"].Hourly
	assertDec(t, "0", tr[9])
	assertDec(t, "500", tr[10])
	assertDec(t, "500", tr[23])

	require.Len(t, b.CombinedHourly, 24)
	assertDec(t, "1000", b.CombinedHourly[9])
	assertDec(t, "2000", b.CombinedHourly[23])
}

func TestPayments_SeriesNeverDecreases(t *testing.T) {
	orders := []Order{
		order("instore", "cash", 1000, at(15, 8)),
		order("instore", "cash", -300, at(15, 9)),
		order("instore", "cash", 200, at(15, 10)),
	}
	b := Payments(orders, now)
	for i := 1; i < 24; i++ {
		assert.False(t, b.CombinedHourly[i].LessThan(b.CombinedHourly[i-1]), "hour %d", i)
	}
	assertDec(t, "900", b.Combined)
}

func TestPayments_NoOrdersGivesZeroPercent(t *testing.T) {
	b := Payments(nil, now)
	for _, m := range b.Modes {
		assertDec(t, "0", m.Percent)
	}
}

// ── Top products ─────────────────────────────────────────────────────────────

func TestChangePct(t *testing.T) {
	assertDec(t, "100", ChangePct(dec(5), dec(0)))
	assertDec(t, "0", ChangePct(dec(0), dec(0)))
	assertDec(t, "100", ChangePct(dec(10), dec(5)))
	assertDec(t, "-50", ChangePct(dec(5), dec(10)))
	assertDec(t, "33.33", ChangePct(dec(4), dec(3)))
}

func TestTopProducts_TieBrokenByName(t *testing.T) {
	orders := []Order{
		order("instore", "cash", 0, at(15, 9), line("Rice", 3, 1000), line("Beans", 3, 800)),
		order("instore", "cash", 0, at(15, 10), line("Zobo", 5, 300)),
	}
	top := TopProducts(orders, now, Options{})
	require.Len(t, top, 3)
	assert.Equal(t, "Zobo", top[0].Name)
	assert.Equal(t, "Beans", top[1].Name)
	assert.Equal(t, "Rice", top[2].Name)
}

func TestTopProducts_MergesNamesAndSkipsPackaging(t *testing.T) {
	orders := []Order{
		order("instore", "cash", 0, at(15, 9), line("Rice ", 2, 1000), line("Pack", 3, 200)),
		order("online", "cash", 0, at(15, 10), line("rice", 1, 1000), line("Takeaway bag", 1, 100)),
		order("online", "cash", 0, at(14, 10), line("RICE", 6, 1000)),
	}
	top := TopProducts(orders, now, Options{Metric: MetricQuantity, Baseline: BaselineYesterday})
	require.Len(t, top, 1)
	assert.Equal(t, "Rice", top[0].Name)
	assertDec(t, "3", top[0].Today)
	assertDec(t, "6", top[0].Baseline)
	assertDec(t, "-50", top[0].ChangePct)
}

func TestTopProducts_KeepsMenuItemsNamedAfterPackaging(t *testing.T) {
	orders := []Order{
		order("online", "cash", 0, at(15, 9),
			line("Takeaway Jollof", 2, 1500),
			line("Bag of Chin Chin", 1, 800),
			LineItem{Name: "Eco box", Category: "packaging", Quantity: decimal.NewFromInt(2), Price: decimal.NewFromInt(200)},
			line("Take away", 1, 100),
		),
	}
	top := TopProducts(orders, now, Options{Metric: MetricQuantity})
	require.Len(t, top, 2)
	assert.Equal(t, "Takeaway Jollof", top[0].Name)
	assert.Equal(t, "Bag of Chin Chin", top[1].Name)
}

func TestTopProducts_RevenueAgainstSevenDayAverage(t *testing.T) {
	orders := []Order{
		order("instore", "cash", 0, at(15, 9), line("Chicken", 2, 1500)),
		order("instore", "cash", 0, at(9, 9), line("Chicken", 7, 1000)),
		order("instore", "cash", 0, at(7, 9), line("Chicken", 50, 1000)), // outside the 7 days
		order("instore", "cash", 0, at(12, 9), line("Fish", 1, 700)),
	}
	top := TopProducts(orders, now, Options{Metric: MetricRevenue, Baseline: BaselineLastSevenDays})
	require.Len(t, top, 2)

	assert.Equal(t, "Chicken", top[0].Name)
	assertDec(t, "3000", top[0].Today)
	assertDec(t, "1000", top[0].Baseline)
	assertDec(t, "200", top[0].ChangePct)

	assert.Equal(t, "Fish", top[1].Name, "baseline-only items still rank, at zero")
	assertDec(t, "0", top[1].Today)
	assertDec(t, "100", top[1].Baseline)
	assertDec(t, "-100", top[1].ChangePct)
}

func TestTopProducts_Limit(t *testing.T) {
	var items []LineItem
	for _, n := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"} {
		items = append(items, line(n, 1, 1))
	}
	orders := []Order{order("instore", "cash", 0, at(15, 9), items...)}

	assert.Len(t, TopProducts(orders, now, Options{}), DefaultTopLimit)
	assert.Len(t, TopProducts(orders, now, Options{Limit: 3}), 3)
}

func TestParseOptions(t *testing.T) {
	m, ok := ParseMetric("")
	assert.True(t, ok)
	assert.Equal(t, MetricQuantity, m)
	_, ok = ParseMetric("profit")
	assert.False(t, ok)

	b, ok := ParseBaseline("LAST7DAYS")
	assert.True(t, ok)
	assert.Equal(t, BaselineLastSevenDays, b)

	g, ok := ParseGranularity("weekly")
	assert.True(t, ok)
	assert.Equal(t, Weekly, g)
	_, ok = ParseGranularity("hourly")
	assert.False(t, ok)
}

// ── Series ───────────────────────────────────────────────────────────────────

func TestDailySeries_ZeroFilledAndChowdeckInTotalOnly(t *testing.T) {
	orders := []Order{
		order("online", "cash", 100, at(15, 9)),
		order("chowdeck", "transfer", 300, at(15, 10)),
		order("instore", "cash", 50, at(13, 9)),
		order("instore", "cash", 999, time.Time{}),
		order("instore", "cash", 777, at(1, 9)), // 15 days back
	}
	s := DailySeries(orders, now, DailyBuckets)
	require.Len(t, s, 14)
	assert.Equal(t, "2026-10-02", s[0].Key)
	assert.Equal(t, "2026-10-15", s[13].Key)

	assertDec(t, "100", s[13].Online)
	assertDec(t, "0", s[13].InStore)
	assertDec(t, "400", s[13].Total)

	assertDec(t, "50", s[11].InStore)
	assertDec(t, "0", s[12].Total)

	var sum decimal.Decimal
	for _, p := range s {
		sum = sum.Add(p.Total)
	}
	assertDec(t, "450", sum)
}

func TestWeeklyAndMonthlySeries_Keys(t *testing.T) {
	orders := []Order{
		order("online", "cash", 100, at(11, 9)), // Sunday, previous business week
		order("online", "cash", 200, at(12, 9)), // Monday
		order("online", "cash", 400, time.Date(2025, time.November, 3, 9, 0, 0, 0, lagos)),
	}

	w := WeeklySeries(orders, now, WeeklyBuckets)
	require.Len(t, w, 12)
	assert.Equal(t, "2026-10-12", w[11].Key)
	assert.Equal(t, "2026-10-05", w[10].Key)
	assertDec(t, "200", w[11].Total)
	assertDec(t, "100", w[10].Total)

	m := MonthlySeries(orders, now, MonthlyBuckets)
	require.Len(t, m, 12)
	assert.Equal(t, "2025-11", m[0].Key)
	assert.Equal(t, "2026-10", m[11].Key)
	assertDec(t, "400", m[0].Online)
	assertDec(t, "300", m[11].Total)

	assert.Len(t, Series(orders, now, Monthly), MonthlyBuckets)
}

func TestBuildDashboard(t *testing.T) {
	orders := []Order{order("online", "cash", 100, at(15, 9), line("Rice", 1, 100))}
	d := BuildDashboard(orders, now, Options{})
	assert.Equal(t, 1, d.OrderCount)
	assertDec(t, "100", d.Revenue.Today.Online)
	assert.Len(t, d.TopProducts, 1)
	assert.Len(t, d.Daily, DailyBuckets)
	assert.Len(t, d.Weekly, WeeklyBuckets)
	assert.Len(t, d.Monthly, MonthlyBuckets)
}
