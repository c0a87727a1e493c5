package analytics

import "time"

// Window is the half-open interval [From, To).
type Window struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Contains is false for the zero time, so unparsed timestamps never match.
func (w Window) Contains(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	return !t.Before(w.From) && t.Before(w.To)
}

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// StartOfWeekSunday is the start of the calendar week containing t.
func StartOfWeekSunday(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, -int(t.Weekday()))
}

// StartOfWeekMonday is the start of the business week containing t.
func StartOfWeekMonday(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return StartOfDay(t).AddDate(0, 0, -offset)
}

func StartOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

func Today(now time.Time) Window {
	from := StartOfDay(now)
	return Window{From: from, To: from.AddDate(0, 0, 1)}
}

func Yesterday(now time.Time) Window {
	to := StartOfDay(now)
	return Window{From: to.AddDate(0, 0, -1), To: to}
}

// LastSevenDays is the seven full days before today.
func LastSevenDays(now time.Time) Window {
	to := StartOfDay(now)
	return Window{From: to.AddDate(0, 0, -7), To: to}
}

func CalendarWeek(now time.Time) Window {
	from := StartOfWeekSunday(now)
	return Window{From: from, To: from.AddDate(0, 0, 7)}
}

func BusinessWeek(now time.Time) Window {
	from := StartOfWeekMonday(now)
	return Window{From: from, To: from.AddDate(0, 0, 7)}
}

func Month(now time.Time) Window {
	from := StartOfMonth(now)
	return Window{From: from, To: from.AddDate(0, 1, 0)}
}
