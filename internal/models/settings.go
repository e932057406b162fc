package models

import "time"

type Language string

const (
	LanguageEN Language = "en"
	LanguageKO Language = "ko"
)

func (l Language) Valid() bool {
	return l == LanguageEN || l == LanguageKO
}

type Currency string

const (
	CurrencyKRW Currency = "KRW"
	CurrencyUSD Currency = "USD"
	CurrencyAUD Currency = "AUD"
)

func (c Currency) Valid() bool {
	return c == CurrencyKRW || c == CurrencyUSD || c == CurrencyAUD
}

// DateFormat is one of the four fixed display patterns, stored in the
// date-fns notation the profile record uses.
type DateFormat string

const (
	DateFormatISO    DateFormat = "yyyy-MM-dd"
	DateFormatEU     DateFormat = "dd/MM/yyyy"
	DateFormatUS     DateFormat = "MM/dd/yyyy"
	DateFormatKorean DateFormat = "yyyy. MM. dd."
)

func (d DateFormat) Valid() bool {
	switch d {
	case DateFormatISO, DateFormatEU, DateFormatUS, DateFormatKorean:
		return true
	}
	return false
}

// layout returns the Go reference-time layout for the pattern.
func (d DateFormat) layout() string {
	switch d {
	case DateFormatEU:
		return "02/01/2006"
	case DateFormatUS:
		return "01/02/2006"
	case DateFormatKorean:
		return "2006. 01. 02."
	default:
		return "2006-01-02"
	}
}

// Format renders t in the display pattern.
func (d DateFormat) Format(t time.Time) string {
	return t.Format(d.layout())
}

// Settings is the per-user preference triple. Single instance per user,
// last-write-wins, no history.
type Settings struct {
	Language   Language
	DateFormat DateFormat
	Currency   Currency
}

// DefaultSettings are used before any cached or remote value is known.
func DefaultSettings() Settings {
	return Settings{
		Language:   LanguageKO,
		DateFormat: DateFormatISO,
		Currency:   CurrencyKRW,
	}
}
