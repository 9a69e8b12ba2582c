// Package units converts canonical metric quantities (grams, milliliters,
// Celsius, centimeters, cents) into locale-specific display strings and
// parses user input back into canonical units.
package units

import (
	"strings"

	"golang.org/x/text/language"
)

// Locale is one of the supported display languages.
type Locale string

const (
	English Locale = "en"
	Chinese Locale = "zh"
	German  Locale = "de"

	DefaultLocale = English
)

// UnitSystem selects US customary or metric units.
type UnitSystem string

const (
	US     UnitSystem = "us"
	Metric UnitSystem = "metric"
)

// SupportedLocales lists every locale in display order.
var SupportedLocales = []Locale{English, Chinese, German}

// ParseLocale normalizes values such as "de-DE", "zh_CN" or "EN". Unknown
// values resolve to DefaultLocale.
func ParseLocale(s string) Locale {
	s = strings.ToLower(strings.TrimSpace(s))
	if i := strings.IndexAny(s, "-_"); i >= 0 {
		s = s[:i]
	}
	switch Locale(s) {
	case English, Chinese, German:
		return Locale(s)
	}
	return DefaultLocale
}

// IsSupported reports whether s names a supported locale without falling back.
func IsSupported(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	if i := strings.IndexAny(s, "-_"); i >= 0 {
		s = s[:i]
	}
	for _, l := range SupportedLocales {
		if string(l) == s {
			return true
		}
	}
	return false
}

// System returns the unit system used for the locale.
func (l Locale) System() UnitSystem {
	if l == English {
		return US
	}
	return Metric
}

// Tag returns the regional language tag used for number and currency formatting.
func (l Locale) Tag() language.Tag {
	switch l {
	case Chinese:
		return language.MustParse("zh-CN")
	case German:
		return language.MustParse("de-DE")
	default:
		return language.AmericanEnglish
	}
}

type labelSet struct {
	weightSmall, weightLarge string
	volumeSmall, volumeLarge string
	temperature              string
	length                   string
}

var labels = map[Locale]labelSet{
	English: {"oz", "lb", "fl oz", "cup", "°F", "in"},
	Chinese: {"克", "千克", "毫升", "毫升", "°C", "厘米"},
	German:  {"g", "kg", "ml", "ml", "°C", "cm"},
}

func labelsFor(l Locale) labelSet {
	if ls, ok := labels[l]; ok {
		return ls
	}
	return labels[DefaultLocale]
}
