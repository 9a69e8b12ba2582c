package units

import (
	"fmt"
	"regexp"
	"strconv"
)

var celsiusPattern = regexp.MustCompile(`(?i)(\d+)\s*[°℃]C`)

// LocalizeInstructions rewrites Celsius temperatures as Fahrenheit for
// English. Other locales get the input back untouched.
func LocalizeInstructions(lines []string, loc Locale) []string {
	if loc != English {
		return lines
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = celsiusPattern.ReplaceAllStringFunc(line, func(m string) string {
			digits := celsiusPattern.FindStringSubmatch(m)[1]
			c, err := strconv.ParseFloat(digits, 64)
			if err != nil {
				return m
			}
			return formatNumber(round(CelsiusToFahrenheit(c))) + "°F"
		})
	}
	return out
}

// FormatCookingTime renders a duration in minutes.
func FormatCookingTime(minutes int, loc Locale) string {
	if minutes < 60 {
		switch loc {
		case Chinese:
			return fmt.Sprintf("%d 分钟", minutes)
		case German:
			return fmt.Sprintf("%d Minuten", minutes)
		default:
			return fmt.Sprintf("%d min", minutes)
		}
	}

	hours, rest := minutes/60, minutes%60
	switch loc {
	case Chinese:
		if rest > 0 {
			return fmt.Sprintf("%d 小时 %d 分钟", hours, rest)
		}
		return fmt.Sprintf("%d 小时", hours)
	case German:
		if rest > 0 {
			return fmt.Sprintf("%d Std. %d Min.", hours, rest)
		}
		return fmt.Sprintf("%d Stunde(n)", hours)
	default:
		if rest > 0 {
			return fmt.Sprintf("%dh %dmin", hours, rest)
		}
		return fmt.Sprintf("%dh", hours)
	}
}
