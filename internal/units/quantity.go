package units

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var quantityPattern = regexp.MustCompile(`^\s*(-?\d+(?:[.,]\d+)?)\s*(.*?)\s*$`)

// SplitQuantity splits a display string such as "1.5 lb" or "392°F" into
// its number and unit token. A decimal comma is accepted.
func SplitQuantity(s string) (float64, string, error) {
	m := quantityPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, "", fmt.Errorf("invalid quantity %q", s)
	}
	v, err := strconv.ParseFloat(strings.Replace(m[1], ",", ".", 1), 64)
	if err != nil {
		return 0, "", fmt.Errorf("invalid quantity %q: %w", s, err)
	}
	return v, m[2], nil
}

// Kind selects which canonical unit a quantity is parsed into.
type Kind string

const (
	KindWeight      Kind = "weight"
	KindVolume      Kind = "volume"
	KindTemperature Kind = "temperature"
	KindLength      Kind = "length"
)

// ParseQuantity converts a display string of the given kind to its canonical
// unit. With strict set, unknown unit tokens return an error wrapping
// ErrUnrecognizedUnit.
func ParseQuantity(s string, kind Kind, strict bool) (float64, error) {
	v, unit, err := SplitQuantity(s)
	if err != nil {
		return 0, err
	}
	var parse func(float64, string) (float64, error)
	switch kind {
	case KindWeight:
		parse = ParseWeightStrict
	case KindVolume:
		parse = ParseVolumeStrict
	case KindTemperature:
		parse = ParseTemperatureStrict
	case KindLength:
		parse = ParseLengthStrict
	default:
		return 0, fmt.Errorf("unknown quantity kind %q", kind)
	}
	out, err := parse(v, unit)
	if err != nil && strict {
		return 0, err
	}
	return out, nil
}
