package units

import "strings"

// Conversion factors to canonical units.
const (
	GramsPerOunce  = 28.3495
	GramsPerPound  = 453.592
	GramsPerKilo   = 1000.0
	MLPerFluidOz   = 29.5735
	MLPerCup       = 236.588
	MLPerTbsp      = 14.787
	MLPerTsp       = 4.929
	MLPerLiter     = 1000.0
	CMPerInch      = 2.54
	CMPerMeter     = 100.0
	poundThreshold = 454.0
	cupThreshold   = 237.0
)

type unitTable map[string]float64

var weightUnits = unitTable{
	"oz": GramsPerOunce, "ounce": GramsPerOunce, "ounces": GramsPerOunce,
	"lb": GramsPerPound, "lbs": GramsPerPound, "pound": GramsPerPound, "pounds": GramsPerPound,
	"kg": GramsPerKilo, "kilogram": GramsPerKilo, "kilograms": GramsPerKilo, "千克": GramsPerKilo, "公斤": GramsPerKilo,
	"g": 1, "gram": 1, "grams": 1, "克": 1,
}

var volumeUnits = unitTable{
	"fl oz": MLPerFluidOz, "floz": MLPerFluidOz, "fluid ounce": MLPerFluidOz, "fluid ounces": MLPerFluidOz,
	"cup": MLPerCup, "cups": MLPerCup,
	"tbsp": MLPerTbsp, "tablespoon": MLPerTbsp, "tablespoons": MLPerTbsp,
	"tsp": MLPerTsp, "teaspoon": MLPerTsp, "teaspoons": MLPerTsp,
	"l": MLPerLiter, "liter": MLPerLiter, "liters": MLPerLiter, "升": MLPerLiter,
	"ml": 1, "milliliter": 1, "milliliters": 1, "毫升": 1,
}

var lengthUnits = unitTable{
	"in": CMPerInch, "inch": CMPerInch, "inches": CMPerInch,
	"m": CMPerMeter, "meter": CMPerMeter, "meters": CMPerMeter, "米": CMPerMeter,
	"cm": 1, "centimeter": 1, "centimeters": 1, "厘米": 1,
}

func (t unitTable) factor(unit string) (float64, bool) {
	f, ok := t[strings.ToLower(strings.TrimSpace(unit))]
	return f, ok
}

// FormatWeight renders grams as lb/oz for English and kg/g otherwise.
func FormatWeight(grams float64, loc Locale) string {
	ls := labelsFor(loc)
	if loc.System() == US {
		if grams >= poundThreshold {
			return formatNumber(round1(grams/GramsPerPound)) + " " + ls.weightLarge
		}
		return formatNumber(round1(grams/GramsPerOunce)) + " " + ls.weightSmall
	}
	if grams >= GramsPerKilo {
		return formatNumber(round1(grams/GramsPerKilo)) + " " + ls.weightLarge
	}
	return formatNumber(round(grams)) + " " + ls.weightSmall
}

// ParseWeight converts value in unit to grams. Unknown units are taken as grams.
func ParseWeight(value float64, unit string) float64 {
	g, _ := ParseWeightStrict(value, unit)
	return g
}

// ParseWeightStrict is ParseWeight but reports unknown units. The returned
// value still carries the lenient result.
func ParseWeightStrict(value float64, unit string) (float64, error) {
	if f, ok := weightUnits.factor(unit); ok {
		return value * f, nil
	}
	return value, &UnitError{Kind: "weight", Unit: unit}
}

// FormatVolume renders milliliters as cup/fl oz for English and ml otherwise.
func FormatVolume(ml float64, loc Locale) string {
	ls := labelsFor(loc)
	if loc.System() == US {
		if ml >= cupThreshold {
			return formatNumber(round1(ml/MLPerCup)) + " " + ls.volumeLarge
		}
		return formatNumber(round1(ml/MLPerFluidOz)) + " " + ls.volumeSmall
	}
	return formatNumber(round(ml)) + " " + ls.volumeSmall
}

// ParseVolume converts value in unit to milliliters. Unknown units are taken as ml.
func ParseVolume(value float64, unit string) float64 {
	ml, _ := ParseVolumeStrict(value, unit)
	return ml
}

func ParseVolumeStrict(value float64, unit string) (float64, error) {
	if f, ok := volumeUnits.factor(unit); ok {
		return value * f, nil
	}
	return value, &UnitError{Kind: "volume", Unit: unit}
}

// FormatTemperature renders Celsius as °F for English and °C otherwise.
func FormatTemperature(celsius float64, loc Locale) string {
	ls := labelsFor(loc)
	if loc.System() == US {
		return formatNumber(round(CelsiusToFahrenheit(celsius))) + ls.temperature
	}
	return formatNumber(round(celsius)) + ls.temperature
}

func CelsiusToFahrenheit(c float64) float64 { return c*9/5 + 32 }

// ParseTemperature converts to Celsius. Any unit mentioning F is Fahrenheit
// and the result is rounded; everything else is returned unchanged.
func ParseTemperature(value float64, unit string) float64 {
	c, _ := ParseTemperatureStrict(value, unit)
	return c
}

func ParseTemperatureStrict(value float64, unit string) (float64, error) {
	u := strings.ToUpper(strings.TrimSpace(unit))
	switch {
	case strings.Contains(u, "F"), strings.Contains(u, "℉"):
		return round((value - 32) * 5 / 9), nil
	case strings.Contains(u, "C"), strings.Contains(u, "℃"):
		return value, nil
	}
	return value, &UnitError{Kind: "temperature", Unit: unit}
}

// FormatLength renders centimeters as inches for English and cm otherwise.
func FormatLength(cm float64, loc Locale) string {
	ls := labelsFor(loc)
	if loc.System() == US {
		return formatNumber(round1(cm/CMPerInch)) + " " + ls.length
	}
	return formatNumber(round(cm)) + " " + ls.length
}

// ParseLength converts value in unit to centimeters. Unknown units are taken as cm.
func ParseLength(value float64, unit string) float64 {
	cm, _ := ParseLengthStrict(value, unit)
	return cm
}

func ParseLengthStrict(value float64, unit string) (float64, error) {
	if f, ok := lengthUnits.factor(unit); ok {
		return value * f, nil
	}
	return value, &UnitError{Kind: "length", Unit: unit}
}
