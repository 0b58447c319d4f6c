// Package units converts quantity+unit pairs into canonical base-unit
// magnitudes: grams for mass, milliliters for volume. Units outside the
// canonical set normalize to KindOther and are never comparable.
package units

import (
	"fmt"
	"strings"
)

type Kind string

const (
	KindMass  Kind = "mass"
	KindVol   Kind = "vol"
	KindOther Kind = "other"
)

// Measurement is the normalized form of a quantity+unit pair. Base is in
// grams for mass and milliliters for volume; for KindOther it is the raw
// quantity and carries no comparable meaning.
type Measurement struct {
	Kind Kind
	Base float64
	Unit string
}

// Normalize maps a quantity and a free-text unit onto a Measurement.
// Unit matching is case-insensitive on the trimmed string; anything outside
// g/kg/mL/L is KindOther. Non-finite quantities pass through untouched.
func Normalize(quantity float64, unit string) Measurement {
	trimmed := strings.TrimSpace(unit)
	switch strings.ToLower(trimmed) {
	case "g":
		return Measurement{Kind: KindMass, Base: quantity, Unit: trimmed}
	case "kg":
		return Measurement{Kind: KindMass, Base: quantity * 1000, Unit: trimmed}
	case "ml":
		return Measurement{Kind: KindVol, Base: quantity, Unit: trimmed}
	case "l":
		return Measurement{Kind: KindVol, Base: quantity * 1000, Unit: trimmed}
	default:
		return Measurement{Kind: KindOther, Base: quantity, Unit: trimmed}
	}
}

// Compatible reports whether quantities in the two units can be compared
// after normalization. Units of KindOther are compatible only when the
// trimmed strings match case-insensitively.
func Compatible(unitA string, unitB string) bool {
	a := Normalize(0, unitA)
	b := Normalize(0, unitB)
	if a.Kind == KindOther || b.Kind == KindOther {
		return a.Kind == KindOther && b.Kind == KindOther &&
			strings.EqualFold(a.Unit, b.Unit)
	}
	return a.Kind == b.Kind
}

// ConvertBase converts a base magnitude back into the given unit.
// For KindOther units the magnitude is returned unchanged.
func ConvertBase(base float64, unit string) float64 {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "kg", "l":
		return base / 1000
	default:
		return base
	}
}

// Display renders a measurement the way list endpoints show it.
func (m Measurement) Display() string {
	if m.Unit == "" {
		return trimFloat(m.Base)
	}
	return trimFloat(ConvertBase(m.Base, m.Unit)) + " " + m.Unit
}

func trimFloat(value float64) string {
	formatted := fmt.Sprintf("%.2f", value)
	formatted = strings.TrimRight(formatted, "0")
	return strings.TrimRight(formatted, ".")
}
