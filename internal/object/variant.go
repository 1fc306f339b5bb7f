package object

import colorful "github.com/lucasb-eyer/go-colorful"

// BodyShape is the silhouette a popup is drawn with.
type BodyShape int

const (
	BodySquircle BodyShape = iota // Rounded square
	BodyRhombus                   // Diamond
)

// Variant is one visual identity a popup can be drawn as.
type Variant struct {
	Name  string
	Shape BodyShape
	Color colorful.Color
}

var bodyColors = []struct {
	name string
	hex  string
}{
	{"blue", "#3d9be9"},
	{"green", "#5fcf5a"},
	{"pink", "#f472b6"},
	{"purple", "#9b6cf0"},
	{"red", "#e8463f"},
	{"yellow", "#f5c842"},
}

// DefaultVariants returns the character body catalog: every color as a
// squircle, then every color as a rhombus.
func DefaultVariants() []Variant {
	variants := make([]Variant, 0, 2*len(bodyColors))
	for _, shape := range []BodyShape{BodySquircle, BodyRhombus} {
		suffix := "_squircle"
		if shape == BodyRhombus {
			suffix = "_rhombus"
		}
		for _, c := range bodyColors {
			col, err := colorful.Hex(c.hex)
			if err != nil {
				panic("object: bad body color " + c.hex)
			}
			variants = append(variants, Variant{
				Name:  c.name + suffix,
				Shape: shape,
				Color: col,
			})
		}
	}
	return variants
}

// LookupVariant returns the variant for index, or false when the index is
// outside the catalog.
func LookupVariant(variants []Variant, index int) (Variant, bool) {
	if index < 0 || index >= len(variants) {
		return Variant{}, false
	}
	return variants[index], true
}
