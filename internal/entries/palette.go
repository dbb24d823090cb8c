package entries

import (
	"math/rand/v2"
	"strings"
)

var palette = [...]string{
	"#6D28D9", // deep purple
	"#1D4ED8", // dark blue
	"#059669", // dark green
	"#D97706", // dark orange
	"#DC2626", // dark red
	"#7C3AED", // medium purple
	"#0F766E", // dark teal
	"#4B5563", // dark gray
}

// Palette returns the preset cover colors in display order.
func Palette() []string {
	out := make([]string, len(palette))
	copy(out, palette[:])
	return out
}

// InPalette reports whether color is one of the preset tokens.
func InPalette(color string) bool {
	for _, c := range palette {
		if strings.EqualFold(c, strings.TrimSpace(color)) {
			return true
		}
	}
	return false
}

// CoverPicker chooses the cover color for a newly created entry.
type CoverPicker interface {
	Pick() string
}

// RandomPicker draws uniformly from the palette.
type RandomPicker struct{}

// Pick implements CoverPicker.
func (RandomPicker) Pick() string {
	return palette[rand.IntN(len(palette))]
}

// FixedPicker always returns the palette color at its index (modulo the palette size).
type FixedPicker int

// Pick implements CoverPicker.
func (f FixedPicker) Pick() string {
	i := int(f) % len(palette)
	if i < 0 {
		i += len(palette)
	}
	return palette[i]
}
