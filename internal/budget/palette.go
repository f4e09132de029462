package budget

import "math/rand"

// defaultPalette holds the colors assigned to categories created
// without an explicit color choice.
var defaultPalette = []string{
	"#3498db", // blue
	"#2ecc71", // green
	"#e74c3c", // red
	"#f1c40f", // yellow
	"#9b59b6", // purple
	"#1abc9c", // teal
	"#e67e22", // orange
	"#34495e", // dark blue
}

// pickColor selects a palette color using the given randomness source.
func pickColor(rng *rand.Rand) string {
	return defaultPalette[rng.Intn(len(defaultPalette))]
}
