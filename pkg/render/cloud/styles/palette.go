package styles

// WinnerColor is the hot pink used for the centre label.
const WinnerColor = "#E91E63"

// Palette is the full red/pink cloud palette. Only the first
// [VotedPaletteSize] entries are used for labels with votes; the tail holds
// neutral tones.
var Palette = []string{
	"#E91E63", "#F06292", "#EC407A", "#D81B60", "#FF5252",
	"#FF1744", "#C2185B", "#AD1457", "#F48FB1", "#FF80AB",
	"#AAAAAA", "#CCCCCC", "#999999", "#DDDDDD", "#FFFFFF",
}

// VotedPaletteSize is the number of leading Palette entries used for labels
// with at least one vote.
const VotedPaletteSize = 10

// Greys are used for labels without votes.
var Greys = []string{"#888888", "#AAAAAA", "#CCCCCC", "#666666"}

// Background is the canvas fill colour.
const Background = "#000000"
