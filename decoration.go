package uxtree

import "fmt"

// DepthColorMode selects how selection highlights are colored by tree depth.
type DepthColorMode int

const (
	DepthColorNone       DepthColorMode = iota // No color.
	DepthColorProcedural                       // Hue generated per depth.
	DepthColorPalette                          // Fixed 6-hue palette, cycling.
)

// Style carries the caller-chosen highlight color for a decoration.
type Style struct {
	Color string
}

// Decoration is a selection-driven highlight request sent to the external
// text-editor widget.
type Decoration struct {
	Range Range
	Style Style
}

// depthPalette is the fixed 6-hue cycle for DepthColorPalette.
var depthPalette = [6]string{
	"#4e79a7", // blue
	"#f28e2b", // orange
	"#59a14f", // green
	"#e15759", // red
	"#b07aa1", // purple
	"#76b7b2", // teal
}

// depthColor returns the highlight color for a node at the given depth. The
// procedural mode steps the hue by a prime so adjacent depths stay distinct
// across many levels.
func depthColor(mode DepthColorMode, depth int) string {
	switch mode {
	case DepthColorProcedural:
		hue := (depth * 47) % 360
		return fmt.Sprintf("hsl(%d, 70%%, 45%%)", hue)
	case DepthColorPalette:
		return depthPalette[depth%len(depthPalette)]
	default:
		return ""
	}
}
