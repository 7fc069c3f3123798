package renderer

import (
	"math"
	"slices"
	"strings"
)

var levels = []rune("▁▂▃▄▅▆▇█")

// Blocks draws a series as a one line sparkline of block characters, scaled
// between the series minimum and maximum. A flat series is drawn mid-height.
func Blocks(series []float64) string {
	if len(series) == 0 {
		return ""
	}
	lo, hi := slices.Min(series), slices.Max(series)
	var b strings.Builder
	for _, v := range series {
		i := 3
		if hi > lo {
			i = int(math.Round((v - lo) / (hi - lo) * float64(len(levels)-1)))
		}
		b.WriteRune(levels[i])
	}
	return b.String()
}
