package inky

import "fmt"

// Percent is a signed percentage, 2.5 means +2.5%.
type Percent float64

// Equal compares two percents with a 1e-4 precision.
func (p Percent) Equal(q Percent) bool {
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", float64(p))
}

// SignedString prints the percent with an explicit '+' for gains, the way a
// card shows the daily change.
func (p Percent) SignedString() string {
	if p > 0 {
		return fmt.Sprintf("+%.2f%%", float64(p))
	}
	return fmt.Sprintf("%.2f%%", float64(p))
}
