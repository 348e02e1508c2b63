package manpage

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

// FormatCount abbreviates large counts: 1.2M, 3.4K, and grouped integers
// below a thousand.
func FormatCount(n int) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1e6)
	case n >= 1_000:
		k := fmt.Sprintf("%.1f", float64(n)/1e3)
		if k == "1000.0" {
			return "1.0M"
		}
		return k + "K"
	}
	return humanize.Comma(int64(n))
}

var sparkRunes = []rune("·▁▂▃▄▅▆▇█")

// Sparkline renders counts scaled to the largest one. Zero counts render
// as a dot so that quiet days are distinguishable from light ones.
func Sparkline(counts []int) string {
	peak := 0
	for _, c := range counts {
		peak = max(peak, c)
	}
	out := make([]rune, len(counts))
	for i, c := range counts {
		if c <= 0 || peak == 0 {
			out[i] = sparkRunes[0]
			continue
		}
		level := 1 + int(math.Round(float64(c)/float64(peak)*float64(len(sparkRunes)-2)))
		out[i] = sparkRunes[min(level, len(sparkRunes)-1)]
	}
	return string(out)
}
