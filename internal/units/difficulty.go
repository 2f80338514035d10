package units

import "fmt"

var difficultyLadder = []struct {
	threshold float64
	suffix    string
}{
	{1e15, "P"},
	{1e12, "T"},
	{1e9, "G"},
	{1e6, "M"},
}

// FormatDifficulty compacts a mining difficulty to two decimals with a
// P/T/G/M suffix.
func FormatDifficulty(d float64) string {
	for _, step := range difficultyLadder {
		if d >= step.threshold {
			return fmt.Sprintf("%.2f%s", d/step.threshold, step.suffix)
		}
	}
	return fmt.Sprintf("%.2f", d)
}

// FormatHashrate renders a hash rate given in hashes per second as EH/s
func FormatHashrate(hashesPerSecond float64) string {
	return fmt.Sprintf("%.2f EH/s", hashesPerSecond/1e18)
}
