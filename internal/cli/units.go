package cli

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// unitGrammar matches a decimal number with an optional unit suffix
// (e.g. "512", "1.5M", "2G"), defaulting to bytes when the suffix is empty.
var unitGrammar = regexp.MustCompile(`^([0-9]+(?:\.[0-9]+)?)([A-Za-z]+)?$`)

var unitMultipliers = map[string]float64{
	"":  1,
	"B": 1,
	"K": 1 << 10,
	"M": 1 << 20,
	"G": 1 << 30,
	"T": 1 << 40,
	"P": 1 << 50,
	"E": 1 << 60,
	"Z": math.Pow(1024, 7),
	"Y": math.Pow(1024, 8),
}

var unitOrder = []string{"Y", "Z", "E", "P", "T", "G", "M", "K", "B"}

// parseSize parses a CLI size string, defaulting to bytes when no suffix
// is given.
func parseSize(s string) (int64, error) {
	m := unitGrammar.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, fmt.Errorf("invalid size %q", s)
	}

	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", s, err)
	}

	unit := strings.ToUpper(m[2])

	mult, ok := unitMultipliers[unit]
	if !ok {
		return 0, fmt.Errorf("invalid size unit %q in %q", m[2], s)
	}

	return int64(value * mult), nil
}

// toHuman renders v picking the largest unit whose multiplier is strictly
// less than v, with one decimal place.
func toHuman(v int64) string {
	fv := float64(v)

	for _, u := range unitOrder {
		if u == "B" {
			continue
		}

		if mult := unitMultipliers[u]; fv > mult {
			return fmt.Sprintf("%.1f%s", fv/mult, u)
		}
	}

	return fmt.Sprintf("%dB", v)
}
