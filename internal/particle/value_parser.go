// Package particle parses the value notation used by particle emitter
// settings and samples random values from it.
package particle

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
)

// Range is a half-open interval [Min, Max) sampled uniformly.
// A Range with Min == Max is a fixed value.
type Range struct {
	Min float64
	Max float64
}

// Fixed returns a Range holding a single value.
func Fixed(v float64) Range {
	return Range{Min: v, Max: v}
}

// ParseRange parses a value string from emitter configuration.
// Supported formats:
//   - Fixed value: "1.5" → [1.5, 1.5]
//   - Range: "[0.5 2.5]" → [0.5, 2.5)
//   - Single bracketed value: "[3]" → [3, 3]
//
// Both bounds must be finite and the minimum must not exceed the maximum.
func ParseRange(s string) (Range, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Range{}, fmt.Errorf("empty value")
	}

	if strings.HasPrefix(s, "[") {
		if !strings.HasSuffix(s, "]") {
			return Range{}, fmt.Errorf("unterminated range %q", s)
		}
		inner := strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
		parts := strings.Fields(inner)
		switch len(parts) {
		case 1:
			v, err := parseFinite(parts[0])
			if err != nil {
				return Range{}, fmt.Errorf("invalid value %q: %w", parts[0], err)
			}
			return Fixed(v), nil
		case 2:
			lo, err := parseFinite(parts[0])
			if err != nil {
				return Range{}, fmt.Errorf("invalid range min %q: %w", parts[0], err)
			}
			hi, err := parseFinite(parts[1])
			if err != nil {
				return Range{}, fmt.Errorf("invalid range max %q: %w", parts[1], err)
			}
			if lo > hi {
				return Range{}, fmt.Errorf("range min %g > max %g", lo, hi)
			}
			return Range{Min: lo, Max: hi}, nil
		default:
			return Range{}, fmt.Errorf("range %q must have one or two values", s)
		}
	}

	v, err := parseFinite(s)
	if err != nil {
		return Range{}, fmt.Errorf("invalid value %q: %w", s, err)
	}
	return Fixed(v), nil
}

// parseFinite rejects NaN and ±Inf, which strconv accepts.
func parseFinite(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a finite number")
	}
	return v, nil
}

// Sample draws a value in [Min, Max) from rng. Fixed ranges return Min.
func (r Range) Sample(rng *rand.Rand) float64 {
	if r.Min >= r.Max {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Contains reports whether v lies in [Min, Max), or equals Min for fixed ranges.
func (r Range) Contains(v float64) bool {
	if r.Min >= r.Max {
		return v == r.Min
	}
	return v >= r.Min && v < r.Max
}

// String formats the range in the notation ParseRange accepts.
func (r Range) String() string {
	if r.Min == r.Max {
		return strconv.FormatFloat(r.Min, 'g', -1, 64)
	}
	return fmt.Sprintf("[%s %s]",
		strconv.FormatFloat(r.Min, 'g', -1, 64),
		strconv.FormatFloat(r.Max, 'g', -1, 64))
}
