package counter

import (
	"fmt"
	"strings"
)

// Easing maps linear progress in [0, 1] onto eased progress in [0, 1].
type Easing func(p float64) float64

// EaseOutQuart is 1-(1-p)^4: fast start, long settle.
func EaseOutQuart(p float64) float64 {
	q := 1 - p
	return 1 - q*q*q*q
}

// EaseOutCubic is 1-(1-p)^3.
func EaseOutCubic(p float64) float64 {
	q := 1 - p
	return 1 - q*q*q
}

// Linear leaves progress untouched.
func Linear(p float64) float64 {
	return p
}

// EasingNames lists the names EasingByName accepts.
var EasingNames = []string{"quart", "cubic", "linear"}

// EasingByName resolves a configured easing name.
func EasingByName(name string) (Easing, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "quart":
		return EaseOutQuart, nil
	case "cubic":
		return EaseOutCubic, nil
	case "linear":
		return Linear, nil
	default:
		return nil, fmt.Errorf("unknown easing %q (want one of %s)", name, strings.Join(EasingNames, ", "))
	}
}
