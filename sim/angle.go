package sim

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseAngle reads a rotation angle in radians. Whitespace is ignored and
// "pi" may be written in any case. Accepted forms:
//   - plain numbers: "1.5707", "-0.5", "3.14e-2"
//   - multiples of pi: "pi", "2pi", "2*pi", "pi/2", "3*pi/4", "-pi/2"
func ParseAngle(s string) (float64, error) {
	expr := strings.ToLower(strings.Join(strings.Fields(s), ""))
	if expr == "" {
		return 0, fmt.Errorf("empty angle")
	}
	if v, err := strconv.ParseFloat(expr, 64); err == nil {
		return v, nil
	}

	sign := 1.0
	if rest, ok := strings.CutPrefix(expr, "-"); ok {
		sign, expr = -1, rest
	}
	coeffPart, rest, ok := strings.Cut(expr, "pi")
	if !ok {
		return 0, fmt.Errorf("invalid angle %q", s)
	}

	coeff := 1.0
	if coeffPart = strings.TrimSuffix(coeffPart, "*"); coeffPart != "" {
		c, err := strconv.ParseFloat(coeffPart, 64)
		if err != nil || c < 0 {
			return 0, fmt.Errorf("invalid angle coefficient %q", s)
		}
		coeff = c
	}

	den := 1.0
	if rest != "" {
		d, ok := strings.CutPrefix(rest, "/")
		if !ok {
			return 0, fmt.Errorf("invalid angle %q", s)
		}
		v, err := strconv.ParseFloat(d, 64)
		if err != nil || v == 0 {
			return 0, fmt.Errorf("invalid angle denominator %q", s)
		}
		den = v
	}
	return sign * coeff * math.Pi / den, nil
}

// ParseAngles reads a comma separated list of angles. Empty parts are skipped.
func ParseAngles(input string) ([]float64, error) {
	var out []float64
	for _, part := range strings.Split(input, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		v, err := ParseAngle(part)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

var piForms = []struct {
	value   float64
	display string
}{
	{2 * math.Pi, "2*pi"},
	{math.Pi, "pi"},
	{math.Pi / 2, "pi/2"},
	{math.Pi / 3, "pi/3"},
	{math.Pi / 4, "pi/4"},
	{math.Pi / 6, "pi/6"},
	{math.Pi / 8, "pi/8"},
	{3 * math.Pi / 4, "3*pi/4"},
	{3 * math.Pi / 2, "3*pi/2"},
	{2 * math.Pi / 3, "2*pi/3"},
}

// FormatAngle renders an angle, using pi notation for common fractions.
func FormatAngle(v float64) string {
	for _, pf := range piForms {
		if math.Abs(v-pf.value) < 1e-10 {
			return pf.display
		}
		if math.Abs(v+pf.value) < 1e-10 {
			return "-" + pf.display
		}
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
