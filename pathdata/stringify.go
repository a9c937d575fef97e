package pathdata

import (
	"math"
	"strconv"
	"strings"
)

// StringifyOpts controls the output form of Stringify.
type StringifyOpts struct {
	// Precision is the decimal precision for parameters; negative means
	// full shortest-form precision. Rounding follows strconv.FormatFloat
	// of the underlying binary value, which is deterministic.
	Precision int
	// SpaceSep emits spaces instead of commas between parameters.
	SpaceSep bool
}

// Stringify emits commands in compact form: no separators around command
// letters, minimal numeric formatting, and separators elided before a
// negative number or a '.'-leading fraction where the grammar permits.
func Stringify(cmds []Command, opts StringifyOpts) string {
	var b strings.Builder
	sep := byte(',')
	if opts.SpaceSep {
		sep = ' '
	}
	for _, c := range cmds {
		letter := c.Letter
		if c.Relative {
			letter = letter - 'A' + 'a'
		}
		b.WriteByte(letter)
		prevFrac := false
		for i, v := range c.Params {
			s := FormatNumber(v, opts.Precision)
			if i > 0 && needsSep(s, prevFrac) {
				b.WriteByte(sep)
			}
			b.WriteString(s)
			prevFrac = strings.Contains(s, ".")
		}
	}
	return b.String()
}

// needsSep reports whether a separator is required before s. A leading
// '-' always self-separates; a leading '.' self-separates only when the
// previous number already contained a decimal point.
func needsSep(s string, prevFrac bool) bool {
	if s == "" {
		return false
	}
	if s[0] == '-' {
		return false
	}
	if s[0] == '.' && prevFrac {
		return false
	}
	return true
}

// FormatNumber formats v with trailing zeros stripped and the leading
// zero of a pure fraction removed (0.5 becomes .5). NaN and infinities
// format as 0.
func FormatNumber(v float64, prec int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	var s string
	if prec >= 0 {
		s = strconv.FormatFloat(v, 'f', prec, 64)
		if strings.Contains(s, ".") {
			s = strings.TrimRight(s, "0")
			s = strings.TrimRight(s, ".")
		}
	} else {
		s = strconv.FormatFloat(v, 'f', -1, 64)
	}
	switch {
	case s == "" || s == "-0" || s == "-":
		return "0"
	case strings.HasPrefix(s, "0."):
		return s[1:]
	case strings.HasPrefix(s, "-0."):
		return "-" + s[2:]
	}
	return s
}
