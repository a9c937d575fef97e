package pathdata

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrPath is the kind of all path-data parse errors.
var ErrPath = errors.New("path data error")

// Parse scans path data in a single pass. Whitespace and commas separate
// parameters; a sign immediately following digits starts a new number, as
// does a second '.' inside a fractional part (SVG compact notation).
// Parameter groups are chunked by the command's arity; extra groups
// become implicit repeated commands, with extras after a moveto becoming
// implicit linetos. Leftover parameters that do not fill a whole group
// are discarded.
func Parse(s string) ([]Command, error) {
	var cmds []Command
	i, n := 0, len(s)
	sawCmd := false
	for i < n {
		c := s[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == ',':
			i++
		case isCommandLetter(c):
			sawCmd = true
			letter := upper(c)
			rel := c >= 'a' && c <= 'z'
			i++
			var params []float64
			params, i = scanNumbers(s, i)
			cmds = appendChunked(cmds, letter, rel, params)
		default:
			if !sawCmd {
				return nil, fmt.Errorf("%w: path data must start with a command, got %q at %d", ErrPath, c, i)
			}
			return nil, fmt.Errorf("%w: unexpected character %q at %d", ErrPath, c, i)
		}
	}
	return cmds, nil
}

// scanNumbers consumes all numbers following a command letter.
func scanNumbers(s string, i int) ([]float64, int) {
	var out []float64
	n := len(s)
	for i < n {
		c := s[i]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == ',' {
			i++
			continue
		}
		if isCommandLetter(c) {
			break
		}
		v, ni, ok := scanNumber(s, i)
		if !ok {
			// junk character: stop here, Parse reports it
			break
		}
		out = append(out, v)
		i = ni
	}
	return out, i
}

func scanNumber(s string, i int) (float64, int, bool) {
	start := i
	n := len(s)
	seenDot, seenExp, seenDigit := false, false, false
	if i < n && (s[i] == '+' || s[i] == '-') {
		i++
	}
	for i < n {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			seenDigit = true
			i++
		case c == '.' && !seenDot && !seenExp:
			seenDot = true
			i++
		case (c == 'e' || c == 'E') && seenDigit && !seenExp:
			seenExp = true
			i++
			if i < n && (s[i] == '+' || s[i] == '-') {
				i++
			}
		default:
			goto done
		}
	}
done:
	if !seenDigit {
		return 0, start, false
	}
	v, err := strconv.ParseFloat(s[start:i], 64)
	if err != nil {
		return 0, start, false
	}
	return v, i, true
}

// appendChunked splits params into arity-sized groups and appends one
// Command per group. Repeated groups after a moveto continue as linetos.
func appendChunked(cmds []Command, letter byte, rel bool, params []float64) []Command {
	ar := Arity(letter)
	if ar == 0 {
		// close-path takes no parameters; any that follow are discarded
		return append(cmds, Command{Letter: letter, Relative: rel})
	}
	for k := 0; k+ar <= len(params); k += ar {
		l := letter
		if letter == 'M' && k > 0 {
			l = 'L'
		}
		cmds = append(cmds, Command{
			Letter:   l,
			Relative: rel,
			Params:   append([]float64(nil), params[k:k+ar]...),
		})
	}
	return cmds
}
