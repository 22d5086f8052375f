package svgpath

import (
	"log/slog"

	parsestrconv "github.com/tdewolff/parse/v2/strconv"
)

// segment is one command letter with the numbers that followed it.
type segment struct {
	cmd  byte
	args []float64
}

// arity is the operand group size of each command, in uppercase form.
var arity = map[byte]int{
	'M': 2,
	'L': 2,
	'T': 2,
	'H': 1,
	'V': 1,
	'C': 6,
	'S': 4,
	'Q': 4,
	'A': 7,
	'Z': 0,
}

func upper(c byte) byte {
	if 'a' <= c && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

func isRelative(c byte) bool {
	return 'a' <= c && c <= 'z'
}

func isSeparator(c byte) bool {
	return c == ' ' || c == ',' || c == '\n' || c == '\r' || c == '\t'
}

func isCommand(c byte) bool {
	_, ok := arity[upper(c)]
	return ok
}

// tokenize splits path data into command segments. Numbers before the first
// command and characters that are neither commands nor numbers are dropped.
func tokenize(path string) []segment {
	b := []byte(path)
	var segs []segment

	for i := 0; i < len(b); {
		c := b[i]
		switch {
		case isSeparator(c):
			i++
		case isCommand(c):
			segs = append(segs, segment{cmd: c})
			i++
		default:
			num, n := parsestrconv.ParseFloat(b[i:])
			if n == 0 {
				slog.Debug("svgpath: skipping unexpected character", "char", string(c), "pos", i)
				i++
				continue
			}
			if len(segs) == 0 {
				slog.Debug("svgpath: number before first command", "pos", i)
			} else {
				last := &segs[len(segs)-1]
				last.args = append(last.args, num)
			}
			i += n
		}
	}
	return segs
}

// groups returns the complete operand groups of a segment and logs any
// incomplete trailing operands, which callers skip.
func (s segment) groups() [][]float64 {
	n := arity[upper(s.cmd)]
	if n == 0 {
		return nil
	}
	var out [][]float64
	k := 0
	for ; k+n <= len(s.args); k += n {
		out = append(out, s.args[k:k+n])
	}
	if k < len(s.args) {
		slog.Debug("svgpath: skipping malformed operands",
			"command", string(s.cmd), "want", n, "got", len(s.args)-k)
	}
	return out
}
