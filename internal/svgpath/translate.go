package svgpath

import "strings"

// pairOffsets lists, per uppercase command, the operand offsets inside one
// group that start an x,y coordinate pair.
var pairOffsets = map[byte][]int{
	'M': {0},
	'L': {0},
	'T': {0},
	'C': {0, 2, 4},
	'S': {0, 2},
	'Q': {0, 2},
	'A': {5}, // radii, rotation and flags stay untouched
}

// Translate shifts every absolute coordinate of a path by (dx, dy). Relative
// commands are already position independent, except a leading "m" which acts
// as an absolute move. Incomplete operand groups are written back unchanged.
func Translate(path string, dx, dy float64) string {
	segs := tokenize(path)
	parts := make([]string, 0, len(segs))

	for i, seg := range segs {
		cmd := upper(seg.cmd)
		args := append([]float64(nil), seg.args...)
		n := arity[cmd]

		absolute := !isRelative(seg.cmd)
		leadingMove := i == 0 && seg.cmd == 'm'

		if n > 0 && (absolute || leadingMove) {
			for k := 0; k+n <= len(args); k += n {
				switch cmd {
				case 'H':
					args[k] += dx
				case 'V':
					args[k] += dy
				default:
					for _, off := range pairOffsets[cmd] {
						args[k+off] += dx
						args[k+off+1] += dy
					}
				}
				if leadingMove {
					// Only the first pair of an "m" is absolute.
					break
				}
			}
		}

		var sb strings.Builder
		sb.WriteByte(seg.cmd)
		for _, v := range args {
			sb.WriteByte(' ')
			sb.WriteString(formatNumber(v))
		}
		parts = append(parts, sb.String())
	}

	return strings.Join(parts, " ")
}
