// Package textflow breaks a run of indivisible text chunks into lines of bounded width.
//
// Chunks are boxes joined by glue of fixed width. The glue never stretches or
// shrinks, so a line is either feasible (fits within the maximum width) or not,
// and the breaker picks the partition with the least total squared slack.
package textflow

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Box is an indivisible piece of text.
type Box struct {
	Text  string
	Width int
}

// Glue separates two boxes on the same line.
type Glue struct {
	Text  string
	Width int
}

// Line is a run of boxes assigned to one row.
type Line []Box

// Width returns the number of user-perceived characters in s.
func Width(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// NewBox returns a box measured in characters.
func NewBox(s string) Box {
	return Box{Text: s, Width: Width(s)}
}

// NewGlue returns glue measured in characters.
func NewGlue(s string) Glue {
	return Glue{Text: s, Width: Width(s)}
}

// Width returns the rendered width of a line joined by g.
func (l Line) Width(g Glue) int {
	if len(l) == 0 {
		return 0
	}
	w := (len(l) - 1) * g.Width
	for _, b := range l {
		w += b.Width
	}
	return w
}

// Text renders a line, joining its boxes with g.
func (l Line) Text(g Glue) string {
	ss := make([]string, len(l))
	for i, b := range l {
		ss[i] = b.Text
	}
	return strings.Join(ss, g.Text)
}

// node is the best known way to set the first n boxes.
type node struct {
	ok     bool
	cost   int64
	lines  int
	breaks []int
}

// better reports whether a beats b: lower cost, then fewer lines, then earlier breakpoints.
func (a node) better(b node) bool {
	if !b.ok {
		return true
	}
	if a.cost != b.cost {
		return a.cost < b.cost
	}
	if a.lines != b.lines {
		return a.lines < b.lines
	}
	for i := range a.breaks {
		if a.breaks[i] != b.breaks[i] {
			return a.breaks[i] < b.breaks[i]
		}
	}
	return false
}

// Break partitions boxes into lines no wider than maxWidth.
//
// Every box lands on exactly one line, in order. A box wider than maxWidth is
// set alone on its own line. Among the feasible partitions, Break returns the
// one with the smallest sum of squared slack over all lines; ties go to fewer
// lines, then to the earliest breakpoints.
func Break(maxWidth int, boxes []Box, g Glue) []Line {
	n := len(boxes)
	if n == 0 {
		return nil
	}

	best := make([]node, n+1)
	best[0] = node{ok: true}

	for end := 1; end <= n; end++ {
		width := 0
		for start := end - 1; start >= 0; start-- {
			width += boxes[start].Width
			if start < end-1 {
				width += g.Width
			}

			alone := start == end-1
			if width > maxWidth && !alone {
				break
			}
			if !best[start].ok {
				continue
			}

			var cost int64
			if width <= maxWidth {
				slack := int64(maxWidth - width)
				cost = slack * slack
			}

			prev := best[start]
			cand := node{
				ok:     true,
				cost:   prev.cost + cost,
				lines:  prev.lines + 1,
				breaks: append(append(make([]int, 0, len(prev.breaks)+1), prev.breaks...), start),
			}
			if cand.better(best[end]) {
				best[end] = cand
			}
		}
	}

	starts := best[n].breaks
	lines := make([]Line, 0, len(starts))
	for i, s := range starts {
		e := n
		if i+1 < len(starts) {
			e = starts[i+1]
		}
		lines = append(lines, Line(boxes[s:e:e]))
	}
	return lines
}

// Lines breaks text chunks into lines of at most maxWidth columns, joined by sep.
func Lines(maxWidth int, chunks []string, sep string) [][]string {
	boxes := make([]Box, len(chunks))
	for i, c := range chunks {
		boxes[i] = NewBox(c)
	}

	var out [][]string
	for _, l := range Break(maxWidth, boxes, NewGlue(sep)) {
		ss := make([]string, len(l))
		for i, b := range l {
			ss[i] = b.Text
		}
		out = append(out, ss)
	}
	return out
}

// Render joins each line with sep, and the lines with newlines.
func Render(lines [][]string, sep string) string {
	ss := make([]string, len(lines))
	for i, l := range lines {
		ss[i] = strings.Join(l, sep)
	}
	return strings.Join(ss, "\n")
}
