package textflow

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatten(lines [][]string) []string {
	var out []string
	for _, l := range lines {
		out = append(out, l...)
	}
	return out
}

func TestLines(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		chunks []string
		want   [][]string
	}{
		{
			name:   "empty",
			width:  10,
			chunks: nil,
			want:   nil,
		},
		{
			name:   "single",
			width:  10,
			chunks: []string{"abc"},
			want:   [][]string{{"abc"}},
		},
		{
			name:   "break before overflow",
			width:  10,
			chunks: []string{"abc", "de", "fghij"},
			want:   [][]string{{"abc", "de"}, {"fghij"}},
		},
		{
			name:   "exact fit",
			width:  10,
			chunks: []string{"abcd", "efgh"},
			want:   [][]string{{"abcd", "efgh"}},
		},
		{
			name:   "oversized chunk alone",
			width:  5,
			chunks: []string{"ab", "abcdefghij", "cd"},
			want:   [][]string{{"ab"}, {"abcdefghij"}, {"cd"}},
		},
		{
			name:  "balanced over greedy",
			width: 10,
			// first-fit gives [aaaaaa, bb] [c]: slack 0 and 9, cost 81
			// [aaaaaa] [bb, c]: slack 4 and 5, cost 41
			chunks: []string{"aaaaaa", "bb", "c"},
			want:   [][]string{{"aaaaaa"}, {"bb", "c"}},
		},
		{
			name:  "avoids ragged short line",
			width: 10,
			// [aaaa, bb] [c, ddddddd] costs 4, every other partition costs more
			chunks: []string{"aaaa", "bb", "c", "ddddddd"},
			want:   [][]string{{"aaaa", "bb"}, {"c", "ddddddd"}},
		},
		{
			name:  "tie goes to earliest break",
			width: 12,
			// [aaaa, bbbb] [cccc] and [aaaa] [bbbb, cccc] both cost 68
			chunks: []string{"aaaa", "bbbb", "cccc"},
			want:   [][]string{{"aaaa"}, {"bbbb", "cccc"}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Lines(tc.width, tc.chunks, ", ")
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestBreakTieEarliestBreakpoint(t *testing.T) {
	g := Glue{Text: ", ", Width: 2}
	boxes := []Box{{"a", 4}, {"b", 4}, {"c", 4}}
	lines := Break(12, boxes, g)
	require.Len(t, lines, 2)
	assert.Equal(t, Line{{"a", 4}}, lines[0])
	assert.Equal(t, Line{{"b", 4}, {"c", 4}}, lines[1])
}

func TestBreakOversizedCostsNothing(t *testing.T) {
	g := Glue{Text: ", ", Width: 2}
	boxes := []Box{{"x", 9}, {"y", 9}}
	lines := Break(5, boxes, g)
	assert.Equal(t, []Line{{{"x", 9}}, {{"y", 9}}}, lines)
}

func TestLineWidthAndText(t *testing.T) {
	g := NewGlue(", ")
	l := Line{NewBox("abc"), NewBox("de")}
	assert.Equal(t, 7, l.Width(g))
	assert.Equal(t, "abc, de", l.Text(g))
	assert.Equal(t, 0, Line{}.Width(g))
}

func TestWidthCountsCharacters(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"𝑓2.8", 4},
		{"東京都渋谷区", 6},
		{"±5° Ridge", 9},
		{"Café", 4},
		{"Cafe\u0301", 4},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Width(tc.in), "input %q", tc.in)
	}
}

func TestLinesNonASCII(t *testing.T) {
	// 6 + 2 + 9 = 17 characters fits in 20
	got := Lines(20, []string{"東京都渋谷区", "Acme X100"}, ", ")
	assert.Equal(t, [][]string{{"東京都渋谷区", "Acme X100"}}, got)

	got = Lines(20, []string{"±5° Ridge", "Acme X100"}, ", ")
	assert.Equal(t, [][]string{{"±5° Ridge", "Acme X100"}}, got)
}

func TestRender(t *testing.T) {
	got := Render([][]string{{"abc", "de"}, {"fghij"}}, ", ")
	assert.Equal(t, "abc, de\nfghij", got)
}

func randomChunks(r *rand.Rand) []string {
	n := r.Intn(12)
	cs := make([]string, n)
	for i := range cs {
		cs[i] = strings.Repeat(string(rune('a'+i)), 1+r.Intn(14))
	}
	return cs
}

func TestPropertyConservation(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		width := 1 + r.Intn(30)
		cs := randomChunks(r)
		lines := Lines(width, cs, ", ")

		if len(cs) == 0 {
			assert.Empty(t, lines)
			continue
		}
		assert.Equal(t, cs, flatten(lines), "width=%d chunks=%v", width, cs)
		assert.Equal(t, strings.Join(cs, ", "), strings.ReplaceAll(Render(lines, ", "), "\n", ", "))
	}
}

func TestPropertyWidthBound(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	g := NewGlue(", ")
	for i := 0; i < 500; i++ {
		width := 1 + r.Intn(30)
		var boxes []Box
		for _, c := range randomChunks(r) {
			boxes = append(boxes, NewBox(c))
		}
		for _, l := range Break(width, boxes, g) {
			require.NotEmpty(t, l)
			if len(l) == 1 && l[0].Width > width {
				continue
			}
			assert.LessOrEqual(t, l.Width(g), width, "line %q", l.Text(g))
		}
	}
}

func TestPropertyDeterministic(t *testing.T) {
	r := rand.New(rand.NewSource(99))
	for i := 0; i < 100; i++ {
		width := 1 + r.Intn(30)
		cs := randomChunks(r)
		assert.Equal(t, Lines(width, cs, ", "), Lines(width, cs, ", "))
	}
}
