package ocr

import (
	"sort"
	"strings"

	"github.com/labelforge/labelforge/backend/internal/canvas/geometry"
)

// TextInRect reconstructs the text covered by the rectangle in natural
// reading order: intersecting words are grouped by line, lines sorted by
// index, words within a line by word index; words join with spaces, lines
// with newlines. Spatial iteration order of the input does not matter.
func TextInRect(rect geometry.Rect, words []Word, minIntersection float64) string {
	lines := make(map[int][]Word)
	for _, w := range words {
		if w.Box.IntersectionPercent(rect) >= minIntersection {
			lines[w.LineIndex] = append(lines[w.LineIndex], w)
		}
	}
	if len(lines) == 0 {
		return ""
	}

	lineIndexes := make([]int, 0, len(lines))
	for idx := range lines {
		lineIndexes = append(lineIndexes, idx)
	}
	sort.Ints(lineIndexes)

	var out []string
	for _, idx := range lineIndexes {
		line := lines[idx]
		sort.Slice(line, func(i, j int) bool {
			return line[i].WordIndex < line[j].WordIndex
		})
		texts := make([]string, len(line))
		for i, w := range line {
			texts[i] = w.Text
		}
		out = append(out, strings.Join(texts, " "))
	}
	return strings.Join(out, "\n")
}
