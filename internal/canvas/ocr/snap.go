package ocr

import (
	"github.com/labelforge/labelforge/backend/internal/canvas/geometry"
)

// SnapConfig holds the snap resolver thresholds. The defaults are
// empirically tuned; they are exposed as configuration rather than
// re-derived.
type SnapConfig struct {
	// MinIntersectionPercent is the minimum fraction of a word box that
	// must overlap the candidate rectangle for the word to count as
	// intersecting.
	MinIntersectionPercent float64 `yaml:"min_intersection_percent" json:"min_intersection_percent"`
	// ProximityThreshold is the maximum gap (normalized units) between a
	// word box and the rectangle for the word to count as nearby.
	ProximityThreshold float64 `yaml:"proximity_threshold" json:"proximity_threshold"`
	// SmallRectMaxWidth / SmallRectMaxHeight bound the rectangle size
	// below which the single-word heuristic applies.
	SmallRectMaxWidth  float64 `yaml:"small_rect_max_width" json:"small_rect_max_width"`
	SmallRectMaxHeight float64 `yaml:"small_rect_max_height" json:"small_rect_max_height"`
	// SmallRectWordLimit is the relevant-word count above which a small
	// rectangle is narrowed to a single word.
	SmallRectWordLimit int `yaml:"small_rect_word_limit" json:"small_rect_word_limit"`
	// SmallRectMinIntersection is the intersection percentage the best
	// intersecting word must exceed before it is preferred over the
	// nearest nearby word.
	SmallRectMinIntersection float64 `yaml:"small_rect_min_intersection" json:"small_rect_min_intersection"`
}

// DefaultSnapConfig returns the tuned default thresholds.
func DefaultSnapConfig() SnapConfig {
	return SnapConfig{
		MinIntersectionPercent:   0.05,
		ProximityThreshold:       0.01,
		SmallRectMaxWidth:        0.15,
		SmallRectMaxHeight:       0.05,
		SmallRectWordLimit:       3,
		SmallRectMinIntersection: 0.10,
	}
}

// SnapResult is a resolved snap: the tightest bounding box over the
// selected words, the words themselves, and the input rectangle for
// reference.
type SnapResult struct {
	Box   geometry.Rect `json:"box"`
	Words []Word        `json:"words"`
	Input geometry.Rect `json:"input"`
}

type scoredWord struct {
	word    Word
	percent float64
}

// Snap aligns a drawn rectangle to the detected words. It returns nil when
// no word intersects or lies near the rectangle, meaning no snap is
// available and the caller keeps the unsnapped rectangle.
//
// Small rectangles overlapping many words are narrowed to the single best
// word: a small draw almost always targets one word, while a large draw is
// assumed to cover a line or paragraph intentionally.
func Snap(rect geometry.Rect, words []Word, cfg SnapConfig) *SnapResult {
	var intersecting []scoredWord
	var nearby []Word
	seen := make(map[int]bool)
	var relevant []Word

	for i, w := range words {
		if p := w.Box.IntersectionPercent(rect); p >= cfg.MinIntersectionPercent {
			intersecting = append(intersecting, scoredWord{word: w, percent: p})
			if !seen[i] {
				seen[i] = true
				relevant = append(relevant, w)
			}
			continue
		}
		if rect.DistanceTo(w.Box) <= cfg.ProximityThreshold {
			nearby = append(nearby, w)
			if !seen[i] {
				seen[i] = true
				relevant = append(relevant, w)
			}
		}
	}

	if len(relevant) == 0 {
		return nil
	}

	selected := relevant
	smallRect := rect.Width < cfg.SmallRectMaxWidth && rect.Height < cfg.SmallRectMaxHeight
	if smallRect && len(relevant) > cfg.SmallRectWordLimit {
		if best, ok := bestIntersecting(intersecting, cfg.SmallRectMinIntersection); ok {
			selected = []Word{best}
		} else {
			// No word overlaps convincingly: fall back to the nearby set,
			// not every relevant word.
			candidates := nearby
			if len(candidates) == 0 {
				candidates = relevant
			}
			if nearest, ok := nearestWord(rect, candidates); ok {
				selected = []Word{nearest}
			}
		}
	}

	boxes := make([]geometry.Rect, len(selected))
	for i, w := range selected {
		boxes[i] = w.Box
	}
	return &SnapResult{
		Box:   geometry.BoundingBox(boxes),
		Words: selected,
		Input: rect,
	}
}

// bestIntersecting returns the word with the highest intersection
// percentage, provided it exceeds the minimum.
func bestIntersecting(scored []scoredWord, min float64) (Word, bool) {
	var best Word
	bestPercent := min
	found := false
	for _, s := range scored {
		if s.percent > bestPercent {
			best = s.word
			bestPercent = s.percent
			found = true
		}
	}
	return best, found
}

// nearestWord returns the word whose box center is closest to the
// rectangle.
func nearestWord(rect geometry.Rect, words []Word) (Word, bool) {
	if len(words) == 0 {
		return Word{}, false
	}
	best := words[0]
	bestDist := rect.DistanceToPoint(best.Box.Center())
	for _, w := range words[1:] {
		if d := rect.DistanceToPoint(w.Box.Center()); d < bestDist {
			best = w
			bestDist = d
		}
	}
	return best, true
}
