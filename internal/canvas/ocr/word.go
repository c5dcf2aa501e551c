// Package ocr holds the detected-word model, the snap resolver that aligns
// drawn rectangles to word boundaries, and reading-order text extraction.
package ocr

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/labelforge/labelforge/backend/internal/canvas/geometry"
)

// Word is one detected text token. Boxes are normalized 0–1 coordinates;
// LineIndex and WordIndex reconstruct reading order.
type Word struct {
	Text       string        `json:"text"`
	Confidence float64       `json:"confidence"`
	Box        geometry.Rect `json:"box"`
	LineIndex  int           `json:"line_index"`
	WordIndex  int           `json:"word_index"`
}

// rawPayload is the shape of the raw OCR engine output: blocks of lines of
// tokens. Token boxes may arrive in any spatial order within a line.
type rawPayload struct {
	Blocks []struct {
		Lines []struct {
			Words []struct {
				Text       string  `json:"text"`
				Confidence float64 `json:"confidence"`
				X          float64 `json:"x"`
				Y          float64 `json:"y"`
				Width      float64 `json:"width"`
				Height     float64 `json:"height"`
			} `json:"words"`
		} `json:"lines"`
	} `json:"blocks"`
}

// Document wraps the word list parsed once from a raw OCR payload. Words
// are immutable after construction and safe to share across reads.
type Document struct {
	words []Word
}

// ParseDocument builds a Document from the raw engine payload. Line and
// word indices are assigned in document order; words within a line are
// ordered left to right regardless of payload order.
func ParseDocument(raw []byte) (*Document, error) {
	var payload rawPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("parse ocr payload: %w", err)
	}

	var words []Word
	lineIndex := 0
	for _, block := range payload.Blocks {
		for _, line := range block.Lines {
			lineWords := make([]Word, 0, len(line.Words))
			for _, w := range line.Words {
				lineWords = append(lineWords, Word{
					Text:       w.Text,
					Confidence: w.Confidence,
					Box:        geometry.Rect{X: w.X, Y: w.Y, Width: w.Width, Height: w.Height},
					LineIndex:  lineIndex,
				})
			}
			sort.SliceStable(lineWords, func(i, j int) bool {
				return lineWords[i].Box.X < lineWords[j].Box.X
			})
			for i := range lineWords {
				lineWords[i].WordIndex = i
			}
			words = append(words, lineWords...)
			lineIndex++
		}
	}
	return &Document{words: words}, nil
}

// DocumentFromWords builds a Document from an already parsed word list,
// e.g. the cached form stored alongside the raw payload.
func DocumentFromWords(words []Word) *Document {
	return &Document{words: words}
}

// Words returns the cached word list. Callers must not mutate it.
func (d *Document) Words() []Word {
	return d.words
}

// MarshalWords serializes the word list for caching.
func (d *Document) MarshalWords() ([]byte, error) {
	return json.Marshal(d.words)
}

// UnmarshalWords restores a Document from its cached serialized form.
func UnmarshalWords(data []byte) (*Document, error) {
	var words []Word
	if err := json.Unmarshal(data, &words); err != nil {
		return nil, fmt.Errorf("parse cached words: %w", err)
	}
	return &Document{words: words}, nil
}
