package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/labelforge/labelforge/backend/internal/canvas/geometry"
	"github.com/labelforge/labelforge/backend/internal/canvas/ocr"
	"github.com/labelforge/labelforge/backend/internal/models"
	"github.com/labelforge/labelforge/backend/pkg/logger"
)

// OCRService ingests OCR payloads for labeling items and serves snap
// and text queries against the cached word index.
type OCRService struct {
	db      *gorm.DB
	snapCfg ocr.SnapConfig
	queue   TaskQueue
}

func NewOCRService(db *gorm.DB, snapCfg ocr.SnapConfig) *OCRService {
	return &OCRService{db: db, snapCfg: snapCfg}
}

// SetQueue wires the task queue used for async ingest. Without a queue
// ingest parsing runs inline.
func (s *OCRService) SetQueue(queue TaskQueue) {
	s.queue = queue
}

// Ingest stores a raw OCR payload for an item and schedules parsing
// through the task queue. Without a queue it parses inline before
// returning.
func (s *OCRService) Ingest(itemID uint, rawPayload []byte) (*models.OCRDocument, error) {
	var item models.LabelingItem
	if err := s.db.First(&item, itemID).Error; err != nil {
		return nil, err
	}

	doc := models.OCRDocument{
		LabelingItemID: item.ID,
		Status:         models.OCRStatusPending,
		RawPayload:     string(rawPayload),
	}

	// Replace any previous document for the item.
	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("labeling_item_id = ?", item.ID).Delete(&models.OCRDocument{}).Error; err != nil {
			return err
		}
		return tx.Create(&doc).Error
	}); err != nil {
		return nil, err
	}

	if s.queue != nil {
		if err := s.queue.Enqueue(&OCRIngestTask{DocumentID: doc.ID}); err != nil {
			logger.Error().Err(err).Uint("document_id", doc.ID).Msg("failed to enqueue OCR ingest, parsing inline")
			if err := s.ProcessDocument(doc.ID); err != nil {
				return nil, err
			}
		}
	} else {
		if err := s.ProcessDocument(doc.ID); err != nil {
			return nil, err
		}
	}

	if err := s.db.First(&doc, doc.ID).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

// ProcessIngestTask is the task queue processor for OCR ingest.
func (s *OCRService) ProcessIngestTask(ctx context.Context, task *OCRIngestTask) error {
	return s.ProcessDocument(task.DocumentID)
}

// ProcessDocument parses a stored raw payload and caches the flattened
// word index. Parse failures mark the document failed, not the call.
func (s *OCRService) ProcessDocument(documentID uint) error {
	var doc models.OCRDocument
	if err := s.db.First(&doc, documentID).Error; err != nil {
		return err
	}

	parsed, err := ocr.ParseDocument([]byte(doc.RawPayload))
	if err != nil {
		s.db.Model(&doc).Updates(map[string]interface{}{
			"status":        models.OCRStatusFailed,
			"error_message": err.Error(),
		})
		logger.Warn().Err(err).Uint("document_id", doc.ID).Msg("OCR payload parse failed")
		return nil
	}

	cached, err := parsed.MarshalWords()
	if err != nil {
		return err
	}

	now := time.Now()
	return s.db.Model(&doc).Updates(map[string]interface{}{
		"status":        models.OCRStatusReady,
		"words":         string(cached),
		"word_count":    len(parsed.Words()),
		"error_message": "",
		"ingested_at":   now,
	}).Error
}

// Document loads an item's OCR document into doc.
func (s *OCRService) Document(itemID uint, doc *models.OCRDocument) error {
	return s.db.Where("labeling_item_id = ?", itemID).First(doc).Error
}

// Words loads the cached word index of an item's OCR document.
func (s *OCRService) Words(itemID uint) ([]ocr.Word, error) {
	var doc models.OCRDocument
	if err := s.db.Where("labeling_item_id = ?", itemID).First(&doc).Error; err != nil {
		return nil, err
	}
	if doc.Status != models.OCRStatusReady {
		return nil, errors.New("OCR document is not ready")
	}

	parsed, err := ocr.UnmarshalWords([]byte(doc.Words))
	if err != nil {
		return nil, err
	}
	return parsed.Words(), nil
}

// SnapRequest is a snap query over an item's OCR words. Coordinates are
// normalized to the image (0..1).
type SnapRequest struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width" binding:"required"`
	Height float64 `json:"height" binding:"required"`
}

type SnapResponse struct {
	Box   geometry.Rect `json:"box"`
	Words []ocr.Word    `json:"words"`
	Text  string        `json:"text"`
}

// Snap resolves a drawn rectangle against the item's OCR words. A nil
// response means no words were close enough; the caller keeps the drawn
// rectangle as-is.
func (s *OCRService) Snap(itemID uint, req *SnapRequest) (*SnapResponse, error) {
	words, err := s.Words(itemID)
	if err != nil {
		return nil, err
	}

	rect := geometry.Rect{X: req.X, Y: req.Y, Width: req.Width, Height: req.Height}
	result := ocr.Snap(rect, words, s.snapCfg)
	if result == nil {
		return nil, nil
	}

	return &SnapResponse{
		Box:   result.Box,
		Words: result.Words,
		Text:  ocr.TextInRect(result.Box, words, s.snapCfg.MinIntersectionPercent),
	}, nil
}

// Text returns the reading-order text inside a rectangle of the item's
// OCR words.
func (s *OCRService) Text(itemID uint, req *SnapRequest) (string, error) {
	words, err := s.Words(itemID)
	if err != nil {
		return "", err
	}

	rect := geometry.Rect{X: req.X, Y: req.Y, Width: req.Width, Height: req.Height}
	return ocr.TextInRect(rect, words, s.snapCfg.MinIntersectionPercent), nil
}
