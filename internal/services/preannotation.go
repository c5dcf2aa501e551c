package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"gorm.io/gorm"

	"github.com/labelforge/labelforge/backend/internal/config"
	"github.com/labelforge/labelforge/backend/internal/models"
	"github.com/labelforge/labelforge/backend/pkg/logger"
)

// PreannotationService asks a language model for suggested field values
// for a labeling item. Suggestions are advisory: they prefill the
// annotation form and never change item state on their own.
type PreannotationService struct {
	db     *gorm.DB
	config *config.PreannotationConfig
}

func NewPreannotationService(db *gorm.DB, cfg *config.PreannotationConfig) *PreannotationService {
	return &PreannotationService{db: db, config: cfg}
}

func (s *PreannotationService) IsEnabled() bool {
	return s.config.Enabled && s.config.APIKey != ""
}

type Suggestion struct {
	Fields map[string]string `json:"fields"`
	Model  string            `json:"model"`
}

// Suggest requests field value suggestions for the item. The prompt
// carries the project guidelines, the reviewable field list and the
// item payload; the model must answer with a JSON object keyed by
// field name.
func (s *PreannotationService) Suggest(ctx context.Context, itemID uint) (*Suggestion, error) {
	if !s.IsEnabled() {
		return nil, fmt.Errorf("preannotation is not enabled")
	}

	var item models.LabelingItem
	if err := s.db.First(&item, itemID).Error; err != nil {
		return nil, err
	}

	var project models.Project
	if err := s.db.First(&project, item.ProjectID).Error; err != nil {
		return nil, err
	}

	prompt := buildSuggestPrompt(&project, &item)

	clientConfig := openai.DefaultConfig(s.config.APIKey)
	if s.config.BaseURL != "" {
		clientConfig.BaseURL = s.config.BaseURL
	}
	client := openai.NewClientWithConfig(clientConfig)

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: 0.2,
	})
	if err != nil {
		logger.Infof("[Preannotation] API error: %v", err)
		return nil, fmt.Errorf("preannotation API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from model")
	}

	content := resp.Choices[0].Message.Content
	fields, err := parseSuggestedFields(content)
	if err != nil {
		return nil, fmt.Errorf("unparsable suggestion: %w", err)
	}

	return &Suggestion{Fields: fields, Model: s.config.Model}, nil
}

func buildSuggestPrompt(project *models.Project, item *models.LabelingItem) string {
	var b strings.Builder
	b.WriteString("You are assisting with data labeling. Suggest values for the fields below.\n\n")
	if project.Guidelines != "" {
		b.WriteString("Labeling guidelines:\n")
		b.WriteString(project.Guidelines)
		b.WriteString("\n\n")
	}
	if project.ReviewableFields != "" {
		b.WriteString("Fields: ")
		b.WriteString(project.ReviewableFields)
		b.WriteString("\n\n")
	}
	b.WriteString("Item payload:\n")
	b.WriteString(item.Payload)
	b.WriteString("\n\nAnswer with a single JSON object mapping field names to suggested string values. No prose.")
	return b.String()
}

// parseSuggestedFields extracts the JSON object from a model answer,
// tolerating surrounding prose or code fences.
func parseSuggestedFields(content string) (map[string]string, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("no JSON object in response")
	}

	var fields map[string]string
	if err := json.Unmarshal([]byte(content[start:end+1]), &fields); err != nil {
		return nil, err
	}
	return fields, nil
}
