package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/labelforge/labelforge/backend/internal/config"
	"github.com/labelforge/labelforge/backend/internal/models"
	"github.com/labelforge/labelforge/backend/pkg/logger"
)

// DigestService builds the daily activity digest and runs its cron
// schedule. Digests cover labeling and review throughput across all
// projects and are generated on business days only.
type DigestService struct {
	db             *gorm.DB
	cfg            *config.DigestConfig
	holidaySvc     *HolidayService
	cronScheduler  *cron.Cron
	currentEntryID cron.EntryID
}

func NewDigestService(db *gorm.DB, cfg *config.DigestConfig) *DigestService {
	return &DigestService{
		db:         db,
		cfg:        cfg,
		holidaySvc: NewHolidayService(),
	}
}

type digestStats struct {
	TotalProjects    int
	TotalItems       int
	SubmittedCount   int
	ApprovedCount    int
	RejectedCount    int
	RevisionCount    int
	ActiveAnnotators int
	ActiveReviewers  int
	FeedbackCount    int
	ResolvedCount    int
}

type ProjectStat struct {
	Name      string `json:"name"`
	ItemCount int    `json:"item_count"`
}

type AnnotatorStat struct {
	Name      string `json:"name"`
	ItemCount int    `json:"item_count"`
}

func (s *DigestService) StartScheduler() {
	if !s.cfg.Enabled {
		logger.Info().Msg("digest scheduler disabled")
		return
	}

	s.cronScheduler = cron.New()
	s.updateSchedule()
	s.cronScheduler.Start()
	logger.Info().Msg("digest scheduler started")
}

func (s *DigestService) StopScheduler() {
	if s.cronScheduler != nil {
		s.cronScheduler.Stop()
	}
}

func (s *DigestService) updateSchedule() {
	if s.currentEntryID != 0 {
		s.cronScheduler.Remove(s.currentEntryID)
	}

	parts := strings.Split(s.cfg.Time, ":")
	hour := "18"
	minute := "0"
	if len(parts) == 2 {
		hour = parts[0]
		minute = parts[1]
	}

	cronExpr := fmt.Sprintf("%s %s * * *", minute, hour)

	entryID, err := s.cronScheduler.AddFunc(cronExpr, func() {
		s.RunScheduled()
	})
	if err != nil {
		logger.Errorf("failed to add digest cron job: %v", err)
		return
	}

	s.currentEntryID = entryID
	logger.Infof("digest scheduled at %s (cron: %s)", s.cfg.Time, cronExpr)
}

// RunScheduled generates today's digest unless today is a weekend or
// public holiday in the configured country.
func (s *DigestService) RunScheduled() {
	now := time.Now()
	if !s.holidaySvc.IsWorkday(now, s.cfg.Country) {
		logger.Infof("skipping digest: %s is not a business day in %s", now.Format("2006-01-02"), s.cfg.Country)
		return
	}

	if _, err := s.GenerateReport(now); err != nil {
		logger.Error().Err(err).Msg("digest generation failed")
	}
}

// GenerateReport builds (or rebuilds) the digest for the given day.
func (s *DigestService) GenerateReport(day time.Time) (*models.DigestReport, error) {
	startOfDay := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)

	stats := s.collectStats(startOfDay, endOfDay)
	topProjects := s.topProjects(startOfDay, endOfDay, 5)
	topAnnotators := s.topAnnotators(startOfDay, endOfDay, 5)

	topProjectsJSON, _ := json.Marshal(topProjects)
	topAnnotatorsJSON, _ := json.Marshal(topAnnotators)

	report := &models.DigestReport{
		ReportDate:       startOfDay,
		ReportType:       "daily",
		TotalProjects:    stats.TotalProjects,
		TotalItems:       stats.TotalItems,
		SubmittedCount:   stats.SubmittedCount,
		ApprovedCount:    stats.ApprovedCount,
		RejectedCount:    stats.RejectedCount,
		RevisionCount:    stats.RevisionCount,
		ActiveAnnotators: stats.ActiveAnnotators,
		ActiveReviewers:  stats.ActiveReviewers,
		FeedbackCount:    stats.FeedbackCount,
		ResolvedCount:    stats.ResolvedCount,
		TopProjects:      string(topProjectsJSON),
		TopAnnotators:    string(topAnnotatorsJSON),
	}

	var existing models.DigestReport
	if err := s.db.Where("report_date = ?", startOfDay).First(&existing).Error; err == nil {
		report.ID = existing.ID
		report.CreatedAt = existing.CreatedAt
		if err := s.db.Save(report).Error; err != nil {
			return nil, err
		}
		logger.Infof("updated digest report (ID: %d)", report.ID)
	} else {
		if err := s.db.Create(report).Error; err != nil {
			return nil, err
		}
		logger.Infof("created digest report (ID: %d)", report.ID)
	}

	return report, nil
}

// List returns stored digest reports, newest first.
func (s *DigestService) List(page, pageSize int) ([]models.DigestReport, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var reports []models.DigestReport
	var total int64

	s.db.Model(&models.DigestReport{}).Count(&total)
	if err := s.db.Order("report_date DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&reports).Error; err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

// Get returns a stored digest report by ID.
func (s *DigestService) Get(id uint) (*models.DigestReport, error) {
	var report models.DigestReport
	if err := s.db.First(&report, id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (s *DigestService) collectStats(startTime, endTime time.Time) digestStats {
	var stats digestStats

	var totalProjects int64
	s.db.Model(&models.LabelingItem{}).
		Where("updated_at BETWEEN ? AND ?", startTime, endTime).
		Distinct("project_id").
		Count(&totalProjects)
	stats.TotalProjects = int(totalProjects)

	var totalItems int64
	s.db.Model(&models.LabelingItem{}).
		Where("updated_at BETWEEN ? AND ?", startTime, endTime).
		Count(&totalItems)
	stats.TotalItems = int(totalItems)

	countByStatus := func(status string) int {
		var n int64
		s.db.Model(&models.LabelingItem{}).
			Where("status = ? AND updated_at BETWEEN ? AND ?", status, startTime, endTime).
			Count(&n)
		return int(n)
	}
	stats.SubmittedCount = countByStatus(models.ItemStatusSubmitted)
	stats.ApprovedCount = countByStatus(models.ItemStatusApproved)
	stats.RejectedCount = countByStatus(models.ItemStatusRejected)
	stats.RevisionCount = countByStatus(models.ItemStatusRevision)

	var activeAnnotators int64
	s.db.Model(&models.LabelingItem{}).
		Where("submitted_at BETWEEN ? AND ?", startTime, endTime).
		Distinct("assignee_id").
		Count(&activeAnnotators)
	stats.ActiveAnnotators = int(activeAnnotators)

	var activeReviewers int64
	s.db.Model(&models.ReviewDecision{}).
		Where("created_at BETWEEN ? AND ?", startTime, endTime).
		Distinct("reviewer_id").
		Count(&activeReviewers)
	stats.ActiveReviewers = int(activeReviewers)

	var feedbackCount int64
	s.db.Model(&models.FieldFeedback{}).
		Where("reviewed_at BETWEEN ? AND ?", startTime, endTime).
		Count(&feedbackCount)
	stats.FeedbackCount = int(feedbackCount)

	var resolvedCount int64
	s.db.Model(&models.FieldFeedback{}).
		Where("resolved = ? AND resolved_at BETWEEN ? AND ?", true, startTime, endTime).
		Count(&resolvedCount)
	stats.ResolvedCount = int(resolvedCount)

	return stats
}

func (s *DigestService) topProjects(startTime, endTime time.Time, limit int) []ProjectStat {
	var results []struct {
		Name      string
		ItemCount int
	}
	s.db.Model(&models.LabelingItem{}).
		Select("projects.name AS name, COUNT(labeling_items.id) AS item_count").
		Joins("JOIN projects ON projects.id = labeling_items.project_id").
		Where("labeling_items.updated_at BETWEEN ? AND ?", startTime, endTime).
		Group("projects.name").
		Order("item_count DESC").
		Limit(limit).
		Scan(&results)

	stats := make([]ProjectStat, 0, len(results))
	for _, r := range results {
		stats = append(stats, ProjectStat{Name: r.Name, ItemCount: r.ItemCount})
	}
	return stats
}

func (s *DigestService) topAnnotators(startTime, endTime time.Time, limit int) []AnnotatorStat {
	var results []struct {
		Name      string
		ItemCount int
	}
	s.db.Model(&models.LabelingItem{}).
		Select("users.username AS name, COUNT(labeling_items.id) AS item_count").
		Joins("JOIN users ON users.id = labeling_items.assignee_id").
		Where("labeling_items.submitted_at BETWEEN ? AND ?", startTime, endTime).
		Group("users.username").
		Order("item_count DESC").
		Limit(limit).
		Scan(&results)

	stats := make([]AnnotatorStat, 0, len(results))
	for _, r := range results {
		stats = append(stats, AnnotatorStat{Name: r.Name, ItemCount: r.ItemCount})
	}
	return stats
}
