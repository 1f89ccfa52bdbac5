package storage

import (
	"context"
	"fmt"
	"time"

	"dispatch/models"

	"github.com/lib/pq"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ActivityStore records audit entries for every mutating operation.
type ActivityStore interface {
	Record(ctx context.Context, entry models.ActivityEntry) error
	List(ctx context.Context, query ActivityQuery) ([]models.ActivityLogGorm, int64, error)
}

type ActivityQuery struct {
	EventContext string
	UserName     string
	Page         int
	PageSize     int
}

// Normalise applies the default page and page size.
func (q ActivityQuery) Normalise() ActivityQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 || q.PageSize > 200 {
		q.PageSize = 50
	}
	return q
}

type gormActivityStore struct {
	db *gorm.DB
}

func NewGormActivityStore(db *gorm.DB) ActivityStore {
	return &gormActivityStore{db: db}
}

func (s *gormActivityStore) Record(ctx context.Context, entry models.ActivityEntry) error {
	row := models.ActivityLogGorm{
		CreatedAt:      time.Now(),
		UserName:       entry.UserName,
		UserID:         entry.UserID,
		HostName:       entry.HostName,
		EventContext:   entry.EventContext,
		IPAddress:      entry.IPAddress,
		Description:    entry.Description,
		EventName:      entry.EventName,
		SheetName:      entry.SheetName,
		RowIndex:       entry.RowIndex,
		ChangedColumns: pq.StringArray(entry.ChangedColumns),
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to save activity log: %w", err)
	}
	return nil
}

func (s *gormActivityStore) List(ctx context.Context, query ActivityQuery) ([]models.ActivityLogGorm, int64, error) {
	query = query.Normalise()
	tx := s.db.WithContext(ctx).Model(&models.ActivityLogGorm{})
	if query.EventContext != "" {
		tx = tx.Where("event_context = ?", query.EventContext)
	}
	if query.UserName != "" {
		tx = tx.Where("user_name ILIKE ?", "%"+query.UserName+"%")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var logs []models.ActivityLogGorm
	err := tx.Order("created_at DESC").
		Offset((query.Page - 1) * query.PageSize).
		Limit(query.PageSize).
		Find(&logs).Error
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

// logActivityStore only writes entries to the application log.
type logActivityStore struct{}

func NewLogActivityStore() ActivityStore {
	return logActivityStore{}
}

func (logActivityStore) Record(_ context.Context, entry models.ActivityEntry) error {
	log.WithFields(log.Fields{
		"context": entry.EventContext,
		"event":   entry.EventName,
		"user":    entry.UserName,
		"ip":      entry.IPAddress,
		"sheet":   entry.SheetName,
		"row":     entry.RowIndex,
		"columns": entry.ChangedColumns,
	}).Info(entry.Description)
	return nil
}

func (logActivityStore) List(context.Context, ActivityQuery) ([]models.ActivityLogGorm, int64, error) {
	return []models.ActivityLogGorm{}, 0, nil
}
