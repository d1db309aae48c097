package repositories

import (
	"github.com/AbdellahRAISSOUNI/rjilat/internal/models"
	"gorm.io/gorm"
)

// AdminLogRepository defines the interface for the moderation audit log.
// Entries are append-only; there is no update or delete.
type AdminLogRepository interface {
	Create(entry *models.AdminActionLog) error
	ListLogs(action, adminID string, page, limit int) ([]models.AdminActionLog, int64, error)
}

// PostgresAdminLogRepository implements AdminLogRepository for PostgreSQL
type PostgresAdminLogRepository struct {
	db *gorm.DB
}

// NewPostgresAdminLogRepository creates a new PostgresAdminLogRepository
func NewPostgresAdminLogRepository(db *gorm.DB) *PostgresAdminLogRepository {
	return &PostgresAdminLogRepository{db: db}
}

// Create appends a new log entry
func (r *PostgresAdminLogRepository) Create(entry *models.AdminActionLog) error {
	return r.db.Create(entry).Error
}

// ListLogs returns a page of log entries, newest first, optionally filtered
// by action tag and admin id.
func (r *PostgresAdminLogRepository) ListLogs(action, adminID string, page, limit int) ([]models.AdminActionLog, int64, error) {
	query := r.db.Model(&models.AdminActionLog{})
	if action != "" {
		query = query.Where("action = ?", action)
	}
	if adminID != "" {
		query = query.Where("admin_id = ?", adminID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.AdminActionLog
	offset := (page - 1) * limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
