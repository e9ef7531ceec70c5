package repository

import (
	"time"

	"gorm.io/gorm"

	"auto_jobs_go/model"
)

// JobRecordRepository 岗位归档仓储接口
type JobRecordRepository interface {
	Exists(jobURL string) bool
	Save(record *model.JobRecordEntity) error
	UpdateDeliveryStatus(jobURL, status string) error
}

type jobRecordRepository struct {
	db *gorm.DB
}

func NewJobRecordRepository(db *gorm.DB) JobRecordRepository {
	return &jobRecordRepository{db: db}
}

func (r *jobRecordRepository) Exists(jobURL string) bool {
	var count int64
	r.db.Model(&model.JobRecordEntity{}).Where("job_url = ?", jobURL).Count(&count)
	return count > 0
}

func (r *jobRecordRepository) Save(record *model.JobRecordEntity) error {
	now := time.Now()
	record.CreatedAt = now
	record.UpdatedAt = now
	return r.db.Create(record).Error
}

func (r *jobRecordRepository) UpdateDeliveryStatus(jobURL, status string) error {
	return r.db.Model(&model.JobRecordEntity{}).
		Where("job_url = ?", jobURL).
		Updates(map[string]interface{}{
			"delivery_status": status,
			"updated_at":      time.Now(),
		}).Error
}
