package model

import (
	"time"
)

// JobRecordEntity 岗位归档实体类，按岗位链接去重
type JobRecordEntity struct {
	ID             int64     `gorm:"primaryKey;autoIncrement;column:id"`
	SiteName       string    `gorm:"column:site_name"`
	JobURL         string    `gorm:"column:job_url;size:512;uniqueIndex"`
	JobName        string    `gorm:"column:job_name"`
	CompanyName    string    `gorm:"column:company_name"`
	JobArea        string    `gorm:"column:job_area"`
	Salary         string    `gorm:"column:salary"`
	HrName         string    `gorm:"column:hr_name"`
	HrActiveStatus string    `gorm:"column:hr_active_status"`
	JobDescription string    `gorm:"column:job_description;type:text"`
	DeliveryStatus string    `gorm:"column:delivery_status"` // 未投递 / 已过滤 / 已投递 / 投递失败
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (JobRecordEntity) TableName() string {
	return "job_record"
}

// NewJobRecord 由运行期Job构造归档记录
func NewJobRecord(j *Job) *JobRecordEntity {
	return &JobRecordEntity{
		SiteName:       j.SiteName,
		JobURL:         j.Href,
		JobName:        j.JobName,
		CompanyName:    j.CompanyName,
		JobArea:        j.JobArea,
		Salary:         j.Salary,
		HrName:         j.Recruiter,
		HrActiveStatus: j.HRActiveTime,
		JobDescription: j.JobInfo,
		DeliveryStatus: j.Status.String(),
	}
}
