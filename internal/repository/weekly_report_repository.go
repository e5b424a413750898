package repository

import (
	"gimeldaled_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

// WeeklyReportRepository 周报台账的数据访问。
// 学生侧只有插入和查询，创建后唯一允许的修改是教师批注
type WeeklyReportRepository struct {
	DB *gorm.DB
}

func NewWeeklyReportRepository(db *gorm.DB) *WeeklyReportRepository {
	return &WeeklyReportRepository{DB: db}
}

func (r *WeeklyReportRepository) Create(report *model.WeeklyReport) error {
	return r.DB.Create(report).Error
}

func (r *WeeklyReportRepository) FindByID(id string) (*model.WeeklyReport, error) {
	var report model.WeeklyReport
	err := r.DB.First(&report, "id = ?", id).Error
	return &report, err
}

// FindByStudentID 按学生查询全部周报，存储层不保证顺序，需要排序的调用方自行排序
func (r *WeeklyReportRepository) FindByStudentID(studentID string) ([]model.WeeklyReport, error) {
	var reports []model.WeeklyReport
	err := r.DB.Where("student_id = ?", studentID).Find(&reports).Error
	return reports, err
}

func (r *WeeklyReportRepository) UpdateInstructorNotes(id, notes string) error {
	return r.DB.Model(&model.WeeklyReport{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"instructor_notes_text": notes,
			"updated_at":            time.Now(),
		}).Error
}
