package repository

import (
	"gimeldaled_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

// FuturePlanRepository 处理未来计划条目的数据访问
type FuturePlanRepository struct {
	DB *gorm.DB
}

func NewFuturePlanRepository(db *gorm.DB) *FuturePlanRepository {
	return &FuturePlanRepository{DB: db}
}

func (r *FuturePlanRepository) Create(item *model.FuturePlanItem) error {
	return r.DB.Create(item).Error
}

func (r *FuturePlanRepository) FindByID(id string) (*model.FuturePlanItem, error) {
	var item model.FuturePlanItem
	err := r.DB.First(&item, "id = ?", id).Error
	return &item, err
}

// FindByStudentID 按周索引升序返回学生的计划条目
func (r *FuturePlanRepository) FindByStudentID(studentID string) ([]model.FuturePlanItem, error) {
	var items []model.FuturePlanItem
	err := r.DB.Where("student_id = ?", studentID).Order("week_index").Find(&items).Error
	return items, err
}

// MaxWeekIndex 返回学生现有的最大周索引，没有条目时为 0
func (r *FuturePlanRepository) MaxWeekIndex(studentID string) (int, error) {
	var max int
	err := r.DB.Model(&model.FuturePlanItem{}).
		Where("student_id = ?", studentID).
		Select("COALESCE(MAX(week_index), 0)").
		Scan(&max).Error
	return max, err
}

// UpdateDescription 描述和截止日期整体替换，二者总是一起写入
func (r *FuturePlanRepository) UpdateDescription(id, description string, tillDate *time.Time) error {
	return r.DB.Model(&model.FuturePlanItem{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"description": description,
			"till_date":   tillDate,
			"updated_at":  time.Now(),
		}).Error
}

func (r *FuturePlanRepository) Delete(id string) error {
	return r.DB.Delete(&model.FuturePlanItem{}, "id = ?", id).Error
}
