package repository

import (
	"gimeldaled_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

// StudentRepository 处理学生档案的数据访问
type StudentRepository struct {
	DB *gorm.DB
}

func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{DB: db}
}

func (r *StudentRepository) Create(profile *model.StudentProfile) error {
	return r.DB.Create(profile).Error
}

func (r *StudentRepository) FindByUID(uid string) (*model.StudentProfile, error) {
	var profile model.StudentProfile
	err := r.DB.First(&profile, "uid = ?", uid).Error
	return &profile, err
}

// FindAll 返回全部学生档案，不保证顺序
func (r *StudentRepository) FindAll() ([]model.StudentProfile, error) {
	var profiles []model.StudentProfile
	err := r.DB.Find(&profiles).Error
	return profiles, err
}

// UpdateProject 合并更新：只触碰项目两个字段，
// 姓名、邮箱、指导教师绑定等其余字段保持不变
func (r *StudentRepository) UpdateProject(uid, title, proposalURL string) error {
	return r.DB.Model(&model.StudentProfile{}).
		Where("uid = ?", uid).
		Updates(map[string]interface{}{
			"project_title":        title,
			"project_proposal_url": proposalURL,
			"updated_at":           time.Now(),
		}).Error
}
