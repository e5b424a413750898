package repository

import (
	"gimeldaled_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByUID(uid string) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, "id = ?", uid).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	return &user, err
}

// FindAll 返回全部用户（权限管理表格，规模很小）
func (r *UserRepository) FindAll() ([]model.User, error) {
	var users []model.User
	err := r.DB.Find(&users).Error
	return users, err
}

func (r *UserRepository) UpdateRole(uid string, role model.UserRole) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", uid).
		Updates(map[string]interface{}{
			"role":       role,
			"updated_at": time.Now(),
		}).Error
}

func (r *UserRepository) UpdateLastSeen(uid string) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", uid).
		Update("last_seen", time.Now()).
		Error
}
