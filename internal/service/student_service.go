package service

import (
	"errors"
	"gimeldaled_backend/internal/model"

	"gorm.io/gorm"
)

// StudentStore 学生档案的存储接口
type StudentStore interface {
	Create(profile *model.StudentProfile) error
	FindByUID(uid string) (*model.StudentProfile, error)
	FindAll() ([]model.StudentProfile, error)
	UpdateProject(uid, title, proposalURL string) error
}

// StudentService 处理学生档案的业务逻辑。
// 所有权（学生只能改自己的档案）由调用方从 Token 中取 uid 保证
type StudentService struct {
	Students StudentStore
}

func NewStudentService(students StudentStore) *StudentService {
	return &StudentService{Students: students}
}

// GetProfile 档案不存在返回 (nil, nil)：刚注册还没建档是正常稳态，不是错误
func (s *StudentService) GetProfile(uid string) (*model.StudentProfile, error) {
	profile, err := s.Students.FindByUID(uid)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *StudentService) ListAll() ([]model.StudentProfile, error) {
	return s.Students.FindAll()
}

// UpdateProject 合并更新项目标题和计划书链接，其余字段不动
func (s *StudentService) UpdateProject(uid, title, proposalURL string) error {
	return s.Students.UpdateProject(uid, title, proposalURL)
}
