package service

import (
	"errors"
	"gimeldaled_backend/internal/config"
	"gimeldaled_backend/internal/model"
	"gimeldaled_backend/internal/util"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserStore 用户记录的存储接口，便于测试时替换为内存实现
type UserStore interface {
	Create(user *model.User) error
	FindByUID(uid string) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	FindAll() ([]model.User, error)
	UpdateRole(uid string, role model.UserRole) error
}

type AuthService struct {
	Users    UserStore
	Students StudentStore
	Cfg      *config.Config
}

func NewAuthService(users UserStore, students StudentStore, cfg *config.Config) *AuthService {
	return &AuthService{
		Users:    users,
		Students: students,
		Cfg:      cfg,
	}
}

// Register 注册新账号。引导管理员邮箱获得 admin 角色且不建学生档案，
// 其余邮箱一律注册为学生并创建空白档案（无指导教师、项目字段为空）。
// 两次写入之间没有事务，引用完整性靠应用层约定
func (s *AuthService) Register(firstName, lastName, email, password string) (*model.User, error) {
	_, err := s.Users.FindByEmail(email)
	if err == nil {
		return nil, util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := model.Student
	if strings.ToLower(email) == s.Cfg.Admin.BootstrapEmail {
		role = model.Admin
	}

	user := &model.User{
		Email:    email,
		Password: string(hashedPassword),
		Role:     role,
	}
	if err := s.Users.Create(user); err != nil {
		return nil, err
	}

	if role == model.Student {
		profile := &model.StudentProfile{
			UID:                user.ID,
			FirstName:          firstName,
			LastName:           lastName,
			Email:              email,
			InstructorID:       nil,
			ProjectTitle:       "",
			ProjectProposalURL: "",
		}
		if err := s.Students.Create(profile); err != nil {
			return nil, err
		}
	}

	return user, nil
}

func (s *AuthService) Login(email, password string) (string, error) {
	user, err := s.Users.FindByEmail(email)
	if err != nil {
		return "", errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", errors.New("invalid credentials")
	}

	return util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
}

// GetCurrentUser 把已签名的主体解析回 User 记录。
// 记录缺失或查询失败都返回 nil —— 对特权判定宁缺毋滥
func (s *AuthService) GetCurrentUser(c *gin.Context) *model.User {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		return nil
	}

	user, err := s.Users.FindByUID(claims.UID)
	if err != nil {
		return nil
	}
	return user
}
