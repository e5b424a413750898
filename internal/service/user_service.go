package service

import (
	"errors"
	"gimeldaled_backend/internal/model"
	"gimeldaled_backend/internal/util"

	"gorm.io/gorm"
)

// UserService 权限管理界面的业务逻辑（仅限引导管理员使用）
type UserService struct {
	Users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{Users: users}
}

// ListWithRoles 返回全部用户及其角色
func (s *UserService) ListWithRoles() ([]model.User, error) {
	return s.Users.FindAll()
}

// UpdateRole 修改用户角色。角色必须是枚举之一；用户不存在返回 (nil, nil) 语义之外的显式错误，
// 因为调用方明确指定了目标。
// 路由层按 Token 里的角色放行，新角色要等对方下次登录签发 Token 才生效；
// 需要即时生效时改走 AuthService.GetCurrentUser 按请求查库
func (s *UserService) UpdateRole(uid string, role model.UserRole) error {
	if !model.ValidRole(role) {
		return util.ErrInvalidRole
	}

	_, err := s.Users.FindByUID(uid)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return gorm.ErrRecordNotFound
	}
	if err != nil {
		return err
	}

	return s.Users.UpdateRole(uid, role)
}
