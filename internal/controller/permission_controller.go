package controller

import (
	"errors"
	"gimeldaled_backend/internal/model"
	"gimeldaled_backend/internal/service"
	"gimeldaled_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PermissionController 用户角色管理，仅对引导管理员开放
type PermissionController struct {
	UserService *service.UserService
}

func NewPermissionController(userService *service.UserService) *PermissionController {
	return &PermissionController{UserService: userService}
}

// GetUsers godoc
// @Summary 列出全部用户及其角色
// @Tags 权限
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.User}
// @Router /api/admin/users [get]
func (c *PermissionController) GetUsers(ctx *gin.Context) {
	users, err := c.UserService.ListWithRoles()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, users)
}

// UpdateRoleRequest 角色更新请求
// swagger:model UpdateRoleRequest
type UpdateRoleRequest struct {
	Role model.UserRole `json:"role" binding:"required,oneof=admin teacher student"`
}

// UpdateUserRole godoc
// @Summary 修改用户角色
// @Tags 权限
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param uid path string true "用户UID"
// @Param body body UpdateRoleRequest true "新角色"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "非法角色"
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/admin/users/{uid}/role [put]
func (c *PermissionController) UpdateUserRole(ctx *gin.Context) {
	var req UpdateRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	err := c.UserService.UpdateRole(ctx.Param("uid"), req.Role)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidRole):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, gorm.ErrRecordNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}
