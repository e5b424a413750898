package controller

import (
	"errors"
	"fmt"
	"gimeldaled_backend/internal/service"
	"gimeldaled_backend/internal/util"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
)

// TrackingController 学生自己的跟踪界面：项目信息、周报提交、未来计划
type TrackingController struct {
	StudentService *service.StudentService
	ReportService  *service.ReportService
	PlanService    *service.PlanService
	StorageService *service.StorageService
}

func NewTrackingController(studentService *service.StudentService, reportService *service.ReportService, planService *service.PlanService, storageService *service.StorageService) *TrackingController {
	return &TrackingController{
		StudentService: studentService,
		ReportService:  reportService,
		PlanService:    planService,
		StorageService: storageService,
	}
}

// GetMyProfile godoc
// @Summary 获取我的学生档案
// @Tags 跟踪
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.StudentProfile} "成功，未建档时 data 为 null"
// @Router /api/tracking/profile [get]
func (c *TrackingController) GetMyProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	profile, err := c.StudentService.GetProfile(claims.UID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, profile)
}

// UpdateProjectRequest 项目信息更新请求
// swagger:model UpdateProjectRequest
type UpdateProjectRequest struct {
	ProjectTitle       string `json:"projectTitle"`
	ProjectProposalURL string `json:"projectProposalUrl"`
}

// UpdateProject godoc
// @Summary 更新我的项目标题与计划书链接
// @Description 合并更新：姓名、邮箱、指导教师绑定等其余字段不受影响
// @Tags 跟踪
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body UpdateProjectRequest true "项目信息"
// @Success 200 {object} util.Response
// @Router /api/tracking/project [put]
func (c *TrackingController) UpdateProject(ctx *gin.Context) {
	var req UpdateProjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	if err := c.StudentService.UpdateProject(claims.UID, req.ProjectTitle, req.ProjectProposalURL); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// UploadProposal godoc
// @Summary 上传项目计划书文档
// @Description 文件存入对象存储，生成的链接合并写入档案的 projectProposalUrl
// @Tags 跟踪
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param file formData file true "计划书文件"
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/tracking/proposal/upload [post]
func (c *TrackingController) UploadProposal(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	profile, err := c.StudentService.GetProfile(claims.UID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if profile == nil {
		util.NotFound(ctx)
		return
	}

	filename := fmt.Sprintf("proposals/%s/%d%s", claims.UID, time.Now().UnixNano(), filepath.Ext(fileHeader.Filename))
	url, err := c.StorageService.Upload(ctx.Request.Context(), filename, file, fileHeader.Size, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	if err := c.StudentService.UpdateProject(claims.UID, profile.ProjectTitle, url); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"projectProposalUrl": url})
}

// CreateReportRequest 周报提交请求
// swagger:model CreateReportRequest
type CreateReportRequest struct {
	WeekStartDate     time.Time `json:"weekStartDate" binding:"required"`
	WeeklyStatusText  string    `json:"weeklyStatusText"`
	BlockersText      string    `json:"blockersText"`
	NextWeekDemoText  string    `json:"nextWeekDemoText"`
	NextWeekTasksText string    `json:"nextWeekTasksText"`
}

// CreateReport godoc
// @Summary 提交一份周报
// @Description 周报对学生只增不改；教师批注由服务端初始化为空
// @Tags 跟踪
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body CreateReportRequest true "周报内容"
// @Success 201 {object} util.Response{data=model.WeeklyReport} "创建成功"
// @Router /api/tracking/reports [post]
func (c *TrackingController) CreateReport(ctx *gin.Context) {
	var req CreateReportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	report, err := c.ReportService.Create(ctx.Request.Context(), claims.UID, service.WeeklyReportPayload{
		WeekStartDate:     req.WeekStartDate,
		WeeklyStatusText:  req.WeeklyStatusText,
		BlockersText:      req.BlockersText,
		NextWeekDemoText:  req.NextWeekDemoText,
		NextWeekTasksText: req.NextWeekTasksText,
	})
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, report)
}

// ListMyReports godoc
// @Summary 列出我的全部周报
// @Tags 跟踪
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.WeeklyReport}
// @Router /api/tracking/reports [get]
func (c *TrackingController) ListMyReports(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	reports, err := c.ReportService.ListForStudent(claims.UID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, reports)
}

// ListMyPlan godoc
// @Summary 列出我的未来计划（按周索引升序）
// @Tags 跟踪
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.FuturePlanItem}
// @Router /api/tracking/plan [get]
func (c *TrackingController) ListMyPlan(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	items, err := c.PlanService.ListForStudent(claims.UID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, items)
}

// AddPlanItem godoc
// @Summary 追加下一周的计划条目
// @Description 周索引自动取现有最大值加一；最多 20 条，达到上限时返回 409 且不发生写入
// @Tags 跟踪
// @Produce json
// @Security ApiKeyAuth
// @Success 201 {object} util.Response{data=model.FuturePlanItem} "创建成功"
// @Failure 409 {object} util.Response "已达上限"
// @Router /api/tracking/plan [post]
func (c *TrackingController) AddPlanItem(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	item, err := c.PlanService.AddNext(claims.UID)
	if err != nil {
		if errors.Is(err, util.ErrPlanLimitReached) {
			util.Error(ctx, 409, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, item)
}

// UpdatePlanItemRequest 计划条目更新请求，描述和截止日期整体替换
// swagger:model UpdatePlanItemRequest
type UpdatePlanItemRequest struct {
	Description string     `json:"description"`
	TillDate    *time.Time `json:"tillDate"`
}

// UpdatePlanItem godoc
// @Summary 更新计划条目的描述与截止日期
// @Tags 跟踪
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "条目ID"
// @Param body body UpdatePlanItemRequest true "更新内容"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response "不是条目拥有者"
// @Failure 404 {object} util.Response "条目不存在"
// @Router /api/tracking/plan/{id} [put]
func (c *TrackingController) UpdatePlanItem(ctx *gin.Context) {
	var req UpdatePlanItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	err := c.PlanService.UpdateDescription(claims.UID, ctx.Param("id"), req.Description, req.TillDate)
	if err != nil {
		c.respondPlanError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// DeletePlanItem godoc
// @Summary 删除计划条目
// @Tags 跟踪
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "条目ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response "不是条目拥有者"
// @Failure 404 {object} util.Response "条目不存在"
// @Router /api/tracking/plan/{id} [delete]
func (c *TrackingController) DeletePlanItem(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if err := c.PlanService.Remove(claims.UID, ctx.Param("id")); err != nil {
		c.respondPlanError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

func (c *TrackingController) respondPlanError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrPlanItemNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}
