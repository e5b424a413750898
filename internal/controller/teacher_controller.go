package controller

import (
	"errors"
	"gimeldaled_backend/internal/service"
	"gimeldaled_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// TeacherController 教师端：学生总览、周报查看与批注、计划查看
type TeacherController struct {
	OverviewService *service.OverviewService
	StudentService  *service.StudentService
	ReportService   *service.ReportService
	PlanService     *service.PlanService
}

func NewTeacherController(overviewService *service.OverviewService, studentService *service.StudentService, reportService *service.ReportService, planService *service.PlanService) *TeacherController {
	return &TeacherController{
		OverviewService: overviewService,
		StudentService:  studentService,
		ReportService:   reportService,
		PlanService:     planService,
	}
}

// ListStudents godoc
// @Summary 学生总览
// @Description 每行包含学生档案、最近周报和推导状态，附带本周缺报人数
// @Tags 教师
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/teacher/students [get]
func (c *TeacherController) ListStudents(ctx *gin.Context) {
	rows, missing, err := c.OverviewService.StudentRows(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"students":        rows,
		"missingThisWeek": missing,
	})
}

// GetStudentReports godoc
// @Summary 查看指定学生的全部周报
// @Tags 教师
// @Produce json
// @Security ApiKeyAuth
// @Param uid path string true "学生UID"
// @Success 200 {object} util.Response{data=[]model.WeeklyReport}
// @Router /api/teacher/students/{uid}/reports [get]
func (c *TeacherController) GetStudentReports(ctx *gin.Context) {
	reports, err := c.ReportService.ListForStudent(ctx.Param("uid"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, reports)
}

// GetStudentPlan godoc
// @Summary 查看指定学生的未来计划
// @Tags 教师
// @Produce json
// @Security ApiKeyAuth
// @Param uid path string true "学生UID"
// @Success 200 {object} util.Response{data=[]model.FuturePlanItem}
// @Router /api/teacher/students/{uid}/plan [get]
func (c *TeacherController) GetStudentPlan(ctx *gin.Context) {
	items, err := c.PlanService.ListForStudent(ctx.Param("uid"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, items)
}

// UpdateNotesRequest 教师批注更新请求
// swagger:model UpdateNotesRequest
type UpdateNotesRequest struct {
	InstructorNotesText string `json:"instructorNotesText"`
}

// UpdateInstructorNotes godoc
// @Summary 更新周报的教师批注
// @Description 批注是周报创建后唯一可修改的字段
// @Tags 教师
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "周报ID"
// @Param body body UpdateNotesRequest true "批注内容"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "周报不存在"
// @Router /api/teacher/reports/{id}/notes [put]
func (c *TeacherController) UpdateInstructorNotes(ctx *gin.Context) {
	var req UpdateNotesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	err := c.ReportService.SetInstructorNotes(ctx.Request.Context(), ctx.Param("id"), req.InstructorNotesText)
	if err != nil {
		if errors.Is(err, util.ErrReportNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}
