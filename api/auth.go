package api

import (
	"strconv"

	"campus/config"
	"campus/database"
	"campus/middleware"
	"campus/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler 管理员认证与账号管理
type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6,max=64"`
}

type UserCreateRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6,max=64"`
	Email    string `json:"email" binding:"omitempty,email,max=100"`
	IsAdmin  bool   `json:"is_admin"`
}

// Login 管理员登录
// @Summary 管理员登录
// @Description 用户名密码登录，返回 JWT token
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body LoginRequest true "登录信息"
// @Success 200 {object} Response "登录成功"
// @Failure 401 {object} Response "用户名或密码错误"
// @Failure 403 {object} Response "账号已锁定"
// @Router /api/v1/admin/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	var user models.User
	if err := database.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		Unauthorized(c, "用户名或密码错误")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		Unauthorized(c, "用户名或密码错误")
		return
	}
	if user.Status == models.UserStatusLocked {
		Forbidden(c, "账号已锁定，请联系管理员")
		return
	}

	cfg := config.GetConfig()
	token, err := middleware.GenerateToken(user.ID, user.Username, cfg.JWT.ExpireTime)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "登录失败"))
		return
	}
	SuccessWithMessage(c, "登录成功", LoginResponse{Token: token, User: user})
}

// GetProfile 当前登录用户信息
// @Summary 获取当前用户信息
// @Tags 认证
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response "获取成功"
// @Failure 401 {object} Response "未登录"
// @Router /api/v1/admin/profile [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		Unauthorized(c, "用户不存在")
		return
	}
	Success(c, user)
}

// ChangePassword 修改自己的密码
// @Summary 修改密码
// @Tags 认证
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ChangePasswordRequest true "新旧密码"
// @Success 200 {object} Response "修改成功"
// @Failure 400 {object} Response "原密码错误"
// @Router /api/v1/admin/password [put]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	userID := middleware.GetCurrentUserID(c)
	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		Unauthorized(c, "用户不存在")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
		BadRequest(c, "原密码错误")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "修改失败"))
		return
	}
	if err := database.DB.Model(&user).Update("password", string(hashed)).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "修改失败"))
		return
	}
	SuccessWithMessage(c, "密码修改成功", nil)
}

// ListUsers 用户列表（仅管理员）
// @Summary 获取用户列表
// @Tags 后台管理-用户
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response "获取成功"
// @Failure 403 {object} Response "权限不足"
// @Router /api/v1/admin/users [get]
func (h *AuthHandler) ListUsers(c *gin.Context) {
	var users []models.User
	if err := database.DB.Order("id ASC").Find(&users).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	Success(c, users)
}

// CreateUser 创建用户（仅管理员）
// @Summary 创建用户
// @Tags 后台管理-用户
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UserCreateRequest true "用户信息"
// @Success 201 {object} Response "创建成功"
// @Failure 403 {object} Response "权限不足"
// @Failure 409 {object} Response "用户名已存在"
// @Router /api/v1/admin/users [post]
func (h *AuthHandler) CreateUser(c *gin.Context) {
	var req UserCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	var existing models.User
	if err := database.DB.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		Conflict(c, "用户名已存在: "+req.Username)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "创建失败"))
		return
	}
	user := models.User{
		Username: req.Username,
		Password: string(hashed),
		Email:    req.Email,
		IsAdmin:  req.IsAdmin,
		Status:   models.UserStatusActive,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建失败"))
		return
	}
	Created(c, "创建成功", user)
}

// UpdateUserStatus 锁定/解锁用户（仅管理员）
// @Summary 更新用户状态
// @Tags 后台管理-用户
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "用户ID"
// @Param request body object{status=string} true "locked 或 active"
// @Success 200 {object} Response "更新成功"
// @Failure 403 {object} Response "权限不足"
// @Failure 404 {object} Response "用户不存在"
// @Router /api/v1/admin/users/{id}/status [patch]
func (h *AuthHandler) UpdateUserStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	var req struct {
		Status string `json:"status" binding:"required,oneof=locked active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	var user models.User
	if err := database.DB.First(&user, id).Error; err != nil {
		NotFound(c, "用户不存在")
		return
	}
	if user.ID == middleware.GetCurrentUserID(c) && req.Status == models.UserStatusLocked {
		BadRequest(c, "不能锁定自己的账号")
		return
	}

	if err := database.DB.Model(&user).Update("status", req.Status).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "更新失败"))
		return
	}
	SuccessWithMessage(c, "更新成功", nil)
}
