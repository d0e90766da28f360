package api

import (
	"log"
	"strconv"
	"time"

	"campus/config"
	"campus/database"
	"campus/models"
	"campus/service"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// PasswordResetHandler 密码重置
type PasswordResetHandler struct{}

func NewPasswordResetHandler() *PasswordResetHandler {
	return &PasswordResetHandler{}
}

type ResetRequestBody struct {
	Username string `json:"username" binding:"required"`
}

type ResetPasswordBody struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6,max=64"`
}

type AdminResetPasswordBody struct {
	NewPassword string `json:"new_password" binding:"required,min=6,max=64"`
}

// RequestReset 申请密码重置
// @Summary 申请密码重置
// @Description 按用户名申请重置，向账号邮箱发送重置令牌。为避免账号探测，用户不存在时也返回成功
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body ResetRequestBody true "用户名"
// @Success 200 {object} Response "已发送"
// @Router /api/v1/admin/password-reset/request [post]
func (h *PasswordResetHandler) RequestReset(c *gin.Context) {
	var req ResetRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	var user models.User
	if err := database.DB.Where("username = ?", req.Username).First(&user).Error; err != nil || user.Email == "" {
		SuccessWithMessage(c, "如果账号存在，重置邮件已发送", nil)
		return
	}

	token, err := models.GenerateResetToken()
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "生成令牌失败"))
		return
	}
	reset := models.PasswordReset{
		UserID:    user.ID,
		Token:     token,
		Email:     user.Email,
		ExpiresAt: time.Now().Add(30 * time.Minute),
	}
	if err := database.DB.Create(&reset).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "申请失败"))
		return
	}

	cfg := config.GlobalConfig
	if cfg != nil && cfg.Email.Enabled {
		go func(email, token string) {
			if err := service.SendPasswordResetEmail(email, token); err != nil {
				log.Printf("重置邮件发送失败: %v", err)
			}
		}(user.Email, token)
	}

	SuccessWithMessage(c, "如果账号存在，重置邮件已发送", nil)
}

// VerifyToken 校验重置令牌
// @Summary 校验重置令牌
// @Tags 认证
// @Produce json
// @Param token query string true "重置令牌"
// @Success 200 {object} Response "令牌有效"
// @Failure 400 {object} Response "令牌无效或已过期"
// @Router /api/v1/admin/password-reset/verify [get]
func (h *PasswordResetHandler) VerifyToken(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		BadRequest(c, "缺少 token 参数")
		return
	}

	var reset models.PasswordReset
	if err := database.DB.Where("token = ?", token).First(&reset).Error; err != nil {
		BadRequest(c, "令牌无效")
		return
	}
	if !reset.IsValid() {
		BadRequest(c, "令牌已过期或已使用")
		return
	}
	SuccessWithMessage(c, "令牌有效", nil)
}

// ResetPassword 使用令牌重置密码
// @Summary 重置密码
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body ResetPasswordBody true "令牌和新密码"
// @Success 200 {object} Response "重置成功"
// @Failure 400 {object} Response "令牌无效或已过期"
// @Router /api/v1/admin/password-reset [post]
func (h *PasswordResetHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordBody
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	var reset models.PasswordReset
	if err := database.DB.Where("token = ?", req.Token).First(&reset).Error; err != nil {
		BadRequest(c, "令牌无效")
		return
	}
	if !reset.IsValid() {
		BadRequest(c, "令牌已过期或已使用")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "重置失败"))
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", reset.UserID).
			Update("password", string(hashed)).Error; err != nil {
			return err
		}
		return tx.Model(&reset).Update("used", true).Error
	})
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "重置失败"))
		return
	}
	SuccessWithMessage(c, "密码重置成功", nil)
}

// AdminResetPassword 管理员直接重置指定用户密码
// @Summary 管理员重置用户密码
// @Tags 后台管理-用户
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "用户ID"
// @Param request body AdminResetPasswordBody true "新密码"
// @Success 200 {object} Response "重置成功"
// @Failure 403 {object} Response "权限不足"
// @Failure 404 {object} Response "用户不存在"
// @Router /api/v1/admin/users/{id}/password [put]
func (h *PasswordResetHandler) AdminResetPassword(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	var req AdminResetPasswordBody
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	var user models.User
	if err := database.DB.First(&user, id).Error; err != nil {
		NotFound(c, "用户不存在")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "重置失败"))
		return
	}
	if err := database.DB.Model(&user).Update("password", string(hashed)).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "重置失败"))
		return
	}
	SuccessWithMessage(c, "密码重置成功", nil)
}
