package middleware

import (
	"net/http"

	"campus/database"
	"campus/models"

	"github.com/gin-gonic/gin"
)

// RequireAdmin 超级管理员校验中间件，需在 JWTAuth 之后使用
// 账号管理类接口（重置他人密码等）仅超管可用
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := GetCurrentUserID(c)
		if userID == 0 {
			c.JSON(http.StatusUnauthorized, gin.H{
				"statusCode": 401,
				"success":    false,
				"message":    "请先登录",
				"errors":     []string{},
			})
			c.Abort()
			return
		}

		var user models.User
		if err := database.DB.First(&user, userID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"statusCode": 401,
				"success":    false,
				"message":    "用户不存在",
				"errors":     []string{},
			})
			c.Abort()
			return
		}

		if !user.IsAdmin {
			c.JSON(http.StatusForbidden, gin.H{
				"statusCode": 403,
				"success":    false,
				"message":    "权限不足",
				"errors":     []string{},
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
