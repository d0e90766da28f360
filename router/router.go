package router

import (
	"net/http"
	"time"

	"campus/api"
	"campus/config"
	"campus/middleware"
	"campus/web"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter 注册全部路由
func SetupRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()

	router.Use(corsMiddleware(cfg.Server.CORSOrigin))

	// 健康检查
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// 上传文件静态服务
	router.Static("/uploads", cfg.Upload.Dir)

	// 内置管理后台页面
	router.StaticFS("/admin-ui", web.StaticFS())

	// API 文档
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authHandler := api.NewAuthHandler()
	resetHandler := api.NewPasswordResetHandler()
	menuHandler := api.NewMenuHandler()
	pageHandler := api.NewPageHandler()
	sectionHandler := api.NewSectionHandler()
	blockHandler := api.NewContentBlockHandler()
	eventHandler := api.NewEventHandler()
	notificationHandler := api.NewNotificationHandler()
	mediaHandler := api.NewMediaHandler()
	directoryHandler := api.NewDirectoryHandler()
	exportHandler := api.NewExportHandler()

	v1 := router.Group("/api/v1")

	// 前台接口，无需认证
	{
		v1.GET("/menus", menuHandler.PublicList)
		v1.GET("/pages/tree", pageHandler.PublicTree)
		v1.GET("/pages/slug/:slug", pageHandler.PublicGetBySlug)
		v1.GET("/pages/slug/:slug/directorates", directoryHandler.PublicPageDirectorates)
		v1.GET("/event-categories", eventHandler.PublicListCategories)
		v1.GET("/events", eventHandler.PublicList)
		v1.GET("/notifications", notificationHandler.PublicList)
		v1.GET("/notifications/:id", notificationHandler.PublicGet)
		v1.GET("/departments", directoryHandler.PublicListDepartments)
		v1.GET("/directorates", directoryHandler.PublicListDirectorates)
	}

	admin := v1.Group("/admin")

	// 后台公开接口：登录和密码重置
	{
		admin.POST("/login", middleware.LoginRateLimit(5, time.Minute), authHandler.Login)
		admin.POST("/password-reset/request", resetHandler.RequestReset)
		admin.GET("/password-reset/verify", resetHandler.VerifyToken)
		admin.POST("/password-reset", resetHandler.ResetPassword)
	}

	// 后台受保护接口
	auth := admin.Group("")
	auth.Use(middleware.JWTAuth())
	{
		auth.GET("/profile", authHandler.GetProfile)
		auth.PUT("/password", authHandler.ChangePassword)

		auth.GET("/menus", menuHandler.List)
		auth.POST("/menus", menuHandler.Create)
		auth.PATCH("/menus/reorder", menuHandler.Reorder)
		auth.GET("/menus/:id", menuHandler.Get)
		auth.PUT("/menus/:id", menuHandler.Update)
		auth.DELETE("/menus/:id", menuHandler.Delete)

		auth.GET("/pages", pageHandler.List)
		auth.POST("/pages", pageHandler.Create)
		auth.GET("/pages/tree", pageHandler.Tree)
		auth.PATCH("/pages/reorder", pageHandler.Reorder)
		auth.GET("/pages/:id", pageHandler.Get)
		auth.PUT("/pages/:id", pageHandler.Update)
		auth.PATCH("/pages/:id/move", pageHandler.Move)
		auth.DELETE("/pages/:id", pageHandler.Delete)
		auth.GET("/pages/:id/sections", sectionHandler.ListByPage)
		auth.POST("/pages/:id/sections", sectionHandler.Create)
		auth.GET("/pages/:id/directorates", directoryHandler.ListPageDirectorates)
		auth.PUT("/pages/:id/directorates", directoryHandler.ReplacePageDirectorates)

		auth.PATCH("/sections/reorder", sectionHandler.Reorder)
		auth.PUT("/sections/:id", sectionHandler.Update)
		auth.DELETE("/sections/:id", sectionHandler.Delete)
		auth.GET("/sections/:id/blocks", blockHandler.ListBySection)
		auth.POST("/sections/:id/blocks", blockHandler.Create)

		auth.PATCH("/blocks/reorder", blockHandler.Reorder)
		auth.PUT("/blocks/:id", blockHandler.Update)
		auth.DELETE("/blocks/:id", blockHandler.Delete)

		auth.GET("/event-categories", eventHandler.ListCategories)
		auth.POST("/event-categories", eventHandler.CreateCategory)
		auth.PATCH("/event-categories/reorder", eventHandler.ReorderCategories)
		auth.PUT("/event-categories/:id", eventHandler.UpdateCategory)
		auth.DELETE("/event-categories/:id", eventHandler.DeleteCategory)

		auth.GET("/events", eventHandler.List)
		auth.POST("/events", eventHandler.Create)
		auth.PUT("/events/:id", eventHandler.Update)
		auth.DELETE("/events/:id", eventHandler.Delete)

		auth.GET("/notifications", notificationHandler.List)
		auth.POST("/notifications", notificationHandler.Create)
		auth.GET("/notifications/:id", notificationHandler.Get)
		auth.PUT("/notifications/:id", notificationHandler.Update)
		auth.DELETE("/notifications/:id", notificationHandler.Delete)
		auth.PUT("/notifications/:id/attachments", notificationHandler.ReplaceAttachments)
		auth.POST("/notifications/:id/notify", notificationHandler.Notify)

		auth.GET("/media", mediaHandler.List)
		auth.POST("/media", mediaHandler.Upload)
		auth.DELETE("/media/:id", mediaHandler.Delete)

		auth.GET("/departments", directoryHandler.ListDepartments)
		auth.POST("/departments", directoryHandler.CreateDepartment)
		auth.PUT("/departments/:id", directoryHandler.UpdateDepartment)
		auth.DELETE("/departments/:id", directoryHandler.DeleteDepartment)

		auth.GET("/designations", directoryHandler.ListDesignations)
		auth.POST("/designations", directoryHandler.CreateDesignation)
		auth.PUT("/designations/:id", directoryHandler.UpdateDesignation)
		auth.DELETE("/designations/:id", directoryHandler.DeleteDesignation)

		auth.GET("/directorates", directoryHandler.ListDirectorates)
		auth.POST("/directorates", directoryHandler.CreateDirectorate)
		auth.PUT("/directorates/:id", directoryHandler.UpdateDirectorate)
		auth.DELETE("/directorates/:id", directoryHandler.DeleteDirectorate)

		auth.GET("/export/events", exportHandler.ExportEvents)
		auth.GET("/export/directorates", exportHandler.ExportDirectorates)
		auth.GET("/export/notifications", exportHandler.ExportNotificationsCSV)

		// 用户管理仅限管理员
		adminOnly := auth.Group("")
		adminOnly.Use(middleware.RequireAdmin())
		{
			adminOnly.GET("/users", authHandler.ListUsers)
			adminOnly.POST("/users", authHandler.CreateUser)
			adminOnly.PATCH("/users/:id/status", authHandler.UpdateUserStatus)
			adminOnly.PUT("/users/:id/password", resetHandler.AdminResetPassword)
		}
	}

	return router
}

// corsMiddleware 跨域设置
func corsMiddleware(origin string) gin.HandlerFunc {
	if origin == "" {
		origin = "*"
	}
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if origin != "*" {
			c.Header("Access-Control-Allow-Credentials", "true")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
