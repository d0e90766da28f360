package database

import (
	"fmt"
	"log"

	"campus/config"
	"campus/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Init 初始化数据库连接
func Init(cfg *config.Config) error {
	// 构建 MySQL DSN 连接字符串
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=%s&parseTime=True&loc=Local",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.Charset,
	)

	var err error
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return fmt.Errorf("连接数据库失败: %w", err)
	}

	// 获取底层 *sql.DB 连接池配置
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}

	// 设置连接池参数
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	// 自动迁移数据库表
	if err := DB.AutoMigrate(
		&models.User{},
		&models.PasswordReset{},
		&models.Menu{},
		&models.Page{},
		&models.PageSection{},
		&models.ContentBlock{},
		&models.EventCategory{},
		&models.Event{},
		&models.Notification{},
		&models.NotificationAttachment{},
		&models.Media{},
		&models.Department{},
		&models.Designation{},
		&models.Directorate{},
		&models.PageDirectorate{},
	); err != nil {
		return err
	}

	// 初始化默认管理员（仅当用户表为空时）
	var userCount int64
	DB.Model(&models.User{}).Count(&userCount)
	if userCount == 0 {
		hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err == nil {
			admin := models.User{
				Username: "admin",
				Password: string(hashed),
				IsAdmin:  true,
				Status:   models.UserStatusActive,
			}
			if err := DB.Create(&admin).Error; err == nil {
				log.Println("已创建默认管理员 admin / admin123，请尽快修改密码")
			}
		}
	}

	// 初始化默认导航菜单（仅当表为空时）
	var menuCount int64
	DB.Model(&models.Menu{}).Count(&menuCount)
	if menuCount == 0 {
		defaultMenus := []models.Menu{
			{Name: "首页", Slug: "home", Position: 0, IsActive: true},
			{Name: "通知公告", Slug: "notices", Position: 1, IsActive: true},
			{Name: "院系设置", Slug: "departments", Position: 2, IsActive: true},
		}
		_ = DB.Create(&defaultMenus).Error
	}

	// 初始化默认活动分类（仅当表为空时）
	var catCount int64
	DB.Model(&models.EventCategory{}).Count(&catCount)
	if catCount == 0 {
		defaultCats := []models.EventCategory{
			{Name: "学术讲座", Slug: "lectures", Position: 0},
			{Name: "校园活动", Slug: "campus", Position: 1},
		}
		_ = DB.Create(&defaultCats).Error
	}

	log.Println("数据库初始化成功")
	return nil
}

// GetDB 获取数据库连接
func GetDB() *gorm.DB {
	return DB
}
