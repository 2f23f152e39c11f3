package models

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/campus-mall/internal/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// InitDefaultAdmin 在管理员表为空时创建默认管理员，返回新建的管理员（已存在时返回 nil）
func InitDefaultAdmin(db *gorm.DB, login, password string) (*AdminUser, error) {
	if db == nil {
		return nil, errors.New("init default admin: db is nil")
	}
	var count int64
	if err := db.Model(&AdminUser{}).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, nil
	}

	login = strings.TrimSpace(login)
	if login == "" {
		login = "admin"
	}
	generated := false
	if password == "" {
		password = randomPassword()
		generated = true
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	admin := &AdminUser{
		Name:         login,
		Login:        login,
		PasswordHash: string(hash),
	}
	if err := db.Create(admin).Error; err != nil {
		return nil, err
	}

	if generated {
		logger.Warnw("default_admin_created_with_generated_password", "login", login, "password", password)
	} else {
		logger.Warnw("default_admin_created", "login", login, "password_hidden", true)
	}
	return admin, nil
}

func randomPassword() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "admin123"
	}
	return hex.EncodeToString(buf)
}
