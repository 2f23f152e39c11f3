package service

import (
	"errors"
	"fmt"
)

// 鉴权类错误
var (
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrUserNotFound         = errors.New("user not found")
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionInvalid       = errors.New("session invalid")
	ErrCaptchaRequired      = errors.New("captcha required")
	ErrCaptchaInvalid       = errors.New("captcha invalid")
	ErrCaptchaConfigInvalid = errors.New("captcha config invalid")
	ErrLoginRequired        = errors.New("login required")
)

// 校验类错误，通常包在 ValidationError 中返回
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrUserNameExists     = errors.New("user name already exists")
	ErrEmailExists        = errors.New("email already exists")
	ErrPhoneExists        = errors.New("phone already exists")
	ErrCardExists         = errors.New("card already exists")
	ErrInvalidPhone       = errors.New("invalid phone")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrWeakPassword       = errors.New("weak password")
	ErrPasswordMismatch   = errors.New("password mismatch")
	ErrOldPasswordInvalid = errors.New("old password invalid")
	ErrInvalidQuantity    = errors.New("invalid quantity")
	ErrInvalidDiscount    = errors.New("invalid discount")
	ErrInvalidPrice       = errors.New("invalid price")
	ErrProductNameExists  = errors.New("product name already exists")
	ErrTagNameExists      = errors.New("tag name already exists")
	ErrTagInUse           = errors.New("tag in use")
	ErrAdminLoginExists   = errors.New("admin login already exists")
	ErrAdminDeleteSelf    = errors.New("admin cannot delete self")
	ErrCommentInvalid     = errors.New("comment invalid")
	ErrOrderStatusInvalid = errors.New("order status transition invalid")
	ErrInvalidFileType    = errors.New("invalid file type")
	ErrFileTooLarge       = errors.New("file too large")
	ErrImageTooLarge      = errors.New("image dimensions too large")
)

// 资源不存在
var (
	ErrNotFound        = errors.New("not found")
	ErrProductNotFound = fmt.Errorf("product %w", ErrNotFound)
	ErrTagNotFound     = fmt.Errorf("tag %w", ErrNotFound)
	ErrOrderNotFound   = fmt.Errorf("order %w", ErrNotFound)
	ErrCommentNotFound = fmt.Errorf("comment %w", ErrNotFound)
	ErrAdminNotFound   = fmt.Errorf("admin %w", ErrNotFound)
)

// ErrPersistence 数据库读写失败
var ErrPersistence = errors.New("persistence failure")

// ValidationError 字段级校验错误
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field == "" {
		return e.Err.Error()
	}
	return e.Field + ": " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newValidationError(field string, err error) error {
	return &ValidationError{Field: field, Err: err}
}

// persistenceError 包装驱动错误，同时可被 errors.Is(err, ErrPersistence) 识别
func persistenceError(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", op, ErrPersistence, err)
}
