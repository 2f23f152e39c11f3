package shared

import (
	"errors"

	"github.com/campus-mall/internal/http/response"
	"github.com/campus-mall/internal/i18n"
	"github.com/campus-mall/internal/logger"
	"github.com/campus-mall/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// RespondError 返回国际化错误响应，并在有原始错误时记录日志。
func RespondError(c *gin.Context, code int, key string, err error) {
	locale := i18n.ResolveLocale(c)
	msg := i18n.T(locale, key)
	appErr := response.WrapError(code, msg, err)
	if err != nil {
		RequestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"message", appErr.Message,
			"error", err,
		)
	}
	response.Error(c, appErr.Code, appErr.Message)
}

// MappedError 定义业务错误到接口错误响应的映射关系。
type MappedError struct {
	Target error
	Code   int
	Key    string
}

// CommonErrorRules 各接口共用的业务错误映射，具体错误需排在通用错误之前。
var CommonErrorRules = []MappedError{
	{Target: service.ErrLoginRequired, Code: response.CodeUnauthorized, Key: "error.login_required"},
	{Target: service.ErrCaptchaRequired, Code: response.CodeBadRequest, Key: "error.captcha_required"},
	{Target: service.ErrCaptchaInvalid, Code: response.CodeBadRequest, Key: "error.captcha_invalid"},
	{Target: service.ErrUserNameExists, Code: response.CodeBadRequest, Key: "error.user_name_exists"},
	{Target: service.ErrEmailExists, Code: response.CodeBadRequest, Key: "error.email_exists"},
	{Target: service.ErrPhoneExists, Code: response.CodeBadRequest, Key: "error.phone_exists"},
	{Target: service.ErrCardExists, Code: response.CodeBadRequest, Key: "error.card_exists"},
	{Target: service.ErrInvalidPhone, Code: response.CodeBadRequest, Key: "error.phone_invalid"},
	{Target: service.ErrInvalidEmail, Code: response.CodeBadRequest, Key: "error.email_invalid"},
	{Target: service.ErrPasswordMismatch, Code: response.CodeBadRequest, Key: "error.password_mismatch"},
	{Target: service.ErrOldPasswordInvalid, Code: response.CodeBadRequest, Key: "error.password_old_invalid"},
	{Target: service.ErrWeakPassword, Code: response.CodeBadRequest, Key: "error.password_weak"},
	{Target: service.ErrInvalidQuantity, Code: response.CodeBadRequest, Key: "error.cart_quantity_invalid"},
	{Target: service.ErrInvalidDiscount, Code: response.CodeBadRequest, Key: "error.product_discount_invalid"},
	{Target: service.ErrInvalidPrice, Code: response.CodeBadRequest, Key: "error.product_price_invalid"},
	{Target: service.ErrProductNameExists, Code: response.CodeBadRequest, Key: "error.product_name_exists"},
	{Target: service.ErrTagNameExists, Code: response.CodeBadRequest, Key: "error.tag_name_exists"},
	{Target: service.ErrTagInUse, Code: response.CodeBadRequest, Key: "error.tag_in_use"},
	{Target: service.ErrAdminLoginExists, Code: response.CodeBadRequest, Key: "error.admin_login_exists"},
	{Target: service.ErrCommentInvalid, Code: response.CodeBadRequest, Key: "error.comment_invalid"},
	{Target: service.ErrOrderStatusInvalid, Code: response.CodeBadRequest, Key: "error.order_status_invalid"},
	{Target: service.ErrInvalidFileType, Code: response.CodeBadRequest, Key: "error.upload_invalid"},
	{Target: service.ErrFileTooLarge, Code: response.CodeBadRequest, Key: "error.upload_invalid"},
	{Target: service.ErrImageTooLarge, Code: response.CodeBadRequest, Key: "error.upload_invalid"},
	{Target: service.ErrInvalidInput, Code: response.CodeBadRequest, Key: "error.bad_request"},
	{Target: service.ErrUserNotFound, Code: response.CodeNotFound, Key: "error.user_not_found"},
	{Target: service.ErrProductNotFound, Code: response.CodeNotFound, Key: "error.product_not_found"},
	{Target: service.ErrTagNotFound, Code: response.CodeNotFound, Key: "error.tag_not_found"},
	{Target: service.ErrOrderNotFound, Code: response.CodeNotFound, Key: "error.order_not_found"},
	{Target: service.ErrCommentNotFound, Code: response.CodeNotFound, Key: "error.comment_not_found"},
	{Target: service.ErrNotFound, Code: response.CodeNotFound, Key: "error.not_found"},
}

type keyedError interface {
	Key() string
	Args() []interface{}
}

// RespondMappedError 按规则表映射业务错误；字段校验错误会在 data 中携带 field。
// 未命中规则时使用兜底 code/key 并记录原始错误。
func RespondMappedError(c *gin.Context, err error, rules []MappedError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if !errors.Is(err, rule.Target) {
			continue
		}
		msg := i18n.T(i18n.ResolveLocale(c), rule.Key)
		var keyed keyedError
		if errors.As(err, &keyed) {
			msg = i18n.Sprintf(i18n.ResolveLocale(c), keyed.Key(), keyed.Args()...)
		}
		var validationErr *service.ValidationError
		if errors.As(err, &validationErr) && validationErr.Field != "" {
			response.ErrorWithData(c, rule.Code, msg, gin.H{"field": validationErr.Field})
			return
		}
		response.Error(c, rule.Code, msg)
		return
	}
	RespondError(c, fallbackCode, fallbackKey, err)
}

// ConcatErrorRules 合并多组映射规则，靠前的组优先。
func ConcatErrorRules(groups ...[]MappedError) []MappedError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]MappedError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}
