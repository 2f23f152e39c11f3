package shared

import (
	"errors"
	"strconv"

	"github.com/campus-mall/internal/http/response"
	"github.com/campus-mall/internal/i18n"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// 校验标签到提示 key 的映射
var bindTagKeys = map[string]string{
	"cnphone": "error.phone_invalid",
	"email":   "error.email_invalid",
	"eqfield": "error.password_mismatch",
}

// RespondBindError 将请求绑定错误转换为带 field 的 400 响应
func RespondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		RespondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	fe := verrs[0]
	locale := i18n.ResolveLocale(c)
	msg := i18n.T(locale, "error.bad_request")
	switch {
	case bindTagKeys[fe.Tag()] != "":
		msg = i18n.T(locale, bindTagKeys[fe.Tag()])
	case fe.Tag() == "min" && (fe.Field() == "password" || fe.Field() == "new_password"):
		minLen, _ := strconv.Atoi(fe.Param())
		msg = i18n.Sprintf(locale, "error.password_weak", minLen)
	}
	RequestLog(c).Debugw("request_bind_failed", "field", fe.Field(), "tag", fe.Tag())
	response.ErrorWithData(c, response.CodeBadRequest, msg, gin.H{"field": fe.Field()})
}
