package admin

import (
	handlershared "github.com/campus-mall/internal/http/handlers/shared"
	"github.com/campus-mall/internal/http/response"
	"github.com/campus-mall/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var adminErrorRules = handlershared.ConcatErrorRules(
	[]handlershared.MappedError{
		{Target: service.ErrAdminDeleteSelf, Code: response.CodeBadRequest, Key: "error.admin_delete_self"},
		{Target: service.ErrAdminNotFound, Code: response.CodeNotFound, Key: "error.admin_not_found"},
	},
	handlershared.CommonErrorRules,
)

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func respondMappedError(c *gin.Context, err error, fallbackCode int, fallbackKey string) {
	handlershared.RespondMappedError(c, err, adminErrorRules, fallbackCode, fallbackKey)
}
