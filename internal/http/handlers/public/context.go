package public

import (
	handlershared "github.com/campus-mall/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func getUserID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUintWithKeys(c, handlershared.ContextUserID, "error.unauthorized", "error.internal")
}

// currentUserID 可选会话场景下读取用户 ID，未登录返回 0
func currentUserID(c *gin.Context) uint {
	return handlershared.OptionalContextUint(c, handlershared.ContextUserID)
}

func currentSessionID(c *gin.Context) string {
	return handlershared.ContextString(c, handlershared.ContextSessionID)
}

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func respondMappedError(c *gin.Context, err error, fallbackCode int, fallbackKey string) {
	handlershared.RespondMappedError(c, err, handlershared.CommonErrorRules, fallbackCode, fallbackKey)
}
