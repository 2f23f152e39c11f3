package public

import handlershared "github.com/campus-mall/internal/http/handlers/shared"

// CaptchaPayloadRequest 验证码请求载荷，未启用的场景允许为空
type CaptchaPayloadRequest = handlershared.CaptchaPayloadRequest
