package public

import (
	"github.com/campus-mall/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetImageCaptcha 获取图片验证码挑战
func (h *Handler) GetImageCaptcha(c *gin.Context) {
	if h.CaptchaService == nil {
		respondError(c, response.CodeInternal, "error.captcha_unavailable", nil)
		return
	}

	challenge, err := h.CaptchaService.GenerateImageChallenge()
	if err != nil {
		respondError(c, response.CodeInternal, "error.captcha_unavailable", err)
		return
	}

	response.Success(c, gin.H{
		"captcha_id":   challenge.CaptchaID,
		"image_base64": challenge.ImageBase64,
	})
}

// captchaFormMeta 登录/注册表单所需的验证码信息，场景启用时附带一次挑战
func (h *Handler) captchaFormMeta(c *gin.Context, scene string) gin.H {
	meta := gin.H{"enabled": false}
	if h.CaptchaService == nil || !h.CaptchaService.SceneEnabled(scene) {
		return meta
	}
	meta["enabled"] = true
	challenge, err := h.CaptchaService.GenerateImageChallenge()
	if err != nil {
		requestLog(c).Warnw("captcha_generate_failed", "scene", scene, "error", err)
		return meta
	}
	meta["captcha_id"] = challenge.CaptchaID
	meta["image_base64"] = challenge.ImageBase64
	return meta
}
