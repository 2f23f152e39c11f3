package public

import "github.com/campus-mall/internal/provider"

// Handler 前台接口处理器入口
// 说明：该处理器仅用于游客与已登录用户的商城接口。
type Handler struct {
	*provider.Container
}

// New 创建前台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
