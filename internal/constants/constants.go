package constants

// 订单状态常量
const (
	OrderStatusPendingStorage  = 0 // 待入库
	OrderStatusAwaitingPayment = 1 // 待支付
	OrderStatusPaid            = 2 // 已支付
)

// 商品排序常量
const (
	ProductSortNone = ""
	ProductSortTime = "time"
	ProductSortSell = "sell"

	// SortDirDesc 排序方向中仅 "1" 表示降序，其余一律按升序处理
	SortDirDesc = "1"
)

// 折扣常量（10 表示不打折）
const (
	DiscountNone = 10
	DiscountMin  = 0
)

// 登录日志状态常量
const (
	LoginLogStatusSuccess = "success"
	LoginLogStatusFailed  = "failed"
)

// 登录日志失败原因常量
const (
	LoginLogFailReasonUserNotFound    = "user_not_found"
	LoginLogFailReasonInvalidPassword = "invalid_password"
	LoginLogFailReasonCaptchaInvalid  = "captcha_invalid"
	LoginLogFailReasonInternalError   = "internal_error"
)

// 登录来源常量
const (
	LoginLogSourceWeb   = "web"
	LoginLogSourceAdmin = "admin"
)

// 会话主体类型
const (
	SessionKindUser  = "user"
	SessionKindAdmin = "admin"
)

// 验证码常量
const (
	CaptchaProviderNone  = "none"
	CaptchaProviderImage = "image"

	CaptchaSceneLogin    = "login"
	CaptchaSceneRegister = "register"
)

// 异步任务常量
const (
	QueueDefault         = "default"
	TaskProductViewed    = "product:viewed"
	TaskOrderPlaced      = "order:placed"
	TaskSessionPurgeTick = "session:purge"
)

// 上传场景常量
const (
	UploadSceneFace    = "face"
	UploadSceneProduct = "product"
)
