package i18n

var messages = map[string]map[string]string{
	LocaleZhCN: {
		"success":                        "成功",
		"error.bad_request":              "请求参数错误",
		"error.unauthorized":             "未登录或登录已失效",
		"error.forbidden":                "没有权限执行该操作",
		"error.not_found":                "页面不存在",
		"error.internal":                 "服务器内部错误",
		"error.rate_limited":             "请求过于频繁，请 %d 秒后再试",
		"error.login_too_many":           "登录尝试次数过多，请 %d 秒后再试",
		"error.register_too_many":        "注册过于频繁，请 %d 秒后再试",
		"error.rate_limit_unavailable":   "限流服务暂不可用",
		"error.login_required":           "请先登录",
		"error.login_failed":             "用户名或密码错误",
		"error.login_internal":           "登录失败，请稍后重试",
		"error.register_failed":          "注册失败，请稍后重试",
		"error.user_not_found":           "用户不存在",
		"error.user_name_exists":         "用户名已经存在",
		"error.email_exists":             "邮箱已经存在",
		"error.phone_exists":             "手机号码已经存在！",
		"error.card_exists":              "银行卡已经被绑定",
		"error.phone_invalid":            "输入的手机号格式不正确！",
		"error.email_invalid":            "邮箱格式不正确",
		"error.password_weak":            "密码长度不能小于%d位",
		"error.password_require_letter":  "密码需包含字母",
		"error.password_require_number":  "密码需包含数字",
		"error.password_mismatch":        "两次密码不一致",
		"error.password_old_invalid":     "旧密码错误",
		"error.captcha_required":         "请输入验证码",
		"error.captcha_invalid":          "验证码错误",
		"error.captcha_unavailable":      "验证码未启用",
		"error.profile_update_failed":    "资料保存失败",
		"error.upload_invalid":           "头像上传失败",
		"error.product_not_found":        "商品不存在",
		"error.product_name_exists":      "商品名称已经存在",
		"error.product_price_invalid":    "商品价格不合法",
		"error.product_discount_invalid": "折扣必须在 0 到 10 之间",
		"error.product_fetch_failed":     "商品查询失败",
		"error.tag_not_found":            "分类不存在",
		"error.tag_name_exists":          "分类名称已经存在",
		"error.tag_in_use":               "分类下仍有商品，无法删除",
		"error.cart_payload_invalid":     "购物车数据格式不正确",
		"error.cart_quantity_invalid":    "购买数量必须大于 0",
		"error.cart_add_failed":          "加入购物车失败",
		"error.cart_fetch_failed":        "购物车查询失败",
		"error.checkout_failed":          "下单失败，请稍后重试",
		"error.order_not_found":          "订单不存在",
		"error.order_status_invalid":     "订单状态不允许该操作",
		"error.order_fetch_failed":       "订单查询失败",
		"error.comment_invalid":          "评论内容不能为空",
		"error.comment_not_found":        "评论不存在",
		"error.comment_failed":           "评论发表失败",
		"error.admin_login_exists":       "管理员账号已经存在",
		"error.admin_create_failed":      "管理员创建失败",
		"error.admin_delete_self":        "不能删除当前登录的管理员",
		"error.admin_not_found":          "管理员不存在",
		"error.save_failed":              "保存失败",
		"error.delete_failed":            "删除失败",
		"error.list_failed":              "列表查询失败",
		"flash.cart_added":               "已加入购物车",
		"flash.register_success":         "注册成功，请登录",
		"flash.profile_saved":            "资料修改成功",
		"flash.password_changed":         "密码修改成功，请重新登录",
		"flash.logout_success":           "已退出登录",
	},
	LocaleEnUS: {
		"success":                        "success",
		"error.bad_request":              "Invalid request",
		"error.unauthorized":             "Not logged in or session expired",
		"error.forbidden":                "Permission denied",
		"error.not_found":                "Page not found",
		"error.internal":                 "Internal server error",
		"error.rate_limited":             "Too many requests, retry in %d seconds",
		"error.login_too_many":           "Too many login attempts, retry in %d seconds",
		"error.register_too_many":        "Too many sign-ups, retry in %d seconds",
		"error.rate_limit_unavailable":   "Rate limiter unavailable",
		"error.login_required":           "Please log in first",
		"error.login_failed":             "Wrong user name or password",
		"error.login_internal":           "Login failed, please retry later",
		"error.register_failed":          "Registration failed, please retry later",
		"error.user_not_found":           "User not found",
		"error.user_name_exists":         "User name already exists",
		"error.email_exists":             "Email already exists",
		"error.phone_exists":             "Phone number already exists",
		"error.card_exists":              "Card already bound",
		"error.phone_invalid":            "Invalid phone number",
		"error.email_invalid":            "Invalid email",
		"error.password_weak":            "Password must be at least %d characters",
		"error.password_require_letter":  "Password must contain a letter",
		"error.password_require_number":  "Password must contain a digit",
		"error.password_mismatch":        "Passwords do not match",
		"error.password_old_invalid":     "Old password is wrong",
		"error.captcha_required":         "Captcha required",
		"error.captcha_invalid":          "Wrong captcha",
		"error.captcha_unavailable":      "Captcha disabled",
		"error.profile_update_failed":    "Failed to save profile",
		"error.upload_invalid":           "Avatar upload failed",
		"error.product_not_found":        "Product not found",
		"error.product_name_exists":      "Product name already exists",
		"error.product_price_invalid":    "Invalid product price",
		"error.product_discount_invalid": "Discount must be within (0, 10]",
		"error.product_fetch_failed":     "Failed to load products",
		"error.tag_not_found":            "Tag not found",
		"error.tag_name_exists":          "Tag name already exists",
		"error.tag_in_use":               "Tag still has products",
		"error.cart_payload_invalid":     "Invalid cart payload",
		"error.cart_quantity_invalid":    "Quantity must be greater than 0",
		"error.cart_add_failed":          "Failed to add to cart",
		"error.cart_fetch_failed":        "Failed to load cart",
		"error.checkout_failed":          "Checkout failed, please retry later",
		"error.order_not_found":          "Order not found",
		"error.order_status_invalid":     "Order status transition not allowed",
		"error.order_fetch_failed":       "Failed to load order",
		"error.comment_invalid":          "Comment content is required",
		"error.comment_not_found":        "Comment not found",
		"error.comment_failed":           "Failed to post comment",
		"error.admin_login_exists":       "Admin login already exists",
		"error.admin_create_failed":      "Failed to create admin",
		"error.admin_delete_self":        "Cannot delete the signed-in admin",
		"error.admin_not_found":          "Admin not found",
		"error.save_failed":              "Save failed",
		"error.delete_failed":            "Delete failed",
		"error.list_failed":              "Failed to load list",
		"flash.cart_added":               "Added to cart",
		"flash.register_success":         "Registered, please log in",
		"flash.profile_saved":            "Profile saved",
		"flash.password_changed":         "Password changed, please log in again",
		"flash.logout_success":           "Logged out",
	},
}
