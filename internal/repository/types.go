package repository

import "time"

// ProductListFilter 前台商品列表过滤条件
type ProductListFilter struct {
	Page     int
	PageSize int
	TagID    uint
	SortKey  string
	SortDesc bool
}

// ProductSearchFilter 前台按名称搜索
type ProductSearchFilter struct {
	Page     int
	PageSize int
	Keyword  string
}

// ProductAdminFilter 后台商品列表过滤条件
type ProductAdminFilter struct {
	Page      int
	PageSize  int
	Keyword   string
	TagID     uint
	FlashSale *bool
}

// UserListFilter 后台用户列表过滤条件
type UserListFilter struct {
	Page        int
	PageSize    int
	Keyword     string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// OrderListFilter 后台订单列表过滤条件
type OrderListFilter struct {
	Page     int
	PageSize int
	UserID   uint
	Status   *int
}

// CommentListFilter 评论列表过滤条件
type CommentListFilter struct {
	Page      int
	PageSize  int
	ProductID uint
	UserID    uint
	Keyword   string
}

// UserLoginLogListFilter 登录日志过滤条件
type UserLoginLogListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	Name        string
	Status      string
	FailReason  string
	ClientIP    string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}
