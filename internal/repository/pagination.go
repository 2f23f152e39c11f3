package repository

import (
	"math"

	"gorm.io/gorm"
)

// applyPagination 应用分页参数，统一处理非法页码与偏移量。
// 偏移量溢出时视为越界页，返回空结果。
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if query == nil || pageSize <= 0 {
		return query
	}
	if page < 1 {
		page = 1
	}
	if page-1 > math.MaxInt/pageSize {
		return query.Where("1 = 0")
	}
	return query.Limit(pageSize).Offset((page - 1) * pageSize)
}
