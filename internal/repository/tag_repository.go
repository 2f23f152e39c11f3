package repository

import (
	"context"
	"errors"

	"github.com/campus-mall/internal/models"

	"gorm.io/gorm"
)

// TagRepository 分类数据访问接口
type TagRepository interface {
	List(ctx context.Context) ([]models.Tag, error)
	GetByID(ctx context.Context, id uint) (*models.Tag, error)
	ExistsByName(ctx context.Context, name string, excludeID uint) (bool, error)
	CountProducts(ctx context.Context, tagID uint) (int64, error)
	Create(ctx context.Context, tag *models.Tag) error
	Update(ctx context.Context, tag *models.Tag) error
	Delete(ctx context.Context, id uint) error
}

// GormTagRepository GORM 实现
type GormTagRepository struct {
	db *gorm.DB
}

// NewTagRepository 创建分类仓库
func NewTagRepository(db *gorm.DB) *GormTagRepository {
	return &GormTagRepository{db: db}
}

// List 全部分类，按 ID 升序
func (r *GormTagRepository) List(ctx context.Context) ([]models.Tag, error) {
	tags := make([]models.Tag, 0)
	if err := scoped(ctx, r.db).Order("id ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// GetByID 根据 ID 获取分类
func (r *GormTagRepository) GetByID(ctx context.Context, id uint) (*models.Tag, error) {
	var tag models.Tag
	if err := scoped(ctx, r.db).First(&tag, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tag, nil
}

// ExistsByName 名称是否被占用
func (r *GormTagRepository) ExistsByName(ctx context.Context, name string, excludeID uint) (bool, error) {
	query := scoped(ctx, r.db).Model(&models.Tag{}).Where("name = ?", name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountProducts 统计引用该分类的商品数
func (r *GormTagRepository) CountProducts(ctx context.Context, tagID uint) (int64, error) {
	var count int64
	if err := scoped(ctx, r.db).Model(&models.Product{}).Where("tag_id = ?", tagID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create 创建分类
func (r *GormTagRepository) Create(ctx context.Context, tag *models.Tag) error {
	return scoped(ctx, r.db).Create(tag).Error
}

// Update 更新分类
func (r *GormTagRepository) Update(ctx context.Context, tag *models.Tag) error {
	return scoped(ctx, r.db).Save(tag).Error
}

// Delete 删除分类
func (r *GormTagRepository) Delete(ctx context.Context, id uint) error {
	return scoped(ctx, r.db).Delete(&models.Tag{}, id).Error
}
