package service

import (
	"context"
	"strings"

	"github.com/campus-mall/internal/cache"
	"github.com/campus-mall/internal/logger"
	"github.com/campus-mall/internal/models"
	"github.com/campus-mall/internal/repository"
)

// TagService 后台分类管理服务
type TagService struct {
	repo  repository.TagRepository
	store *cache.Store
}

// NewTagService 创建分类服务
func NewTagService(repo repository.TagRepository, store *cache.Store) *TagService {
	return &TagService{repo: repo, store: store}
}

// List 分类列表
func (s *TagService) List(ctx context.Context) ([]models.Tag, error) {
	tags, err := s.repo.List(ctx)
	if err != nil {
		return nil, persistenceError("list tags", err)
	}
	return tags, nil
}

// Create 创建分类
func (s *TagService) Create(ctx context.Context, name string) (*models.Tag, error) {
	name, err := s.checkName(ctx, name, 0)
	if err != nil {
		return nil, err
	}
	tag := &models.Tag{Name: name}
	if err := s.repo.Create(ctx, tag); err != nil {
		return nil, persistenceError("create tag", err)
	}
	s.invalidate(ctx)
	return tag, nil
}

// Update 重命名分类
func (s *TagService) Update(ctx context.Context, id uint, name string) (*models.Tag, error) {
	tag, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	name, err = s.checkName(ctx, name, id)
	if err != nil {
		return nil, err
	}
	tag.Name = name
	if err := s.repo.Update(ctx, tag); err != nil {
		return nil, persistenceError("update tag", err)
	}
	s.invalidate(ctx)
	return tag, nil
}

// Delete 删除分类，仍有商品引用时拒绝
func (s *TagService) Delete(ctx context.Context, id uint) error {
	if _, err := s.get(ctx, id); err != nil {
		return err
	}
	count, err := s.repo.CountProducts(ctx, id)
	if err != nil {
		return persistenceError("count tag products", err)
	}
	if count > 0 {
		return newValidationError("tag", ErrTagInUse)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return persistenceError("delete tag", err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *TagService) get(ctx context.Context, id uint) (*models.Tag, error) {
	tag, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, persistenceError("get tag", err)
	}
	if tag == nil {
		return nil, ErrTagNotFound
	}
	return tag, nil
}

func (s *TagService) checkName(ctx context.Context, name string, excludeID uint) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", newValidationError("name", ErrInvalidInput)
	}
	exists, err := s.repo.ExistsByName(ctx, name, excludeID)
	if err != nil {
		return "", persistenceError("check tag name", err)
	}
	if exists {
		return "", newValidationError("name", ErrTagNameExists)
	}
	return name, nil
}

func (s *TagService) invalidate(ctx context.Context) {
	if err := s.store.InvalidateTagList(ctx); err != nil {
		logger.Warnw("tag_list_cache_invalidate_failed", "error", err)
	}
}
