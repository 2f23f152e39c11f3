package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/campus-mall/internal/config"
	"github.com/campus-mall/internal/models"
	"github.com/campus-mall/internal/repository"
)

const maxCommentLength = 1000

// CommentService 商品评论服务
type CommentService struct {
	cfg         config.CatalogConfig
	repo        repository.CommentRepository
	productRepo repository.ProductRepository
}

// NewCommentService 创建评论服务
func NewCommentService(cfg config.CatalogConfig, repo repository.CommentRepository, productRepo repository.ProductRepository) *CommentService {
	return &CommentService{cfg: cfg, repo: repo, productRepo: productRepo}
}

// ListByProduct 分页列出商品评论，最新在前
func (s *CommentService) ListByProduct(ctx context.Context, productID uint, page int) ([]models.Comment, int64, int, error) {
	page = normalizeCatalogPage(page)
	pageSize := positiveOr(s.cfg.CommentPageSize, 10)
	comments, total, err := s.repo.List(ctx, repository.CommentListFilter{
		Page:      page,
		PageSize:  pageSize,
		ProductID: productID,
	})
	if err != nil {
		return nil, 0, pageSize, persistenceError("list comments", err)
	}
	return comments, total, pageSize, nil
}

// Post 发表评论
func (s *CommentService) Post(ctx context.Context, userID, productID uint, content string) (*models.Comment, error) {
	if userID == 0 {
		return nil, ErrLoginRequired
	}
	content = strings.TrimSpace(content)
	if content == "" || utf8.RuneCountInString(content) > maxCommentLength {
		return nil, newValidationError("content", ErrCommentInvalid)
	}
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, persistenceError("get product", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	comment := &models.Comment{
		Content:   content,
		ProductID: product.ID,
		UserID:    userID,
	}
	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, persistenceError("create comment", err)
	}
	return comment, nil
}

// ListForAdmin 后台评论列表
func (s *CommentService) ListForAdmin(ctx context.Context, filter repository.CommentListFilter) ([]models.Comment, int64, error) {
	filter.Page, filter.PageSize = normalizePagination(filter.Page, filter.PageSize)
	filter.Keyword = strings.TrimSpace(filter.Keyword)
	comments, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, persistenceError("list comments", err)
	}
	return comments, total, nil
}

// Delete 删除评论
func (s *CommentService) Delete(ctx context.Context, id uint) error {
	comment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return persistenceError("get comment", err)
	}
	if comment == nil {
		return ErrCommentNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return persistenceError("delete comment", err)
	}
	return nil
}
