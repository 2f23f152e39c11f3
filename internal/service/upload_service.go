package service

import (
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/campus-mall/internal/config"
	"github.com/campus-mall/internal/constants"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/google/uuid"
	_ "golang.org/x/image/webp"
)

var allowedUploadScenes = map[string]struct{}{
	constants.UploadSceneFace:    {},
	constants.UploadSceneProduct: {},
}

// UploadService 文件上传服务
type UploadService struct {
	cfg config.UploadConfig
	now func() time.Time
}

// NewUploadService 创建文件上传服务
func NewUploadService(cfg config.UploadConfig) *UploadService {
	if strings.TrimSpace(cfg.Dir) == "" {
		cfg.Dir = "uploads"
	}
	return &UploadService{cfg: cfg, now: time.Now}
}

// SaveFile 校验并保存上传文件，返回以 /uploads 开头的访问路径
func (s *UploadService) SaveFile(file *multipart.FileHeader, scene string) (string, error) {
	if file == nil {
		return "", newValidationError("file", ErrInvalidFileType)
	}
	if s.cfg.MaxSize > 0 && file.Size > s.cfg.MaxSize {
		return "", newValidationError("file", ErrFileTooLarge)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if len(s.cfg.AllowedExtensions) > 0 {
		if ext == "" || !isAllowedExtension(ext, s.cfg.AllowedExtensions) {
			return "", newValidationError("file", ErrInvalidFileType)
		}
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	buffer := make([]byte, 512)
	n, err := src.Read(buffer)
	if err != nil && err != io.EOF {
		return "", err
	}
	contentType := http.DetectContentType(buffer[:n])
	if len(s.cfg.AllowedTypes) > 0 && !containsFold(s.cfg.AllowedTypes, contentType) {
		return "", newValidationError("file", ErrInvalidFileType)
	}

	if strings.HasPrefix(contentType, "image/") {
		if _, err := src.Seek(0, io.SeekStart); err != nil {
			return "", err
		}
		imgCfg, _, err := image.DecodeConfig(src)
		if err != nil {
			return "", newValidationError("file", ErrInvalidFileType)
		}
		if (s.cfg.MaxWidth > 0 && imgCfg.Width > s.cfg.MaxWidth) || (s.cfg.MaxHeight > 0 && imgCfg.Height > s.cfg.MaxHeight) {
			return "", newValidationError("file", ErrImageTooLarge)
		}
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	normalizedScene := normalizeUploadScene(scene)
	filename := uuid.NewString() + ext
	now := s.now()
	year := now.Format("2006")
	month := now.Format("01")
	savePath := filepath.Join(s.cfg.Dir, normalizedScene, year, month, filename)

	if err := os.MkdirAll(filepath.Dir(savePath), 0o755); err != nil {
		return "", err
	}
	dst, err := os.Create(savePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return fmt.Sprintf("/uploads/%s/%s/%s/%s", normalizedScene, year, month, filename), nil
}

func normalizeUploadScene(raw string) string {
	value := strings.ToLower(strings.TrimSpace(raw))
	if _, ok := allowedUploadScenes[value]; ok {
		return value
	}
	return constants.UploadSceneProduct
}

func isAllowedExtension(ext string, allowed []string) bool {
	for _, allowedExt := range allowed {
		normalized := strings.ToLower(strings.TrimSpace(allowedExt))
		if normalized == "" {
			continue
		}
		if !strings.HasPrefix(normalized, ".") {
			normalized = "." + normalized
		}
		if ext == normalized {
			return true
		}
	}
	return false
}

func containsFold(values []string, target string) bool {
	for _, value := range values {
		if strings.EqualFold(strings.TrimSpace(value), target) {
			return true
		}
	}
	return false
}
