package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ==================== 接口定义 ====================

// StorageProvider 存储提供者接口
// 认证材料和商品图都走这层；换对象存储时只需要换实现
type StorageProvider interface {
	// Upload 保存文件，返回公开访问 URL
	Upload(ctx context.Context, data []byte, filename string, contentType string) (url string, err error)

	// Delete 删除文件
	Delete(ctx context.Context, url string) error
}

// ==================== 配置 ====================

// StorageConfig 存储配置
type StorageConfig struct {
	Dir          string // 本地存储目录
	BaseURL      string // 对外 URL 前缀，如 /uploads
	MaxFileSize  int64  // 单文件字节上限
	MaxFileCount int    // 单次上传文件数上限
}

// ==================== LocalStorage 本地实现 ====================

// LocalStorage 本地磁盘存储
type LocalStorage struct {
	cfg *StorageConfig
}

// NewLocalStorage 创建本地存储
func NewLocalStorage(cfg *StorageConfig) (*LocalStorage, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("创建上传目录失败: %w", err)
	}
	return &LocalStorage{cfg: cfg}, nil
}

// Upload 保存文件
// 文件名用 uuid 重命名，只保留原始扩展名，防止路径注入
func (s *LocalStorage) Upload(ctx context.Context, data []byte, filename string, contentType string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	name := uuid.NewString() + ext
	path := filepath.Join(s.cfg.Dir, name)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return s.cfg.BaseURL + "/" + name, nil
}

// Delete 删除文件
func (s *LocalStorage) Delete(ctx context.Context, url string) error {
	name := filepath.Base(url)
	if name == "." || name == "/" || name == "" {
		return errors.New("非法的文件 URL")
	}
	return os.Remove(filepath.Join(s.cfg.Dir, name))
}

// ==================== StorageService 上传服务 ====================

// StorageService 上传服务，做限额和类型校验后转给 provider
type StorageService struct {
	provider StorageProvider
	cfg      *StorageConfig
}

// NewStorageService 创建上传服务
func NewStorageService(provider StorageProvider, cfg *StorageConfig) *StorageService {
	return &StorageService{provider: provider, cfg: cfg}
}

// UploadedFile 一个待保存的文件
type UploadedFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// SaveFiles 批量保存上传文件
// 对齐前端上传组件的限制：单文件 8MB，单次最多 6 个，只收图片和 PDF
func (s *StorageService) SaveFiles(ctx context.Context, files []UploadedFile) ([]string, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	if len(files) > s.cfg.MaxFileCount {
		return nil, ErrTooManyFiles
	}

	urls := make([]string, 0, len(files))
	for _, f := range files {
		if int64(len(f.Data)) > s.cfg.MaxFileSize {
			return nil, ErrFileTooLarge
		}
		if !allowedContentType(f.ContentType) {
			return nil, ErrBadFileType
		}

		url, err := s.provider.Upload(ctx, f.Data, f.Filename, f.ContentType)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func allowedContentType(ct string) bool {
	if strings.HasPrefix(ct, "image/") {
		return true
	}
	return ct == "application/pdf"
}

// ==================== 错误定义 ====================

var (
	ErrNoFiles      = errors.New("没有收到文件")
	ErrTooManyFiles = errors.New("单次上传文件数超限")
	ErrFileTooLarge = errors.New("文件超过大小限制")
	ErrBadFileType  = errors.New("只支持图片或 PDF")
)
