package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"course_studio_backend/internal/config"
	"course_studio_backend/internal/util"
	"course_studio_backend/pkg/logger"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// StorageProvider 定义通用存储接口。
// Owns 判断一个已存URL是否由本提供方管理，是则返回对象名；
// 外部托管地址（如别人家的 https 链接）永远不归任何提供方管理。
type StorageProvider interface {
	Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, filename string) error
	GetURL(filename string) string
	Owns(url string) (string, bool)
}

// LocalStorageProvider 本地存储实现
type LocalStorageProvider struct {
	Config *config.StorageConfig
}

func (p *LocalStorageProvider) Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	dst := filepath.Join(p.Config.LocalPath, filename)
	dir := filepath.Dir(dst)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", err
		}
	}

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, reader); err != nil {
		return "", err
	}

	return p.GetURL(filename), nil
}

func (p *LocalStorageProvider) Delete(ctx context.Context, filename string) error {
	return os.Remove(filepath.Join(p.Config.LocalPath, filename))
}

func (p *LocalStorageProvider) GetURL(filename string) string {
	return "/uploads/" + filename
}

func (p *LocalStorageProvider) Owns(url string) (string, bool) {
	if name, ok := strings.CutPrefix(url, "/uploads/"); ok && name != "" {
		return name, true
	}
	return "", false
}

// LocalPathOf 返回已存文件的磁盘路径，仅本地提供方有意义
func (p *LocalStorageProvider) LocalPathOf(filename string) string {
	return filepath.Join(p.Config.LocalPath, filename)
}

// MinioStorageProvider MinIO存储实现
type MinioStorageProvider struct {
	Config *config.StorageConfig
	Client *minio.Client
}

func NewMinioStorageProvider(cfg *config.StorageConfig) (*MinioStorageProvider, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: false,
	})
	if err != nil {
		return nil, err
	}
	return &MinioStorageProvider{Config: cfg, Client: client}, nil
}

func (p *MinioStorageProvider) Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := p.Client.PutObject(ctx, p.Config.MinioBucket, filename, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return p.GetURL(filename), nil
}

func (p *MinioStorageProvider) Delete(ctx context.Context, filename string) error {
	return p.Client.RemoveObject(ctx, p.Config.MinioBucket, filename, minio.RemoveObjectOptions{})
}

func (p *MinioStorageProvider) GetURL(filename string) string {
	return "/" + p.Config.MinioBucket + "/" + filename
}

func (p *MinioStorageProvider) Owns(url string) (string, bool) {
	if name, ok := strings.CutPrefix(url, "/"+p.Config.MinioBucket+"/"); ok && name != "" {
		return name, true
	}
	return "", false
}

// OSSStorageProvider 阿里云OSS存储实现
type OSSStorageProvider struct {
	Config *config.StorageConfig
	Client *oss.Client
}

func NewOSSStorageProvider(cfg *config.StorageConfig) (*OSSStorageProvider, error) {
	client, err := oss.New(cfg.OSSEndpoint, cfg.OSSAccessKey, cfg.OSSSecretKey)
	if err != nil {
		return nil, err
	}
	return &OSSStorageProvider{Config: cfg, Client: client}, nil
}

func (p *OSSStorageProvider) Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	bucket, err := p.Client.Bucket(p.Config.OSSBucket)
	if err != nil {
		return "", err
	}
	if err := bucket.PutObject(filename, reader); err != nil {
		return "", err
	}
	return p.GetURL(filename), nil
}

func (p *OSSStorageProvider) Delete(ctx context.Context, filename string) error {
	bucket, err := p.Client.Bucket(p.Config.OSSBucket)
	if err != nil {
		return err
	}
	return bucket.DeleteObject(filename)
}

func (p *OSSStorageProvider) GetURL(filename string) string {
	return fmt.Sprintf("https://%s.%s/%s", p.Config.OSSBucket, p.Config.OSSEndpoint, filename)
}

func (p *OSSStorageProvider) Owns(url string) (string, bool) {
	prefix := fmt.Sprintf("https://%s.%s/", p.Config.OSSBucket, p.Config.OSSEndpoint)
	if name, ok := strings.CutPrefix(url, prefix); ok && name != "" {
		return name, true
	}
	return "", false
}

// StorageService 媒体存储服务：按配置选择后端，远端写入失败时回退本地。
type StorageService struct {
	Provider StorageProvider
	local    *LocalStorageProvider
}

func NewStorageService(cfg *config.Config) *StorageService {
	local := &LocalStorageProvider{Config: &cfg.Storage}

	var provider StorageProvider
	switch cfg.Storage.Type {
	case util.StorageMinio:
		p, err := NewMinioStorageProvider(&cfg.Storage)
		if err == nil {
			provider = p
		} else {
			logger.Log.Warn("MinIO 初始化失败，改用本地存储", zap.Error(err))
		}
	case util.StorageOSS:
		p, err := NewOSSStorageProvider(&cfg.Storage)
		if err == nil {
			provider = p
		} else {
			logger.Log.Warn("OSS 初始化失败，改用本地存储", zap.Error(err))
		}
	}

	if provider == nil {
		provider = local
	}

	return &StorageService{Provider: provider, local: local}
}

// Store 保存一段媒体内容，返回可回取的URL。
// 文件名为 uuid-原始文件名，保证每次调用不冲突。
// 远端后端写入失败时先尝试本地兜底，再向上抛错。
func (s *StorageService) Store(ctx context.Context, data []byte, contentType, folder, originalName string) (string, error) {
	name := uuid.New().String()
	if base := sanitizeFilename(originalName); base != "" {
		name = name + "-" + base
	}
	filename := folder + "/" + name

	url, err := s.Provider.Upload(ctx, filename, bytes.NewReader(data), int64(len(data)), contentType)
	if err == nil {
		return url, nil
	}

	if s.Provider != StorageProvider(s.local) {
		logger.Log.Warn("远端存储写入失败，回退本地存储", zap.String("filename", filename), zap.Error(err))
		return s.local.Upload(ctx, filename, bytes.NewReader(data), int64(len(data)), contentType)
	}

	return "", err
}

// Rewrite 原地覆盖一个已存对象的内容；URL 不归本服务管理时不做任何事
func (s *StorageService) Rewrite(ctx context.Context, url string, data []byte, contentType string) error {
	filename, ok := s.Provider.Owns(url)
	if !ok {
		return nil
	}
	_, err := s.Provider.Upload(ctx, filename, bytes.NewReader(data), int64(len(data)), contentType)
	return err
}

// Delete 释放一个已存URL背后的文件。外部托管地址（不归本服务管理的URL）
// 一律跳过，绝不尝试删除。
func (s *StorageService) Delete(ctx context.Context, url string) error {
	if url == "" {
		return nil
	}
	if filename, ok := s.Provider.Owns(url); ok {
		return s.Provider.Delete(ctx, filename)
	}
	// 远端后端回退出来的本地文件也要能清理
	if s.Provider != StorageProvider(s.local) {
		if filename, ok := s.local.Owns(url); ok {
			return s.local.Delete(ctx, filename)
		}
	}
	return nil
}

// LocalPathOf 已存URL在磁盘上的路径；仅当文件真实存放在本地时返回
func (s *StorageService) LocalPathOf(url string) (string, bool) {
	if filename, ok := s.local.Owns(url); ok {
		if _, err := os.Stat(s.local.LocalPathOf(filename)); err == nil {
			return s.local.LocalPathOf(filename), true
		}
	}
	return "", false
}

func sanitizeFilename(name string) string {
	base := filepath.Base(strings.TrimSpace(name))
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return strings.ReplaceAll(base, " ", "-")
}
