// Package storage 提供本地磁盘文件存储
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"dashboard-api/internal/config"
)

var tracer = otel.Tracer("storage")

// LocalStore 本地上传目录存储
type LocalStore struct {
	dir     string
	maxSize int64
}

// NewLocalStore 创建本地存储，确保上传目录存在
func NewLocalStore(cfg *config.LocalStorageConfig) (*LocalStore, error) {
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &LocalStore{
		dir:     cfg.UploadDir,
		maxSize: cfg.MaxUploadSize,
	}, nil
}

// Dir 返回上传目录
func (s *LocalStore) Dir() string {
	return s.dir
}

// MaxSize 返回单文件大小上限（字节）
func (s *LocalStore) MaxSize() int64 {
	return s.maxSize
}

// Save 写入文件内容并返回落盘文件名与字节数
//
// 同名文件通过 " (n)" 后缀避让：report.pdf -> report (1).pdf。
func (s *LocalStore) Save(ctx context.Context, filename string, r io.Reader) (string, int64, error) {
	_, span := tracer.Start(ctx, "storage.LocalStore.Save")
	span.SetAttributes(attribute.String("storage.filename", filename))
	defer span.End()

	name, err := s.uniqueName(filename)
	if err != nil {
		span.RecordError(err)
		return "", 0, err
	}

	f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		span.RecordError(err)
		return "", 0, fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	n, err := io.Copy(f, r)
	if err != nil {
		os.Remove(f.Name())
		span.RecordError(err)
		return "", 0, fmt.Errorf("failed to write file: %w", err)
	}

	span.SetAttributes(attribute.Int64("storage.size", n))
	return name, n, nil
}

// Open 打开已保存的文件
func (s *LocalStore) Open(name string) (*os.File, error) {
	path, err := s.resolve(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, os.ErrNotExist
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return f, nil
}

// Remove 删除已保存的文件，文件不存在视为成功
func (s *LocalStore) Remove(name string) error {
	path, err := s.resolve(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}

// uniqueName 在基名与扩展名之间插入 " (n)" 直到不冲突
func (s *LocalStore) uniqueName(filename string) (string, error) {
	filename = sanitize(filename)
	if filename == "" {
		filename = "file"
	}

	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filename, ext)

	candidate := filename
	for i := 1; ; i++ {
		_, err := os.Stat(filepath.Join(s.dir, candidate))
		if os.IsNotExist(err) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to stat file: %w", err)
		}
		candidate = fmt.Sprintf("%s (%d)%s", base, i, ext)
	}
}

// resolve 校验文件名不越出上传目录
func (s *LocalStore) resolve(name string) (string, error) {
	name = sanitize(name)
	if name == "" {
		return "", fmt.Errorf("empty filename")
	}
	return filepath.Join(s.dir, name), nil
}

// sanitize 丢弃路径部分，只保留基名
func sanitize(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	base := filepath.Base(name)
	if base == "." || base == "/" || base == ".." {
		return ""
	}
	return base
}
