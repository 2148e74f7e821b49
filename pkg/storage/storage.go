// Package storage 更新包归档的存储，支持本地目录和阿里云 OSS
package storage

import (
	"context"
	"io"

	"relman/pkg/core/config"
	errorc "relman/pkg/core/err"
)

const (
	ModeLocal = "local"
	ModeOss   = "oss"
)

// Object 存储中的一个归档文件
type Object struct {
	Key  string
	Size int64
}

// Store 更新包存储
type Store interface {
	// Find 返回第一个 key 以 prefix 开头的对象，没有时返回 NotFound
	Find(ctx context.Context, prefix string) (*Object, error)
	// Open 打开对象读取内容，调用方负责关闭
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// New 按配置创建存储
func New(cfg config.StorageConfig) (Store, error) {
	switch cfg.Mode {
	case "", ModeLocal:
		return NewLocalStore(cfg.LocalDir), nil
	case ModeOss:
		return NewOssStore(cfg.Oss)
	default:
		return nil, errorc.New("不支持的存储模式: "+cfg.Mode, nil).ValidWithCtx()
	}
}
