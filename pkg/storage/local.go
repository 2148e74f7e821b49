package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	errorc "relman/pkg/core/err"
	"relman/pkg/core/logger"
)

// LocalStore 本地目录存储，只看目录第一层
type LocalStore struct {
	dir string
	log *logger.Log
	err *errorc.ErrorBuilder
}

func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{
		dir: dir,
		log: logger.GetLogger().WithEntryName("LocalStore"),
		err: errorc.NewErrorBuilder("LocalStore"),
	}
}

func (s *LocalStore) Find(ctx context.Context, prefix string) (*Object, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, s.err.NotFound("更新包目录不存在")
		}
		return nil, s.err.New("读取更新包目录失败", err).WithTraceID(ctx)
	}

	// os.ReadDir 按文件名排序，取第一个匹配的
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, s.err.New("读取文件信息失败", err).WithTraceID(ctx)
		}
		return &Object{Key: entry.Name(), Size: info.Size()}, nil
	}
	return nil, s.err.NotFound("更新包文件不存在: " + prefix)
}

func (s *LocalStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	// key 只能是目录下的文件名
	if key != filepath.Base(key) {
		return nil, s.err.BadRequest("非法的文件名: " + key)
	}
	f, err := os.Open(filepath.Join(s.dir, key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, s.err.NotFound("更新包文件不存在: " + key)
		}
		return nil, s.err.New("打开更新包文件失败", err).WithTraceID(ctx)
	}
	s.log.WithTrace(ctx).WithField("file", key).Debug("打开更新包文件")
	return f, nil
}
