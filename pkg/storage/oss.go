package storage

import (
	"context"
	"errors"
	"io"
	"strings"

	"relman/pkg/core/config"
	errorc "relman/pkg/core/err"
	"relman/pkg/core/logger"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

// OssStore 阿里云 OSS 存储，对象 key 为 prefix + 文件名
type OssStore struct {
	config config.OssConfig
	bucket *oss.Bucket
	log    *logger.Log
	err    *errorc.ErrorBuilder
}

func NewOssStore(cfg config.OssConfig) (*OssStore, error) {
	log := logger.GetLogger().WithEntryName("OssStore")
	errBuilder := errorc.NewErrorBuilder("OssStore")

	if cfg.Endpoint == "" || cfg.AccessKeyID == "" || cfg.AccessKeySecret == "" || cfg.Bucket == "" {
		return nil, errBuilder.New("阿里云OSS配置不完整", nil).ValidWithCtx().ToLog(log.Entry)
	}

	client, err := oss.New(cfg.Endpoint, cfg.AccessKeyID, cfg.AccessKeySecret)
	if err != nil {
		return nil, errBuilder.New("创建OSS客户端失败", err).Third().ToLog(log.Entry)
	}
	bucket, err := client.Bucket(cfg.Bucket)
	if err != nil {
		return nil, errBuilder.New("获取OSS存储空间失败", err).Third().ToLog(log.Entry)
	}

	return &OssStore{
		config: cfg,
		bucket: bucket,
		log:    log,
		err:    errBuilder,
	}, nil
}

func (s *OssStore) objectKey(name string) string {
	prefix := strings.TrimPrefix(s.config.Prefix, "/")
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return prefix + name
}

func (s *OssStore) Find(ctx context.Context, prefix string) (*Object, error) {
	result, err := s.bucket.ListObjects(oss.Prefix(s.objectKey(prefix)), oss.MaxKeys(1))
	if err != nil {
		return nil, s.err.New("查询OSS对象失败", err).Third().WithTraceID(ctx).ToLog(s.log.WithTrace(ctx).Entry)
	}
	if len(result.Objects) == 0 {
		return nil, s.err.NotFound("更新包文件不存在: " + prefix)
	}
	obj := result.Objects[0]
	return &Object{Key: obj.Key, Size: obj.Size}, nil
}

func (s *OssStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	s.log.WithTrace(ctx).WithField("objectKey", key).Info("下载OSS更新包")
	body, err := s.bucket.GetObject(key)
	if err != nil {
		var svcErr oss.ServiceError
		if errors.As(err, &svcErr) && svcErr.StatusCode == 404 {
			return nil, s.err.NotFound("更新包文件不存在: " + key)
		}
		return nil, s.err.New("下载OSS更新包失败", err).Third().WithTraceID(ctx).ToLog(s.log.WithTrace(ctx).Entry)
	}
	return body, nil
}
