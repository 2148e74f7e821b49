package mvc

import (
	"context"
)

// IBaseService 基础服务接口
type IBaseService[T any] interface {
	// Create 创建实体
	Create(ctx context.Context, entity *T) error
	// DeleteById 根据ID删除
	DeleteById(ctx context.Context, id interface{}) error
	// UpdateById 根据ID更新
	UpdateById(ctx context.Context, id interface{}, entity *T) (int64, error)
	// FindById 根据ID查询
	FindById(ctx context.Context, id interface{}) (*T, error)
	// FindByIds 根据ID批量查询
	FindByIds(ctx context.Context, ids []int64) ([]*T, error)
	// FindList 查询列表
	FindList(ctx context.Context, condition *T) ([]*T, error)
	// FindPageWithMap 分页查询
	FindPageWithMap(ctx context.Context, page *Page, condition map[string]interface{}) ([]*T, int64, error)
}

// BaseService 基础服务实现
type BaseService[T any] struct {
	Dao IBaseDao[T]
}

// NewBaseService 创建基础服务实例
func NewBaseService[T any](dao IBaseDao[T]) *BaseService[T] {
	return &BaseService[T]{
		Dao: dao,
	}
}

func (s *BaseService[T]) Create(ctx context.Context, entity *T) error {
	return s.Dao.Create(ctx, entity)
}

func (s *BaseService[T]) DeleteById(ctx context.Context, id interface{}) error {
	return s.Dao.DeleteById(ctx, id)
}

func (s *BaseService[T]) UpdateById(ctx context.Context, id interface{}, entity *T) (int64, error) {
	return s.Dao.UpdateById(ctx, id, entity)
}

func (s *BaseService[T]) FindById(ctx context.Context, id interface{}) (*T, error) {
	return s.Dao.FindById(ctx, id)
}

func (s *BaseService[T]) FindByIds(ctx context.Context, ids []int64) ([]*T, error) {
	return s.Dao.FindByIds(ctx, ids)
}

func (s *BaseService[T]) FindList(ctx context.Context, condition *T) ([]*T, error) {
	return s.Dao.FindList(ctx, condition)
}

func (s *BaseService[T]) FindPageWithMap(ctx context.Context, page *Page, condition map[string]interface{}) ([]*T, int64, error) {
	return s.Dao.FindPageByMap(ctx, page, condition)
}
