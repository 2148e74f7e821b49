package dao

import (
	"context"
	"errors"

	errorc "relman/pkg/core/err"
	"relman/pkg/core/mvc"
	"relman/system/cmdb/internal/model"

	"gorm.io/gorm"
)

type ProjectDao struct {
	mvc.IBaseDao[model.Project]
}

func NewProjectDao(db *gorm.DB) *ProjectDao {
	return &ProjectDao{IBaseDao: mvc.NewGormDao[model.Project](db)}
}

type SubsystemDao struct {
	mvc.IBaseDao[model.Subsystem]
}

func NewSubsystemDao(db *gorm.DB) *SubsystemDao {
	return &SubsystemDao{IBaseDao: mvc.NewGormDao[model.Subsystem](db)}
}

type EnvironmentDao struct {
	mvc.IBaseDao[model.Environment]
}

func NewEnvironmentDao(db *gorm.DB) *EnvironmentDao {
	return &EnvironmentDao{IBaseDao: mvc.NewGormDao[model.Environment](db)}
}

// AppDao 应用数据访问层
type AppDao struct {
	mvc.IBaseDao[model.App]
	err *errorc.ErrorBuilder
	db  *gorm.DB
}

func NewAppDao(db *gorm.DB) *AppDao {
	return &AppDao{
		IBaseDao: mvc.NewGormDao[model.App](db),
		err:      errorc.NewErrorBuilder("AppDao"),
		db:       db,
	}
}

// FindByTuple 根据项目、子系统、环境查找应用
func (d *AppDao) FindByTuple(ctx context.Context, projectID, subsystemID, envID int64) (*model.App, error) {
	var app model.App
	err := d.db.WithContext(ctx).
		Where("project_id = ? AND subsystem_id = ? AND env_id = ?", projectID, subsystemID, envID).
		First(&app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, d.err.New("应用不存在", err).WithCode(errorc.ErrorCodeNotFound)
		}
		return nil, d.err.New("查询应用失败", err).DB()
	}
	return &app, nil
}

// FindIDsByProjects 项目下全部应用ID
func (d *AppDao) FindIDsByProjects(ctx context.Context, projectIDs []int64) ([]int64, error) {
	ids := make([]int64, 0)
	if len(projectIDs) == 0 {
		return ids, nil
	}
	err := d.db.WithContext(ctx).Model(&model.App{}).
		Where("project_id IN ?", projectIDs).
		Order("id").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, d.err.New("查询项目应用失败", err).DB()
	}
	return ids, nil
}
