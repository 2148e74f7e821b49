package service

import (
	"context"

	errorc "relman/pkg/core/err"
	"relman/pkg/core/logger"
	"relman/pkg/core/mvc"
	"relman/system/cmdb/internal/dao"
	"relman/system/cmdb/internal/model"
)

type ProjectService struct {
	mvc.IBaseService[model.Project]
}

func NewProjectService(d *dao.ProjectDao) *ProjectService {
	return &ProjectService{IBaseService: mvc.NewBaseService[model.Project](d.IBaseDao)}
}

type EnvironmentService struct {
	mvc.IBaseService[model.Environment]
}

func NewEnvironmentService(d *dao.EnvironmentDao) *EnvironmentService {
	return &EnvironmentService{IBaseService: mvc.NewBaseService[model.Environment](d.IBaseDao)}
}

// SubsystemService 子系统服务，创建时校验项目
type SubsystemService struct {
	mvc.IBaseService[model.Subsystem]
	projects *ProjectService
}

func NewSubsystemService(d *dao.SubsystemDao, projects *ProjectService) *SubsystemService {
	return &SubsystemService{
		IBaseService: mvc.NewBaseService[model.Subsystem](d.IBaseDao),
		projects:     projects,
	}
}

func (s *SubsystemService) Create(ctx context.Context, subsystem *model.Subsystem) error {
	if _, err := s.projects.FindById(ctx, subsystem.ProjectID); err != nil {
		return err
	}
	return s.IBaseService.Create(ctx, subsystem)
}

// AppService 应用服务
type AppService struct {
	mvc.IBaseService[model.App]
	dao        *dao.AppDao
	projects   *ProjectService
	subsystems *SubsystemService
	envs       *EnvironmentService
	log        *logger.Log
	err        *errorc.ErrorBuilder
}

func NewAppService(d *dao.AppDao, projects *ProjectService, subsystems *SubsystemService, envs *EnvironmentService, log *logger.Log) *AppService {
	return &AppService{
		IBaseService: mvc.NewBaseService[model.App](d.IBaseDao),
		dao:          d,
		projects:     projects,
		subsystems:   subsystems,
		envs:         envs,
		log:          log.WithEntryName("AppService"),
		err:          errorc.NewErrorBuilder("AppService"),
	}
}

// Create 校验引用并保证三元组唯一
func (s *AppService) Create(ctx context.Context, app *model.App) error {
	if _, err := s.projects.FindById(ctx, app.ProjectID); err != nil {
		return err
	}
	subsystem, err := s.subsystems.FindById(ctx, app.SubsystemID)
	if err != nil {
		return err
	}
	if subsystem.ProjectID != app.ProjectID {
		return s.err.New("子系统不属于该项目", nil).ValidWithCtx()
	}
	if _, err := s.envs.FindById(ctx, app.EnvID); err != nil {
		return err
	}

	exists, err := s.dao.ExistsByMap(ctx, map[string]interface{}{
		"project_id":   app.ProjectID,
		"subsystem_id": app.SubsystemID,
		"env_id":       app.EnvID,
	})
	if err != nil {
		return err
	}
	if exists {
		return s.err.New("应用已存在", nil).ValidWithCtx()
	}
	return s.IBaseService.Create(ctx, app)
}

func (s *AppService) FindByTuple(ctx context.Context, projectID, subsystemID, envID int64) (*model.App, error) {
	return s.dao.FindByTuple(ctx, projectID, subsystemID, envID)
}

func (s *AppService) FindIDsByProjects(ctx context.Context, projectIDs []int64) ([]int64, error) {
	return s.dao.FindIDsByProjects(ctx, projectIDs)
}
