package client

import (
	"context"

	"relman/system/cmdb/api/dto"
	"relman/system/cmdb/internal/app"
	"relman/system/cmdb/internal/model"
)

// CmdbClient 配置管理组件对外客户端
type CmdbClient struct {
	app *app.App
}

func NewCmdbClient(app *app.App) *CmdbClient {
	return &CmdbClient{app: app}
}

func (c *CmdbClient) GetProject(ctx context.Context, id int64) (*dto.ProjectDTO, error) {
	p, err := c.app.ProjectService.FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.ProjectDTO{ID: p.ID, Name: p.Name}, nil
}

func (c *CmdbClient) GetEnv(ctx context.Context, id int64) (*dto.EnvDTO, error) {
	e, err := c.app.EnvironmentService.FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.EnvDTO{ID: e.ID, Name: e.Name}, nil
}

func (c *CmdbClient) GetApp(ctx context.Context, id int64) (*dto.AppDTO, error) {
	a, err := c.app.AppService.FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	return toAppDTO(a), nil
}

// FindApp 根据项目、子系统、环境查找应用
func (c *CmdbClient) FindApp(ctx context.Context, projectID, subsystemID, envID int64) (*dto.AppDTO, error) {
	a, err := c.app.AppService.FindByTuple(ctx, projectID, subsystemID, envID)
	if err != nil {
		return nil, err
	}
	return toAppDTO(a), nil
}

// AppIDsByProjects 项目下全部应用ID
func (c *CmdbClient) AppIDsByProjects(ctx context.Context, projectIDs []int64) ([]int64, error) {
	return c.app.AppService.FindIDsByProjects(ctx, projectIDs)
}

func toAppDTO(a *model.App) *dto.AppDTO {
	return &dto.AppDTO{
		ID:          a.ID,
		ProjectID:   a.ProjectID,
		SubsystemID: a.SubsystemID,
		EnvID:       a.EnvID,
		JenkinsJob:  a.JenkinsJob,
	}
}
