package service

import (
	"context"
	"fmt"

	errorc "relman/pkg/core/err"
	"relman/pkg/core/mvc"
	"relman/system/vcs/internal/dao"
	"relman/system/vcs/internal/model"
)

type StatusService struct {
	mvc.IBaseService[model.Status]
}

func NewStatusService(d *dao.StatusDao) *StatusService {
	return &StatusService{IBaseService: mvc.NewBaseService[model.Status](d.IBaseDao)}
}

type IssueCategoryService struct {
	mvc.IBaseService[model.IssueCategory]
}

func NewIssueCategoryService(d *dao.IssueCategoryDao) *IssueCategoryService {
	return &IssueCategoryService{IBaseService: mvc.NewBaseService[model.IssueCategory](d.IBaseDao)}
}

// IssueService 缺陷、任务、需求
type IssueService struct {
	mvc.IBaseService[model.Issue]
	err *errorc.ErrorBuilder
}

func NewIssueService(d *dao.IssueDao) *IssueService {
	return &IssueService{
		IBaseService: mvc.NewBaseService[model.Issue](d.IBaseDao),
		err:          errorc.NewErrorBuilder("IssueService"),
	}
}

// CheckKind 校验问题存在且类型一致
func (s *IssueService) CheckKind(ctx context.Context, ids []int64, kind model.IssueKind) error {
	if len(ids) == 0 {
		return nil
	}
	issues, err := s.FindByIds(ctx, ids)
	if err != nil {
		return err
	}
	byID := make(map[int64]*model.Issue, len(issues))
	for _, issue := range issues {
		byID[issue.ID] = issue
	}
	for _, id := range ids {
		issue, ok := byID[id]
		if !ok {
			return s.err.NotFound(fmt.Sprintf("问题不存在: %d", id)).WithTraceID(ctx)
		}
		if issue.Kind != kind {
			return s.err.BadRequest(fmt.Sprintf("问题 %d 不是 %s", id, kind)).WithTraceID(ctx)
		}
	}
	return nil
}
