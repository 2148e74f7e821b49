package service

import (
	"context"
	"fmt"
	"time"

	errorc "relman/pkg/core/err"
	"relman/pkg/core/logger"
	"relman/pkg/core/model/common"
	"relman/pkg/core/mvc"
	"relman/system/vcs/internal/dao"
	"relman/system/vcs/internal/model"
	"relman/system/vcs/internal/model/dto"
	"relman/utils"

	"gorm.io/gorm"
)

// BaselineService 基线服务，列表和详情按用户参与的项目过滤
type BaselineService struct {
	mvc.IBaseService[model.Baseline]
	dao        *dao.BaselineDao
	links      *dao.BaselineIssueDao
	packages   *dao.PackageDao
	statuses   *StatusService
	categories *IssueCategoryService
	issues     *IssueService
	users      Users
	cmdb       Cmdb
	db         *gorm.DB
	log        *logger.Log
	err        *errorc.ErrorBuilder
}

func NewBaselineService(
	db *gorm.DB,
	baselineDao *dao.BaselineDao,
	links *dao.BaselineIssueDao,
	packageDao *dao.PackageDao,
	statuses *StatusService,
	categories *IssueCategoryService,
	issues *IssueService,
	users Users,
	cmdb Cmdb,
	log *logger.Log,
) *BaselineService {
	return &BaselineService{
		IBaseService: mvc.NewBaseService[model.Baseline](baselineDao.IBaseDao),
		dao:          baselineDao,
		links:        links,
		packages:     packageDao,
		statuses:     statuses,
		categories:   categories,
		issues:       issues,
		users:        users,
		cmdb:         cmdb,
		db:           db,
		log:          log.WithEntryName("BaselineService"),
		err:          errorc.NewErrorBuilder("BaselineService"),
	}
}

// VisibleAppIDs 用户可见的应用，nil 表示全部可见
func (s *BaselineService) VisibleAppIDs(ctx context.Context, userID int64) ([]int64, error) {
	projectIDs, all, err := s.users.VisibleProjectIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if all {
		return nil, nil
	}
	appIDs, err := s.cmdb.AppIDsByProjects(ctx, projectIDs)
	if err != nil {
		return nil, err
	}
	if appIDs == nil {
		appIDs = []int64{}
	}
	return appIDs, nil
}

// FindVisible 查询详情，不可见的基线视为不存在
func (s *BaselineService) FindVisible(ctx context.Context, id, userID int64) (*model.Baseline, error) {
	baseline, err := s.dao.FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	appIDs, err := s.VisibleAppIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if appIDs != nil && !common.IDList(appIDs).Contains(baseline.AppID) {
		return nil, s.err.NotFound(fmt.Sprintf("基线不存在: %d", id)).WithTraceID(ctx)
	}
	return baseline, nil
}

func (s *BaselineService) FindPage(ctx context.Context, page *mvc.Page, conditions map[string]interface{}, userID int64) ([]*model.Baseline, int64, error) {
	appIDs, err := s.VisibleAppIDs(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return s.dao.FindPageVisible(ctx, page, conditions, appIDs)
}

// FindOrdered 按给定顺序返回存在的基线
func (s *BaselineService) FindOrdered(ctx context.Context, ids common.IDList) ([]*model.Baseline, error) {
	found, err := s.dao.FindByIds(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*model.Baseline, len(found))
	for _, b := range found {
		byID[b.ID] = b
	}
	out := make([]*model.Baseline, 0, len(found))
	for _, id := range ids {
		if b, ok := byID[id]; ok {
			out = append(out, b)
		}
	}
	return out, nil
}

// checkApp 应用必须存在，且在用户可见范围内
func (s *BaselineService) checkApp(ctx context.Context, appID, userID int64) error {
	if _, err := s.cmdb.GetApp(ctx, appID); err != nil {
		return err
	}
	appIDs, err := s.VisibleAppIDs(ctx, userID)
	if err != nil {
		return err
	}
	if appIDs != nil && !common.IDList(appIDs).Contains(appID) {
		return s.err.Forbidden(fmt.Sprintf("无权操作应用 %d 的基线", appID)).WithTraceID(ctx)
	}
	return nil
}

// CreateBaseline 提交基线，开发者为当前用户，状态为 SIT 提交
func (s *BaselineService) CreateBaseline(ctx context.Context, req *dto.CreateBaselineReq, userID int64) (*model.Baseline, error) {
	if err := s.checkApp(ctx, req.AppID, userID); err != nil {
		return nil, err
	}
	if req.IssueCategoryID != nil {
		if _, err := s.categories.FindById(ctx, *req.IssueCategoryID); err != nil {
			return nil, err
		}
	}
	links := map[model.IssueKind][]int64{
		model.IssueBug:         req.Bugs,
		model.IssueTask:        req.Tasks,
		model.IssueRequirement: req.Requirements,
	}
	for kind, ids := range links {
		if err := s.issues.CheckKind(ctx, ids, kind); err != nil {
			return nil, err
		}
	}

	created := req.Created
	if created == "" {
		created = time.Now().Format("2006-01-02")
	}
	baseline := &model.Baseline{
		AppID:           req.AppID,
		DeveloperID:     userID,
		StatusID:        model.StatusSitProposed,
		Updateno:        1,
		Content:         req.Content,
		Created:         utils.NormalizeReleaseDate(created),
		IssueCategoryID: req.IssueCategoryID,
		Sqlno:           common.StringList{}.Append(req.Sqlno),
		Versionno:       common.StringList{}.Append(req.Versionno),
		Pckno:           common.StringList{}.Append(req.Pckno),
		Rollbackno:      common.StringList{}.Append(req.Rollbackno),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.dao.WithTx(tx).Create(ctx, baseline); err != nil {
			return err
		}
		linkDao := s.links.WithTx(tx)
		for _, ids := range links {
			if err := linkDao.Add(ctx, baseline.ID, ids); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithTrace(ctx).WithField("baselineId", baseline.ID).WithField("appId", baseline.AppID).Info("提交基线")
	return baseline, nil
}

// UpdateBaseline 修改基线，每次修改 updateno 加一
func (s *BaselineService) UpdateBaseline(ctx context.Context, id int64, req *dto.UpdateBaselineReq, userID int64) (*model.Baseline, error) {
	stored, err := s.FindVisible(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	values := map[string]interface{}{"updateno": stored.Updateno + 1}
	if req.AppID != nil {
		if err := s.checkApp(ctx, *req.AppID, userID); err != nil {
			return nil, err
		}
		values["app_id"] = *req.AppID
	}
	if req.StatusID != nil {
		if _, err := s.statuses.FindById(ctx, *req.StatusID); err != nil {
			return nil, err
		}
		values["status_id"] = *req.StatusID
	}
	if req.IssueCategoryID != nil {
		if _, err := s.categories.FindById(ctx, *req.IssueCategoryID); err != nil {
			return nil, err
		}
		values["issue_category_id"] = *req.IssueCategoryID
	}
	if req.Content != nil {
		values["content"] = *req.Content
	}
	if req.Created != nil {
		values["created"] = utils.NormalizeReleaseDate(*req.Created)
	}
	if req.Sqlno != nil {
		values["sqlno"] = common.StringList{}.Append(*req.Sqlno)
	}
	if req.Versionno != nil {
		values["versionno"] = common.StringList{}.Append(*req.Versionno)
	}
	if req.Pckno != nil {
		values["pckno"] = common.StringList{}.Append(*req.Pckno)
	}
	if req.Rollbackno != nil {
		values["rollbackno"] = common.StringList{}.Append(*req.Rollbackno)
	}

	if _, err := s.dao.UpdateColumnsById(ctx, id, values); err != nil {
		return nil, err
	}
	return s.dao.FindById(ctx, id)
}

// DeleteBaselines 批量删除，有一个不存在或不可见则全部不删
func (s *BaselineService) DeleteBaselines(ctx context.Context, ids common.IDList, userID int64) error {
	ids = ids.Distinct()
	if len(ids) == 0 {
		return s.err.BadRequest("缺少基线ID").WithTraceID(ctx)
	}
	found, err := s.dao.FindByIds(ctx, ids)
	if err != nil {
		return err
	}
	_, missing := GroupBaselines(ids, found)
	if len(missing) > 0 {
		return s.err.NotFound(fmt.Sprintf("基线不存在: %v", missing)).WithTraceID(ctx)
	}
	appIDs, err := s.VisibleAppIDs(ctx, userID)
	if err != nil {
		return err
	}
	if appIDs != nil {
		for _, b := range found {
			if !common.IDList(appIDs).Contains(b.AppID) {
				return s.err.NotFound(fmt.Sprintf("基线不存在: %d", b.ID)).WithTraceID(ctx)
			}
		}
	}

	// 合并基线被删时同步移出所属发布包的 merge_blineno
	owners := common.IDList{}
	for _, b := range found {
		if b.PackageID != nil {
			owners = append(owners, *b.PackageID)
		}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := s.dao.WithTx(tx).DeleteIn(ctx, ids)
		if err != nil {
			return err
		}
		if n != int64(len(ids)) {
			return s.err.NotFound("部分基线已被删除").WithTraceID(ctx)
		}
		return s.packages.WithTx(tx).DetachMerged(ctx, owners.Distinct(), ids)
	})
	if err != nil {
		return err
	}

	s.log.WithTrace(ctx).WithField("ids", ids.String()).Info("删除基线")
	return nil
}

// Relationship 查询基线的关联资源
func (s *BaselineService) Relationship(ctx context.Context, id int64, rel string, userID int64) (interface{}, error) {
	rel = canonicalRel(rel)
	b, err := s.FindVisible(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	switch rel {
	case "developer":
		return dto.ToOne("user", &b.DeveloperID), nil
	case "app":
		return dto.ToOne("app", &b.AppID), nil
	case "status":
		return dto.ToOne("status", &b.StatusID), nil
	case "package":
		return dto.ToOne("package", b.PackageID), nil
	case "issue_category":
		return dto.ToOne("issue_category", b.IssueCategoryID), nil
	}
	if kind, ok := model.ParseIssueKind(rel); ok {
		ids, err := s.links.FindIssueIDs(ctx, id, kind)
		if err != nil {
			return nil, err
		}
		return dto.ToMany(rel, ids), nil
	}
	return nil, s.unknownRelationship(ctx, rel)
}

// SetOne 替换单个关联，package 与 issue_category 可以置空
func (s *BaselineService) SetOne(ctx context.Context, id int64, rel string, target *dto.ResourceID, userID int64) error {
	rel = canonicalRel(rel)
	if _, err := s.FindVisible(ctx, id, userID); err != nil {
		return err
	}

	var column string
	var value interface{}
	switch rel {
	case "developer", "app", "status":
		if target == nil {
			return s.err.BadRequest("关联 " + rel + " 不能为空").WithTraceID(ctx)
		}
		var err error
		switch rel {
		case "developer":
			column = "developer_id"
			_, err = s.users.GetUser(ctx, target.ID)
		case "app":
			column = "app_id"
			err = s.checkApp(ctx, target.ID, userID)
		case "status":
			column = "status_id"
			_, err = s.statuses.FindById(ctx, target.ID)
		}
		if err != nil {
			return err
		}
		value = target.ID
	case "package", "issue_category":
		column = rel + "_id"
		if target != nil {
			var err error
			if rel == "package" {
				_, err = s.packages.FindById(ctx, target.ID)
			} else {
				_, err = s.categories.FindById(ctx, target.ID)
			}
			if err != nil {
				return err
			}
			value = target.ID
		}
	default:
		return s.unknownRelationship(ctx, rel)
	}

	_, err := s.dao.UpdateColumnsById(ctx, id, map[string]interface{}{column: value})
	return err
}

// SetMany 修改缺陷、任务、需求关联
func (s *BaselineService) SetMany(ctx context.Context, id int64, rel string, op RelOp, issueIDs []int64, userID int64) error {
	kind, ok := model.ParseIssueKind(rel)
	if !ok {
		return s.unknownRelationship(ctx, rel)
	}
	if _, err := s.FindVisible(ctx, id, userID); err != nil {
		return err
	}
	if op != RelRemove {
		if err := s.issues.CheckKind(ctx, issueIDs, kind); err != nil {
			return err
		}
	}

	switch op {
	case RelAdd:
		return s.links.Add(ctx, id, issueIDs)
	case RelRemove:
		return s.links.Remove(ctx, id, issueIDs)
	}
	current, err := s.links.FindIssueIDs(ctx, id, kind)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		links := s.links.WithTx(tx)
		if err := links.Remove(ctx, id, current); err != nil {
			return err
		}
		return links.Add(ctx, id, issueIDs)
	})
}

func (s *BaselineService) unknownRelationship(ctx context.Context, rel string) error {
	return s.err.NotFound("未知的关联: " + rel).WithTraceID(ctx)
}

// canonicalRel 兼容旧路由的拼写 isssue_category
func canonicalRel(rel string) string {
	if rel == "isssue_category" {
		return "issue_category"
	}
	return rel
}
