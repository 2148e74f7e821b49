package service

import (
	"context"
	"fmt"
	"strings"
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

// PackageService 发布包服务，源基线变化时通过 MergeEngine 重新合并
type PackageService struct {
	mvc.IBaseService[model.Package]
	dao         *dao.PackageDao
	baselineDao *dao.BaselineDao
	engine      *MergeEngine
	statuses    *StatusService
	cmdb        Cmdb
	db          *gorm.DB
	log         *logger.Log
	err         *errorc.ErrorBuilder
}

func NewPackageService(db *gorm.DB, packageDao *dao.PackageDao, baselineDao *dao.BaselineDao, engine *MergeEngine, statuses *StatusService, cmdb Cmdb, log *logger.Log) *PackageService {
	return &PackageService{
		IBaseService: mvc.NewBaseService[model.Package](packageDao.IBaseDao),
		dao:          packageDao,
		baselineDao:  baselineDao,
		engine:       engine,
		statuses:     statuses,
		cmdb:         cmdb,
		db:           db,
		log:          log.WithEntryName("PackageService"),
		err:          errorc.NewErrorBuilder("PackageService"),
	}
}

// PackageName 项目名_日期_序号，序号两位
func PackageName(project, rlsdate string, seq int) string {
	return fmt.Sprintf("%s_%s_%02d", project, strings.ReplaceAll(rlsdate, "-", ""), seq)
}

// CreatePackage 生成名称并合并源基线
func (s *PackageService) CreatePackage(ctx context.Context, req *dto.CreatePackageReq, userID int64) (*model.Package, error) {
	project, err := s.cmdb.GetProject(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}
	if _, err := s.cmdb.GetEnv(ctx, req.EnvID); err != nil {
		return nil, err
	}
	status := req.StatusID
	if status == 0 {
		status = model.StatusPackageCreated
	} else if _, err := s.statuses.FindById(ctx, status); err != nil {
		return nil, err
	}

	rlsdate := req.Rlsdate
	if rlsdate == "" {
		rlsdate = time.Now().Format("2006-01-02")
	}
	rlsdate = utils.NormalizeReleaseDate(rlsdate)

	var seq int
	if req.PackageCount != nil {
		seq = *req.PackageCount
	} else {
		count, err := s.dao.CountByProjectDate(ctx, req.ProjectID, rlsdate)
		if err != nil {
			return nil, err
		}
		seq = int(count) + 1
	}

	pkg := &model.Package{
		Name:      PackageName(project.Name, rlsdate, seq),
		ProjectID: req.ProjectID,
		EnvID:     req.EnvID,
		Rlsdate:   rlsdate,
		StatusID:  status,
		Remark:    req.Remark,
		Blineno:   req.Blineno,
	}
	if err := s.engine.Create(ctx, pkg, userID); err != nil {
		return nil, err
	}
	return pkg, nil
}

// UpdatePackage 修改发布包。源基线、项目、环境或日期变化时重新合并
func (s *PackageService) UpdatePackage(ctx context.Context, id int64, req *dto.UpdatePackageReq, userID int64) (*model.Package, error) {
	pkg, err := s.dao.FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	oldMerged := pkg.MergeBlineno

	values := map[string]interface{}{}
	remerge := false
	if req.Name != nil {
		// 名称用作下载时的文件前缀，不能为空
		if strings.TrimSpace(*req.Name) == "" {
			return nil, s.err.BadRequest("发布包名称不能为空").WithTraceID(ctx)
		}
		values["name"] = *req.Name
	}
	if req.ProjectID != nil && *req.ProjectID != pkg.ProjectID {
		if _, err := s.cmdb.GetProject(ctx, *req.ProjectID); err != nil {
			return nil, err
		}
		values["project_id"] = *req.ProjectID
		pkg.ProjectID = *req.ProjectID
		remerge = true
	}
	if req.EnvID != nil && *req.EnvID != pkg.EnvID {
		if _, err := s.cmdb.GetEnv(ctx, *req.EnvID); err != nil {
			return nil, err
		}
		values["env_id"] = *req.EnvID
		pkg.EnvID = *req.EnvID
		remerge = true
	}
	if req.Rlsdate != nil {
		rlsdate := utils.NormalizeReleaseDate(*req.Rlsdate)
		if rlsdate != pkg.Rlsdate {
			values["rlsdate"] = rlsdate
			pkg.Rlsdate = rlsdate
			remerge = true
		}
	}
	if req.StatusID != nil {
		if _, err := s.statuses.FindById(ctx, *req.StatusID); err != nil {
			return nil, err
		}
		values["status_id"] = *req.StatusID
	}
	if req.Remark != nil {
		values["remark"] = *req.Remark
	}
	if req.Blineno != nil {
		pkg.Blineno = req.Blineno.Distinct()
		remerge = true
	}

	switch {
	case remerge:
		if err := s.engine.Update(ctx, pkg, oldMerged, values, userID); err != nil {
			return nil, err
		}
	case len(values) > 0:
		if _, err := s.dao.UpdateColumnsById(ctx, id, values); err != nil {
			return nil, err
		}
	}
	return s.dao.FindById(ctx, id)
}

// DeletePackages 删除发布包及其合并基线，有一个不存在则全部不删
func (s *PackageService) DeletePackages(ctx context.Context, ids common.IDList) error {
	ids = ids.Distinct()
	if len(ids) == 0 {
		return s.err.BadRequest("缺少发布包ID").WithTraceID(ctx)
	}
	found, err := s.dao.FindByIds(ctx, ids)
	if err != nil {
		return err
	}
	if len(found) != len(ids) {
		return s.err.NotFound(fmt.Sprintf("发布包不存在: %s", ids.String())).WithTraceID(ctx)
	}
	merged := common.IDList{}
	for _, pkg := range found {
		merged = append(merged, pkg.MergeBlineno...)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.baselineDao.WithTx(tx).DeleteIn(ctx, merged); err != nil {
			return err
		}
		_, err := s.dao.WithTx(tx).DeleteByIds(ctx, ids)
		return err
	})
}

// SetStatus 动作完成后更新状态
func (s *PackageService) SetStatus(ctx context.Context, pkg *model.Package, status int64) error {
	if _, err := s.dao.UpdateColumnsById(ctx, pkg.ID, map[string]interface{}{"status_id": status}); err != nil {
		return err
	}
	pkg.StatusID = status
	return nil
}

// Relationship 查询发布包的关联资源
func (s *PackageService) Relationship(ctx context.Context, id int64, rel string) (interface{}, error) {
	pkg, err := s.dao.FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	switch rel {
	case "project":
		return dto.ToOne("project", &pkg.ProjectID), nil
	case "env":
		return dto.ToOne("env", &pkg.EnvID), nil
	case "baselines":
		return dto.ToMany("baseline", pkg.Blineno), nil
	}
	return nil, s.err.NotFound("未知的关联: " + rel).WithTraceID(ctx)
}

// SetOne 替换项目或环境
func (s *PackageService) SetOne(ctx context.Context, id int64, rel string, target *dto.ResourceID, userID int64) (*model.Package, error) {
	if rel != "project" && rel != "env" {
		if rel == "baselines" {
			return nil, s.err.BadRequest("baselines 是列表关联").WithTraceID(ctx)
		}
		return nil, s.err.NotFound("未知的关联: " + rel).WithTraceID(ctx)
	}
	if target == nil {
		return nil, s.err.BadRequest("关联 " + rel + " 不能为空").WithTraceID(ctx)
	}
	req := &dto.UpdatePackageReq{}
	if rel == "project" {
		req.ProjectID = &target.ID
	} else {
		req.EnvID = &target.ID
	}
	return s.UpdatePackage(ctx, id, req, userID)
}

// SetBaselines 修改源基线列表并重新合并
func (s *PackageService) SetBaselines(ctx context.Context, id int64, rel string, op RelOp, ids []int64, userID int64) (*model.Package, error) {
	if rel != "baselines" {
		return nil, s.err.BadRequest("关联 " + rel + " 不是列表").WithTraceID(ctx)
	}
	pkg, err := s.dao.FindById(ctx, id)
	if err != nil {
		return nil, err
	}

	var next common.IDList
	switch op {
	case RelAdd:
		next = append(append(common.IDList{}, pkg.Blineno...), ids...).Distinct()
	case RelRemove:
		next = common.IDList{}
		for _, bid := range pkg.Blineno {
			if !common.IDList(ids).Contains(bid) {
				next = append(next, bid)
			}
		}
	default:
		next = common.IDList(ids).Distinct()
	}
	return s.UpdatePackage(ctx, id, &dto.UpdatePackageReq{Blineno: &next}, userID)
}
