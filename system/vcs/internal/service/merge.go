package service

import (
	"context"
	"fmt"

	errorc "relman/pkg/core/err"
	"relman/pkg/core/logger"
	"relman/pkg/core/model/common"
	"relman/system/vcs/internal/dao"
	"relman/system/vcs/internal/model"

	"gorm.io/gorm"
)

// Group 同一应用的基线，组内保持输入顺序
type Group struct {
	AppID     int64
	Baselines []*model.Baseline
}

// GroupBaselines 按应用分组，组的顺序为应用首次出现的顺序。
// 重复的ID只保留第一次，找不到的ID放入 missing。
func GroupBaselines(ids common.IDList, found []*model.Baseline) (groups []*Group, missing []int64) {
	byID := make(map[int64]*model.Baseline, len(found))
	for _, b := range found {
		byID[b.ID] = b
	}

	index := make(map[int64]*Group)
	for _, id := range ids.Distinct() {
		b, ok := byID[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		g, ok := index[b.AppID]
		if !ok {
			g = &Group{AppID: b.AppID}
			index[b.AppID] = g
			groups = append(groups, g)
		}
		g.Baselines = append(g.Baselines, b)
	}
	return groups, missing
}

// Fields 合并后的编号字段
type Fields struct {
	Sqlno      common.StringList
	Versionno  common.StringList
	Pckno      common.StringList
	Rollbackno common.StringList
}

// Concat 按顺序把每条基线的编号追加到已合并的值之后
func Concat(baselines []*model.Baseline) Fields {
	f := Fields{
		Sqlno:      common.StringList{},
		Versionno:  common.StringList{},
		Pckno:      common.StringList{},
		Rollbackno: common.StringList{},
	}
	for _, b := range baselines {
		f.Sqlno = f.Sqlno.Append(b.Sqlno)
		f.Versionno = f.Versionno.Append(b.Versionno)
		f.Pckno = f.Pckno.Append(b.Pckno)
		f.Rollbackno = f.Rollbackno.Append(b.Rollbackno)
	}
	return f
}

// MergeEngine 发布包的基线合并。
// 读取和目标应用解析在事务外完成，删除旧合并基线、插入新合并基线和写包在同一事务中。
type MergeEngine struct {
	db          *gorm.DB
	baselineDao *dao.BaselineDao
	packageDao  *dao.PackageDao
	cmdb        Cmdb
	log         *logger.Log
	err         *errorc.ErrorBuilder
}

func NewMergeEngine(db *gorm.DB, baselineDao *dao.BaselineDao, packageDao *dao.PackageDao, cmdb Cmdb, log *logger.Log) *MergeEngine {
	return &MergeEngine{
		db:          db,
		baselineDao: baselineDao,
		packageDao:  packageDao,
		cmdb:        cmdb,
		log:         log.WithEntryName("MergeEngine"),
		err:         errorc.NewErrorBuilder("MergeEngine"),
	}
}

type mergePlan struct {
	sources common.IDList
	merged  []*model.Baseline
}

// plan 分组并为每组生成一条待插入的合并基线
func (e *MergeEngine) plan(ctx context.Context, pkg *model.Package, developerID int64, strict bool) (*mergePlan, error) {
	ids := pkg.Blineno.Distinct()
	found, err := e.baselineDao.FindByIds(ctx, ids)
	if err != nil {
		return nil, err
	}
	groups, missing := GroupBaselines(ids, found)
	if strict && len(missing) > 0 {
		return nil, e.err.NotFound(fmt.Sprintf("基线不存在: %v", missing)).WithTraceID(ctx)
	}

	p := &mergePlan{sources: common.IDList{}, merged: make([]*model.Baseline, 0, len(groups))}
	for _, id := range ids {
		if !common.IDList(missing).Contains(id) {
			p.sources = append(p.sources, id)
		}
	}
	for _, g := range groups {
		src, err := e.cmdb.GetApp(ctx, g.AppID)
		if err != nil {
			return nil, e.err.New(fmt.Sprintf("基线所属应用不存在: %d", g.AppID), err).WithTraceID(ctx)
		}
		target, err := e.cmdb.FindApp(ctx, pkg.ProjectID, src.SubsystemID, pkg.EnvID)
		if err != nil {
			msg := fmt.Sprintf("合并目标应用不存在: 项目 %d 子系统 %d 环境 %d", pkg.ProjectID, src.SubsystemID, pkg.EnvID)
			return nil, e.err.New(msg, err).WithTraceID(ctx)
		}

		f := Concat(g.Baselines)
		p.merged = append(p.merged, &model.Baseline{
			AppID:       target.ID,
			DeveloperID: developerID,
			StatusID:    model.StatusMerged,
			Updateno:    1,
			Content:     model.MergedContent,
			Created:     pkg.Rlsdate,
			Sqlno:       f.Sqlno,
			Versionno:   f.Versionno,
			Pckno:       f.Pckno,
			Rollbackno:  f.Rollbackno,
		})
	}
	return p, nil
}

// insert 依次写入合并基线，返回新ID
func (e *MergeEngine) insert(ctx context.Context, tx *gorm.DB, packageID int64, merged []*model.Baseline) (common.IDList, error) {
	baselines := e.baselineDao.WithTx(tx)
	ids := make(common.IDList, 0, len(merged))
	for _, b := range merged {
		pid := packageID
		b.PackageID = &pid
		if err := baselines.Create(ctx, b); err != nil {
			return nil, e.err.New("写入合并基线失败", err).DB()
		}
		ids = append(ids, b.ID)
	}
	return ids, nil
}

// Create 写入新包并合并，源基线中不存在的ID被跳过
func (e *MergeEngine) Create(ctx context.Context, pkg *model.Package, developerID int64) error {
	p, err := e.plan(ctx, pkg, developerID, false)
	if err != nil {
		return err
	}

	err = e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		pkg.Blineno = p.sources
		pkg.MergeBlineno = common.IDList{}
		packages := e.packageDao.WithTx(tx)
		if err := packages.Create(ctx, pkg); err != nil {
			return err
		}
		ids, err := e.insert(ctx, tx, pkg.ID, p.merged)
		if err != nil {
			return err
		}
		pkg.MergeBlineno = ids
		_, err = packages.UpdateColumnsById(ctx, pkg.ID, map[string]interface{}{"merge_blineno": ids})
		return err
	})
	if err != nil {
		return err
	}

	e.log.WithTrace(ctx).WithFields(map[string]interface{}{
		"packageId":    pkg.ID,
		"blineno":      pkg.Blineno.String(),
		"mergeBlineno": pkg.MergeBlineno.String(),
	}).Info("发布包合并完成")
	return nil
}

// Update 重新合并已有的包。pkg 为修改后的包，oldMerged 为库中记录的合并基线，
// values 为同时要写入的其他列。源基线必须全部存在。
func (e *MergeEngine) Update(ctx context.Context, pkg *model.Package, oldMerged common.IDList, values map[string]interface{}, developerID int64) error {
	p, err := e.plan(ctx, pkg, developerID, true)
	if err != nil {
		return err
	}

	err = e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := e.baselineDao.WithTx(tx).DeleteIn(ctx, oldMerged); err != nil {
			return err
		}
		ids, err := e.insert(ctx, tx, pkg.ID, p.merged)
		if err != nil {
			return err
		}

		cols := make(map[string]interface{}, len(values)+2)
		for k, v := range values {
			cols[k] = v
		}
		cols["blineno"] = p.sources
		cols["merge_blineno"] = ids
		if _, err := e.packageDao.WithTx(tx).UpdateColumnsById(ctx, pkg.ID, cols); err != nil {
			return err
		}
		pkg.Blineno = p.sources
		pkg.MergeBlineno = ids
		return nil
	})
	if err != nil {
		return err
	}

	e.log.WithTrace(ctx).WithFields(map[string]interface{}{
		"packageId":    pkg.ID,
		"removed":      oldMerged.String(),
		"mergeBlineno": pkg.MergeBlineno.String(),
	}).Info("发布包重新合并完成")
	return nil
}
