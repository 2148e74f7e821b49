package dao

import (
	"context"

	errorc "relman/pkg/core/err"
	"relman/pkg/core/model/common"
	"relman/pkg/core/mvc"
	"relman/system/vcs/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StatusDao struct {
	mvc.IBaseDao[model.Status]
}

func NewStatusDao(db *gorm.DB) *StatusDao {
	return &StatusDao{IBaseDao: mvc.NewGormDao[model.Status](db)}
}

type IssueCategoryDao struct {
	mvc.IBaseDao[model.IssueCategory]
}

func NewIssueCategoryDao(db *gorm.DB) *IssueCategoryDao {
	return &IssueCategoryDao{IBaseDao: mvc.NewGormDao[model.IssueCategory](db)}
}

type IssueDao struct {
	mvc.IBaseDao[model.Issue]
}

func NewIssueDao(db *gorm.DB) *IssueDao {
	return &IssueDao{IBaseDao: mvc.NewGormDao[model.Issue](db)}
}

// BaselineDao 基线数据访问层
type BaselineDao struct {
	mvc.IBaseDao[model.Baseline]
	err *errorc.ErrorBuilder
	db  *gorm.DB
}

func NewBaselineDao(db *gorm.DB) *BaselineDao {
	return &BaselineDao{
		IBaseDao: mvc.NewGormDao[model.Baseline](db),
		err:      errorc.NewErrorBuilder("BaselineDao"),
		db:       db,
	}
}

// FindPageVisible 分页查询，appIDs 为 nil 时不限制应用，按 id 倒序
func (d *BaselineDao) FindPageVisible(ctx context.Context, page *mvc.Page, conditions map[string]interface{}, appIDs []int64) ([]*model.Baseline, int64, error) {
	var (
		list  []*model.Baseline
		total int64
	)
	db := d.db.WithContext(ctx).Model(&model.Baseline{})
	if len(conditions) > 0 {
		db = db.Where(conditions)
	}
	if appIDs != nil {
		if len(appIDs) == 0 {
			return []*model.Baseline{}, 0, nil
		}
		db = db.Where("app_id IN ?", appIDs)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, d.err.New("统计基线失败", err).DB()
	}
	if err := db.Scopes(mvc.Paginate(page)).Order("id DESC").Find(&list).Error; err != nil {
		return nil, 0, d.err.New("查询基线失败", err).DB()
	}
	return list, total, nil
}

// DeleteIn 物理删除存在的基线及其问题关联，不存在的忽略
func (d *BaselineDao) DeleteIn(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	if err := d.db.WithContext(ctx).Where("baseline_id IN ?", ids).Delete(&model.BaselineIssue{}).Error; err != nil {
		return 0, d.err.New("删除基线问题失败", err).DB()
	}
	result := d.db.WithContext(ctx).Unscoped().Where("id IN ?", ids).Delete(&model.Baseline{})
	if result.Error != nil {
		return 0, d.err.New("删除基线失败", result.Error).DB()
	}
	return result.RowsAffected, nil
}

func (d *BaselineDao) WithTx(tx *gorm.DB) *BaselineDao {
	return &BaselineDao{
		IBaseDao: mvc.NewGormDao[model.Baseline](tx),
		err:      d.err,
		db:       tx,
	}
}

// PackageDao 发布包数据访问层
type PackageDao struct {
	mvc.IBaseDao[model.Package]
	err *errorc.ErrorBuilder
	db  *gorm.DB
}

func NewPackageDao(db *gorm.DB) *PackageDao {
	return &PackageDao{
		IBaseDao: mvc.NewGormDao[model.Package](db),
		err:      errorc.NewErrorBuilder("PackageDao"),
		db:       db,
	}
}

// CountByProjectDate 同项目同日期已有的包数，含已删除的，序号不复用
func (d *PackageDao) CountByProjectDate(ctx context.Context, projectID int64, rlsdate string) (int64, error) {
	var count int64
	err := d.db.WithContext(ctx).Unscoped().Model(&model.Package{}).
		Where("project_id = ? AND rlsdate = ?", projectID, rlsdate).
		Count(&count).Error
	if err != nil {
		return 0, d.err.New("统计发布包失败", err).DB()
	}
	return count, nil
}

// DetachMerged 从发布包的 merge_blineno 中移除已删除的合并基线
func (d *PackageDao) DetachMerged(ctx context.Context, packageIDs []int64, baselineIDs common.IDList) error {
	if len(packageIDs) == 0 {
		return nil
	}
	var list []*model.Package
	if err := d.db.WithContext(ctx).Where("id IN ?", packageIDs).Find(&list).Error; err != nil {
		return d.err.New("查询发布包失败", err).DB()
	}
	for _, pkg := range list {
		kept := make(common.IDList, 0, len(pkg.MergeBlineno))
		for _, id := range pkg.MergeBlineno {
			if !baselineIDs.Contains(id) {
				kept = append(kept, id)
			}
		}
		if len(kept) == len(pkg.MergeBlineno) {
			continue
		}
		err := d.db.WithContext(ctx).Model(&model.Package{}).Where("id = ?", pkg.ID).
			Update("merge_blineno", kept).Error
		if err != nil {
			return d.err.New("更新发布包合并基线失败", err).DB()
		}
	}
	return nil
}

func (d *PackageDao) WithTx(tx *gorm.DB) *PackageDao {
	return &PackageDao{
		IBaseDao: mvc.NewGormDao[model.Package](tx),
		err:      d.err,
		db:       tx,
	}
}

// BaselineIssueDao 基线与问题的关联
type BaselineIssueDao struct {
	err *errorc.ErrorBuilder
	db  *gorm.DB
}

func NewBaselineIssueDao(db *gorm.DB) *BaselineIssueDao {
	return &BaselineIssueDao{
		err: errorc.NewErrorBuilder("BaselineIssueDao"),
		db:  db,
	}
}

// FindIssueIDs 基线关联的某类问题
func (d *BaselineIssueDao) FindIssueIDs(ctx context.Context, baselineID int64, kind model.IssueKind) ([]int64, error) {
	ids := make([]int64, 0)
	err := d.db.WithContext(ctx).Model(&model.BaselineIssue{}).
		Joins("JOIN vcs_issue ON vcs_issue.id = vcs_baseline_issue.issue_id AND vcs_issue.deleted_at IS NULL").
		Where("vcs_baseline_issue.baseline_id = ? AND vcs_issue.kind = ?", baselineID, kind).
		Order("vcs_baseline_issue.issue_id").
		Pluck("vcs_baseline_issue.issue_id", &ids).Error
	if err != nil {
		return nil, d.err.New("查询基线问题失败", err).DB()
	}
	return ids, nil
}

// Add 追加关联，已存在的忽略
func (d *BaselineIssueDao) Add(ctx context.Context, baselineID int64, issueIDs []int64) error {
	if len(issueIDs) == 0 {
		return nil
	}
	rows := make([]model.BaselineIssue, 0, len(issueIDs))
	for _, id := range issueIDs {
		rows = append(rows, model.BaselineIssue{BaselineID: baselineID, IssueID: id})
	}
	err := d.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
	if err != nil {
		return d.err.New("保存基线问题失败", err).DB()
	}
	return nil
}

// Remove 删除指定关联
func (d *BaselineIssueDao) Remove(ctx context.Context, baselineID int64, issueIDs []int64) error {
	if len(issueIDs) == 0 {
		return nil
	}
	err := d.db.WithContext(ctx).
		Where("baseline_id = ? AND issue_id IN ?", baselineID, issueIDs).
		Delete(&model.BaselineIssue{}).Error
	if err != nil {
		return d.err.New("删除基线问题失败", err).DB()
	}
	return nil
}

func (d *BaselineIssueDao) WithTx(tx *gorm.DB) *BaselineIssueDao {
	return &BaselineIssueDao{err: d.err, db: tx}
}
