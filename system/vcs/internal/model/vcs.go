package model

import "relman/pkg/core/model/common"

// 状态码
const (
	StatusSitProposed     int64 = 203
	StatusMerged          int64 = 213
	StatusPackageCreated  int64 = 220
	StatusPackageMerged   int64 = 221
	StatusPackageDeployed int64 = 222
	StatusPackageReleased int64 = 223
)

// MergedContent 合并基线的 content 标记
const MergedContent = "merged release"

// Status 状态字典，ID 即状态码
type Status struct {
	ID   int64  `gorm:"primaryKey;autoIncrement:false" json:"id" validate:"required" comment:"状态码"`
	Name string `gorm:"size:64;not null" json:"name" validate:"required,max=64" comment:"状态名称"`
}

func (Status) TableName() string {
	return "vcs_status"
}

// DefaultStatuses 迁移时写入的状态
var DefaultStatuses = []Status{
	{ID: StatusSitProposed, Name: "SIT proposed"},
	{ID: StatusMerged, Name: "merged release"},
	{ID: StatusPackageCreated, Name: "package created"},
	{ID: StatusPackageMerged, Name: "package merged"},
	{ID: StatusPackageDeployed, Name: "package deployed"},
	{ID: StatusPackageReleased, Name: "package released"},
}

// IssueCategory 问题分类
type IssueCategory struct {
	common.Model
	Name string `gorm:"size:64;not null" json:"name" validate:"required,max=64" comment:"分类名称"`
}

func (IssueCategory) TableName() string {
	return "vcs_issue_category"
}

type IssueKind string

const (
	IssueBug         IssueKind = "bug"
	IssueTask        IssueKind = "task"
	IssueRequirement IssueKind = "requirement"
)

// ParseIssueKind 关系名到问题类型
func ParseIssueKind(name string) (IssueKind, bool) {
	switch kind := IssueKind(name); kind {
	case IssueBug, IssueTask, IssueRequirement:
		return kind, true
	}
	return "", false
}

// Issue 缺陷、任务或需求
type Issue struct {
	common.Model
	Kind      IssueKind `gorm:"size:16;not null;index" json:"kind" validate:"required,oneof=bug task requirement" comment:"类型"`
	Title     string    `gorm:"size:255;not null" json:"title" validate:"required,max=255" comment:"标题"`
	ProjectID int64     `gorm:"index" json:"project_id" comment:"项目"`
	Remark    string    `gorm:"size:500" json:"remark" comment:"备注"`
}

func (Issue) TableName() string {
	return "vcs_issue"
}

// BaselineIssue 基线与问题的关联
type BaselineIssue struct {
	BaselineID int64 `gorm:"primaryKey"`
	IssueID    int64 `gorm:"primaryKey;index"`
}

func (BaselineIssue) TableName() string {
	return "vcs_baseline_issue"
}

// Baseline 某个应用的一次版本基线
type Baseline struct {
	common.Model
	AppID           int64             `gorm:"not null;index" json:"app_id"`
	DeveloperID     int64             `gorm:"not null;index" json:"developer_id"`
	StatusID        int64             `gorm:"not null;index" json:"status_id"`
	Updateno        int               `gorm:"not null;default:1" json:"updateno"`
	Content         string            `gorm:"type:text" json:"content"`
	Created         string            `gorm:"size:10" json:"created"`
	IssueCategoryID *int64            `json:"issue_category_id"`
	PackageID       *int64            `gorm:"index" json:"package_id"`
	Sqlno           common.StringList `gorm:"type:text" json:"sqlno"`
	Versionno       common.StringList `gorm:"type:text" json:"versionno"`
	Pckno           common.StringList `gorm:"type:text" json:"pckno"`
	Rollbackno      common.StringList `gorm:"type:text" json:"rollbackno"`
}

func (Baseline) TableName() string {
	return "vcs_baseline"
}

// Package 发布包，blineno 为源基线，merge_blineno 为合并生成的基线
type Package struct {
	common.Model
	Name         string        `gorm:"size:128;not null;index" json:"name"`
	ProjectID    int64         `gorm:"not null;index" json:"project_id"`
	EnvID        int64         `gorm:"not null;index" json:"env_id"`
	Rlsdate      string        `gorm:"size:10;index" json:"rlsdate"`
	StatusID     int64         `gorm:"index" json:"status_id"`
	Remark       string        `gorm:"size:500" json:"remark"`
	Blineno      common.IDList `gorm:"type:text" json:"blineno"`
	MergeBlineno common.IDList `gorm:"type:text" json:"merge_blineno"`
}

func (Package) TableName() string {
	return "vcs_package"
}
