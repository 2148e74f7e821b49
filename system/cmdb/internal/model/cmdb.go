package model

import "relman/pkg/core/model/common"

// Project 项目
type Project struct {
	common.Model
	Name   string `gorm:"size:64;not null;uniqueIndex" json:"name" validate:"required,max=64" comment:"项目名称"`
	Remark string `gorm:"size:500" json:"remark" comment:"备注"`
}

func (Project) TableName() string {
	return "cmdb_project"
}

// Subsystem 项目下的子系统
type Subsystem struct {
	common.Model
	Name      string `gorm:"size:64;not null" json:"name" validate:"required,max=64" comment:"子系统名称"`
	ProjectID int64  `gorm:"not null;index" json:"project_id" validate:"required" comment:"项目"`
	Remark    string `gorm:"size:500" json:"remark" comment:"备注"`
}

func (Subsystem) TableName() string {
	return "cmdb_subsystem"
}

// Environment 部署环境，如 SIT、UAT、PROD
type Environment struct {
	common.Model
	Name   string `gorm:"size:32;not null;uniqueIndex" json:"name" validate:"required,max=32" comment:"环境名称"`
	Remark string `gorm:"size:500" json:"remark" comment:"备注"`
}

func (Environment) TableName() string {
	return "cmdb_env"
}

// App 应用，由项目、子系统、环境唯一确定
type App struct {
	common.Model
	ProjectID   int64  `gorm:"not null;uniqueIndex:idx_app_tuple" json:"project_id" validate:"required" comment:"项目"`
	SubsystemID int64  `gorm:"not null;uniqueIndex:idx_app_tuple" json:"subsystem_id" validate:"required" comment:"子系统"`
	EnvID       int64  `gorm:"not null;uniqueIndex:idx_app_tuple" json:"env_id" validate:"required" comment:"环境"`
	JenkinsJob  string `gorm:"size:255" json:"jenkins_job" comment:"更新任务"`
	Remark      string `gorm:"size:500" json:"remark" comment:"备注"`
}

func (App) TableName() string {
	return "cmdb_app"
}
