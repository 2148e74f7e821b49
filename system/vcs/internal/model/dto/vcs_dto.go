package dto

import (
	stdjson "encoding/json"
	"fmt"
	"strconv"

	"relman/pkg/core/model/common"

	json "github.com/json-iterator/go"
)

// CreateBaselineReq 提交基线，开发者、状态和更新次数由服务端决定
type CreateBaselineReq struct {
	AppID           int64             `json:"app_id" validate:"required" comment:"应用"`
	Content         string            `json:"content" validate:"max=4000" comment:"内容"`
	Created         string            `json:"created" validate:"omitempty,reldate" comment:"日期"`
	IssueCategoryID *int64            `json:"issue_category_id" comment:"问题分类"`
	Sqlno           common.StringList `json:"sqlno"`
	Versionno       common.StringList `json:"versionno"`
	Pckno           common.StringList `json:"pckno"`
	Rollbackno      common.StringList `json:"rollbackno"`
	Bugs            []int64           `json:"bugs"`
	Tasks           []int64           `json:"tasks"`
	Requirements    []int64           `json:"requirements"`
}

// UpdateBaselineReq 修改基线，未传的字段保持不变
type UpdateBaselineReq struct {
	AppID           *int64             `json:"app_id"`
	StatusID        *int64             `json:"status_id"`
	Content         *string            `json:"content" validate:"omitempty,max=4000" comment:"内容"`
	Created         *string            `json:"created" validate:"omitempty,reldate" comment:"日期"`
	IssueCategoryID *int64             `json:"issue_category_id"`
	Sqlno           *common.StringList `json:"sqlno"`
	Versionno       *common.StringList `json:"versionno"`
	Pckno           *common.StringList `json:"pckno"`
	Rollbackno      *common.StringList `json:"rollbackno"`
}

// CreatePackageReq 创建发布包，名称由服务端生成
type CreatePackageReq struct {
	ProjectID    int64         `json:"project_id" validate:"required" comment:"项目"`
	EnvID        int64         `json:"env_id" validate:"required" comment:"环境"`
	Rlsdate      string        `json:"rlsdate" validate:"omitempty,reldate" comment:"发布日期"`
	StatusID     int64         `json:"status_id"`
	Remark       string        `json:"remark" validate:"max=500" comment:"备注"`
	Blineno      common.IDList `json:"blineno"`
	PackageCount *int          `json:"package_count" validate:"omitempty,min=1,max=99" comment:"包序号"`
}

// UpdatePackageReq 修改发布包，blineno、项目、环境、日期变化时重新合并
type UpdatePackageReq struct {
	Name      *string        `json:"name" validate:"omitempty,min=1,max=128" comment:"名称"`
	ProjectID *int64         `json:"project_id"`
	EnvID     *int64         `json:"env_id"`
	Rlsdate   *string        `json:"rlsdate" validate:"omitempty,reldate" comment:"发布日期"`
	StatusID  *int64         `json:"status_id"`
	Remark    *string        `json:"remark" validate:"omitempty,max=500" comment:"备注"`
	Blineno   *common.IDList `json:"blineno"`
}

// ResourceID 关系中的资源标识
type ResourceID struct {
	Type string `json:"type"`
	ID   int64  `json:"id"`
}

// UnmarshalJSON id 可以是数字或数字字符串
func (r *ResourceID) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type string      `json:"type"`
		ID   interface{} `json:"id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Type = raw.Type
	switch v := raw.ID.(type) {
	case float64:
		r.ID = int64(v)
	case string:
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid resource id %q", v)
		}
		r.ID = id
	default:
		return fmt.Errorf("invalid resource id %v", raw.ID)
	}
	return nil
}

// RelationshipReq 关系修改请求体 {"data": null | {...} | [...]}
type RelationshipReq struct {
	Data stdjson.RawMessage `json:"data"`
}

// One 解析单个资源，null 返回 nil
func (r *RelationshipReq) One() (*ResourceID, error) {
	if len(r.Data) == 0 || string(r.Data) == "null" {
		return nil, nil
	}
	var id ResourceID
	if err := json.Unmarshal(r.Data, &id); err != nil {
		return nil, err
	}
	return &id, nil
}

// Many 解析资源列表，null 视为空列表
func (r *RelationshipReq) Many() ([]int64, error) {
	ids := make([]int64, 0)
	if len(r.Data) == 0 || string(r.Data) == "null" {
		return ids, nil
	}
	var items []ResourceID
	if err := json.Unmarshal(r.Data, &items); err != nil {
		return nil, err
	}
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return ids, nil
}

func ToOne(kind string, id *int64) interface{} {
	if id == nil || *id == 0 {
		return nil
	}
	return &ResourceID{Type: kind, ID: *id}
}

func ToMany(kind string, ids []int64) []ResourceID {
	out := make([]ResourceID, 0, len(ids))
	for _, id := range ids {
		out = append(out, ResourceID{Type: kind, ID: id})
	}
	return out
}
