package service

import (
	"testing"

	"relman/pkg/core/model/common"
	"relman/system/vcs/internal/model"

	"github.com/stretchr/testify/assert"
)

func baseline(id, app int64, sqlno string) *model.Baseline {
	b := &model.Baseline{AppID: app, Sqlno: common.ParseStringList(sqlno)}
	b.ID = id
	return b
}

func TestGroupBaselines(t *testing.T) {
	found := []*model.Baseline{
		baseline(1, 10, "A"),
		baseline(2, 20, "X"),
		baseline(3, 10, "B"),
		baseline(4, 30, ""),
	}
	ids := common.IDList{3, 2, 1, 9, 4, 3}

	groups, missing := GroupBaselines(ids, found)
	assert.Equal(t, []int64{9}, missing)
	if assert.Len(t, groups, 3) {
		assert.Equal(t, int64(10), groups[0].AppID)
		assert.Equal(t, int64(20), groups[1].AppID)
		assert.Equal(t, int64(30), groups[2].AppID)
		assert.Equal(t, int64(3), groups[0].Baselines[0].ID)
		assert.Equal(t, int64(1), groups[0].Baselines[1].ID)
	}

	// 每个存在的ID恰好出现一次
	seen := map[int64]int{}
	for _, g := range groups {
		for _, b := range g.Baselines {
			assert.Equal(t, g.AppID, b.AppID)
			seen[b.ID]++
		}
	}
	assert.Equal(t, map[int64]int{1: 1, 2: 1, 3: 1, 4: 1}, seen)
}

func TestGroupBaselines_Empty(t *testing.T) {
	groups, missing := GroupBaselines(common.IDList{}, nil)
	assert.Empty(t, groups)
	assert.Empty(t, missing)
}

func TestConcat(t *testing.T) {
	a := baseline(1, 10, "A")
	a.Versionno = common.StringList{"v1", ""}
	b := baseline(2, 10, "B")
	b.Versionno = common.StringList{"v2"}
	b.Rollbackno = common.StringList{"r2"}
	c := baseline(3, 10, ",C,")

	f := Concat([]*model.Baseline{a, b, c})
	assert.Equal(t, "A,B,C", f.Sqlno.String())
	assert.Equal(t, "v1,v2", f.Versionno.String())
	assert.Equal(t, "", f.Pckno.String())
	assert.Equal(t, "r2", f.Rollbackno.String())

	again := Concat([]*model.Baseline{a, b, c})
	assert.Equal(t, f, again)
}

func TestPackageName(t *testing.T) {
	assert.Equal(t, "demo_20240301_01", PackageName("demo", "2024-03-01", 1))
	assert.Equal(t, "demo_20240301_12", PackageName("demo", "2024-03-01", 12))
}
