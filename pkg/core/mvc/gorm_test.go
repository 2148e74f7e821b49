package mvc

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	errorc "relman/pkg/core/err"
	"relman/pkg/core/fiber_handle"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type widget struct {
	ID      int64  `gorm:"primaryKey" json:"id"`
	Name    string `json:"name" validate:"required"`
	OwnerID int64  `json:"owner_id"`
}

func newTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	// 内存库每个连接独立，固定单连接
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&widget{}))
	return db
}

func TestGormDao_CRUD(t *testing.T) {
	dao := NewGormDao[widget](newTestDB(t))
	ctx := context.Background()

	w := &widget{Name: "a", OwnerID: 1}
	require.NoError(t, dao.Create(ctx, w))
	require.NoError(t, dao.CreateBatch(ctx, []*widget{{Name: "b", OwnerID: 1}, {Name: "c", OwnerID: 2}}))

	got, err := dao.FindById(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, "a", got.Name)

	list, err := dao.FindByIds(ctx, []int64{w.ID, 3})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	count, err := dao.CountByMap(ctx, map[string]interface{}{"owner_id": 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	_, err = dao.UpdateColumnsById(ctx, w.ID, map[string]interface{}{"name": "a2"})
	require.NoError(t, err)
	got, _ = dao.FindById(ctx, w.ID)
	assert.Equal(t, "a2", got.Name)

	rows, err := dao.DeleteByIds(ctx, []int64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, int64(2), rows)

	_, err = dao.FindById(ctx, 1)
	assert.True(t, errorc.IsNotFound(err))
	assert.True(t, errorc.IsNotFound(dao.DeleteById(ctx, 99)))
}

func TestGormDao_WithTxRollback(t *testing.T) {
	db := newTestDB(t)
	dao := NewGormDao[widget](db)
	ctx := context.Background()

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := dao.WithTx(tx).Create(ctx, &widget{Name: "tx"}); err != nil {
			return err
		}
		return errorc.New("rollback", nil)
	})
	require.Error(t, err)

	exists, err := dao.ExistsByMap(ctx, map[string]interface{}{"name": "tx"})
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGormDao_FindPageByMap(t *testing.T) {
	dao := NewGormDao[widget](newTestDB(t))
	ctx := context.Background()
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		require.NoError(t, dao.Create(ctx, &widget{Name: name, OwnerID: 7}))
	}

	list, total, err := dao.FindPageByMap(ctx, &Page{PageNum: 2, Size: 2, Sort: "id desc"}, map[string]interface{}{"owner_id": 7})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, list, 2)
	assert.Equal(t, "c", list[0].Name)
	assert.Equal(t, "b", list[1].Name)
}

func TestBaseController(t *testing.T) {
	dao := NewGormDao[widget](newTestDB(t))
	app := fiber.New(fiber.Config{ErrorHandler: fiber_handle.ErrHandler})
	Register[widget](app.Group("/widgets"), NewBaseController[widget](NewBaseService[widget](dao), "owner_id"))

	do := func(method, url, body string) (int, map[string]interface{}) {
		req := httptest.NewRequest(method, url, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		raw, _ := io.ReadAll(resp.Body)
		out := map[string]interface{}{}
		_ = json.Unmarshal(raw, &out)
		return resp.StatusCode, out
	}

	code, _ := do("POST", "/widgets", `{"name":"w1","owner_id":3}`)
	assert.Equal(t, 200, code)
	code, _ = do("POST", "/widgets", `{"owner_id":3}`)
	assert.Equal(t, 400, code)
	code, _ = do("POST", "/widgets", `{"name":"w2","owner_id":4}`)
	assert.Equal(t, 200, code)

	code, out := do("GET", "/widgets?filter[owner_id]=3", "")
	assert.Equal(t, 200, code)
	data := out["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["total"])

	code, out = do("PATCH", "/widgets/1", `{"name":"renamed"}`)
	assert.Equal(t, 200, code)
	assert.Equal(t, "renamed", out["data"].(map[string]interface{})["name"])

	code, _ = do("GET", "/widgets/9", "")
	assert.Equal(t, 404, code)
	code, _ = do("GET", "/widgets/abc", "")
	assert.Equal(t, 400, code)
	code, _ = do("DELETE", "/widgets/1", "")
	assert.Equal(t, 200, code)
	code, _ = do("GET", "/widgets?filter[owner_id]=x", "")
	assert.Equal(t, 400, code)
}
