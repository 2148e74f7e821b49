package mvc

import (
	"strconv"

	errorc "relman/pkg/core/err"
	"relman/pkg/core/result"
	"relman/pkg/core/util"
	"relman/utils"

	"github.com/gofiber/fiber/v2"
)

// IBaseController 基础控制器接口
type IBaseController[T any] interface {
	// Create 创建实体
	Create(c *fiber.Ctx) error
	// DeleteById 根据ID删除
	DeleteById(c *fiber.Ctx) error
	// UpdateById 根据ID更新
	UpdateById(c *fiber.Ctx) error
	// FindById 根据ID查询
	FindById(c *fiber.Ctx) error
	// FindPage 分页查询，支持 filter[列名]
	FindPage(c *fiber.Ctx) error
}

// BaseControllerImpl 基础控制器实现
type BaseControllerImpl[T any] struct {
	S       IBaseService[T]
	filters []string
	err     *errorc.ErrorBuilder
}

// NewBaseController 创建基础控制器实例，filters 为允许过滤的列
func NewBaseController[T any](service IBaseService[T], filters ...string) IBaseController[T] {
	return &BaseControllerImpl[T]{
		S:       service,
		filters: filters,
		err:     errorc.NewErrorBuilder("BaseController"),
	}
}

// Register 挂载 GET/POST / 与 GET/PATCH/DELETE /:id
func Register[T any](router fiber.Router, ctrl IBaseController[T], write ...fiber.Handler) {
	chain := func(h fiber.Handler) []fiber.Handler {
		return append(append([]fiber.Handler{}, write...), h)
	}
	router.Get("/", ctrl.FindPage)
	router.Get("/:id", ctrl.FindById)
	router.Post("/", chain(ctrl.Create)...)
	router.Patch("/:id", chain(ctrl.UpdateById)...)
	router.Delete("/:id", chain(ctrl.DeleteById)...)
}

func (ctrl *BaseControllerImpl[T]) Create(c *fiber.Ctx) error {
	var entity T
	if err := c.BodyParser(&entity); err != nil {
		return ctrl.err.New("解析请求参数失败", err).ValidWithCtx().WithTraceID(util.Context(c))
	}
	if errMsg, err := utils.Validate(&entity); err != nil {
		return ctrl.err.New(errMsg, err).ValidWithCtx().WithTraceID(util.Context(c))
	}

	err := ctrl.S.Create(util.Context(c), &entity)
	return result.Once(c, &entity, err)
}

func (ctrl *BaseControllerImpl[T]) DeleteById(c *fiber.Ctx) error {
	id, err := ParseID(c)
	if err != nil {
		return err
	}

	err = ctrl.S.DeleteById(util.Context(c), id)
	return result.Once(c, fiber.Map{"id": id}, err)
}

func (ctrl *BaseControllerImpl[T]) UpdateById(c *fiber.Ctx) error {
	id, err := ParseID(c)
	if err != nil {
		return err
	}
	var entity T
	if err := c.BodyParser(&entity); err != nil {
		return ctrl.err.New("解析请求参数失败", err).ValidWithCtx().WithTraceID(util.Context(c))
	}

	ctx := util.Context(c)
	if _, err := ctrl.S.FindById(ctx, id); err != nil {
		return err
	}
	if _, err := ctrl.S.UpdateById(ctx, id, &entity); err != nil {
		return err
	}
	updated, err := ctrl.S.FindById(ctx, id)
	return result.Once(c, updated, err)
}

func (ctrl *BaseControllerImpl[T]) FindById(c *fiber.Ctx) error {
	id, err := ParseID(c)
	if err != nil {
		return err
	}

	entity, err := ctrl.S.FindById(util.Context(c), id)
	return result.Once(c, entity, err)
}

func (ctrl *BaseControllerImpl[T]) FindPage(c *fiber.Ctx) error {
	page := ParsePage(c)
	page.Sort = "id"
	condition, err := ParseFilters(c, ctrl.filters...)
	if err != nil {
		return err
	}

	entities, total, err := ctrl.S.FindPageWithMap(util.Context(c), page, condition)
	if err != nil {
		return err
	}
	return result.Page(c, total, entities)
}

// ParseID 解析路径参数 id
func ParseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errorc.New("ID参数错误", err).ValidWithCtx().WithTraceID(util.Context(c))
	}
	return id, nil
}

// ParsePage 读取 page[number] 与 page[size]
func ParsePage(c *fiber.Ctx) *Page {
	return &Page{
		PageNum: c.QueryInt("page[number]", 1),
		Size:    c.QueryInt("page[size]", 30),
	}
}

// ParseFilters 读取 filter[列名]，只接受白名单中的整数列
func ParseFilters(c *fiber.Ctx, columns ...string) (map[string]interface{}, error) {
	conditions := make(map[string]interface{})
	for _, column := range columns {
		raw := c.Query("filter[" + column + "]")
		if raw == "" {
			continue
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, errorc.New("过滤参数错误: "+column, err).ValidWithCtx().WithTraceID(util.Context(c))
		}
		conditions[column] = v
	}
	return conditions, nil
}
