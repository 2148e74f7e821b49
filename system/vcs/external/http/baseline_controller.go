package controller

import (
	"net/url"

	errorc "relman/pkg/core/err"
	"relman/pkg/core/model/common"
	"relman/pkg/core/mvc"
	"relman/pkg/core/result"
	"relman/pkg/core/security"
	"relman/pkg/core/util"
	"relman/system/vcs/internal/app"
	"relman/system/vcs/internal/model"
	"relman/system/vcs/internal/model/dto"
	"relman/system/vcs/internal/service"
	"relman/utils"

	"github.com/gofiber/fiber/v2"
)

// BaselineController 基线接口
type BaselineController struct {
	app *app.App
	err *errorc.ErrorBuilder
}

func NewBaselineController(app *app.App) *BaselineController {
	return &BaselineController{
		app: app,
		err: errorc.NewErrorBuilder("BaselineController"),
	}
}

func (ctrl *BaselineController) RegisterRoutes(api fiber.Router, auth fiber.Handler) {
	g := api.Group("/baselines", auth)
	g.Get("/", ctrl.List)
	g.Post("/", ctrl.Create)
	g.Get("/:id", ctrl.Get)
	g.Patch("/:id", ctrl.Update)
	g.Delete("/:id", ctrl.Delete)
	g.Get("/:id/relationships/:rel", ctrl.GetRelationship)
	g.Patch("/:id/relationships/:rel", ctrl.relationshipHandler(service.RelReplace))
	g.Post("/:id/relationships/:rel", ctrl.relationshipHandler(service.RelAdd))
	g.Delete("/:id/relationships/:rel", ctrl.relationshipHandler(service.RelRemove))

	api.Get("/baseline/update/:id", auth, ctrl.TriggerUpdate)
}

func (ctrl *BaselineController) List(c *fiber.Ctx) error {
	userID, err := security.GetUserID(c)
	if err != nil {
		return err
	}
	page := mvc.ParsePage(c)
	conditions, err := mvc.ParseFilters(c, "app_id", "status_id", "developer_id")
	if err != nil {
		return err
	}

	list, total, err := ctrl.app.BaselineService.FindPage(util.Context(c), page, conditions, userID)
	if err != nil {
		return err
	}
	return result.Page(c, total, list)
}

func (ctrl *BaselineController) Get(c *fiber.Ctx) error {
	id, userID, err := ctrl.target(c)
	if err != nil {
		return err
	}
	baseline, err := ctrl.app.BaselineService.FindVisible(util.Context(c), id, userID)
	return result.Once(c, baseline, err)
}

func (ctrl *BaselineController) Create(c *fiber.Ctx) error {
	userID, err := security.GetUserID(c)
	if err != nil {
		return err
	}
	var req dto.CreateBaselineReq
	if err := ctrl.parse(c, &req); err != nil {
		return err
	}

	baseline, err := ctrl.app.BaselineService.CreateBaseline(util.Context(c), &req, userID)
	return result.Once(c, baseline, err)
}

func (ctrl *BaselineController) Update(c *fiber.Ctx) error {
	id, userID, err := ctrl.target(c)
	if err != nil {
		return err
	}
	var req dto.UpdateBaselineReq
	if err := ctrl.parse(c, &req); err != nil {
		return err
	}

	baseline, err := ctrl.app.BaselineService.UpdateBaseline(util.Context(c), id, &req, userID)
	return result.Once(c, baseline, err)
}

// Delete id 可以是单个ID或 [1,2,3]
func (ctrl *BaselineController) Delete(c *fiber.Ctx) error {
	userID, err := security.GetUserID(c)
	if err != nil {
		return err
	}
	ids, err := parseIDs(c)
	if err != nil {
		return err
	}

	err = ctrl.app.BaselineService.DeleteBaselines(util.Context(c), ids, userID)
	return result.Once(c, fiber.Map{"ids": ids}, err)
}

func (ctrl *BaselineController) GetRelationship(c *fiber.Ctx) error {
	id, userID, err := ctrl.target(c)
	if err != nil {
		return err
	}
	data, err := ctrl.app.BaselineService.Relationship(util.Context(c), id, c.Params("rel"), userID)
	return result.Once(c, data, err)
}

// relationshipHandler 单个关联只支持 PATCH，问题关联支持替换、追加和删除
func (ctrl *BaselineController) relationshipHandler(op service.RelOp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, userID, err := ctrl.target(c)
		if err != nil {
			return err
		}
		var req dto.RelationshipReq
		if err := c.BodyParser(&req); err != nil {
			return ctrl.err.New("解析请求参数失败", err).ValidWithCtx().WithTraceID(util.Context(c))
		}

		ctx := util.Context(c)
		rel := c.Params("rel")
		if _, many := model.ParseIssueKind(rel); many {
			ids, err := req.Many()
			if err != nil {
				return ctrl.err.New("关联数据格式错误", err).ValidWithCtx().WithTraceID(ctx)
			}
			if err := ctrl.app.BaselineService.SetMany(ctx, id, rel, op, ids, userID); err != nil {
				return err
			}
		} else {
			if op != service.RelReplace {
				return ctrl.err.BadRequest("单个关联只支持 PATCH").WithTraceID(ctx)
			}
			target, err := req.One()
			if err != nil {
				return ctrl.err.New("关联数据格式错误", err).ValidWithCtx().WithTraceID(ctx)
			}
			if err := ctrl.app.BaselineService.SetOne(ctx, id, rel, target, userID); err != nil {
				return err
			}
		}

		data, err := ctrl.app.BaselineService.Relationship(ctx, id, rel, userID)
		return result.Once(c, data, err)
	}
}

// TriggerUpdate 触发基线更新任务，失败时 400 且 detail 为原因
func (ctrl *BaselineController) TriggerUpdate(c *fiber.Ctx) error {
	id, userID, err := ctrl.target(c)
	if err != nil {
		return err
	}
	baseline, detail, err := ctrl.app.UpdateBaseline(util.Context(c), id, userID)
	if err != nil {
		return err
	}
	return result.Action(c, baseline, detail)
}

func (ctrl *BaselineController) target(c *fiber.Ctx) (int64, int64, error) {
	userID, err := security.GetUserID(c)
	if err != nil {
		return 0, 0, err
	}
	id, err := mvc.ParseID(c)
	if err != nil {
		return 0, 0, err
	}
	return id, userID, nil
}

func (ctrl *BaselineController) parse(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return ctrl.err.New("解析请求参数失败", err).ValidWithCtx().WithTraceID(util.Context(c))
	}
	if msg, err := utils.Validate(req); err != nil {
		return ctrl.err.New(msg, err).ValidWithCtx().WithTraceID(util.Context(c))
	}
	return nil
}

// parseIDs 解析路径中的 1 或 [1,2,3]
func parseIDs(c *fiber.Ctx) (common.IDList, error) {
	raw, err := url.PathUnescape(c.Params("id"))
	if err != nil {
		raw = c.Params("id")
	}
	ids, err := common.ParseIDList(raw)
	if err != nil || len(ids) == 0 {
		return nil, errorc.New("ID参数错误: "+raw, err).ValidWithCtx().WithTraceID(util.Context(c))
	}
	for _, id := range ids {
		if id <= 0 {
			return nil, errorc.New("ID参数错误: "+raw, nil).ValidWithCtx().WithTraceID(util.Context(c))
		}
	}
	return ids, nil
}
