package controller

import (
	"context"
	"path"
	"strconv"

	errorc "relman/pkg/core/err"
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

// PackageController 发布包接口，包括合并、部署、发布动作和下载
type PackageController struct {
	app *app.App
	err *errorc.ErrorBuilder
}

func NewPackageController(app *app.App) *PackageController {
	return &PackageController{
		app: app,
		err: errorc.NewErrorBuilder("PackageController"),
	}
}

func (ctrl *PackageController) RegisterRoutes(api fiber.Router, auth fiber.Handler) {
	g := api.Group("/packages", auth)
	g.Get("/merge/:id", ctrl.action(ctrl.app.MergePackage))
	g.Get("/deploy/:id", ctrl.action(ctrl.app.DeployPackage))
	g.Get("/release/:id", ctrl.action(ctrl.app.ReleasePackage))

	g.Get("/", ctrl.List)
	g.Post("/", ctrl.Create)
	g.Get("/:id", ctrl.Get)
	g.Patch("/:id", ctrl.Update)
	g.Delete("/:id", ctrl.Delete)
	g.Get("/:id/relationships/:rel", ctrl.GetRelationship)
	g.Patch("/:id/relationships/:rel", ctrl.relationshipHandler(service.RelReplace))
	g.Post("/:id/relationships/:rel", ctrl.relationshipHandler(service.RelAdd))
	g.Delete("/:id/relationships/:rel", ctrl.relationshipHandler(service.RelRemove))
}

// RegisterPublicRoutes 下载不需要登录
func (ctrl *PackageController) RegisterPublicRoutes(root fiber.Router) {
	root.Get("/packages/download/:package_id", ctrl.Download)
}

func (ctrl *PackageController) List(c *fiber.Ctx) error {
	page := mvc.ParsePage(c)
	page.Sort = "id DESC"
	conditions, err := mvc.ParseFilters(c, "project_id", "env_id", "status_id")
	if err != nil {
		return err
	}

	list, total, err := ctrl.app.PackageService.FindPageWithMap(util.Context(c), page, conditions)
	if err != nil {
		return err
	}
	return result.Page(c, total, list)
}

func (ctrl *PackageController) Get(c *fiber.Ctx) error {
	id, err := mvc.ParseID(c)
	if err != nil {
		return err
	}
	pkg, err := ctrl.app.PackageService.FindById(util.Context(c), id)
	return result.Once(c, pkg, err)
}

func (ctrl *PackageController) Create(c *fiber.Ctx) error {
	userID, err := security.GetUserID(c)
	if err != nil {
		return err
	}
	var req dto.CreatePackageReq
	if err := ctrl.parse(c, &req); err != nil {
		return err
	}

	pkg, err := ctrl.app.PackageService.CreatePackage(util.Context(c), &req, userID)
	return result.Once(c, pkg, err)
}

func (ctrl *PackageController) Update(c *fiber.Ctx) error {
	userID, err := security.GetUserID(c)
	if err != nil {
		return err
	}
	id, err := mvc.ParseID(c)
	if err != nil {
		return err
	}
	var req dto.UpdatePackageReq
	if err := ctrl.parse(c, &req); err != nil {
		return err
	}

	pkg, err := ctrl.app.PackageService.UpdatePackage(util.Context(c), id, &req, userID)
	return result.Once(c, pkg, err)
}

func (ctrl *PackageController) Delete(c *fiber.Ctx) error {
	ids, err := parseIDs(c)
	if err != nil {
		return err
	}
	err = ctrl.app.PackageService.DeletePackages(util.Context(c), ids)
	return result.Once(c, fiber.Map{"ids": ids}, err)
}

func (ctrl *PackageController) GetRelationship(c *fiber.Ctx) error {
	id, err := mvc.ParseID(c)
	if err != nil {
		return err
	}
	data, err := ctrl.app.PackageService.Relationship(util.Context(c), id, c.Params("rel"))
	return result.Once(c, data, err)
}

func (ctrl *PackageController) relationshipHandler(op service.RelOp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := security.GetUserID(c)
		if err != nil {
			return err
		}
		id, err := mvc.ParseID(c)
		if err != nil {
			return err
		}
		var req dto.RelationshipReq
		if err := c.BodyParser(&req); err != nil {
			return ctrl.err.New("解析请求参数失败", err).ValidWithCtx().WithTraceID(util.Context(c))
		}

		ctx := util.Context(c)
		rel := c.Params("rel")
		var pkg *model.Package
		if rel == "baselines" {
			ids, err := req.Many()
			if err != nil {
				return ctrl.err.New("关联数据格式错误", err).ValidWithCtx().WithTraceID(ctx)
			}
			pkg, err = ctrl.app.PackageService.SetBaselines(ctx, id, rel, op, ids, userID)
			if err != nil {
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
			pkg, err = ctrl.app.PackageService.SetOne(ctx, id, rel, target, userID)
			if err != nil {
				return err
			}
		}

		data, err := ctrl.app.PackageService.Relationship(ctx, pkg.ID, rel)
		return result.Once(c, data, err)
	}
}

// action 合并、部署、发布共用，返回包和 detail
func (ctrl *PackageController) action(run func(ctx context.Context, id int64) (*model.Package, string, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := mvc.ParseID(c)
		if err != nil {
			return err
		}
		pkg, detail, err := run(util.Context(c), id)
		if err != nil {
			return err
		}
		return result.Action(c, pkg, detail)
	}
}

// Download 按包名在存储中查找归档并流式返回
func (ctrl *PackageController) Download(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("package_id"), 10, 64)
	if err != nil || id <= 0 {
		return ctrl.err.New("ID参数错误", err).ValidWithCtx().WithTraceID(util.Context(c))
	}

	obj, rc, err := ctrl.app.OpenPackageArchive(util.Context(c), id)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEOctetStream)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+path.Base(obj.Key)+`"`)
	size := -1
	if obj.Size > 0 {
		size = int(obj.Size)
	}
	return c.SendStream(rc, size)
}

func (ctrl *PackageController) parse(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return ctrl.err.New("解析请求参数失败", err).ValidWithCtx().WithTraceID(util.Context(c))
	}
	if msg, err := utils.Validate(req); err != nil {
		return ctrl.err.New(msg, err).ValidWithCtx().WithTraceID(util.Context(c))
	}
	return nil
}
