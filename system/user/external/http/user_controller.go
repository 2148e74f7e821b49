package controller

import (
	"relman/base"
	errorc "relman/pkg/core/err"
	"relman/pkg/core/logger"
	"relman/pkg/core/mvc"
	"relman/pkg/core/result"
	"relman/pkg/core/util"
	"relman/system/user/internal/app"
	"relman/system/user/internal/model"
	"relman/system/user/internal/model/dto"
	"relman/utils"

	"github.com/gofiber/fiber/v2"
)

// UserController 用户管理，仅管理员可写
type UserController struct {
	app *app.App
	err *errorc.ErrorBuilder
	log *logger.Log
}

func NewUserController(app *app.App) *UserController {
	return &UserController{
		app: app,
		err: errorc.NewErrorBuilder("UserController"),
		log: logger.GetLogger().WithEntryName("UserController"),
	}
}

func (ctrl *UserController) RegisterRoutes(api fiber.Router) {
	auth := base.UserAuth.RequireAuth()
	admin := base.UserAuth.RequireAdmin()

	users := api.Group("/users", auth)
	users.Get("/", ctrl.List)
	users.Get("/:id", ctrl.GetByID)
	users.Post("/", admin, ctrl.Create)
	users.Patch("/:id", admin, ctrl.Update)
	users.Delete("/:id", admin, ctrl.Delete)
	users.Get("/:id/projects", ctrl.Projects)
	users.Put("/:id/projects", admin, ctrl.SetProjects)

	mvc.Register[model.Role](api.Group("/roles", auth), mvc.NewBaseController[model.Role](ctrl.app.RoleService), admin)
}

func (ctrl *UserController) List(ctx *fiber.Ctx) error {
	users, total, err := ctrl.app.UserService.FindPageWithMap(util.Context(ctx), &mvc.Page{
		PageNum: ctx.QueryInt("page[number]", 1),
		Size:    ctx.QueryInt("page[size]", 30),
		Sort:    "id",
	}, nil)
	if err != nil {
		return err
	}
	return result.Page(ctx, total, users)
}

func (ctrl *UserController) GetByID(ctx *fiber.Ctx) error {
	id, err := mvc.ParseID(ctx)
	if err != nil {
		return err
	}
	user, err := ctrl.app.UserService.FindById(util.Context(ctx), id)
	return result.Once(ctx, user, err)
}

func (ctrl *UserController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateUserReq
	if err := ctx.BodyParser(&req); err != nil {
		return ctrl.err.New("解析请求参数失败", err).ValidWithCtx().WithTraceID(util.Context(ctx))
	}
	if errMsg, err := utils.Validate(&req); err != nil {
		return ctrl.err.New(errMsg, err).ValidWithCtx().WithTraceID(util.Context(ctx))
	}

	user, err := ctrl.app.UserService.CreateUser(util.Context(ctx), &req)
	return result.Once(ctx, user, err)
}

func (ctrl *UserController) Update(ctx *fiber.Ctx) error {
	id, err := mvc.ParseID(ctx)
	if err != nil {
		return err
	}
	var req dto.UpdateUserReq
	if err := ctx.BodyParser(&req); err != nil {
		return ctrl.err.New("解析请求参数失败", err).ValidWithCtx().WithTraceID(util.Context(ctx))
	}
	if errMsg, err := utils.Validate(&req); err != nil {
		return ctrl.err.New(errMsg, err).ValidWithCtx().WithTraceID(util.Context(ctx))
	}

	user, err := ctrl.app.UserService.UpdateUser(util.Context(ctx), id, &req)
	return result.Once(ctx, user, err)
}

func (ctrl *UserController) Delete(ctx *fiber.Ctx) error {
	id, err := mvc.ParseID(ctx)
	if err != nil {
		return err
	}
	err = ctrl.app.UserService.DeleteUser(util.Context(ctx), id)
	return result.Once(ctx, fiber.Map{"id": id}, err)
}

func (ctrl *UserController) Projects(ctx *fiber.Ctx) error {
	id, err := mvc.ParseID(ctx)
	if err != nil {
		return err
	}
	ids, err := ctrl.app.UserService.ProjectIDs(util.Context(ctx), id)
	return result.Once(ctx, ids, err)
}

func (ctrl *UserController) SetProjects(ctx *fiber.Ctx) error {
	id, err := mvc.ParseID(ctx)
	if err != nil {
		return err
	}
	var req dto.SetProjectsReq
	if err := ctx.BodyParser(&req); err != nil {
		return ctrl.err.New("解析请求参数失败", err).ValidWithCtx().WithTraceID(util.Context(ctx))
	}

	c := util.Context(ctx)
	if err := ctrl.app.UserService.SetProjects(c, id, req.ProjectIDs); err != nil {
		return err
	}
	ids, err := ctrl.app.UserService.ProjectIDs(c, id)
	return result.Once(ctx, ids, err)
}
