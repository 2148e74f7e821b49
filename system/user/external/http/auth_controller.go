package controller

import (
	"relman/base"
	errorc "relman/pkg/core/err"
	"relman/pkg/core/logger"
	"relman/pkg/core/result"
	"relman/pkg/core/security"
	"relman/pkg/core/util"
	"relman/system/user/internal/app"
	"relman/system/user/internal/model/dto"
	"relman/utils"

	"github.com/gofiber/fiber/v2"
)

// AuthController 登录与当前用户
type AuthController struct {
	app *app.App
	err *errorc.ErrorBuilder
	log *logger.Log
}

func NewAuthController(app *app.App) *AuthController {
	return &AuthController{
		app: app,
		err: errorc.NewErrorBuilder("AuthController"),
		log: logger.GetLogger().WithEntryName("AuthController"),
	}
}

func (ctrl *AuthController) RegisterRoutes(api fiber.Router) {
	api.Post("/auth/token", ctrl.Token)
	api.Get("/users/me", base.UserAuth.RequireAuth(), ctrl.Me)
}

// Token 用户名密码换取令牌
func (ctrl *AuthController) Token(ctx *fiber.Ctx) error {
	var req dto.LoginReq
	if err := ctx.BodyParser(&req); err != nil {
		return ctrl.err.New("解析请求参数失败", err).ValidWithCtx().WithTraceID(util.Context(ctx))
	}
	if errMsg, err := utils.Validate(&req); err != nil {
		return ctrl.err.New(errMsg, err).ValidWithCtx().WithTraceID(util.Context(ctx))
	}

	user, err := ctrl.app.UserService.ValidateLogin(util.Context(ctx), req.Username, req.Password)
	if err != nil {
		return err
	}

	token, expiresAt, err := base.UserAuth.CreateToken(&security.UserClaims{
		ID:       user.ID,
		Username: user.Username,
		RoleID:   user.RoleID,
	})
	if err != nil {
		return ctrl.err.New("创建登录令牌失败", err).WithTraceID(util.Context(ctx)).ToLog(ctrl.log.GetLogger())
	}

	return result.OK(ctx, fiber.Map{
		"accessToken": token,
		"expiresAt":   expiresAt,
		"tokenType":   "Bearer",
		"user":        user,
	})
}

// Me 当前登录用户
func (ctrl *AuthController) Me(ctx *fiber.Ctx) error {
	userID, err := security.GetUserID(ctx)
	if err != nil {
		return err
	}
	c := util.Context(ctx)
	user, err := ctrl.app.UserService.FindById(c, userID)
	if err != nil {
		return err
	}
	projectIDs, err := ctrl.app.UserService.ProjectIDs(c, userID)
	return result.Once(ctx, fiber.Map{"user": user, "project_ids": projectIDs}, err)
}
