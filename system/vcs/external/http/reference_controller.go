package controller

import (
	"relman/pkg/core/mvc"
	"relman/system/vcs/internal/app"
	"relman/system/vcs/internal/model"

	"github.com/gofiber/fiber/v2"
)

// ReferenceController 状态、问题分类、问题的增删改查
type ReferenceController struct {
	app *app.App
}

func NewReferenceController(app *app.App) *ReferenceController {
	return &ReferenceController{app: app}
}

func (ctrl *ReferenceController) RegisterRoutes(api fiber.Router, auth, admin fiber.Handler) {
	mvc.Register[model.Status](api.Group("/statuses", auth),
		mvc.NewBaseController[model.Status](ctrl.app.StatusService), admin)
	mvc.Register[model.IssueCategory](api.Group("/issue_categories", auth),
		mvc.NewBaseController[model.IssueCategory](ctrl.app.IssueCategoryService), admin)
	mvc.Register[model.Issue](api.Group("/issues", auth),
		mvc.NewBaseController[model.Issue](ctrl.app.IssueService, "project_id"))
}
