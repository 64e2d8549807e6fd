package controller

import (
	"ai-notes-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAIController interface {
	RegisterRoutes(r fiber.Router, authGuard fiber.Handler)
}

type aiController struct {
	aiService service.IAIService
}

func NewAIController(aiService service.IAIService) IAIController {
	return &aiController{
		aiService: aiService,
	}
}

func (c *aiController) RegisterRoutes(r fiber.Router, authGuard fiber.Handler) {
	h := r.Group("/ai")
	h.Use(authGuard)
	h.Post("/notes/:id/summary", c.Summary)
	h.Post("/notes/:id/improve", c.Improve)
	h.Post("/notes/:id/tags", c.Tags)
}

func (c *aiController) Summary(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}
	noteId, err := noteIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.aiService.GenerateSummary(ctx.UserContext(), userId, noteId)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *aiController) Improve(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}
	noteId, err := noteIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.aiService.ImproveNote(ctx.UserContext(), userId, noteId)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *aiController) Tags(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}
	noteId, err := noteIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.aiService.GenerateTags(ctx.UserContext(), userId, noteId)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}
