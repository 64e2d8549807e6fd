package controller

import (
	"ai-notes-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// currentUserId reads the user id the JWT middleware stored in locals.
func currentUserId(ctx *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := ctx.Locals("user_id").(string)
	if !ok {
		return uuid.Nil, apperror.Unauthorized("No token provided")
	}
	userId, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperror.Unauthorized("Invalid token")
	}
	return userId, nil
}

// noteIdParam parses the :id path segment. A malformed id cannot name any
// note, so it reads as missing rather than as a validation failure.
func noteIdParam(ctx *fiber.Ctx) (uuid.UUID, error) {
	noteId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, apperror.NotFound("Note not found")
	}
	return noteId, nil
}
