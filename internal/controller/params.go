package controller

import (
	"strconv"

	"learnpath-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func uuidParam(ctx *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params(name))
	if err != nil {
		return uuid.Nil, apperror.Validation("invalid " + name)
	}
	return id, nil
}

func intParam(ctx *fiber.Ctx, name string) (int, error) {
	n, err := strconv.Atoi(ctx.Params(name))
	if err != nil {
		return 0, apperror.Validation("invalid " + name)
	}
	return n, nil
}

// topicIndexQuery reads ?topicIndex= (or ?topic_index=).
func topicIndexQuery(ctx *fiber.Ctx) (int, error) {
	raw := ctx.Query("topicIndex", ctx.Query("topic_index"))
	if raw == "" {
		return 0, apperror.Validation("topicIndex is required")
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperror.Validation("topicIndex must be an integer")
	}
	return n, nil
}
