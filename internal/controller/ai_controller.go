package controller

import (
	"learnpath-be/internal/dto"
	"learnpath-be/internal/pkg/apperror"
	"learnpath-be/internal/pkg/serverutils"
	"learnpath-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// IAiController exposes the provider-backed endpoints that are not tied to a
// stored learning path.
type IAiController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	SuggestPath(ctx *fiber.Ctx) error
	GenerateAssessment(ctx *fiber.Ctx) error
	EvaluateAssessment(ctx *fiber.Ctx) error
	GetAllAssessments(ctx *fiber.Ctx) error
	Flashcards(ctx *fiber.Ctx) error
	MockInterview(ctx *fiber.Ctx) error
	SkillGap(ctx *fiber.Ctx) error
	CodingExercise(ctx *fiber.Ctx) error
	GetAllStudyAids(ctx *fiber.Ctx) error
}

type aiController struct {
	pathService       service.IPathService
	assessmentService service.IAssessmentService
	studyAidService   service.IStudyAidService
}

func NewAiController(pathService service.IPathService, assessmentService service.IAssessmentService, studyAidService service.IStudyAidService) IAiController {
	return &aiController{
		pathService:       pathService,
		assessmentService: assessmentService,
		studyAidService:   studyAidService,
	}
}

func (c *aiController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/ai", auth)
	h.Post("/generate-path", c.SuggestPath)
	h.Post("/assessments", c.GenerateAssessment)
	h.Post("/assessments/evaluate", c.EvaluateAssessment)
	h.Get("/assessments", c.GetAllAssessments)
	h.Post("/flashcards", c.Flashcards)
	h.Post("/mock-interview", c.MockInterview)
	h.Post("/skill-gap", c.SkillGap)
	h.Post("/coding-exercise", c.CodingExercise)
	h.Get("/study-aids", c.GetAllStudyAids)
}

func (c *aiController) SuggestPath(ctx *fiber.Ctx) error {
	var req dto.SuggestPathRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadBody(err)
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.pathService.Suggest(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success generate learning path", res))
}

func (c *aiController) GenerateAssessment(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromCtx(ctx)
	if err != nil {
		return err
	}

	var req dto.GenerateAssessmentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadBody(err)
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.assessmentService.Generate(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success generate assessment", res))
}

func (c *aiController) EvaluateAssessment(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromCtx(ctx)
	if err != nil {
		return err
	}

	var req dto.EvaluateAssessmentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadBody(err)
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.assessmentService.Evaluate(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success evaluate assessment", res))
}

func (c *aiController) GetAllAssessments(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromCtx(ctx)
	if err != nil {
		return err
	}

	var pathId *uuid.UUID
	if raw := ctx.Query("pathId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return apperror.Validation("invalid pathId")
		}
		pathId = &id
	}

	res, err := c.assessmentService.GetAll(ctx.UserContext(), userId, pathId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get all assessments", res))
}

func (c *aiController) Flashcards(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromCtx(ctx)
	if err != nil {
		return err
	}

	var req dto.FlashcardsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadBody(err)
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.studyAidService.Flashcards(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success generate flashcards", res))
}

func (c *aiController) MockInterview(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromCtx(ctx)
	if err != nil {
		return err
	}

	var req dto.MockInterviewRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadBody(err)
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.studyAidService.MockInterview(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success generate mock interview", res))
}

func (c *aiController) SkillGap(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromCtx(ctx)
	if err != nil {
		return err
	}

	var req dto.SkillGapRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadBody(err)
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.studyAidService.SkillGap(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success analyze skill gap", res))
}

func (c *aiController) CodingExercise(ctx *fiber.Ctx) error {
	var req dto.CodingExerciseRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadBody(err)
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.studyAidService.CodingExercise(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success generate coding exercise", res))
}

func (c *aiController) GetAllStudyAids(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromCtx(ctx)
	if err != nil {
		return err
	}

	res, err := c.studyAidService.GetAll(ctx.UserContext(), userId, ctx.Query("kind"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get all study aids", res))
}
