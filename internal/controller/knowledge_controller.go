package controller

import (
	"coverletter-ai-be/internal/dto"
	"coverletter-ai-be/internal/pkg/serverutils"
	"coverletter-ai-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IKnowledgeController interface {
	RegisterRoutes(r fiber.Router)
}

type knowledgeController struct {
	knowledgeService service.IKnowledgeService
}

func NewKnowledgeController(knowledgeService service.IKnowledgeService) IKnowledgeController {
	return &knowledgeController{
		knowledgeService: knowledgeService,
	}
}

func (c *knowledgeController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/knowledge/v1")

	letters := h.Group("/cover-letters")
	letters.Get("/", c.ListCoverLetters)
	letters.Post("/", c.CreateCoverLetter)
	letters.Put("/:id", c.UpdateCoverLetter)
	letters.Delete("/:id", c.DeleteCoverLetter)

	projects := h.Group("/projects")
	projects.Get("/", c.ListProjects)
	projects.Post("/", c.CreateProject)
	projects.Put("/:id", c.UpdateProject)
	projects.Delete("/:id", c.DeleteProject)

	skills := h.Group("/skills")
	skills.Get("/", c.ListSkills)
	skills.Post("/", c.CreateSkill)
	skills.Put("/:id", c.UpdateSkill)
	skills.Delete("/:id", c.DeleteSkill)
}

func parseListQuery(ctx *fiber.Ctx) (*dto.ListExamplesRequest, error) {
	var query dto.ListExamplesRequest
	if err := ctx.QueryParser(&query); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid query parameters")
	}
	return &query, nil
}

func parseIdParam(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid id")
	}
	return id, nil
}

// --- Cover letters ---

func (c *knowledgeController) CreateCoverLetter(ctx *fiber.Ctx) error {
	var req dto.CreateCoverLetterExampleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.knowledgeService.CreateCoverLetter(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create cover letter example", res))
}

func (c *knowledgeController) ListCoverLetters(ctx *fiber.Ctx) error {
	query, err := parseListQuery(ctx)
	if err != nil {
		return err
	}
	res, err := c.knowledgeService.ListCoverLetters(ctx.Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list cover letter examples", res))
}

func (c *knowledgeController) UpdateCoverLetter(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateCoverLetterExampleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.knowledgeService.UpdateCoverLetter(ctx.Context(), &req)
	if err != nil {
		return err
	}
	if res == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Cover letter example not found"))
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update cover letter example", res))
}

func (c *knowledgeController) DeleteCoverLetter(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}
	if err := c.knowledgeService.DeleteCoverLetter(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete cover letter example", nil))
}

// --- Projects ---

func (c *knowledgeController) CreateProject(ctx *fiber.Ctx) error {
	var req dto.CreateProjectExampleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.knowledgeService.CreateProject(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create project example", res))
}

func (c *knowledgeController) ListProjects(ctx *fiber.Ctx) error {
	query, err := parseListQuery(ctx)
	if err != nil {
		return err
	}
	res, err := c.knowledgeService.ListProjects(ctx.Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list project examples", res))
}

func (c *knowledgeController) UpdateProject(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateProjectExampleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.knowledgeService.UpdateProject(ctx.Context(), &req)
	if err != nil {
		return err
	}
	if res == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Project example not found"))
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update project example", res))
}

func (c *knowledgeController) DeleteProject(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}
	if err := c.knowledgeService.DeleteProject(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete project example", nil))
}

// --- Skills ---

func (c *knowledgeController) CreateSkill(ctx *fiber.Ctx) error {
	var req dto.CreateSkillExampleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.knowledgeService.CreateSkill(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create skill example", res))
}

func (c *knowledgeController) ListSkills(ctx *fiber.Ctx) error {
	query, err := parseListQuery(ctx)
	if err != nil {
		return err
	}
	res, err := c.knowledgeService.ListSkills(ctx.Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list skill examples", res))
}

func (c *knowledgeController) UpdateSkill(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateSkillExampleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.knowledgeService.UpdateSkill(ctx.Context(), &req)
	if err != nil {
		return err
	}
	if res == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Skill example not found"))
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update skill example", res))
}

func (c *knowledgeController) DeleteSkill(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}
	if err := c.knowledgeService.DeleteSkill(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete skill example", nil))
}
