package controller

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"coverletter-ai-be/internal/dto"
	"coverletter-ai-be/internal/pkg/serverutils"
	"coverletter-ai-be/internal/service"
	"coverletter-ai-be/pkg/embedding"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

type IGenerateController interface {
	RegisterRoutes(r fiber.Router)
	Generate(ctx *fiber.Ctx) error
}

type generateController struct {
	generationService service.IGenerationService
	logger            *zap.Logger
}

func NewGenerateController(generationService service.IGenerationService, logger *zap.Logger) IGenerateController {
	return &generateController{
		generationService: generationService,
		logger:            logger,
	}
}

func (c *generateController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/generate/v1")
	h.Post("/", c.Generate)
}

func (c *generateController) Generate(ctx *fiber.Ctx) error {
	var req dto.GenerateCoverLetterRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	if req.JobTitle == "" || req.JobDescription == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Job title and description are required"))
	}

	// Retrieval and prompt assembly happen before the stream opens so
	// failures can still produce a regular error response.
	prepared, err := c.generationService.Prepare(ctx.Context(), &req)
	if err != nil {
		if errors.Is(err, embedding.ErrMissingAPIKey) {
			return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, "Cohere API key not configured"))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, "Failed to create embedding for job"))
	}

	ctx.Set(fiber.HeaderContentType, "text/event-stream")
	ctx.Set(fiber.HeaderCacheControl, "no-cache")
	ctx.Set(fiber.HeaderConnection, "keep-alive")

	// The fiber ctx is recycled once the handler returns; the stream writer
	// must not touch it, so everything it needs is captured up front. The
	// derived context is cancelled when the writer exits, so a client that
	// disconnects mid-stream (surfacing as a failed write) also releases the
	// in-flight completion call.
	streamCtx, cancelStream := context.WithCancel(context.Background())

	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancelStream()

		err := c.generationService.Stream(streamCtx, prepared, func(chunk string) error {
			payload, err := json.Marshal(dto.GenerateStreamChunk{Content: chunk})
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
				return err
			}
			return w.Flush()
		})
		if err != nil {
			c.logger.Error("cover letter stream aborted", zap.Error(err))
			return
		}

		fmt.Fprint(w, "data: [DONE]\n\n")
		w.Flush()
	}))

	return nil
}
