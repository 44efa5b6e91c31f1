package controller

import (
	"context"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"coverletter-ai-be/internal/dto"
	"coverletter-ai-be/internal/service"
	"coverletter-ai-be/pkg/embedding"
	"coverletter-ai-be/pkg/llm"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubGenerationService struct {
	prepared   *service.PreparedGeneration
	prepareErr error
	chunks     []string

	streamCtx context.Context
}

func (s *stubGenerationService) Prepare(ctx context.Context, req *dto.GenerateCoverLetterRequest) (*service.PreparedGeneration, error) {
	if s.prepareErr != nil {
		return nil, s.prepareErr
	}
	return s.prepared, nil
}

func (s *stubGenerationService) Stream(ctx context.Context, prepared *service.PreparedGeneration, handler llm.StreamHandler) error {
	s.streamCtx = ctx
	for _, chunk := range s.chunks {
		if err := handler(chunk); err != nil {
			return err
		}
	}
	return nil
}

func generateApp(stub *stubGenerationService) *fiber.App {
	app := fiber.New()
	NewGenerateController(stub, zap.NewNop()).RegisterRoutes(app.Group("/api"))
	return app
}

func postGenerate(t *testing.T, app *fiber.App, body string) (int, string) {
	t.Helper()

	req := httptest.NewRequest("POST", "/api/generate/v1/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req, -1)
	require.NoError(t, err)
	defer res.Body.Close()

	payload, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, string(payload)
}

func TestGenerateStreamsChunks(t *testing.T) {
	stub := &stubGenerationService{
		prepared: &service.PreparedGeneration{},
		chunks:   []string{"Hello", " world"},
	}
	app := generateApp(stub)

	status, body := postGenerate(t, app, `{"job_title":"Developer","job_description":"Build things"}`)

	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, body, `data: {"content":"Hello"}`)
	assert.Contains(t, body, `data: {"content":" world"}`)
	assert.True(t, strings.HasSuffix(body, "data: [DONE]\n\n"))

	// The stream context must be cancelled once the writer finishes, so an
	// abandoned stream releases the in-flight completion call.
	require.NotNil(t, stub.streamCtx)
	assert.ErrorIs(t, stub.streamCtx.Err(), context.Canceled)
}

func TestGenerateRequiresJobFields(t *testing.T) {
	app := generateApp(&stubGenerationService{prepared: &service.PreparedGeneration{}})

	status, body := postGenerate(t, app, `{"job_title":"Developer"}`)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, body, "Job title and description are required")
}

func TestGenerateMissingAPIKey(t *testing.T) {
	stub := &stubGenerationService{
		prepareErr: fmt.Errorf("prepare: %w", embedding.ErrMissingAPIKey),
	}
	app := generateApp(stub)

	status, body := postGenerate(t, app, `{"job_title":"Developer","job_description":"Build things"}`)

	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Contains(t, body, "Cohere API key not configured")
}

func TestGenerateEmbeddingFailure(t *testing.T) {
	stub := &stubGenerationService{
		prepareErr: fmt.Errorf("%w: provider unreachable", service.ErrEmbeddingUnavailable),
	}
	app := generateApp(stub)

	status, body := postGenerate(t, app, `{"job_title":"Developer","job_description":"Build things"}`)

	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Contains(t, body, "Failed to create embedding for job")
}
