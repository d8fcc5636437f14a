package controller

import (
	"errors"
	"io"

	"ai-presentation-coach-be/internal/dto"
	"ai-presentation-coach-be/internal/pkg/serverutils"
	"ai-presentation-coach-be/internal/service"
	"ai-presentation-coach-be/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Summary(ctx *fiber.Ctx) error
	UploadExpertDocuments(ctx *fiber.Ctx) error
	AnalyzeText(ctx *fiber.Ctx) error
}

type sessionController struct {
	sessionService  service.ISessionService
	analyzerService service.IAnalyzerService
}

func NewSessionController(sessionService service.ISessionService, analyzerService service.IAnalyzerService) ISessionController {
	return &sessionController{
		sessionService:  sessionService,
		analyzerService: analyzerService,
	}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/sessions")
	h.Post("", c.Create)
	h.Delete(":id", c.Delete)
	h.Get(":id/summary", c.Summary)
	h.Post(":id/expert-documents", c.UploadExpertDocuments)
	h.Post(":id/analyze-text", c.AnalyzeText)
}

func (c *sessionController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.sessionService.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create session", res))
}

func (c *sessionController) Delete(ctx *fiber.Ctx) error {
	id, err := parseSessionId(ctx)
	if err != nil {
		return err
	}

	if err := c.sessionService.Delete(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete session", fiber.Map{"session_id": id}))
}

func (c *sessionController) Summary(ctx *fiber.Ctx) error {
	id, err := parseSessionId(ctx)
	if err != nil {
		return err
	}

	res, err := c.sessionService.Summary(ctx.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrSessionNotFound):
			return serverutils.NewNotFoundError("Session not found")
		case errors.Is(err, store.ErrNoScores):
			return serverutils.NewConflictError("No scores available for this session yet")
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get session summary", res))
}

func (c *sessionController) UploadExpertDocuments(ctx *fiber.Ctx) error {
	id, err := parseSessionId(ctx)
	if err != nil {
		return err
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		return serverutils.NewValidationError("multipart form required")
	}

	files := form.File["documents"]
	if len(files) == 0 {
		return serverutils.NewValidationError("at least one document is required")
	}

	docs := make([]dto.UploadedDocument, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return err
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return err
		}
		docs = append(docs, dto.UploadedDocument{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	res, err := c.sessionService.UploadExpertDocuments(ctx.Context(), id, docs)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success upload expert documents", res))
}

func (c *sessionController) AnalyzeText(ctx *fiber.Ctx) error {
	id, err := parseSessionId(ctx)
	if err != nil {
		return err
	}

	var req dto.AnalyzeTextRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	score, err := c.analyzerService.AnalyzeTranscript(ctx.Context(), id, req.Transcript)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			return serverutils.NewNotFoundError("Session not found")
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success analyze transcript", dto.AnalyzeTextResponse{Score: *score}))
}

func parseSessionId(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, serverutils.NewValidationError("invalid session id")
	}
	return id, nil
}
