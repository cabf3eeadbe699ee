package http

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/leoc0104/nfe-api/internal/application/dto"
	"github.com/leoc0104/nfe-api/internal/application/nfe"
	"github.com/leoc0104/nfe-api/internal/domain"
)

// NFeHandler trata as rotas de NF-e (protegidas).
type NFeHandler struct {
	ingest *nfe.IngestUseCase
	query  *nfe.QueryUseCase
	pdf    *nfe.PDFUseCase
}

// NewNFeHandler constrói o handler.
func NewNFeHandler(ingest *nfe.IngestUseCase, query *nfe.QueryUseCase, pdf *nfe.PDFUseCase) *NFeHandler {
	return &NFeHandler{ingest: ingest, query: query, pdf: pdf}
}

// Upload recebe um arquivo XML de NF-e e o ingere.
// POST /api/nfe/uploads (multipart, campo "file")
func (h *NFeHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "arquivo é obrigatório"})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "não foi possível ler o arquivo"})
	}
	defer file.Close()
	content, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "não foi possível ler o arquivo"})
	}

	nota, err := h.ingest.Ingest(c.Context(), fileHeader.Filename, content)
	if err != nil {
		return nfeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(nota)
}

// List lista notas paginadas.
// GET /api/nfe?page=1&limit=50
func (h *NFeHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 50)
	resp, err := h.query.List(c.Context(), page, limit)
	if err != nil {
		return nfeError(c, err)
	}
	return c.JSON(resp)
}

// GetByID obtém uma nota com seus itens.
// GET /api/nfe/:id
func (h *NFeHandler) GetByID(c *fiber.Ctx) error {
	nota, err := h.query.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return nfeError(c, err)
	}
	return c.JSON(nota)
}

// DANFE devolve o PDF da representação gráfica da nota.
// GET /api/nfe/:id/pdf
func (h *NFeHandler) DANFE(c *fiber.Ctx) error {
	pdfBytes, err := h.pdf.Generate(c.Context(), c.Params("id"))
	if err != nil {
		return nfeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(pdfBytes)
}

// nfeError traduz os erros de domínio para o status HTTP correspondente.
func nfeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrXMLMalformed):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "PARSE", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidDocument):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicateAccessKey):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "nota não encontrada"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "erro interno"})
	}
}
