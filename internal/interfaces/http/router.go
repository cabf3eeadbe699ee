package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/leoc0104/nfe-api/internal/application/auth"
	"github.com/leoc0104/nfe-api/internal/application/nfe"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	AuthUC    *auth.UseCase
	Ingest    *nfe.IngestUseCase
	Query     *nfe.QueryUseCase
	PDF       *nfe.PDFUseCase
	JWTSecret string
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// NF-e (protegido, requer Bearer Token)
	nfeGroup := api.Group("/nfe", AuthMiddleware(deps.JWTSecret))
	nfeHandler := NewNFeHandler(deps.Ingest, deps.Query, deps.PDF)
	nfeGroup.Post("/uploads", nfeHandler.Upload)
	nfeGroup.Get("/", nfeHandler.List)
	nfeGroup.Get("/:id", nfeHandler.GetByID)
	nfeGroup.Get("/:id/pdf", nfeHandler.DANFE)
}
