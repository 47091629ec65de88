package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"dataroom/internal/auth"
	"dataroom/internal/config"
	"dataroom/internal/http/middleware"
	"dataroom/internal/service"
)

// Services bundles the application services the routes depend on.
type Services struct {
	Folders   service.FolderService
	Documents service.DocumentService
	Search    service.SearchService
	Cleanup   service.CleanupService
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app. Handlers
// stay thin; business rules live in the services.
func RegisterRoutes(app *fiber.App, db *sql.DB, verifier auth.Verifier, svcs Services, cfg *config.AppConfig) {
	// Serve OpenAPI spec and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	// Health endpoint: checks DB connectivity only
	app.Get("/health", HealthCheck(db))

	// Simple liveness probe
	app.Get("/healthz", LivenessProbe())

	// The cleanup endpoint authenticates with the cron secret, not a user
	// token, so it sits outside the auth group. GET is for schedulers that
	// can only issue plain requests.
	cleanup := CleanupCron(svcs.Cleanup, cfg.Cron.Secret, cfg.Production())
	app.Get("/api/cron/cleanup", cleanup)
	app.Post("/api/cron/cleanup", cleanup)

	api := app.Group("/api", middleware.Auth(verifier))

	api.Get("/folder", FolderMetadata(svcs.Folders))
	api.Post("/folder", CreateFolder(svcs.Folders))
	api.Get("/folder/path", FolderPath(svcs.Folders))
	api.Patch("/folder/:id", RenameFolder(svcs.Folders))
	api.Delete("/folder/:id", DeleteFolder(svcs.Folders))
	api.Post("/folder/:id/restore", RestoreFolder(svcs.Folders))

	api.Get("/storage", GetStorage(svcs.Folders, svcs.Documents))
	api.Get("/search", SearchStorage(svcs.Search))

	api.Get("/documents/names", DocumentNames(svcs.Documents))
	api.Post("/documents/validate-names", ValidateNames(svcs.Documents))
	api.Patch("/document/:id", RenameDocument(svcs.Documents))
	api.Delete("/document/:id", DeleteDocument(svcs.Documents))
	api.Post("/document/:id/restore", RestoreDocument(svcs.Documents))
	api.Get("/document/:id/preview", PreviewDocument(svcs.Documents))

	api.Post("/upload", UploadDocuments(svcs.Documents, cfg.Upload.MaxFiles))
	api.Get("/download", DownloadDocument(svcs.Documents))
}
