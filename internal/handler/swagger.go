package handler

import (
	"github.com/gofiber/fiber/v3"
)

const swaggerPage = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Notflix Web - Swagger UI</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
    <script>
    SwaggerUIBundle({url: "/swagger/doc.yaml", dom_id: "#swagger-ui"});
    </script>
</body>
</html>`

// RegisterSwagger serves the API description and a Swagger UI page for it.
func RegisterSwagger(r fiber.Router, yamlContent []byte) {
	r.Get("/swagger/doc.yaml", func(c fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, "application/yaml")
		return c.Send(yamlContent)
	})

	r.Get("/swagger/*", func(c fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.SendString(swaggerPage)
	})
}

// Health reports that the web client is up.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func Health(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "movie-fe",
	})
}
