package router

import (
	"strings"

	"github.com/NeuralTrust/ComplianceHawk/docs"
	"github.com/NeuralTrust/ComplianceHawk/pkg/config"
	handlers "github.com/NeuralTrust/ComplianceHawk/pkg/handlers/http"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

const (
	RootPath          = "/"
	AuditContractPath = "/audit_contract"
	HealthPath        = "/health"
	VersionPath       = "/version"
	DocsPath          = "/docs/*"
	SwaggerJSONPath   = "/swagger.json"
)

type apiRouter struct {
	handlerTransport handlers.HandlerTransport
	config           *config.Config
}

func NewAPIRouter(handlerTransport handlers.HandlerTransport, cfg *config.Config) ServerRouter {
	return &apiRouter{
		handlerTransport: handlerTransport,
		config:           cfg,
	}
}

func (r *apiRouter) BuildRoutes(router *fiber.App) error {
	handlerTransport, ok := r.handlerTransport.GetTransport().(*handlers.HandlerTransportDTO)
	if !ok {
		return ErrInvalidHandlerTransport
	}

	router.Get(SwaggerJSONPath, func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
		return c.SendString(docs.SwaggerInfo.ReadDoc())
	})
	router.Get(DocsPath, swagger.New(swagger.Config{
		URL: r.swaggerURL(),
	}))

	router.Get(RootPath, handlerTransport.RootHandler.Handle)
	router.Get(HealthPath, handlerTransport.HealthHandler.Handle)
	router.Get(VersionPath, handlerTransport.GetVersionHandler.Handle)

	router.Post(AuditContractPath, handlerTransport.AuditContractHandler.Handle)

	return nil
}

func (r *apiRouter) swaggerURL() string {
	base := ""
	if r.config != nil {
		base = strings.TrimRight(r.config.Server.PublicURL, "/")
	}
	return base + SwaggerJSONPath
}
