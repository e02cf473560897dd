package v1

import (
	"time"

	"contact-page-backend/config"
	"contact-page-backend/internal/delivery/http/middleware"
	"contact-page-backend/internal/domain"
	"contact-page-backend/internal/usecase"
	"contact-page-backend/pkg/auth"
	"contact-page-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	ContactUC     domain.ContactUsecase
	HealthUC      usecase.HealthUsecase
	SessionTokens *auth.SessionTokens
	Config        *config.Config

	// Optional; the export route exists only with a store and ADMIN_API_KEY
	AttemptExportUC domain.AttemptExportUsecase
}

func NewRouter(deps RouterDeps) (*gin.Engine, error) {
	// Teach gin's binding engine the contact_email tag
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := validation.RegisterValidators(v); err != nil {
			return nil, err
		}
	}

	cfg := deps.Config
	production := cfg.Environment == "production"
	window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second

	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(cfg.FrontendURL, production)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware(middleware.GlobalRateLimitConfig(cfg.RateLimitGlobalThreshold, window)))

	v1 := r.Group("/v1")

	NewHealthHandler(v1, deps.HealthUC)

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Creating a session and the one-shot form carry no session cookie yet
	contact := v1.Group("")
	contact.Use(middleware.CSRFMiddleware(production, "/v1/contact/sessions", "/v1/contact"))
	{
		sendLimit := middleware.RateLimitMiddleware(middleware.SendRateLimitConfig(cfg.RateLimitSendThreshold, window))
		NewContactHandler(contact, deps.ContactUC, deps.SessionTokens, production, sendLimit)
	}

	if deps.AttemptExportUC != nil && cfg.AdminAPIKey != "" {
		admin := v1.Group("/admin")
		admin.Use(middleware.AdminKeyMiddleware(cfg.AdminAPIKey))
		NewAttemptHandler(admin, deps.AttemptExportUC)
	}

	return r, nil
}
