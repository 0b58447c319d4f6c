package api

import (
	"time"

	"github.com/crumbworks/pantryplan/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func NewHandler(database *gorm.DB, planGenerator services.PlanGenerator, secret string, tokenTTL time.Duration, cookieSecure bool, logger *zap.Logger) *Handler {
	if tokenTTL <= 0 {
		tokenTTL = defaultAuthTokenTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	handler := &Handler{
		db:           database,
		secretKey:    []byte(secret),
		tokenTTL:     tokenTTL,
		cookieSecure: cookieSecure,
		logger:       logger,
		generator:    planGenerator,
	}
	handler.ensureDependencies()
	return handler
}
