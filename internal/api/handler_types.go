package api

import (
	"time"

	"github.com/crumbworks/pantryplan/internal/db"
	"github.com/crumbworks/pantryplan/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Handler struct {
	db           *gorm.DB
	secretKey    []byte
	tokenTTL     time.Duration
	cookieSecure bool
	logger       *zap.Logger

	generator services.PlanGenerator

	repositories    *db.Repositories
	authService     *services.AuthService
	pantryService   *services.PantryService
	planService     *services.PlanService
	favoriteService *services.FavoriteService
	receiptService  *services.ReceiptService
}

const defaultAuthTokenTTL = 7 * 24 * time.Hour
