package services

import (
	"context"
	"time"

	"github.com/aurumascend/raisesignal-backend/config"
	"github.com/aurumascend/raisesignal-backend/logger"
	"github.com/aurumascend/raisesignal-backend/types"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type HealthService struct {
	redisClient *redis.Client
	emailConfig *config.EmailConfig
	version     string
	log         *zap.SugaredLogger
}

func NewHealthService(redisClient *redis.Client, emailConfig *config.EmailConfig, version string) *HealthService {
	return &HealthService{
		redisClient: redisClient,
		emailConfig: emailConfig,
		version:     version,
		log:         logger.GetLogger(),
	}
}

func (h *HealthService) CheckHealth(ctx context.Context) types.HealthCheck {
	components := make(map[string]types.HealthComponent)
	overallStatus := types.HealthStatusUp

	// Redis only backs rate limiting, so an outage degrades rather than
	// downs the service: submissions still flow when redis is gone.
	redisStatus := h.checkRedis(ctx)
	components["redis"] = redisStatus
	if redisStatus.Status == types.HealthStatusDown {
		overallStatus = types.HealthStatusDegraded
	}

	emailStatus := h.checkEmailConfig()
	components["email"] = emailStatus
	if emailStatus.Status == types.HealthStatusDown {
		overallStatus = types.HealthStatusDown
	}

	return types.HealthCheck{
		Status:     overallStatus,
		Components: components,
		Version:    h.version,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}
}

func (h *HealthService) checkRedis(ctx context.Context) types.HealthComponent {
	if err := h.redisClient.Ping(ctx).Err(); err != nil {
		h.log.Errorw("Redis health check failed", "error", err)
		return types.HealthComponent{
			Status:  types.HealthStatusDown,
			Details: "Redis connection failed",
		}
	}

	return types.HealthComponent{
		Status: types.HealthStatusUp,
	}
}

func (h *HealthService) checkEmailConfig() types.HealthComponent {
	if h.emailConfig == nil || h.emailConfig.ResendAPIKey == "" || h.emailConfig.FromAddress == "" || h.emailConfig.OpsAddress == "" {
		return types.HealthComponent{
			Status:  types.HealthStatusDown,
			Details: "Email service is not configured",
		}
	}

	return types.HealthComponent{
		Status: types.HealthStatusUp,
	}
}
