package services

import (
	"context"

	"github.com/craftbooks/craft_books_app/internal/middleware"
)

// BaseService provides common helpers for all services.
type BaseService struct{}

func NewBaseService() BaseService {
	return BaseService{}
}

func (s *BaseService) LogInfo(ctx context.Context, msg string, args ...any) {
	middleware.GetLoggerFromCtx(ctx).Info(msg, args...)
}

func (s *BaseService) LogWarn(ctx context.Context, msg string, args ...any) {
	middleware.GetLoggerFromCtx(ctx).Warn(msg, args...)
}

func (s *BaseService) LogError(ctx context.Context, msg string, args ...any) {
	middleware.GetLoggerFromCtx(ctx).Error(msg, args...)
}
