package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/99minutos/backoffice/internal/core/domain"
	"github.com/99minutos/backoffice/internal/core/ports"
)

const (
	defaultActivityLimit = 10
	maxActivityLimit     = 100
)

func publish(p ports.ActivityPublisher, e domain.ActivityEvent) {
	if p == nil {
		return
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	p.Publish(e)
}

// ActivityService serves the recent-activity feed.
type ActivityService struct {
	repo ports.ActivityRepository
}

func NewActivityService(repo ports.ActivityRepository) *ActivityService {
	return &ActivityService{repo: repo}
}

// Recent returns up to limit events, newest first. limit is clamped to
// [1, 100] and defaults to 10.
func (s *ActivityService) Recent(ctx context.Context, limit int) ([]domain.ActivityEvent, error) {
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	if limit > maxActivityLimit {
		limit = maxActivityLimit
	}
	return s.repo.Recent(ctx, limit)
}
