package service

import (
	"branch-billing-backend/internal/database/models"
	apperrors "branch-billing-backend/internal/errors"
	"branch-billing-backend/internal/logger"
	"branch-billing-backend/internal/repository"

	"github.com/google/uuid"
)

// ActivityService records audit events on a branch's activity log.
type ActivityService struct {
	log *logger.Logger
}

// NewActivityService creates a new activity service
func NewActivityService() *ActivityService {
	return &ActivityService{log: logger.New()}
}

// Record writes an audit event. A failed write is logged and swallowed: the
// audit trail must never abort the primary request.
func (s *ActivityService) Record(set *repository.BranchSet, actorID *uuid.UUID, action, entity, entityID string) {
	entry := &models.ActivityLog{
		ActorID:  actorID,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
	}
	if err := set.ActivityLogs.Create(entry); err != nil {
		s.log.WithError(err).WithFields(map[string]interface{}{
			"action": action,
			"entity": entity,
		}).Warn("Failed to record activity log entry")
	}
}

// List retrieves audit events with pagination
func (s *ActivityService) List(set *repository.BranchSet, limit, offset int) ([]models.ActivityLog, int64, error) {
	if limit <= 0 || limit > 100 || offset < 0 {
		return nil, 0, apperrors.ErrInvalidPaginationParams
	}
	return set.ActivityLogs.GetAll(limit, offset)
}
