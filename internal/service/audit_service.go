package service

import (
	"context"
	"encoding/json"
	"log"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
)

// AuditService exposes the audit trail
type AuditService interface {
	List(ctx context.Context, action string, page, limit int) ([]model.AuditLog, int64, error)
}

type auditService struct {
	repo repository.AuditRepository
}

// NewAuditService returns a new instance of AuditService
func NewAuditService(repo repository.AuditRepository) AuditService {
	return &auditService{repo: repo}
}

func (s *auditService) List(ctx context.Context, action string, page, limit int) ([]model.AuditLog, int64, error) {
	return s.repo.List(ctx, action, page, limit)
}

// recordAudit writes one audit entry best-effort. Audit is an observation of
// a change that already happened, so failures are logged and swallowed.
func recordAudit(ctx context.Context, repo repository.AuditRepository, userID uuid.UUID, action, entityID, entityName string, details map[string]interface{}) {
	var payload []byte
	if details != nil {
		var err error
		payload, err = json.Marshal(details)
		if err != nil {
			log.Printf("audit %s on %s: encode details: %v", action, entityID, err)
			payload = nil
		}
	}
	entry := &model.AuditLog{
		UserID:     &userID,
		Action:     action,
		EntityID:   entityID,
		EntityName: entityName,
		Details:    payload,
	}
	if err := repo.Create(ctx, entry); err != nil {
		log.Printf("audit %s on %s: %v", action, entityID, err)
	}
}
