package service

import (
	"context"
	"encoding/json"
	"strings"

	"agriportal/internal/auth"
	"agriportal/internal/model"
	"agriportal/internal/repository"
	"agriportal/internal/websocket"

	"github.com/google/uuid"
)

// caseActivity fans a case-graph mutation out to the audit trail and the
// live dashboard feed. Neither sink may fail the mutation itself.
type caseActivity struct {
	auditRepo repository.AuditRepository
	hub       *websocket.Hub
}

func (a caseActivity) record(ctx context.Context, actor auth.Actor, action, entity string, id uuid.UUID, code, status, district string, payload interface{}) {
	details, _ := json.Marshal(payload)
	entry := &model.AuditLog{
		Action:     action,
		EntityID:   id.String(),
		EntityName: code,
		Details:    string(details),
	}
	if actor.UserID != uuid.Nil {
		userID := actor.UserID
		entry.UserID = &userID
	}
	_ = a.auditRepo.Log(ctx, entry)

	a.hub.BroadcastActivity(websocket.ActivityEvent{
		Action:   wsAction(action),
		Entity:   entity,
		Code:     code,
		Status:   status,
		District: district,
	})
}

func wsAction(auditAction string) string {
	switch {
	case strings.HasPrefix(auditAction, "CREATE"):
		return "created"
	case strings.HasPrefix(auditAction, "UPDATE"):
		return "updated"
	case strings.HasPrefix(auditAction, "DELETE"):
		return "deleted"
	}
	return "changed"
}
