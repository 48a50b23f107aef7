package services

import "go.uber.org/zap"

// EventPublisher receives domain events after the corresponding change has
// been committed.
type EventPublisher interface {
	PublishEvent(eventType string, payload map[string]interface{}) error
}

const (
	EventTenantProvisioned = "tenant.provisioned"
	EventTenantDeleted     = "tenant.deleted"
	EventTenantSeeded      = "tenant.seeded"
	EventProductCreated    = "product.created"
	EventProductUpdated    = "product.updated"
	EventProductDeleted    = "product.deleted"
	EventUserCreated       = "user.created"
	EventUserUpdated       = "user.updated"
	EventUserDeleted       = "user.deleted"
)

// publish sends an event if a publisher is configured. Failures are logged
// only: the change is already committed.
func publish(log *zap.Logger, p EventPublisher, eventType string, payload map[string]interface{}) {
	if p == nil {
		return
	}
	if err := p.PublishEvent(eventType, payload); err != nil {
		log.Warn("Failed to publish event", zap.String("type", eventType), zap.Error(err))
	}
}
