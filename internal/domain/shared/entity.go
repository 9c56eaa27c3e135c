package shared

import (
	"time"

	"github.com/google/uuid"
)

// Entity is implemented by every domain object with identity
type Entity interface {
	GetID() uuid.UUID
	GetCreatedAt() time.Time
	GetUpdatedAt() time.Time
}

// BaseEntity carries identity and timestamps, embedded by all entities
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBaseEntity assigns a fresh UUID and stamps both timestamps
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
}

// GetID returns the entity identifier
func (e *BaseEntity) GetID() uuid.UUID { return e.ID }

// GetCreatedAt returns when the entity was created
func (e *BaseEntity) GetCreatedAt() time.Time { return e.CreatedAt }

// GetUpdatedAt returns when the entity last changed
func (e *BaseEntity) GetUpdatedAt() time.Time { return e.UpdatedAt }

// Touch records a mutation time
func (e *BaseEntity) Touch() { e.UpdatedAt = time.Now() }
