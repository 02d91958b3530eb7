package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Settlement statuses. A settlement is created pending and moves to exactly
// one of the terminal states; only completed settlements affect balances.
const (
	SettlementStatusPending   = "pending"
	SettlementStatusCompleted = "completed"
	SettlementStatusCancelled = "cancelled"
)

type Settlement struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	GroupID   uuid.UUID `gorm:"type:uuid;index" json:"group_id"`
	PaidBy    uuid.UUID `gorm:"type:uuid" json:"paid_by"`
	Payer     User      `gorm:"foreignKey:PaidBy" json:"payer,omitempty"`
	PaidTo    uuid.UUID `gorm:"type:uuid" json:"paid_to"`
	Payee     User      `gorm:"foreignKey:PaidTo" json:"payee,omitempty"`
	Amount    int64     `gorm:"not null" json:"amount"`
	Currency  string    `gorm:"default:INR;size:3" json:"currency"`
	Status    string    `gorm:"default:pending;size:20" json:"status"` // pending, completed, cancelled
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Settlement) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

type CreateSettlementRequest struct {
	PaidTo string `json:"paid_to" binding:"required"`
	Amount int64  `json:"amount" binding:"required,gt=0"` // smallest currency unit
	Notes  string `json:"notes"`
}
