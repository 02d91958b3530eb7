package models

import "github.com/google/uuid"

// MemberBalance is one participant's signed net position within a group:
// positive means they are owed money, negative means they owe.
type MemberBalance struct {
	UserID uuid.UUID `json:"user_id"`
	Name   string    `json:"name"`
	Amount int64     `json:"amount"`
}

// SuggestedSettlement is one proposed repayment from the debt simplifier.
type SuggestedSettlement struct {
	From     uuid.UUID `json:"from"`
	FromName string    `json:"from_name"`
	To       uuid.UUID `json:"to"`
	ToName   string    `json:"to_name"`
	Amount   int64     `json:"amount"`
	Currency string    `json:"currency"`
}

// FriendBalance is the overall net position with a single friend across all
// shared groups.
type FriendBalance struct {
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Amount    int64     `json:"amount"` // positive = they owe you, negative = you owe them
	Currency  string    `json:"currency"`
}

// GroupBalanceSummary is returned for GET /api/groups/:id/balances
type GroupBalanceSummary struct {
	GroupID     uuid.UUID             `json:"group_id"`
	GroupName   string                `json:"group_name"`
	Currency    string                `json:"currency"`
	Balances    []MemberBalance       `json:"balances"`
	Suggestions []SuggestedSettlement `json:"suggestions"`
	TotalSpent  int64                 `json:"total_spent"`
}

// OverallBalanceSummary is returned for GET /api/balances
type OverallBalanceSummary struct {
	TotalOwed  int64           `json:"total_owed"`  // total others owe you
	TotalOwing int64           `json:"total_owing"` // total you owe others
	Friends    []FriendBalance `json:"friends"`
}
