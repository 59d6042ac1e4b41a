package models

import (
	"time"

	id "namereg/pkg/domain"
)

// EventType classifies a registry notification.
type EventType string

const (
	// EventNameClaimed is emitted once per successful claim, carrying the
	// claiming identity.
	EventNameClaimed EventType = "name_claimed"

	// EventOwnerChanged is emitted by every transfer call that reaches the
	// emit step, carrying the new holder. This includes the vacuous branch
	// where the domain ID does not exist.
	EventOwnerChanged EventType = "owner_changed"
)

// Event is a registry notification handed to sinks. Delivery beyond
// "emitted once per call that reaches the emit step" is the sink's concern.
type Event struct {
	Type     EventType    `json:"type"`
	Identity id.AccountID `json:"identity"`
	DomainID int32        `json:"domain_id,omitempty"`
	Name     string       `json:"name,omitempty"`
	At       time.Time    `json:"at"`
}
