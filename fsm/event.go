package fsm

import (
	"encoding/json"

	"github.com/subchain-network/subchain/lib"
)

/*
	This file implements the in-memory event sink: an ordered list of notifications produced
	while executing a block. Events for a multi-step operation are emitted only after the
	operation's transaction has flushed, so a rolled back operation leaves no trace here.
*/

const (
	EventNetworkAdded          = "network_added"            // a new subnet was registered
	EventSubnetIdentitySet     = "subnet_identity_set"      // identity metadata was attached to a subnet
	EventFirstEmissionBlockSet = "first_emission_block_set" // a subnet's emission gate was opened
	EventNetworkRateLimitSet   = "network_rate_limit_set"   // governance changed the registration rate limit
	EventSwapExecuted          = "swap_executed"            // a pool swap was executed
)

// Event is a single notification produced during block execution
type Event struct {
	Type   string          `json:"type"`   // the registered event type
	Height uint64          `json:"height"` // the height at which the event was produced
	Data   json.RawMessage `json:"data"`   // the type-specific JSON payload
}

// EventNetworkAddedData is the payload of a network_added event
type EventNetworkAddedData struct {
	Netuid      uint16       `json:"netuid"`
	Owner       lib.HexBytes `json:"owner"`
	LockCost    uint64       `json:"lockCost"`
	PoolSeeded  uint64       `json:"poolSeeded"`
	Burned      uint64       `json:"burned"`
	TokenSymbol string       `json:"tokenSymbol"`
}

// EventFirstEmissionData is the payload of a first_emission_block_set event
type EventFirstEmissionData struct {
	Netuid             uint16 `json:"netuid"`
	FirstEmissionBlock uint64 `json:"firstEmissionBlock"`
}

// EventSwapData is the payload of a swap_executed event
type EventSwapData struct {
	Netuid   uint16 `json:"netuid"`
	TaoIn    uint64 `json:"taoIn"`
	TaoOut   uint64 `json:"taoOut"`
	AlphaIn  uint64 `json:"alphaIn"`
	AlphaOut uint64 `json:"alphaOut"`
}

// EmitEvent() appends a typed event to the block's event list
func (s *StateMachine) EmitEvent(eventType string, data any) lib.ErrorI {
	bz, err := lib.MarshalJSON(data)
	if err != nil {
		return err
	}
	s.events = append(s.events, &Event{Type: eventType, Height: s.height, Data: bz})
	if s.log != nil {
		s.log.Debugf("event %s: %s", eventType, string(bz))
	}
	return nil
}

// Events() returns the events emitted so far during the current block
func (s *StateMachine) Events() []*Event { return s.events }

// ResetEvents() clears the event list at a block boundary
func (s *StateMachine) ResetEvents() { s.events = nil }
