package fsm

import (
	"github.com/subchain-network/subchain/lib"
)

/*
	This file defines the record types persisted in the state key space (key.go).

	Records are flat structs of unsigned integers, byte slices, and strings so they encode
	canonically under RLP; scalar counters and reserves are stored as raw 8-byte big-endian
	values instead (state.go) to keep the hot pool paths allocation free.
*/

// DynamicMechanism is the only supported subnet economic mechanism
const DynamicMechanism = uint16(1)

// RootNetuid is the reserved identifier of the permanent root subnet
const RootNetuid = uint16(0)

// Account is a ledger entry pairing an address with its liquid token balance
type Account struct {
	Address lib.HexBytes `json:"address"` // the short identifier of the account holder
	Amount  uint64       `json:"amount"`  // the liquid balance in the smallest token denomination
}

// Supply tracks the chain-wide token totals
type Supply struct {
	Total  uint64 `json:"total"`  // tokens currently in circulation, including pool reserves
	Burned uint64 `json:"burned"` // tokens permanently removed from circulation
}

// Subnet is the registry record of one registered network
type Subnet struct {
	Netuid       uint16       `json:"netuid"`       // the unique identifier of the subnet
	Mechanism    uint16       `json:"mechanism"`    // the economic mechanism the subnet runs under
	Owner        lib.HexBytes `json:"owner"`        // the coldkey address that registered the subnet
	OwnerHotkey  lib.HexBytes `json:"ownerHotkey"`  // the operational key associated with the owner
	RegisteredAt uint64       `json:"registeredAt"` // the block height of registration
	TokenSymbol  string       `json:"tokenSymbol"`  // the display symbol of the subnet's alpha token
}

// SubnetIdentity is the optional descriptive metadata attached to a subnet at registration
type SubnetIdentity struct {
	SubnetName     string `json:"subnetName"`
	GithubRepo     string `json:"githubRepo"`
	SubnetContact  string `json:"subnetContact"`
	SubnetUrl      string `json:"subnetUrl"`
	Discord        string `json:"discord"`
	Description    string `json:"description"`
	AdditionalInfo string `json:"additionalInfo"`
}

// MovingPrice is the persisted exponential moving average of a pool's price
type MovingPrice struct {
	Raw       []byte `json:"raw"`       // the big-endian raw fixed-point value
	UpdatedAt uint64 `json:"updatedAt"` // the height at which the average was last folded
}

// Price() reconstructs the fixed-point value from the persisted raw bytes
func (m *MovingPrice) Price() lib.Fixed { return lib.NewFixedFromBytes(m.Raw) }

// LockState is the chain-wide record of the most recent registration lock
type LockState struct {
	LastLockBlock uint64 `json:"lastLockBlock"` // the height of the last successful registration
	LastLock      uint64 `json:"lastLock"`      // the lock amount paid at that registration
}

// SubnetHyperParams are the per-subnet tuning values initialized to defaults at registration
type SubnetHyperParams struct {
	Tempo                          uint64 `json:"tempo"`
	MaxAllowedUids                 uint64 `json:"maxAllowedUids"`
	MaxAllowedValidators           uint64 `json:"maxAllowedValidators"`
	MinAllowedWeights              uint64 `json:"minAllowedWeights"`
	MaxWeightLimit                 uint64 `json:"maxWeightLimit"`
	AdjustmentInterval             uint64 `json:"adjustmentInterval"`
	TargetRegistrationsPerInterval uint64 `json:"targetRegistrationsPerInterval"`
	AdjustmentAlpha                uint64 `json:"adjustmentAlpha"`
	ImmunityPeriod                 uint64 `json:"immunityPeriod"`
	MinDifficulty                  uint64 `json:"minDifficulty"`
	MaxDifficulty                  uint64 `json:"maxDifficulty"`
	RegistrationAllowed            bool   `json:"registrationAllowed"`
}
