package fsm

import (
	"github.com/subchain-network/subchain/lib"
	"github.com/subchain-network/subchain/lib/crypto"
)

/*
	This file defines the state-transition messages and the single dispatch point that
	applies them. Every mutating entry into the module flows through HandleMessage().
*/

const (
	MessageRegisterNetworkName = "register_network" // registered name of MessageRegisterNetwork
	MessageStartCallName       = "start_call"       // registered name of MessageStartCall
)

// maxHotkeySize bounds the operational key field; large enough for any supported key type
const maxHotkeySize = 64

var (
	_ lib.MessageI = &MessageRegisterNetwork{}
	_ lib.MessageI = &MessageStartCall{}
)

// MessageRegisterNetwork requests creation of a new subnet
type MessageRegisterNetwork struct {
	Owner     lib.HexBytes    `json:"owner"`     // the coldkey paying the lock and owning the subnet
	Hotkey    lib.HexBytes    `json:"hotkey"`    // the operational key to associate with the owner
	Mechanism uint16          `json:"mechanism"` // the requested economic mechanism
	Identity  *SubnetIdentity `json:"identity"`  // optional descriptive metadata
}

// Check() statelessly sanity validates the message fields
func (x *MessageRegisterNetwork) Check() lib.ErrorI {
	if err := checkAddress(crypto.NewAddressFromBytes(x.Owner)); err != nil {
		return err
	}
	if len(x.Hotkey) == 0 || len(x.Hotkey) > maxHotkeySize {
		return ErrInvalidHotkey()
	}
	return nil
}

// Name() returns the registered name of the message
func (x *MessageRegisterNetwork) Name() string { return MessageRegisterNetworkName }

// MessageStartCall requests opening a subnet's emission gate
type MessageStartCall struct {
	Caller lib.HexBytes `json:"caller"` // the coldkey asserting subnet ownership
	Netuid uint16       `json:"netuid"` // the target subnet
}

// Check() statelessly sanity validates the message fields
func (x *MessageStartCall) Check() lib.ErrorI {
	if err := checkAddress(crypto.NewAddressFromBytes(x.Caller)); err != nil {
		return err
	}
	// the root subnet has no pool and never emits
	if x.Netuid == RootNetuid {
		return ErrInvalidNetuid(x.Netuid)
	}
	return nil
}

// Name() returns the registered name of the message
func (x *MessageStartCall) Name() string { return MessageStartCallName }

// HandleMessage() validates and applies a state-transition message
func (s *StateMachine) HandleMessage(message lib.MessageI) lib.ErrorI {
	if err := message.Check(); err != nil {
		return err
	}
	switch x := message.(type) {
	case *MessageRegisterNetwork:
		_, err := s.RegisterNetwork(crypto.NewAddressFromBytes(x.Owner), x.Hotkey, x.Mechanism, x.Identity)
		return err
	case *MessageStartCall:
		return s.StartCall(crypto.NewAddressFromBytes(x.Caller), x.Netuid)
	default:
		return ErrUnknownMessage(message)
	}
}
