package fsm

import (
	"github.com/subchain-network/subchain/lib"
	"github.com/subchain-network/subchain/lib/crypto"
)

/*
	This file implements the emission gate: a write-once record of the block at which a
	subnet begins receiving protocol emissions. The gate opens one block in the future so
	downstream emission consumers always see a clean boundary.
*/

// GetFirstEmissionBlock() returns a subnet's first emission height; zero means the gate
// has not been opened
func (s *StateMachine) GetFirstEmissionBlock(netuid uint16) (uint64, lib.ErrorI) {
	return s.GetUint64(KeyForFirstEmissionBlock(netuid))
}

// IsEmissionEligible() returns true once a subnet's emission gate has been opened
func (s *StateMachine) IsEmissionEligible(netuid uint16) (bool, lib.ErrorI) {
	firstEmission, err := s.GetFirstEmissionBlock(netuid)
	if err != nil {
		return false, err
	}
	return firstEmission != 0, nil
}

// StartCall() opens a subnet's emission gate. Only the registered owner may call it, the
// subnet must have aged past the maturation window, and the gate may only open once.
func (s *StateMachine) StartCall(caller crypto.AddressI, netuid uint16) lib.ErrorI {
	subnet, err := s.GetSubnet(netuid)
	if err != nil {
		return err
	}
	if !caller.Equals(crypto.NewAddressFromBytes(subnet.Owner)) {
		return ErrNotSubnetOwner()
	}
	firstEmission, err := s.GetFirstEmissionBlock(netuid)
	if err != nil {
		return err
	}
	if firstEmission != 0 {
		return ErrFirstEmissionAlreadySet(netuid)
	}
	params, err := s.GetParamsSubnet()
	if err != nil {
		return err
	}
	matureAt := lib.SafeAdd(subnet.RegisteredAt, params.EmissionMaturationBlocks)
	if s.height < matureAt {
		return ErrStartCallTooEarly(matureAt - s.height)
	}
	firstEmission = s.height + 1
	if err = s.SetUint64(KeyForFirstEmissionBlock(netuid), firstEmission); err != nil {
		return err
	}
	if err = s.EmitEvent(EventFirstEmissionBlockSet, &EventFirstEmissionData{
		Netuid:             netuid,
		FirstEmissionBlock: firstEmission,
	}); err != nil {
		return err
	}
	s.log.Infof("emission gate opened for subnet %d at block %d", netuid, firstEmission)
	return nil
}
