package fsm

import (
	"github.com/subchain-network/subchain/lib"
)

/*
	This file implements the registration lock controller: the cost curve for creating a new
	subnet and the rolling rate limit between creations.

	The cost doubles off the previous lock and decays linearly back toward the floor over
	the reduction interval, so rapid successive registrations get progressively more
	expensive while a quiet chain returns to the minimum.
*/

// GetLockState() returns the chain-wide record of the most recent registration lock
func (s *StateMachine) GetLockState() (*LockState, lib.ErrorI) {
	lockState := new(LockState)
	if err := s.GetObject(KeyForLockState(), lockState); err != nil {
		return nil, err
	}
	return lockState, nil
}

// SetLockState() persists the chain-wide lock record
func (s *StateMachine) SetLockState(lockState *LockState) lib.ErrorI {
	return s.SetObject(KeyForLockState(), lockState)
}

// GetNetworkLockCost() computes the TAO cost of the next registration
func (s *StateMachine) GetNetworkLockCost() (uint64, lib.ErrorI) {
	params, err := s.GetParamsSubnet()
	if err != nil {
		return 0, err
	}
	lockState, err := s.GetLockState()
	if err != nil {
		return 0, err
	}
	// no prior lock, the curve starts at the floor
	if lockState.LastLockBlock == 0 && lockState.LastLock == 0 {
		return params.MinNetworkLockCost, nil
	}
	// double the previous lock, then decay it linearly per elapsed block
	cost := lib.SafeAdd(lockState.LastLock, lockState.LastLock)
	elapsed := lib.SafeSub(s.height, lockState.LastLockBlock)
	decayPerBlock := lockState.LastLock / params.LockReductionInterval
	cost = lib.SafeSub(cost, lib.SafeMulDiv(decayPerBlock, elapsed, 1))
	// clamp to the governed bounds
	if cost > params.MaxNetworkLockCost {
		cost = params.MaxNetworkLockCost
	}
	if cost < params.MinNetworkLockCost {
		cost = params.MinNetworkLockCost
	}
	return cost, nil
}

// CheckNetworkRateLimit() fails when the rolling registration window has not yet elapsed
func (s *StateMachine) CheckNetworkRateLimit() lib.ErrorI {
	params, err := s.GetParamsSubnet()
	if err != nil {
		return err
	}
	if params.NetworkRateLimit == 0 {
		return nil
	}
	lockState, err := s.GetLockState()
	if err != nil {
		return err
	}
	// the window is measured from block zero on a fresh chain
	if lib.SafeSub(s.height, lockState.LastLockBlock) < params.NetworkRateLimit {
		return ErrNetworkRateLimit(lockState.LastLockBlock, params.NetworkRateLimit)
	}
	return nil
}

// RecordNetworkLock() notes a successful registration; called exactly once per registration,
// after the withdrawal succeeds
func (s *StateMachine) RecordNetworkLock(amount uint64) lib.ErrorI {
	return s.SetLockState(&LockState{LastLockBlock: s.height, LastLock: amount})
}

// SetNetworkRateLimit() updates the governed registration rate limit
func (s *StateMachine) SetNetworkRateLimit(limit uint64) lib.ErrorI {
	if err := s.UpdateParam(ParamSpaceSubnet, ParamNetworkRateLimit, limit); err != nil {
		return err
	}
	return s.EmitEvent(EventNetworkRateLimitSet, map[string]uint64{"rateLimit": limit})
}
