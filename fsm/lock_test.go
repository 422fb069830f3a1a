package fsm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNetworkLockCostCurve(t *testing.T) {
	tests := []struct {
		name      string
		detail    string
		lockState *LockState
		height    uint64
		expected  uint64
	}{
		{
			name:     "fresh chain",
			detail:   "with no prior lock the curve starts at the floor",
			height:   1,
			expected: 1_000,
		},
		{
			name:      "immediately after a lock",
			detail:    "the cost doubles the previous lock before any decay",
			lockState: &LockState{LastLockBlock: 100, LastLock: 5_000},
			height:    100,
			expected:  10_000,
		},
		{
			name:      "partial decay",
			detail:    "the doubled cost decays linearly per elapsed block",
			lockState: &LockState{LastLockBlock: 100, LastLock: 5_000},
			height:    150,
			expected:  7_500, // 10000 - (5000/100)*50
		},
		{
			name:      "full decay to the floor",
			detail:    "after enough elapsed blocks the cost is clamped at the minimum",
			lockState: &LockState{LastLockBlock: 100, LastLock: 5_000},
			height:    100 + 1_000,
			expected:  1_000,
		},
		{
			name:      "clamped at the ceiling",
			detail:    "a very large previous lock is clamped at the maximum",
			lockState: &LockState{LastLockBlock: 100, LastLock: 900_000},
			height:    100,
			expected:  1_000_000,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			sm := newTestStateMachine(t)
			if test.lockState != nil {
				require.NoError(t, sm.SetLockState(test.lockState))
			}
			sm.SetHeight(test.height)
			cost, err := sm.GetNetworkLockCost()
			require.NoError(t, err)
			require.Equal(t, test.expected, cost)
		})
	}
}

func TestNetworkLockCostMonotoneDecay(t *testing.T) {
	sm := newTestStateMachine(t)
	require.NoError(t, sm.SetLockState(&LockState{LastLockBlock: 1, LastLock: 50_000}))
	// the cost never increases as blocks elapse
	previous := uint64(1 << 62)
	for height := uint64(1); height <= 2_001; height += 100 {
		sm.SetHeight(height)
		cost, err := sm.GetNetworkLockCost()
		require.NoError(t, err)
		require.LessOrEqual(t, cost, previous)
		previous = cost
	}
}

func TestNetworkRateLimitBoundary(t *testing.T) {
	tests := []struct {
		name    string
		detail  string
		elapsed uint64
		error   string
	}{
		{
			name:    "one block before the window closes",
			detail:  "elapsed == limit - 1 is still rate limited",
			elapsed: 9,
			error:   "registered too recently",
		},
		{
			name:    "exactly at the window",
			detail:  "elapsed == limit is allowed, the boundary is inclusive",
			elapsed: 10,
		},
		{
			name:    "past the window",
			detail:  "elapsed > limit is allowed",
			elapsed: 11,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			sm := newTestStateMachine(t)
			registerTestSubnet(t, sm, 1)
			require.NoError(t, sm.UpdateParam(ParamSpaceSubnet, ParamNetworkRateLimit, 10))
			lockState, err := sm.GetLockState()
			require.NoError(t, err)
			sm.SetHeight(lockState.LastLockBlock + test.elapsed)
			_, regErr := sm.RegisterNetwork(newTestAddress(2), newTestHotkey(2), DynamicMechanism, nil)
			if test.error != "" {
				require.ErrorContains(t, regErr, test.error)
				return
			}
			require.NoError(t, regErr)
		})
	}
}

func TestNetworkRateLimitOnFreshChain(t *testing.T) {
	sm := newTestStateMachine(t)
	require.NoError(t, sm.UpdateParam(ParamSpaceSubnet, ParamNetworkRateLimit, 10))
	// with no prior lock the window is measured from block zero, so an early
	// registration is still rate limited
	_, err := sm.RegisterNetwork(newTestAddress(1), newTestHotkey(1), DynamicMechanism, nil)
	require.ErrorContains(t, err, "registered too recently")
	// once the chain height reaches the limit the first registration passes
	sm.SetHeight(10)
	_, err = sm.RegisterNetwork(newTestAddress(1), newTestHotkey(1), DynamicMechanism, nil)
	require.NoError(t, err)
}

func TestNetworkRateLimitZeroDisables(t *testing.T) {
	sm := newTestStateMachine(t)
	require.NoError(t, sm.UpdateParam(ParamSpaceSubnet, ParamNetworkRateLimit, 10))
	sm.SetHeight(10)
	require.EqualValues(t, 1, registerTestSubnet(t, sm, 1))
	// inside the window the second registration fails until the limit is zeroed
	_, err := sm.RegisterNetwork(newTestAddress(2), newTestHotkey(2), DynamicMechanism, nil)
	require.ErrorContains(t, err, "registered too recently")
	require.NoError(t, sm.UpdateParam(ParamSpaceSubnet, ParamNetworkRateLimit, 0))
	require.EqualValues(t, 2, registerTestSubnet(t, sm, 2))
}

func TestRecordNetworkLock(t *testing.T) {
	sm := newTestStateMachine(t)
	sm.SetHeight(77)
	require.NoError(t, sm.RecordNetworkLock(4_242))
	lockState, err := sm.GetLockState()
	require.NoError(t, err)
	require.EqualValues(t, 77, lockState.LastLockBlock)
	require.EqualValues(t, 4_242, lockState.LastLock)
}

func TestSetNetworkRateLimit(t *testing.T) {
	sm := newTestStateMachine(t)
	require.NoError(t, sm.SetNetworkRateLimit(25))
	params, err := sm.GetParamsSubnet()
	require.NoError(t, err)
	require.EqualValues(t, 25, params.NetworkRateLimit)
	events := sm.Events()
	require.Len(t, events, 1)
	require.Equal(t, EventNetworkRateLimitSet, events[0].Type)
}
