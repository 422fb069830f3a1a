package fsm

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/subchain-network/subchain/lib"
	"github.com/subchain-network/subchain/lib/crypto"
	"github.com/subchain-network/subchain/store"
)

// registerTestSubnet() registers a subnet for the seeded owner and returns its netuid
func registerTestSubnet(t *testing.T, sm *StateMachine, ownerSeed byte) uint16 {
	netuid, err := sm.RegisterNetwork(newTestAddress(ownerSeed), newTestHotkey(ownerSeed), DynamicMechanism, nil)
	require.NoError(t, err)
	return netuid
}

func TestGenesisRootSubnet(t *testing.T) {
	sm := newTestStateMachine(t)
	exists, err := sm.SubnetExists(RootNetuid)
	require.NoError(t, err)
	require.True(t, exists)
	subnet, err := sm.GetSubnet(RootNetuid)
	require.NoError(t, err)
	require.Equal(t, rootTokenSymbol, subnet.TokenSymbol)
	require.EqualValues(t, 0, subnet.Mechanism)
	count, err := sm.GetNumSubnets()
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}

func TestRegisterNetworkAllocatesMonotonicNetuids(t *testing.T) {
	sm := newTestStateMachine(t)
	rateLimit := uint64(10)
	require.NoError(t, sm.UpdateParam(ParamSpaceSubnet, ParamNetworkRateLimit, rateLimit))
	sm.SetHeight(rateLimit)
	var allocated []uint16
	for i := byte(1); i <= 3; i++ {
		allocated = append(allocated, registerTestSubnet(t, sm, i))
		sm.SetHeight(sm.Height() + rateLimit)
	}
	// strictly increasing from the smallest unused id above the root
	require.Equal(t, []uint16{1, 2, 3}, allocated)
	netuids, err := sm.GetAllSubnetNetuids()
	require.NoError(t, err)
	require.Equal(t, []uint16{0, 1, 2, 3}, netuids)
	count, err := sm.GetNumSubnets()
	require.NoError(t, err)
	require.EqualValues(t, 4, count)
	next, err := sm.GetNextNetuid()
	require.NoError(t, err)
	require.EqualValues(t, 4, next)
}

func TestRegisterNetworkErrors(t *testing.T) {
	tests := []struct {
		name      string
		detail    string
		setup     func(t *testing.T, sm *StateMachine)
		ownerSeed byte
		hotkey    byte
		mechanism uint16
		identity  *SubnetIdentity
		error     string
	}{
		{
			name:      "unsupported mechanism",
			detail:    "only the dynamic mechanism may be requested",
			ownerSeed: 1,
			hotkey:    1,
			mechanism: 7,
			error:     "mechanism 7 is not supported",
		},
		{
			name:   "hotkey owned by another coldkey",
			detail: "an operational key controlled by a different principal is rejected",
			setup: func(t *testing.T, sm *StateMachine) {
				require.NoError(t, sm.SetHotkeyOwner(newTestHotkey(1), newTestAddress(2).Bytes()))
			},
			ownerSeed: 1,
			hotkey:    1,
			mechanism: DynamicMechanism,
			error:     "different coldkey",
		},
		{
			name:   "rate limited",
			detail: "a second registration inside the rolling window fails",
			setup: func(t *testing.T, sm *StateMachine) {
				require.NoError(t, sm.UpdateParam(ParamSpaceSubnet, ParamNetworkRateLimit, 10))
				sm.SetHeight(10)
				registerTestSubnet(t, sm, 2)
			},
			ownerSeed: 1,
			hotkey:    1,
			mechanism: DynamicMechanism,
			error:     "registered too recently",
		},
		{
			name:      "insufficient balance",
			detail:    "an unfunded caller cannot pay the lock",
			ownerSeed: 9,
			hotkey:    9,
			mechanism: DynamicMechanism,
			error:     "insufficient funds",
		},
		{
			name:      "invalid identity",
			detail:    "identity validation runs before any state is touched",
			ownerSeed: 1,
			hotkey:    1,
			mechanism: DynamicMechanism,
			identity:  &SubnetIdentity{SubnetName: ""},
			error:     "subnet name is empty",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			sm := newTestStateMachine(t)
			if test.setup != nil {
				test.setup(t, sm)
			}
			_, err := sm.RegisterNetwork(newTestAddress(test.ownerSeed), newTestHotkey(test.hotkey), test.mechanism, test.identity)
			require.ErrorContains(t, err, test.error)
		})
	}
}

func TestRegisterNetworkFailureLeavesNoTrace(t *testing.T) {
	tests := []struct {
		name      string
		detail    string
		ownerSeed byte
		identity  *SubnetIdentity
	}{
		{
			name:      "insufficient balance mid transaction",
			detail:    "a withdrawal failure inside the wrapped transaction rolls everything back",
			ownerSeed: 9,
		},
		{
			name:      "invalid identity",
			detail:    "a rejected identity leaves no balance change, netuid, or pool behind",
			ownerSeed: 1,
			identity:  &SubnetIdentity{SubnetName: ""},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			sm := newTestStateMachine(t)
			owner := newTestAddress(test.ownerSeed)
			before, err := sm.GetAccount(owner)
			require.NoError(t, err)
			supplyBefore, err := sm.GetSupply()
			require.NoError(t, err)
			_, regErr := sm.RegisterNetwork(owner, newTestHotkey(test.ownerSeed), DynamicMechanism, test.identity)
			require.Error(t, regErr)
			// no balance change
			after, err := sm.GetAccount(owner)
			require.NoError(t, err)
			require.Equal(t, before.Amount, after.Amount)
			// no netuid allocation, no pool, no counter movement, no burn
			exists, err := sm.SubnetExists(1)
			require.NoError(t, err)
			require.False(t, exists)
			tao, err := sm.GetSubnetTAO(1)
			require.NoError(t, err)
			require.EqualValues(t, 0, tao)
			count, err := sm.GetNumSubnets()
			require.NoError(t, err)
			require.EqualValues(t, 1, count)
			supplyAfter, err := sm.GetSupply()
			require.NoError(t, err)
			require.Equal(t, supplyBefore, supplyAfter)
			// the rate limit window did not move
			lockState, err := sm.GetLockState()
			require.NoError(t, err)
			require.EqualValues(t, 0, lockState.LastLockBlock)
			// no notifications fired
			require.Empty(t, sm.Events())
		})
	}
}

func TestRegisterNetworkEndToEnd(t *testing.T) {
	sm := newTestStateMachine(t)
	owner := newTestAddress(1)
	identity := &SubnetIdentity{SubnetName: "test subnet", SubnetUrl: "https://example.org"}
	netuid, err := sm.RegisterNetwork(owner, newTestHotkey(1), DynamicMechanism, identity)
	require.NoError(t, err)
	require.EqualValues(t, 1, netuid)
	// the first lock on a fresh chain costs exactly the floor
	account, err := sm.GetAccount(owner)
	require.NoError(t, err)
	require.Equal(t, testAccountBalance-1_000, account.Amount)
	// pool seeded with equal reserves and nothing burned (lock == floor)
	tao, err := sm.GetSubnetTAO(netuid)
	require.NoError(t, err)
	alphaIn, err := sm.GetSubnetAlphaIn(netuid)
	require.NoError(t, err)
	require.EqualValues(t, 1_000, tao)
	require.Equal(t, tao, alphaIn)
	supply, err := sm.GetSupply()
	require.NoError(t, err)
	require.EqualValues(t, 0, supply.Burned)
	// registry record
	subnet, err := sm.GetSubnet(netuid)
	require.NoError(t, err)
	require.Equal(t, owner.Bytes(), []byte(subnet.Owner))
	require.Equal(t, newTestHotkey(1), []byte(subnet.OwnerHotkey))
	require.Equal(t, DynamicMechanism, subnet.Mechanism)
	require.Equal(t, sm.Height(), subnet.RegisteredAt)
	require.Equal(t, "α", subnet.TokenSymbol)
	// identity, hotkey association, hyperparams, and stake snapshot all landed
	storedIdentity, err := sm.GetSubnetIdentity(netuid)
	require.NoError(t, err)
	require.Equal(t, identity.SubnetName, storedIdentity.SubnetName)
	hotkeyOwner, err := sm.GetHotkeyOwner(newTestHotkey(1))
	require.NoError(t, err)
	require.Equal(t, owner.Bytes(), hotkeyOwner)
	hyperParams, err := sm.GetSubnetHyperParams(netuid)
	require.NoError(t, err)
	require.Equal(t, DefaultSubnetHyperParams(), hyperParams)
	snapshot, err := sm.GetTotalStakeAtDynamic(netuid)
	require.NoError(t, err)
	require.Equal(t, supply.Total, snapshot)
	// events fired in order
	events := sm.Events()
	require.Len(t, events, 2)
	require.Equal(t, EventNetworkAdded, events[0].Type)
	require.Equal(t, EventSubnetIdentitySet, events[1].Type)
}

func TestRegisterNetworkBurnsExcessOverFloor(t *testing.T) {
	sm := newTestStateMachine(t)
	registerTestSubnet(t, sm, 1)
	supplyBefore, err := sm.GetSupply()
	require.NoError(t, err)
	// advance past the rate limit; the curve now prices above the pool floor
	sm.SetHeight(sm.Height() + 10)
	cost, err := sm.GetNetworkLockCost()
	require.NoError(t, err)
	require.EqualValues(t, 1_900, cost) // 2*1000 decayed by 10 blocks of 1000/100
	netuid := registerTestSubnet(t, sm, 2)
	// only the floor lands in the pool, the rest is burned
	tao, err := sm.GetSubnetTAO(netuid)
	require.NoError(t, err)
	require.EqualValues(t, 1_000, tao)
	supplyAfter, err := sm.GetSupply()
	require.NoError(t, err)
	require.Equal(t, supplyBefore.Total-900, supplyAfter.Total)
	require.Equal(t, supplyBefore.Burned+900, supplyAfter.Burned)
	// the stake snapshot was taken before the excess burn
	snapshot, err := sm.GetTotalStakeAtDynamic(netuid)
	require.NoError(t, err)
	require.Equal(t, supplyBefore.Total, snapshot)
}

func TestRegisterNetworkAboveLowFloor(t *testing.T) {
	db, err := store.NewStoreInMemory(lib.NewNullLogger())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	genesis := newTestGenesisState()
	genesis.Params.Subnet.MinNetworkLockCost = 1
	for _, account := range genesis.Accounts {
		account.Amount = 1_000
	}
	sm, err := NewWithGenesis(lib.DefaultConfig(), db, genesis, lib.NewNullLogger())
	require.NoError(t, err)
	// a prior lock prices the next registration at 500, far above the floor of 1
	require.NoError(t, sm.SetLockState(&LockState{LastLockBlock: sm.Height(), LastLock: 250}))
	cost, err := sm.GetNetworkLockCost()
	require.NoError(t, err)
	require.EqualValues(t, 500, cost)
	netuid, err := sm.RegisterNetwork(newTestAddress(1), newTestHotkey(1), DynamicMechanism, nil)
	require.NoError(t, err)
	require.EqualValues(t, 1, netuid)
	// only the floor lands in the pool and the other 499 is burned
	account, err := sm.GetAccount(newTestAddress(1))
	require.NoError(t, err)
	require.EqualValues(t, 500, account.Amount)
	tao, err := sm.GetSubnetTAO(netuid)
	require.NoError(t, err)
	require.EqualValues(t, 1, tao)
	alphaIn, err := sm.GetSubnetAlphaIn(netuid)
	require.NoError(t, err)
	require.EqualValues(t, 1, alphaIn)
	supply, err := sm.GetSupply()
	require.NoError(t, err)
	require.EqualValues(t, 499, supply.Burned)
	// the next caller pays the doubled cost and receives the next netuid
	next, err := sm.RegisterNetwork(newTestAddress(2), newTestHotkey(2), DynamicMechanism, nil)
	require.NoError(t, err)
	require.EqualValues(t, 2, next)
}

func TestTokenSymbolForNetuid(t *testing.T) {
	require.Equal(t, "Τ", TokenSymbolForNetuid(0))
	require.Equal(t, "α", TokenSymbolForNetuid(1))
	require.Equal(t, "β", TokenSymbolForNetuid(2))
	require.Equal(t, "ω", TokenSymbolForNetuid(24))
	// the alphabet cycles past its length
	require.Equal(t, "α", TokenSymbolForNetuid(25))
}

func TestSubnetAccessorsUnknownNetuid(t *testing.T) {
	sm := newTestStateMachine(t)
	exists, err := sm.SubnetExists(42)
	require.NoError(t, err)
	require.False(t, exists)
	mechanism, err := sm.GetSubnetMechanism(42)
	require.NoError(t, err)
	require.EqualValues(t, 0, mechanism)
	_, err = sm.GetSubnet(42)
	require.ErrorContains(t, err, "does not exist")
}

func TestCheckSubnetIdentity(t *testing.T) {
	sm := newTestStateMachine(t)
	oversized := make([]byte, sm.Config.MaxIdentityFieldSize+1)
	for i := range oversized {
		oversized[i] = 'a'
	}
	tests := []struct {
		name     string
		detail   string
		identity *SubnetIdentity
		error    string
	}{
		{
			name:     "valid identity",
			detail:   "a populated identity within the limits passes",
			identity: &SubnetIdentity{SubnetName: "net", Description: "a subnet"},
		},
		{
			name:     "empty name",
			detail:   "the subnet name is mandatory",
			identity: &SubnetIdentity{Description: "a subnet"},
			error:    "subnet name is empty",
		},
		{
			name:     "oversized field",
			detail:   "a field above the configured limit is rejected",
			identity: &SubnetIdentity{SubnetName: "net", Description: string(oversized)},
			error:    "exceeds the maximum size",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := sm.CheckSubnetIdentity(test.identity)
			if test.error != "" {
				require.ErrorContains(t, err, test.error)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestRegisterNetworkReassociatesOwnHotkey(t *testing.T) {
	sm := newTestStateMachine(t)
	owner := newTestAddress(1)
	// pre-associating the hotkey with the same coldkey is not a conflict
	require.NoError(t, sm.SetHotkeyOwner(newTestHotkey(1), owner.Bytes()))
	netuid, err := sm.RegisterNetwork(owner, newTestHotkey(1), DynamicMechanism, nil)
	require.NoError(t, err)
	require.EqualValues(t, 1, netuid)
}

func TestRegisterNetworkNilOwner(t *testing.T) {
	sm := newTestStateMachine(t)
	_, err := sm.RegisterNetwork(crypto.NewAddressFromBytes(nil), newTestHotkey(1), DynamicMechanism, nil)
	require.ErrorContains(t, err, "address is empty")
}
