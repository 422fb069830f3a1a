package fsm

import (
	"math"

	"github.com/subchain-network/subchain/lib"
	"github.com/subchain-network/subchain/lib/crypto"
)

/*
	This file implements the subnet registry: existence, netuid allocation, ownership,
	identity metadata, and the registration entry point.

	RegisterNetwork() is the one multi-step mutator in the module. Everything after the
	precondition ladder runs inside a wrapped store transaction: the withdrawal, the netuid
	allocation, the pool bootstrap, and the counters either all land or none do.
*/

// tokenSymbols are the display symbols assigned to subnet alpha tokens; the root subnet
// keeps the uppercase tau and registered subnets cycle through the lowercase alphabet
var tokenSymbols = []string{
	"α", "β", "γ", "δ", "ε", "ζ", "η", "θ", "ι", "κ", "λ", "μ",
	"ν", "ξ", "ο", "π", "ρ", "σ", "τ", "υ", "φ", "χ", "ψ", "ω",
}

const rootTokenSymbol = "Τ"

// TokenSymbolForNetuid() returns the display symbol for a subnet's alpha token
func TokenSymbolForNetuid(netuid uint16) string {
	if netuid == RootNetuid {
		return rootTokenSymbol
	}
	return tokenSymbols[int(netuid-1)%len(tokenSymbols)]
}

// GetSubnet() returns the registry record for a netuid
func (s *StateMachine) GetSubnet(netuid uint16) (*Subnet, lib.ErrorI) {
	bz, err := s.Get(KeyForSubnet(netuid))
	if err != nil {
		return nil, err
	}
	if bz == nil {
		return nil, ErrSubnetNotExists(netuid)
	}
	subnet := new(Subnet)
	if err = lib.Unmarshal(bz, subnet); err != nil {
		return nil, err
	}
	return subnet, nil
}

// SetSubnet() persists a registry record and its existence marker
func (s *StateMachine) SetSubnet(subnet *Subnet) lib.ErrorI {
	if err := s.SetObject(KeyForSubnet(subnet.Netuid), subnet); err != nil {
		return err
	}
	return s.Set(KeyForNetworkAdded(subnet.Netuid), []byte{1})
}

// SubnetExists() returns true if a subnet is registered under the netuid
func (s *StateMachine) SubnetExists(netuid uint16) (bool, lib.ErrorI) {
	bz, err := s.Get(KeyForNetworkAdded(netuid))
	if err != nil {
		return false, err
	}
	return bz != nil, nil
}

// GetSubnetMechanism() returns a subnet's economic mechanism; unknown netuids read as zero
func (s *StateMachine) GetSubnetMechanism(netuid uint16) (uint16, lib.ErrorI) {
	exists, err := s.SubnetExists(netuid)
	if err != nil || !exists {
		return 0, err
	}
	subnet, err := s.GetSubnet(netuid)
	if err != nil {
		return 0, err
	}
	return subnet.Mechanism, nil
}

// GetNumSubnets() returns the count of registered subnets, the root subnet included
func (s *StateMachine) GetNumSubnets() (uint64, lib.ErrorI) {
	return s.GetUint64(KeyForTotalNetworks())
}

// setNumSubnets() persists the subnet counter
func (s *StateMachine) setNumSubnets(count uint64) lib.ErrorI {
	return s.SetUint64(KeyForTotalNetworks(), count)
}

// GetNextNetuid() returns the smallest unused netuid at or above 1; allocation is a
// deterministic linear scan so every replica allocates identically
func (s *StateMachine) GetNextNetuid() (uint16, lib.ErrorI) {
	for candidate := uint64(1); candidate <= math.MaxUint16; candidate++ {
		exists, err := s.SubnetExists(uint16(candidate))
		if err != nil {
			return 0, err
		}
		if !exists {
			return uint16(candidate), nil
		}
	}
	return 0, ErrNetuidSpaceExhausted()
}

// GetAllSubnetNetuids() returns every registered netuid in ascending order
func (s *StateMachine) GetAllSubnetNetuids() (result []uint16, err lib.ErrorI) {
	err = s.IterateAndExecute(NetworksAddedPrefix(), func(key, _ []byte) lib.ErrorI {
		netuid, e := NetuidFromKey(key)
		if e != nil {
			return e
		}
		result = append(result, netuid)
		return nil
	})
	return
}

// GetHotkeyOwner() returns the coldkey controlling a hotkey; nil when unassociated
func (s *StateMachine) GetHotkeyOwner(hotkey []byte) ([]byte, lib.ErrorI) {
	return s.Get(KeyForHotkeyOwner(hotkey))
}

// SetHotkeyOwner() associates a hotkey with its controlling coldkey
func (s *StateMachine) SetHotkeyOwner(hotkey, owner []byte) lib.ErrorI {
	return s.Set(KeyForHotkeyOwner(hotkey), owner)
}

// GetSubnetIdentity() returns a subnet's identity metadata; nil when never set
func (s *StateMachine) GetSubnetIdentity(netuid uint16) (*SubnetIdentity, lib.ErrorI) {
	bz, err := s.Get(KeyForSubnetIdentity(netuid))
	if err != nil {
		return nil, err
	}
	if bz == nil {
		return nil, nil
	}
	identity := new(SubnetIdentity)
	if err = lib.Unmarshal(bz, identity); err != nil {
		return nil, err
	}
	return identity, nil
}

// CheckSubnetIdentity() validates identity metadata against the configured field limits
func (s *StateMachine) CheckSubnetIdentity(identity *SubnetIdentity) lib.ErrorI {
	if identity.SubnetName == "" {
		return ErrInvalidSubnetIdentity("subnet name is empty")
	}
	maxSize := int(s.Config.MaxIdentityFieldSize)
	for _, field := range []string{
		identity.SubnetName, identity.GithubRepo, identity.SubnetContact,
		identity.SubnetUrl, identity.Discord, identity.Description, identity.AdditionalInfo,
	} {
		if len(field) > maxSize {
			return ErrInvalidSubnetIdentity("field exceeds the maximum size")
		}
	}
	return nil
}

// GetTotalStakeAtDynamic() returns the circulating supply snapshot taken at registration
func (s *StateMachine) GetTotalStakeAtDynamic(netuid uint16) (uint64, lib.ErrorI) {
	return s.GetUint64(KeyForTotalStakeAtDynamic(netuid))
}

// RegisterNetwork() creates a new subnet: it charges the caller the current lock cost,
// allocates the next netuid, writes default hyperparameters, bootstraps the liquidity
// pool from the lock, and records ownership; on any failure past the precondition ladder
// the wrapped transaction is discarded and no state change survives, the withdrawal included
func (s *StateMachine) RegisterNetwork(owner crypto.AddressI, hotkey []byte, mechanism uint16, identity *SubnetIdentity) (uint16, lib.ErrorI) {
	// the precondition ladder runs before any state is touched
	if err := checkAddress(owner); err != nil {
		return 0, err
	}
	if mechanism != DynamicMechanism {
		return 0, ErrMechanismNotSupported(mechanism)
	}
	hotkeyOwner, err := s.GetHotkeyOwner(hotkey)
	if err != nil {
		return 0, err
	}
	if hotkeyOwner != nil && !owner.Equals(crypto.NewAddressFromBytes(hotkeyOwner)) {
		return 0, ErrNonAssociatedHotkey()
	}
	if err = s.CheckNetworkRateLimit(); err != nil {
		return 0, err
	}
	if identity != nil {
		if err = s.CheckSubnetIdentity(identity); err != nil {
			return 0, err
		}
	}
	lockCost, err := s.GetNetworkLockCost()
	if err != nil {
		return 0, err
	}
	// everything below is all-or-nothing
	prev := s.Store()
	txn, err := s.TxnWrap()
	if err != nil {
		return 0, err
	}
	netuid, seeded, burned, err := s.registerNetwork(owner, hotkey, mechanism, identity, lockCost)
	if err != nil {
		txn.Discard()
		s.SetStore(prev)
		return 0, err
	}
	s.SetStore(prev)
	if err = txn.Write(); err != nil {
		return 0, err
	}
	// notifications fire only once the transaction has flushed
	if err = s.EmitEvent(EventNetworkAdded, &EventNetworkAddedData{
		Netuid:      netuid,
		Owner:       owner.Bytes(),
		LockCost:    lockCost,
		PoolSeeded:  seeded,
		Burned:      burned,
		TokenSymbol: TokenSymbolForNetuid(netuid),
	}); err != nil {
		return 0, err
	}
	if identity != nil {
		if err = s.EmitEvent(EventSubnetIdentitySet, map[string]any{"netuid": netuid, "subnetName": identity.SubnetName}); err != nil {
			return 0, err
		}
	}
	s.log.Infof("registered subnet %d for %s (lock %d, seeded %d, burned %d)",
		netuid, owner.String(), lockCost, seeded, burned)
	return netuid, nil
}

// registerNetwork() is the transactional body of RegisterNetwork()
func (s *StateMachine) registerNetwork(owner crypto.AddressI, hotkey []byte, mechanism uint16,
	identity *SubnetIdentity, lockCost uint64) (netuid uint16, seeded, burned uint64, err lib.ErrorI) {
	params, err := s.GetParamsSubnet()
	if err != nil {
		return
	}
	if err = s.AccountWithdraw(owner, lockCost); err != nil {
		return
	}
	if netuid, err = s.GetNextNetuid(); err != nil {
		return
	}
	if err = s.SetSubnet(&Subnet{
		Netuid:       netuid,
		Mechanism:    mechanism,
		Owner:        owner.Bytes(),
		OwnerHotkey:  hotkey,
		RegisteredAt: s.height,
		TokenSymbol:  TokenSymbolForNetuid(netuid),
	}); err != nil {
		return
	}
	if err = s.SetHotkeyOwner(hotkey, owner.Bytes()); err != nil {
		return
	}
	if err = s.SetObject(KeyForSubnetHyperParams(netuid), DefaultSubnetHyperParams()); err != nil {
		return
	}
	// snapshot the circulating supply at the moment the subnet went dynamic,
	// before the bootstrap burns the lock excess
	supply, err := s.GetSupply()
	if err != nil {
		return
	}
	if err = s.SetUint64(KeyForTotalStakeAtDynamic(netuid), supply.Total); err != nil {
		return
	}
	if seeded, burned, err = s.bootstrapPool(netuid, lockCost, params); err != nil {
		return
	}
	if identity != nil {
		if err = s.SetObject(KeyForSubnetIdentity(netuid), identity); err != nil {
			return
		}
	}
	count, err := s.GetNumSubnets()
	if err != nil {
		return
	}
	if err = s.setNumSubnets(count + 1); err != nil {
		return
	}
	err = s.RecordNetworkLock(lockCost)
	return
}

// GetSubnetHyperParams() returns a subnet's hyperparameter record
func (s *StateMachine) GetSubnetHyperParams(netuid uint16) (*SubnetHyperParams, lib.ErrorI) {
	bz, err := s.Get(KeyForSubnetHyperParams(netuid))
	if err != nil {
		return nil, err
	}
	if bz == nil {
		return nil, ErrSubnetNotExists(netuid)
	}
	hyperParams := new(SubnetHyperParams)
	if err = lib.Unmarshal(bz, hyperParams); err != nil {
		return nil, err
	}
	return hyperParams, nil
}
