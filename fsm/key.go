package fsm

import (
	"github.com/subchain-network/subchain/lib"
)

/*
	This file defines the state key space.

	Every record lives under a single-byte prefix; multi-segment keys are built with
	length-prefixed appends so the segments can be split back apart, and integers are
	big-endian so lexicographical iteration matches numeric order.
*/

var (
	accountPrefix             = []byte{1}  // store key prefix for accounts
	supplyPrefix              = []byte{2}  // store key prefix for the token supply record
	paramsPrefix              = []byte{3}  // store key prefix for governance params
	networksAddedPrefix       = []byte{4}  // store key prefix for subnet existence markers
	subnetPrefix              = []byte{5}  // store key prefix for subnet records
	subnetTAOPrefix           = []byte{6}  // store key prefix for pool TAO reserves
	subnetAlphaInPrefix       = []byte{7}  // store key prefix for pool alpha-in reserves
	subnetAlphaOutPrefix      = []byte{8}  // store key prefix for pool alpha-out issuance
	movingPricePrefix         = []byte{9}  // store key prefix for smoothed pool prices
	firstEmissionBlockPrefix  = []byte{10} // store key prefix for emission gate records
	subnetIdentityPrefix      = []byte{11} // store key prefix for subnet identity metadata
	totalStakeAtDynamicPrefix = []byte{12} // store key prefix for stake snapshots at registration
	subnetVolumePrefix        = []byte{13} // store key prefix for cumulative pool volume
	lockStatePrefix           = []byte{14} // store key prefix for the chain-wide lock state
	totalNetworksPrefix       = []byte{15} // store key prefix for the subnet counter
	hotkeyOwnerPrefix         = []byte{16} // store key prefix for hotkey to coldkey associations
	subnetHyperParamsPrefix   = []byte{17} // store key prefix for per-subnet hyperparameters
)

// AccountPrefix() returns the prefix covering all account keys
func AccountPrefix() []byte { return lib.JoinLenPrefix(accountPrefix) }

// KeyForAccount() returns the state key for an account record
func KeyForAccount(address []byte) []byte { return lib.JoinLenPrefix(accountPrefix, address) }

// KeyForSupply() returns the state key for the single token supply record
func KeyForSupply() []byte { return lib.JoinLenPrefix(supplyPrefix) }

// KeyForParams() returns the state key for a governance param space
func KeyForParams(space string) []byte { return lib.JoinLenPrefix(paramsPrefix, []byte(space)) }

// NetworksAddedPrefix() returns the prefix covering all subnet existence markers
func NetworksAddedPrefix() []byte { return lib.JoinLenPrefix(networksAddedPrefix) }

// KeyForNetworkAdded() returns the state key for a subnet existence marker
func KeyForNetworkAdded(netuid uint16) []byte {
	return lib.JoinLenPrefix(networksAddedPrefix, lib.FormatUint16(netuid))
}

// SubnetPrefix() returns the prefix covering all subnet records
func SubnetPrefix() []byte { return lib.JoinLenPrefix(subnetPrefix) }

// KeyForSubnet() returns the state key for a subnet record
func KeyForSubnet(netuid uint16) []byte {
	return lib.JoinLenPrefix(subnetPrefix, lib.FormatUint16(netuid))
}

// KeyForSubnetTAO() returns the state key for a pool's TAO reserve
func KeyForSubnetTAO(netuid uint16) []byte {
	return lib.JoinLenPrefix(subnetTAOPrefix, lib.FormatUint16(netuid))
}

// KeyForSubnetAlphaIn() returns the state key for a pool's alpha-in reserve
func KeyForSubnetAlphaIn(netuid uint16) []byte {
	return lib.JoinLenPrefix(subnetAlphaInPrefix, lib.FormatUint16(netuid))
}

// KeyForSubnetAlphaOut() returns the state key for a pool's alpha-out issuance
func KeyForSubnetAlphaOut(netuid uint16) []byte {
	return lib.JoinLenPrefix(subnetAlphaOutPrefix, lib.FormatUint16(netuid))
}

// KeyForMovingPrice() returns the state key for a pool's smoothed price record
func KeyForMovingPrice(netuid uint16) []byte {
	return lib.JoinLenPrefix(movingPricePrefix, lib.FormatUint16(netuid))
}

// KeyForFirstEmissionBlock() returns the state key for a subnet's emission gate
func KeyForFirstEmissionBlock(netuid uint16) []byte {
	return lib.JoinLenPrefix(firstEmissionBlockPrefix, lib.FormatUint16(netuid))
}

// KeyForSubnetIdentity() returns the state key for a subnet's identity metadata
func KeyForSubnetIdentity(netuid uint16) []byte {
	return lib.JoinLenPrefix(subnetIdentityPrefix, lib.FormatUint16(netuid))
}

// KeyForTotalStakeAtDynamic() returns the state key for the stake snapshot taken at registration
func KeyForTotalStakeAtDynamic(netuid uint16) []byte {
	return lib.JoinLenPrefix(totalStakeAtDynamicPrefix, lib.FormatUint16(netuid))
}

// KeyForSubnetVolume() returns the state key for a pool's cumulative swap volume
func KeyForSubnetVolume(netuid uint16) []byte {
	return lib.JoinLenPrefix(subnetVolumePrefix, lib.FormatUint16(netuid))
}

// KeyForLockState() returns the state key for the chain-wide registration lock state
func KeyForLockState() []byte { return lib.JoinLenPrefix(lockStatePrefix) }

// KeyForTotalNetworks() returns the state key for the subnet counter
func KeyForTotalNetworks() []byte { return lib.JoinLenPrefix(totalNetworksPrefix) }

// KeyForHotkeyOwner() returns the state key for a hotkey's controlling coldkey
func KeyForHotkeyOwner(hotkey []byte) []byte {
	return lib.JoinLenPrefix(hotkeyOwnerPrefix, hotkey)
}

// KeyForSubnetHyperParams() returns the state key for a subnet's hyperparameters
func KeyForSubnetHyperParams(netuid uint16) []byte {
	return lib.JoinLenPrefix(subnetHyperParamsPrefix, lib.FormatUint16(netuid))
}

// NetuidFromKey() extracts the netuid segment from a per-subnet state key
func NetuidFromKey(key []byte) (uint16, lib.ErrorI) {
	segments := lib.DecodeLengthPrefixed(key)
	if len(segments) != 2 || len(segments[1]) != 2 {
		return 0, ErrInvalidDBKey(key)
	}
	return uint16(segments[1][0])<<8 | uint16(segments[1][1]), nil
}

// AddressFromKey() extracts the address segment from an account state key
func AddressFromKey(key []byte) ([]byte, lib.ErrorI) {
	segments := lib.DecodeLengthPrefixed(key)
	if len(segments) != 2 {
		return nil, ErrInvalidDBKey(key)
	}
	return segments[1], nil
}
