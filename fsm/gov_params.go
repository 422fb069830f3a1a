package fsm

import (
	"math"

	"github.com/subchain-network/subchain/lib"
)

/*
	This file implements governance parameters: chain-wide policy values grouped into
	spaces, initialized at genesis and updatable only by name through UpdateParam().
*/

const (
	ParamSpaceSubnet = "subnet" // the param space governing subnet registration and pools

	ParamMinNetworkLockCost       = "minNetworkLockCost"
	ParamMaxNetworkLockCost       = "maxNetworkLockCost"
	ParamLockReductionInterval    = "lockReductionInterval"
	ParamNetworkRateLimit         = "networkRateLimit"
	ParamMinimumPoolLiquidity     = "minimumPoolLiquidity"
	ParamMaxAlphaIssuance         = "maxAlphaIssuance"
	ParamEmissionMaturationBlocks = "emissionMaturationBlocks"
	ParamEmaPriceHalvingBlocks    = "emaPriceHalvingBlocks"
	ParamTaoWeightE9              = "taoWeightE9"
)

// taoWeightDenominator is the scale of the TaoWeightE9 param (1e9 = weight of 1.0)
const taoWeightDenominator = uint64(1_000_000_000)

// Params is the full set of governance parameter spaces
type Params struct {
	Subnet *SubnetParams `json:"subnet"`
}

// SubnetParams govern registration cost, pool bootstrap, and emission maturation
type SubnetParams struct {
	MinNetworkLockCost       uint64 `json:"minNetworkLockCost"`       // floor of the registration lock cost
	MaxNetworkLockCost       uint64 `json:"maxNetworkLockCost"`       // ceiling of the registration lock cost
	LockReductionInterval    uint64 `json:"lockReductionInterval"`    // blocks over which the lock cost decays back to the floor
	NetworkRateLimit         uint64 `json:"networkRateLimit"`         // minimum blocks between successful registrations
	MinimumPoolLiquidity     uint64 `json:"minimumPoolLiquidity"`     // floor on a pool's TAO reserve; swaps may not drain below it
	MaxAlphaIssuance         uint64 `json:"maxAlphaIssuance"`         // cap on total alpha issued per subnet
	EmissionMaturationBlocks uint64 `json:"emissionMaturationBlocks"` // blocks a subnet must age before start is allowed
	EmaPriceHalvingBlocks    uint64 `json:"emaPriceHalvingBlocks"`    // half-life of the moving price average, in blocks
	TaoWeightE9              uint64 `json:"taoWeightE9"`              // global TAO stake weight, scaled by 1e9
}

// DefaultParams() returns the developer set parameter values
func DefaultParams() *Params {
	return &Params{
		Subnet: &SubnetParams{
			MinNetworkLockCost:       1_000_000_000,
			MaxNetworkLockCost:       100_000_000_000_000,
			LockReductionInterval:    100_800,
			NetworkRateLimit:         7_200,
			MinimumPoolLiquidity:     10_000_000,
			MaxAlphaIssuance:         21_000_000_000_000_000,
			EmissionMaturationBlocks: 50_400,
			EmaPriceHalvingBlocks:    201_600,
			TaoWeightE9:              180_000_000,
		},
	}
}

// Check() validates the full parameter set
func (p *Params) Check() lib.ErrorI {
	if p == nil || p.Subnet == nil {
		return ErrEmptySubnetParams()
	}
	return p.Subnet.Check()
}

// Check() validates the subnet parameter space
func (p *SubnetParams) Check() lib.ErrorI {
	if p.MinNetworkLockCost == 0 || p.MinNetworkLockCost > p.MaxNetworkLockCost {
		return ErrInvalidParam(ParamMinNetworkLockCost)
	}
	if p.LockReductionInterval == 0 {
		return ErrInvalidParam(ParamLockReductionInterval)
	}
	if p.MinimumPoolLiquidity == 0 {
		return ErrInvalidParam(ParamMinimumPoolLiquidity)
	}
	if p.MaxAlphaIssuance == 0 {
		return ErrInvalidParam(ParamMaxAlphaIssuance)
	}
	if p.EmaPriceHalvingBlocks == 0 {
		return ErrInvalidParam(ParamEmaPriceHalvingBlocks)
	}
	if p.TaoWeightE9 > taoWeightDenominator {
		return ErrInvalidParam(ParamTaoWeightE9)
	}
	return nil
}

// SetUint64() updates a single subnet param by name
func (p *SubnetParams) SetUint64(name string, value uint64) lib.ErrorI {
	switch name {
	case ParamMinNetworkLockCost:
		p.MinNetworkLockCost = value
	case ParamMaxNetworkLockCost:
		p.MaxNetworkLockCost = value
	case ParamLockReductionInterval:
		p.LockReductionInterval = value
	case ParamNetworkRateLimit:
		p.NetworkRateLimit = value
	case ParamMinimumPoolLiquidity:
		p.MinimumPoolLiquidity = value
	case ParamMaxAlphaIssuance:
		p.MaxAlphaIssuance = value
	case ParamEmissionMaturationBlocks:
		p.EmissionMaturationBlocks = value
	case ParamEmaPriceHalvingBlocks:
		p.EmaPriceHalvingBlocks = value
	case ParamTaoWeightE9:
		p.TaoWeightE9 = value
	default:
		return ErrUnknownParam(name)
	}
	return p.Check()
}

// GetParamsSubnet() returns the subnet param space from state
func (s *StateMachine) GetParamsSubnet() (*SubnetParams, lib.ErrorI) {
	params := new(SubnetParams)
	bz, err := s.Get(KeyForParams(ParamSpaceSubnet))
	if err != nil {
		return nil, err
	}
	if bz == nil {
		return nil, ErrEmptySubnetParams()
	}
	if err = lib.Unmarshal(bz, params); err != nil {
		return nil, err
	}
	return params, nil
}

// SetParamsSubnet() persists the subnet param space
func (s *StateMachine) SetParamsSubnet(params *SubnetParams) lib.ErrorI {
	if err := params.Check(); err != nil {
		return err
	}
	return s.SetObject(KeyForParams(ParamSpaceSubnet), params)
}

// SetParams() persists the full parameter set at genesis
func (s *StateMachine) SetParams(params *Params) lib.ErrorI {
	if err := params.Check(); err != nil {
		return err
	}
	return s.SetParamsSubnet(params.Subnet)
}

// GetParams() returns the full parameter set from state
func (s *StateMachine) GetParams() (*Params, lib.ErrorI) {
	subnet, err := s.GetParamsSubnet()
	if err != nil {
		return nil, err
	}
	return &Params{Subnet: subnet}, nil
}

// UpdateParam() updates a single param by space and name
func (s *StateMachine) UpdateParam(space, name string, value uint64) lib.ErrorI {
	switch space {
	case ParamSpaceSubnet:
		params, err := s.GetParamsSubnet()
		if err != nil {
			return err
		}
		if err = params.SetUint64(name, value); err != nil {
			return err
		}
		return s.SetParamsSubnet(params)
	default:
		return ErrUnknownParamSpace(space)
	}
}

// DefaultSubnetHyperParams() returns the hyperparameter record written for a new subnet
func DefaultSubnetHyperParams() *SubnetHyperParams {
	return &SubnetHyperParams{
		Tempo:                          360,
		MaxAllowedUids:                 256,
		MaxAllowedValidators:           64,
		MinAllowedWeights:              1,
		MaxWeightLimit:                 math.MaxUint16,
		AdjustmentInterval:             360,
		TargetRegistrationsPerInterval: 1,
		AdjustmentAlpha:                17_893_341_751_498_265_066,
		ImmunityPeriod:                 5_000,
		MinDifficulty:                  math.MaxUint64,
		MaxDifficulty:                  math.MaxUint64,
		RegistrationAllowed:            true,
	}
}
