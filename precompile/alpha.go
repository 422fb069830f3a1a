package precompile

import (
	"math"
	"math/big"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"github.com/subchain-network/subchain/fsm"
	"github.com/subchain-network/subchain/lib"
)

/*
	This file implements the alpha precompile: the read-only bridge exposing subnet and
	pool state to contract callers at a fixed address.

	Calls are dispatched on 4-byte keccak selectors of the solidity signatures and every
	argument and result travels as a 32-byte ABI word. The bridge owns all numeric
	conversion: fixed-point prices are truncated, never rounded, and anything wider than
	the wire type is clamped, never trapped. It can never mutate state and it never
	errors on an unknown netuid; those read as zero.
*/

const (
	// AlphaPrecompileIndex is the fixed address index the bridge is mounted at
	AlphaPrecompileIndex = 2054
	// AlphaPrecompileVersion tracks the selector surface; bump on any signature change
	AlphaPrecompileVersion = 1

	selectorSize = 4
	wordSize     = 32
)

// StateReaderI is the read-only slice of the state machine the bridge consumes
type StateReaderI interface {
	SubnetExists(netuid uint16) (bool, lib.ErrorI)
	GetSubnetMechanism(netuid uint16) (uint16, lib.ErrorI)
	GetAlphaPrice(netuid uint16) (lib.Fixed, lib.ErrorI)
	GetMovingAlphaPrice(netuid uint16) (lib.Fixed, lib.ErrorI)
	GetSubnetTAO(netuid uint16) (uint64, lib.ErrorI)
	GetSubnetAlphaIn(netuid uint16) (uint64, lib.ErrorI)
	GetSubnetAlphaOut(netuid uint16) (uint64, lib.ErrorI)
	GetAlphaIssuance(netuid uint16) (uint64, lib.ErrorI)
	GetTaoWeight() (lib.Fixed, lib.ErrorI)
	GetSubnetVolume(netuid uint16) (*big.Int, lib.ErrorI)
	SimSwapTaoForAlpha(netuid uint16, taoIn uint64) (uint64, bool, lib.ErrorI)
	SimSwapAlphaForTao(netuid uint16, alphaIn uint64) (uint64, bool, lib.ErrorI)
	GetParamsSubnet() (*fsm.SubnetParams, lib.ErrorI)
}

var _ StateReaderI = &fsm.StateMachine{}

// AlphaPrecompile dispatches selector-addressed queries against a state reader
type AlphaPrecompile struct {
	state    StateReaderI
	handlers map[[selectorSize]byte]func(args []byte) ([]byte, lib.ErrorI)
}

// NewAlphaPrecompile() builds the selector table over a state reader
func NewAlphaPrecompile(state StateReaderI) *AlphaPrecompile {
	p := &AlphaPrecompile{
		state:    state,
		handlers: make(map[[selectorSize]byte]func(args []byte) ([]byte, lib.ErrorI)),
	}
	p.register("getAlphaPrice(uint16)", p.getAlphaPrice)
	p.register("getMovingAlphaPrice(uint16)", p.getMovingAlphaPrice)
	p.register("getTaoInPool(uint16)", p.getTaoInPool)
	p.register("getAlphaInPool(uint16)", p.getAlphaInPool)
	p.register("getAlphaOutPool(uint16)", p.getAlphaOutPool)
	p.register("getAlphaIssuance(uint16)", p.getAlphaIssuance)
	p.register("getTaoWeight()", p.getTaoWeight)
	p.register("getEMAPriceHalvingBlocks(uint16)", p.getEMAPriceHalvingBlocks)
	p.register("getSubnetVolume(uint16)", p.getSubnetVolume)
	p.register("getSubnetMechanism(uint16)", p.getSubnetMechanism)
	p.register("getRootNetuid()", p.getRootNetuid)
	p.register("getMinimumPoolLiquidity()", p.getMinimumPoolLiquidity)
	p.register("simSwapTaoForAlpha(uint16,uint64)", p.simSwapTaoForAlpha)
	p.register("simSwapAlphaForTao(uint16,uint64)", p.simSwapAlphaForTao)
	return p
}

// register() maps the keccak selector of a solidity signature to its handler
func (p *AlphaPrecompile) register(signature string, handler func(args []byte) ([]byte, lib.ErrorI)) {
	p.handlers[selector(signature)] = handler
}

// Run() dispatches one encoded call and returns the ABI encoded result
func (p *AlphaPrecompile) Run(input []byte) ([]byte, lib.ErrorI) {
	if len(input) < selectorSize {
		return nil, ErrInvalidInput("input shorter than a selector")
	}
	var sel [selectorSize]byte
	copy(sel[:], input[:selectorSize])
	handler, found := p.handlers[sel]
	if !found {
		return nil, ErrUnknownSelector(sel[:])
	}
	return handler(input[selectorSize:])
}

// selector() computes the 4-byte keccak selector of a solidity signature
func selector(signature string) (sel [selectorSize]byte) {
	copy(sel[:], ethcrypto.Keccak256([]byte(signature))[:selectorSize])
	return
}

// QUERY HANDLERS BELOW

func (p *AlphaPrecompile) getAlphaPrice(args []byte) ([]byte, lib.ErrorI) {
	netuid, err := decodeNetuid(args)
	if err != nil {
		return nil, err
	}
	price, err := p.state.GetAlphaPrice(netuid)
	if err != nil {
		return nil, err
	}
	return encodeUint64(price.Uint64Truncated()), nil
}

func (p *AlphaPrecompile) getMovingAlphaPrice(args []byte) ([]byte, lib.ErrorI) {
	netuid, err := decodeNetuid(args)
	if err != nil {
		return nil, err
	}
	price, err := p.state.GetMovingAlphaPrice(netuid)
	if err != nil {
		return nil, err
	}
	return encodeUint64(price.Uint64Truncated()), nil
}

func (p *AlphaPrecompile) getTaoInPool(args []byte) ([]byte, lib.ErrorI) {
	return p.uint64Query(args, p.state.GetSubnetTAO)
}

func (p *AlphaPrecompile) getAlphaInPool(args []byte) ([]byte, lib.ErrorI) {
	return p.uint64Query(args, p.state.GetSubnetAlphaIn)
}

func (p *AlphaPrecompile) getAlphaOutPool(args []byte) ([]byte, lib.ErrorI) {
	return p.uint64Query(args, p.state.GetSubnetAlphaOut)
}

func (p *AlphaPrecompile) getAlphaIssuance(args []byte) ([]byte, lib.ErrorI) {
	return p.uint64Query(args, p.state.GetAlphaIssuance)
}

func (p *AlphaPrecompile) getTaoWeight(_ []byte) ([]byte, lib.ErrorI) {
	weight, err := p.state.GetTaoWeight()
	if err != nil {
		return nil, err
	}
	return encodeUint64(weight.Uint64Truncated()), nil
}

func (p *AlphaPrecompile) getEMAPriceHalvingBlocks(args []byte) ([]byte, lib.ErrorI) {
	if _, err := decodeNetuid(args); err != nil {
		return nil, err
	}
	params, err := p.state.GetParamsSubnet()
	if err != nil {
		return nil, err
	}
	return encodeUint64(params.EmaPriceHalvingBlocks), nil
}

func (p *AlphaPrecompile) getSubnetVolume(args []byte) ([]byte, lib.ErrorI) {
	netuid, err := decodeNetuid(args)
	if err != nil {
		return nil, err
	}
	volume, err := p.state.GetSubnetVolume(netuid)
	if err != nil {
		return nil, err
	}
	word, overflow := uint256.FromBig(volume)
	if overflow {
		// clamp rather than trap at the boundary
		word = new(uint256.Int).SetAllOne()
	}
	return word.PaddedBytes(wordSize), nil
}

func (p *AlphaPrecompile) getSubnetMechanism(args []byte) ([]byte, lib.ErrorI) {
	netuid, err := decodeNetuid(args)
	if err != nil {
		return nil, err
	}
	mechanism, err := p.state.GetSubnetMechanism(netuid)
	if err != nil {
		return nil, err
	}
	return encodeUint64(uint64(mechanism)), nil
}

func (p *AlphaPrecompile) getRootNetuid(_ []byte) ([]byte, lib.ErrorI) {
	return encodeUint64(uint64(fsm.RootNetuid)), nil
}

func (p *AlphaPrecompile) getMinimumPoolLiquidity(_ []byte) ([]byte, lib.ErrorI) {
	params, err := p.state.GetParamsSubnet()
	if err != nil {
		return nil, err
	}
	return encodeUint64(params.MinimumPoolLiquidity), nil
}

func (p *AlphaPrecompile) simSwapTaoForAlpha(args []byte) ([]byte, lib.ErrorI) {
	netuid, amount, err := decodeNetuidAmount(args)
	if err != nil {
		return nil, err
	}
	out, ok, err := p.state.SimSwapTaoForAlpha(netuid, amount)
	if err != nil {
		return nil, err
	}
	if !ok {
		return encodeUint64(0), nil
	}
	return encodeUint64(out), nil
}

func (p *AlphaPrecompile) simSwapAlphaForTao(args []byte) ([]byte, lib.ErrorI) {
	netuid, amount, err := decodeNetuidAmount(args)
	if err != nil {
		return nil, err
	}
	out, ok, err := p.state.SimSwapAlphaForTao(netuid, amount)
	if err != nil {
		return nil, err
	}
	if !ok {
		return encodeUint64(0), nil
	}
	return encodeUint64(out), nil
}

// uint64Query() runs a single netuid to uint64 accessor and encodes the result
func (p *AlphaPrecompile) uint64Query(args []byte, accessor func(uint16) (uint64, lib.ErrorI)) ([]byte, lib.ErrorI) {
	netuid, err := decodeNetuid(args)
	if err != nil {
		return nil, err
	}
	value, err := accessor(netuid)
	if err != nil {
		return nil, err
	}
	return encodeUint64(value), nil
}

// ABI WORD CODEC BELOW

// decodeNetuid() reads a uint16 from the first ABI word
func decodeNetuid(args []byte) (uint16, lib.ErrorI) {
	word, err := decodeWord(args, 0)
	if err != nil {
		return 0, err
	}
	if !word.IsUint64() || word.Uint64() > math.MaxUint16 {
		return 0, ErrInvalidInput("netuid exceeds uint16")
	}
	return uint16(word.Uint64()), nil
}

// decodeNetuidAmount() reads a uint16 and a uint64 from the first two ABI words
func decodeNetuidAmount(args []byte) (uint16, uint64, lib.ErrorI) {
	netuid, err := decodeNetuid(args)
	if err != nil {
		return 0, 0, err
	}
	word, err := decodeWord(args, 1)
	if err != nil {
		return 0, 0, err
	}
	if !word.IsUint64() {
		return 0, 0, ErrInvalidInput("amount exceeds uint64")
	}
	return netuid, word.Uint64(), nil
}

// decodeWord() reads the n-th 32-byte word of the argument area
func decodeWord(args []byte, n int) (*uint256.Int, lib.ErrorI) {
	start := n * wordSize
	if len(args) < start+wordSize {
		return nil, ErrInvalidInput("argument area too short")
	}
	return new(uint256.Int).SetBytes(args[start : start+wordSize]), nil
}

// encodeUint64() writes a value as one 32-byte ABI word
func encodeUint64(value uint64) []byte {
	return new(uint256.Int).SetUint64(value).PaddedBytes(wordSize)
}
