package fsm

import (
	"math/big"

	"github.com/subchain-network/subchain/lib"
)

/*
	This file implements the per-subnet liquidity pool: a TAO / alpha constant-product pair
	seeded at registration.

	The simulation functions and the executing swap functions share one formula
	(computeSwapOutput), so a simulated quote and the real execution can never diverge.
	All arithmetic runs through big.Int intermediates; a trade the math cannot represent
	yields "no result" rather than a panic or a wrapped integer.
*/

// GetSubnetTAO() returns the pool's TAO reserve
func (s *StateMachine) GetSubnetTAO(netuid uint16) (uint64, lib.ErrorI) {
	return s.GetUint64(KeyForSubnetTAO(netuid))
}

// GetSubnetAlphaIn() returns the pool's alpha reserve
func (s *StateMachine) GetSubnetAlphaIn(netuid uint16) (uint64, lib.ErrorI) {
	return s.GetUint64(KeyForSubnetAlphaIn(netuid))
}

// GetSubnetAlphaOut() returns the alpha issued out of the pool and still outstanding
func (s *StateMachine) GetSubnetAlphaOut(netuid uint16) (uint64, lib.ErrorI) {
	return s.GetUint64(KeyForSubnetAlphaOut(netuid))
}

// GetAlphaIssuance() returns the total alpha attributable to a subnet's pool
func (s *StateMachine) GetAlphaIssuance(netuid uint16) (uint64, lib.ErrorI) {
	alphaIn, err := s.GetSubnetAlphaIn(netuid)
	if err != nil {
		return 0, err
	}
	alphaOut, err := s.GetSubnetAlphaOut(netuid)
	if err != nil {
		return 0, err
	}
	return lib.SafeAdd(alphaIn, alphaOut), nil
}

// bootstrapPool() seeds a fresh pool from a registration lock: the governed minimum is
// retained at equal TAO and alpha reserves (price exactly 1.0) and the excess is burned
func (s *StateMachine) bootstrapPool(netuid uint16, lock uint64, params *SubnetParams) (seeded, burned uint64, err lib.ErrorI) {
	seeded = lock
	if seeded > params.MinNetworkLockCost {
		seeded = params.MinNetworkLockCost
	}
	burned = lock - seeded
	if err = s.SetUint64(KeyForSubnetTAO(netuid), seeded); err != nil {
		return
	}
	if err = s.SetUint64(KeyForSubnetAlphaIn(netuid), seeded); err != nil {
		return
	}
	if err = s.SetUint64(KeyForSubnetAlphaOut(netuid), 0); err != nil {
		return
	}
	// the moving average starts exactly at the instantaneous price
	if err = s.SetObject(KeyForMovingPrice(netuid), &MovingPrice{Raw: lib.OneFixed().Bytes(), UpdatedAt: s.height}); err != nil {
		return
	}
	if err = s.BurnTokens(burned); err != nil {
		return
	}
	return
}

// GetAlphaPrice() returns the instantaneous pool price, TAO per alpha; an empty pool
// reads as the zero sentinel
func (s *StateMachine) GetAlphaPrice(netuid uint16) (lib.Fixed, lib.ErrorI) {
	tao, err := s.GetSubnetTAO(netuid)
	if err != nil {
		return lib.ZeroFixed(), err
	}
	alphaIn, err := s.GetSubnetAlphaIn(netuid)
	if err != nil {
		return lib.ZeroFixed(), err
	}
	return lib.NewFixedFromRatio(tao, alphaIn), nil
}

// GetMovingAlphaPrice() returns the smoothed pool price, folding the elapsed blocks since
// the last persisted update into the average without writing state
func (s *StateMachine) GetMovingAlphaPrice(netuid uint16) (lib.Fixed, lib.ErrorI) {
	record, err := s.getMovingPriceRecord(netuid)
	if err != nil {
		return lib.ZeroFixed(), err
	}
	if record == nil {
		return lib.ZeroFixed(), nil
	}
	price, err := s.GetAlphaPrice(netuid)
	if err != nil {
		return lib.ZeroFixed(), err
	}
	params, err := s.GetParamsSubnet()
	if err != nil {
		return lib.ZeroFixed(), err
	}
	elapsed := lib.SafeSub(s.height, record.UpdatedAt)
	return foldMovingPrice(record.Price(), price, elapsed, params.EmaPriceHalvingBlocks), nil
}

// UpdateMovingPrice() folds the moving average forward and persists it at the current height
func (s *StateMachine) UpdateMovingPrice(netuid uint16) lib.ErrorI {
	folded, err := s.GetMovingAlphaPrice(netuid)
	if err != nil {
		return err
	}
	return s.SetObject(KeyForMovingPrice(netuid), &MovingPrice{Raw: folded.Bytes(), UpdatedAt: s.height})
}

// getMovingPriceRecord() reads the persisted average; nil when the pool does not exist
func (s *StateMachine) getMovingPriceRecord(netuid uint16) (*MovingPrice, lib.ErrorI) {
	bz, err := s.Get(KeyForMovingPrice(netuid))
	if err != nil {
		return nil, err
	}
	if bz == nil {
		return nil, nil
	}
	record := new(MovingPrice)
	if err = lib.Unmarshal(bz, record); err != nil {
		return nil, err
	}
	return record, nil
}

// foldMovingPrice() moves the average toward the instantaneous price by the fraction
// elapsed / (elapsed + halving); converges monotonically and never overshoots
func foldMovingPrice(moving, price lib.Fixed, elapsed, halvingBlocks uint64) lib.Fixed {
	if elapsed == 0 {
		return moving
	}
	den := lib.SafeAdd(elapsed, halvingBlocks)
	if price.Cmp(moving) >= 0 {
		return moving.Add(price.Sub(moving).MulDivUint64(elapsed, den))
	}
	return moving.Sub(moving.Sub(price).MulDivUint64(elapsed, den))
}

// GetTaoWeight() returns the global factor weighting TAO stake against alpha stake
func (s *StateMachine) GetTaoWeight() (lib.Fixed, lib.ErrorI) {
	params, err := s.GetParamsSubnet()
	if err != nil {
		return lib.ZeroFixed(), err
	}
	return lib.NewFixedFromRatio(params.TaoWeightE9, taoWeightDenominator), nil
}

// computeSwapOutput() prices a trade against constant-product reserves. The post-trade
// output reserve is rounded up, so a round trip can never extract more than was put in.
// The boolean is false when the reserves are empty or the math leaves uint64 range.
func computeSwapOutput(reserveIn, reserveOut, amountIn uint64) (uint64, bool) {
	if reserveIn == 0 || reserveOut == 0 {
		return 0, false
	}
	newReserveIn := new(big.Int).Add(new(big.Int).SetUint64(reserveIn), new(big.Int).SetUint64(amountIn))
	if !newReserveIn.IsUint64() {
		return 0, false
	}
	k := new(big.Int).Mul(new(big.Int).SetUint64(reserveIn), new(big.Int).SetUint64(reserveOut))
	newReserveOut, remainder := new(big.Int).QuoRem(k, newReserveIn, new(big.Int))
	if remainder.Sign() != 0 {
		newReserveOut.Add(newReserveOut, big.NewInt(1))
	}
	if !newReserveOut.IsUint64() || newReserveOut.Uint64() > reserveOut {
		return 0, false
	}
	return reserveOut - newReserveOut.Uint64(), true
}

// SimSwapTaoForAlpha() is the pure projection of a TAO for alpha swap; no state is written
func (s *StateMachine) SimSwapTaoForAlpha(netuid uint16, taoIn uint64) (uint64, bool, lib.ErrorI) {
	exists, err := s.SubnetExists(netuid)
	if err != nil || !exists {
		return 0, false, err
	}
	tao, err := s.GetSubnetTAO(netuid)
	if err != nil {
		return 0, false, err
	}
	alphaIn, err := s.GetSubnetAlphaIn(netuid)
	if err != nil {
		return 0, false, err
	}
	out, ok := computeSwapOutput(tao, alphaIn, taoIn)
	if !ok {
		return 0, false, nil
	}
	// the issuance cap bounds how much alpha may leave the pool
	params, err := s.GetParamsSubnet()
	if err != nil {
		return 0, false, err
	}
	issuance, err := s.GetAlphaIssuance(netuid)
	if err != nil {
		return 0, false, err
	}
	if lib.SafeAdd(issuance, out) > params.MaxAlphaIssuance {
		return 0, false, nil
	}
	return out, true, nil
}

// SimSwapAlphaForTao() is the pure projection of an alpha for TAO swap; no state is written
func (s *StateMachine) SimSwapAlphaForTao(netuid uint16, alphaIn uint64) (uint64, bool, lib.ErrorI) {
	exists, err := s.SubnetExists(netuid)
	if err != nil || !exists {
		return 0, false, err
	}
	tao, err := s.GetSubnetTAO(netuid)
	if err != nil {
		return 0, false, err
	}
	alphaReserve, err := s.GetSubnetAlphaIn(netuid)
	if err != nil {
		return 0, false, err
	}
	out, ok := computeSwapOutput(alphaReserve, tao, alphaIn)
	if !ok {
		return 0, false, nil
	}
	// the pool may never be drained below the protocol liquidity floor
	params, err := s.GetParamsSubnet()
	if err != nil {
		return 0, false, err
	}
	if tao-out < params.MinimumPoolLiquidity {
		return 0, false, nil
	}
	return out, true, nil
}

// SwapTaoForAlpha() executes a TAO for alpha swap against the pool, using the exact
// quote SimSwapTaoForAlpha() would have produced under the same reserves
func (s *StateMachine) SwapTaoForAlpha(netuid uint16, taoIn uint64) (uint64, lib.ErrorI) {
	out, ok, err := s.SimSwapTaoForAlpha(netuid, taoIn)
	if err != nil {
		return 0, err
	}
	if !ok {
		exists, e := s.SubnetExists(netuid)
		if e != nil {
			return 0, e
		}
		if !exists {
			return 0, ErrSubnetNotExists(netuid)
		}
		tao, e := s.GetSubnetTAO(netuid)
		if e != nil {
			return 0, e
		}
		alphaReserve, e := s.GetSubnetAlphaIn(netuid)
		if e != nil {
			return 0, e
		}
		// a priceable trade was refused, so the issuance cap was the reason
		if _, priced := computeSwapOutput(tao, alphaReserve, taoIn); priced {
			return 0, ErrMaxAlphaIssuance(netuid)
		}
		return 0, ErrInvalidLiquidityPool(netuid)
	}
	tao, err := s.GetSubnetTAO(netuid)
	if err != nil {
		return 0, err
	}
	alphaIn, err := s.GetSubnetAlphaIn(netuid)
	if err != nil {
		return 0, err
	}
	alphaOut, err := s.GetSubnetAlphaOut(netuid)
	if err != nil {
		return 0, err
	}
	if err = s.SetUint64(KeyForSubnetTAO(netuid), lib.SafeAdd(tao, taoIn)); err != nil {
		return 0, err
	}
	if err = s.SetUint64(KeyForSubnetAlphaIn(netuid), alphaIn-out); err != nil {
		return 0, err
	}
	if err = s.SetUint64(KeyForSubnetAlphaOut(netuid), lib.SafeAdd(alphaOut, out)); err != nil {
		return 0, err
	}
	if err = s.AddSubnetVolume(netuid, taoIn); err != nil {
		return 0, err
	}
	if err = s.UpdateMovingPrice(netuid); err != nil {
		return 0, err
	}
	if err = s.EmitEvent(EventSwapExecuted, &EventSwapData{Netuid: netuid, TaoIn: taoIn, AlphaOut: out}); err != nil {
		return 0, err
	}
	return out, nil
}

// SwapAlphaForTao() executes an alpha for TAO swap against the pool, using the exact
// quote SimSwapAlphaForTao() would have produced under the same reserves
func (s *StateMachine) SwapAlphaForTao(netuid uint16, alphaIn uint64) (uint64, lib.ErrorI) {
	out, ok, err := s.SimSwapAlphaForTao(netuid, alphaIn)
	if err != nil {
		return 0, err
	}
	if !ok {
		exists, e := s.SubnetExists(netuid)
		if e != nil {
			return 0, e
		}
		if !exists {
			return 0, ErrSubnetNotExists(netuid)
		}
		return 0, ErrInvalidLiquidityPool(netuid)
	}
	tao, err := s.GetSubnetTAO(netuid)
	if err != nil {
		return 0, err
	}
	alphaReserve, err := s.GetSubnetAlphaIn(netuid)
	if err != nil {
		return 0, err
	}
	alphaOut, err := s.GetSubnetAlphaOut(netuid)
	if err != nil {
		return 0, err
	}
	if err = s.SetUint64(KeyForSubnetTAO(netuid), tao-out); err != nil {
		return 0, err
	}
	if err = s.SetUint64(KeyForSubnetAlphaIn(netuid), lib.SafeAdd(alphaReserve, alphaIn)); err != nil {
		return 0, err
	}
	if err = s.SetUint64(KeyForSubnetAlphaOut(netuid), lib.SafeSub(alphaOut, alphaIn)); err != nil {
		return 0, err
	}
	if err = s.AddSubnetVolume(netuid, out); err != nil {
		return 0, err
	}
	if err = s.UpdateMovingPrice(netuid); err != nil {
		return 0, err
	}
	if err = s.EmitEvent(EventSwapExecuted, &EventSwapData{Netuid: netuid, AlphaIn: alphaIn, TaoOut: out}); err != nil {
		return 0, err
	}
	return out, nil
}

// GetSubnetVolume() returns the cumulative TAO-denominated swap volume of a pool
func (s *StateMachine) GetSubnetVolume(netuid uint16) (*big.Int, lib.ErrorI) {
	bz, err := s.Get(KeyForSubnetVolume(netuid))
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(bz), nil
}

// AddSubnetVolume() grows the cumulative swap volume; the counter is wider than uint64
// so it never saturates over the life of a pool
func (s *StateMachine) AddSubnetVolume(netuid uint16, amount uint64) lib.ErrorI {
	volume, err := s.GetSubnetVolume(netuid)
	if err != nil {
		return err
	}
	volume.Add(volume, new(big.Int).SetUint64(amount))
	return s.Set(KeyForSubnetVolume(netuid), volume.Bytes())
}
