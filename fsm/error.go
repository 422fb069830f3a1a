package fsm

import (
	"fmt"

	"github.com/subchain-network/subchain/lib"
)

// This file defines error objects for the state machine module

func ErrReadGenesisFile(err error) lib.ErrorI {
	return lib.NewError(lib.CodeReadGenesisFile, lib.StateMachineModule, fmt.Sprintf("read genesis file failed with err: %s", err.Error()))
}

func ErrUnmarshalGenesis(err error) lib.ErrorI {
	return lib.NewError(lib.CodeUnmarshalGenesis, lib.StateMachineModule, fmt.Sprintf("unmarshal genesis failed with err: %s", err.Error()))
}

func ErrInvalidGenesisState(msg string) lib.ErrorI {
	return lib.NewError(lib.CodeInvalidGenesisState, lib.StateMachineModule, fmt.Sprintf("invalid genesis state: %s", msg))
}

func ErrAddressEmpty() lib.ErrorI {
	return lib.NewError(lib.CodeAddressEmpty, lib.StateMachineModule, "address is empty")
}

func ErrAddressSize() lib.ErrorI {
	return lib.NewError(lib.CodeAddressSize, lib.StateMachineModule, "address size is invalid")
}

func ErrInvalidAmount() lib.ErrorI {
	return lib.NewError(lib.CodeInvalidAmount, lib.StateMachineModule, "amount is invalid")
}

func ErrInsufficientFunds() lib.ErrorI {
	return lib.NewError(lib.CodeInsufficientFunds, lib.StateMachineModule, "insufficient funds")
}

func ErrInsufficientSupply() lib.ErrorI {
	return lib.NewError(lib.CodeInsufficientSupply, lib.StateMachineModule, "insufficient supply")
}

func ErrUnknownMessage(x lib.MessageI) lib.ErrorI {
	return lib.NewError(lib.CodeUnknownMsg, lib.StateMachineModule, fmt.Sprintf("message %T is unknown", x))
}

func ErrUnknownParam(name string) lib.ErrorI {
	return lib.NewError(lib.CodeUnknownParam, lib.StateMachineModule, fmt.Sprintf("param %s is unknown", name))
}

func ErrUnknownParamSpace(space string) lib.ErrorI {
	return lib.NewError(lib.CodeUnknownParamSpace, lib.StateMachineModule, fmt.Sprintf("param space %s is unknown", space))
}

func ErrEmptySubnetParams() lib.ErrorI {
	return lib.NewError(lib.CodeEmptySubnetParams, lib.StateMachineModule, "subnet params are empty")
}

func ErrInvalidParam(name string) lib.ErrorI {
	return lib.NewError(lib.CodeInvalidParam, lib.StateMachineModule, fmt.Sprintf("param %s is invalid", name))
}

func ErrWrongStoreType() lib.ErrorI {
	return lib.NewError(lib.CodeWrongStoreType, lib.StateMachineModule, "wrong store type")
}

func ErrInvalidDBKey(key []byte) lib.ErrorI {
	return lib.NewError(lib.CodeInvalidDBKey, lib.StateMachineModule, fmt.Sprintf("invalid db key: %v", key))
}

func ErrSubnetNotExists(netuid uint16) lib.ErrorI {
	return lib.NewError(lib.CodeSubnetNotExists, lib.StateMachineModule, fmt.Sprintf("subnet %d does not exist", netuid))
}

func ErrMechanismNotSupported(mechanism uint16) lib.ErrorI {
	return lib.NewError(lib.CodeMechanismNotSupported, lib.StateMachineModule, fmt.Sprintf("mechanism %d is not supported", mechanism))
}

func ErrNetworkRateLimit(lastLockBlock, limit uint64) lib.ErrorI {
	return lib.NewError(lib.CodeNetworkRateLimit, lib.StateMachineModule,
		fmt.Sprintf("network registered too recently: last lock at block %d, limit %d blocks", lastLockBlock, limit))
}

func ErrNonAssociatedHotkey() lib.ErrorI {
	return lib.NewError(lib.CodeNonAssociatedHotkey, lib.StateMachineModule, "hotkey is controlled by a different coldkey")
}

func ErrBalanceWithdrawal(err error) lib.ErrorI {
	return lib.NewError(lib.CodeBalanceWithdrawal, lib.StateMachineModule, fmt.Sprintf("balance withdrawal failed with err: %s", err.Error()))
}

func ErrInvalidSubnetIdentity(msg string) lib.ErrorI {
	return lib.NewError(lib.CodeInvalidSubnetIdentity, lib.StateMachineModule, fmt.Sprintf("invalid subnet identity: %s", msg))
}

func ErrNotSubnetOwner() lib.ErrorI {
	return lib.NewError(lib.CodeNotSubnetOwner, lib.StateMachineModule, "caller is not the subnet owner")
}

func ErrFirstEmissionAlreadySet(netuid uint16) lib.ErrorI {
	return lib.NewError(lib.CodeFirstEmissionSet, lib.StateMachineModule, fmt.Sprintf("first emission block already set for subnet %d", netuid))
}

func ErrStartCallTooEarly(blocksRemaining uint64) lib.ErrorI {
	return lib.NewError(lib.CodeStartCallTooEarly, lib.StateMachineModule,
		fmt.Sprintf("start call attempted before maturation: %d blocks remaining", blocksRemaining))
}

func ErrInvalidLiquidityPool(netuid uint16) lib.ErrorI {
	return lib.NewError(lib.CodeInvalidLiquidityPool, lib.StateMachineModule, fmt.Sprintf("liquidity pool for subnet %d is invalid", netuid))
}

func ErrMaxAlphaIssuance(netuid uint16) lib.ErrorI {
	return lib.NewError(lib.CodeMaxAlphaIssuance, lib.StateMachineModule, fmt.Sprintf("alpha issuance cap reached for subnet %d", netuid))
}

func ErrNetuidSpaceExhausted() lib.ErrorI {
	return lib.NewError(lib.CodeNetuidSpaceExhausted, lib.StateMachineModule, "no free netuid remains")
}

func ErrInvalidHotkey() lib.ErrorI {
	return lib.NewError(lib.CodeInvalidHotkey, lib.StateMachineModule, "hotkey is empty or oversized")
}

func ErrInvalidNetuid(netuid uint16) lib.ErrorI {
	return lib.NewError(lib.CodeInvalidNetuid, lib.StateMachineModule, fmt.Sprintf("netuid %d is invalid", netuid))
}
