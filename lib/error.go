package lib

import (
	"fmt"
	"math"
)

/* This file implements the structured error type shared by every module in the repository */

// ErrorI is the error type that crosses every package boundary in this codebase
type ErrorI interface {
	Code() ErrorCode     // Returns the error code
	Module() ErrorModule // Returns the error module
	error                // Implements the built-in error interface
}

var _ ErrorI = &Error{} // Ensures *Error implements ErrorI

type ErrorCode uint32 // Defines a type for error codes

type ErrorModule string // Defines a type for error modules

// Error is the concrete implementation of ErrorI
type Error struct {
	ECode   ErrorCode   `json:"code"`   // Error code
	EModule ErrorModule `json:"module"` // Error module
	Msg     string      `json:"msg"`    // Error message
}

// NewError() constructs a new Error instance
func NewError(code ErrorCode, module ErrorModule, msg string) *Error {
	return &Error{ECode: code, EModule: module, Msg: msg}
}

// Code() returns the associated error code
func (p *Error) Code() ErrorCode { return p.ECode }

// Module() returns the module field
func (p *Error) Module() ErrorModule { return p.EModule }

// String() calls Error()
func (p *Error) String() string { return p.Error() }

// Error() returns a formatted string including module, code, and message
func (p *Error) Error() string {
	return fmt.Sprintf("\nModule:  %s\nCode:    %d\nMessage: %s", p.EModule, p.ECode, p.Msg)
}

const (
	NoCode ErrorCode = math.MaxUint32

	// Main Module
	MainModule ErrorModule = "main"

	// Main Module Error Codes
	CodeInvalidAddress ErrorCode = 1
	CodeJSONMarshal    ErrorCode = 2
	CodeJSONUnmarshal  ErrorCode = 3
	CodeUnmarshal      ErrorCode = 4
	CodeMarshal        ErrorCode = 5
	CodeStringToBytes  ErrorCode = 6
	CodeWriteFile      ErrorCode = 7
	CodeReadFile       ErrorCode = 8
	CodeInvalidArgument ErrorCode = 9

	// State Machine Module
	StateMachineModule ErrorModule = "state_machine"

	// State Machine Module Error Codes
	CodeReadGenesisFile        ErrorCode = 1
	CodeUnmarshalGenesis       ErrorCode = 2
	CodeAddressEmpty           ErrorCode = 3
	CodeAddressSize            ErrorCode = 4
	CodeInvalidAmount          ErrorCode = 5
	CodeInsufficientFunds      ErrorCode = 6
	CodeInsufficientSupply     ErrorCode = 7
	CodeUnknownMsg             ErrorCode = 8
	CodeUnknownParam           ErrorCode = 9
	CodeUnknownParamSpace      ErrorCode = 10
	CodeEmptySubnetParams      ErrorCode = 11
	CodeInvalidParam           ErrorCode = 12
	CodeWrongStoreType         ErrorCode = 13
	CodeInvalidDBKey           ErrorCode = 14
	CodeSubnetNotExists        ErrorCode = 15
	CodeMechanismNotSupported  ErrorCode = 16
	CodeNetworkRateLimit       ErrorCode = 17
	CodeNonAssociatedHotkey    ErrorCode = 18
	CodeBalanceWithdrawal      ErrorCode = 19
	CodeInvalidSubnetIdentity  ErrorCode = 20
	CodeNotSubnetOwner         ErrorCode = 21
	CodeFirstEmissionSet       ErrorCode = 22
	CodeStartCallTooEarly      ErrorCode = 23
	CodeInvalidLiquidityPool   ErrorCode = 24
	CodeMaxAlphaIssuance       ErrorCode = 25
	CodeNetuidSpaceExhausted   ErrorCode = 26
	CodeInvalidNetuid          ErrorCode = 27
	CodeInvalidGenesisState    ErrorCode = 28
	CodeInvalidHotkey          ErrorCode = 29

	// Store Module
	StoreModule ErrorModule = "store"

	// Store Module Error Codes
	CodeOpenDB      ErrorCode = 1
	CodeCloseDB     ErrorCode = 2
	CodeStoreGet    ErrorCode = 3
	CodeStoreSet    ErrorCode = 4
	CodeStoreDelete ErrorCode = 5
	CodeStoreCommit ErrorCode = 6

	// Precompile Module
	PrecompileModule ErrorModule = "precompile"

	// Precompile Module Error Codes
	CodeInvalidInput    ErrorCode = 1
	CodeUnknownSelector ErrorCode = 2
)

func ErrUnmarshal(err error) ErrorI {
	return NewError(CodeUnmarshal, MainModule, fmt.Sprintf("unmarshal() failed with err: %s", err.Error()))
}

func ErrMarshal(err error) ErrorI {
	return NewError(CodeMarshal, MainModule, fmt.Sprintf("marshal() failed with err: %s", err.Error()))
}

func ErrJSONMarshal(err error) ErrorI {
	return NewError(CodeJSONMarshal, MainModule, fmt.Sprintf("jsonMarshal() failed with err: %s", err.Error()))
}

func ErrJSONUnmarshal(err error) ErrorI {
	return NewError(CodeJSONUnmarshal, MainModule, fmt.Sprintf("jsonUnmarshal() failed with err: %s", err.Error()))
}

func ErrStringToBytes(err error) ErrorI {
	return NewError(CodeStringToBytes, MainModule, fmt.Sprintf("stringToBytes() failed with err: %s", err.Error()))
}

func ErrReadFile(err error) ErrorI {
	return NewError(CodeReadFile, MainModule, fmt.Sprintf("os.ReadFile() failed with err: %s", err.Error()))
}

func ErrWriteFile(err error) ErrorI {
	return NewError(CodeWriteFile, MainModule, fmt.Sprintf("os.WriteFile() failed with err: %s", err.Error()))
}

func ErrInvalidArgument() ErrorI {
	return NewError(CodeInvalidArgument, MainModule, "the argument is invalid")
}
