package precompile

import (
	"fmt"

	"github.com/subchain-network/subchain/lib"
)

// This file defines error objects for the precompile module

func ErrInvalidInput(msg string) lib.ErrorI {
	return lib.NewError(lib.CodeInvalidInput, lib.PrecompileModule, fmt.Sprintf("invalid precompile input: %s", msg))
}

func ErrUnknownSelector(selector []byte) lib.ErrorI {
	return lib.NewError(lib.CodeUnknownSelector, lib.PrecompileModule, fmt.Sprintf("unknown precompile selector: %x", selector))
}
