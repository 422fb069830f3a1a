package fsm

import (
	"os"
	"path/filepath"

	"github.com/subchain-network/subchain/lib"
	"github.com/subchain-network/subchain/lib/crypto"
)

/*
	This file implements genesis: the construction of the initial state from a JSON file
	and the export of a running state back into the same shape.

	Genesis creates the permanent root subnet under netuid 0. The root subnet is not
	dynamic, has no liquidity pool, and is never allocated by registration.
*/

// GenesisState is the JSON shape of the chain's initial (or exported) state
type GenesisState struct {
	Accounts []*Account `json:"accounts"` // the initial ledger balances
	Params   *Params    `json:"params"`   // the governance parameter set
	Supply   *Supply    `json:"supply"`   // populated on export only; derived at genesis
}

// NewFromGenesisFile() initializes the state from the genesis.json in the data directory
func (s *StateMachine) NewFromGenesisFile() lib.ErrorI {
	bz, err := os.ReadFile(filepath.Join(s.Config.DataDirPath, lib.GenesisFilePath))
	if err != nil {
		return ErrReadGenesisFile(err)
	}
	genesis := new(GenesisState)
	if e := lib.UnmarshalJSON(bz, genesis); e != nil {
		return ErrUnmarshalGenesis(e)
	}
	s.log.Infof("importing genesis file %s", crypto.HashString(bz))
	return s.NewStateFromGenesis(genesis)
}

// NewStateFromGenesis() validates and applies a genesis object to an empty state
func (s *StateMachine) NewStateFromGenesis(genesis *GenesisState) lib.ErrorI {
	if err := s.ValidateGenesisState(genesis); err != nil {
		return err
	}
	if err := s.SetParams(genesis.Params); err != nil {
		return err
	}
	for _, account := range genesis.Accounts {
		if err := s.MintToAccount(crypto.NewAddressFromBytes(account.Address), account.Amount); err != nil {
			return err
		}
	}
	// the permanent root subnet; mechanism zero, no pool
	if err := s.SetSubnet(&Subnet{
		Netuid:      RootNetuid,
		TokenSymbol: rootTokenSymbol,
	}); err != nil {
		return err
	}
	if err := s.setNumSubnets(1); err != nil {
		return err
	}
	s.log.Infof("initialized genesis state with %d accounts", len(genesis.Accounts))
	return nil
}

// ValidateGenesisState() sanity checks a genesis object before it is applied
func (s *StateMachine) ValidateGenesisState(genesis *GenesisState) lib.ErrorI {
	if genesis == nil {
		return ErrInvalidGenesisState("genesis is empty")
	}
	if err := genesis.Params.Check(); err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(genesis.Accounts))
	for _, account := range genesis.Accounts {
		if err := checkAddress(crypto.NewAddressFromBytes(account.Address)); err != nil {
			return err
		}
		if account.Amount == 0 {
			return ErrInvalidAmount()
		}
		if _, found := seen[account.Address.String()]; found {
			return ErrInvalidGenesisState("duplicate genesis account " + account.Address.String())
		}
		seen[account.Address.String()] = struct{}{}
	}
	return nil
}

// ExportState() projects the current state back into the genesis shape
func (s *StateMachine) ExportState() (*GenesisState, lib.ErrorI) {
	accounts, err := s.GetAccounts()
	if err != nil {
		return nil, err
	}
	params, err := s.GetParams()
	if err != nil {
		return nil, err
	}
	supply, err := s.GetSupply()
	if err != nil {
		return nil, err
	}
	return &GenesisState{Accounts: accounts, Params: params, Supply: supply}, nil
}
