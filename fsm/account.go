package fsm

import (
	"github.com/subchain-network/subchain/lib"
	"github.com/subchain-network/subchain/lib/crypto"
)

/*
	This file implements the token ledger: per-address balances plus the chain-wide supply
	record. Registration locks are withdrawn from here; burned excess leaves circulation
	through the supply record and is never creditable again.
*/

// GetAccount() returns the ledger record for an address; absent addresses read as zero balance
func (s *StateMachine) GetAccount(address crypto.AddressI) (*Account, lib.ErrorI) {
	account := &Account{Address: address.Bytes(), Amount: 0}
	bz, err := s.Get(KeyForAccount(address.Bytes()))
	if err != nil {
		return nil, err
	}
	if bz == nil {
		return account, nil
	}
	if err = lib.Unmarshal(bz, account); err != nil {
		return nil, err
	}
	return account, nil
}

// SetAccount() persists a ledger record, deleting the key when the balance reaches zero
func (s *StateMachine) SetAccount(account *Account) lib.ErrorI {
	if account.Amount == 0 {
		return s.Delete(KeyForAccount(account.Address))
	}
	return s.SetObject(KeyForAccount(account.Address), account)
}

// GetAccounts() returns every ledger record in lexicographical address order
func (s *StateMachine) GetAccounts() (result []*Account, err lib.ErrorI) {
	err = s.IterateAndExecute(AccountPrefix(), func(_, value []byte) lib.ErrorI {
		account := new(Account)
		if e := lib.Unmarshal(value, account); e != nil {
			return e
		}
		result = append(result, account)
		return nil
	})
	return
}

// AccountAdd() credits an address
func (s *StateMachine) AccountAdd(address crypto.AddressI, amount uint64) lib.ErrorI {
	account, err := s.GetAccount(address)
	if err != nil {
		return err
	}
	account.Amount = lib.SafeAdd(account.Amount, amount)
	return s.SetAccount(account)
}

// AccountSub() debits an address, failing when the balance is below the amount
func (s *StateMachine) AccountSub(address crypto.AddressI, amount uint64) lib.ErrorI {
	account, err := s.GetAccount(address)
	if err != nil {
		return err
	}
	if account.Amount < amount {
		return ErrInsufficientFunds()
	}
	account.Amount -= amount
	return s.SetAccount(account)
}

// AccountWithdraw() debits an address for a registration lock, distinguishing a malformed
// ledger target from an honest shortage of funds
func (s *StateMachine) AccountWithdraw(address crypto.AddressI, amount uint64) lib.ErrorI {
	if err := checkAddress(address); err != nil {
		return ErrBalanceWithdrawal(err)
	}
	return s.AccountSub(address, amount)
}

// checkAddress() sanity validates a ledger address
func checkAddress(address crypto.AddressI) lib.ErrorI {
	if address == nil || len(address.Bytes()) == 0 {
		return ErrAddressEmpty()
	}
	if len(address.Bytes()) != crypto.AddressSize {
		return ErrAddressSize()
	}
	return nil
}

// SUPPLY LOGIC BELOW

// GetSupply() returns the chain-wide token supply record
func (s *StateMachine) GetSupply() (*Supply, lib.ErrorI) {
	supply := new(Supply)
	if err := s.GetObject(KeyForSupply(), supply); err != nil {
		return nil, err
	}
	return supply, nil
}

// SetSupply() persists the chain-wide token supply record
func (s *StateMachine) SetSupply(supply *Supply) lib.ErrorI {
	return s.SetObject(KeyForSupply(), supply)
}

// MintToAccount() credits an address and grows the circulating total; genesis only
func (s *StateMachine) MintToAccount(address crypto.AddressI, amount uint64) lib.ErrorI {
	supply, err := s.GetSupply()
	if err != nil {
		return err
	}
	supply.Total = lib.SafeAdd(supply.Total, amount)
	if err = s.SetSupply(supply); err != nil {
		return err
	}
	return s.AccountAdd(address, amount)
}

// BurnTokens() permanently removes tokens from circulation
func (s *StateMachine) BurnTokens(amount uint64) lib.ErrorI {
	if amount == 0 {
		return nil
	}
	supply, err := s.GetSupply()
	if err != nil {
		return err
	}
	if supply.Total < amount {
		return ErrInsufficientSupply()
	}
	supply.Total -= amount
	supply.Burned = lib.SafeAdd(supply.Burned, amount)
	return s.SetSupply(supply)
}
