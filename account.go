package folio

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AccountType classifies an investment account.
type AccountType string

const (
	ISA      AccountType = "isa"
	Pension  AccountType = "pension"
	Standard AccountType = "standard"
)

// ValidateAccountType checks that t is one of the known account types.
func ValidateAccountType(t AccountType) error {
	switch t {
	case ISA, Pension, Standard:
		return nil
	}
	return fmt.Errorf("unknown account type %q", t)
}

// Account groups holdings under one owner.
//
// Value is derived: the sum of CurrentValue over the account's holdings,
// zero when it has none. It is recomputed by the valuation cascade and is
// never authoritative on its own.
type Account struct {
	ID    int64
	Name  string
	Owner string
	Type  AccountType
	Value decimal.Decimal
}

func (a *Account) String() string { return a.Name }
