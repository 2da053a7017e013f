package cash

import (
	estate "github.com/iov-one/estate"
	"github.com/iov-one/estate/errors"
	"github.com/iov-one/estate/orm"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// BucketName is where we store the accounts
const BucketName = "cash"

// Account holds the income currency of a single address.
type Account struct {
	Balance uint64 `json:"balance"`
}

var _ orm.CloneableData = (*Account)(nil)

func (a *Account) Marshal() ([]byte, error)   { return json.Marshal(a) }
func (a *Account) Unmarshal(raw []byte) error { return json.Unmarshal(raw, a) }

// Validate rejects empty accounts, those are removed instead.
func (a *Account) Validate() error {
	if a.Balance == 0 {
		return errors.Wrap(errors.ErrModel, "empty account")
	}
	return nil
}

// Copy makes a new account with the same balance.
func (a *Account) Copy() orm.CloneableData {
	cpy := *a
	return &cpy
}

// Bucket is a type-safe wrapper around orm.Bucket
type Bucket struct {
	orm.Bucket
}

// NewBucket initializes a cash.Bucket with default name
func NewBucket() Bucket {
	return Bucket{
		Bucket: orm.NewBucket(BucketName, orm.NewSimpleObj(nil, &Account{})),
	}
}

// Balance returns the funds of the address, zero for unknown addresses.
func (b Bucket) Balance(db estate.ReadOnlyKVStore, addr estate.Address) (uint64, error) {
	obj, err := b.Get(db, addr)
	if err != nil {
		return 0, err
	}
	if obj == nil {
		return 0, nil
	}
	acc, ok := obj.Value().(*Account)
	if !ok {
		return 0, errors.WithType(errors.ErrModel, obj.Value())
	}
	return acc.Balance, nil
}

// SetBalance stores the funds of the address. Zero removes the account.
func (b Bucket) SetBalance(db estate.KVStore, addr estate.Address, balance uint64) error {
	if balance == 0 {
		return b.Delete(db, addr)
	}
	return b.Save(db, orm.NewSimpleObj(addr, &Account{Balance: balance}))
}
