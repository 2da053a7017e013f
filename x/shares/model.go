package shares

import (
	estate "github.com/iov-one/estate"
	"github.com/iov-one/estate/errors"
	"github.com/iov-one/estate/orm"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// BucketName is where we store the balances
	BucketName = "shares"

	supplyBucketName = "supply"
)

var supplyKey = []byte("total")

// Holding is the share balance of a single address.
type Holding struct {
	Balance uint64 `json:"balance"`
}

var _ orm.CloneableData = (*Holding)(nil)

func (h *Holding) Marshal() ([]byte, error)   { return json.Marshal(h) }
func (h *Holding) Unmarshal(raw []byte) error { return json.Unmarshal(raw, h) }

// Validate rejects empty holdings. An address without shares has no record.
func (h *Holding) Validate() error {
	if h.Balance == 0 {
		return errors.Wrap(errors.ErrModel, "empty holding")
	}
	return nil
}

// Copy returns a copy of the holding.
func (h *Holding) Copy() orm.CloneableData {
	cpy := *h
	return &cpy
}

// Supply is the total amount of shares issued.
type Supply struct {
	Total uint64 `json:"total"`
}

var _ orm.CloneableData = (*Supply)(nil)

func (s *Supply) Marshal() ([]byte, error)   { return json.Marshal(s) }
func (s *Supply) Unmarshal(raw []byte) error { return json.Unmarshal(raw, s) }

// Validate always passes, any total is valid.
func (s *Supply) Validate() error { return nil }

// Copy returns a copy of the supply.
func (s *Supply) Copy() orm.CloneableData {
	cpy := *s
	return &cpy
}

// HoldingBucket stores one Holding per address.
type HoldingBucket struct {
	orm.Bucket
}

// NewHoldingBucket returns a bucket for share balances.
func NewHoldingBucket() HoldingBucket {
	return HoldingBucket{
		Bucket: orm.NewBucket(BucketName, orm.NewSimpleObj(nil, &Holding{})),
	}
}

// Balance returns the balance of the address, zero when it holds nothing.
func (b HoldingBucket) Balance(db estate.ReadOnlyKVStore, addr estate.Address) (uint64, error) {
	obj, err := b.Get(db, addr)
	if err != nil {
		return 0, err
	}
	if obj == nil {
		return 0, nil
	}
	return obj.Value().(*Holding).Balance, nil
}

// SetBalance stores the balance of the address. A zero balance removes the
// record, so only current holders are ever visited.
func (b HoldingBucket) SetBalance(db estate.KVStore, addr estate.Address, balance uint64) error {
	if balance == 0 {
		return b.Delete(db, addr)
	}
	return b.Save(db, orm.NewSimpleObj(addr, &Holding{Balance: balance}))
}

// SupplyBucket stores the total supply singleton.
type SupplyBucket struct {
	orm.Bucket
}

// NewSupplyBucket returns a bucket for the total supply.
func NewSupplyBucket() SupplyBucket {
	return SupplyBucket{
		Bucket: orm.NewBucket(supplyBucketName, orm.NewSimpleObj(nil, &Supply{})),
	}
}

// Total returns the current total supply.
func (b SupplyBucket) Total(db estate.ReadOnlyKVStore) (uint64, error) {
	obj, err := b.Get(db, supplyKey)
	if err != nil {
		return 0, err
	}
	if obj == nil {
		return 0, nil
	}
	return obj.Value().(*Supply).Total, nil
}

// SetTotal stores the total supply.
func (b SupplyBucket) SetTotal(db estate.KVStore, total uint64) error {
	return b.Save(db, orm.NewSimpleObj(supplyKey, &Supply{Total: total}))
}
