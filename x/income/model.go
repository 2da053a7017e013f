package income

import (
	estate "github.com/iov-one/estate"
	"github.com/iov-one/estate/errors"
	"github.com/iov-one/estate/orm"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ReserveCondition owns the account that holds deposited income until it is
// claimed.
var ReserveCondition = estate.NewCondition("income", "reserve", []byte("income"))

// ReserveAddress returns the address of the reserve account.
func ReserveAddress() estate.Address {
	return ReserveCondition.Address()
}

// Ledger holds the engine wide totals.
type Ledger struct {
	// TotalDeposited is the sum of all deposits ever made.
	TotalDeposited uint64 `json:"total_deposited"`
	// TotalClaimed is the sum of all claims ever paid.
	TotalClaimed uint64 `json:"total_claimed"`
	// TotalSwept is the sum of all dust moved out by the owner.
	TotalSwept uint64 `json:"total_swept"`
}

var _ orm.CloneableData = (*Ledger)(nil)

func (l *Ledger) Marshal() ([]byte, error)   { return json.Marshal(l) }
func (l *Ledger) Unmarshal(raw []byte) error { return json.Unmarshal(raw, l) }

// Validate ensures no more was claimed than deposited.
func (l *Ledger) Validate() error {
	if l.TotalClaimed > l.TotalDeposited {
		return errors.Wrapf(errors.ErrModel, "claimed %d exceeds deposited %d", l.TotalClaimed, l.TotalDeposited)
	}
	return nil
}

// Unclaimed returns the part of all deposits that was not paid out yet.
func (l *Ledger) Unclaimed() uint64 {
	if l.TotalClaimed >= l.TotalDeposited {
		return 0
	}
	return l.TotalDeposited - l.TotalClaimed
}

// Copy returns a copy of the ledger.
func (l *Ledger) Copy() orm.CloneableData {
	cpy := *l
	return &cpy
}

// Claim is the cumulative amount already paid to a single holder.
type Claim struct {
	Claimed uint64 `json:"claimed"`
}

var _ orm.CloneableData = (*Claim)(nil)

func (c *Claim) Marshal() ([]byte, error)   { return json.Marshal(c) }
func (c *Claim) Unmarshal(raw []byte) error { return json.Unmarshal(raw, c) }

// Validate rejects empty claims, they are never stored.
func (c *Claim) Validate() error {
	if c.Claimed == 0 {
		return errors.Wrap(errors.ErrModel, "empty claim")
	}
	return nil
}

// Copy returns a copy of the claim.
func (c *Claim) Copy() orm.CloneableData {
	cpy := *c
	return &cpy
}

var ledgerKey = []byte("ledger")

// LedgerBucket stores the Ledger singleton.
type LedgerBucket struct {
	orm.Bucket
}

// NewLedgerBucket returns a bucket for the ledger.
func NewLedgerBucket() LedgerBucket {
	return LedgerBucket{
		Bucket: orm.NewBucket("incledger", orm.NewSimpleObj(nil, &Ledger{})),
	}
}

// Load returns the current ledger. A missing ledger is an empty one.
func (b LedgerBucket) Load(db estate.ReadOnlyKVStore) (*Ledger, error) {
	obj, err := b.Get(db, ledgerKey)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return &Ledger{}, nil
	}
	l, ok := obj.Value().(*Ledger)
	if !ok {
		return nil, errors.WithType(errors.ErrModel, obj.Value())
	}
	return l, nil
}

// Store writes the ledger.
func (b LedgerBucket) Store(db estate.KVStore, l *Ledger) error {
	return b.Save(db, orm.NewSimpleObj(ledgerKey, l))
}

// ClaimBucket stores one Claim per holder that ever claimed.
type ClaimBucket struct {
	orm.Bucket
}

// NewClaimBucket returns a bucket for claims.
func NewClaimBucket() ClaimBucket {
	return ClaimBucket{
		Bucket: orm.NewBucket("incclaim", orm.NewSimpleObj(nil, &Claim{})),
	}
}

// Claimed returns what the holder already received.
func (b ClaimBucket) Claimed(db estate.ReadOnlyKVStore, holder estate.Address) (uint64, error) {
	obj, err := b.Get(db, holder)
	if err != nil {
		return 0, err
	}
	if obj == nil {
		return 0, nil
	}
	c, ok := obj.Value().(*Claim)
	if !ok {
		return 0, errors.WithType(errors.ErrModel, obj.Value())
	}
	return c.Claimed, nil
}

// SetClaimed stores the cumulative claimed amount of the holder.
func (b ClaimBucket) SetClaimed(db estate.KVStore, holder estate.Address, claimed uint64) error {
	return b.Save(db, orm.NewSimpleObj(holder, &Claim{Claimed: claimed}))
}
