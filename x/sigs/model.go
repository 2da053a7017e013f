package sigs

import (
	estate "github.com/iov-one/estate"
	"github.com/iov-one/estate/crypto"
	"github.com/iov-one/estate/errors"
	"github.com/iov-one/estate/orm"
	jsoniter "github.com/json-iterator/go"
)

// BucketName is where we store the accounts
const BucketName = "sigs"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// UserData is the signature state of a single key.
type UserData struct {
	Pubkey   *crypto.PublicKey `json:"pubkey"`
	Sequence int64             `json:"sequence"`
}

var _ orm.CloneableData = (*UserData)(nil)

// Marshal returns the JSON representation of the user.
func (u *UserData) Marshal() ([]byte, error) {
	return json.Marshal(u)
}

// Unmarshal loads the user from its JSON representation.
func (u *UserData) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, u)
}

// Validate ensures the sequence is consistent with the key.
func (u *UserData) Validate() error {
	if seq := u.Sequence; seq < 0 {
		return errors.Wrap(ErrInvalidSequence, "negative")
	} else if seq > 0 && u.Pubkey == nil {
		return errors.Wrap(ErrInvalidSequence, "needs Pubkey")
	}
	return nil
}

// Copy makes a new UserData with the same values
func (u *UserData) Copy() orm.CloneableData {
	return &UserData{
		Sequence: u.Sequence,
		Pubkey:   u.Pubkey,
	}
}

// CheckAndIncrementSequence implements check and increment operation.
// If current sequence value is the same as given expected value then it is
// incremented. Otherwise an error is returned.
// Before incrementing the sequence, this function is testing for a value
// overflow.
func (u *UserData) CheckAndIncrementSequence(expected int64) error {
	if u.Sequence != expected {
		return errors.Wrapf(ErrInvalidSequence, "mismatch expected %d, got %d", u.Sequence, expected)
	}

	next := u.Sequence + 1

	// maxSequenceValue is limited by JSON clients that cannot represent
	// integers greater than 2^53 - 1 exactly.
	const maxSequenceValue = (1 << 53) - 1
	if next <= 0 || next > maxSequenceValue {
		return errors.Wrap(errors.ErrOverflow, "sequence out of range")
	}
	u.Sequence = next
	return nil
}

// AsUser will safely type-cast any value from Bucket to a UserData
func AsUser(obj orm.Object) *UserData {
	if obj == nil || obj.Value() == nil {
		return nil
	}
	return obj.Value().(*UserData)
}

// NewUser constructs an object from an address and pubkey
func NewUser(pubkey *crypto.PublicKey) orm.Object {
	var key estate.Address
	if pubkey != nil {
		key = pubkey.Address()
	}
	return orm.NewSimpleObj(key, &UserData{Pubkey: pubkey})
}

// Bucket extends orm.Bucket with GetOrCreate
type Bucket struct {
	orm.Bucket
}

// NewBucket creates the proper bucket for this extension
func NewBucket() Bucket {
	return Bucket{
		Bucket: orm.NewBucket(BucketName, NewUser(nil)),
	}
}

// GetOrCreate initializes a UserData if none exist for that key
func (b Bucket) GetOrCreate(db estate.KVStore, pubkey *crypto.PublicKey) (orm.Object, error) {
	obj, err := b.Get(db, pubkey.Address())
	if err == nil && obj == nil {
		obj = NewUser(pubkey)
	}
	return obj, err
}

// NextSequence returns the sequence the next signature of the given key
// must carry.
func NextSequence(db estate.ReadOnlyKVStore, pubkey *crypto.PublicKey) (int64, error) {
	obj, err := NewBucket().Get(db, pubkey.Address())
	if err != nil {
		return 0, err
	}
	if obj == nil {
		return 0, nil
	}
	return AsUser(obj).Sequence, nil
}

// RegisterQuery will register this bucket as "/auth"
func RegisterQuery(qr estate.QueryRouter) {
	NewBucket().Register("auth", qr)
}
