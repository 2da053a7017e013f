package orm

import (
	"encoding/binary"

	estate "github.com/iov-one/estate"
)

// Sequence maintains a counter. Encoded with EncodeSequence, every value sorts
// after the previous one.
type Sequence struct {
	id []byte
}

// NewSequence returns a sequence counter. Sequence is using following pattern
// to construct a key:
//
//	_s.<bucket>:<name>
func NewSequence(bucket, name string) Sequence {
	id := "_s." + bucket + ":" + name
	return Sequence{
		id: []byte(id),
	}
}

// NextInt increments the sequence and returns its state as int.
func (s *Sequence) NextInt(db estate.KVStore) (int64, error) {
	return s.increment(db, 1)
}

// Latest returns the recently returned value of the sequence. This method does
// not modify the sequence state. Use NextInt to acquire a sequence
// value that was not given to anyone else.
func (s *Sequence) Latest(db estate.ReadOnlyKVStore) (int64, error) {
	raw, err := db.Get(s.id)
	if err != nil {
		return 0, err
	}
	return DecodeSequence(raw), nil
}

func (s *Sequence) increment(db estate.KVStore, inc int64) (int64, error) {
	val, err := s.Latest(db)
	if err != nil {
		return 0, err
	}
	val += inc
	if err := db.Set(s.id, EncodeSequence(val)); err != nil {
		return 0, err
	}
	return val, nil
}

// DecodeSequence reads an 8 byte big endian value. Missing value is zero.
func DecodeSequence(bz []byte) int64 {
	if bz == nil {
		return 0
	}
	val := binary.BigEndian.Uint64(bz)
	return int64(val)
}

// EncodeSequence returns the 8 byte big endian representation of the value.
// Keys encoded this way sort in the numeric order.
func EncodeSequence(val int64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, uint64(val))
	return bz
}
