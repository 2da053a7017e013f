/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called Buckets.
* Each bucket contains only one type of object.
* It has a primary key, which may be composite.
* Easy queries for one and iteration over a key prefix.
*/
package orm

import (
	"fmt"
	"regexp"

	estate "github.com/iov-one/estate"
	"github.com/iov-one/estate/errors"
)

var (
	isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString
)

// Bucket is a generic holder that stores data as well
// as references to sequences.
//
// This is a generic building block that should generally
// be embedded in a type-safe wrapper to ensure all data
// is the same type.
// Bucket is a prefixed subspace of the DB
// proto defines the default Model, all elements of this type
type Bucket struct {
	name   string
	prefix []byte
	proto  Cloneable
}

// NewBucket creates a bucket to store data
func NewBucket(name string, proto Cloneable) Bucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("Illegal bucket: %s", name))
	}

	return Bucket{
		name:   name,
		prefix: append([]byte(name), ':'),
		proto:  proto,
	}
}

// Name returns the name of the bucket.
func (b Bucket) Name() string {
	return b.name
}

// DBKey is the full key we store in the db, including prefix
// We copy into a new array rather than use append, as we don't
// want consequetive calls to overwrite the same byte array.
func (b Bucket) DBKey(key []byte) []byte {
	l := len(b.prefix)
	out := make([]byte, l+len(key))
	copy(out, b.prefix)
	copy(out[l:], key)
	return out
}

// Get one element. Returns (nil, nil) when there is no value under the key.
func (b Bucket) Get(db estate.ReadOnlyKVStore, key []byte) (Object, error) {
	dbkey := b.DBKey(key)
	bz, err := db.Get(dbkey)
	if err != nil {
		return nil, err
	}
	if bz == nil {
		return nil, nil
	}
	return b.Parse(key, bz)
}

// Has returns true if an object is stored under the key.
func (b Bucket) Has(db estate.ReadOnlyKVStore, key []byte) (bool, error) {
	return db.Has(b.DBKey(key))
}

// Parse takes a key and value data (estate.Model) and
// reconstructs the data this Bucket would return.
//
// Used internally as part of Get.
// It is exposed mainly as a test helper, but can work for
// any code that wants to parse
func (b Bucket) Parse(key, value []byte) (Object, error) {
	obj := b.proto.Clone()
	if err := obj.Value().Unmarshal(value); err != nil {
		return nil, errors.Wrapf(errors.ErrState, "%s: cannot unmarshal: %s", b.name, err)
	}
	obj.SetKey(key)
	return obj, nil
}

// Save will write a model, it must be of the same type as proto
func (b Bucket) Save(db estate.KVStore, model Object) error {
	if err := model.Validate(); err != nil {
		return err
	}
	bz, err := model.Value().Marshal()
	if err != nil {
		return err
	}
	return db.Set(b.DBKey(model.Key()), bz)
}

// Delete will remove the value at a key
func (b Bucket) Delete(db estate.KVStore, key []byte) error {
	return db.Delete(b.DBKey(key))
}

// Sequence returns a Sequence by name
func (b Bucket) Sequence(name string) Sequence {
	return NewSequence(b.name, name)
}

// Visit calls fn for every object stored under a key that starts with the
// given prefix, in ascending key order. An empty prefix visits the whole
// bucket. Iteration stops at the first error, which is returned.
func (b Bucket) Visit(db estate.ReadOnlyKVStore, prefix []byte, fn func(Object) error) error {
	start := b.DBKey(prefix)
	it, err := db.Iterator(start, prefixEnd(start))
	if err != nil {
		return err
	}
	defer it.Close()

	l := len(b.prefix)
	for it.Valid() {
		key := append([]byte(nil), it.Key()[l:]...)
		obj, err := b.Parse(key, it.Value())
		if err != nil {
			return err
		}
		if err := fn(obj); err != nil {
			return err
		}
		if err := it.Next(); err != nil {
			return err
		}
	}
	return nil
}

// prefixEnd returns the first key that does not start with the given
// prefix, or nil if there is no such key.
func prefixEnd(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}

// Register makes the bucket queryable under the given path, or under its own
// name when the path is empty.
func (b Bucket) Register(name string, r estate.QueryRouter) {
	if name == "" {
		name = b.name
	}
	r.Register("/"+name, b)
}

// Query handles queries from the QueryRouter
func (b Bucket) Query(db estate.ReadOnlyKVStore, mod string, data []byte) ([]estate.Model, error) {
	switch mod {
	case estate.KeyQueryMod:
		key := b.DBKey(data)
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		// return nothing on miss
		if value == nil {
			return nil, nil
		}
		return []estate.Model{estate.Pair(key, value)}, nil
	case estate.PrefixQueryMod:
		start := b.DBKey(data)
		it, err := db.Iterator(start, prefixEnd(start))
		if err != nil {
			return nil, err
		}
		defer it.Close()
		var res []estate.Model
		for it.Valid() {
			res = append(res, estate.Pair(it.Key(), it.Value()))
			if err := it.Next(); err != nil {
				return nil, err
			}
		}
		return res, nil
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
}
