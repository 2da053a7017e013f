package orm

import (
	"testing"

	"github.com/iov-one/estate/errors"
	"github.com/iov-one/estate/estatetest/assert"
	"github.com/iov-one/estate/store"
)

func TestBucketName(t *testing.T) {
	obj := NewSimpleObj(nil, &counter{})

	assert.Panics(t, func() {
		// An invalid bucket name must crash.
		NewBucket("l33t", obj)
	})
}

func TestBucketCannotSaveInvalid(t *testing.T) {
	o := NewSimpleObj([]byte("mykey"), &counter{Count: -999})
	b := NewBucket("mybucket", NewSimpleObj(nil, &counter{}))

	db := store.MemStore()
	if err := b.Save(db, o); !errors.ErrState.Is(err) {
		t.Fatalf("invalid object must not save: %s", err)
	}
	if err := b.Save(db, NewSimpleObj(nil, &counter{})); !errors.ErrEmpty.Is(err) {
		t.Fatalf("object without a key must not save: %s", err)
	}
}

func TestBucketGetSave(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("mybucket", NewSimpleObj(nil, &counter{}))

	obj, err := b.Get(db, []byte("missing"))
	assert.Nil(t, err)
	assert.Nil(t, obj)

	assert.Nil(t, b.Save(db, NewSimpleObj([]byte("a"), &counter{Count: 848})))
	obj, err = b.Get(db, []byte("a"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("a"), obj.Key())
	assert.Equal(t, &counter{Count: 848}, obj.Value())

	has, err := b.Has(db, []byte("a"))
	assert.Nil(t, err)
	assert.Equal(t, true, has)

	assert.Nil(t, b.Delete(db, []byte("a")))
	obj, err = b.Get(db, []byte("a"))
	assert.Nil(t, err)
	assert.Nil(t, obj)
}

func TestBucketNamesDoNotCollide(t *testing.T) {
	db := store.MemStore()
	b1 := NewBucket("abc", NewSimpleObj(nil, &counter{}))
	b2 := NewBucket("abcd", NewSimpleObj(nil, &counter{}))

	assert.Nil(t, b1.Save(db, NewSimpleObj([]byte("dx"), &counter{Count: 1})))
	assert.Nil(t, b2.Save(db, NewSimpleObj([]byte("x"), &counter{Count: 2})))

	var visited []string
	err := b1.Visit(db, nil, func(obj Object) error {
		visited = append(visited, string(obj.Key()))
		return nil
	})
	assert.Nil(t, err)
	assert.Equal(t, []string{"dx"}, visited)
}

func TestBucketVisitPrefix(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("votes", NewSimpleObj(nil, &counter{}))
	keys := []string{"p1|alice", "p1|bob", "p2|alice", "p10|carol"}
	for i, k := range keys {
		assert.Nil(t, b.Save(db, NewSimpleObj([]byte(k), &counter{Count: int64(i)})))
	}

	var total int64
	var visited []string
	err := b.Visit(db, []byte("p1|"), func(obj Object) error {
		visited = append(visited, string(obj.Key()))
		total += obj.Value().(*counter).Count
		return nil
	})
	assert.Nil(t, err)
	assert.Equal(t, []string{"p1|alice", "p1|bob"}, visited)
	assert.Equal(t, int64(1), total)

	stop := errors.ErrHuman.New("stop")
	calls := 0
	err = b.Visit(db, nil, func(Object) error {
		calls++
		return stop
	})
	assert.Equal(t, stop, err)
	assert.Equal(t, 1, calls)
}

func TestPrefixEnd(t *testing.T) {
	assert.Equal(t, []byte("ac"), prefixEnd([]byte("ab")))
	assert.Equal(t, []byte("b"), prefixEnd([]byte{'a', 0xff}))
	assert.Equal(t, []byte(nil), prefixEnd([]byte{0xff, 0xff}))
}

func TestSimpleObjClone(t *testing.T) {
	val := &counter{Count: 7}
	obj := NewSimpleObj([]byte("foo"), val)
	assert.Nil(t, obj.Validate())

	cpy := obj.Clone()
	assert.Equal(t, []byte("foo"), cpy.Key())
	assert.Equal(t, val, cpy.Value())

	// now modify original, should not affect clone
	val.Count = 9
	assert.Equal(t, &counter{Count: 7}, cpy.Value())
}
