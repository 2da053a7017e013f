package store

import (
	"testing"

	"github.com/iov-one/estate/estatetest/assert"
)

// TestSliceIterator makes sure the basic slice iterator works.
func TestSliceIterator(t *testing.T) {
	models := []Model{
		{Key: []byte("a"), Value: []byte("1")},
		{Key: []byte("b"), Value: []byte("2")},
		{Key: []byte("c"), Value: []byte("3")},
	}

	i := 0
	for iter := NewSliceIterator(models); iter.Valid(); assert.Nil(t, iter.Next()) {
		if i >= len(models) {
			t.Fatalf("iterator step greater than the size: %d", i)
		}
		assert.Equal(t, models[i].Key, iter.Key())
		assert.Equal(t, models[i].Value, iter.Value())
		i++
	}
	assert.Equal(t, len(models), i)

	it := NewSliceIterator(models)
	if !it.Valid() {
		t.Fatal("iterator expected to be valid")
	}
	it.Close()
	if it.Valid() {
		t.Fatal("closed iterator must be invalid")
	}
	if err := it.Next(); err == nil {
		t.Fatal("calling Next on invalid iterator must return error")
	}
}
