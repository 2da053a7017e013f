package estate_test

import (
	"testing"

	estate "github.com/iov-one/estate"
	"github.com/iov-one/estate/errors"
	"github.com/iov-one/estate/estatetest/assert"
	"github.com/iov-one/estate/store"
)

type recordingInit struct {
	key   string
	calls *[]string
	err   error
}

func (r recordingInit) FromGenesis(opts estate.Options, db estate.KVStore) error {
	*r.calls = append(*r.calls, r.key)
	if r.err != nil {
		return r.err
	}
	var value string
	if err := opts.ReadOptions(r.key, &value); err != nil {
		return err
	}
	return db.Set([]byte(r.key), []byte(value))
}

func TestChainInitializers(t *testing.T) {
	opts := estate.Options{
		"first":  estate.RawMessage(`"one"`),
		"second": estate.RawMessage(`"two"`),
	}

	var calls []string
	db := store.MemStore()
	init := estate.ChainInitializers(
		recordingInit{key: "first", calls: &calls},
		recordingInit{key: "second", calls: &calls},
	)
	assert.Nil(t, init.FromGenesis(opts, db))
	assert.Equal(t, []string{"first", "second"}, calls)

	v, err := db.Get([]byte("second"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("two"), v)

	calls = nil
	init = estate.ChainInitializers(
		recordingInit{key: "first", calls: &calls, err: errors.ErrInput.New("broken")},
		recordingInit{key: "second", calls: &calls},
	)
	assert.IsErr(t, errors.ErrInput, init.FromGenesis(opts, store.MemStore()))
	assert.Equal(t, []string{"first"}, calls)
}

func TestReadOptions(t *testing.T) {
	opts := estate.Options{
		"number": estate.RawMessage(`42`),
		"broken": estate.RawMessage(`{`),
	}

	var n int
	assert.Nil(t, opts.ReadOptions("number", &n))
	assert.Equal(t, 42, n)

	// A missing key leaves the destination untouched.
	n = 7
	assert.Nil(t, opts.ReadOptions("missing", &n))
	assert.Equal(t, 7, n)

	var obj map[string]int
	if err := opts.ReadOptions("broken", &obj); err == nil {
		t.Fatal("want decoding error")
	}
}
