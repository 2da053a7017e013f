package orm

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/iov-one/estate/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequence(t *testing.T) {
	db := store.MemStore()

	cases := []struct {
		bucket, name string
		init         int64
		increments   int64
	}{
		0: {"aaa", "id", 0, 22},
		1: {"aaa", "other", 0, 11},
		2: {"aaa", "id", 22, 18},
		3: {"bbb", "id", 0, 300},
	}

	for i, tc := range cases {
		t.Run(fmt.Sprintf("case-%d", i), func(t *testing.T) {
			s := NewSequence(tc.bucket, tc.name)
			init, err := s.Latest(db)
			require.NoError(t, err)
			require.Equal(t, tc.init, init)
			orig := EncodeSequence(init)

			var val int64
			for i := int64(0); i < tc.increments; i++ {
				val, err = s.NextInt(db)
				require.NoError(t, err)
			}
			// expect the final value to be this
			assert.Equal(t, tc.init+tc.increments, val)

			// make sure final value is bigger than original value
			// if we use the raw bytes to index stuff
			last, err := s.Latest(db)
			require.NoError(t, err)
			assert.Equal(t, 1, bytes.Compare(EncodeSequence(last), orig))
		})
	}
}
