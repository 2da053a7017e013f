package orm

import (
	jsoniter "github.com/json-iterator/go"

	"github.com/iov-one/estate/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// counter is a minimal model used to exercise the buckets.
type counter struct {
	Count int64 `json:"count"`
}

var _ CloneableData = (*counter)(nil)

func (c *counter) Marshal() ([]byte, error) { return json.Marshal(c) }

func (c *counter) Unmarshal(raw []byte) error { return json.Unmarshal(raw, c) }

func (c *counter) Copy() CloneableData {
	cpy := *c
	return &cpy
}

func (c *counter) Validate() error {
	if c.Count < 0 {
		return errors.Wrap(errors.ErrState, "negative count")
	}
	return nil
}
