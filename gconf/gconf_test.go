package gconf

import (
	"testing"

	estate "github.com/iov-one/estate"
	"github.com/iov-one/estate/errors"
	"github.com/iov-one/estate/estatetest"
	"github.com/iov-one/estate/estatetest/assert"
	"github.com/iov-one/estate/store"
	jsoniter "github.com/json-iterator/go"
	. "github.com/smartystreets/goconvey/convey"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type testConf struct {
	Owner estate.Address `json:"owner"`
	Limit int64          `json:"limit"`
}

func (c *testConf) Marshal() ([]byte, error)   { return json.Marshal(c) }
func (c *testConf) Unmarshal(raw []byte) error { return json.Unmarshal(raw, c) }

func (c *testConf) Validate() error {
	if err := c.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if c.Limit <= 0 {
		return errors.ErrInput.New("limit must be positive")
	}
	return nil
}

func TestSaveLoad(t *testing.T) {
	cases := map[string]struct {
		Conf        *testConf
		WantSaveErr *errors.Error
		WantLoadErr *errors.Error
	}{
		"valid configuration": {
			Conf: &testConf{Owner: estatetest.RandomAddr(t), Limit: 10},
		},
		"invalid address cannot be saved": {
			Conf:        &testConf{Owner: estate.Address("too short"), Limit: 10},
			WantSaveErr: errors.ErrInput,
			WantLoadErr: errors.ErrNotFound,
		},
		"invalid limit cannot be saved": {
			Conf:        &testConf{Owner: estatetest.RandomAddr(t)},
			WantSaveErr: errors.ErrInput,
			WantLoadErr: errors.ErrNotFound,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			assert.IsErr(t, tc.WantSaveErr, Save(db, "test", tc.Conf))

			var got testConf
			err := Load(db, "test", &got)
			assert.IsErr(t, tc.WantLoadErr, err)
			if err == nil {
				assert.Equal(t, tc.Conf, &got)
			}
		})
	}
}

func TestInitConfig(t *testing.T) {
	Convey("Given a genesis with a configuration section", t, func() {
		const genesis = `{
			"conf": {
				"test": {"owner": "hex:0000000000000000000000000000000000000001", "limit": 3},
				"broken": {"owner": "hex:00", "limit": 3}
			}
		}`
		var opts estate.Options
		So(json.Unmarshal([]byte(genesis), &opts), ShouldBeNil)
		db := store.MemStore()

		Convey("a valid section is stored", func() {
			So(InitConfig(db, opts, "test", &testConf{}), ShouldBeNil)
			var got testConf
			So(Load(db, "test", &got), ShouldBeNil)
			So(got.Limit, ShouldEqual, 3)
			So(got.Owner.Equals(estatetest.ParseAddress(t, "0000000000000000000000000000000000000001")), ShouldBeTrue)
		})

		Convey("an invalid section is rejected", func() {
			err := InitConfig(db, opts, "broken", &testConf{})
			So(errors.ErrInput.Is(err), ShouldBeTrue)
		})

		Convey("a missing section is not found", func() {
			err := InitConfig(db, opts, "missing", &testConf{})
			So(errors.ErrNotFound.Is(err), ShouldBeTrue)
		})
	})
}
