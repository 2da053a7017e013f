package app

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	estate "github.com/iov-one/estate"
	"github.com/iov-one/estate/errors"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGenesisFile(t *testing.T) {
	Convey("Given a temporary directory", t, func() {
		dir, err := ioutil.TempDir("", "genesis")
		So(err, ShouldBeNil)
		Reset(func() { os.RemoveAll(dir) })

		Convey("A saved genesis can be loaded back", func() {
			path := filepath.Join(dir, "genesis.json")
			gen := estate.Genesis{
				ChainID: "estate-test",
				AppState: estate.Options{
					"conf": estate.RawMessage(`{"gov":{"min_tokens_to_propose":1}}`),
				},
			}
			So(SaveGenesis(path, gen), ShouldBeNil)

			loaded, err := LoadGenesis(path)
			So(err, ShouldBeNil)
			So(loaded.ChainID, ShouldEqual, "estate-test")

			var conf map[string]map[string]int
			So(loaded.AppState.ReadOptions("conf", &conf), ShouldBeNil)
			So(conf["gov"]["min_tokens_to_propose"], ShouldEqual, 1)
		})

		Convey("A missing file is an input error", func() {
			_, err := LoadGenesis(filepath.Join(dir, "missing.json"))
			So(errors.ErrInput.Is(err), ShouldBeTrue)
		})

		Convey("A malformed file is an input error", func() {
			path := filepath.Join(dir, "broken.json")
			So(ioutil.WriteFile(path, []byte("{not json"), 0600), ShouldBeNil)
			_, err := LoadGenesis(path)
			So(errors.ErrInput.Is(err), ShouldBeTrue)
		})
	})
}
