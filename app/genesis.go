package app

import (
	"io/ioutil"

	estate "github.com/iov-one/estate"
	"github.com/iov-one/estate/errors"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// LoadGenesis tries to load a given file into a Genesis struct
func LoadGenesis(filePath string) (estate.Genesis, error) {
	var gen estate.Genesis

	raw, err := ioutil.ReadFile(filePath)
	if err != nil {
		return gen, errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := json.Unmarshal(raw, &gen); err != nil {
		return gen, errors.Wrapf(errors.ErrInput, "unmarshaling genesis file: %s", err)
	}
	return gen, nil
}

// SaveGenesis writes the genesis into the given file.
func SaveGenesis(filePath string, gen estate.Genesis) error {
	raw, err := json.MarshalIndent(gen, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal genesis")
	}
	if err := ioutil.WriteFile(filePath, raw, 0644); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}
