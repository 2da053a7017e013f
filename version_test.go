package estate_test

import (
	"testing"

	estate "github.com/iov-one/estate"
	"github.com/stretchr/testify/assert"
)

func TestVersion(t *testing.T) {
	defer func(c string) { estate.GitCommit = c }(estate.GitCommit)

	estate.GitCommit = ""
	assert.Equal(t, "v0.1.0-dev", estate.Version())

	estate.GitCommit = "12345678"
	assert.Equal(t, "v0.1.0-dev 12345678", estate.Version())
}
