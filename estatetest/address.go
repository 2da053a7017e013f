package estatetest

import (
	"crypto/rand"
	"testing"

	estate "github.com/iov-one/estate"
)

// ParseAddress takes an address in a human readable format and returns its
// binary representation. This function is a test helper that is using
// estate.ParseAddress function functionality.
func ParseAddress(t testing.TB, encodedAddress string) estate.Address {
	t.Helper()

	addr, err := estate.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}

// RandomAddr returns a valid random address genearted on the fly.
func RandomAddr(t testing.TB) estate.Address {
	raw := make([]byte, estate.AddressLength)
	if _, err := rand.Read(raw); err != nil {
		t.Fatalf("cannot generate a random address: %s", err)
	}
	return estate.Address(raw)
}
