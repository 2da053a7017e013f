package estate

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	"github.com/btcsuite/btcutil/bech32"
	"github.com/iov-one/estate/errors"
)

const (
	// AddressLength is the length of all addresses.
	AddressLength = 20

	// AddressPrefix is the human readable part of the bech32 form of an
	// address.
	AddressPrefix = "estate"
)

// it must have (?s) flags, otherwise it errors when last section contains 0x20 (newline)
var perm = regexp.MustCompile(`(?s)^([a-zA-Z0-9_\-]{3,8})/([a-zA-Z0-9_\-]{3,8})/(.+)$`)

// Condition is a specially formatted array, containing
// information on who can authorize an action.
// It is of the format:
//
//	sprintf("%s/%s/%s", extension, type, data)
type Condition []byte

// NewCondition builds a condition from its parts.
func NewCondition(ext, typ string, data []byte) Condition {
	pre := fmt.Sprintf("%s/%s/", ext, typ)
	return append([]byte(pre), data...)
}

// Parse will extract the sections from the Condition bytes
// and verify it is properly formatted
func (c Condition) Parse() (string, string, []byte, error) {
	chunks := perm.FindSubmatch(c)
	if len(chunks) == 0 {
		return "", "", nil, errors.ErrInput.Newf("condition: %X", []byte(c))
	}
	// returns [all, match1, match2, match3]
	return string(chunks[1]), string(chunks[2]), chunks[3], nil
}

// Address will convert a Condition into an Address
func (c Condition) Address() Address {
	return NewAddress(c)
}

// Equals checks if two permissions are the same
func (c Condition) Equals(b Condition) bool {
	return bytes.Equal(c, b)
}

// String returns a human readable string.
// We keep the extension and type in ascii and
// hex-encode the binary data
func (c Condition) String() string {
	ext, typ, data, err := c.Parse()
	if err != nil {
		return fmt.Sprintf("Invalid Condition: %X", []byte(c))
	}
	return fmt.Sprintf("%s/%s/%X", ext, typ, data)
}

// Validate returns an error if the Condition is not the proper format
func (c Condition) Validate() error {
	if !perm.Match(c) {
		return errors.ErrInput.Newf("condition: %X", []byte(c))
	}
	return nil
}

// Address represents a collision-free, one-way digest
// of a Condition
//
// It will be of size AddressLength
type Address []byte

// NewAddress hashes and truncates into the proper size
func NewAddress(data []byte) Address {
	if data == nil {
		return nil
	}
	h := sha256.Sum256(data)
	return h[:AddressLength]
}

// Equals checks if two addresses are the same
func (a Address) Equals(b Address) bool {
	return bytes.Equal(a, b)
}

// Clone returns a copy of this address that does not share memory.
func (a Address) Clone() Address {
	if a == nil {
		return nil
	}
	cpy := make(Address, len(a))
	copy(cpy, a)
	return cpy
}

// Validate returns an error if the address is not the valid size
func (a Address) Validate() error {
	if len(a) == 0 {
		return errors.ErrEmpty.New("address")
	}
	if len(a) != AddressLength {
		return errors.ErrInput.Newf("address: %X", []byte(a))
	}
	return nil
}

// String returns the bech32 representation of the address.
func (a Address) String() string {
	if len(a) == 0 {
		return "(nil)"
	}
	conv, err := bech32.ConvertBits(a, 8, 5, true)
	if err != nil {
		return strings.ToUpper(hex.EncodeToString(a))
	}
	enc, err := bech32.Encode(AddressPrefix, conv)
	if err != nil {
		return strings.ToUpper(hex.EncodeToString(a))
	}
	return enc
}

// MarshalJSON provides a bech32 representation for JSON,
// to override the standard base64 []byte encoding
func (a Address) MarshalJSON() ([]byte, error) {
	if len(a) == 0 {
		return []byte(`""`), nil
	}
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts every format supported by ParseAddress.
func (a *Address) UnmarshalJSON(raw []byte) error {
	var enc string
	if err := json.Unmarshal(raw, &enc); err != nil {
		return errors.Wrap(err, "cannot decode json")
	}
	if len(enc) == 0 {
		*a = nil
		return nil
	}
	addr, err := ParseAddress(enc)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// ParseAddress accepts address in a human readable format and returns its
// binary representation. Supported formats are
//   - bech32 with the estate prefix,
//   - hex, optionally prefixed with "hex:",
//   - a condition, prefixed with "cond:".
func ParseAddress(enc string) (Address, error) {
	chunks := strings.SplitN(enc, ":", 2)
	format := ""
	if len(chunks) == 2 {
		format, enc = chunks[0], chunks[1]
	} else if strings.HasPrefix(strings.ToLower(enc), AddressPrefix+"1") {
		format = "bech32"
	} else {
		format = "hex"
	}

	switch format {
	case "hex":
		val, err := hex.DecodeString(enc)
		if err != nil {
			return nil, errors.Wrap(errors.ErrInput, "cannot decode hex")
		}
		addr := Address(val)
		return addr, addr.Validate()
	case "cond":
		args := strings.Split(enc, "/")
		if len(args) != 3 {
			return nil, errors.ErrInput.New("invalid condition format")
		}
		data, err := hex.DecodeString(args[2])
		if err != nil {
			return nil, errors.ErrInput.Newf("malformed condition data: %s", err)
		}
		c := NewCondition(args[0], args[1], data)
		if err := c.Validate(); err != nil {
			return nil, err
		}
		return c.Address(), nil
	case "bech32":
		hrp, payload, err := bech32.Decode(enc)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "deserialize bech32: %s", err)
		}
		if hrp != AddressPrefix {
			return nil, errors.ErrInput.Newf("unexpected bech32 prefix %q", hrp)
		}
		raw, err := bech32.ConvertBits(payload, 5, 8, false)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "convert bech32 payload: %s", err)
		}
		addr := Address(raw)
		return addr, addr.Validate()
	default:
		return nil, errors.ErrType.Newf("unknown format %q", format)
	}
}
