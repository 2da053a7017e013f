/*
Package crypto holds the keys used to authenticate callers. A public key is
turned into a condition, and the condition into the address that owns shares
and income.
*/
package crypto

import (
	estate "github.com/iov-one/estate"
	jsoniter "github.com/json-iterator/go"
)

// ExtensionName is used for the Permissions we get from signatures
const ExtensionName = "sigs"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Signer is the functionality we use from a private key
// No serializing to support hardware devices as well.
type Signer interface {
	Sign(message []byte) (*Signature, error)
	PublicKey() *PublicKey
}

// Signature is a signature over a message, created by a private key.
type Signature struct {
	Ed25519 []byte `json:"ed25519,omitempty"`
}

// Marshal returns the JSON representation of the signature.
func (s *Signature) Marshal() ([]byte, error) {
	return json.Marshal(s)
}

// Unmarshal loads the signature from its JSON representation.
func (s *Signature) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, s)
}

// PublicKey identifies a signer.
type PublicKey struct {
	Ed25519 []byte `json:"ed25519,omitempty"`
}

// Marshal returns the JSON representation of the key.
func (p *PublicKey) Marshal() ([]byte, error) {
	return json.Marshal(p)
}

// Unmarshal loads the key from its JSON representation.
func (p *PublicKey) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, p)
}

// Address is a shortcut for p.Condition().Address()
func (p *PublicKey) Address() estate.Address {
	c := p.Condition()
	if c == nil {
		return nil
	}
	return c.Address()
}

// PrivateKey holds the secret key material.
type PrivateKey struct {
	Ed25519 []byte `json:"ed25519,omitempty"`
}

// Marshal returns the JSON representation of the key.
func (p *PrivateKey) Marshal() ([]byte, error) {
	return json.Marshal(p)
}

// Unmarshal loads the key from its JSON representation.
func (p *PrivateKey) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, p)
}
