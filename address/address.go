// Package address encodes Lebowkis pay-to-pubkey-hash and pay-to-script-hash
// addresses with Base58Check, using the per-network version bytes of the
// lebowkis package.
package address

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/base58"

	"github.com/lebowkis/go-lebowkis/lebowkis"
)

// HashSize is the length of a Hash160 digest.
const HashSize = 20

var (
	ErrInvalidHashLength = errors.New("invalid hash160 length")
	ErrUnknownVersion    = errors.New("unknown address version")
	ErrInvalidAddress    = errors.New("invalid address")
)

// Kind distinguishes the two supported address forms.
type Kind uint8

const (
	PayToPubKeyHash Kind = iota
	PayToScriptHash
)

func (k Kind) String() string {
	switch k {
	case PayToPubKeyHash:
		return "p2pkh"
	case PayToScriptHash:
		return "p2sh"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Address is a decoded Base58Check address.
type Address struct {
	Network lebowkis.Network
	Kind    Kind
	Hash    [HashSize]byte
}

// New builds an address from a Hash160 digest.
func New(hash []byte, kind Kind, net lebowkis.Network) (Address, error) {
	if len(hash) != HashSize {
		return Address{}, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidHashLength, len(hash), HashSize)
	}
	a := Address{Network: net, Kind: kind}
	copy(a.Hash[:], hash)
	return a, nil
}

// Version returns the version byte the address is encoded with.
func (a Address) Version() byte {
	c := lebowkis.Lookup(a.Network)
	if a.Kind == PayToScriptHash {
		return c.ScriptHashAddrID
	}
	return c.PubKeyHashAddrID
}

// String returns the Base58Check encoding.
func (a Address) String() string {
	return base58.CheckEncode(a.Hash[:], a.Version())
}

// EncodePayToPubKeyHash encodes a public key hash for net.
func EncodePayToPubKeyHash(pubKeyHash []byte, net lebowkis.Network) (string, error) {
	a, err := New(pubKeyHash, PayToPubKeyHash, net)
	if err != nil {
		return "", err
	}
	return a.String(), nil
}

// EncodePayToScriptHash encodes a script hash for net.
func EncodePayToScriptHash(scriptHash []byte, net lebowkis.Network) (string, error) {
	a, err := New(scriptHash, PayToScriptHash, net)
	if err != nil {
		return "", err
	}
	return a.String(), nil
}

// ScriptHash returns Hash160 of a redeem script.
func ScriptHash(script []byte) []byte {
	return btcutil.Hash160(script)
}

// PubKeyHash returns Hash160 of a serialized public key.
func PubKeyHash(pubKey []byte) []byte {
	return btcutil.Hash160(pubKey)
}

// Decode parses a Base58Check address. Testnet and signet share version
// bytes; such addresses decode as the lower-ordinal network, TestNet.
func Decode(s string) (Address, error) {
	payload, version, err := base58.CheckDecode(s)
	if err != nil {
		return Address{}, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	if len(payload) != HashSize {
		return Address{}, fmt.Errorf("%w: payload is %d bytes", ErrInvalidAddress, len(payload))
	}

	for _, net := range lebowkis.Networks() {
		c := lebowkis.Lookup(net)
		var kind Kind
		switch version {
		case c.PubKeyHashAddrID:
			kind = PayToPubKeyHash
		case c.ScriptHashAddrID:
			kind = PayToScriptHash
		default:
			continue
		}
		return New(payload, kind, net)
	}
	return Address{}, fmt.Errorf("%w: %d", ErrUnknownVersion, version)
}

// IsForNet reports whether the address version belongs to net. Unlike the
// Network field it accounts for networks sharing version bytes.
func (a Address) IsForNet(net lebowkis.Network) bool {
	c := lebowkis.Lookup(net)
	if a.Kind == PayToScriptHash {
		return a.Version() == c.ScriptHashAddrID
	}
	return a.Version() == c.PubKeyHashAddrID
}
