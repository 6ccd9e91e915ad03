// Package chainid maps Lebowkis networks to their 32-byte chain identifiers.
//
// A chain identifier is the genesis block hash in internal (storage) byte
// order, the value BOLT 0 calls chain_hash. Peers exchange it to make sure
// they follow the same chain, independent of the human-readable network name.
//
// Block hashes are stored little-endian and displayed reversed. A ChainID
// keeps the storage order: ChainID.String() is NOT the string a block
// explorer shows for the genesis hash.
package chainid

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/lebowkis/go-lebowkis/lebowkis"
)

// Size is the length of a chain identifier in bytes.
const Size = chainhash.HashSize

var (
	// ErrMismatch is returned when a genesis hash does not belong to the
	// claimed network.
	ErrMismatch = errors.New("chain id mismatch")

	// ErrInvalidLength is returned when decoding a chain id of the wrong size.
	ErrInvalidLength = errors.New("invalid chain id length")
)

// ChainID is the opaque identifier of one chain.
type ChainID [Size]byte

// genesisChainID is the main network genesis hash,
// d14b0d413fcd854d25ca9382888acad7e688995422b6cbcb38dec8ee006b7130 in
// display order, written here in storage order.
var genesisChainID = ChainID{
	0x30, 0x71, 0x6b, 0x00, 0xee, 0xc8, 0xde, 0x38,
	0xcb, 0xcb, 0xb6, 0x22, 0x54, 0x99, 0x88, 0xe6,
	0xd7, 0xca, 0x8a, 0x88, 0x82, 0x93, 0xca, 0x25,
	0x4d, 0x85, 0xcd, 0x3f, 0x41, 0x0d, 0x4b, 0xd1,
}

// Keyed by the variant, not its ordinal, so reordering the enumeration
// cannot hand one network another's identifier. All networks share a
// genesis block and therefore an identifier.
var table = map[lebowkis.Network]ChainID{
	lebowkis.MainNet: genesisChainID,
	lebowkis.TestNet: genesisChainID,
	lebowkis.SigNet:  genesisChainID,
	lebowkis.RegTest: genesisChainID,
}

// For returns the chain identifier of a network.
func For(net lebowkis.Network) ChainID {
	id, ok := table[net]
	if !ok {
		panic("chainid: no identifier for " + net.String())
	}
	return id
}

// FromBlockHash reinterprets a genesis block hash as a chain identifier.
// Bytes are copied in storage order; no reversal takes place.
func FromBlockHash(h chainhash.Hash) ChainID {
	return ChainID(h)
}

// Verify checks that genesisHash is the genesis of net.
func Verify(net lebowkis.Network, genesisHash chainhash.Hash) error {
	want := For(net)
	got := FromBlockHash(genesisHash)
	if got != want {
		return fmt.Errorf("%w: %s genesis %s, got %s", ErrMismatch, net, want.BlockHash(), genesisHash)
	}
	return nil
}

// Networks returns every network whose identifier equals id, in ordinal order.
func Networks(id ChainID) []lebowkis.Network {
	var nets []lebowkis.Network
	for _, n := range lebowkis.Networks() {
		if table[n] == id {
			nets = append(nets, n)
		}
	}
	return nets
}

// BlockHash returns the genesis hash the identifier was derived from.
func (id ChainID) BlockHash() chainhash.Hash {
	return chainhash.Hash(id)
}

// String renders the identifier as hex in storage order.
func (id ChainID) String() string {
	return hex.EncodeToString(id[:])
}

// Bytes returns a copy of the identifier.
func (id ChainID) Bytes() []byte {
	b := make([]byte, Size)
	copy(b, id[:])
	return b
}

// MarshalText implements encoding.TextMarshaler.
func (id ChainID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ChainID) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// Parse decodes a storage-order hex string.
func Parse(s string) (ChainID, error) {
	var id ChainID
	b, err := hex.DecodeString(s)
	if err != nil {
		return id, fmt.Errorf("decode chain id: %w", err)
	}
	if len(b) != Size {
		return id, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidLength, len(b), Size)
	}
	copy(id[:], b)
	return id, nil
}
