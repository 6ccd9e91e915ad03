package lebowkis

import (
	"encoding/hex"
	"time"
)

// Consensus limits shared by every network. They are logically scoped per
// chain (see ConsensusConstants) but carry the same value everywhere.
const (
	// MaxBlockWeight is the maximum allowed weight of a block (BIP 141 rule).
	MaxBlockWeight uint32 = 4_000_000

	// MinTransactionWeight is the weight of the smallest valid serialized transaction.
	MinTransactionWeight uint32 = 4 * 60

	// WitnessScaleFactor multiplies non-witness bytes during weight calculation.
	WitnessScaleFactor = 4

	// MaxBlockSigOpsCost caps signature check operations in a block.
	MaxBlockSigOpsCost int64 = 80_000

	// MaxScriptElementSize is the largest single push allowed in a script.
	MaxScriptElementSize = 520

	// MaxScriptNumValue is the exclusive upper bound of a script integer (2^31).
	MaxScriptNumValue uint32 = 0x80000000

	// SubsidyHalvingInterval is the number of blocks between reward halvings.
	SubsidyHalvingInterval uint32 = 210_000

	// CoinbaseMaturity is how deep a coinbase output must be before it is spendable.
	CoinbaseMaturity uint32 = 100

	// TargetBlockSpacing is the expected average time between blocks.
	TargetBlockSpacing = 60 * time.Second

	// DifficultyAdjustmentInterval is the number of blocks between difficulty changes.
	DifficultyAdjustmentInterval uint32 = 240

	// DifficultyAdjustmentTimespan is the expected duration of one adjustment window.
	DifficultyAdjustmentTimespan = 4 * time.Hour
)

// Address version bytes. Testnet and signet share theirs.
const (
	PubKeyHashAddrIDMain    byte = 12
	ScriptHashAddrIDMain    byte = 8
	PubKeyHashAddrIDTest    byte = 13
	ScriptHashAddrIDTest    byte = 9
	PubKeyHashAddrIDRegTest byte = 47
	ScriptHashAddrIDRegTest byte = 5
)

// Magic is the four byte message-start marker of a network, in wire order.
type Magic [4]byte

// String renders the magic as lowercase hex in wire order.
func (m Magic) String() string {
	return hex.EncodeToString(m[:])
}

// ConsensusConstants is the immutable parameter record of one network.
// Values are copied out of the package tables; mutating a returned record
// has no effect on later lookups.
type ConsensusConstants struct {
	Network Network

	// Address encoding
	PubKeyHashAddrID byte // version byte of pay-to-pubkey-hash addresses
	ScriptHashAddrID byte // version byte of pay-to-script-hash addresses

	// Magic marks the start of every peer message on this network.
	Magic Magic

	// Block limits
	MaxBlockWeight       uint32
	MinTransactionWeight uint32
	WitnessScaleFactor   int
	MaxBlockSigOpsCost   int64
	MaxScriptElementSize int
	MaxScriptNumValue    uint32

	// Issuance
	SubsidyHalvingInterval uint32
	CoinbaseMaturity       uint32

	// Timing
	TargetBlockSpacing           time.Duration
	DifficultyAdjustmentInterval uint32
	DifficultyAdjustmentTimespan time.Duration
}

type addrIDs struct {
	pubKeyHash byte
	scriptHash byte
}

// Per-network tables. Each is keyed by the variant itself so reordering
// the enumeration cannot silently shift a value to another network.
var (
	addressIDs = map[Network]addrIDs{
		MainNet: {PubKeyHashAddrIDMain, ScriptHashAddrIDMain},
		TestNet: {PubKeyHashAddrIDTest, ScriptHashAddrIDTest},
		SigNet:  {PubKeyHashAddrIDTest, ScriptHashAddrIDTest},
		RegTest: {PubKeyHashAddrIDRegTest, ScriptHashAddrIDRegTest},
	}

	magics = map[Network]Magic{
		MainNet: {0xcc, 0xf1, 0xc0, 0xee},
		TestNet: {0xfc, 0xc1, 0xb7, 0xdc},
		SigNet:  {0xfc, 0xc1, 0xb7, 0xdc},
		RegTest: {0xc0, 0xc0, 0xc0, 0xc0},
	}
)

// Lookup returns the consensus constants of a network. It is total over the
// declared variants and panics only for values forged by integer conversion.
func Lookup(n Network) ConsensusConstants {
	n.mustValid()
	ids := addressIDs[n]
	return ConsensusConstants{
		Network:          n,
		PubKeyHashAddrID: ids.pubKeyHash,
		ScriptHashAddrID: ids.scriptHash,
		Magic:            magics[n],

		MaxBlockWeight:       MaxBlockWeight,
		MinTransactionWeight: MinTransactionWeight,
		WitnessScaleFactor:   WitnessScaleFactor,
		MaxBlockSigOpsCost:   MaxBlockSigOpsCost,
		MaxScriptElementSize: MaxScriptElementSize,
		MaxScriptNumValue:    MaxScriptNumValue,

		SubsidyHalvingInterval: SubsidyHalvingInterval,
		CoinbaseMaturity:       CoinbaseMaturity,

		TargetBlockSpacing:           TargetBlockSpacing,
		DifficultyAdjustmentInterval: DifficultyAdjustmentInterval,
		DifficultyAdjustmentTimespan: DifficultyAdjustmentTimespan,
	}
}

// Params is shorthand for Lookup(n).
func (n Network) Params() ConsensusConstants {
	return Lookup(n)
}

// Magic returns the wire magic of the network.
func (n Network) Magic() Magic {
	n.mustValid()
	return magics[n]
}

// NetworkForMagic resolves wire magic back to the first network, in ordinal
// order, that uses it. TestNet and SigNet share magic, so SigNet is never
// returned.
func NetworkForMagic(m Magic) (Network, bool) {
	for _, n := range Networks() {
		if magics[n] == m {
			return n, true
		}
	}
	return 0, false
}
