// Package genesis builds the genesis block shared by every Lebowkis network.
//
// The genesis block is the fixed point of the hash chain: every other block
// links back to it and its hash seeds the chain identifier. Nothing here reads
// external input, so two builds always serialize to identical bytes.
package genesis

import (
	"encoding/hex"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
)

const (
	// CoinbaseMessage is the payload of the genesis script-sig. It timestamps
	// the launch and shows the block was not premined.
	CoinbaseMessage = "Six Flags coaster victim concerned about seat. USAToday - 07.20.2013"

	// CoinbaseValue is the genesis reward in base units (19.98 LBW).
	CoinbaseValue int64 = 1_998_000_000

	// coinbaseBits is the first integer pushed by the script-sig.
	coinbaseBits int64 = 486604799

	// coinbaseExtraNonce is pushed with a non-minimal encoding.
	coinbaseExtraNonce byte = 4

	// TxVersion is the format version of the genesis transaction.
	TxVersion int32 = 1
)

// coinbasePubKey is the uncompressed public key paid by the genesis output.
var coinbasePubKey = mustDecodeHex("040184710fa689ad5023690c80f3a49c8f13f8d45b8c857fbcbc8bc4a8e4d3eb4b10f4d4604fa08dce601aaf0f470216fe1b51850b4acf21b179c45070ac7b03a9")

// SigScript returns the genesis input script:
// <486604799> <4 as OP_DATA_1 0x04> <CoinbaseMessage>.
func SigScript() []byte {
	return mustScript(txscript.NewScriptBuilder().
		AddInt64(coinbaseBits).
		// AddData would shorten a one byte push of 4 to OP_4.
		AddOps([]byte{txscript.OP_DATA_1, coinbaseExtraNonce}).
		AddData([]byte(CoinbaseMessage)))
}

// PkScript returns the genesis output script: <pubkey> OP_CHECKSIG.
func PkScript() []byte {
	return mustScript(txscript.NewScriptBuilder().
		AddData(coinbasePubKey).
		AddOp(txscript.OP_CHECKSIG))
}

// Tx constructs the coinbase transaction of the genesis block.
//
// The transaction is network agnostic. Every call returns a fresh value, so
// callers may modify the result without affecting later builds.
func Tx() *wire.MsgTx {
	tx := wire.NewMsgTx(TxVersion)

	// One input spending the null outpoint with an empty witness.
	prevOut := wire.NewOutPoint(&chainhash.Hash{}, wire.MaxPrevOutIndex)
	in := wire.NewTxIn(prevOut, SigScript(), nil)
	in.Sequence = wire.MaxTxInSequenceNum
	tx.AddTxIn(in)

	tx.AddTxOut(wire.NewTxOut(CoinbaseValue, PkScript()))
	tx.LockTime = 0
	return tx
}

// MerkleRoot returns the merkle root of the genesis transaction list. With a
// single leaf the root is the leaf itself, i.e. the txid.
func MerkleRoot() chainhash.Hash {
	return Tx().TxHash()
}

func mustScript(b *txscript.ScriptBuilder) []byte {
	script, err := b.Script()
	if err != nil {
		panic("genesis: invalid script: " + err.Error())
	}
	return script
}

func mustDecodeHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic("genesis: invalid hex literal: " + err.Error())
	}
	return b
}
