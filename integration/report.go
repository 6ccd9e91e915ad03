package integration

// Package integration assembles the outputs of the parameter core into a
// single report per network. The launcher prints these reports and
// operators diff them against other implementations of the network.
//
// Usage:
//   r := integration.Describe(lebowkis.MainNet)
//   all := integration.DescribeAll()
//
// A report is a snapshot: it holds copies of every value, so callers may
// keep or modify it freely.

import (
	"bytes"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/lebowkis/go-lebowkis/lebowkis"
	"github.com/lebowkis/go-lebowkis/lebowkis/chainid"
	"github.com/lebowkis/go-lebowkis/lebowkis/genesis"
)

// Report bundles everything the core derives for one network.
type Report struct {
	Network   lebowkis.Network `json:"network"`
	Constants ConstantsReport  `json:"constants"`
	Genesis   GenesisReport    `json:"genesis"`
	ChainID   chainid.ChainID  `json:"chainId"`
}

// ConstantsReport is the JSON view of lebowkis.ConsensusConstants.
type ConstantsReport struct {
	PubKeyHashAddrID             hexutil.Uint64 `json:"pubKeyHashAddrId"`
	ScriptHashAddrID             hexutil.Uint64 `json:"scriptHashAddrId"`
	Magic                        hexutil.Bytes  `json:"magic"`
	MaxBlockWeight               uint32         `json:"maxBlockWeight"`
	MinTransactionWeight         uint32         `json:"minTransactionWeight"`
	WitnessScaleFactor           int            `json:"witnessScaleFactor"`
	MaxBlockSigOpsCost           int64          `json:"maxBlockSigOpsCost"`
	MaxScriptElementSize         int            `json:"maxScriptElementSize"`
	MaxScriptNumValue            uint32         `json:"maxScriptNumValue"`
	SubsidyHalvingInterval       uint32         `json:"subsidyHalvingInterval"`
	CoinbaseMaturity             uint32         `json:"coinbaseMaturity"`
	TargetBlockSpacing           string         `json:"targetBlockSpacing"`
	DifficultyAdjustmentInterval uint32         `json:"difficultyAdjustmentInterval"`
	DifficultyAdjustmentTimespan string         `json:"difficultyAdjustmentTimespan"`
}

// GenesisReport describes the genesis block. Hashes use display order.
type GenesisReport struct {
	Hash       string        `json:"hash"`
	MerkleRoot string        `json:"merkleRoot"`
	PrevBlock  string        `json:"prevBlock"`
	Version    int32         `json:"version"`
	Time       uint32        `json:"time"`
	Timestamp  string        `json:"timestamp"`
	Bits       string        `json:"bits"`
	Nonce      uint32        `json:"nonce"`
	TxID       string        `json:"txid"`
	Header     hexutil.Bytes `json:"header"`
	Tx         hexutil.Bytes `json:"tx"`
	Size       int           `json:"size"`
}

// Describe builds the report of one network.
func Describe(net lebowkis.Network) Report {
	return Report{
		Network:   net,
		Constants: describeConstants(lebowkis.Lookup(net)),
		Genesis:   describeGenesis(net),
		ChainID:   chainid.For(net),
	}
}

// DescribeAll builds reports for every network in ordinal order.
func DescribeAll() []Report {
	nets := lebowkis.Networks()
	reports := make([]Report, 0, len(nets))
	for _, n := range nets {
		reports = append(reports, Describe(n))
	}
	return reports
}

func describeConstants(c lebowkis.ConsensusConstants) ConstantsReport {
	return ConstantsReport{
		PubKeyHashAddrID:             hexutil.Uint64(c.PubKeyHashAddrID),
		ScriptHashAddrID:             hexutil.Uint64(c.ScriptHashAddrID),
		Magic:                        hexutil.Bytes(c.Magic[:]),
		MaxBlockWeight:               c.MaxBlockWeight,
		MinTransactionWeight:         c.MinTransactionWeight,
		WitnessScaleFactor:           c.WitnessScaleFactor,
		MaxBlockSigOpsCost:           c.MaxBlockSigOpsCost,
		MaxScriptElementSize:         c.MaxScriptElementSize,
		MaxScriptNumValue:            c.MaxScriptNumValue,
		SubsidyHalvingInterval:       c.SubsidyHalvingInterval,
		CoinbaseMaturity:             c.CoinbaseMaturity,
		TargetBlockSpacing:           c.TargetBlockSpacing.String(),
		DifficultyAdjustmentInterval: c.DifficultyAdjustmentInterval,
		DifficultyAdjustmentTimespan: c.DifficultyAdjustmentTimespan.String(),
	}
}

func describeGenesis(net lebowkis.Network) GenesisReport {
	block := genesis.Block(net)
	hdr := block.Header
	tx := block.Transactions[0]

	// Serializing into a bytes.Buffer cannot fail.
	var hdrBuf, txBuf bytes.Buffer
	_ = hdr.Serialize(&hdrBuf)
	_ = tx.Serialize(&txBuf)

	return GenesisReport{
		Hash:       hdr.BlockHash().String(),
		MerkleRoot: hdr.MerkleRoot.String(),
		PrevBlock:  hdr.PrevBlock.String(),
		Version:    hdr.Version,
		Time:       uint32(hdr.Timestamp.Unix()),
		Timestamp:  hdr.Timestamp.UTC().Format(time.RFC3339),
		Bits:       fmt.Sprintf("0x%08x", hdr.Bits),
		Nonce:      hdr.Nonce,
		TxID:       tx.TxHash().String(),
		Header:     hdrBuf.Bytes(),
		Tx:         txBuf.Bytes(),
		Size:       block.SerializeSize(),
	}
}
