package genesis

import (
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"

	"github.com/lebowkis/go-lebowkis/lebowkis"
)

// headerFields are the literal header values that may differ per network.
type headerFields struct {
	version   int32
	timestamp int64
	bits      uint32
	nonce     uint32
}

// Every network launches from the same genesis. Keep the rows separate so a
// network can diverge without touching the others.
var headers = map[lebowkis.Network]headerFields{
	lebowkis.MainNet: {version: 1, timestamp: 1374378315, bits: 0x1e0ffff0, nonce: 1369296945},
	lebowkis.TestNet: {version: 1, timestamp: 1374378315, bits: 0x1e0ffff0, nonce: 1369296945},
	lebowkis.SigNet:  {version: 1, timestamp: 1374378315, bits: 0x1e0ffff0, nonce: 1369296945},
	lebowkis.RegTest: {version: 1, timestamp: 1374378315, bits: 0x1e0ffff0, nonce: 1369296945},
}

// Header returns the genesis block header of a network.
func Header(net lebowkis.Network) wire.BlockHeader {
	return header(net, MerkleRoot())
}

func header(net lebowkis.Network, merkleRoot chainhash.Hash) wire.BlockHeader {
	f, ok := headers[net]
	if !ok {
		panic("genesis: no header for " + net.String())
	}
	return wire.BlockHeader{
		Version:    f.version,
		PrevBlock:  chainhash.Hash{}, // nothing precedes genesis
		MerkleRoot: merkleRoot,
		Timestamp:  time.Unix(f.timestamp, 0),
		Bits:       f.bits,
		Nonce:      f.nonce,
	}
}

// Block constructs the genesis block of a network. The result depends only on
// net and is rebuilt on every call.
func Block(net lebowkis.Network) *wire.MsgBlock {
	tx := Tx()
	hdr := header(net, tx.TxHash())
	return &wire.MsgBlock{
		Header:       hdr,
		Transactions: []*wire.MsgTx{tx},
	}
}

// Hash returns the genesis block hash of a network in internal byte order.
// Use Hash(net).String() for the reversed display form.
func Hash(net lebowkis.Network) chainhash.Hash {
	hdr := Header(net)
	return hdr.BlockHash()
}
