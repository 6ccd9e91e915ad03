package genesis

import (
	"bytes"
	"encoding/hex"
	"sync"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lebowkis/go-lebowkis/lebowkis"
)

const (
	// Display (reversed) forms.
	wantMerkleRoot = "a3672b7d42fe5cbb293f7924e4f6d4890a466ccf18e9327a12aeac1ef5d1590f"
	wantBlockHash  = "d14b0d413fcd854d25ca9382888acad7e688995422b6cbcb38dec8ee006b7130"

	wantSigScript = "04ffff001d0104" +
		"4453697820466c61677320636f61737465722076696374696d20636f6e6365726e65642061626f757420736561742e20555341546f646179202d2030372e32302e32303133"
	wantPkScript = "41040184710fa689ad5023690c80f3a49c8f13f8d45b8c857fbcbc8bc4a8e4d3eb4b10f4d4604fa08dce601aaf0f470216fe1b51850b4acf21b179c45070ac7b03a9ac"

	wantTx = "01000000" + // version
		"01" + // input count
		"0000000000000000000000000000000000000000000000000000000000000000ffffffff" + // null outpoint
		"4c" + wantSigScript +
		"ffffffff" + // sequence
		"01" + // output count
		"800f177700000000" + // 1998000000
		"43" + wantPkScript +
		"00000000" // lock time

	wantHeader = "01000000" +
		"0000000000000000000000000000000000000000000000000000000000000000" +
		"0f59d1f51eacae127a32e918cf6c460a89d4f6e424793f29bb5cfe427d2b67a3" +
		"4b59eb51" + // 1374378315
		"f0ff0f1e" + // 0x1e0ffff0
		"31d09d51" // 1369296945
)

func serializeTx(t *testing.T, tx *wire.MsgTx) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, tx.Serialize(&buf))
	return buf.Bytes()
}

func serializeBlock(t *testing.T, b *wire.MsgBlock) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, b.Serialize(&buf))
	return buf.Bytes()
}

// TestGenesisTx checks every field of the coinbase transaction.
func TestGenesisTx(t *testing.T) {
	tx := Tx()

	require.Len(t, tx.TxIn, 1)
	require.Len(t, tx.TxOut, 1)
	assert.Equal(t, int32(1), tx.Version)
	assert.Equal(t, uint32(0), tx.LockTime)

	in := tx.TxIn[0]
	assert.Equal(t, chainhash.Hash{}, in.PreviousOutPoint.Hash)
	assert.Equal(t, uint32(0xffffffff), in.PreviousOutPoint.Index)
	assert.Equal(t, uint32(0xffffffff), in.Sequence)
	assert.Empty(t, in.Witness)
	assert.False(t, tx.HasWitness())
	assert.Equal(t, wantSigScript, hex.EncodeToString(in.SignatureScript))

	out := tx.TxOut[0]
	assert.Equal(t, int64(1_998_000_000), out.Value)
	assert.Equal(t, wantPkScript, hex.EncodeToString(out.PkScript))

	assert.Equal(t, wantTx, hex.EncodeToString(serializeTx(t, tx)))
	assert.Equal(t, wantMerkleRoot, tx.TxHash().String())
	// no witness, so wtxid == txid
	assert.Equal(t, tx.TxHash(), tx.WitnessHash())
}

// TestSigScriptNonMinimalPush ensures the second push stays OP_DATA_1 0x04
// rather than collapsing into OP_4.
func TestSigScriptNonMinimalPush(t *testing.T) {
	script := SigScript()
	require.True(t, len(script) > 7)
	assert.Equal(t, []byte{0x04, 0xff, 0xff, 0x00, 0x1d}, script[:5])
	assert.Equal(t, []byte{0x01, 0x04}, script[5:7])
	assert.NotEqual(t, byte(0x54), script[5], "OP_4 must not be used")
	assert.Equal(t, byte(len(CoinbaseMessage)), script[7])
	assert.Equal(t, CoinbaseMessage, string(script[8:]))
}

func TestPkScript(t *testing.T) {
	script := PkScript()
	require.Len(t, script, 67)
	assert.Equal(t, byte(0x41), script[0])
	assert.Equal(t, byte(0xac), script[66])
}

// TestGenesisTxDeterministic builds the transaction repeatedly and checks that
// mutating one result does not leak into the next.
func TestGenesisTxDeterministic(t *testing.T) {
	first := Tx()
	want := serializeTx(t, first)

	first.TxIn[0].SignatureScript[0] = 0x00
	first.TxOut[0].Value = 1

	for i := 0; i < 3; i++ {
		got := serializeTx(t, Tx())
		require.True(t, bytes.Equal(want, got), "build %d differs", i)
	}
}

// TestMainNetGenesisBlock is the concrete main network scenario.
func TestMainNetGenesisBlock(t *testing.T) {
	block := Block(lebowkis.MainNet)
	hdr := block.Header

	assert.Equal(t, int32(1), hdr.Version)
	assert.Equal(t, chainhash.Hash{}, hdr.PrevBlock)
	assert.Equal(t, wantMerkleRoot, hdr.MerkleRoot.String())
	assert.Equal(t, int64(1374378315), hdr.Timestamp.Unix())
	assert.Equal(t, uint32(0x1e0ffff0), hdr.Bits)
	assert.Equal(t, uint32(1369296945), hdr.Nonce)

	require.Len(t, block.Transactions, 1)
	assert.Equal(t, Tx().TxHash(), block.Transactions[0].TxHash())

	var buf bytes.Buffer
	require.NoError(t, hdr.Serialize(&buf))
	assert.Equal(t, wantHeader, hex.EncodeToString(buf.Bytes()))

	assert.Equal(t, wantBlockHash, block.BlockHash().String())
	assert.Equal(t, wantBlockHash, Hash(lebowkis.MainNet).String())
}

// TestGenesisBlockPerNetwork runs the determinism and sharing properties
// for every network.
func TestGenesisBlockPerNetwork(t *testing.T) {
	mainHash := Hash(lebowkis.MainNet)

	for _, net := range lebowkis.Networks() {
		t.Run(net.String(), func(t *testing.T) {
			a := serializeBlock(t, Block(net))
			b := serializeBlock(t, Block(net))
			require.True(t, bytes.Equal(a, b), "two builds differ")

			// header (80) + tx count (1) + tx
			assert.Len(t, a, 80+1+len(wantTx)/2)
			assert.Equal(t, wantHeader, hex.EncodeToString(a[:80]))

			// all networks launch from the same block
			assert.Equal(t, mainHash, Hash(net))
			assert.Equal(t, MerkleRoot(), Header(net).MerkleRoot)
		})
	}
}

// TestHashByteOrder pins the difference between the internal and display
// byte orders of the genesis hash.
func TestHashByteOrder(t *testing.T) {
	h := Hash(lebowkis.MainNet)
	raw := hex.EncodeToString(h[:])

	assert.Equal(t, "30716b00eec8de38cbcbb622549988e6d7ca8a888293ca254d85cd3f410d4bd1", raw)
	assert.NotEqual(t, raw, h.String())

	parsed, err := chainhash.NewHashFromStr(wantBlockHash)
	require.NoError(t, err)
	assert.Equal(t, h, *parsed)
}

func TestTablesCoverEveryNetwork(t *testing.T) {
	for _, net := range lebowkis.Networks() {
		_, ok := headers[net]
		assert.True(t, ok, "headers missing %s", net)
	}
	assert.Len(t, headers, len(lebowkis.Networks()))
	assert.Panics(t, func() { Block(lebowkis.Network(99)) })
}

func TestGenesisConcurrentBuilds(t *testing.T) {
	want := Hash(lebowkis.RegTest)

	var wg sync.WaitGroup
	hashes := make([]chainhash.Hash, 32)
	for i := range hashes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			hashes[i] = Block(lebowkis.Networks()[i%4]).BlockHash()
		}(i)
	}
	wg.Wait()

	for _, h := range hashes {
		assert.Equal(t, want, h)
	}
}
