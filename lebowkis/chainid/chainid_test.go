package chainid

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lebowkis/go-lebowkis/lebowkis"
	"github.com/lebowkis/go-lebowkis/lebowkis/genesis"
)

// TestChainIDMatchesGenesis is the regression check that the literal table
// agrees with the hash of the constructed genesis block of every network.
func TestChainIDMatchesGenesis(t *testing.T) {
	for _, net := range lebowkis.Networks() {
		t.Run(net.String(), func(t *testing.T) {
			h := genesis.Hash(net)

			// Compare hex strings in storage order; the display form of a
			// block hash is reversed and must not be used here.
			want := hex.EncodeToString(h[:])
			got := For(net).String()
			require.Equal(t, want, got)

			assert.Equal(t, For(net), FromBlockHash(h))
			assert.NoError(t, Verify(net, h))
			assert.Equal(t, h, For(net).BlockHash())
		})
	}
}

// TestChainIDByteOrder shows what happens when the display order leaks in.
func TestChainIDByteOrder(t *testing.T) {
	id := For(lebowkis.MainNet)
	assert.Equal(t, "30716b00eec8de38cbcbb622549988e6d7ca8a888293ca254d85cd3f410d4bd1", id.String())
	assert.Equal(t, "d14b0d413fcd854d25ca9382888acad7e688995422b6cbcb38dec8ee006b7130", id.BlockHash().String())

	reversed := chainhash.Hash(id)
	for i, j := 0, len(reversed)-1; i < j; i, j = i+1, j-1 {
		reversed[i], reversed[j] = reversed[j], reversed[i]
	}

	err := Verify(lebowkis.MainNet, reversed)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMismatch))
}

func TestVerifyRejectsForeignGenesis(t *testing.T) {
	// bitcoin mainnet genesis
	btc, err := chainhash.NewHashFromStr("000000000019d6689c085ae165831e934ff763ae46a2a6c172b3f1b60a8ce26f")
	require.NoError(t, err)

	for _, net := range lebowkis.Networks() {
		err := Verify(net, *btc)
		assert.True(t, errors.Is(err, ErrMismatch), "%s: %v", net, err)
	}
}

func TestNetworksForChainID(t *testing.T) {
	assert.Equal(t, lebowkis.Networks(), Networks(For(lebowkis.RegTest)))
	assert.Empty(t, Networks(ChainID{}))
}

func TestTableCoversEveryNetwork(t *testing.T) {
	for _, net := range lebowkis.Networks() {
		_, ok := table[net]
		assert.True(t, ok, "table missing %s", net)
	}
	assert.Len(t, table, len(lebowkis.Networks()))
	assert.Panics(t, func() { For(lebowkis.Network(7)) })
}

func TestParse(t *testing.T) {
	id, err := Parse("30716b00eec8de38cbcbb622549988e6d7ca8a888293ca254d85cd3f410d4bd1")
	require.NoError(t, err)
	assert.Equal(t, For(lebowkis.MainNet), id)

	_, err = Parse("3071")
	assert.True(t, errors.Is(err, ErrInvalidLength))

	_, err = Parse("zz")
	assert.Error(t, err)
}

func TestChainIDJSON(t *testing.T) {
	out, err := json.Marshal(map[string]ChainID{"chain_id": For(lebowkis.TestNet)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"chain_id":"30716b00eec8de38cbcbb622549988e6d7ca8a888293ca254d85cd3f410d4bd1"}`, string(out))

	var in struct {
		ChainID ChainID `json:"chain_id"`
	}
	require.NoError(t, json.Unmarshal(out, &in))
	assert.Equal(t, For(lebowkis.TestNet), in.ChainID)
}

func TestBytesIsCopy(t *testing.T) {
	b := For(lebowkis.MainNet).Bytes()
	b[0] = 0xff
	assert.Equal(t, byte(0x30), For(lebowkis.MainNet)[0])
}

func TestForConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	ids := make([]ChainID, 32)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i] = For(lebowkis.Networks()[i%4])
		}(i)
	}
	wg.Wait()
	for _, id := range ids {
		assert.Equal(t, genesisChainID, id)
	}
}
