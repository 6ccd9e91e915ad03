package launcher

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/sirupsen/logrus"
	"gopkg.in/urfave/cli.v1"

	"github.com/lebowkis/go-lebowkis/address"
	"github.com/lebowkis/go-lebowkis/flags"
	"github.com/lebowkis/go-lebowkis/integration"
	"github.com/lebowkis/go-lebowkis/lebowkis"
	"github.com/lebowkis/go-lebowkis/lebowkis/chainid"
)

// ErrUsage is returned when a command receives an invalid flag combination.
var ErrUsage = errors.New("invalid usage")

func commands() []cli.Command {
	cmds := []cli.Command{
		{
			Name:   "params",
			Usage:  "Print the consensus constants of the selected network",
			Action: paramsCmd,
		},
		{
			Name:   "genesis",
			Usage:  "Build the genesis block of the selected network and print it",
			Action: genesisCmd,
		},
		{
			Name:   "chainid",
			Usage:  "Print the chain id of the selected network",
			Action: chainIDCmd,
		},
		{
			Name:   "verify",
			Usage:  "Check a genesis hash or chain id against the selected network",
			Flags:  flags.VerifyFlags(),
			Action: verifyCmd,
		},
		{
			Name:   "address",
			Usage:  "Encode or decode a Base58Check address for the selected network",
			Flags:  flags.AddressFlags(),
			Action: addressCmd,
		},
		{
			Name:  "describe",
			Usage: "Print the full report (constants, genesis, chain id)",
			Flags: []cli.Flag{
				cli.BoolFlag{Name: "all", Usage: "Describe every network"},
			},
			Action: describeCmd,
		},
	}
	// Accept --network after the command name as well as before it.
	for i := range cmds {
		cmds[i].Flags = append(cmds[i].Flags, flags.NetworkFlags()...)
	}
	return cmds
}

// setup resolves the merged config and the logger for a command.
func setup(ctx *cli.Context) (Config, *logrus.Logger, error) {
	cfg, err := MakeAllConfigs(ctx)
	if err != nil {
		return Config{}, nil, err
	}
	log, err := newLogger(cfg.Logging, ctx.App.ErrWriter)
	if err != nil {
		return Config{}, nil, err
	}
	log.WithFields(logrus.Fields{
		"command": ctx.Command.Name,
		"network": cfg.Network,
	}).Debug("Config resolved")
	return cfg, log, nil
}

func paramsCmd(ctx *cli.Context) error {
	cfg, _, err := setup(ctx)
	if err != nil {
		return err
	}
	r := integration.Describe(cfg.Network)
	return emit(ctx.App.Writer, cfg.Output, r.Constants, func(w io.Writer) {
		c := lebowkis.Lookup(cfg.Network)
		fmt.Fprintf(w, "network:                        %s\n", c.Network)
		fmt.Fprintf(w, "magic:                          %s\n", c.Magic)
		fmt.Fprintf(w, "pubkey hash address id:         %d\n", c.PubKeyHashAddrID)
		fmt.Fprintf(w, "script hash address id:         %d\n", c.ScriptHashAddrID)
		fmt.Fprintf(w, "max block weight:               %d\n", c.MaxBlockWeight)
		fmt.Fprintf(w, "min transaction weight:         %d\n", c.MinTransactionWeight)
		fmt.Fprintf(w, "witness scale factor:           %d\n", c.WitnessScaleFactor)
		fmt.Fprintf(w, "max block sigops cost:          %d\n", c.MaxBlockSigOpsCost)
		fmt.Fprintf(w, "max script element size:        %d\n", c.MaxScriptElementSize)
		fmt.Fprintf(w, "max script num value:           %d\n", c.MaxScriptNumValue)
		fmt.Fprintf(w, "subsidy halving interval:       %d\n", c.SubsidyHalvingInterval)
		fmt.Fprintf(w, "coinbase maturity:              %d\n", c.CoinbaseMaturity)
		fmt.Fprintf(w, "target block spacing:           %s\n", c.TargetBlockSpacing)
		fmt.Fprintf(w, "difficulty adjustment interval: %d\n", c.DifficultyAdjustmentInterval)
		fmt.Fprintf(w, "difficulty adjustment timespan: %s\n", c.DifficultyAdjustmentTimespan)
	})
}

func genesisCmd(ctx *cli.Context) error {
	cfg, log, err := setup(ctx)
	if err != nil {
		return err
	}
	g := integration.Describe(cfg.Network).Genesis
	log.WithField("hash", g.Hash).Info("Genesis block built")

	return emit(ctx.App.Writer, cfg.Output, g, func(w io.Writer) {
		fmt.Fprintf(w, "hash:        %s\n", g.Hash)
		fmt.Fprintf(w, "version:     %d\n", g.Version)
		fmt.Fprintf(w, "prev block:  %s\n", g.PrevBlock)
		fmt.Fprintf(w, "merkle root: %s\n", g.MerkleRoot)
		fmt.Fprintf(w, "time:        %d (%s)\n", g.Time, g.Timestamp)
		fmt.Fprintf(w, "bits:        %s\n", g.Bits)
		fmt.Fprintf(w, "nonce:       %d\n", g.Nonce)
		fmt.Fprintf(w, "txid:        %s\n", g.TxID)
		fmt.Fprintf(w, "size:        %d\n", g.Size)
	})
}

func chainIDCmd(ctx *cli.Context) error {
	cfg, _, err := setup(ctx)
	if err != nil {
		return err
	}
	id := chainid.For(cfg.Network)
	out := struct {
		Network lebowkis.Network `json:"network"`
		ChainID chainid.ChainID  `json:"chainId"`
	}{cfg.Network, id}

	return emit(ctx.App.Writer, cfg.Output, out, func(w io.Writer) {
		fmt.Fprintln(w, id)
	})
}

func verifyCmd(ctx *cli.Context) error {
	cfg, log, err := setup(ctx)
	if err != nil {
		return err
	}

	hashHex, idHex := ctx.String("hash"), ctx.String("chainid")
	if (hashHex == "") == (idHex == "") {
		return fmt.Errorf("%w: verify needs exactly one of --hash or --chainid", ErrUsage)
	}

	var h chainhash.Hash
	if hashHex != "" {
		parsed, err := chainhash.NewHashFromStr(hashHex)
		if err != nil {
			return fmt.Errorf("parse --hash: %w", err)
		}
		h = *parsed
	} else {
		id, err := chainid.Parse(idHex)
		if err != nil {
			return fmt.Errorf("parse --chainid: %w", err)
		}
		h = id.BlockHash()
	}

	if err := chainid.Verify(cfg.Network, h); err != nil {
		log.WithError(err).Warn("Genesis verification failed")
		return err
	}
	log.WithField("network", cfg.Network).Info("Genesis verified")

	out := struct {
		Network lebowkis.Network `json:"network"`
		OK      bool             `json:"ok"`
	}{cfg.Network, true}
	return emit(ctx.App.Writer, cfg.Output, out, func(w io.Writer) {
		fmt.Fprintf(w, "ok: %s genesis %s\n", cfg.Network, h)
	})
}

type addressOutput struct {
	Address string           `json:"address"`
	Network lebowkis.Network `json:"network"`
	Kind    string           `json:"kind"`
	Hash160 hexutil.Bytes    `json:"hash160"`
}

func addressCmd(ctx *cli.Context) error {
	cfg, _, err := setup(ctx)
	if err != nil {
		return err
	}

	var a address.Address
	if s := ctx.String("decode"); s != "" {
		a, err = address.Decode(s)
		if err != nil {
			return err
		}
	} else {
		a, err = addressFromFlags(ctx, cfg.Network)
		if err != nil {
			return err
		}
	}

	out := addressOutput{
		Address: a.String(),
		Network: a.Network,
		Kind:    a.Kind.String(),
		Hash160: a.Hash[:],
	}
	return emit(ctx.App.Writer, cfg.Output, out, func(w io.Writer) {
		fmt.Fprintln(w, out.Address)
	})
}

func addressFromFlags(ctx *cli.Context, net lebowkis.Network) (address.Address, error) {
	var given []string
	for _, name := range []string{"hash160", "pubkey", "script"} {
		if ctx.String(name) != "" {
			given = append(given, "--"+name)
		}
	}
	if len(given) != 1 {
		return address.Address{}, fmt.Errorf("%w: address needs exactly one of --hash160, --pubkey, --script or --decode (got %s)",
			ErrUsage, strings.Join(given, ", "))
	}

	switch {
	case ctx.String("pubkey") != "":
		b, err := decodeHex(ctx.String("pubkey"))
		if err != nil {
			return address.Address{}, fmt.Errorf("parse --pubkey: %w", err)
		}
		return address.New(address.PubKeyHash(b), address.PayToPubKeyHash, net)
	case ctx.String("script") != "":
		b, err := decodeHex(ctx.String("script"))
		if err != nil {
			return address.Address{}, fmt.Errorf("parse --script: %w", err)
		}
		return address.New(address.ScriptHash(b), address.PayToScriptHash, net)
	default:
		b, err := decodeHex(ctx.String("hash160"))
		if err != nil {
			return address.Address{}, fmt.Errorf("parse --hash160: %w", err)
		}
		kind := address.PayToPubKeyHash
		if ctx.Bool("p2sh") {
			kind = address.PayToScriptHash
		}
		return address.New(b, kind, net)
	}
}

func describeCmd(ctx *cli.Context) error {
	cfg, _, err := setup(ctx)
	if err != nil {
		return err
	}

	reports := []integration.Report{integration.Describe(cfg.Network)}
	if ctx.Bool("all") {
		reports = integration.DescribeAll()
	}

	var payload interface{} = reports
	if len(reports) == 1 {
		payload = reports[0]
	}
	return emit(ctx.App.Writer, cfg.Output, payload, func(w io.Writer) {
		for _, r := range reports {
			fmt.Fprintf(w, "%-8s magic=%s p2pkh=%d p2sh=%d genesis=%s chainid=%s\n",
				r.Network, lebowkis.Lookup(r.Network).Magic,
				uint64(r.Constants.PubKeyHashAddrID), uint64(r.Constants.ScriptHashAddrID),
				r.Genesis.Hash, r.ChainID)
		}
	})
}

// emit writes v as indented JSON or calls text to render it.
func emit(w io.Writer, format string, v interface{}, text func(io.Writer)) error {
	if format == outputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	text(w)
	return nil
}

// decodeHex accepts hex with or without a 0x prefix.
func decodeHex(s string) ([]byte, error) {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	return hexutil.Decode(s)
}
