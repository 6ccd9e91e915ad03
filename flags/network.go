package flags

import (
	"gopkg.in/urfave/cli.v1"
)

// NetworkFlags selects which member of the network family a command acts on.

func NetworkFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "network",
			Usage: "Network to operate on (main|test|signet|regtest)",
			Value: "main",
		},
	}
}

// VerifyFlags are the inputs of the verify command. Exactly one is required.
func VerifyFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "hash",
			Usage: "Genesis block hash in display (reversed) hex order",
		},
		cli.StringFlag{
			Name:  "chainid",
			Usage: "Chain id in storage-order hex, as exchanged by peers",
		},
	}
}

// AddressFlags are the inputs of the address command. Exactly one of
// hash160, pubkey or script is required.
func AddressFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "hash160",
			Usage: "20-byte public key or script hash (hex)",
		},
		cli.StringFlag{
			Name:  "pubkey",
			Usage: "Serialized public key (hex); encodes a pay-to-pubkey-hash address",
		},
		cli.StringFlag{
			Name:  "script",
			Usage: "Redeem script (hex); encodes a pay-to-script-hash address",
		},
		cli.BoolFlag{
			Name:  "p2sh",
			Usage: "Treat --hash160 as a script hash",
		},
		cli.StringFlag{
			Name:  "decode",
			Usage: "Decode an existing address instead of encoding one",
		},
	}
}
