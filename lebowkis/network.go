// Package lebowkis defines the consensus constants of the Lebowkis network family.
//
// This package provides:
//   - The closed set of networks (MainNet, TestNet, SigNet, RegTest)
//   - Address version bytes and wire magic per network
//   - Block weight, sigop and script limits
//   - Subsidy halving, coinbase maturity and difficulty timing constants
//
// Every value here is fixed at compile time. Nothing in this package is
// mutated after process start, so all lookups are safe for concurrent use.
package lebowkis

import (
	"errors"
	"fmt"
	"strings"
)

// Network identifies one chain of the Lebowkis family.
//
// The ordinal order of the variants is part of the public contract: tooling
// outside this module indexes tables by it. Append new variants at the end and
// extend every per-network table in this module at the same time.
type Network uint8

const (
	// MainNet is the production network.
	MainNet Network = iota
	// TestNet is the public test network.
	TestNet
	// SigNet is the signed-block test network.
	SigNet
	// RegTest is the local regression-test network.
	RegTest
)

// ErrUnknownNetwork is returned when a network name cannot be resolved.
var ErrUnknownNetwork = errors.New("unknown network")

var networkNames = map[Network]string{
	MainNet: "main",
	TestNet: "test",
	SigNet:  "signet",
	RegTest: "regtest",
}

// aliases accepted by ParseNetwork in addition to the canonical names.
var networkAliases = map[string]Network{
	"mainnet": MainNet,
	"bitcoin": MainNet,
	"testnet": TestNet,
}

// Networks returns every network in ordinal order.
func Networks() []Network {
	return []Network{MainNet, TestNet, SigNet, RegTest}
}

// String returns the canonical lowercase name of the network.
func (n Network) String() string {
	if name, ok := networkNames[n]; ok {
		return name
	}
	return fmt.Sprintf("network(%d)", uint8(n))
}

// Valid reports whether n is one of the declared variants.
func (n Network) Valid() bool {
	_, ok := networkNames[n]
	return ok
}

// ParseNetwork resolves a user supplied name (case-insensitive) to a Network.
// It is the only fallible entry point into the constant tables.
func ParseNetwork(name string) (Network, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for n, canonical := range networkNames {
		if canonical == key {
			return n, nil
		}
	}
	if n, ok := networkAliases[key]; ok {
		return n, nil
	}
	return 0, fmt.Errorf("%w: %q (valid: main, test, signet, regtest)", ErrUnknownNetwork, name)
}

// MarshalText implements encoding.TextMarshaler.
func (n Network) MarshalText() ([]byte, error) {
	if !n.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownNetwork, uint8(n))
	}
	return []byte(n.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (n *Network) UnmarshalText(text []byte) error {
	parsed, err := ParseNetwork(string(text))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

// mustValid panics for values outside the enumeration. They can only be
// produced by an explicit integer conversion.
func (n Network) mustValid() {
	if !n.Valid() {
		panic(fmt.Sprintf("lebowkis: invalid network %d", uint8(n)))
	}
}
