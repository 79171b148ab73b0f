package config

import (
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/kaspanet/btcwire/chaincfg"
	"github.com/pkg/errors"
)

// NetworkFlags holds the network configuration, that is which network is selected.
type NetworkFlags struct {
	Testnet bool `long:"testnet" description:"Use the test network (version 3)"`
	Regtest bool `long:"regtest" description:"Use the regression test network"`
	Simnet  bool `long:"simnet" description:"Use the simulation test network"`

	ActiveNetParams *chaincfg.Params
}

// ResolveNetwork parses the network command line argument and sets NetParams accordingly.
// It returns error if more than one network was selected, nil otherwise.
func (networkFlags *NetworkFlags) ResolveNetwork(parser *flags.Parser) error {
	// Default net is main net
	networkFlags.ActiveNetParams = chaincfg.MainNetParams()

	// Count number of network flags passed; assign active network params
	// while we're at it
	numNets := 0
	if networkFlags.Testnet {
		numNets++
		networkFlags.ActiveNetParams = chaincfg.TestNet3Params()
	}
	if networkFlags.Regtest {
		numNets++
		networkFlags.ActiveNetParams = chaincfg.RegressionNetParams()
	}
	if networkFlags.Simnet {
		numNets++
		networkFlags.ActiveNetParams = chaincfg.SimNetParams()
	}
	if numNets > 1 {
		err := errors.New("multiple network parameters (testnet, regtest, " +
			"simnet) cannot be used together. Please choose only one network")
		if parser != nil {
			fmt.Fprintln(os.Stderr, err)
			parser.WriteHelp(os.Stderr)
		}
		return err
	}

	return nil
}

// NetParams returns the ActiveNetParams
func (networkFlags *NetworkFlags) NetParams() *chaincfg.Params {
	return networkFlags.ActiveNetParams
}
