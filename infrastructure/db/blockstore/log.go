package blockstore

import "github.com/kaspanet/btcwire/infrastructure/logger"

var log = logger.RegisterSubSystem("BSTR")
