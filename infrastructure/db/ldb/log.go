package ldb

import "github.com/kaspanet/btcwire/infrastructure/logger"

var log = logger.RegisterSubSystem("LDB")
