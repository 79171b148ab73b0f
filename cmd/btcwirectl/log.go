package main

import (
	"path/filepath"

	"github.com/kaspanet/btcwire/infrastructure/logger"
)

var log = logger.RegisterSubSystem("CTL")

func initLog(cfg *configFlags) error {
	logFile := filepath.Join(cfg.LogDir, defaultLogFile)
	errLogFile := filepath.Join(cfg.LogDir, defaultErrLogFile)
	err := logger.InitLog(logFile, errLogFile)
	if err != nil {
		return err
	}
	return logger.ParseAndSetLogLevels(cfg.LogLevel)
}
