package main

import (
	"os"

	"github.com/kaspanet/btcwire/infrastructure/logger"
	"github.com/pkg/errors"
)

func main() {
	subCmd, cfg, subConfig := parseCommandLine()

	err := initLog(cfg)
	if err != nil {
		printErrorAndExit(err)
	}
	defer logger.BackendLog.Close()

	log.Debugf("Running %s on %s", subCmd, cfg.NetParams().Name)

	out := os.Stdout
	switch subCmd {
	case decodeTxSubCmd:
		err = decodeTx(cfg, subConfig.(*decodeTxConfig), out)
	case encodeTxSubCmd:
		err = encodeTx(cfg, subConfig.(*encodeTxConfig), out)
	case txIDSubCmd:
		err = txID(cfg, subConfig.(*txIDConfig), out)
	case decodeHeaderSubCmd:
		err = decodeHeader(cfg, subConfig.(*decodeHeaderConfig), out)
	case decodeMerkleBlockSubCmd:
		err = decodeMerkleBlock(cfg, subConfig.(*decodeMerkleBlockConfig), out)
	case compileScriptSubCmd:
		err = compileScript(subConfig.(*compileScriptConfig), out)
	case disasmSubCmd:
		err = disasm(subConfig.(*disasmConfig), out)
	case storeTxSubCmd:
		err = storeTx(cfg, subConfig.(*storeTxConfig), out)
	case fetchTxSubCmd:
		err = fetchTx(cfg, subConfig.(*fetchTxConfig), out)
	case storeBlockSubCmd:
		err = storeBlock(cfg, subConfig.(*storeBlockConfig), out)
	case merkleProofSubCmd:
		err = merkleProof(cfg, subConfig.(*merkleProofConfig), out)
	default:
		err = errors.Errorf("Unknown sub-command '%s'", subCmd)
	}

	if err != nil {
		log.Errorf("%s failed: %+v", subCmd, err)
		logger.BackendLog.Close()
		printErrorAndExit(err)
	}
}
