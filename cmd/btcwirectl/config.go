package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/jessevdk/go-flags"
	"github.com/kaspanet/btcwire/infrastructure/config"
	"github.com/kaspanet/btcwire/wire"
	"github.com/pkg/errors"
)

const (
	decodeTxSubCmd          = "decodetx"
	encodeTxSubCmd          = "encodetx"
	txIDSubCmd              = "txid"
	decodeHeaderSubCmd      = "decodeheader"
	decodeMerkleBlockSubCmd = "decodemerkleblock"
	compileScriptSubCmd     = "compilescript"
	disasmSubCmd            = "disasm"
	storeTxSubCmd           = "storetx"
	fetchTxSubCmd           = "fetchtx"
	storeBlockSubCmd        = "storeblock"
	merkleProofSubCmd       = "merkleproof"
)

const (
	appName           = "btcwirectl"
	defaultLogLevel   = "info"
	defaultLogFile    = "btcwirectl.log"
	defaultErrLogFile = "btcwirectl_err.log"
)

var (
	defaultAppDir = btcutil.AppDataDir(appName, false)
	defaultLogDir = filepath.Join(defaultAppDir, "logs")
	defaultDBDir  = defaultAppDir
)

type configFlags struct {
	LogDir          string `long:"logdir" description:"Directory to log output"`
	LogLevel        string `long:"loglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems"`
	ProtocolVersion uint32 `long:"pver" description:"Protocol version to encode and decode with (default: the network's protocol version)"`
	config.NetworkFlags
}

type decodeTxConfig struct {
	Transaction     string `long:"transaction" short:"t" description:"The transaction to decode (encoded in hex)"`
	TransactionFile string `long:"transaction-file" short:"F" description:"A file containing the transaction to decode (encoded in hex)"`
	Dump            bool   `long:"dump" description:"Dump the decoded transaction structure instead of a summary"`
}

type encodeTxConfig struct {
	Transaction     string `long:"transaction" short:"t" description:"The transaction to re-encode (encoded in hex)"`
	TransactionFile string `long:"transaction-file" short:"F" description:"A file containing the transaction to re-encode (encoded in hex)"`
	Disk            bool   `long:"disk" description:"Encode for storage instead of for the network"`
}

type txIDConfig struct {
	Transaction     string `long:"transaction" short:"t" description:"The transaction to identify (encoded in hex)"`
	TransactionFile string `long:"transaction-file" short:"F" description:"A file containing the transaction to identify (encoded in hex)"`
}

type decodeHeaderConfig struct {
	Header string `long:"header" short:"b" description:"The 80 byte block header to decode (encoded in hex)" required:"true"`
}

type decodeMerkleBlockConfig struct {
	MerkleBlock string `long:"merkleblock" short:"m" description:"The merkleblock message to decode and verify (encoded in hex)" required:"true"`
}

type compileScriptConfig struct {
	Script string `long:"script" short:"s" description:"The script to compile, e.g. \"DUP HASH160 [89abcdef...] EQUALVERIFY CHECKSIG\"" required:"true"`
}

type disasmConfig struct {
	Script string `long:"script" short:"s" description:"The script to disassemble (encoded in hex)" required:"true"`
}

type storeTxConfig struct {
	DBDir           string `long:"dbdir" description:"Directory to store data in"`
	Transaction     string `long:"transaction" short:"t" description:"The transaction to store (encoded in hex)"`
	TransactionFile string `long:"transaction-file" short:"F" description:"A file containing the transaction to store (encoded in hex)"`
}

type fetchTxConfig struct {
	DBDir string `long:"dbdir" description:"Directory to store data in"`
	TxID  string `long:"txid" short:"i" description:"The id of the transaction to fetch" required:"true"`
}

type storeBlockConfig struct {
	DBDir     string `long:"dbdir" description:"Directory to store data in"`
	Block     string `long:"block" short:"b" description:"The block to store (encoded in hex)"`
	BlockFile string `long:"block-file" short:"F" description:"A file containing the block to store (encoded in hex)"`
}

type merkleProofConfig struct {
	DBDir     string   `long:"dbdir" description:"Directory to store data in"`
	BlockHash string   `long:"block" short:"b" description:"The hash of a stored block" required:"true"`
	TxIDs     []string `long:"txid" short:"i" description:"The id of a transaction to prove (may be repeated)" required:"true"`
}

// media returns the media subcommands encode and decode with.
func (cfg *configFlags) media() wire.Media {
	pver := cfg.ProtocolVersion
	if pver == 0 {
		pver = cfg.NetParams().ProtocolVersion
	}
	return wire.NetworkMedia(pver)
}

// dbPath returns the database directory of the active network.
func (cfg *configFlags) dbPath(dbDir string) string {
	if dbDir == "" {
		dbDir = defaultDBDir
	}
	return filepath.Join(dbDir, cfg.NetParams().Name, "blocks")
}

func parseCommandLine() (subCommand string, cfg *configFlags, subConfig interface{}) {
	cfg = &configFlags{
		LogDir:   defaultLogDir,
		LogLevel: defaultLogLevel,
	}
	parser := flags.NewParser(cfg, flags.PrintErrors|flags.HelpFlag)

	subConfigs := map[string]interface{}{}
	addCommand := func(name, shortDescription, longDescription string, data interface{}) {
		_, err := parser.AddCommand(name, shortDescription, longDescription, data)
		if err != nil {
			printErrorAndExit(err)
		}
		subConfigs[name] = data
	}

	addCommand(decodeTxSubCmd, "Decodes a transaction",
		"Decodes a transaction and prints its fields", &decodeTxConfig{})
	addCommand(encodeTxSubCmd, "Re-encodes a transaction",
		"Decodes a transaction, checks that it is canonical and encodes it again", &encodeTxConfig{})
	addCommand(txIDSubCmd, "Prints the id of a transaction",
		"Prints the id of a transaction", &txIDConfig{})
	addCommand(decodeHeaderSubCmd, "Decodes a block header",
		"Decodes an 80 byte block header and prints its fields and hash", &decodeHeaderConfig{})
	addCommand(decodeMerkleBlockSubCmd, "Decodes and verifies a merkleblock message",
		"Decodes a merkleblock message, verifies its partial merkle tree "+
			"and prints the matched transactions", &decodeMerkleBlockConfig{})
	addCommand(compileScriptSubCmd, "Compiles a script",
		"Compiles a textual script into bytecode using minimal pushes", &compileScriptConfig{})
	addCommand(disasmSubCmd, "Disassembles a script",
		"Disassembles script bytecode into its textual form", &disasmConfig{})
	addCommand(storeTxSubCmd, "Stores a transaction",
		"Stores a transaction in the local database", &storeTxConfig{})
	addCommand(fetchTxSubCmd, "Fetches a stored transaction",
		"Fetches a transaction from the local database and prints it in hex", &fetchTxConfig{})
	addCommand(storeBlockSubCmd, "Stores a block",
		"Stores a block and its transactions in the local database", &storeBlockConfig{})
	addCommand(merkleProofSubCmd, "Builds a merkleblock message",
		"Builds a merkleblock message proving which of the given transactions "+
			"a stored block contains", &merkleProofConfig{})

	_, err := parser.Parse()
	if err != nil {
		var flagsErr *flags.Error
		if ok := errors.As(err, &flagsErr); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	err = cfg.ResolveNetwork(parser)
	if err != nil {
		os.Exit(1)
	}

	if parser.Command.Active == nil {
		printErrorAndExit(errors.New("a sub-command is required"))
	}
	subCommand = parser.Command.Active.Name
	return subCommand, cfg, subConfigs[subCommand]
}

func printErrorAndExit(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}
