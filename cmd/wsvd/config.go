package main

import (
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/kaspanet/wsvd/infrastructure/config"
	"github.com/pkg/errors"
)

const (
	initSubCmd     = "init"
	validateSubCmd = "validate"
	listenSubCmd   = "listen"
	showSubCmd     = "show"
)

const (
	defaultListen         = "0.0.0.0:50541"
	defaultMaxMessageSize = 1 << 25
)

type configFlags struct{}

type initConfig struct {
	Genesis string `long:"genesis" short:"g" description:"Path to the genesis block JSON file" required:"true"`
	config.NodeFlags
}

type validateConfig struct {
	Proposal string `long:"proposal" short:"p" description:"Path to the proposal JSON file" required:"true"`
	Commit   bool   `long:"commit" description:"Commit the accepted transactions of the proposal"`
	config.NodeFlags
}

type listenConfig struct {
	Listen         string `long:"listen" short:"l" description:"Address to serve the genesis block service on"`
	MaxMessageSize int    `long:"maxmessagesize" description:"Maximum size of a received genesis block, in bytes"`
	config.NodeFlags
}

type showConfig struct {
	Accounts []string `long:"account" short:"a" description:"Account to show the details of (may be repeated)"`
	config.NodeFlags
}

func parseCommandLine() (subCommand string, nodeFlags *config.NodeFlags, config interface{}) {
	parser := flags.NewParser(&configFlags{}, flags.PrintErrors|flags.HelpFlag)

	initConf := &initConfig{}
	parser.AddCommand(initSubCmd, "Initializes the world state view",
		"Initializes the world state view with the genesis block of the given file", initConf)

	validateConf := &validateConfig{}
	parser.AddCommand(validateSubCmd, "Validates a proposal",
		"Validates the proposal of the given file against the world state view and prints the accepted "+
			"and rejected transactions", validateConf)

	listenConf := &listenConfig{Listen: defaultListen, MaxMessageSize: defaultMaxMessageSize}
	parser.AddCommand(listenSubCmd, "Waits for a genesis block",
		"Serves the genesis block service, applying or aborting the genesis blocks sent by a "+
			"bootstrapping client", listenConf)

	showConf := &showConfig{}
	parser.AddCommand(showSubCmd, "Shows the world state view",
		"Shows the height, roles and peers of the world state view, and the given accounts", showConf)

	_, err := parser.Parse()
	if err != nil {
		var flagsErr *flags.Error
		if ok := errors.As(err, &flagsErr); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	switch parser.Command.Active.Name {
	case initSubCmd:
		nodeFlags, config = &initConf.NodeFlags, initConf
	case validateSubCmd:
		nodeFlags, config = &validateConf.NodeFlags, validateConf
	case listenSubCmd:
		nodeFlags, config = &listenConf.NodeFlags, listenConf
	case showSubCmd:
		nodeFlags, config = &showConf.NodeFlags, showConf
	}
	err = nodeFlags.ResolveNode()
	if err != nil {
		printErrorAndExit(err)
	}
	return parser.Command.Active.Name, nodeFlags, config
}
