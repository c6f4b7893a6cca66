package main

import (
	"github.com/jessevdk/go-flags"
	"github.com/kaspanet/wsvd/infrastructure/logger"
	"github.com/pkg/errors"
)

var (
	defaultTimeout   uint64 = 30
	defaultLogLevel         = "info"
)

type configFlags struct {
	Peers    string `long:"peers" short:"p" description:"Path to the trusted peers file, of the form {\"ip\": [\"host:port\", ...]}" required:"true"`
	Genesis  string `long:"genesis" short:"g" description:"Path to the genesis block JSON file" required:"true"`
	Timeout  uint64 `long:"timeout" short:"t" description:"Timeout for reaching each peer (in seconds)"`
	Abort    bool   `long:"abort" description:"Abort the genesis block on every trusted peer instead of sending it"`
	LogLevel string `long:"loglevel" short:"d" description:"Logging level {trace, debug, info, warn, error, critical}"`
}

func parseConfig() (*configFlags, error) {
	cfg := &configFlags{
		Timeout:  defaultTimeout,
		LogLevel: defaultLogLevel,
	}
	parser := flags.NewParser(cfg, flags.HelpFlag)
	parser.Usage = "bootstrapnetwork [OPTIONS]\n\nSends a genesis block to every trusted peer, or aborts it with --abort"
	_, err := parser.Parse()
	if err != nil {
		return nil, err
	}
	if cfg.Timeout == 0 {
		return nil, errors.New("--timeout must be positive")
	}
	err = logger.ParseAndSetLogLevels(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}
