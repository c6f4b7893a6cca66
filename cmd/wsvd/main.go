package main

import (
	"fmt"
	"os"

	"github.com/kaspanet/wsvd/app/ledger"
	"github.com/kaspanet/wsvd/infrastructure/config"
	"github.com/kaspanet/wsvd/infrastructure/db/database/ldb"
	"github.com/kaspanet/wsvd/infrastructure/logger"
	"github.com/pkg/errors"
)

func main() {
	subCmd, nodeFlags, config := parseCommandLine()

	err := nodeFlags.InitLog()
	if err != nil {
		printErrorAndExit(err)
	}
	defer logger.BackendLog.Close()

	switch subCmd {
	case initSubCmd:
		err = withLedger(nodeFlags, func(l *ledger.Ledger) error {
			return initialize(config.(*initConfig), l)
		})
	case validateSubCmd:
		err = withLedger(nodeFlags, func(l *ledger.Ledger) error {
			return validate(config.(*validateConfig), l)
		})
	case listenSubCmd:
		err = withLedger(nodeFlags, func(l *ledger.Ledger) error {
			return listen(config.(*listenConfig), l)
		})
	case showSubCmd:
		err = withLedger(nodeFlags, func(l *ledger.Ledger) error {
			return show(config.(*showConfig), l)
		})
	default:
		err = errors.Errorf("Unknown sub-command '%s'\n", subCmd)
	}

	if err != nil {
		logger.BackendLog.Close()
		printErrorAndExit(err)
	}
}

func withLedger(nodeFlags *config.NodeFlags, f func(l *ledger.Ledger) error) error {
	db, err := ldb.NewLevelDB(nodeFlags.DataDir(), nodeFlags.CacheSizeMiB)
	if err != nil {
		return errors.Wrapf(err, "error opening the database at %s", nodeFlags.DataDir())
	}
	defer func() {
		err := db.Close()
		if err != nil {
			log.Errorf("Error closing the database: %s", err)
		}
	}()
	return f(ledger.New(db))
}

func printErrorAndExit(err error) {
	fmt.Fprintf(os.Stderr, "%+v\n", err)
	os.Exit(1)
}
