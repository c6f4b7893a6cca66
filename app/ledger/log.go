package ledger

import (
	"github.com/kaspanet/wsvd/infrastructure/logger"
)

var log = logger.RegisterSubSystem("LDGR")
