package commandexecutor

import (
	"github.com/kaspanet/wsvd/infrastructure/logger"
)

var log = logger.RegisterSubSystem("CEXE")
