package bootstrap

import (
	"github.com/kaspanet/wsvd/infrastructure/logger"
)

var log = logger.RegisterSubSystem("BOOT")
