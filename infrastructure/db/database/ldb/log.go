package ldb

import "github.com/kaspanet/wsvd/infrastructure/logger"

var log = logger.RegisterSubSystem("WSDB")
