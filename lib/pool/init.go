package pool

import (
	logging "github.com/inconshreveable/log15"

	"github.com/mutualnet/mutualpool/lib/common"
)

var log logging.Logger = logging.New("module", "pool")

func init() {
	SetLogging(common.DefaultLogLevel, common.DefaultLogHandler)
}

func SetLogging(level logging.Lvl, handler logging.Handler) {
	log.SetHandler(logging.LvlFilterHandler(level, handler))
}
