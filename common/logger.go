package common

import (
	"github.com/ipfs/go-log"
)

var Logger = log.Logger("mhl-lib")
