package onerror

import (
	"os"

	"github.com/hlmerscher/jackc/logger"
)

var exit = os.Exit

func Log(err error) {
	Logf("", err)
}

// Logf reports err prefixed by msg and exits with status 1. A nil err is
// ignored.
func Logf(msg string, err error) {
	if err != nil {
		logger.Errorf("%s%s\n", msg, err)
		exit(1)
	}
}
