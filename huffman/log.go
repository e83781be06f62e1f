package huffman

import (
	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("bitpress/huffman")

// The backend go-logging starts with prints everything.  Stay at WARNING
// there; a program that installs its own backend chooses its own levels.
func init() {
	logging.SetLevel(logging.WARNING, log.Module)
}
