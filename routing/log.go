package routing

import "github.com/btcsuite/btclog"

// log is the package-level logger used by the pathfinder and reputation
// store. It is a no-op until the embedding application supplies a real
// logger via UseLogger.
var log = btclog.Disabled

// UseLogger sets the package-wide logger used by the routing package.
func UseLogger(logger btclog.Logger) {
	log = logger
}
