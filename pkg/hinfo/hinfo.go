// Package hinfo implements a single-connection HTTP/1.1 server answering
// fixed read-only queries about the host it runs on. Connections are accepted
// and served strictly one at a time; every response carries Connection: close
// and the connection is closed once the exchange ends.
package hinfo

import (
	"context"
)

// Length budgets of the request line. The total budget bounds the whole first
// line; the target budget is what remains after method, version and the two
// separating whitespace bytes.
const (
	maxRequestLineLen = 30
	maxMethodLen      = 3
	maxVersionLen     = 8
	maxTargetLen      = maxRequestLineLen - maxMethodLen - maxVersionLen
)

// SystemInfo answers the three host queries the server exposes. Every call is
// a fresh point-in-time reading.
type SystemInfo interface {
	Hostname(ctx context.Context) (string, error)
	CPUModel(ctx context.Context) (string, error)
	CPULoadPercent(ctx context.Context) (int, error)
}
