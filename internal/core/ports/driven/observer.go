package driven

import "time"

// Observer receives counters about remote calls and decoding.
// It is optional; services skip it when nil.
type Observer interface {
	// ObserveRequest records one remote call and its outcome.
	ObserveRequest(method string, duration time.Duration, err error)

	// ObservePage records one fetched list page.
	ObservePage(method string, items int)

	// ObserveDropped records an unsupported variant that was skipped.
	ObserveDropped(family, tag string)
}
