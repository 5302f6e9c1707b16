// internal/domain/errors.go
package domain

import "errors"

// ErrUpstreamFetch marks a failed snapshot fetch (sales, catalog, events,
// history) or a failed model call. It is the only hard failure class: the
// pipeline has no meaningful partial result without its inputs.
var ErrUpstreamFetch = errors.New("upstream fetch failed")

// ErrInsufficientHistory is returned when fewer than 30 days of sales
// history exist, which is too little to forecast against.
var ErrInsufficientHistory = errors.New("insufficient sales history")
