package market

import (
	"context"
	"errors"
)

type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeBlocked
	OutcomeTransportError
	OutcomeTimeout
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeBlocked:
		return "blocked"
	case OutcomeTransportError:
		return "transport_error"
	case OutcomeTimeout:
		return "timeout"
	}
	return "unknown"
}

// Outcome is the tagged result of a single fetch attempt. Records is
// set for OutcomeSuccess, Reason for OutcomeBlocked and Err for
// OutcomeTransportError.
type Outcome struct {
	Kind     OutcomeKind
	Records  []Listing
	Reason   string
	Err      error
	Strategy string
}

// Strategy is one interchangeable data-acquisition backend. an
// implementation bounds its own work with a timeout, Fetch never
// blocks past it and never panics.
type Strategy interface {
	Name() string
	Fetch(ctx context.Context, url string, limit int) Outcome
}

func outcomeFromErr(ctx context.Context, err error) Outcome {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return Outcome{Kind: OutcomeTimeout, Err: err}
	}
	return Outcome{Kind: OutcomeTransportError, Err: err}
}
