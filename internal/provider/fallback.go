package provider

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/thanhnp/chain-explorer/internal/apperrors"
)

// Attempt is one provider's way of serving an operation
type Attempt[T any] struct {
	Source string
	Run    func(ctx context.Context) (T, error)
}

// Try builds an Attempt
func Try[T any](source string, run func(ctx context.Context) (T, error)) Attempt[T] {
	return Attempt[T]{Source: source, Run: run}
}

// FirstSuccess runs attempts in order and returns the first result that
// came back without error. Later attempts are not started. When every
// attempt failed the error is NotFound if any provider reported the entity
// missing, and UpstreamUnavailable otherwise.
func FirstSuccess[T any](ctx context.Context, log *logrus.Entry, op string, attempts ...Attempt[T]) (T, error) {
	var (
		zero     T
		errs     []error
		notFound bool
	)
	for _, a := range attempts {
		if err := ctx.Err(); err != nil {
			return zero, apperrors.Unavailable(err, "%s abandoned", op).WithOp(op)
		}

		v, err := a.Run(ctx)
		if err == nil {
			return v, nil
		}
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			notFound = true
		}
		log.WithFields(logrus.Fields{"op": op, "source": a.Source}).WithError(err).Warn("Provider failed")
		errs = append(errs, err)
	}

	cause := errors.Join(errs...)
	log.WithFields(logrus.Fields{"op": op, "attempts": len(attempts)}).WithError(cause).Error("All providers failed")
	if notFound {
		return zero, apperrors.Wrap(cause, apperrors.KindNotFound, "NOT_FOUND", op+" not found").WithOp(op)
	}
	return zero, apperrors.Unavailable(cause, "%s: every provider failed", op).WithOp(op)
}

// each builds one attempt per source in the given order. Nil sources,
// such as a node that is not configured, are skipped.
func each[T any](run func(ctx context.Context, s BlockSource) (T, error), sources ...BlockSource) []Attempt[T] {
	attempts := make([]Attempt[T], 0, len(sources))
	for _, s := range sources {
		if s == nil {
			continue
		}
		attempts = append(attempts, Try(s.Name(), func(ctx context.Context) (T, error) {
			return run(ctx, s)
		}))
	}
	return attempts
}

func emptyList[T any]() ([]T, error) {
	return []T{}, nil
}
