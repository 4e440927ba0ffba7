package client

import (
	"context"
	"errors"
)

// Notifier shows a transient message to the user, e.g. a toast.
type Notifier func(title, message string)

// Mutate runs one write request. On success the listed key prefixes are
// invalidated; on failure notify is called with the error. There is no retry.
func Mutate[T any](ctx context.Context, q *QueryCache, notify Notifier, title string, invalidates []string, do func(context.Context) (T, error)) (T, error) {
	out, err := do(ctx)
	if err != nil {
		if notify != nil {
			notify(title, messageOf(err))
		}
		return out, err
	}
	if q != nil && len(invalidates) > 0 {
		q.Invalidate(ctx, invalidates...)
	}
	return out, nil
}

func messageOf(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
