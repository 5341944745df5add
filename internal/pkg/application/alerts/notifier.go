package alerts

import (
	"context"
	"errors"

	"github.com/diwise/alert-console/pkg/types"
)

type notifiers []Notifier

// Broadcast returns a Notifier that forwards every change to all of ns. Nil
// notifiers are skipped.
func Broadcast(ns ...Notifier) Notifier {
	all := notifiers{}
	for _, n := range ns {
		if n != nil {
			all = append(all, n)
		}
	}
	return all
}

func (ns notifiers) StatusChanged(ctx context.Context, change types.AlertStatusChanged) error {
	var errs []error
	for _, n := range ns {
		if err := n.StatusChanged(ctx, change); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
