package dhlottery

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"slices"
)

// PurchaseObserver is notified with the slots of every successful purchase.
//
// Observers are compared with ==, so implementations should be pointers
// or other comparable values. ObserverFunc adapts a plain function.
type PurchaseObserver interface {
	OnPurchase(ctx context.Context, slots []Slot) error
}

type funcObserver struct {
	fn func(ctx context.Context, slots []Slot) error
}

func (o *funcObserver) OnPurchase(ctx context.Context, slots []Slot) error {
	return o.fn(ctx, slots)
}

// ObserverFunc turns fn into an observer, each call returns a distinct
// observer.
func ObserverFunc(fn func(ctx context.Context, slots []Slot) error) PurchaseObserver {
	return &funcObserver{fn: fn}
}

func isComparable(o PurchaseObserver) bool {
	return reflect.ValueOf(o).Comparable()
}

// AddObserver registers an observer, adding an observer that is already
// registered does nothing. Observers that cannot be compared are rejected.
func (c *Client) AddObserver(o PurchaseObserver) error {
	if o == nil {
		return nil
	}
	if !isComparable(o) {
		return fmt.Errorf("%w: %T cannot be compared, wrap it with ObserverFunc or pass a pointer", ErrObserver, o)
	}
	if slices.Contains(c.observers, o) {
		return nil
	}
	c.observers = append(c.observers, o)
	return nil
}

// RemoveObserver unregisters an observer, removing an observer that is not
// registered does nothing.
func (c *Client) RemoveObserver(o PurchaseObserver) {
	if o == nil || !isComparable(o) {
		return
	}
	idx := slices.Index(c.observers, o)
	if idx < 0 {
		return
	}
	c.observers = slices.Delete(c.observers, idx, idx+1)
}

// notifyObservers calls every observer in registration order, an observer
// failing does not stop the rest from being called.
func (c *Client) notifyObservers(ctx context.Context, slots []Slot) error {
	var errs []error
	for i, o := range c.observers {
		err := o.OnPurchase(ctx, slices.Clone(slots))
		if err != nil {
			c.tel.ReportWarning(report_client_observer, i, err)
			errs = append(errs, fmt.Errorf("observer %d: %w", i, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrObserver, errors.Join(errs...))
	}
	return nil
}
