package dhlottery

import (
	"errors"
	"fmt"
)

// Every error returned by Client matches ErrClient and exactly one of the
// more specific kinds below with errors.Is.
var (
	ErrClient = errors.New("dhlottery")

	// ErrNetwork covers transport failures, timeouts and non-2xx responses.
	ErrNetwork = fmt.Errorf("%w: network error", ErrClient)
	// ErrAuthentication means the portal rejected the credentials.
	ErrAuthentication = fmt.Errorf("%w: authentication failed", ErrClient)
	// ErrPurchase is a rejected purchase or a purchase response that could not be read.
	ErrPurchase = fmt.Errorf("%w: purchase failed", ErrClient)
	// ErrBalance is a balance or virtual account response that could not be read.
	ErrBalance = fmt.Errorf("%w: balance error", ErrClient)
	// ErrProtocol means the portal did not behave like a browser would expect,
	// ex. it is under maintenance or an expected element is missing.
	ErrProtocol = fmt.Errorf("%w: protocol error", ErrClient)
	// ErrObserver is returned by Buy alongside the purchased slots when a
	// PurchaseObserver failed, the purchase itself went through.
	ErrObserver = fmt.Errorf("%w: purchase observer failed", ErrClient)
)
