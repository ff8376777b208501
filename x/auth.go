package x

import (
	"github.com/iov-one/ledger"
)

// Authenticator is an interface we can use to extract authentication info
// from the context. This should be passed into the constructor of handlers,
// so we can plug in any authentication system the host environment uses,
// rather than hard-coding one.
//
// The ledger core treats identities as opaque: it never derives, verifies
// or caches them across calls.
type Authenticator interface {
	// GetCallers reveals all identities that authorized this call. The
	// first one, if any, is considered the acting caller.
	GetCallers(ledger.Context) []ledger.Address

	// HasAddress checks if any caller matches this address.
	HasAddress(ledger.Context, ledger.Address) bool
}

// MultiAuth chains together many Authenticators into one
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticator
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls: impls}
}

// GetCallers combines the callers from all Authenticators
func (m MultiAuth) GetCallers(ctx ledger.Context) []ledger.Address {
	var res []ledger.Address
	for _, impl := range m.impls {
		if add := impl.GetCallers(ctx); len(add) > 0 {
			res = append(res, add...)
		}
	}
	return res
}

// HasAddress returns true iff any Authenticator supports this address
func (m MultiAuth) HasAddress(ctx ledger.Context, addr ledger.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainCaller returns the first caller identity if any, otherwise nil.
func MainCaller(ctx ledger.Context, auth Authenticator) ledger.Address {
	callers := auth.GetCallers(ctx)
	if len(callers) == 0 {
		return nil
	}
	return callers[0]
}
