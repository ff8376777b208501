package ledgertest

import (
	"context"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/x"
)

// Auth is a mock authenticator always returning the configured callers,
// regardless of the context.
type Auth struct {
	// Signer is the single caller. Use Signers for more than one.
	Signer ledger.Address
	// Signers take precedence over Signer when set.
	Signers []ledger.Address
}

var _ x.Authenticator = (*Auth)(nil)

func (a *Auth) GetCallers(ledger.Context) []ledger.Address {
	if len(a.Signers) != 0 {
		return a.Signers
	}
	if a.Signer == nil {
		return nil
	}
	return []ledger.Address{a.Signer}
}

func (a *Auth) HasAddress(ctx ledger.Context, addr ledger.Address) bool {
	for _, s := range a.GetCallers(ctx) {
		if s.Equals(addr) {
			return true
		}
	}
	return false
}

// CtxAuth reads callers from a context value, so a test can vary identity
// per call without rebuilding the handler.
type CtxAuth struct {
	// Key is the context key holding a []ledger.Address.
	Key interface{}
}

var _ x.Authenticator = (*CtxAuth)(nil)

// SetCallers returns a context with the given callers attached.
func (a *CtxAuth) SetCallers(ctx ledger.Context, callers ...ledger.Address) ledger.Context {
	return context.WithValue(ctx, a.Key, callers)
}

func (a *CtxAuth) GetCallers(ctx ledger.Context) []ledger.Address {
	callers, ok := ctx.Value(a.Key).([]ledger.Address)
	if !ok {
		return nil
	}
	return callers
}

func (a *CtxAuth) HasAddress(ctx ledger.Context, addr ledger.Address) bool {
	for _, s := range a.GetCallers(ctx) {
		if s.Equals(addr) {
			return true
		}
	}
	return false
}
