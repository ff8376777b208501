package app

import (
	"fmt"
	"regexp"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
)

var isPath = regexp.MustCompile(`^[a-z0-9_]+/[a-z0-9_]+$`).MatchString

// Router maps message paths to handlers. Paths have an extension/action
// shape, for example "unique/transfer".
type Router struct {
	handlers map[string]ledger.Handler
}

var _ ledger.Registry = (*Router)(nil)

// NewRouter returns an empty router.
func NewRouter() *Router {
	return &Router{
		handlers: make(map[string]ledger.Handler),
	}
}

// Handle registers a handler for the path. Registration collisions and
// malformed paths are programmer errors and panic during setup.
func (r *Router) Handle(path string, h ledger.Handler) {
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path %q", path))
	}
	if _, ok := r.handlers[path]; ok {
		panic(fmt.Sprintf("double registration of %q", path))
	}
	r.handlers[path] = h
}

// Handler returns the handler registered for the path, or a handler that
// fails every call with ErrNotFound.
func (r *Router) Handler(path string) ledger.Handler {
	if h, ok := r.handlers[path]; ok {
		return h
	}
	return noSuchPathHandler{path: path}
}

type noSuchPathHandler struct {
	path string
}

var _ ledger.Handler = noSuchPathHandler{}

func (h noSuchPathHandler) Check(ledger.Context, ledger.KVStore, ledger.Tx) (*ledger.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for %q", h.path)
}

func (h noSuchPathHandler) Deliver(ledger.Context, ledger.KVStore, ledger.Tx) (*ledger.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for %q", h.path)
}
