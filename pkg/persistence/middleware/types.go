// Package middleware wraps session stores with cross-cutting persistence
// behavior, such as at-rest encryption.
package middleware

import "github.com/KelvinH2322/coffeehelper/pkg/ports"

// Middleware allows wrapping a SessionStore to add behavior.
type Middleware func(ports.SessionStore) ports.SessionStore

// Chain applies the middlewares outermost-first.
func Chain(store ports.SessionStore, mws ...Middleware) ports.SessionStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
