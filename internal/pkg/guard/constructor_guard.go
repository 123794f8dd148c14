// Package guard provides a small helper for enforcing that value objects and
// commands are created through their constructors. The zero value of a type
// embedding ConstructorGuard fails validation, which closes the door on
// bypassing constructor-time invariant checks via struct literals.
package guard

import "errors"

// ErrNotConstructed is returned by Validate when no specific error is supplied
// for a zero-value guard.
var ErrNotConstructed = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as properly constructed.
// Embed it in a struct and initialize it with NewConstructorGuard inside the
// constructor; the zero value is invalid.
type ConstructorGuard struct {
	constructed bool
}

// NewConstructorGuard returns a guard in the constructed state.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{constructed: true}
}

// Validate returns nil for a constructed guard. For a zero-value guard it
// returns notConstructedErr, or ErrNotConstructed when notConstructedErr is nil.
func (g ConstructorGuard) Validate(notConstructedErr error) error {
	if g.constructed {
		return nil
	}

	if notConstructedErr != nil {
		return notConstructedErr
	}

	return ErrNotConstructed
}
