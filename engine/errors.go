// SPDX-License-Identifier: EPL-2.0

package engine

import "errors"

var (
	// ErrUnknownTable indicates a table id that was never issued or was destroyed.
	ErrUnknownTable = errors.New("unknown table")

	// ErrUnknownHandle indicates a handle id that was never issued or was destroyed.
	ErrUnknownHandle = errors.New("unknown handle")

	// ErrTableDestroyed indicates a handle whose table has been destroyed.
	ErrTableDestroyed = errors.New("handle table was destroyed")
)
