/*
Copyright MOSIP. All Rights Reserved.

SPDX-License-Identifier: MPL-2.0
*/

package keybinding

import "errors"

var (
	// ErrDataNotFound is returned by RegistryStore lookups with no match.
	ErrDataNotFound = errors.New("data not found")

	// ErrDuplicateKey is returned by RegistryStore.Insert when the public
	// key hash uniqueness constraint is violated.
	ErrDuplicateKey = errors.New("duplicate key")
)
