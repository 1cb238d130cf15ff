// Package repository defines the sentinel errors shared by all
// repository backends, so callers can classify failures without knowing
// which backend produced them.
package repository

import "github.com/m-mizutani/goerr/v2"

var (
	ErrNotFound       = goerr.New("not found")
	ErrAlreadyExists  = goerr.New("already exists")
	ErrDuplicateEmail = goerr.New("email already registered")
)
