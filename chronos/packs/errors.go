package packs

import "errors"

var (
	// ErrNotFound is returned when a template cannot be resolved by id or
	// type.
	ErrNotFound = errors.New("template not found")
	// ErrAmbiguousTemplate is an invariant violation: more than one active
	// template resolved for a type. The store's uniqueness constraint makes
	// this unreachable; it is never swallowed if seen.
	ErrAmbiguousTemplate = errors.New("ambiguous template resolution")
	// ErrTemplateExists is returned when registering a template for a type
	// that already has an active one.
	ErrTemplateExists = errors.New("active template already exists for pack type")
	// ErrSupplyExhausted is returned when generation would exceed the
	// template's max supply. The batch is all-or-nothing: no packs are
	// generated.
	ErrSupplyExhausted = errors.New("supply exhausted")
	// ErrOutOfStock is the expected condition of claiming from an empty
	// pool. It is reported inside the claim result, never as a panic.
	ErrOutOfStock = errors.New("no packs available")
)
