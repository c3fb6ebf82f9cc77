package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Parse errors
	ErrMsgEmptyDocument = "document contains no recipe content"

	// Unit errors
	ErrMsgIncompatibleUnit = "incompatible unit dimensions"
	ErrMsgUnknownUnit      = "unknown unit"

	// Cook validation errors
	ErrMsgInvalidScale            = "scale must be greater than zero"
	ErrMsgEmptyRecipe             = "recipe has no ingredients"
	ErrMsgInvalidConversionFactor = "conversion factor must be greater than zero"

	// Stock errors
	ErrMsgInsufficientStock = "insufficient stock"

	// Lookup errors
	ErrMsgJobNotFound    = "job not found"
	ErrMsgRecipeNotFound = "recipe not found"
	ErrMsgPantryNotFound = "pantry not found"
	ErrMsgImageNotFound  = "image not found"

	// Store errors
	ErrMsgDuplicateRecipe = "recipe already exists for this image and parser version"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Parse errors - terminal, not retried by the job runner's own policy
	ErrEmptyDocument = errors.New(ErrMsgEmptyDocument)

	// Unit errors - always a defect in input data, never silently coerced
	ErrIncompatibleUnit = errors.New(ErrMsgIncompatibleUnit)
	ErrUnknownUnit      = errors.New(ErrMsgUnknownUnit)

	// Cook validation errors - rejected before any computation
	ErrInvalidScale            = errors.New(ErrMsgInvalidScale)
	ErrEmptyRecipe             = errors.New(ErrMsgEmptyRecipe)
	ErrInvalidConversionFactor = errors.New(ErrMsgInvalidConversionFactor)

	// Stock errors - raised only by commit, never by cook
	ErrInsufficientStock = errors.New(ErrMsgInsufficientStock)

	// Lookup errors
	ErrJobNotFound    = errors.New(ErrMsgJobNotFound)
	ErrRecipeNotFound = errors.New(ErrMsgRecipeNotFound)
	ErrPantryNotFound = errors.New(ErrMsgPantryNotFound)
	ErrImageNotFound  = errors.New(ErrMsgImageNotFound)

	// Store errors
	ErrDuplicateRecipe = errors.New(ErrMsgDuplicateRecipe)
)
