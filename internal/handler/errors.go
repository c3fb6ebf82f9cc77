package handler

// Generic HTTP error messages for client responses. These intentionally do
// not expose internal error details; handlers and tests reference the same
// constants to stay consistent.
const (
	ErrMsgInvalidRequest   = "Invalid request body"
	ErrMsgEmptyImageUpload = "Image upload is empty"
	ErrMsgInvalidJobID     = "Invalid job ID"
	ErrMsgInvalidScale     = "Scale must be a positive number or fraction like 3/2"
	ErrMsgInvalidFactor    = "Conversion factor must be a number or fraction"
)

// User-facing messages mapped from domain errors
const (
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgJobNotFoundError    = "Job not found"
	ErrMsgRecipeNotFoundError = "Recipe not found"
	ErrMsgPantryNotFoundError = "Pantry not found"
	ErrMsgImageNotFoundError  = "Image not found"
	ErrMsgInvalidScaleError   = "Scale must be positive"
	ErrMsgInvalidFactorError  = "Conversion factor must be positive"
	ErrMsgEmptyRecipeError    = "Recipe has no ingredients to cook"
	ErrMsgInsufficientError   = "Not enough stock in the pantry"
	ErrMsgIncompatibleError   = "Units measure different dimensions"
)
