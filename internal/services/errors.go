package services

import "errors"

// ErrValidation marks invalid caller input. Services wrap it with a
// human-readable detail; handlers translate it into a 400 response.
var ErrValidation = errors.New("validation failed")
