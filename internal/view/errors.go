package view

import "errors"

// ErrMissingAnchor reports that a template or host node could not be found.
var ErrMissingAnchor = errors.New("missing anchor")
