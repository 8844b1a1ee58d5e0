package tui

import "errors"

// ErrMissingSessionService is returned when the session service is not provided.
var ErrMissingSessionService = errors.New("tui: session service is required")

// ErrMissingPersonaDirectory is returned when the persona directory is not provided.
var ErrMissingPersonaDirectory = errors.New("tui: persona directory is required")
