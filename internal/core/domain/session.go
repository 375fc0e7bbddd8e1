package domain

import "errors"

// ErrSessionInvalid is returned when a session token is absent, expired,
// tampered with, or revoked. All failure modes collapse into one error so
// callers treat every bad token the same way: as anonymous.
var ErrSessionInvalid = errors.New("session invalid or expired")
