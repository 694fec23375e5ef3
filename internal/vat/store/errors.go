package store

import "vatchecker/pkg/platform/sentinel"

// ErrNotFound is returned when a requested entry does not exist or has expired.
var ErrNotFound = sentinel.ErrNotFound
