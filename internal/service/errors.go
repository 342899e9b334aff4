package service

import (
	"errors"
	"fmt"
)

// ErrEmptyBatch is returned when an ingest is requested without URLs.
var ErrEmptyBatch = errors.New("please send at least one channel URL")

// ResolveError reports a URL no channel ID could be derived from.
type ResolveError struct {
	URL string
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("unable to resolve channel ID from %s", e.URL)
}
