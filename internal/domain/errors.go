package domain

import "errors"

var (
	// ErrMalformedURL is returned when a URL cannot be parsed as an absolute URL
	ErrMalformedURL = errors.New("malformed URL")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCacheUnavailable is returned when cache service is unavailable
	ErrCacheUnavailable = errors.New("cache service unavailable")

	// ErrSnapshotNotFound is returned when no page has been classified yet
	ErrSnapshotNotFound = errors.New("no page snapshot stored")

	// ErrCatalogEmpty is returned when sampling from an empty catalog
	ErrCatalogEmpty = errors.New("catalog is empty")

	// ErrUnknownAction is returned for messages with an unsupported action
	ErrUnknownAction = errors.New("unknown message action")

	// ErrMessagingUnavailable is returned when the message channel cannot deliver
	ErrMessagingUnavailable = errors.New("message channel unavailable")
)
