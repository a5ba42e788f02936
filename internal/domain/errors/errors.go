package errors

import "errors"

var (
	ErrSourceUnavailable  = errors.New("source unavailable")
	ErrCacheMiss          = errors.New("cache miss")
	ErrMissingField       = errors.New("missing field")
	ErrMalformedTimestamp = errors.New("malformed timestamp")
	ErrDeliveryFailed     = errors.New("delivery failed")
	ErrChannelRejected    = errors.New("channel rejected message")
	ErrMissingCredential  = errors.New("missing credential")
	ErrUnknownChannel     = errors.New("unknown channel")
	ErrUnknownFormat      = errors.New("unknown format")
)
