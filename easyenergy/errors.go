package easyenergy

import "errors"

var (
	// ErrConnection wraps transport failures such as timeouts, refused
	// connections and HTTP error statuses.
	ErrConnection = errors.New("easyenergy: connection error")

	// ErrUnexpectedResponse is returned when the API answers with
	// something other than a JSON tariff list.
	ErrUnexpectedResponse = errors.New("easyenergy: unexpected response")

	// ErrNoData is returned when the API has no tariffs for the
	// requested period.
	ErrNoData = errors.New("easyenergy: no data for period")
)
