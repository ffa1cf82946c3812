package httpclient

import (
	"net/url"
	"strconv"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Opt sets a query parameter on a list request
type Opt func(url.Values)

///////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithLimit sets the maximum number of results to return
func WithLimit(limit uint) Opt {
	return func(q url.Values) {
		q.Set("limit", strconv.FormatUint(uint64(limit), 10))
	}
}

// WithOffset sets the pagination offset. Zero removes any offset.
func WithOffset(offset uint) Opt {
	return func(q url.Values) {
		if offset == 0 {
			q.Del("offset")
		} else {
			q.Set("offset", strconv.FormatUint(uint64(offset), 10))
		}
	}
}
