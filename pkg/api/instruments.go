package api

import "net/http"

// SearchInstrument looks up tradeable instruments matching the given text.
// The endpoint is public: no Authorization header is sent even when an
// access token has been set.
func (c *Client) SearchInstrument(instrument string) (Response, error) {
	return c.do(http.MethodGet, EndpointInstrumentSearch, requestOptions{
		query:  map[string]string{"instrument": instrument},
		noAuth: true,
	})
}
