package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Response is the parsed JSON object body of a successful reply.
type Response map[string]any

// requestOptions carries the per-call request pieces handed to do.
type requestOptions struct {
	query  map[string]string
	body   any
	noAuth bool // skip the Authorization header (public endpoints)
}

// do is the single chokepoint for every backend call. It builds the full
// URL, attaches the Authorization header when required and a token is set,
// performs the request and decodes the JSON body. A 200 returns the parsed
// body; any other status becomes an *APIError whose payload is the parsed
// JSON body, or the raw body string when the backend sent something that
// is not JSON.
func (c *Client) do(method, endpoint string, opt requestOptions) (Response, error) {
	fullURL := c.baseURL + endpoint

	status, raw, err := c.roundTrip(method, fullURL, opt)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", method, fullURL)
	}

	log.WithFields(logrus.Fields{
		"method": method,
		"url":    fullURL,
		"status": status,
	}).Debug("request complete")

	if status != http.StatusOK {
		return nil, &APIError{
			Kind:   kindForStatus(status),
			Status: status,
			Method: method,
			URL:    fullURL,
			Body:   decodePayload(raw),
		}
	}

	var resp Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, errors.Wrapf(err, "decode response of %s %s", method, fullURL)
	}
	return resp, nil
}

// roundTrip performs one HTTP exchange and returns the status code and raw
// body. resty drops request bodies on OPTIONS, which the platform uses for
// strategy listing and registration, so that verb is built by hand on the
// same underlying transport.
func (c *Client) roundTrip(method, fullURL string, opt requestOptions) (int, []byte, error) {
	if method == http.MethodOptions {
		return c.roundTripOptions(fullURL, opt)
	}

	r := c.http.R()
	r.SetHeader("Accept", "application/json")
	if !opt.noAuth && c.authHeader != "" {
		r.SetHeader("Authorization", c.authHeader)
	}
	if len(opt.query) > 0 {
		r.SetQueryParams(opt.query)
	}
	if opt.body != nil {
		r.SetHeader("Content-Type", "application/json")
		r.SetBody(opt.body)
	}

	resp, err := r.Execute(method, fullURL)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode(), resp.Body(), nil
}

func (c *Client) roundTripOptions(fullURL string, opt requestOptions) (int, []byte, error) {
	if len(opt.query) > 0 {
		u, err := url.Parse(fullURL)
		if err != nil {
			return 0, nil, errors.Wrap(err, "parse url")
		}
		q := u.Query()
		for k, v := range opt.query {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
		fullURL = u.String()
	}

	var bodyReader io.Reader
	if opt.body != nil {
		b, err := json.Marshal(opt.body)
		if err != nil {
			return 0, nil, errors.Wrap(err, "marshal request body")
		}
		bodyReader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(http.MethodOptions, fullURL, bodyReader)
	if err != nil {
		return 0, nil, errors.Wrap(err, "create request")
	}
	req.Header.Set("Accept", "application/json")
	if opt.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if !opt.noAuth && c.authHeader != "" {
		req.Header.Set("Authorization", c.authHeader)
	}

	resp, err := c.http.GetClient().Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, errors.Wrap(err, "read response body")
	}
	return resp.StatusCode, raw, nil
}

// decodePayload parses raw as JSON, falling back to the raw string when the
// body is not JSON. Error bodies from proxies and gateways are often plain
// text or HTML.
func decodePayload(raw []byte) any {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	return v
}
