package api

import "net/http"

// CreateStrategy creates a new strategy on the platform. Strategy names are
// unique per user; creating a second strategy with the same name is a
// BadRequest from the backend. The strategy code travels as an opaque
// string; abcVersion selects the engine build the code targets.
func (c *Client) CreateStrategy(name, details, abcVersion string) (Response, error) {
	return c.do(http.MethodPost, EndpointStrategyBuild, requestOptions{
		body: map[string]any{
			"strategyName":    name,
			"strategyDetails": details,
			"abcVersion":      abcVersion,
		},
	})
}

// UpdateStrategy replaces the code and engine version of an existing
// strategy, addressed by its name.
func (c *Client) UpdateStrategy(name, details, abcVersion string) (Response, error) {
	return c.do(http.MethodPut, EndpointStrategyBuild, requestOptions{
		body: map[string]any{
			"strategyName":    name,
			"strategyDetails": details,
			"abcVersion":      abcVersion,
		},
	})
}

// GetAllStrategies lists every strategy the user has created.
func (c *Client) GetAllStrategies() (Response, error) {
	return c.do(http.MethodOptions, EndpointStrategyBuild, requestOptions{})
}

// GetStrategyDetails fetches one strategy by the code assigned at creation.
func (c *Client) GetStrategyDetails(strategyCode string) (Response, error) {
	return c.do(http.MethodGet, EndpointStrategyBuild, requestOptions{
		query: map[string]string{"strategyCode": strategyCode},
	})
}
