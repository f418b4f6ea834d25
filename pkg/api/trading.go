package api

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// keySlot returns the cache slot for the given trading type.
func (c *Client) keySlot(tt TradingType) (*string, error) {
	switch tt {
	case TradingTypeBacktesting:
		return &c.keyBacktesting, nil
	case TradingTypePaperTrading:
		return &c.keyPaperTrading, nil
	case TradingTypeRealTrading:
		return &c.keyRealTrading, nil
	default:
		return nil, &ProgrammingError{What: fmt.Sprintf("trading type %q", tt)}
	}
}

// fetchKey registers the strategy for the given trading type and returns
// the instance key the backend assigned.
func (c *Client) fetchKey(strategyCode string, tt TradingType) (string, error) {
	resp, err := c.do(http.MethodOptions, EndpointPortfolioStrategy, requestOptions{
		body: map[string]any{
			"strategyId":  strategyCode,
			"tradingType": string(tt),
		},
	})
	if err != nil {
		return "", err
	}
	key, ok := resp["key"].(string)
	if !ok || key == "" {
		return "", errors.Errorf("register strategy %s for %s: no key in response", strategyCode, tt)
	}
	return key, nil
}

// instanceKey returns the cached instance key for the trading type,
// registering the strategy on first use. Once fetched, the key is reused
// for every later operation in that mode; it is never refreshed, even if
// the backend reassigns keys server-side.
func (c *Client) instanceKey(strategyCode string, tt TradingType) (string, error) {
	slot, err := c.keySlot(tt)
	if err != nil {
		return "", err
	}
	if *slot == "" {
		key, err := c.fetchKey(strategyCode, tt)
		if err != nil {
			return "", err
		}
		*slot = key
	}
	return *slot, nil
}

// jobsEndpoint maps a trading type to its job control endpoint.
func jobsEndpoint(tt TradingType) (string, error) {
	switch tt {
	case TradingTypeRealTrading:
		return EndpointRealTradingJobs, nil
	case TradingTypePaperTrading:
		return EndpointPaperTradingJobs, nil
	case TradingTypeBacktesting:
		return EndpointBacktestingJobs, nil
	default:
		return "", &ProgrammingError{What: fmt.Sprintf("trading type %q", tt)}
	}
}

// SetStrategyConfig submits the tweak configuration for a strategy in the
// given trading type. It returns the resolved instance key alongside the
// backend response so the caller can correlate later job operations.
func (c *Client) SetStrategyConfig(strategyCode string, config map[string]any, tt TradingType) (string, Response, error) {
	key, err := c.instanceKey(strategyCode, tt)
	if err != nil {
		return "", nil, err
	}
	endpoint := fmt.Sprintf("/v2/user/strategy/%s/tweak", key)
	resp, err := c.do(http.MethodPatch, endpoint, requestOptions{body: config})
	if err != nil {
		return "", nil, err
	}
	return key, resp, nil
}

// JobSubmission is the outcome of a start or stop request. Exactly one of
// the two fields is set: Response on success, Rejected when the backend
// refused the job with Forbidden (403) or InsufficientBalance (402).
// A refusal is not returned as an error so that callers who only care
// about hard failures can ignore it, but unlike a silent drop the refusal
// stays inspectable.
type JobSubmission struct {
	Response Response
	Rejected *APIError
}

// Accepted reports whether the backend accepted the submission.
func (s *JobSubmission) Accepted() bool {
	return s.Rejected == nil
}

func (c *Client) submitJob(strategyCode string, tt TradingType, newVal, status int) (*JobSubmission, error) {
	endpoint, err := jobsEndpoint(tt)
	if err != nil {
		return nil, err
	}

	// Refusals during key registration are absorbed the same way as
	// refusals of the submission itself.
	key, err := c.instanceKey(strategyCode, tt)
	if err != nil {
		return c.absorbRefusal(strategyCode, tt, err)
	}

	resp, err := c.do(http.MethodPost, endpoint, requestOptions{
		body: map[string]any{
			"method": "update",
			"newVal": newVal,
			"key":    key,
			"record": map[string]any{"status": status},
		},
	})
	if err != nil {
		return c.absorbRefusal(strategyCode, tt, err)
	}
	return &JobSubmission{Response: resp}, nil
}

// absorbRefusal turns a Forbidden or InsufficientBalance error into a
// rejected JobSubmission; anything else stays an error.
func (c *Client) absorbRefusal(strategyCode string, tt TradingType, err error) (*JobSubmission, error) {
	if IsForbidden(err) || IsInsufficientBalance(err) {
		apiErr, _ := AsAPIError(err)
		log.WithFields(logrus.Fields{
			"strategy":    strategyCode,
			"tradingType": tt,
		}).Warnf("job submission refused: %v", apiErr.Body)
		return &JobSubmission{Rejected: apiErr}, nil
	}
	return nil, err
}

// StartJob submits a backtesting, paper trading or real trading job for the
// strategy. A Forbidden or InsufficientBalance refusal is reported through
// JobSubmission.Rejected rather than as an error; every other failure
// propagates.
func (c *Client) StartJob(strategyCode string, tt TradingType) (*JobSubmission, error) {
	return c.submitJob(strategyCode, tt, 1, 0)
}

// StopJob requests a stop of the running job for the strategy. Refusals are
// reported the same way as in StartJob.
func (c *Client) StopJob(strategyCode string, tt TradingType) (*JobSubmission, error) {
	return c.submitJob(strategyCode, tt, 0, 2)
}

// GetJobStatus fetches the current job status for the strategy in the given
// trading type. Unlike StartJob/StopJob, every backend error propagates.
func (c *Client) GetJobStatus(strategyCode string, tt TradingType) (Response, error) {
	key, err := c.instanceKey(strategyCode, tt)
	if err != nil {
		return nil, err
	}
	return c.do(http.MethodGet, EndpointJobStatus, requestOptions{
		query: map[string]string{"key": key},
	})
}

// GetLogs fetches the execution logs of the strategy's job.
func (c *Client) GetLogs(strategyCode string, tt TradingType) (Response, error) {
	key, err := c.instanceKey(strategyCode, tt)
	if err != nil {
		return nil, err
	}
	return c.do(http.MethodPost, EndpointJobLogs, requestOptions{
		body: map[string]any{"key": key},
	})
}

// GetReports fetches one of the job reports (P&L table, statistics table or
// order history) for the strategy in the given trading type.
func (c *Client) GetReports(strategyCode string, tt TradingType, rt ReportType) (Response, error) {
	var endpoint string
	switch rt {
	case ReportTypePnLTable:
		endpoint = EndpointPnLTable
	case ReportTypeStatsTable:
		endpoint = EndpointStatsTable
	case ReportTypeOrderHistory:
		endpoint = EndpointOrderHistory
	default:
		return nil, &ProgrammingError{What: fmt.Sprintf("report type %q", rt)}
	}

	key, err := c.instanceKey(strategyCode, tt)
	if err != nil {
		return nil, err
	}
	return c.do(http.MethodGet, endpoint, requestOptions{
		query: map[string]string{"key": key},
	})
}
