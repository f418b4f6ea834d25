package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// testBackend is a fake AlgoBulls server with call tracking and per-route
// error injection.
type testBackend struct {
	t   *testing.T
	srv *httptest.Server

	mu            sync.Mutex
	registrations map[string]int            // tradingType -> registration calls
	lastRegBody   map[string]any            // body of the last registration call
	strategies    map[string]map[string]any // strategyCode -> stored fields
	lastJobBody   map[string]any            // body of the last jobs-endpoint call
	authHeaders   []string                  // Authorization header of every request

	// Error injection: status code to return instead of 200 (0 = success).
	regStatus    int
	jobsStatus   int
	statusStatus int

	nextStrategy int
}

func newTestBackend(t *testing.T) *testBackend {
	b := &testBackend{
		t:             t,
		registrations: make(map[string]int),
		strategies:    make(map[string]map[string]any),
	}

	mux := http.NewServeMux()
	mux.HandleFunc(EndpointPortfolioStrategy, b.handleRegister)
	mux.HandleFunc(EndpointStrategyBuild, b.handleStrategyBuild)
	mux.HandleFunc(EndpointInstrumentSearch, b.handleSearch)
	mux.HandleFunc(EndpointRealTradingJobs, b.handleJobs)
	mux.HandleFunc(EndpointPaperTradingJobs, b.handleJobs)
	mux.HandleFunc(EndpointBacktestingJobs, b.handleJobs)
	mux.HandleFunc(EndpointJobStatus, b.handleStatus)
	mux.HandleFunc(EndpointJobLogs, b.handleLogs)
	mux.HandleFunc(EndpointPnLTable, b.handleReport)
	mux.HandleFunc(EndpointStatsTable, b.handleReport)
	mux.HandleFunc(EndpointOrderHistory, b.handleReport)
	mux.HandleFunc("/", b.handleRoot)

	b.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.authHeaders = append(b.authHeaders, r.Header.Get("Authorization"))
		b.mu.Unlock()
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(b.srv.Close)
	return b
}

func (b *testBackend) client() *Client {
	return NewClient(b.srv.URL)
}

func (b *testBackend) registrationCalls(tt TradingType) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.registrations[string(tt)]
}

func (b *testBackend) lastAuthHeader() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.authHeaders) == 0 {
		return ""
	}
	return b.authHeaders[len(b.authHeaders)-1]
}

func (b *testBackend) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodOptions {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "bad registration body"})
		return
	}
	tt, _ := body["tradingType"].(string)

	b.mu.Lock()
	if b.regStatus != 0 {
		status := b.regStatus
		b.mu.Unlock()
		writeJSON(w, status, map[string]any{"message": "registration refused"})
		return
	}
	b.registrations[tt]++
	b.lastRegBody = body
	key := fmt.Sprintf("key-%s-%d", tt, b.registrations[tt])
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"key": key})
}

func (b *testBackend) handleStrategyBuild(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost, http.MethodPut:
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"message": "bad body"})
			return
		}
		b.mu.Lock()
		b.nextStrategy++
		code := fmt.Sprintf("strategy-%d", b.nextStrategy)
		if r.Method == http.MethodPut {
			// Updates address an existing strategy by name.
			for c, s := range b.strategies {
				if s["strategyName"] == body["strategyName"] {
					code = c
					break
				}
			}
		}
		b.strategies[code] = body
		b.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]any{"strategyCode": code})

	case http.MethodOptions:
		b.mu.Lock()
		codes := make([]any, 0, len(b.strategies))
		for code := range b.strategies {
			codes = append(codes, code)
		}
		b.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]any{"data": codes})

	case http.MethodGet:
		code := r.URL.Query().Get("strategyCode")
		b.mu.Lock()
		s, ok := b.strategies[code]
		b.mu.Unlock()
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]any{"message": "no such strategy"})
			return
		}
		writeJSON(w, http.StatusOK, s)

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (b *testBackend) handleSearch(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"data": []any{map[string]any{"instrument": r.URL.Query().Get("instrument")}},
	})
}

func (b *testBackend) handleJobs(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	_ = json.NewDecoder(r.Body).Decode(&body)
	b.mu.Lock()
	b.lastJobBody = body
	status := b.jobsStatus
	b.mu.Unlock()

	if status != 0 {
		writeJSON(w, status, map[string]any{"message": "refused"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "submitted"})
}

func (b *testBackend) handleStatus(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	status := b.statusStatus
	b.mu.Unlock()
	if status != 0 {
		writeJSON(w, status, map[string]any{"message": "refused"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "running", "key": r.URL.Query().Get("key")})
}

func (b *testBackend) handleLogs(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	_ = json.NewDecoder(r.Body).Decode(&body)
	writeJSON(w, http.StatusOK, map[string]any{"logs": "log lines", "key": body["key"]})
}

func (b *testBackend) handleReport(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"report": r.URL.Path, "data": []any{}})
}

func (b *testBackend) handleRoot(w http.ResponseWriter, r *http.Request) {
	// The tweak endpoint embeds the instance key in the path.
	if r.Method == http.MethodPatch && strings.HasSuffix(r.URL.Path, "/tweak") {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		key := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/v2/user/strategy/"), "/tweak")
		writeJSON(w, http.StatusOK, map[string]any{"key": key, "config": body})
		return
	}
	writeJSON(w, http.StatusNotFound, map[string]any{"message": "no such endpoint"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
