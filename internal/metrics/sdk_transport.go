package metrics

import (
	"net/http"
	"strconv"
	"time"
)

// RequestWatcher instruments outbound SDK requests and tracks the remaining
// rate-limit budget reported by the upstream API.
type RequestWatcher struct {
	name string
	base http.RoundTripper
}

func NewRequestWatcher(name string) *RequestWatcher {
	return &RequestWatcher{
		name: name,
		base: http.DefaultTransport,
	}
}

func (m *RequestWatcher) RoundTrip(r *http.Request) (*http.Response, error) {
	var err error
	defer func(start time.Time) {
		CollectRequestsMetric(m.name, r.Header.Get("alias"), err, start)
	}(time.Now())

	resp, err := m.base.RoundTrip(r)
	if err != nil {
		return nil, err
	}

	if data, ok := resp.Header["Ratelimit-Remaining"]; ok && len(data) > 0 {
		if val, err := strconv.ParseFloat(data[0], 64); err == nil {
			CollectKeyState(m.name, "remaining_value", val)
		}
	}

	return resp, nil
}
