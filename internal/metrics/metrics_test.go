package metrics

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tgcore/internal/adapters/driven/transport"
	"github.com/custodia-labs/tgcore/internal/core/domain"
)

func TestRegisterMetricsIsIdempotent(t *testing.T) {
	assert.NotPanics(t, func() {
		RegisterMetrics()
		RegisterMetrics()
		NewObserver()
	})
}

func TestObserver_Request(t *testing.T) {
	obs := NewObserver()
	method := "test.observeRequest"

	obs.ObserveRequest(method, 20*time.Millisecond, nil)
	obs.ObserveRequest(method, 5*time.Millisecond, transport.NewError(420, "FLOOD_WAIT_3"))

	assert.Equal(t, 1.0, testutil.ToFloat64(rpcRequests.WithLabelValues(method, "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rpcRequests.WithLabelValues(method, "rate_limited")))
}

func TestObserver_Page(t *testing.T) {
	obs := NewObserver()
	method := "test.observePage"

	obs.ObservePage(method, 100)
	obs.ObservePage(method, 7)

	assert.Equal(t, 2.0, testutil.ToFloat64(pages.WithLabelValues(method)))
	assert.Equal(t, 107.0, testutil.ToFloat64(pageItems.WithLabelValues(method)))
}

func TestObserver_Dropped(t *testing.T) {
	obs := NewObserver()

	obs.ObserveDropped("TestFamily", "futureTag")

	assert.Equal(t, 1.0, testutil.ToFloat64(dropped.WithLabelValues("TestFamily", "futureTag")))
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "ok"},
		{"flood wait", transport.NewError(420, "FLOOD_WAIT_10"), "rate_limited"},
		{"disconnected", transport.NewError(-503, "Timeout"), "disconnected"},
		{"invalid peer", transport.NewError(400, "PEER_ID_INVALID"), "invalid_peer"},
		{"rejected", transport.NewError(400, "STORY_ID_INVALID"), "rejected"},
		{"malformed", fmt.Errorf("decode: %w", domain.ErrMalformedVariant), "malformed"},
		{"unsupported", &domain.UnsupportedVariantError{Family: "StoryView", Tag: "x"}, "unsupported"},
		{"unavailable", domain.ErrTransportUnavailable, "unavailable"},
		{"canceled", context.Canceled, "error"},
		{"other", errors.New("boom"), "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Outcome(tt.err))
		})
	}
}

func TestHandler(t *testing.T) {
	NewObserver().ObservePage("test.handler", 1)

	srv := httptest.NewServer(Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `tgcore_pagination_pages_total{method="test.handler"} 1`)
}
