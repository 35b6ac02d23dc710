package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordFriendOperation(t *testing.T) {
	before := testutil.ToFloat64(friendOperations.WithLabelValues(OpSend, "created"))

	RecordFriendOperation(OpSend, "created")
	RecordFriendOperation(OpSend, "created")

	after := testutil.ToFloat64(friendOperations.WithLabelValues(OpSend, "created"))
	assert.Equal(t, before+2, after)
}

func TestRecordRateLimitRejection(t *testing.T) {
	before := testutil.ToFloat64(rateLimitRejections.WithLabelValues("ip"))
	RecordRateLimitRejection("ip")
	assert.Equal(t, before+1, testutil.ToFloat64(rateLimitRejections.WithLabelValues("ip")))
}

func TestObserveHTTPRequest(t *testing.T) {
	ObserveHTTPRequest(http.MethodGet, "", http.StatusNotFound, 5*time.Millisecond)
	ObserveHTTPRequest(http.MethodGet, "/api/v1/friends", http.StatusOK, time.Millisecond)

	assert.GreaterOrEqual(t, testutil.CollectAndCount(httpRequestDuration), 2)
}
