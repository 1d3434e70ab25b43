package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveRequest(t *testing.T) {
	before := testutil.ToFloat64(Requests.WithLabelValues("/t", "ok"))
	ObserveRequest("/t", "ok")
	ObserveRequest("/t", "ok")
	assert.Equal(t, before+2, testutil.ToFloat64(Requests.WithLabelValues("/t", "ok")))
}

func TestObserveUpstream_LabelsByStatus(t *testing.T) {
	ObserveUpstream(404, 10*time.Millisecond)
	ObserveUpstream(0, time.Millisecond)

	assert.Equal(t, 2, testutil.CollectAndCount(UpstreamDuration))
}
