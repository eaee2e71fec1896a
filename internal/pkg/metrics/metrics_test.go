package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMustRegisterMetrics_Idempotent(t *testing.T) {
	assert.NotPanics(t, func() {
		MustRegisterMetrics()
		MustRegisterMetrics()
	})
}

func TestObserveUpstream(t *testing.T) {
	before := testutil.CollectAndCount(UpstreamRequestDuration)

	ObserveUpstream(UpstreamRPC, "metrics-test", time.Now(), nil)
	ObserveUpstream(UpstreamRPC, "metrics-test", time.Now(), errors.New("boom"))

	assert.Equal(t, before+2, testutil.CollectAndCount(UpstreamRequestDuration))
}
