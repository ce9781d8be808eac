package prometheus

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
)

func TestBreakerStateChanged(t *testing.T) {
	BreakerStateChanged("watsonx", gobreaker.StateClosed, gobreaker.StateOpen)
	assert.Equal(t, 2.0, testutil.ToFloat64(ModelBreakerState.WithLabelValues("watsonx")))

	BreakerStateChanged("watsonx", gobreaker.StateOpen, gobreaker.StateHalfOpen)
	assert.Equal(t, 1.0, testutil.ToFloat64(ModelBreakerState.WithLabelValues("watsonx")))

	BreakerStateChanged("watsonx", gobreaker.StateHalfOpen, gobreaker.StateClosed)
	assert.Equal(t, 0.0, testutil.ToFloat64(ModelBreakerState.WithLabelValues("watsonx")))
}

func TestRiskTier(t *testing.T) {
	assert.Equal(t, "high", RiskTier(100))
	assert.Equal(t, "high", RiskTier(80))
	assert.Equal(t, "medium", RiskTier(40))
	assert.Equal(t, "low", RiskTier(0))
}
