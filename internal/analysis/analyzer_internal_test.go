package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		change float64
		want   Trend
	}{
		{1.0, TrendStable},
		{1.01, TrendIncreasing},
		{-1.0, TrendStable},
		{-1.01, TrendDecreasing},
		{0, TrendStable},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, classify(tt.change, 1), "change %v", tt.change)
	}

	assert.Equal(t, TrendIncreasing, classify(0.51, 0.5))
	assert.Equal(t, TrendStable, classify(0.5, 0.5))
}

func TestNew_ZeroConfigFallsBackToDefaults(t *testing.T) {
	a := New(Config{})
	assert.Equal(t, DefaultConfig(), a.cfg)

	custom := DefaultConfig()
	custom.TrendThreshold = 2
	custom.WeakNetThreshold = -4
	custom.StrongNetThreshold = 0
	a = New(custom)
	assert.Equal(t, 2.0, a.cfg.TrendThreshold)
	assert.Equal(t, DefaultConfig().WeakNetThreshold, a.cfg.WeakNetThreshold)
	assert.Equal(t, DefaultConfig().StrongNetThreshold, a.cfg.StrongNetThreshold)
}
