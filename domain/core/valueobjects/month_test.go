package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMonth(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		wantErr bool
	}{
		{name: "first month", value: 1},
		{name: "last month", value: 12},
		{name: "middle of the window", value: 7},
		{name: "zero rejected", value: 0, wantErr: true},
		{name: "negative rejected", value: -4, wantErr: true},
		{name: "past the window rejected", value: 13, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMonth(tt.value)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "month must be between")
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.value, m.Int())
			}
		})
	}
}

func TestClampMonth(t *testing.T) {
	tests := []struct {
		name  string
		value int
		want  int
	}{
		{name: "in range passes through", value: 5, want: 5},
		{name: "below range clamps to first month", value: -10, want: 1},
		{name: "above range clamps to last month", value: 42, want: 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampMonth(tt.value).Int())
		})
	}
}

func TestMonth_Before(t *testing.T) {
	assert.True(t, Month(3).Before(Month(4)))
	assert.False(t, Month(4).Before(Month(3)))
	assert.False(t, Month(4).Before(Month(4)))
}
