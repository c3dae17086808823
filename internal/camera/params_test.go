package camera

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	assert.NoError(t, Params{FrequencyHz: 2.0}.Validate())
	assert.NoError(t, Params{FrequencyHz: 0.25}.Validate())
	assert.Error(t, Params{FrequencyHz: 0}.Validate())
	assert.Error(t, Params{FrequencyHz: -1}.Validate())
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name         string
		params       Params
		wantW        float64
		wantH        float64
		wantInterval time.Duration
	}{
		{
			name:         "defaults from the original controls",
			params:       Params{AltitudeM: 100, RectWidthM: 20, RectHeightM: 20, ZoomFactor: 1.0, FrequencyHz: 2.0},
			wantW:        2000,
			wantH:        2000,
			wantInterval: 500 * time.Millisecond,
		},
		{
			name:         "zoom multiplies altitude scale",
			params:       Params{AltitudeM: 10, RectWidthM: 4, RectHeightM: 2, ZoomFactor: 2.0, FrequencyHz: 4.0},
			wantW:        80,
			wantH:        40,
			wantInterval: 250 * time.Millisecond,
		},
		{
			name:         "non-positive altitude floored to 1",
			params:       Params{AltitudeM: -5, RectWidthM: 10, RectHeightM: 10, ZoomFactor: 2.0, FrequencyHz: 1.0},
			wantW:        20,
			wantH:        20,
			wantInterval: time.Second,
		},
		{
			name:         "non-positive zoom floored to 1",
			params:       Params{AltitudeM: 3, RectWidthM: 10, RectHeightM: 10, ZoomFactor: 0, FrequencyHz: 1.0},
			wantW:        30,
			wantH:        30,
			wantInterval: time.Second,
		},
		{
			name:         "tiny footprint clamped to minimum",
			params:       Params{AltitudeM: 1, RectWidthM: 0.5, RectHeightM: 0.5, ZoomFactor: 1, FrequencyHz: 1.0},
			wantW:        4,
			wantH:        4,
			wantInterval: time.Second,
		},
		{
			name:         "interval rounds to nearest millisecond",
			params:       Params{AltitudeM: 1, RectWidthM: 10, RectHeightM: 10, ZoomFactor: 1, FrequencyHz: 3.0},
			wantW:        10,
			wantH:        10,
			wantInterval: 333 * time.Millisecond,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fp, interval := tt.params.Resolve()
			assert.Equal(t, tt.wantW, fp.Width)
			assert.Equal(t, tt.wantH, fp.Height)
			assert.Equal(t, tt.wantInterval, interval)
		})
	}
}
