package treatment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestEstimateProgress(t *testing.T) {
	tests := []struct {
		name      string
		begin     string
		end       string
		now       time.Time
		frequency string
		want      int
	}{
		{"halfway once a day", "2024-01-01", "2024-01-11", date("2024-01-06"), "once a day", 50},
		{"halfway twice a day", "2024-01-01", "2024-01-11", date("2024-01-06"), "twice a day", 50},
		{"weekly", "2024-01-01", "2024-01-29", date("2024-01-08"), "once a week", 25},
		{"not started", "2024-01-01", "2024-01-11", date("2023-12-25"), "once a day", 0},
		{"finished", "2024-01-01", "2024-01-11", date("2024-02-01"), "once a day", 100},
		{"rounds", "2024-01-01", "2024-01-04", date("2024-01-02"), "once a day", 33},
		{"unknown frequency", "2024-01-01", "2024-01-11", date("2024-01-03"), "hourly", 20},
		{"same day", "2024-01-01", "2024-01-01", date("2023-01-01"), "once a day", 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EstimateProgress(date(tt.begin), date(tt.end), tt.now, tt.frequency)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEstimateProgress_EndBeforeBegin(t *testing.T) {
	_, err := EstimateProgress(date("2024-01-11"), date("2024-01-01"), date("2024-01-05"), "once a day")
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestNormalizeFrequency(t *testing.T) {
	assert.Equal(t, FrequencyTwiceADay, NormalizeFrequency("  Twice  a DAY "))
	assert.Equal(t, FrequencyOnceAWeek, NormalizeFrequency("once a week"))
	assert.Equal(t, FrequencyOnceADay, NormalizeFrequency(""))
	assert.Equal(t, 12*time.Hour, Interval("twice a day"))
}
