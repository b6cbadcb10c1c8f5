package timex

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{name: "string form", input: `"5m"`, want: 5 * time.Minute},
		{name: "hours", input: `"168h"`, want: 168 * time.Hour},
		{name: "integer nanoseconds", input: `60000000000`, want: time.Minute},
		{name: "garbage string", input: `"soon"`, wantErr: true},
		{name: "wrong type", input: `[1]`, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var d Duration
			err := json.Unmarshal([]byte(tc.input), &d)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, d.Duration)
		})
	}
}

func TestDuration_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(Duration{Duration: 5 * time.Minute})
	require.NoError(t, err)
	assert.Equal(t, `"5m0s"`, string(b))
}
