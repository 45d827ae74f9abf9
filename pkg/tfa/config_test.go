package tfa_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tfakit/pkg/tfa"
)

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		period  time.Duration
		wantErr bool
	}{
		{name: "one minute", period: time.Minute},
		{name: "three minutes", period: 3 * time.Minute},
		{name: "five minutes", period: 5 * time.Minute},
		{name: "zero", period: 0, wantErr: true},
		{name: "below minimum", period: 30 * time.Second, wantErr: true},
		{name: "above maximum", period: 6 * time.Minute, wantErr: true},
		{name: "not whole minutes", period: 90 * time.Second, wantErr: true},
		{name: "negative", period: -time.Minute, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := tfa.Config{CodeValidityPeriod: tt.period}
			err := cfg.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, tfa.ErrInvalidValidityPeriod)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
