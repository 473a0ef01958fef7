package runner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGate_Migration(t *testing.T) {
	tests := []struct {
		name      string
		prior     string // empty means never applied
		checksum  string
		wantApply bool
		wantWarn  bool
	}{
		{name: "never applied", prior: "", checksum: "X", wantApply: true},
		{name: "applied unchanged", prior: "X", checksum: "X", wantApply: false},
		{name: "applied then edited", prior: "X", checksum: "Y", wantApply: false, wantWarn: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := newFakeLog()
			if tt.prior != "" {
				log.latest["m"] = tt.prior
			}
			logger := &captureLogger{}
			r := New(log, &recordingBackend{}, logger, Options{})

			apply, err := r.shouldApplyMigration(context.Background(), "m", tt.checksum)
			require.NoError(t, err)
			assert.Equal(t, tt.wantApply, apply)
			if tt.wantWarn {
				assert.Contains(t, logger.warnMessages(), "applied migration has changed on disk")
			} else {
				assert.Empty(t, logger.warns)
			}
		})
	}
}

func TestGate_Script(t *testing.T) {
	tests := []struct {
		name      string
		prior     string
		checksum  string
		wantApply bool
	}{
		{name: "never applied", prior: "", checksum: "X", wantApply: true},
		{name: "unchanged", prior: "X", checksum: "X", wantApply: false},
		{name: "content changed", prior: "X", checksum: "Y", wantApply: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := newFakeLog()
			if tt.prior != "" {
				log.latest["s"] = tt.prior
			}
			logger := &captureLogger{}
			r := New(log, &recordingBackend{}, logger, Options{})

			apply, err := r.shouldApplyScript(context.Background(), "s", tt.checksum)
			require.NoError(t, err)
			assert.Equal(t, tt.wantApply, apply)
			assert.Empty(t, logger.warns, "script gate never warns")
		})
	}
}
