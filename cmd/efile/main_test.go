package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/gartstein/efiling/internal/filing/codec"
	"github.com/gartstein/efiling/internal/filing/models"
	"github.com/gartstein/efiling/internal/filing/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestRun_Validate(t *testing.T) {
	for name := range builders {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, run([]string{"validate", name}, &out, zaptest.NewLogger(t)))

			var result validator.Result
			require.NoError(t, json.Unmarshal(out.Bytes(), &result))
			assert.Empty(t, result.Violations)
		})
	}
}

func TestRun_Encode(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"encode", "charge"}, &out, zaptest.NewLogger(t)))

	f, err := codec.Decode(out.Bytes())
	require.NoError(t, err)
	assert.Equal(t, models.FilingTypeChargeRegistration, f.FilingType())
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no arguments", nil},
		{"unknown command", []string{"publish", "charge"}},
		{"unknown sample", []string{"validate", "annual-return"}},
		{"bad flag", []string{"-nope", "validate", "charge"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			assert.Error(t, run(tt.args, &out, zaptest.NewLogger(t)))
		})
	}
}
