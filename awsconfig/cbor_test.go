//go:build unit

package awsconfig

import (
	"os"
	"sync"
	"testing"

	mocklogger "github.com/streamworks/kinesis-runtime/logger/mock"
	"github.com/stretchr/testify/require"
)

func resetCborOnce() {
	cborOnce = sync.Once{}
}

func TestDisableCBOR_SetsEnvVar(t *testing.T) {
	t.Cleanup(
		func() {
			_ = os.Unsetenv(cborDisableEnvVar)
			resetCborOnce()
		},
	)
	_ = os.Unsetenv(cborDisableEnvVar)
	resetCborOnce()

	log := mocklogger.New()
	DisableCBOR(log)

	value, ok := os.LookupEnv(cborDisableEnvVar)
	require.True(t, ok)
	require.Equal(t, "true", value)
}

func TestDisableCBOR_IdempotentAcrossCalls(t *testing.T) {
	t.Cleanup(
		func() {
			_ = os.Unsetenv(cborDisableEnvVar)
			resetCborOnce()
		},
	)
	_ = os.Unsetenv(cborDisableEnvVar)
	resetCborOnce()

	log := mocklogger.New()
	DisableCBOR(log)
	DisableCBOR(log)
	DisableCBOR(log)

	entries := log.Entries()
	var infoCount int
	for _, e := range entries {
		if e.Message == "disabled CBOR encoding for the process" {
			infoCount++
		}
	}
	require.Equal(t, 1, infoCount)
}

func TestDisableCBOR_RespectsExternalOverride(t *testing.T) {
	t.Cleanup(
		func() {
			_ = os.Unsetenv(cborDisableEnvVar)
			resetCborOnce()
		},
	)
	resetCborOnce()
	require.NoError(t, os.Setenv(cborDisableEnvVar, "false"))

	log := mocklogger.New()
	DisableCBOR(log)

	value, _ := os.LookupEnv(cborDisableEnvVar)
	require.Equal(t, "false", value)
	log.AssertCalledWithMessage(t, "CBOR disable env var already set to a different value, leaving it as-is")
}
