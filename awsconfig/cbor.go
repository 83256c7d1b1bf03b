// Package awsconfig holds process-wide AWS SDK bootstrap state that must
// be set exactly once, before any client is constructed.
package awsconfig

import (
	"os"
	"sync"

	"github.com/streamworks/kinesis-runtime/logger"
)

// cborDisableEnvVar is the same property name the AWS SDK for Java reads
// to decide whether to advertise CBOR support when negotiating with
// Kinesis. aws-sdk-go-v2 never speaks CBOR, so this toggle has no effect
// on Go SDK client behaviour; it exists so a mixed deployment (this
// runtime alongside a JVM-based producer or tool sharing the same AWS
// SDK environment) observes a consistent setting.
const cborDisableEnvVar = "AWS_CBOR_DISABLE"

var cborOnce sync.Once

// DisableCBOR sets cborDisableEnvVar once per process. Safe to call from
// multiple goroutines or multiple times; only the first call has any
// effect. If the variable is already set to something other than "true"
// when this runs, that is treated as an intentional external override
// and a warning is logged instead of clobbering it.
func DisableCBOR(log logger.Logger) {
	cborOnce.Do(
		func() {
			if log == nil {
				log = logger.NewNoopLogger()
			}

			if existing, ok := os.LookupEnv(cborDisableEnvVar); ok && existing != "true" {
				log.Warn(
					"CBOR disable env var already set to a different value, leaving it as-is",
					"env_var", cborDisableEnvVar, "value", existing,
				)
				return
			}

			if err := os.Setenv(cborDisableEnvVar, "true"); err != nil {
				log.Error("failed to set CBOR disable env var", "error", err)
				return
			}

			log.Info("disabled CBOR encoding for the process", "env_var", cborDisableEnvVar)
		},
	)
}
