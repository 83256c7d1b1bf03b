// Package customizer implements the client config customizer (spec
// §4.5): a factory-of-factories holding global settings that produces a
// per-stream StreamCustomizer on demand, resolving worker identity,
// credentials, metrics wiring and AWS client construction for Kinesis,
// DynamoDB, and CloudWatch.
package customizer

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssdkconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/metric"

	"github.com/streamworks/kinesis-runtime/awsconfig"
	"github.com/streamworks/kinesis-runtime/logger"
)

// GlobalSettings holds configuration shared by every stream's
// customizer: the coordination key, credential/region/endpoint
// defaults, and optional metrics backends.
type GlobalSettings struct {
	ConsumerGroup string
	Region        string

	KinesisEndpointOverride    string
	DynamoDBEndpointOverride   string
	CloudWatchEndpointOverride string

	// Credentials overrides the default provider chain. Nil uses
	// whatever awssdkconfig.LoadDefaultConfig resolves.
	Credentials aws.CredentialsProvider

	// DisableCBOR mirrors the spec's process-wide CBOR toggle; applied
	// once at factory construction via awsconfig.DisableCBOR.
	DisableCBOR bool

	// MeterProvider is the upstream OTel meter provider used for the
	// DEFAULT metrics driver. Nil falls back to a noop provider.
	MeterProvider metric.MeterProvider

	// PrometheusRegisterer is the "unique metrics registry" the spec's
	// MICROMETER driver requires. Nil means no registry is available;
	// streams configured with MICROMETER then fall back to a null sink.
	PrometheusRegisterer prometheus.Registerer

	Logger logger.Logger
}

// Factory is the top-level, global-settings-holding factory. One
// Factory is constructed per process.
type Factory struct {
	settings GlobalSettings
	log      logger.Logger
	baseCfg  aws.Config
}

// defaultConfigLoader resolves the base AWS config; overridable in
// tests, mirroring DrBlury-protoflow's DefaultConfigLoader var.
var defaultConfigLoader = awssdkconfig.LoadDefaultConfig

// NewFactory validates settings and resolves the base AWS config once.
// Returns a *ConfigurationError if a required global setting is
// missing.
func NewFactory(ctx context.Context, settings GlobalSettings) (*Factory, error) {
	if settings.ConsumerGroup == "" {
		return nil, &ConfigurationError{Reason: "consumerGroup is required"}
	}
	if settings.Region == "" {
		return nil, &ConfigurationError{Reason: "region is required"}
	}

	log := settings.Logger
	if log == nil {
		log = logger.NewNoopLogger()
	}
	log = log.With("component", "customizer-factory")

	if settings.DisableCBOR {
		awsconfig.DisableCBOR(log)
	}

	opts := []func(*awssdkconfig.LoadOptions) error{awssdkconfig.WithRegion(settings.Region)}
	if settings.Credentials != nil {
		opts = append(opts, awssdkconfig.WithCredentialsProvider(settings.Credentials))
	}

	baseCfg, err := defaultConfigLoader(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &Factory{settings: settings, log: log, baseCfg: baseCfg}, nil
}

// ForStream produces a StreamCustomizer for streamName. Each call
// returns a distinct customizer with its own worker identifier (P8),
// even for the same stream name.
func (f *Factory) ForStream(streamName string, cfg StreamConfig) (*StreamCustomizer, error) {
	if streamName == "" {
		return nil, &ConfigurationError{Reason: "stream name is required"}
	}

	return &StreamCustomizer{
		factory:      f,
		streamName:   streamName,
		cfg:          cfg,
		workerID:     fmt.Sprintf("%s:%s", canonicalHost(), uuid.NewString()),
		applicationN: f.settings.ConsumerGroup + "_" + streamName,
		log:          f.log.With("stream", streamName),
	}, nil
}

func canonicalHost() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		return "unknown-host"
	}
	return host
}
