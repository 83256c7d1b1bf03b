// Package config binds the configuration surface spec §6 enumerates
// (consumerGroup, region, kinesisUrl, dynamoDbSettings.*, disableCbor,
// per-stream metricsLevel/metricsDriver/retrievalStrategy/
// initialPositionInStream/roleArn, checkpointing.*) to a YAML document,
// then converts it into the wiring types the rest of the runtime takes
// as constructor arguments.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/streamworks/kinesis-runtime/checkpoint"
	"github.com/streamworks/kinesis-runtime/customizer"
	"github.com/streamworks/kinesis-runtime/metrics"
)

// DynamoDBSettings is the lease-store section of Settings.
type DynamoDBSettings struct {
	URL                     string `yaml:"url"`
	LeaseTableReadCapacity  int64  `yaml:"leaseTableReadCapacity"`
	LeaseTableWriteCapacity int64  `yaml:"leaseTableWriteCapacity"`
}

// CheckpointingSettings is the checkpointing.* section of a stream's
// settings.
type CheckpointingSettings struct {
	Strategy   string        `yaml:"strategy"`
	MaxRetries int           `yaml:"maxRetries"`
	Backoff    time.Duration `yaml:"backoff"`
}

// StreamSettings is one entry of Settings.Streams: the per-stream
// retrieval, metrics and checkpointing configuration spec §3/§6
// describe.
type StreamSettings struct {
	MetricsLevel            string                `yaml:"metricsLevel"`
	MetricsDriver           string                `yaml:"metricsDriver"`
	RetrievalStrategy       string                `yaml:"retrievalStrategy"`
	InitialPositionInStream string                `yaml:"initialPositionInStream"`
	AtTimestamp             time.Time             `yaml:"atTimestamp"`
	RoleARN                 string                `yaml:"roleArn"`
	Checkpointing           CheckpointingSettings `yaml:"checkpointing"`
}

// Settings is the root configuration document: the global section plus
// one StreamSettings per logical stream the process consumes.
type Settings struct {
	ConsumerGroup string           `yaml:"consumerGroup"`
	Region        string           `yaml:"region"`
	KinesisURL    string           `yaml:"kinesisUrl"`
	DynamoDB      DynamoDBSettings `yaml:"dynamoDbSettings"`
	DisableCBOR   bool             `yaml:"disableCbor"`
	Streams       map[string]StreamSettings `yaml:"streams"`
}

// Load reads and parses a YAML settings document from path.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return &s, nil
}

// GlobalSettings converts the root section into the customizer
// factory's GlobalSettings, missing only the fields that have no YAML
// representation (credentials provider, metrics registry, logger) —
// callers fill those in before calling customizer.NewFactory.
func (s *Settings) GlobalSettings() customizer.GlobalSettings {
	return customizer.GlobalSettings{
		ConsumerGroup:            s.ConsumerGroup,
		Region:                   s.Region,
		KinesisEndpointOverride:  s.KinesisURL,
		DynamoDBEndpointOverride: s.DynamoDB.URL,
		DisableCBOR:              s.DisableCBOR,
	}
}

// StreamConfig converts one stream's settings into the customizer's
// StreamConfig, resolving its enum-valued fields and carrying forward
// the root document's lease table capacities — the lease table is
// shared process-wide, so capacity is configured once under
// dynamoDbSettings rather than per stream. Returns
// *customizer.ConfigurationError on an unrecognized enum value.
func (ss StreamSettings) StreamConfig(dynamo DynamoDBSettings) (customizer.StreamConfig, error) {
	level, err := parseMetricsLevel(ss.MetricsLevel)
	if err != nil {
		return customizer.StreamConfig{}, err
	}

	driver, err := parseMetricsDriver(ss.MetricsDriver)
	if err != nil {
		return customizer.StreamConfig{}, err
	}

	strategy, err := parseRetrievalStrategy(ss.RetrievalStrategy)
	if err != nil {
		return customizer.StreamConfig{}, err
	}

	position, err := parseInitialPosition(ss.InitialPositionInStream, ss.AtTimestamp)
	if err != nil {
		return customizer.StreamConfig{}, err
	}

	return customizer.StreamConfig{
		RetrievalStrategy:       strategy,
		InitialPosition:         position,
		MetricsLevel:            level,
		MetricsDriver:           driver,
		RoleArn:                 ss.RoleARN,
		LeaseTableReadCapacity:  dynamo.LeaseTableReadCapacity,
		LeaseTableWriteCapacity: dynamo.LeaseTableWriteCapacity,
	}, nil
}

// CheckpointConfig converts the checkpointing.* section into
// checkpoint.Config, defaulting to BATCH when Strategy is empty, per
// spec §3.
func (cs CheckpointingSettings) CheckpointConfig() (checkpoint.Config, error) {
	strategy := checkpoint.Batch
	switch cs.Strategy {
	case "", "BATCH":
		strategy = checkpoint.Batch
	case "RECORD":
		strategy = checkpoint.Record
	default:
		return checkpoint.Config{}, &customizer.ConfigurationError{
			Reason: fmt.Sprintf("checkpointing.strategy: unrecognized value %q", cs.Strategy),
		}
	}

	return checkpoint.Config{Strategy: strategy, MaxRetries: cs.MaxRetries, Backoff: cs.Backoff}, nil
}

func parseMetricsLevel(v string) (metrics.Level, error) {
	switch v {
	case "", "NONE":
		return metrics.LevelNone, nil
	case "SUMMARY":
		return metrics.LevelSummary, nil
	case "DETAILED":
		return metrics.LevelDetailed, nil
	default:
		return 0, &customizer.ConfigurationError{Reason: fmt.Sprintf("metricsLevel: unrecognized value %q", v)}
	}
}

func parseMetricsDriver(v string) (metrics.Driver, error) {
	switch v {
	case "", "DEFAULT":
		return metrics.DriverDefault, nil
	case "NONE":
		return metrics.DriverNone, nil
	case "LOGGING":
		return metrics.DriverLogging, nil
	case "MICROMETER":
		return metrics.DriverMicrometer, nil
	default:
		return 0, &customizer.ConfigurationError{Reason: fmt.Sprintf("metricsDriver: unrecognized value %q", v)}
	}
}

func parseRetrievalStrategy(v string) (customizer.RetrievalStrategy, error) {
	switch v {
	case "", "FANOUT":
		return customizer.FanOut, nil
	case "POLLING":
		return customizer.Polling, nil
	default:
		return 0, &customizer.ConfigurationError{Reason: fmt.Sprintf("retrievalStrategy: unrecognized value %q", v)}
	}
}

func parseInitialPosition(v string, atTimestamp time.Time) (customizer.InitialPosition, error) {
	switch v {
	case "", "LATEST":
		return customizer.InitialPosition{Kind: customizer.Latest}, nil
	case "TRIM_HORIZON":
		return customizer.InitialPosition{Kind: customizer.TrimHorizon}, nil
	case "AT_TIMESTAMP":
		if atTimestamp.IsZero() {
			return customizer.InitialPosition{}, &customizer.ConfigurationError{
				Reason: "initialPositionInStream: AT_TIMESTAMP requires atTimestamp",
			}
		}
		return customizer.InitialPosition{Kind: customizer.AtTimestamp, Timestamp: atTimestamp}, nil
	default:
		return customizer.InitialPosition{}, &customizer.ConfigurationError{
			Reason: fmt.Sprintf("initialPositionInStream: unrecognized value %q", v),
		}
	}
}
