//go:build unit

package customizer

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssdkconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/kinesis"
	"github.com/stretchr/testify/require"

	"github.com/streamworks/kinesis-runtime/metrics"
)

func stubLoader(t *testing.T) {
	t.Helper()
	original := defaultConfigLoader
	t.Cleanup(func() { defaultConfigLoader = original })

	defaultConfigLoader = func(ctx context.Context, optFns ...func(*awssdkconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{Region: "us-east-1", Credentials: aws.AnonymousCredentials{}}, nil
	}
}

func TestNewFactory_RequiresConsumerGroup(t *testing.T) {
	t.Parallel()
	stubLoader(t)

	_, err := NewFactory(context.Background(), GlobalSettings{Region: "us-east-1"})
	require.Error(t, err)
	require.IsType(t, &ConfigurationError{}, err)
}

func TestNewFactory_RequiresRegion(t *testing.T) {
	t.Parallel()
	stubLoader(t)

	_, err := NewFactory(context.Background(), GlobalSettings{ConsumerGroup: "billing"})
	require.Error(t, err)
	require.IsType(t, &ConfigurationError{}, err)
}

// P9: ApplicationName == consumerGroup + "_" + streamName.
func TestForStream_ApplicationName_P9(t *testing.T) {
	t.Parallel()
	stubLoader(t)

	f, err := NewFactory(context.Background(), GlobalSettings{ConsumerGroup: "billing", Region: "us-east-1"})
	require.NoError(t, err)

	c, err := f.ForStream("orders", StreamConfig{})
	require.NoError(t, err)
	require.Equal(t, "billing_orders", c.ApplicationName())
}

// P8: WorkerIdentifier is stable across calls, and distinct for two
// customizers of the same stream.
func TestForStream_WorkerIdentifier_P8(t *testing.T) {
	t.Parallel()
	stubLoader(t)

	f, err := NewFactory(context.Background(), GlobalSettings{ConsumerGroup: "billing", Region: "us-east-1"})
	require.NoError(t, err)

	c1, err := f.ForStream("orders", StreamConfig{})
	require.NoError(t, err)
	c2, err := f.ForStream("orders", StreamConfig{})
	require.NoError(t, err)

	require.Equal(t, c1.WorkerIdentifier(), c1.WorkerIdentifier())
	require.NotEqual(t, c1.WorkerIdentifier(), c2.WorkerIdentifier())
}

func TestForStream_RequiresStreamName(t *testing.T) {
	t.Parallel()
	stubLoader(t)

	f, err := NewFactory(context.Background(), GlobalSettings{ConsumerGroup: "billing", Region: "us-east-1"})
	require.NoError(t, err)

	_, err = f.ForStream("", StreamConfig{})
	require.Error(t, err)
	require.IsType(t, &ConfigurationError{}, err)
}

func TestCustomizeRetrieval_PollingForcesHTTP1(t *testing.T) {
	t.Parallel()
	stubLoader(t)

	f, err := NewFactory(context.Background(), GlobalSettings{ConsumerGroup: "billing", Region: "us-east-1"})
	require.NoError(t, err)

	c, err := f.ForStream("orders", StreamConfig{RetrievalStrategy: Polling})
	require.NoError(t, err)

	var rc RetrievalConfig
	c.CustomizeRetrieval(&rc)

	require.Equal(t, Polling, rc.Strategy)
	require.True(t, rc.ForceHTTP1)
}

func TestCustomizeRetrieval_FanOutDoesNotForceHTTP1(t *testing.T) {
	t.Parallel()
	stubLoader(t)

	f, err := NewFactory(context.Background(), GlobalSettings{ConsumerGroup: "billing", Region: "us-east-1"})
	require.NoError(t, err)

	c, err := f.ForStream("orders", StreamConfig{RetrievalStrategy: FanOut})
	require.NoError(t, err)

	var rc RetrievalConfig
	c.CustomizeRetrieval(&rc)

	require.False(t, rc.ForceHTTP1)
}

func TestCustomizeMetrics_MicrometerWithoutRegistry_FallsBackToNullSink(t *testing.T) {
	t.Parallel()
	stubLoader(t)

	f, err := NewFactory(context.Background(), GlobalSettings{ConsumerGroup: "billing", Region: "us-east-1"})
	require.NoError(t, err)

	c, err := f.ForStream("orders", StreamConfig{MetricsDriver: metrics.DriverMicrometer})
	require.NoError(t, err)

	var mc MetricsRuntimeConfig
	c.CustomizeMetrics(&mc)

	require.Nil(t, mc.PrometheusCollectors)
	require.NotNil(t, mc.MeterProvider)
}

func TestCustomizeKinesisClientBuilder_SetsRegionAndEndpoint(t *testing.T) {
	t.Parallel()
	stubLoader(t)

	f, err := NewFactory(
		context.Background(), GlobalSettings{
			ConsumerGroup: "billing", Region: "us-east-1", KinesisEndpointOverride: "http://localhost:4566",
		},
	)
	require.NoError(t, err)

	c, err := f.ForStream("orders", StreamConfig{})
	require.NoError(t, err)

	var opts kinesis.Options
	c.CustomizeKinesisClientBuilder(&opts)

	require.Equal(t, "us-east-1", opts.Region)
	require.NotNil(t, opts.Credentials)
	require.NotNil(t, opts.BaseEndpoint)
	require.Equal(t, "http://localhost:4566", *opts.BaseEndpoint)
}

func TestCustomizeKinesisClientBuilder_PollingForcesHTTP1Client(t *testing.T) {
	t.Parallel()
	stubLoader(t)

	f, err := NewFactory(context.Background(), GlobalSettings{ConsumerGroup: "billing", Region: "us-east-1"})
	require.NoError(t, err)

	c, err := f.ForStream("orders", StreamConfig{RetrievalStrategy: Polling})
	require.NoError(t, err)

	var opts kinesis.Options
	c.CustomizeKinesisClientBuilder(&opts)

	require.NotNil(t, opts.HTTPClient)
}

func TestCustomizeDynamoClientBuilder_SetsRegionAndEndpoint(t *testing.T) {
	t.Parallel()
	stubLoader(t)

	f, err := NewFactory(
		context.Background(), GlobalSettings{
			ConsumerGroup: "billing", Region: "us-east-1", DynamoDBEndpointOverride: "http://localhost:4566",
		},
	)
	require.NoError(t, err)

	c, err := f.ForStream("orders", StreamConfig{})
	require.NoError(t, err)

	var opts dynamodb.Options
	c.CustomizeDynamoClientBuilder(&opts)

	require.Equal(t, "us-east-1", opts.Region)
	require.Equal(t, "http://localhost:4566", *opts.BaseEndpoint)
}

func TestCustomizeCloudWatchClientBuilder_SetsRegion(t *testing.T) {
	t.Parallel()
	stubLoader(t)

	f, err := NewFactory(context.Background(), GlobalSettings{ConsumerGroup: "billing", Region: "us-east-1"})
	require.NoError(t, err)

	c, err := f.ForStream("orders", StreamConfig{})
	require.NoError(t, err)

	var opts cloudwatch.Options
	c.CustomizeCloudWatchClientBuilder(&opts)

	require.Equal(t, "us-east-1", opts.Region)
	require.NotNil(t, opts.Credentials)
}

func TestCustomizeKinesisClientBuilder_AssumesRoleWhenConfigured(t *testing.T) {
	t.Parallel()
	stubLoader(t)

	f, err := NewFactory(context.Background(), GlobalSettings{ConsumerGroup: "billing", Region: "us-east-1"})
	require.NoError(t, err)

	c, err := f.ForStream("orders", StreamConfig{RoleArn: "arn:aws:iam::123456789012:role/reader"})
	require.NoError(t, err)

	var opts kinesis.Options
	c.CustomizeKinesisClientBuilder(&opts)

	require.NotNil(t, opts.Credentials)
}
