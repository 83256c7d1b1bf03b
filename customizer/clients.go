package customizer

import (
	"crypto/tls"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/kinesis"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// resolvedCredentials returns the factory's default credentials
// provider, or an assumed-role provider scoped to c.cfg.RoleArn when the
// stream declares one.
func (c *StreamCustomizer) resolvedCredentials() aws.CredentialsProvider {
	if c.cfg.RoleArn == "" {
		return c.factory.baseCfg.Credentials
	}

	stsClient := sts.NewFromConfig(c.factory.baseCfg)
	return stscreds.NewAssumeRoleProvider(stsClient, c.cfg.RoleArn)
}

// CustomizeKinesisClientBuilder resolves credentials (assuming RoleArn
// when the stream declares one), sets region and endpoint override, and
// installs an HTTP/1.1 client when the stream uses POLLING retrieval —
// the Go analogue of forcing the inner async HTTP client to HTTP/1.1 in
// the source design.
func (c *StreamCustomizer) CustomizeKinesisClientBuilder(o *kinesis.Options) {
	o.Region = c.factory.settings.Region
	o.Credentials = c.resolvedCredentials()

	if c.factory.settings.KinesisEndpointOverride != "" {
		o.BaseEndpoint = aws.String(c.factory.settings.KinesisEndpointOverride)
	}

	if c.cfg.RetrievalStrategy == Polling {
		o.HTTPClient = http1Client()
	}
}

// CustomizeDynamoClientBuilder sets credentials, region and endpoint
// override for the lease-table client.
func (c *StreamCustomizer) CustomizeDynamoClientBuilder(o *dynamodb.Options) {
	o.Region = c.factory.settings.Region
	o.Credentials = c.resolvedCredentials()

	if c.factory.settings.DynamoDBEndpointOverride != "" {
		o.BaseEndpoint = aws.String(c.factory.settings.DynamoDBEndpointOverride)
	}
}

// CustomizeCloudWatchClientBuilder sets credentials, region and endpoint
// override for the metrics-publishing client.
func (c *StreamCustomizer) CustomizeCloudWatchClientBuilder(o *cloudwatch.Options) {
	o.Region = c.factory.settings.Region
	o.Credentials = c.resolvedCredentials()

	if c.factory.settings.CloudWatchEndpointOverride != "" {
		o.BaseEndpoint = aws.String(c.factory.settings.CloudWatchEndpointOverride)
	}
}

// http1Client returns an HTTP client with HTTP/2 disabled, matching the
// source design's "force HTTP/1.1 on the inner HTTP client" requirement
// for POLLING retrieval.
func http1Client() *awshttp.BuildableClient {
	return awshttp.NewBuildableClient().WithTransportOptions(
		func(tr *http.Transport) {
			tr.ForceAttemptHTTP2 = false
			tr.TLSNextProto = map[string]func(authority string, c *tls.Conn) http.RoundTripper{}
		},
	)
}
