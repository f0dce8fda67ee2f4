package cmd

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
)

// instanceIdentity is the resolver's output: the cloud-assigned instance id
// and the address ssh will dial. It is obtained fresh on every run and never
// persisted; addresses move between instances over time, and an instance can
// expose a different address on a later run.
type instanceIdentity struct {
	ID      string
	Address string
}

// consoleClient is the minimal control-plane surface ec2ssh needs: instance
// inventory lookup and console output retrieval. *ec2.Client satisfies it;
// tests substitute fakes.
type consoleClient interface {
	DescribeInstances(ctx context.Context, in *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error)
	GetConsoleOutput(ctx context.Context, in *ec2.GetConsoleOutputInput, optFns ...func(*ec2.Options)) (*ec2.GetConsoleOutputOutput, error)
}

// newConsoleClient builds an EC2 client from the SDK's default credential
// chain, honoring --region and --profile overrides.
func newConsoleClient(ctx context.Context) (consoleClient, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfgRegion != "" {
		opts = append(opts, awsconfig.WithRegion(cfgRegion))
	}
	if cfgProfile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(cfgProfile))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}
	return ec2.NewFromConfig(cfg), nil
}

// fetchConsoleOutput retrieves and decodes an instance's console output. The
// EC2 API returns the text base64-encoded; an instance that has produced no
// output yet yields an empty string, not an error.
func fetchConsoleOutput(ctx context.Context, client consoleClient, instanceID string) (string, error) {
	out, err := client.GetConsoleOutput(ctx, &ec2.GetConsoleOutputInput{
		InstanceId: aws.String(instanceID),
	})
	if err != nil {
		return "", fmt.Errorf("get console output: %w", err)
	}
	if out.Output == nil {
		return "", nil
	}
	b, err := base64.StdEncoding.DecodeString(aws.ToString(out.Output))
	if err != nil {
		return "", fmt.Errorf("decode console output: %w", err)
	}
	return string(b), nil
}
