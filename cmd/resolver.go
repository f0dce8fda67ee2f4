package cmd

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// resolveInstance maps a Name tag to exactly one running instance. Zero
// matches is errNotFound; two or more is errAmbiguousName: the tool offers
// no disambiguation, and failing loudly beats guessing which box to trust.
// Resolution is never cached, since addresses are reassigned between runs.
func resolveInstance(ctx context.Context, client consoleClient, name string) (instanceIdentity, error) {
	out, err := client.DescribeInstances(ctx, &ec2.DescribeInstancesInput{
		Filters: []types.Filter{
			{Name: aws.String("tag:Name"), Values: []string{name}},
			{Name: aws.String("instance-state-name"), Values: []string{"running"}},
		},
	})
	if err != nil {
		return instanceIdentity{}, fmt.Errorf("describe instances: %w", err)
	}

	var matches []types.Instance
	for _, r := range out.Reservations {
		for _, inst := range r.Instances {
			// The state filter should already exclude these, but do not
			// trust the backing API to honor it.
			if inst.State != nil && inst.State.Name != types.InstanceStateNameRunning {
				continue
			}
			matches = append(matches, inst)
		}
	}

	if len(matches) == 0 {
		return instanceIdentity{}, fmt.Errorf("%w: %q", errNotFound, name)
	}
	if len(matches) > 1 {
		return instanceIdentity{}, fmt.Errorf("%w: %q matched %d instances", errAmbiguousName, name, len(matches))
	}

	inst := matches[0]
	addr := addressOf(inst)
	if addr == "" {
		// An instance with no reachable address is as unreachable as no
		// instance at all.
		return instanceIdentity{}, fmt.Errorf("%w: %q has no %s address", errNotFound, name, cfgAddress)
	}
	return instanceIdentity{ID: aws.ToString(inst.InstanceId), Address: addr}, nil
}

// addressOf picks the reachable address per --address. Private addressing is
// useful from inside the VPC or over a VPN.
func addressOf(inst types.Instance) string {
	if cfgAddress == "private" {
		return aws.ToString(inst.PrivateIpAddress)
	}
	return aws.ToString(inst.PublicIpAddress)
}
