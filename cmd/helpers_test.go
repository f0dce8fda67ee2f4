package cmd

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"
)

// fakeConsoleClient implements consoleClient for tests. It records call
// counts so idempotence properties can assert that the side channel was not
// re-fetched. Each instance is returned in its own reservation, which also
// exercises the resolver's reservation flattening.
type fakeConsoleClient struct {
	instances     []types.Instance
	describeErr   error
	consoleOutput string // raw text; base64-encoded on the way out like the real API
	consoleErr    error

	describeCalls int
	consoleCalls  int
}

func (f *fakeConsoleClient) DescribeInstances(_ context.Context, _ *ec2.DescribeInstancesInput, _ ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error) {
	f.describeCalls++
	if f.describeErr != nil {
		return nil, f.describeErr
	}
	out := &ec2.DescribeInstancesOutput{}
	for _, inst := range f.instances {
		out.Reservations = append(out.Reservations, types.Reservation{Instances: []types.Instance{inst}})
	}
	return out, nil
}

func (f *fakeConsoleClient) GetConsoleOutput(_ context.Context, _ *ec2.GetConsoleOutputInput, _ ...func(*ec2.Options)) (*ec2.GetConsoleOutputOutput, error) {
	f.consoleCalls++
	if f.consoleErr != nil {
		return nil, f.consoleErr
	}
	enc := base64.StdEncoding.EncodeToString([]byte(f.consoleOutput))
	return &ec2.GetConsoleOutputOutput{Output: aws.String(enc)}, nil
}

// runningInstance builds a running instance record with the given addresses.
// Empty strings leave the corresponding field unset.
func runningInstance(id, publicIP, privateIP string) types.Instance {
	inst := types.Instance{
		InstanceId: aws.String(id),
		State:      &types.InstanceState{Name: types.InstanceStateNameRunning},
	}
	if publicIP != "" {
		inst.PublicIpAddress = aws.String(publicIP)
	}
	if privateIP != "" {
		inst.PrivateIpAddress = aws.String(privateIP)
	}
	return inst
}

// genHostKey generates a real ed25519 host key and returns its
// authorized_keys line, the way cloud-init prints one between the markers.
func genHostKey(t *testing.T) string {
	t.Helper()
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	sshPub, err := ssh.NewPublicKey(pub)
	require.NoError(t, err)
	return strings.TrimSpace(string(ssh.MarshalAuthorizedKey(sshPub)))
}

// consoleWithKeys wraps key lines in the cloud-init marker block, surrounded
// by typical boot noise.
func consoleWithKeys(keys ...string) string {
	var b strings.Builder
	b.WriteString("[    5.123456] cloud-init: running modules\n")
	b.WriteString(hostKeyBeginMarker + "\n")
	for _, k := range keys {
		b.WriteString(k + "\n")
	}
	b.WriteString(hostKeyEndMarker + "\n")
	b.WriteString("login prompt\n")
	return b.String()
}

// captureTrace redirects diagnostics into a buffer for the test's duration.
func captureTrace(t *testing.T) *bytes.Buffer {
	t.Helper()
	orig := traceWriter
	buf := &bytes.Buffer{}
	traceWriter = buf
	t.Cleanup(func() { traceWriter = orig })
	return buf
}

// resetConfig clears global configuration so tests don't leak state.
func resetConfig() {
	viper.Reset()
	viper.SetEnvPrefix("EC2SSH")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	rootCmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
		// viper.Reset dropped the flag bindings from init; restore them so
		// precedence (flag > env > file > default) holds in tests too.
		_ = viper.BindPFlag(f.Name, f)
	})
	cfgRegion = ""
	cfgProfile = ""
	cfgTrustDir = ""
	cfgAddress = "public"
	cfgSSHCommand = "ssh"
	cfgFileErr = nil
}
