package doctor

import (
	"context"
	"errors"
	"testing"

	"github.com/sarchart/sarchart/pkg/sshutil"
	sshtesting "github.com/sarchart/sarchart/pkg/sshutil/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mockConnection(client *sshtesting.MockClient, dialErr error) (*Connection, *int) {
	dials := 0
	return &Connection{
		Host: "db1",
		Dial: func(ctx context.Context, host string) (sshutil.SSHClient, error) {
			dials++
			if dialErr != nil {
				return nil, dialErr
			}
			return client, nil
		},
	}, &dials
}

func TestRemoteChecks(t *testing.T) {
	client := sshtesting.NewMockClient("db1")
	client.SetCommandResponse("command -v sar", sshtesting.CommandResponse{Stdout: []byte("/usr/bin/sar\n")})
	client.SetCommandResponse("test -d '/var/log/sysstat'", sshtesting.CommandResponse{})
	client.SetCommandResponse("test -d '/var/log/sa dir'", sshtesting.CommandResponse{ExitCode: 1})
	conn, dials := mockConnection(client, nil)

	checks := []Check{
		&SSHCheck{Conn: conn},
		&RemoteSarCheck{Conn: conn},
		&RemoteSaDirCheck{Conn: conn, Dir: "/var/log/sysstat"},
		&RemoteSaDirCheck{Conn: conn, Dir: "/var/log/sa dir"},
	}
	results := RunAll(context.Background(), checks)

	assert.Equal(t, StatusPass, results[0].Status)
	assert.Equal(t, StatusPass, results[1].Status)
	assert.Equal(t, "sar found on db1 at /usr/bin/sar", results[1].Message)
	assert.Equal(t, StatusPass, results[2].Status)
	assert.Equal(t, StatusWarn, results[3].Status)
	assert.Equal(t, 1, *dials)

	require.NoError(t, conn.Close())
	assert.True(t, client.IsClosed())
}

func TestRemoteChecks_SarMissing(t *testing.T) {
	client := sshtesting.NewMockClient("db1")
	conn, _ := mockConnection(client, nil)

	r := (&RemoteSarCheck{Conn: conn}).Run(context.Background())
	assert.Equal(t, StatusFail, r.Status)
	assert.Contains(t, r.Suggestion, "sysstat")
}

func TestRemoteChecks_DialFailure(t *testing.T) {
	conn, dials := mockConnection(nil, errors.New("connection refused"))

	results := RunAll(context.Background(), []Check{
		&SSHCheck{Conn: conn},
		&RemoteSarCheck{Conn: conn},
		&RemoteSaDirCheck{Conn: conn, Dir: "/var/log/sysstat"},
	})
	for _, r := range results {
		assert.Equal(t, StatusFail, r.Status, r.Name)
	}
	assert.Contains(t, results[0].Suggestion, "ssh db1")
	assert.Equal(t, 1, *dials)
	assert.NoError(t, conn.Close())
}
