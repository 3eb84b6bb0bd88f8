package mongo

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/Laisky/errors/v2"
	"github.com/stretchr/testify/require"
	mongoLib "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type seamCounters struct {
	connects    int32
	disconnects int32
}

// installStubSeams replaces the driver seams with counters for the duration
// of one test and clears the shared-client registry around it.
func installStubSeams(t *testing.T) *seamCounters {
	t.Helper()

	resetSharedClients := func() {
		sharedClientsMu.Lock()
		sharedClients = map[string]*sharedClient{}
		sharedClientsMu.Unlock()
	}
	resetSharedClients()

	counters := new(seamCounters)
	oldConnect := connectMongo
	oldPing := pingMongo
	oldDisconnect := disconnectMongo

	connectMongo = func(ctx context.Context, clientOpts *options.ClientOptions) (*mongoLib.Client, error) {
		atomic.AddInt32(&counters.connects, 1)
		cli, err := mongoLib.NewClient(options.Client().ApplyURI("mongodb://example.com"))
		if err != nil {
			return nil, errors.Wrap(err, "new client")
		}
		return cli, nil
	}
	pingMongo = func(ctx context.Context, cli *mongoLib.Client) error {
		return nil
	}
	disconnectMongo = func(ctx context.Context, cli *mongoLib.Client) error {
		atomic.AddInt32(&counters.disconnects, 1)
		return nil
	}

	t.Cleanup(func() {
		connectMongo = oldConnect
		pingMongo = oldPing
		disconnectMongo = oldDisconnect
		resetSharedClients()
	})

	return counters
}

// TestNewDBSharesClient verifies that two handles against the same target
// dial once and disconnect only after the last close.
func TestNewDBSharesClient(t *testing.T) {
	counters := installStubSeams(t)

	ctx := context.Background()
	dial := DialInfo{Addr: "localhost:27017", DBName: "storage", User: "user", Pwd: "pwd"}

	db1, err := NewDB(ctx, dial)
	require.NoError(t, err)
	db2, err := NewDB(ctx, dial)
	require.NoError(t, err)

	require.Equal(t, int32(1), atomic.LoadInt32(&counters.connects))
	require.Same(t, db1.(*db).shared, db2.(*db).shared)

	require.NoError(t, db1.Close(ctx))
	require.Equal(t, int32(0), atomic.LoadInt32(&counters.disconnects))

	require.NoError(t, db2.Close(ctx))
	require.Equal(t, int32(1), atomic.LoadInt32(&counters.disconnects))
}

// TestNewDBSharesClientAcrossDatabases verifies that handles to different
// database names on one target still share the client.
func TestNewDBSharesClientAcrossDatabases(t *testing.T) {
	counters := installStubSeams(t)

	ctx := context.Background()
	dbA, err := NewDB(ctx, DialInfo{Addr: "localhost:27017", DBName: "dbA", User: "user", Pwd: "pwd"})
	require.NoError(t, err)
	dbB, err := NewDB(ctx, DialInfo{Addr: "localhost:27017", DBName: "dbB", User: "user", Pwd: "pwd"})
	require.NoError(t, err)

	require.Same(t, dbA.(*db).shared, dbB.(*db).shared)
	require.Equal(t, int32(1), atomic.LoadInt32(&counters.connects))
	require.Equal(t, "dbA", dbA.CurrentDB().Name())
	require.Equal(t, "dbB", dbB.CurrentDB().Name())

	require.NoError(t, dbA.Close(ctx))
	require.NoError(t, dbB.Close(ctx))
}

// TestNewDBDifferentCredentials verifies that different auth settings get
// separate clients.
func TestNewDBDifferentCredentials(t *testing.T) {
	counters := installStubSeams(t)

	ctx := context.Background()
	dbA, err := NewDB(ctx, DialInfo{Addr: "localhost:27017", DBName: "dbA", User: "userA", Pwd: "pwd"})
	require.NoError(t, err)
	dbB, err := NewDB(ctx, DialInfo{Addr: "localhost:27017", DBName: "dbB", User: "userB", Pwd: "pwd"})
	require.NoError(t, err)

	require.NotSame(t, dbA.(*db).shared, dbB.(*db).shared)
	require.Equal(t, int32(2), atomic.LoadInt32(&counters.connects))

	require.NoError(t, dbA.Close(ctx))
	require.NoError(t, dbB.Close(ctx))
}

func TestBuildMongoURI(t *testing.T) {
	require.Equal(t, "mongodb://localhost:27017/storage",
		buildMongoURI(DialInfo{Addr: "localhost:27017", DBName: "storage"}))
	require.Equal(t, "mongodb://u:p@localhost:27017/storage",
		buildMongoURI(DialInfo{Addr: "localhost:27017", DBName: "storage", User: "u", Pwd: "p"}))
}
