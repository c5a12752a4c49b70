package grpc

import (
	"context"
	"net"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"flixnet/pkg/database/dbtest"
)

func dialCatalog(t *testing.T) (*CatalogClient, int64) {
	t.Helper()
	db := dbtest.Open(t)
	id := dbtest.InsertMovie(t, db, "Inception", "Sci-Fi")
	dbtest.InsertMovie(t, db, "Heat", "Crime")

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	RegisterCatalogServer(srv, NewServer(db, zerolog.Nop()))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return NewCatalogClient(conn), id
}

func TestListMovies(t *testing.T) {
	client, _ := dialCatalog(t)

	movies, err := client.ListMovies(context.Background())
	require.NoError(t, err)
	require.Len(t, movies, 2)
	assert.Equal(t, "Inception", movies[0].Title)
	assert.Equal(t, "Heat", movies[1].Title)
}

func TestGetMovie(t *testing.T) {
	client, id := dialCatalog(t)
	ctx := context.Background()

	m, err := client.GetMovie(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, m.ID)
	assert.Equal(t, "Inception", m.Title)
	require.NotNil(t, m.Genre)
	assert.Equal(t, "Sci-Fi", *m.Genre)

	_, err = client.GetMovie(ctx, 999)
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = client.GetMovie(ctx, 0)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}
