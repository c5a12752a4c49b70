package grpc

import (
	"context"

	"google.golang.org/grpc"

	"flixnet/pkg/models"
)

const (
	catalogService   = "flixnet.Catalog"
	getMovieMethod   = "/" + catalogService + "/GetMovie"
	listMoviesMethod = "/" + catalogService + "/ListMovies"
)

type GetMovieRequest struct {
	ID int64 `json:"id"`
}

type ListMoviesRequest struct{}

type ListMoviesResponse struct {
	Movies []models.Movie `json:"movies"`
}

// CatalogServer is the read-only movie catalog exposed over gRPC.
type CatalogServer interface {
	GetMovie(context.Context, *GetMovieRequest) (*models.Movie, error)
	ListMovies(context.Context, *ListMoviesRequest) (*ListMoviesResponse, error)
}

var CatalogServiceDesc = grpc.ServiceDesc{
	ServiceName: catalogService,
	HandlerType: (*CatalogServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetMovie", Handler: getMovieHandler},
		{MethodName: "ListMovies", Handler: listMoviesHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "flixnet/catalog",
}

func RegisterCatalogServer(s grpc.ServiceRegistrar, srv CatalogServer) {
	s.RegisterService(&CatalogServiceDesc, srv)
}

func getMovieHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetMovieRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CatalogServer).GetMovie(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: getMovieMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CatalogServer).GetMovie(ctx, req.(*GetMovieRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func listMoviesHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ListMoviesRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CatalogServer).ListMovies(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: listMoviesMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CatalogServer).ListMovies(ctx, req.(*ListMoviesRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// CatalogClient calls a remote CatalogServer.
type CatalogClient struct {
	cc grpc.ClientConnInterface
}

func NewCatalogClient(cc grpc.ClientConnInterface) *CatalogClient {
	return &CatalogClient{cc: cc}
}

func (c *CatalogClient) GetMovie(ctx context.Context, id int64, opts ...grpc.CallOption) (*models.Movie, error) {
	out := new(models.Movie)
	if err := c.cc.Invoke(ctx, getMovieMethod, &GetMovieRequest{ID: id}, out, withJSON(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CatalogClient) ListMovies(ctx context.Context, opts ...grpc.CallOption) ([]models.Movie, error) {
	out := new(ListMoviesResponse)
	if err := c.cc.Invoke(ctx, listMoviesMethod, &ListMoviesRequest{}, out, withJSON(opts)...); err != nil {
		return nil, err
	}
	return out.Movies, nil
}

func withJSON(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(codecName)}, opts...)
}
