package main

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flixnet/internal/config"
	"flixnet/pkg/database/dbtest"
)

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func testConfig(t *testing.T) config.Config {
	return config.Config{
		HTTPAddr:      freeAddr(t),
		GRPCAddr:      freeAddr(t),
		JWTSecret:     []byte("serve-secret"),
		TokenTTL:      time.Hour,
		CORSOrigins:   []string{"*"},
		AuthRatePerS:  1,
		AuthRateBurst: 5,
	}
}

func TestServeGRPCBindFailureLeavesNothingRunning(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	cfg := testConfig(t)
	cfg.GRPCAddr = busy.Addr().String()
	db := dbtest.Open(t)

	done := make(chan error, 1)
	go func() { done <- serve(context.Background(), cfg, zerolog.Nop(), db) }()

	select {
	case err := <-done:
		assert.ErrorContains(t, err, "grpc listen")
	case <-time.After(5 * time.Second):
		t.Fatal("serve kept running after the gRPC bind failed")
	}

	l, err := net.Listen("tcp", cfg.HTTPAddr)
	require.NoError(t, err, "HTTP address still bound")
	l.Close()
}

func TestServeShutsDownOnCancel(t *testing.T) {
	cfg := testConfig(t)
	db := dbtest.Open(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- serve(ctx, cfg, zerolog.Nop(), db) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + cfg.HTTPAddr + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	conn, err := net.Dial("tcp", cfg.GRPCAddr)
	require.NoError(t, err)
	conn.Close()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("serve did not stop")
	}
}
