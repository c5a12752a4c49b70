package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	catalog "flixnet/internal/grpc"
	"flixnet/pkg/models"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:50051", "gRPC catalog address")
	id := flag.Int64("id", 0, "print a single movie instead of the whole catalog")
	flag.Parse()

	conn, err := grpc.NewClient(*addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		fmt.Fprintln(os.Stderr, "dial:", err)
		os.Exit(1)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client := catalog.NewCatalogClient(conn)

	if *id > 0 {
		m, err := client.GetMovie(ctx, *id)
		if err != nil {
			fmt.Fprintln(os.Stderr, "get movie:", err)
			os.Exit(1)
		}
		printMovie(*m)
		return
	}

	movies, err := client.ListMovies(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "list movies:", err)
		os.Exit(1)
	}
	fmt.Printf("%d movies from %s\n", len(movies), *addr)
	for _, m := range movies {
		printMovie(m)
	}
}

func printMovie(m models.Movie) {
	line := fmt.Sprintf("#%d %s", m.ID, m.Title)
	if m.ReleaseYear != nil {
		line += fmt.Sprintf(" (%d)", *m.ReleaseYear)
	}
	if m.Genre != nil {
		line += " [" + *m.Genre + "]"
	}
	if m.Rating != nil {
		line += fmt.Sprintf(" %.1f", *m.Rating)
	}
	fmt.Println(line)
}
