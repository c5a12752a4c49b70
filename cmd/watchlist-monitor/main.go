package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/gorilla/websocket"
)

func main() {
	url := flag.String("url", "ws://127.0.0.1:8080/ws/watchlist", "watchlist websocket endpoint")
	token := flag.String("token", os.Getenv("FLIXNET_TOKEN"), "bearer token from POST /login")
	flag.Parse()

	if *token == "" {
		fmt.Fprintln(os.Stderr, "a token is required (-token or FLIXNET_TOKEN)")
		os.Exit(2)
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+*token)
	conn, resp, err := websocket.DefaultDialer.Dial(*url, header)
	if err != nil {
		if resp != nil {
			fmt.Fprintf(os.Stderr, "dial %s: %v (HTTP %d)\n", *url, err, resp.StatusCode)
		} else {
			fmt.Fprintf(os.Stderr, "dial %s: %v\n", *url, err)
		}
		os.Exit(1)
	}
	defer conn.Close()

	fmt.Println("Connected to watchlist events:", *url)
	fmt.Println("Waiting for watchlist updates...")

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			break
		}
		fmt.Println(string(msg))
	}
	fmt.Println("Disconnected.")
}
