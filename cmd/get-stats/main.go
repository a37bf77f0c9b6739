package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/bennysakos/searchlight/internal/adapters/cache"
	"github.com/bennysakos/searchlight/internal/adapters/playerprovider"
	"github.com/bennysakos/searchlight/internal/app"
	"github.com/bennysakos/searchlight/internal/config"
	"github.com/bennysakos/searchlight/internal/ports"
	"github.com/bennysakos/searchlight/internal/ratelimiting"
)

func printIndented(data []byte) {
	indented := bytes.NewBuffer(nil)
	err := json.Indent(indented, data, "", "  ")
	if err != nil {
		log.Fatalf("Failed to indent response: %v", err)
	}
	fmt.Println(indented.String())
}

func main() {
	baseURL := flag.String("base-url", config.DEFAULT_RATINGS_BASE_URL, "base URL of the ratings site")
	compareWith := flag.String("compare", "", "second username to compare against")
	flag.Parse()

	if flag.NArg() < 1 {
		log.Fatal("No player name provided")
	}
	username := flag.Arg(0)

	httpClient := &http.Client{
		Timeout: 10 * time.Second,
	}

	limiter := ratelimiting.NewWindowLimitRequestLimiter(2, 1*time.Second)

	ratingsAPI, err := playerprovider.NewRatingsAPI(httpClient, *baseURL, limiter)
	if err != nil {
		log.Fatalf("Failed to initialize ratings API: %v", err)
	}

	provider, err := playerprovider.NewRatingsPlayerProvider(ratingsAPI)
	if err != nil {
		log.Fatalf("Failed to initialize player provider: %v", err)
	}

	getPlayer := app.BuildGetPlayerWithCache(cache.NewPlayerCache(1*time.Minute), provider)

	ctx := context.Background()

	if *compareWith != "" {
		comparePlayers := app.BuildComparePlayers(getPlayer)

		compared, err := comparePlayers(ctx, username, *compareWith)
		if err != nil {
			log.Fatalf("Failed to compare players: %v", err)
		}

		data, err := ports.ComparedPlayersToResponseData(compared)
		if err != nil {
			log.Fatalf("Failed to marshal compared players: %v", err)
		}
		printIndented(data)
		return
	}

	player, err := getPlayer(ctx, username)
	if err != nil {
		log.Fatalf("Failed to get player: %v", err)
	}

	data, err := ports.PlayerToResponseData(player)
	if err != nil {
		log.Fatalf("Failed to marshal player: %v", err)
	}
	printIndented(data)
}
