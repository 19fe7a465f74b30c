package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	appLogger "github.com/FACorreiaa/wonder-route/app/logger"
	"github.com/FACorreiaa/wonder-route/config"
	"github.com/FACorreiaa/wonder-route/internal/container"
	"github.com/FACorreiaa/wonder-route/internal/types"
)

var (
	requestFile = flag.String("request", "", "path to a planning request JSON file (stdin when empty)")
	timeout     = flag.Duration("timeout", 90*time.Second, "how long to wait for the model before using the template")
)

func readRequest(path string) (types.PlanningRequest, error) {
	var req types.PlanningRequest
	input := os.Stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return req, fmt.Errorf("failed to open request file: %w", err)
		}
		defer f.Close()
		input = f
	}
	if err := json.NewDecoder(input).Decode(&req); err != nil {
		return req, fmt.Errorf("failed to decode planning request: %w", err)
	}
	return req, nil
}

func main() {
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found or error loading:", err)
	}
	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("FATAL: Error initializing config: %v", err)
	}
	// logs go to stderr so stdout stays pipeable
	logger := appLogger.New(os.Stderr, cfg.IsDevelopment())

	req, err := readRequest(*requestFile)
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	c, err := container.NewContainer(ctx, &cfg, logger)
	if err != nil {
		log.Fatal(err)
	}

	itinerary := c.ItineraryService.Resolve(ctx, req.WithDefaults())

	out, err := json.MarshalIndent(itinerary, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(out))
}
