package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/omarvaldez/shopstock-backend/internal/agent"
	"github.com/omarvaldez/shopstock-backend/internal/analytics"
	"github.com/omarvaldez/shopstock-backend/internal/inventory"
	"github.com/omarvaldez/shopstock-backend/pkg/config"
	"github.com/omarvaldez/shopstock-backend/pkg/db"
	"github.com/omarvaldez/shopstock-backend/pkg/logger"
	"github.com/omarvaldez/shopstock-backend/pkg/openai"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "agent", Output: os.Stderr})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "agent",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Output:      os.Stderr,
	})

	ctx := context.Background()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(ctx, "error closing database", err)
		}
	}()

	inventoryService, err := inventory.NewService(inventory.NewRepository(dbClient.DB()), cfg.FeatureFlags)
	if err != nil {
		logg.Error(ctx, "failed to create inventory service", err)
		os.Exit(1)
	}

	analyticsService, err := analytics.NewService(inventoryService)
	if err != nil {
		logg.Error(ctx, "failed to create analytics service", err)
		os.Exit(1)
	}

	registry, err := agent.NewRegistry(inventoryService, analyticsService, nil)
	if err != nil {
		logg.Error(ctx, "failed to build tool registry", err)
		os.Exit(1)
	}

	chatClient, err := openai.NewClient(ctx, cfg.OpenAI, logg)
	if err != nil {
		logg.Error(ctx, "failed to create chat client", err)
		os.Exit(1)
	}

	assistant, err := agent.New(chatClient, registry, logg)
	if err != nil {
		logg.Error(ctx, "failed to create agent", err)
		os.Exit(1)
	}

	fmt.Println("ShopStock inventory assistant. Type a question, or 'exit' to quit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}

		answer, err := assistant.Chat(ctx, line)
		if err != nil {
			logg.Error(ctx, "chat turn failed", err)
			fmt.Println("Sorry, something went wrong. Try again.")
			continue
		}
		fmt.Println(answer)
	}

	if err := scanner.Err(); err != nil {
		logg.Error(ctx, "reading input", err)
		os.Exit(1)
	}
}
