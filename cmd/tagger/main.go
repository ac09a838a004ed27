// Command tagger assigns mood tags to every menu item from its name,
// category and description, or clears them.
package main

import (
	"context"
	"flag"
	"fmt"

	"yumexpress-be/internal/config"
	"yumexpress-be/internal/db"
	"yumexpress-be/internal/logger"
	"yumexpress-be/internal/mood"
	"yumexpress-be/internal/restaurant"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type menuTagStore interface {
	ListMenuItems(ctx context.Context) ([]restaurant.MenuItem, error)
	SetMenuItemTags(ctx context.Context, itemID uuid.UUID, mood string, tags []string) error
	ClearTags(ctx context.Context) (int64, error)
}

func main() {
	mode := flag.String("mode", "assign", "tagging mode: assign or clear")
	flag.Parse()

	cfg := config.LoadDatabaseConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database, err := db.NewDatabase(cfg)
	if err != nil {
		logger.L().Fatal("failed to connect database", zap.Error(err))
	}
	defer database.Close()

	if err := run(context.Background(), restaurant.NewRepository(database), *mode); err != nil {
		logger.L().Fatal("tagging failed", zap.Error(err))
	}
}

func run(ctx context.Context, repo menuTagStore, mode string) error {
	switch mode {
	case "assign":
		return assign(ctx, repo)
	case "clear":
		n, err := repo.ClearTags(ctx)
		if err != nil {
			return err
		}
		logger.L().Info("cleared menu item tags", zap.Int64("items", n))
		return nil
	}
	return fmt.Errorf("unknown mode %q (use assign or clear)", mode)
}

// assign updates items one by one; a failure leaves earlier items tagged.
func assign(ctx context.Context, repo menuTagStore) error {
	items, err := repo.ListMenuItems(ctx)
	if err != nil {
		return err
	}

	counts := make(map[mood.Emotion]int)
	for _, item := range items {
		emotion, tags := mood.TagMenuItem(item.Name, item.Category, item.Description)
		if err := repo.SetMenuItemTags(ctx, item.ID, string(emotion), tags); err != nil {
			return fmt.Errorf("tag %s (%s): %w", item.Name, item.ID, err)
		}
		counts[emotion]++
		logger.L().Debug("tagged menu item",
			zap.String("item", item.Name),
			zap.String("mood", string(emotion)),
			zap.Strings("tags", tags),
		)
	}

	fields := []zap.Field{zap.Int("items", len(items))}
	for _, e := range mood.Emotions {
		fields = append(fields, zap.Int(string(e), counts[e]))
	}
	logger.L().Info("menu items tagged", fields...)
	return nil
}
