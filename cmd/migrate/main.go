// migrate はusersとitemsのテーブルを作成・更新して終了します。
package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"inventory_backend/internal/platform/config"
	"inventory_backend/internal/platform/db"
	"inventory_backend/internal/platform/logger"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		slog.Info(".env not found; using system environment variables")
	}

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logger.New(os.Stdout, cfg.IsDevelopment()))

	// マイグレーションはここで明示的に行う
	cfg.DB.RunMigrations = false
	gdb, err := db.OpenDB(cfg.DB)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	if err := db.Migrate(gdb); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}
	slog.Info("migration complete", "driver", cfg.DB.Driver)
}
