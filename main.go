package main

import (
	"fmt"
	"log/slog"
	"os"

	"sabores/configs"
	"sabores/pkg/logger"
	"sabores/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := configs.LoadConfig()
	l := logger.NewLogger("sabores", cfg.LogLevel)
	for _, w := range cfg.Warnings {
		l.Warn("startup", "", w)
	}

	// DB
	if err := configs.ConnectionDB(cfg); err != nil {
		l.Error("startup", "", "connect database failed", err)
		os.Exit(1)
	}
	db := configs.DB()

	// migrate
	if err := configs.SetupDatabase(db); err != nil {
		l.Error("startup", "", "migrate failed", err)
		os.Exit(1)
	}
	if err := configs.SeedAdmin(db, cfg, l); err != nil {
		l.Error("startup", "", "seed admin failed", err)
		os.Exit(1)
	}
	if err := configs.SeedCategories(db, l); err != nil {
		l.Error("startup", "", "seed categories failed", err)
		os.Exit(1)
	}

	// HTTP
	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, db, cfg, l)

	addr := fmt.Sprintf(":%s", cfg.Port)
	l.Info("startup", "", "server running", slog.String("addr", addr), slog.String("db_driver", cfg.DBDriver))
	if err := r.Run(addr); err != nil {
		l.Error("startup", "", "server stopped", err)
		os.Exit(1)
	}
}
