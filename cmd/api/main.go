package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/bacembenhfayehd/manarja-sub001/internal/config"
	"github.com/bacembenhfayehd/manarja-sub001/internal/database"
	apiHttp "github.com/bacembenhfayehd/manarja-sub001/internal/http"
	importHandler "github.com/bacembenhfayehd/manarja-sub001/internal/http/importcsv"
	entryHandler "github.com/bacembenhfayehd/manarja-sub001/internal/http/timeentry"
	sheetHandler "github.com/bacembenhfayehd/manarja-sub001/internal/http/timesheet"
	"github.com/bacembenhfayehd/manarja-sub001/internal/importer"
	"github.com/bacembenhfayehd/manarja-sub001/internal/relation"
	relationStore "github.com/bacembenhfayehd/manarja-sub001/internal/relation/store"
	"github.com/bacembenhfayehd/manarja-sub001/internal/timeentry"
	entryStore "github.com/bacembenhfayehd/manarja-sub001/internal/timeentry/store"
	"github.com/bacembenhfayehd/manarja-sub001/internal/timesheet"
	sheetStore "github.com/bacembenhfayehd/manarja-sub001/internal/timesheet/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString(), database.Pool{
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	})
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var (
		relationValidator = relation.NewValidator(relationStore.New(db))
		entryService      = timeentry.NewService(entryStore.New(db), relationValidator, cfg.Tracking.Retention)
		timesheetService  = timesheet.NewService(sheetStore.New(db))
		importService     = importer.NewService()
	)

	var (
		entriesH    = entryHandler.NewHandler(entryService)
		timesheetsH = sheetHandler.NewHandler(timesheetService)
		importH     = importHandler.NewHandler(importService, entryService)
	)

	router := apiHttp.New(entriesH, timesheetsH, importH, cfg.Auth.JWTSecret)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
