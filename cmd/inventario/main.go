package main

import (
	"os"

	"github.com/tu-usuario/inventario-equipos/internal/application/report"
	"github.com/tu-usuario/inventario-equipos/internal/application/usecase"
	"github.com/tu-usuario/inventario-equipos/internal/infrastructure/csvfile"
	infraexcel "github.com/tu-usuario/inventario-equipos/internal/infrastructure/excel"
	infrapdf "github.com/tu-usuario/inventario-equipos/internal/infrastructure/pdf"
	"github.com/tu-usuario/inventario-equipos/internal/interfaces/console"
	"github.com/tu-usuario/inventario-equipos/pkg/config"
	"github.com/tu-usuario/inventario-equipos/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("archivo", cfg.Storage.DataFile).
		Msg("iniciando aplicación")

	repo := csvfile.New(cfg.Storage.DataFile, log)
	inventoryUC := usecase.NewInventoryUseCase(repo, log)
	if err := inventoryUC.Load(); err != nil {
		log.Fatal().Err(err).Msg("carga inicial")
	}

	reportUC := report.NewUseCase(
		inventoryUC,
		infrapdf.NewMarotoReportGenerator(),
		infraexcel.NewXLSXReportGenerator(),
	)

	c := console.New(inventoryUC, reportUC, cfg.Export, log, os.Stdin, os.Stdout)
	if err := c.Run(); err != nil {
		log.Fatal().Err(err).Msg("consola")
	}
	log.Info().Msg("fin de sesión")
}
