package main

import (
	"log"

	"go.uber.org/zap"
	"gorm.io/gorm/clause"

	"github.com/interserv/agendamento-api/internal/config"
	dbpkg "github.com/interserv/agendamento-api/internal/db"
	"github.com/interserv/agendamento-api/internal/logger"
	"github.com/interserv/agendamento-api/internal/models"
)

var tiposPadrao = []string{
	"Elétrica básica",
	"Hidráulica básica",
	"Pintura de cômodo",
}

func main() {
	cfg := config.Load()

	zlog, err := logger.New(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		zlog.Fatal("database", zap.Error(err))
	}

	tipos := make([]models.TipoServico, 0, len(tiposPadrao))
	for _, nome := range tiposPadrao {
		tipos = append(tipos, models.TipoServico{Nome: nome})
	}

	// nome é único; rodar de novo não duplica
	res := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "nome"}},
		DoNothing: true,
	}).Create(&tipos)
	if res.Error != nil {
		zlog.Fatal("seed tipos_servico", zap.Error(res.Error))
	}

	zlog.Info("seed concluído", zap.Int64("inseridos", res.RowsAffected))
}
