package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/pcm-dev/programador-os/backend/internal/config"
	"github.com/pcm-dev/programador-os/backend/internal/repository"
	"github.com/pcm-dev/programador-os/backend/internal/scheduling"
	"github.com/pcm-dev/programador-os/backend/internal/seed"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int

	flag.IntVar(&op, "op", 0, "operação (1: planejadores aleatórios, 2: ordens aleatórias, 3: programações aleatórias)")
	flag.IntVar(&n, "n", 0, "quantidade de registros (0 usa o padrão da configuração)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// carregar a configuração
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("não foi possível carregar a configuração", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// criar o pool de conexões
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("não foi possível criar o pool de conexões", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open só cria o pool; é preciso um ping explícito para conectar
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("não foi possível conectar ao banco", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)
	svc := scheduling.NewService(repo)

	switch op {
	case 1:
		if n <= 0 {
			n = cfg.Seed.Planejadores
		}
		seed.SeedPlanejadores(repo, n)
	case 2:
		if n <= 0 {
			n = cfg.Seed.Ordens
		}
		seed.SeedOrdens(repo, n)
	case 3:
		if n <= 0 {
			n = cfg.Seed.Programacoes
		}
		seed.SeedProgramacoes(repo, svc, n)
	default:
		slog.Error("operação não especificada; use -op 1, 2 ou 3")
	}
}
