package seed

import (
	"errors"
	"log/slog"
	"math/rand"

	"github.com/pcm-dev/programador-os/backend/internal/domain"
	"github.com/pcm-dev/programador-os/backend/internal/repository"
	"github.com/pcm-dev/programador-os/backend/internal/scheduling"
	"github.com/pcm-dev/programador-os/backend/internal/utils"
)

func SeedPlanejadores(repo *repository.Repository, n int) {
	for i := 0; i < n; i++ {
		p := &domain.Planejador{Nome: utils.GerarNomePlanejador()}
		if err := repo.CreatePlanejador(p); err != nil {
			// nome repetido é esperado ao sortear; só registra e segue
			slog.Warn("não foi possível inserir o planejador", slog.String("nome", p.Nome), slog.String("error", err.Error()))
			continue
		}
		slog.Info("planejador inserido", slog.Int64("id", p.ID), slog.String("nome", p.Nome))
	}
}

func SeedOrdens(repo *repository.Repository, n int) {
	ordens := make([]*domain.OrdemServico, 0, n)
	for i := 0; i < n; i++ {
		ordens = append(ordens, utils.GerarOrdemAleatoria(i))
	}

	importadas, ignoradas, err := repo.CreateOrdens(ordens)
	if err != nil {
		slog.Error("não foi possível inserir as ordens", slog.String("error", err.Error()))
		return
	}
	slog.Info("ordens inseridas", slog.Int("importadas", importadas), slog.Int("ignoradas", ignoradas))
}

// SeedProgramacoes cria programações aleatórias passando pelo serviço, para
// que as invariantes de conflito valham também para os dados de exemplo.
// Tentativas rejeitadas por conflito são normais e só contam no log.
func SeedProgramacoes(repo *repository.Repository, svc *scheduling.Service, n int) {
	planejadores, err := repo.GetAllPlanejadores()
	if err != nil || len(planejadores) == 0 {
		slog.Error("não há planejadores para programar; rode a operação 1 antes")
		return
	}

	ordens, err := repo.ListOrdens(nil)
	if err != nil || len(ordens) == 0 {
		slog.Error("não há ordens no catálogo; rode a operação 2 antes")
		return
	}

	criadas, rejeitadas := 0, 0
	for i := 0; i < n; i++ {
		planejador := planejadores[rand.Intn(len(planejadores))]
		ordem := ordens[rand.Intn(len(ordens))]
		horario, periodo := utils.GerarHorarioAleatorio()

		_, err := svc.Criar(&scheduling.NovaProgramacao{
			PlanejadorID:     planejador.ID,
			OrdemID:          ordem.ID,
			Data:             utils.GerarDataAleatoria(),
			Periodo:          periodo,
			Horario:          horario,
			DuracaoMin:       utils.GerarDuracaoAleatoria(),
			ExecutantesTexto: utils.GerarEquipe(),
		})

		var errConflito *scheduling.ErroConflito
		switch {
		case errors.As(err, &errConflito):
			rejeitadas++
		case err != nil:
			slog.Error("não foi possível inserir a programação", slog.String("error", err.Error()))
		default:
			criadas++
		}
	}

	slog.Info("programações inseridas", slog.Int("criadas", criadas), slog.Int("rejeitadas_por_conflito", rejeitadas))
}
