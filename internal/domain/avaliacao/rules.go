package avaliacao

import (
	"math"

	"github.com/interserv/agendamento-api/internal/httperr"
	"github.com/interserv/agendamento-api/internal/models"
)

const (
	NotaMinima = 1
	NotaMaxima = 5
)

var (
	ErrAgendamentoObrigatorio = httperr.Validation("agendamento_obrigatorio", "agendamentoId obrigatório.")
	ErrNotaInvalida           = httperr.Validation("nota_invalida", "nota deve ser um inteiro de 1 a 5.")
	ErrApenasContratantes     = httperr.Forbidden("apenas_contratantes", "Apenas contratantes.")
	ErrNaoPertence            = httperr.Forbidden("agendamento_nao_pertence", "Este agendamento não pertence a você.")
	ErrNaoConcluido           = httperr.InvalidState("agendamento_nao_concluido", "Só é possível avaliar um agendamento concluído.")
	ErrSemPrestador           = httperr.InvalidState("agendamento_sem_prestador", "Agendamento sem prestador para avaliar.")
	ErrJaAvaliado             = httperr.Conflict("agendamento_ja_avaliado", "Este agendamento já foi avaliado.")
	ErrPrestadorInvalido      = httperr.Validation("prestador_invalido", "prestadorId inválido.")
)

func ValidateNota(n int) error {
	if n < NotaMinima || n > NotaMaxima {
		return ErrNotaInvalida
	}
	return nil
}

// CanRate exige que o agendamento seja do contratante, esteja concluído
// com término registrado e tenha prestador.
func CanRate(ag *models.Agendamento, contratanteID uint) error {
	if ag.ContratanteID != contratanteID {
		return ErrNaoPertence
	}
	if ag.Status != "concluida" || ag.End.At == nil {
		return ErrNaoConcluido
	}
	if ag.PrestadorID == nil {
		return ErrSemPrestador
	}
	return nil
}

type Resumo struct {
	Media        float64
	Total        int
	Distribuicao map[int]int
}

// Resume agrega as notas de um prestador; a média sai com duas casas.
func Resume(notas []int) Resumo {
	r := Resumo{Distribuicao: make(map[int]int, NotaMaxima)}
	for n := NotaMinima; n <= NotaMaxima; n++ {
		r.Distribuicao[n] = 0
	}

	if len(notas) == 0 {
		return r
	}

	soma := 0
	for _, n := range notas {
		if n >= NotaMinima && n <= NotaMaxima {
			r.Distribuicao[n]++
		}
		soma += n
	}

	r.Total = len(notas)
	r.Media = math.Round(float64(soma)/float64(r.Total)*100) / 100
	return r
}
