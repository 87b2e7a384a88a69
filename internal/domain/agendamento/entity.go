package agendamento

import (
	"crypto/subtle"
	"time"

	"github.com/interserv/agendamento-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Accept(ag *models.Agendamento, prestadorID uint) error {
	if err := CanAccept(Status(ag.Status)); err != nil {
		return err
	}

	ag.Status = string(StatusAceita)
	ag.PrestadorID = &prestadorID
	return nil
}

// CheckRedeem aplica as regras de leitura do QR sobre o estado carregado.
// A etapa anterior é conferida antes do token, então uma leitura fora de
// ordem falha com fase_fora_de_ordem mesmo com token errado.
func CheckRedeem(ag *models.Agendamento, p Phase, token string) error {
	cp := CheckpointOf(ag, p)

	if cp.QR == nil || *cp.QR == "" {
		return ErrQRNaoGerado
	}
	if cp.Used {
		return ErrQRUtilizado
	}
	if prev, ok := p.Previous(); ok && CheckpointOf(ag, prev).At == nil {
		return ErrForaDeOrdem
	}
	if subtle.ConstantTimeCompare([]byte(*cp.QR), []byte(token)) != 1 {
		return ErrTokenInvalido
	}
	return nil
}

// Redeem marca a etapa como usada e conclui o agendamento no término.
func Redeem(ag *models.Agendamento, p Phase, token string, now time.Time) error {
	if err := CheckRedeem(ag, p, token); err != nil {
		return err
	}

	cp := CheckpointOf(ag, p)
	cp.Used = true
	cp.At = &now

	if p == PhaseEnd && CompletesOnEnd(Status(ag.Status)) {
		ag.Status = string(StatusConcluida)
	}
	return nil
}
