package agendamento

import "github.com/interserv/agendamento-api/internal/httperr"

// ===============================
// Status do agendamento
// ===============================

type Status string

const (
	StatusPendente  Status = "pendente"
	StatusAceita    Status = "aceita"
	StatusConcluida Status = "concluida"
	// nenhuma operação leva um agendamento a cancelada
	StatusCancelada Status = "cancelada"
)

// OcupaHorario são os status que prendem o prestador naquele dia e hora.
var OcupaHorario = []Status{StatusAceita, StatusConcluida}

func InitialStatus() Status {
	return StatusPendente
}

// CanAccept define se um agendamento pode ser aceito
func CanAccept(current Status) error {
	if current != StatusPendente {
		return ErrSomentePendentes
	}
	return nil
}

// CompletesOnEnd informa se a leitura do QR de término conclui o agendamento.
func CompletesOnEnd(current Status) bool {
	return current == StatusPendente || current == StatusAceita
}

// ===============================
// Erros de negócio
// ===============================

var (
	ErrApenasPrestadores = httperr.Forbidden("apenas_prestadores", "Apenas prestadores.")
	ErrSemPerfilCliente  = httperr.Forbidden("perfil_contratante_nao_encontrado", "Perfil de contratante não encontrado.")
	ErrSemPerfilPrest    = httperr.Forbidden("perfil_prestador_nao_encontrado", "Perfil de prestador não encontrado.")
	ErrPerfilIncompleto  = httperr.Conflict("perfil_prestador_incompleto", "Perfil de prestador não encontrado. Complete seu cadastro de prestador antes de aceitar.")
	ErrAcessoNegado      = httperr.Forbidden("acesso_negado", "Acesso negado.")
	ErrNaoAtribuido      = httperr.Forbidden("nao_atribuido", "Este agendamento não está atribuído a você.")

	ErrAgendamentoNaoEncontrado = httperr.NotFoundErr("agendamento_nao_encontrado", "Agendamento não encontrado.")
	ErrTipoNaoEncontrado        = httperr.NotFoundErr("tipo_servico_nao_encontrado", "Tipo de serviço não encontrado.")

	ErrSomentePendentes = httperr.InvalidState("somente_pendentes", "Somente agendamentos pendentes podem ser aceitos.")
	ErrConflitoHorario  = httperr.Conflict("conflito_de_horario", "Conflito de horário para este prestador.")

	ErrPhaseInvalida    = httperr.Validation("phase_invalida", "phase inválida.")
	ErrTokenObrigatorio = httperr.Validation("dados_invalidos", "Dados inválidos.")
	ErrQRNaoGerado      = httperr.InvalidState("qr_nao_gerado", "QR desta etapa não foi gerado.")
	ErrQRUtilizado      = httperr.Conflict("qr_ja_utilizado", "QR desta etapa já utilizado.")
	ErrForaDeOrdem      = httperr.InvalidState("fase_fora_de_ordem", "Etapa anterior ainda não foi registrada.")
	ErrTokenInvalido    = httperr.Validation("token_invalido", "Token inválido.")
)
