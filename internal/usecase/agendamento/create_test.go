package agendamento

import (
	"context"
	"testing"

	"github.com/interserv/agendamento-api/internal/httperr"
	"github.com/interserv/agendamento-api/internal/models"
)

func TestCreateNormalizesTime(t *testing.T) {
	h := newHarness(t)
	cli := h.contratante(t)

	out, err := h.create.Execute(context.Background(), cli, h.input("2025-03-10", "09:30"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if out.HoraServico != "09:30:00" || out.DataServico != "2025-03-10" {
		t.Fatalf("projection = %s %s", out.DataServico, out.HoraServico)
	}
	if out.Status != "pendente" || out.PrestadorID != nil {
		t.Fatalf("status=%s prestador=%v", out.Status, out.PrestadorID)
	}
	if out.TipoNome == nil || *out.TipoNome != "Elétrica básica" {
		t.Fatalf("tipo_nome = %v", out.TipoNome)
	}

	stored := h.load(t, out.ID)
	if stored.HoraServico.String() != "09:30:00" {
		t.Fatalf("stored hora = %s", stored.HoraServico.String())
	}
	if h.rec.count("agendamento_criado") != 1 {
		t.Fatal("missing audit event")
	}
}

func TestCreateOptionalFields(t *testing.T) {
	h := newHarness(t)
	cli := h.contratante(t)

	in := h.input("2025-03-10", "14:00:00")
	in.DuracaoHoras = strPtr("1,5")
	in.Descricao = strPtr("  trocar tomadas  ")
	in.Endereco = "  Rua X, 10  "

	out, err := h.create.Execute(context.Background(), cli, in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if out.DuracaoHoras == nil || *out.DuracaoHoras != 1.5 {
		t.Fatalf("duracao = %v", out.DuracaoHoras)
	}
	if out.Descricao == nil || *out.Descricao != "trocar tomadas" {
		t.Fatalf("descricao = %v", out.Descricao)
	}
	if out.Endereco != "Rua X, 10" {
		t.Fatalf("endereco = %q", out.Endereco)
	}
}

func TestCreateValidation(t *testing.T) {
	h := newHarness(t)
	cli := h.contratante(t)

	cases := []struct {
		name string
		edit func(*CreateAgendamentoInput)
		code string
	}{
		{"tipo ausente", func(in *CreateAgendamentoInput) { in.TipoServicoID = "" }, "tipo_servico_obrigatorio"},
		{"tipo zero", func(in *CreateAgendamentoInput) { in.TipoServicoID = "0" }, "tipo_servico_obrigatorio"},
		{"tipo texto", func(in *CreateAgendamentoInput) { in.TipoServicoID = "eletrica" }, "tipo_servico_obrigatorio"},
		{"data brasileira", func(in *CreateAgendamentoInput) { in.Data = "10/03/2025" }, "data_invalida"},
		{"data inexistente", func(in *CreateAgendamentoInput) { in.Data = "2025-02-30" }, "data_invalida"},
		{"hora invalida", func(in *CreateAgendamentoInput) { in.Hora = "14h" }, "hora_invalida"},
		{"hora fora do relogio", func(in *CreateAgendamentoInput) { in.Hora = "25:00" }, "hora_invalida"},
		{"endereco vazio", func(in *CreateAgendamentoInput) { in.Endereco = "   " }, "endereco_obrigatorio"},
		{"duracao zero", func(in *CreateAgendamentoInput) { in.DuracaoHoras = strPtr("0") }, "duracao_invalida"},
		{"duracao texto", func(in *CreateAgendamentoInput) { in.DuracaoHoras = strPtr("duas") }, "duracao_invalida"},
		// data e hora erradas: vale o primeiro campo
		{"primeiro erro vence", func(in *CreateAgendamentoInput) { in.Data = "x"; in.Hora = "y" }, "data_invalida"},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			in := h.input("2025-03-10", "14:00")
			tt.edit(&in)

			_, err := h.create.Execute(context.Background(), cli, in)
			wantCode(t, err, httperr.KindValidation, tt.code)
		})
	}

	var count int64
	h.db.Model(&models.Agendamento{}).Count(&count)
	if count != 0 {
		t.Fatalf("store touched: %d rows", count)
	}
}

func TestCreateRequiresContratanteAndTipo(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	prest, _ := h.prestador(t)
	_, err := h.create.Execute(ctx, prest, h.input("2025-03-10", "14:00"))
	wantCode(t, err, httperr.KindForbidden, "perfil_contratante_nao_encontrado")

	cli := h.contratante(t)
	in := h.input("2025-03-10", "14:00")
	in.TipoServicoID = "999"
	_, err = h.create.Execute(ctx, cli, in)
	wantCode(t, err, httperr.KindNotFound, "tipo_servico_nao_encontrado")
}
