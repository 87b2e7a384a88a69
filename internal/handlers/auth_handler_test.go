package handlers_test

import (
	"net/http"
	"testing"

	"github.com/interserv/agendamento-api/internal/dbtest"
)

func TestRegisterLoginAndMe(t *testing.T) {
	s := newServer(t)

	var reg struct {
		ID          uint   `json:"id"`
		NomeUsuario string `json:"nomeUsuario"`
		Email       string `json:"email"`
		Tipo        string `json:"tipo"`
	}
	code := s.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"nomeUsuario": "  Maria Souza ",
		"email":       " Maria@Example.com ",
		"password":    "segredo123",
		"tipo":        "contratante",
		"cpfUsuario":  "123.456.789-01",
	}, &reg)
	if code != http.StatusCreated {
		t.Fatalf("register status=%d", code)
	}
	if reg.ID == 0 || reg.NomeUsuario != "Maria Souza" || reg.Email != "maria@example.com" || reg.Tipo != "contratante" {
		t.Fatalf("register = %+v", reg)
	}

	var login struct {
		Token       string `json:"token"`
		NomeUsuario string `json:"nomeUsuario"`
		Tipo        string `json:"tipo"`
	}
	code = s.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "MARIA@example.com",
		"password": "segredo123",
	}, &login)
	if code != http.StatusOK || login.Token == "" || login.Tipo != "contratante" {
		t.Fatalf("login status=%d body=%+v", code, login)
	}

	var me struct {
		ID          uint    `json:"id"`
		Email       string  `json:"email"`
		CPFUsuario  *string `json:"cpfUsuario"`
		Senha       *string `json:"senha"`
		Prestador   *idOnly `json:"prestador"`
		Contratante *idOnly `json:"contratante"`
	}
	if code := s.do(http.MethodGet, "/api/user/me", login.Token, nil, &me); code != http.StatusOK {
		t.Fatalf("me status=%d", code)
	}
	if me.ID != reg.ID || me.CPFUsuario == nil || *me.CPFUsuario != "12345678901" {
		t.Fatalf("me = %+v", me)
	}
	if me.Senha != nil || me.Prestador != nil || me.Contratante != nil {
		t.Fatalf("unexpected fields in me: %+v", me)
	}
}

func TestRegisterValidation(t *testing.T) {
	s := newServer(t)
	existing := dbtest.Usuario(t, s.db, "prestador")

	base := func(mut func(map[string]string)) map[string]string {
		body := map[string]string{
			"nomeUsuario": "João",
			"email":       "joao@example.com",
			"password":    "segredo123",
			"tipo":        "prestador",
		}
		mut(body)
		return body
	}

	s.do(http.MethodPost, "/api/auth/register", "", base(func(b map[string]string) {
		b["email"] = "comcpf@example.com"
		b["cpfUsuario"] = "98765432100"
	}), nil)

	cases := []struct {
		name   string
		body   any
		status int
		code   string
	}{
		{"json quebrado", `{"nomeUsuario":`, http.StatusBadRequest, "dados_invalidos"},
		{"sem nome", base(func(b map[string]string) { b["nomeUsuario"] = "  " }), http.StatusBadRequest, "nome_obrigatorio"},
		{"sem email", base(func(b map[string]string) { b["email"] = "" }), http.StatusBadRequest, "email_obrigatorio"},
		{"email malformado", base(func(b map[string]string) { b["email"] = "joao@" }), http.StatusBadRequest, "email_invalido"},
		{"sem senha", base(func(b map[string]string) { b["password"] = " " }), http.StatusBadRequest, "senha_obrigatoria"},
		{"tipo desconhecido", base(func(b map[string]string) { b["tipo"] = "admin" }), http.StatusBadRequest, "tipo_invalido"},
		{"cpf curto", base(func(b map[string]string) { b["cpfUsuario"] = "123" }), http.StatusBadRequest, "cpf_invalido"},
		{"email repetido", base(func(b map[string]string) { b["email"] = existing.Email }), http.StatusConflict, "email_ja_cadastrado"},
		{"cpf repetido", base(func(b map[string]string) { b["cpfUsuario"] = "987.654.321-00" }), http.StatusConflict, "cpf_ja_cadastrado"},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			s.with(t).wantError(http.MethodPost, "/api/auth/register", "", tt.body, tt.status, tt.code)
		})
	}
}

func TestLoginFailures(t *testing.T) {
	s := newServer(t)
	u := dbtest.Usuario(t, s.db, "contratante")

	s.wantError(http.MethodPost, "/api/auth/login", "", map[string]string{"email": u.Email}, http.StatusBadRequest, "credenciais_obrigatorias")
	s.wantError(http.MethodPost, "/api/auth/login", "", map[string]string{"email": u.Email, "password": "errada"}, http.StatusUnauthorized, "invalid_credentials")
	s.wantError(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "ninguem@example.com", "password": "x"}, http.StatusUnauthorized, "invalid_credentials")

	var ok struct {
		Token string `json:"token"`
	}
	if code := s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": u.Email, "password": "segredo123"}, &ok); code != http.StatusOK || ok.Token == "" {
		t.Fatalf("fixture login status=%d", code)
	}
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	s := newServer(t)

	s.wantError(http.MethodGet, "/api/user/me", "", nil, http.StatusUnauthorized, "missing_authorization_header")
	s.wantError(http.MethodGet, "/api/agendamentos/cliente", "nao-e-um-jwt", nil, http.StatusUnauthorized, "invalid_token")

	var health struct {
		OK bool `json:"ok"`
	}
	if code := s.do(http.MethodGet, "/api/health", "", nil, &health); code != http.StatusOK || !health.OK {
		t.Fatalf("health status=%d", code)
	}
}
