package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/interserv/agendamento-api/internal/config"
	"github.com/interserv/agendamento-api/internal/domain/identity"
	"github.com/interserv/agendamento-api/internal/httperr"
	"github.com/interserv/agendamento-api/internal/httpresp"
	"github.com/interserv/agendamento-api/internal/infra/repository"
	"github.com/interserv/agendamento-api/internal/middleware"
	"github.com/interserv/agendamento-api/internal/models"
	"github.com/interserv/agendamento-api/internal/validators"
)

var (
	ErrNomeObrigatorio  = httperr.Validation("nome_obrigatorio", "O nome é obrigatório.")
	ErrEmailObrigatorio = httperr.Validation("email_obrigatorio", "O e-mail é obrigatório.")
	ErrEmailInvalido    = httperr.Validation("email_invalido", "E-mail inválido.")
	ErrDominioEmail     = httperr.Validation("invalid_email_domain", "O domínio do e-mail informado não parece ser válido.")
	ErrSenhaObrigatoria = httperr.Validation("senha_obrigatoria", "A senha é obrigatória.")
	ErrTipoInvalido     = httperr.Validation("tipo_invalido", "Tipo inválido. Use master, prestador ou contratante.")
	ErrCPFInvalido      = httperr.Validation("cpf_invalido", "CPF inválido. Use 11 dígitos numéricos.")
	ErrEmailCadastrado  = httperr.Conflict("email_ja_cadastrado", "Este e-mail já está cadastrado.")
	ErrCPFCadastrado    = httperr.Conflict("cpf_ja_cadastrado", "Este CPF já está cadastrado.")
	ErrRegistroDuplic   = httperr.Conflict("registro_duplicado", "Registro duplicado.")
	ErrLoginObrigatorio = httperr.Validation("credenciais_obrigatorias", "E-mail e senha são obrigatórios.")
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
	log    *zap.Logger
	now    func() time.Time
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, log *zap.Logger) *AuthHandler {
	return &AuthHandler{db: db, config: cfg, log: log, now: time.Now}
}

// --------- Requests ---------

type RegisterRequest struct {
	NomeUsuario string `json:"nomeUsuario"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Tipo        string `json:"tipo"`
	CPFUsuario  string `json:"cpfUsuario"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	nome := strings.TrimSpace(req.NomeUsuario)
	email := validators.NormalizeEmail(req.Email)
	senha := strings.TrimSpace(req.Password)
	cpf := validators.DigitsOnly(req.CPFUsuario)

	var role identity.Role
	err := func() error {
		switch {
		case nome == "":
			return ErrNomeObrigatorio
		case email == "":
			return ErrEmailObrigatorio
		case !validators.IsEmailSyntaxValid(email):
			return ErrEmailInvalido
		case senha == "":
			return ErrSenhaObrigatoria
		}
		var ok bool
		if role, ok = identity.ParseRole(strings.TrimSpace(req.Tipo)); !ok {
			return ErrTipoInvalido
		}
		if cpf != "" && !validators.IsCPF(cpf) {
			return ErrCPFInvalido
		}
		if h.config.CheckEmailDomain && !validators.IsEmailDomainValid(email) {
			return ErrDominioEmail
		}
		return nil
	}()
	if err != nil {
		httperr.Respond(c, h.log, err, "", "")
		return
	}

	ctx := c.Request.Context()
	if err := ensureUnique(h.db.WithContext(ctx), email, cpf, 0); err != nil {
		httperr.Respond(c, h.log, err, "erro_registro", "Erro interno no registro.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.DefaultCost)
	if err != nil {
		httperr.Respond(c, h.log, err, "failed_to_hash_password", "Erro interno no registro.")
		return
	}

	user := models.Usuario{
		NomeUsuario: nome,
		Email:       email,
		SenhaHash:   string(hashed),
		Tipo:        string(role),
	}
	if cpf != "" {
		user.CPFUsuario = &cpf
	}

	if err := h.db.WithContext(ctx).Create(&user).Error; err != nil {
		if repository.IsUniqueViolation(err) {
			err = ErrRegistroDuplic
		}
		httperr.Respond(c, h.log, err, "failed_to_create_user", "Erro interno no registro.")
		return
	}

	httpresp.Created(c, gin.H{
		"id":          user.ID,
		"nomeUsuario": user.NomeUsuario,
		"email":       user.Email,
		"tipo":        user.Tipo,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	email := validators.NormalizeEmail(req.Email)
	senha := strings.TrimSpace(req.Password)
	if email == "" || senha == "" {
		httperr.Respond(c, h.log, ErrLoginObrigatorio, "", "")
		return
	}

	var user models.Usuario
	if err := h.db.WithContext(c.Request.Context()).
		Where("email = ?", email).
		First(&user).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "E-mail ou senha inválidos.")
			return
		}
		httperr.Respond(c, h.log, err, "internal_error", "Erro interno no login.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.SenhaHash), []byte(senha)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "E-mail ou senha inválidos.")
		return
	}

	role, ok := identity.ParseRole(user.Tipo)
	if !ok {
		httperr.Write(c, http.StatusForbidden, "tipo_invalido", "Tipo de usuário inválido.")
		return
	}

	token, err := middleware.SignToken(h.config.JWTSecret, user.ID, role, h.config.JWTTTL, h.now())
	if err != nil {
		httperr.Respond(c, h.log, err, "failed_to_generate_token", "Erro interno no login.")
		return
	}

	httpresp.OK(c, gin.H{
		"token":       token,
		"nomeUsuario": user.NomeUsuario,
		"tipo":        user.Tipo,
	})
}

// ensureUnique confere e-mail e CPF contra outros usuários além de exceptID.
func ensureUnique(db *gorm.DB, email, cpf string, exceptID uint) error {
	taken := func(column, value string) (bool, error) {
		var count int64
		q := db.Model(&models.Usuario{}).Where(column+" = ?", value)
		if exceptID != 0 {
			q = q.Where("id <> ?", exceptID)
		}
		err := q.Count(&count).Error
		return count > 0, err
	}

	if email != "" {
		exists, err := taken("email", email)
		if err != nil {
			return err
		}
		if exists {
			return ErrEmailCadastrado
		}
	}

	if cpf != "" {
		exists, err := taken("cpf_usuario", cpf)
		if err != nil {
			return err
		}
		if exists {
			return ErrCPFCadastrado
		}
	}
	return nil
}
