package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/interserv/agendamento-api/internal/httperr"
	"github.com/interserv/agendamento-api/internal/httpresp"
	"github.com/interserv/agendamento-api/internal/infra/repository"
	"github.com/interserv/agendamento-api/internal/models"
	"github.com/interserv/agendamento-api/internal/optional"
	"github.com/interserv/agendamento-api/internal/validators"
)

// PerfilHandler cuida dos cadastros de prestador e contratante.
// Só os campos enviados no corpo são alterados; string vazia ou null limpa o campo.
type PerfilHandler struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewPerfilHandler(db *gorm.DB, log *zap.Logger) *PerfilHandler {
	return &PerfilHandler{db: db, log: log}
}

// ======================================================
// REQUESTS
// ======================================================

type UsuarioPatch struct {
	NomeUsuario  optional.Value[string] `json:"nomeUsuario"`
	EmailUsuario optional.Value[string] `json:"emailUsuario"`
	CPFUsuario   optional.Value[string] `json:"cpfUsuario"`
}

type SavePrestadorRequest struct {
	UsuarioPatch
	CNPJPrestador optional.Value[string] `json:"cnpjPrestador"`
	CelPrestador  optional.Value[string] `json:"celPrestador"`
}

type SaveContratanteRequest struct {
	UsuarioPatch
	Endereco optional.Value[string] `json:"endereco"`
	Telefone optional.Value[string] `json:"telefone"`
}

type usuarioView struct {
	ID          uint    `json:"id"`
	NomeUsuario string  `json:"nomeUsuario"`
	Email       string  `json:"email"`
	CPFUsuario  *string `json:"cpfUsuario"`
	Tipo        string  `json:"tipo"`
}

func viewOf(u *models.Usuario) usuarioView {
	return usuarioView{
		ID:          u.ID,
		NomeUsuario: u.NomeUsuario,
		Email:       u.Email,
		CPFUsuario:  u.CPFUsuario,
		Tipo:        u.Tipo,
	}
}

// ======================================================
// PRESTADOR
// ======================================================

func (h *PerfilHandler) PrestadorMe(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	user, err := findUsuario(ctx, h.db, actor.UserID)
	if err != nil {
		httperr.Respond(c, h.log, err, "erro_prestador", "Erro ao obter dados do prestador.")
		return
	}
	prest, err := findPerfil[models.Prestador](ctx, h.db, user.ID)
	if err != nil {
		httperr.Respond(c, h.log, err, "erro_prestador", "Erro ao obter dados do prestador.")
		return
	}

	httpresp.OK(c, gin.H{
		"exists":    prest != nil,
		"user":      viewOf(user),
		"prestador": prest,
	})
}

func (h *PerfilHandler) SavePrestador(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}

	var req SavePrestadorRequest
	if !bindJSON(c, &req) {
		return
	}

	var (
		user    *models.Usuario
		prest   *models.Prestador
		created bool
	)
	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var err error
		if user, err = applyUsuarioPatch(tx, actor.UserID, req.UsuarioPatch); err != nil {
			return err
		}

		prest, err = findPerfil[models.Prestador](tx.Statement.Context, tx, user.ID)
		if err != nil {
			return err
		}

		if prest == nil {
			created = true
			prest = &models.Prestador{
				UsuarioID: user.ID,
				CNPJ:      mergeField(req.CNPJPrestador, nil),
				Celular:   mergeField(req.CelPrestador, nil),
			}
			return tx.Create(prest).Error
		}

		prest.CNPJ = mergeField(req.CNPJPrestador, prest.CNPJ)
		prest.Celular = mergeField(req.CelPrestador, prest.Celular)
		return tx.Model(prest).Select("CNPJ", "Celular").Updates(prest).Error
	})
	if err != nil {
		h.respondSave(c, err, "erro_salvar_prestador", "Erro ao salvar dados do prestador.")
		return
	}

	c.JSON(savedStatus(created), gin.H{
		"created":   created,
		"user":      viewOf(user),
		"prestador": prest,
	})
}

// ======================================================
// CONTRATANTE
// ======================================================

func (h *PerfilHandler) SaveContratante(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}

	var req SaveContratanteRequest
	if !bindJSON(c, &req) {
		return
	}

	var (
		user    *models.Usuario
		contr   *models.Contratante
		created bool
	)
	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var err error
		if user, err = applyUsuarioPatch(tx, actor.UserID, req.UsuarioPatch); err != nil {
			return err
		}

		contr, err = findPerfil[models.Contratante](tx.Statement.Context, tx, user.ID)
		if err != nil {
			return err
		}

		if contr == nil {
			created = true
			contr = &models.Contratante{
				UsuarioID: user.ID,
				Endereco:  mergeField(req.Endereco, nil),
				Telefone:  mergeField(req.Telefone, nil),
			}
			return tx.Create(contr).Error
		}

		contr.Endereco = mergeField(req.Endereco, contr.Endereco)
		contr.Telefone = mergeField(req.Telefone, contr.Telefone)
		return tx.Model(contr).Select("Endereco", "Telefone").Updates(contr).Error
	})
	if err != nil {
		h.respondSave(c, err, "erro_salvar_contratante", "Erro ao salvar dados do contratante.")
		return
	}

	c.JSON(savedStatus(created), gin.H{
		"created":     created,
		"user":        viewOf(user),
		"contratante": contr,
	})
}

// ======================================================
// HELPERS
// ======================================================

// applyUsuarioPatch valida e grava os campos do usuário enviados no corpo.
// Nome e e-mail não podem ser apagados; CPF vazio ou null remove o CPF.
func applyUsuarioPatch(tx *gorm.DB, userID uint, p UsuarioPatch) (*models.Usuario, error) {
	user, err := findUsuario(tx.Statement.Context, tx, userID)
	if err != nil {
		return nil, err
	}

	nome, _ := p.NomeUsuario.Map(strings.TrimSpace).Get()
	email, _ := p.EmailUsuario.Map(validators.NormalizeEmail).Get()

	var cpf string
	if v, ok := p.CPFUsuario.Get(); ok {
		cpf = validators.DigitsOnly(v)
		if cpf != "" && !validators.IsCPF(cpf) {
			return nil, ErrCPFInvalido
		}
	}

	if email != "" && email != user.Email && !validators.IsEmailSyntaxValid(email) {
		return nil, ErrEmailInvalido
	}

	checkEmail := email
	if checkEmail == user.Email {
		checkEmail = ""
	}
	checkCPF := cpf
	if user.CPFUsuario != nil && checkCPF == *user.CPFUsuario {
		checkCPF = ""
	}
	if err := ensureUnique(tx, checkEmail, checkCPF, user.ID); err != nil {
		return nil, err
	}

	changes := map[string]any{}
	if nome != "" {
		user.NomeUsuario = nome
		changes["nome_usuario"] = nome
	}
	if email != "" {
		user.Email = email
		changes["email"] = email
	}
	if p.CPFUsuario.Present() {
		if cpf == "" {
			user.CPFUsuario = nil
			changes["cpf_usuario"] = nil
		} else {
			user.CPFUsuario = &cpf
			changes["cpf_usuario"] = cpf
		}
	}

	if len(changes) > 0 {
		if err := tx.Model(user).Updates(changes).Error; err != nil {
			return nil, err
		}
	}
	return user, nil
}

// mergeField aplica um campo opcional sobre o valor atual.
func mergeField(v optional.Value[string], current *string) *string {
	if !v.Present() {
		return current
	}
	s, ok := v.Map(strings.TrimSpace).Get()
	if !ok || s == "" {
		return nil
	}
	return &s
}

func savedStatus(created bool) int {
	if created {
		return http.StatusCreated
	}
	return http.StatusOK
}

func (h *PerfilHandler) respondSave(c *gin.Context, err error, code, message string) {
	var be httperr.BusinessError
	if !errors.As(err, &be) && repository.IsUniqueViolation(err) {
		err = ErrRegistroDuplic
	}
	httperr.Respond(c, h.log, err, code, message)
}
