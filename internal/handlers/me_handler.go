package handlers

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/interserv/agendamento-api/internal/httperr"
	"github.com/interserv/agendamento-api/internal/httpresp"
	"github.com/interserv/agendamento-api/internal/models"
)

var ErrUsuarioNaoEncontrado = httperr.NotFoundErr("usuario_nao_encontrado", "Usuário não encontrado.")

type MeHandler struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewMeHandler(db *gorm.DB, log *zap.Logger) *MeHandler {
	return &MeHandler{db: db, log: log}
}

type MeResponse struct {
	models.Usuario
	Prestador   *models.Prestador   `json:"prestador"`
	Contratante *models.Contratante `json:"contratante"`
}

// GetMe devolve o usuário autenticado com os perfis que ele tiver.
func (h *MeHandler) GetMe(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	user, err := findUsuario(ctx, h.db, actor.UserID)
	if err != nil {
		httperr.Respond(c, h.log, err, "erro_usuario", "Erro ao obter dados do usuário.")
		return
	}

	prest, err := findPerfil[models.Prestador](ctx, h.db, user.ID)
	if err != nil {
		httperr.Respond(c, h.log, err, "erro_usuario", "Erro ao obter dados do usuário.")
		return
	}
	contr, err := findPerfil[models.Contratante](ctx, h.db, user.ID)
	if err != nil {
		httperr.Respond(c, h.log, err, "erro_usuario", "Erro ao obter dados do usuário.")
		return
	}

	httpresp.OK(c, MeResponse{
		Usuario:     *user,
		Prestador:   prest,
		Contratante: contr,
	})
}

func findUsuario(ctx context.Context, db *gorm.DB, id uint) (*models.Usuario, error) {
	var user models.Usuario
	if err := db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUsuarioNaoEncontrado
		}
		return nil, err
	}
	return &user, nil
}

// findPerfil devolve nil, nil quando o usuário ainda não tem o perfil.
func findPerfil[T models.Prestador | models.Contratante](ctx context.Context, db *gorm.DB, usuarioID uint) (*T, error) {
	var p T
	err := db.WithContext(ctx).Where("usuario_id = ?", usuarioID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
