package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/interserv/agendamento-api/internal/cache"
	"github.com/interserv/agendamento-api/internal/httperr"
	"github.com/interserv/agendamento-api/internal/httpresp"
	"github.com/interserv/agendamento-api/internal/models"
)

const catalogoCacheKey = "tipos_servico"

type CatalogoHandler struct {
	db    *gorm.DB
	cache cache.Cache
	ttl   time.Duration
	log   *zap.Logger
}

func NewCatalogoHandler(db *gorm.DB, c cache.Cache, ttl time.Duration, log *zap.Logger) *CatalogoHandler {
	if c == nil {
		c = cache.Noop{}
	}
	return &CatalogoHandler{db: db, cache: c, ttl: ttl, log: log}
}

// ListTipos é público. Falha no cache não derruba a rota, só cai no banco.
func (h *CatalogoHandler) ListTipos(c *gin.Context) {
	ctx := c.Request.Context()

	var tipos []models.TipoServico
	hit, err := h.cache.Get(ctx, catalogoCacheKey, &tipos)
	if err != nil {
		h.log.Warn("catalogo cache get", zap.Error(err))
	}
	if hit {
		httpresp.List(c, tipos)
		return
	}

	tipos = nil
	if err := h.db.WithContext(ctx).
		Order("nome ASC").
		Find(&tipos).Error; err != nil {
		httperr.Respond(c, h.log, err, "erro_listar_tipos", "Erro ao listar tipos de serviço.")
		return
	}

	if err := h.cache.Set(ctx, catalogoCacheKey, tipos, h.ttl); err != nil {
		h.log.Warn("catalogo cache set", zap.Error(err))
	}
	httpresp.List(c, tipos)
}
