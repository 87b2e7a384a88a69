package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/interserv/agendamento-api/internal/audit"
	"github.com/interserv/agendamento-api/internal/cache"
	"github.com/interserv/agendamento-api/internal/config"
	"github.com/interserv/agendamento-api/internal/handlers"
	infraRepo "github.com/interserv/agendamento-api/internal/infra/repository"
	"github.com/interserv/agendamento-api/internal/middleware"
	"github.com/interserv/agendamento-api/internal/qrtoken"
	"github.com/interserv/agendamento-api/internal/timezone"
	ucAgendamento "github.com/interserv/agendamento-api/internal/usecase/agendamento"
	ucAvaliacao "github.com/interserv/agendamento-api/internal/usecase/avaliacao"
	ucHistorico "github.com/interserv/agendamento-api/internal/usecase/historico"
)

// Deps são os singletons montados pelo main.
type Deps struct {
	DB     *gorm.DB
	Config *config.Config
	Log    *zap.Logger
	Cache  cache.Cache
	Audit  audit.Recorder
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA
	// ======================================================
	agendamentoRepo := infraRepo.NewAgendamentoGormRepository(d.DB)
	avaliacaoRepo := infraRepo.NewAvaliacaoGormRepository(d.DB)

	clock := timezone.ClockIn(cfg.Timezone)
	scanLimiter := middleware.NewRateLimiter(cfg.ScanRatePerMinute, cfg.ScanRateBurst, d.Log)

	// ======================================================
	// USE CASES
	// ======================================================
	agendamentoHandler := handlers.NewAgendamentoHandler(
		ucAgendamento.NewCreateAgendamento(agendamentoRepo, d.Audit),
		ucAgendamento.NewListAgendamentosCliente(agendamentoRepo),
		ucAgendamento.NewListAgendamentosPendentes(agendamentoRepo),
		ucAgendamento.NewListAgendamentosPrestador(agendamentoRepo),
		ucAgendamento.NewAcceptAgendamento(agendamentoRepo, d.Audit),
		ucAgendamento.NewGetStatus(agendamentoRepo),
		ucAgendamento.NewIssueQRCode(agendamentoRepo, qrtoken.New(), d.Audit),
		ucAgendamento.NewScanQRCode(agendamentoRepo, clock, d.Audit),
		cfg.AppURL,
		d.Log,
	)

	avaliacaoHandler := handlers.NewAvaliacaoHandler(
		ucAvaliacao.NewCreateAvaliacao(avaliacaoRepo, d.Audit),
		ucAvaliacao.NewResumoPrestador(avaliacaoRepo),
		d.Log,
	)

	historicoHandler := handlers.NewHistoricoHandler(
		ucHistorico.NewHistoricoCliente(agendamentoRepo),
		d.Log,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.DB, cfg, d.Log)
	meHandler := handlers.NewMeHandler(d.DB, d.Log)
	perfilHandler := handlers.NewPerfilHandler(d.DB, d.Log)
	catalogoHandler := handlers.NewCatalogoHandler(d.DB, d.Cache, cfg.CatalogCacheTTL, d.Log)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB, cfg.Timezone, d.Log)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": true})
		})

		// ------------------------------
		// AUTH / CATÁLOGO (públicos)
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.GET("/tipos-servico", catalogoHandler.ListTipos)

		// ------------------------------
		// API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/user/me", meHandler.GetMe)

			secured.GET("/prestador/me", perfilHandler.PrestadorMe)
			secured.POST("/prestador", perfilHandler.SavePrestador)
			secured.POST("/contratante", perfilHandler.SaveContratante)

			// ------------------------------
			// AGENDAMENTOS
			// ------------------------------
			secured.POST("/agendamentos", agendamentoHandler.Create)
			secured.GET("/agendamentos/cliente", agendamentoHandler.ListCliente)
			secured.GET("/agendamentos/pendentes", agendamentoHandler.ListPendentes)
			secured.GET("/agendamentos/prestador", agendamentoHandler.ListPrestador)
			secured.POST("/agendamentos/:id/aceitar", agendamentoHandler.Aceitar)
			secured.GET("/agendamentos/:id/status", agendamentoHandler.Status)
			secured.GET("/agendamentos/:id/qrcode", agendamentoHandler.QRCode)
			secured.POST("/agendamentos/:id/scan", scanLimiter.Middleware(), agendamentoHandler.Scan)

			// ------------------------------
			// AVALIAÇÕES / HISTÓRICO
			// ------------------------------
			secured.POST("/avaliacoes", avaliacaoHandler.Create)
			secured.GET("/avaliacoes/resumo/:prestadorId", avaliacaoHandler.ResumoPrestador)
			secured.GET("/historico/cliente", historicoHandler.Cliente)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
