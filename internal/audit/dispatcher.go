package audit

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Ações registradas no ciclo de vida do agendamento.
const (
	ActionAgendamentoCriado    = "agendamento_criado"
	ActionAgendamentoAceito    = "agendamento_aceito"
	ActionAgendamentoConcluido = "agendamento_concluido"
	ActionQREmitido            = "qr_emitido"
	ActionQRValidado           = "qr_validado"
	ActionAvaliacaoCriada      = "avaliacao_criada"
)

type Event struct {
	UsuarioID *uint
	Action    string
	Entity    string
	EntityID  *uint
	Metadata  any
}

// Recorder é o que os casos de uso enxergam da auditoria.
type Recorder interface {
	Dispatch(ev Event)
}

type Nop struct{}

func (Nop) Dispatch(Event) {}

type Dispatcher struct {
	logger *Logger
	log    *zap.Logger
	queue  chan Event

	once sync.Once
	done chan struct{}
}

func NewDispatcher(logger *Logger, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		log:    log,
		queue:  make(chan Event, 100),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := d.logger.Log(ctx, ev); err != nil {
			d.log.Warn("audit error",
				zap.String("action", ev.Action),
				zap.Error(err),
			)
		}
		cancel()
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	defer func() {
		// Dispatch depois do Close não derruba a requisição
		if recover() != nil {
			d.log.Warn("audit closed, dropping event", zap.String("action", ev.Action))
		}
	}()

	select {
	case d.queue <- ev:
	default:
		// fila cheia: auditoria nunca quebra a API
		d.log.Warn("audit queue full, dropping event", zap.String("action", ev.Action))
	}
}

// Close esvazia a fila e espera o worker terminar ou ctx expirar.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.once.Do(func() { close(d.queue) })

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// UintPtr ajuda a preencher UsuarioID/EntityID.
func UintPtr(v uint) *uint { return &v }
