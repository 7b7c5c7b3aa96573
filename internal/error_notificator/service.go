package error_notificator

import (
	"context"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
)

const (
	DefaultQueueSize   = 64
	DefaultSendTimeout = 10 * time.Second
)

type alert struct {
	op      string
	err     error
	details string
}

// Service queues alerts and delivers them from a single worker (Run), so a
// stalled transport never holds up request handling.
type Service struct {
	infra       Notificator
	log         *logger.ZapLogger
	queue       chan alert
	sendTimeout time.Duration
}

func NewService(infra Notificator, log *logger.ZapLogger) *Service {
	return &Service{
		infra:       infra,
		log:         log,
		queue:       make(chan alert, DefaultQueueSize),
		sendTimeout: DefaultSendTimeout,
	}
}

// Notify enqueues without blocking; when the queue is full the alert is
// dropped and only logged.
func (s *Service) Notify(_ context.Context, op string, err error, details string) error {
	select {
	case s.queue <- alert{op: op, err: err, details: details}:
	default:
		s.log.Log(logger.LogEntry{
			Level:   "warn",
			Message: "[error_notificator] queue full, alert dropped: " + op,
			Error:   err,
			Service: "error_notificator",
		})
	}
	return nil
}

// Run delivers queued alerts until ctx is done.
func (s *Service) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case a := <-s.queue:
			s.send(ctx, a)
		}
	}
}

func (s *Service) send(ctx context.Context, a alert) {
	ctx, cancel := context.WithTimeout(ctx, s.sendTimeout)
	defer cancel()

	if sendErr := s.infra.Notify(ctx, a.op, a.err, a.details); sendErr != nil {
		s.log.Log(logger.LogEntry{
			Level:   "warn",
			Message: "[error_notificator] send fail",
			Error:   sendErr,
			Service: "error_notificator",
		})
	}
}
