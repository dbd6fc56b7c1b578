package transport

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultSimulatedSuccessRate = 0.8
	DefaultSimulatedLatency     = 1500 * time.Millisecond
)

// Simulated stands in for a real endpoint. It waits for a fixed latency and
// then succeeds with a fixed probability.
type Simulated struct {
	successRate float64
	latency     time.Duration
	logger      *zap.SugaredLogger

	mu  sync.Mutex
	rng *rand.Rand
}

func NewSimulated(successRate float64, latency time.Duration, logger *zap.SugaredLogger) *Simulated {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Simulated{
		successRate: successRate,
		latency:     latency,
		logger:      logger,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// WithSeed makes the outcome sequence deterministic
func (s *Simulated) WithSeed(seed int64) *Simulated {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rng = rand.New(rand.NewSource(seed))
	return s
}

func (s *Simulated) Submit(ctx context.Context, sub Submission) error {
	if s.latency > 0 {
		timer := time.NewTimer(s.latency)
		defer timer.Stop()

		select {
		case <-timer.C:
		case <-ctx.Done():
			return ClassifyError(ctx.Err())
		}
	}

	s.mu.Lock()
	roll := s.rng.Float64()
	s.mu.Unlock()

	if roll >= s.successRate {
		return NewTransportError(ErrServerError, "simulated submission failure", nil)
	}

	s.logger.Debugf("Simulated submission accepted from %s <%s>", sub.Name, sub.Email)
	return nil
}
