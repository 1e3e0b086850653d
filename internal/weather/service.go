package weather

import (
	"context"
	"log/slog"
	"time"
)

// Acquisition is the outcome of one acquisition step. Reason and Err are
// empty when the reading came from the provider.
type Acquisition struct {
	Reading Reading
	Reason  FailureReason
	Err     error
}

// Poller obtains one reading per cycle and hands it to a publisher.
type Poller struct {
	query     Query
	provider  Provider
	synth     *Synthesizer
	publisher Publisher
	logger    *slog.Logger
	now       func() time.Time
}

// NewPoller creates a Poller. A nil provider means no credential is
// configured and every cycle is synthetic.
func NewPoller(q Query, provider Provider, synth *Synthesizer, publisher Publisher, logger *slog.Logger) *Poller {
	if synth == nil {
		synth = NewSynthesizer(nil, nil)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Poller{
		query:     q,
		provider:  provider,
		synth:     synth,
		publisher: publisher,
		logger:    logger.With("component", "poller"),
		now:       time.Now,
	}
}

// Acquire returns a reading from the provider, or a synthetic one if the
// provider is missing or fails. It never fails.
func (p *Poller) Acquire(ctx context.Context) Acquisition {
	if p.provider == nil {
		return p.synthesize(ReasonNoCredential, nil)
	}

	payload, err := p.provider.Fetch(ctx, p.query)
	if err != nil {
		reason := ReasonOf(err)
		switch reason {
		case ReasonTimeout, ReasonTransport, ReasonCircuitOpen:
			p.logger.Warn("weather fetch failed", "provider", p.provider.Name(), "reason", reason, "error", err)
		default:
			p.logger.Debug("weather fetch unusable", "provider", p.provider.Name(), "reason", reason, "error", err)
		}
		return p.synthesize(reason, err)
	}

	r := payload.Reading(p.query.City)
	r.Source = SourceAPI
	return Acquisition{Reading: r}
}

// RunCycle performs one acquire-then-publish step.
func (p *Poller) RunCycle(ctx context.Context) Acquisition {
	acq := p.Acquire(ctx)
	if p.publisher != nil {
		p.publisher.Publish(acq.Reading)
		if acq.Reason != "" {
			p.publisher.RecordFailure(acq.Reason)
		}
	}
	p.logger.Debug("weather cycle completed",
		"city", acq.Reading.City,
		"source", acq.Reading.Source,
		"temperature", acq.Reading.Temperature,
	)
	return acq
}

func (p *Poller) synthesize(reason FailureReason, err error) Acquisition {
	t := float64(p.now().UnixNano()) / float64(time.Second)
	r := p.synth.Generate(t, p.query.City).Reading(p.query.City)
	r.Source = SourceSynthetic
	return Acquisition{Reading: r, Reason: reason, Err: err}
}
