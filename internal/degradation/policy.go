// Package degradation decides once, at startup, whether the inventory is
// served from the live provider or from synthetic data.
package degradation

import (
	"context"
	"fmt"

	"github.com/catherinevee/inventorymgr/internal/logger"
	"github.com/catherinevee/inventorymgr/internal/observability/metrics"
	"github.com/catherinevee/inventorymgr/internal/providers"
	errorspkg "github.com/catherinevee/inventorymgr/internal/shared/errors"
	"github.com/catherinevee/inventorymgr/pkg/models"
)

// Options configures the policy
type Options struct {
	// ForceMock skips the provider entirely
	ForceMock bool

	// Initializer builds the live session. Nil means no provider is configured.
	Initializer providers.Initializer

	Metrics *metrics.Metrics
}

// Policy is the immutable live/mock decision. It has no lazy retry: once
// non-live, it stays non-live for the lifetime of the process.
type Policy struct {
	live    bool
	session *providers.Session
	reason  string
	err     error
}

// New evaluates the policy. It never fails: every error, including a panic
// inside the initializer, resolves to non-live with the cause logged once.
func New(ctx context.Context, opts Options, log logger.Logger) *Policy {
	if log == nil {
		log = logger.Nop()
	}
	log = log.WithFields(logger.String("component", "degradation"))

	p := evaluate(ctx, opts)
	opts.Metrics.SetDegraded(!p.live)

	if p.live {
		log.Info("Provider available, serving live inventory",
			logger.String("tenancy_id", p.session.TenancyID),
			logger.String("tenancy", p.session.TenancyName),
			logger.String("region", p.session.Region),
		)
	} else {
		fields := []logger.Field{logger.String("reason", p.reason)}
		if p.err != nil {
			fields = append(fields, logger.Error(p.err))
		}
		log.Warn("Provider unavailable, serving mock inventory", fields...)
	}

	return p
}

// NewLive builds a live policy around an existing session
func NewLive(session *providers.Session) *Policy {
	return &Policy{live: true, session: session, reason: "live"}
}

// NewMock builds a non-live policy
func NewMock(reason string) *Policy {
	return &Policy{reason: reason}
}

func evaluate(ctx context.Context, opts Options) (p *Policy) {
	if opts.ForceMock {
		return NewMock("mock mode forced by configuration")
	}
	if opts.Initializer == nil {
		return NewMock("no provider configured")
	}

	defer func() {
		if r := recover(); r != nil {
			err := errorspkg.NewConfigurationError("provider initialization panicked", fmt.Errorf("%v", r))
			p = &Policy{reason: "provider initialization panicked", err: err}
		}
	}()

	session, err := opts.Initializer.Initialize(ctx)
	if err != nil {
		return &Policy{reason: "provider initialization failed", err: err}
	}
	if session == nil || session.Clients == nil || session.TenancyID == "" {
		return NewMock("provider returned an incomplete session")
	}

	return NewLive(session)
}

// IsLive reports whether the live provider is used
func (p *Policy) IsLive() bool {
	return p.live
}

// Clients returns the live clients. In mock mode the set is empty.
func (p *Policy) Clients() *providers.Clients {
	if !p.live {
		return &providers.Clients{}
	}
	return p.session.Clients
}

// TenancyID is the root scope id: the real tenancy when live, the mock root otherwise
func (p *Policy) TenancyID() string {
	if !p.live {
		return models.MockRootID
	}
	return p.session.TenancyID
}

// TenancyName is the name returned by the credential probe, empty in mock mode
func (p *Policy) TenancyName() string {
	if !p.live {
		return ""
	}
	return p.session.TenancyName
}

// Region is the live region, empty in mock mode
func (p *Policy) Region() string {
	if !p.live {
		return ""
	}
	return p.session.Region
}

// Reason explains the decision
func (p *Policy) Reason() string {
	return p.reason
}

// Err is the initialization failure behind a non-live decision, if any
func (p *Policy) Err() error {
	return p.err
}
