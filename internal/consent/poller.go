package consent

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Default polling budget. The CMP's cookie write is asynchronous relative to
// the banner click that triggers it; three one-second attempts covers the
// slowest committed write we have observed in CI.
const (
	DefaultMaxAttempts  = 3
	DefaultPollInterval = time.Second
)

// CookieSource supplies the browser's current cookie snapshot. In production
// this is a live browser tab; tests substitute scripted fakes. A transport
// failure (tab closed, CDP connection torn down) is returned as an error and
// is never retried by the poller.
type CookieSource interface {
	Cookies(ctx context.Context) ([]Cookie, error)
}

// CommitState reports how a polling run ended.
type CommitState int

const (
	// StateCommitted means the consent cookie was observed with consent:yes.
	StateCommitted CommitState = iota
	// StateExhausted means the retry budget ran out before the consent
	// cookie committed. Not an error: the caller decides whether an absent
	// or unconfirmed consent cookie fails the test.
	StateExhausted
)

func (s CommitState) String() string {
	switch s {
	case StateCommitted:
		return "committed"
	case StateExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Poller repeatedly samples a cookie source until the consent cookie is
// observed committed or the attempt budget is exhausted.
type Poller struct {
	CookieName  string
	MaxAttempts int
	Interval    time.Duration

	logger *zap.Logger

	// sleep waits between attempts; overridable in tests so polling runs
	// can be asserted without real time passing.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewPoller builds a poller for the given cookie name. maxAttempts <= 0
// still performs exactly one fetch (do-while semantics); interval <= 0 falls
// back to the default.
func NewPoller(cookieName string, maxAttempts int, interval time.Duration, logger *zap.Logger) *Poller {
	if cookieName == "" {
		cookieName = ConsentCookieName
	}
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Poller{
		CookieName:  cookieName,
		MaxAttempts: maxAttempts,
		Interval:    interval,
		logger:      logger.Named("poller"),
		sleep:       sleepCtx,
	}
}

// AwaitCommit polls src until the consent cookie exists with its consent
// flag reading yes, returning the snapshot that satisfied the check. The
// first fetch always happens before the budget is consulted, so even
// MaxAttempts == 0 yields one attempt. On exhaustion the last snapshot is
// returned with StateExhausted and a nil error. A source error propagates
// unmodified with whatever snapshot was last fetched.
func (p *Poller) AwaitCommit(ctx context.Context, src CookieSource) ([]Cookie, CommitState, error) {
	var snapshot []Cookie
	for attempt := 1; ; attempt++ {
		var err error
		snapshot, err = src.Cookies(ctx)
		if err != nil {
			return snapshot, StateExhausted, err
		}

		if cookie, ok := FindCookie(snapshot, p.CookieName); ok && DecodeFlags(cookie.Value).Consent {
			p.logger.Debug("Consent cookie committed.",
				zap.String("cookie", p.CookieName),
				zap.Int("attempt", attempt))
			return snapshot, StateCommitted, nil
		}

		if attempt >= p.MaxAttempts {
			p.logger.Debug("Consent cookie did not commit within budget.",
				zap.String("cookie", p.CookieName),
				zap.Int("attempts", attempt))
			return snapshot, StateExhausted, nil
		}

		if err := p.sleep(ctx, p.Interval); err != nil {
			return snapshot, StateExhausted, err
		}
	}
}

// sleepCtx waits for d or until the context is done, whichever comes first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
