// Package retry runs operations with capped exponential backoff.
package retry

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

type Operation = func() error

type Config struct {
	MaxRetries    int
	BackoffFactor float64
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	Jitter        time.Duration
}

func NewDefaultConfig() *Config {
	return &Config{
		MaxRetries:    5,
		BackoffFactor: 2.15,
		InitialDelay:  300 * time.Millisecond,
		MaxDelay:      20 * time.Second,
		Jitter:        50 * time.Millisecond,
	}
}

type Retrier struct {
	config *Config
}

func NewRetrier(config *Config) *Retrier {
	return &Retrier{config: config}
}

func NewDefaultRetrier() *Retrier {
	return NewRetrier(NewDefaultConfig())
}

type unrecoverable struct {
	error
}

func (u unrecoverable) Unwrap() error { return u.error }

// Unrecoverable wraps err so Do returns it immediately instead of retrying.
func Unrecoverable(err error) error {
	if err == nil {
		return nil
	}
	return unrecoverable{err}
}

// Do runs op up to MaxRetries+1 times. Each wait grows by BackoffFactor and
// is capped at MaxDelay, plus up to Jitter of random padding. An
// Unrecoverable error or a finished context ends the attempts early.
func (r *Retrier) Do(ctx context.Context, op Operation) error {
	delay := r.config.InitialDelay

	var err error
	for attempt := 0; attempt <= r.config.MaxRetries; attempt++ {
		if err = op(); err == nil {
			return nil
		}

		var u unrecoverable
		if errors.As(err, &u) {
			return u.error
		}
		if attempt == r.config.MaxRetries {
			break
		}

		jitter := time.Duration(rand.Float64() * float64(r.config.Jitter))
		wait := delay + jitter
		if wait > r.config.MaxDelay {
			wait = r.config.MaxDelay + jitter
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}

		delay = time.Duration(float64(delay) * r.config.BackoffFactor)
		if delay > r.config.MaxDelay {
			delay = r.config.MaxDelay
		}
	}
	return err
}
