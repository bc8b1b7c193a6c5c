package task

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Implement operation retrying
type Retry struct {
	ctx             context.Context
	maxElapsedTime  time.Duration
	maxInterval     time.Duration
	initialInterval time.Duration
	maxAttempts     uint64
	onError         func(error)
}

func NewRetry() *Retry {
	return new(Retry)
}

func (self *Retry) WithMaxElapsedTime(maxElapsedTime time.Duration) *Retry {
	self.maxElapsedTime = maxElapsedTime
	return self
}

func (self *Retry) WithMaxInterval(maxInterval time.Duration) *Retry {
	self.maxInterval = maxInterval
	return self
}

func (self *Retry) WithInitialInterval(initialInterval time.Duration) *Retry {
	self.initialInterval = initialInterval
	return self
}

func (self *Retry) WithMaxAttempts(maxAttempts uint64) *Retry {
	self.maxAttempts = maxAttempts
	return self
}

func (self *Retry) WithContext(ctx context.Context) *Retry {
	self.ctx = ctx
	return self
}

func (self *Retry) WithOnError(v func(error)) *Retry {
	self.onError = v
	return self
}

func (self *Retry) onNotify(err error, duration time.Duration) {
	if self.onError != nil {
		self.onError(err)
	}
}

func (self *Retry) Run(f func() error) error {
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = self.maxElapsedTime
	if self.initialInterval > 0 {
		b.InitialInterval = self.initialInterval
	}
	if self.maxInterval > 0 {
		b.MaxInterval = self.maxInterval
	}
	b.RandomizationFactor = 0.25

	ctx := self.ctx
	if ctx == nil {
		ctx = context.Background()
	}

	var policy backoff.BackOff = backoff.WithContext(b, ctx)
	if self.maxAttempts > 0 {
		policy = backoff.WithMaxRetries(policy, self.maxAttempts-1)
	}

	return backoff.RetryNotify(f, policy, self.onNotify)
}
