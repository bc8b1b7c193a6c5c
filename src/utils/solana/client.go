package solana

import (
	"context"
	"errors"
	"net/http"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"github.com/CalebEverett/arloader/src/utils/config"
	"github.com/CalebEverett/arloader/src/utils/logger"
	"github.com/CalebEverett/arloader/src/utils/task"
)

// Minimum lamports accepted per payment.
const Floor = 5000

var ErrEmptySignature = errors.New("co-signer returned an empty signature")

// Client of the payment co-signer. The service receives the deep hash
// digest of the transaction being paid for and the payer's authorization,
// and answers with the Arweave signature to attach.
type Client struct {
	client *resty.Client
	config *config.Config
	log    *logrus.Entry
}

func NewClient(config *config.Config) (self *Client) {
	self = new(Client)
	self.config = config
	self.log = logger.NewSublogger("sol-cosigner")

	self.client = resty.New().
		SetBaseURL(config.Solana.CosignerUrl).
		SetTimeout(config.Arweave.RequestTimeout).
		SetLogger(newRestyLogger())

	return
}

// Winstons of reward per lamport charged.
const Rate = 100_000

// Sign asks the co-signer to pay for and sign a transaction. sigData is
// the 48-byte deep hash digest the signature must commit to.
func (self *Client) Sign(ctx context.Context, keypair *Keypair, sigData []byte, reward uint64) (out *SigResponse, err error) {
	lamports := reward / Rate
	if lamports < Floor {
		lamports = Floor
	}

	request := &SigRequest{
		ArTxSigData: sigData,
		Payer:       keypair.Pubkey(),
		Lamports:    lamports,
		SolTx:       keypair.Sign(sigData),
	}

	err = task.NewRetry().
		WithContext(ctx).
		WithInitialInterval(self.config.Arweave.RetryBaseInterval).
		WithMaxInterval(self.config.Arweave.RetryMaxInterval).
		WithMaxAttempts(uint64(self.config.Arweave.RetryMaxAttempts)).
		WithOnError(func(err error) {
			self.log.WithError(err).Warn("Co-signer request failed, retrying")
		}).
		Run(func() error {
			resp, postErr := self.client.R().
				SetContext(ctx).
				ForceContentType("application/json").
				SetBody(request).
				SetResult(&SigResponse{}).
				Post("/sign")
			if postErr != nil {
				return postErr
			}
			if resp.StatusCode() == http.StatusTooManyRequests || resp.StatusCode() >= 500 {
				return errors.New("co-signer unavailable: " + resp.Status())
			}
			if resp.IsError() {
				// Rejections don't get retried
				return backoff.Permanent(errors.New("co-signer rejected the payment: " + resp.Status()))
			}

			parsed, ok := resp.Result().(*SigResponse)
			if !ok {
				return backoff.Permanent(errors.New("failed to parse co-signer response"))
			}
			if len(parsed.ArTxSig) == 0 {
				return backoff.Permanent(ErrEmptySignature)
			}
			out = parsed
			return nil
		})
	if err != nil {
		out = nil
	}

	return
}

type restyLogger struct {
	log *logrus.Entry
}

func newRestyLogger() *restyLogger {
	return &restyLogger{log: logger.NewSublogger("sol-resty")}
}

func (self *restyLogger) Errorf(format string, v ...interface{}) { self.log.Tracef(format, v...) }
func (self *restyLogger) Warnf(format string, v ...interface{})  { self.log.Tracef(format, v...) }
func (self *restyLogger) Debugf(format string, v ...interface{}) { self.log.Tracef(format, v...) }
