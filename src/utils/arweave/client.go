package arweave

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/CalebEverett/arloader/src/utils/config"
	"github.com/CalebEverett/arloader/src/utils/logger"
)

type contextKey int

const (
	// Disables turning non-2xx responses into errors, used by endpoints
	// that read meaning out of 202/404.
	ContextRawStatus contextKey = iota
)

type Client struct {
	client  *resty.Client
	config  *config.Config
	log     *logrus.Entry
	limiter *rate.Limiter
}

func NewClient(config *config.Config) (self *Client) {
	self = new(Client)
	self.config = config
	self.log = logger.NewSublogger("arweave-client")
	self.limiter = rate.NewLimiter(rate.Limit(config.Arweave.LimiterRPS), 1)

	self.client =
		resty.New().
			SetBaseURL(config.Arweave.BaseUrl).
			SetTimeout(config.Arweave.RequestTimeout).
			SetHeader("User-Agent", "arloader").
			SetLogger(NewLogger()).
			SetTransport(self.createTransport()).
			SetRetryCount(config.Arweave.RetryMaxAttempts - 1).
			SetRetryWaitTime(config.Arweave.RetryBaseInterval).
			SetRetryMaxWaitTime(config.Arweave.RetryMaxInterval).
			AddRetryCondition(self.onRetryCondition).
			OnBeforeRequest(self.onRateLimit).
			OnAfterResponse(self.onStatusToError)

	return
}

func (self *Client) createTransport() *http.Transport {
	dialer := &net.Dialer{
		Timeout:   self.config.Arweave.DialerTimeout,
		KeepAlive: self.config.Arweave.DialerKeepAlive,
	}

	return &http.Transport{
		ForceAttemptHTTP2: true,

		DialContext:           dialer.DialContext,
		TLSHandshakeTimeout:   self.config.Arweave.TLSHandshakeTimeout,
		ExpectContinueTimeout: 1 * time.Second,

		// arweave.net may stop responding on idle connections
		IdleConnTimeout:     self.config.Arweave.IdleConnTimeout,
		MaxIdleConnsPerHost: 1,
	}
}

// Returns true if request should be retried
func (self *Client) onRetryCondition(resp *resty.Response, err error) bool {
	if resp == nil || resp.RawResponse == nil {
		// Connect errors may be retried
		return true
	}
	if resp.StatusCode() == http.StatusTooManyRequests {
		return true
	}

	// Server side errors may be retried, other client errors are permanent
	return resp.StatusCode() >= 500
}

func (self *Client) onRateLimit(c *resty.Client, req *resty.Request) (err error) {
	return self.limiter.Wait(req.Context())
}

func (self *Client) onStatusToError(c *resty.Client, resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}

	if raw, ok := resp.Request.Context().Value(ContextRawStatus).(bool); ok && raw {
		return nil
	}

	if resp.StatusCode() > 399 && resp.StatusCode() < 500 {
		self.log.WithField("status", resp.StatusCode()).
			WithField("resp", string(resp.Body())).
			WithField("url", resp.Request.URL).
			Debug("Bad request")
	}

	switch resp.StatusCode() {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusRequestEntityTooLarge:
		return ErrPayloadTooLarge
	default:
		return fmt.Errorf("%w: %s", ErrBadRequest, resp.Status())
	}
}

// https://docs.arweave.org/developers/server/http-api#network-info
func (self *Client) GetNetworkInfo(ctx context.Context) (out *NetworkInfo, err error) {
	resp, err := self.client.R().
		SetContext(ctx).
		ForceContentType("application/json").
		SetResult(&NetworkInfo{}).
		Get("/info")
	if err != nil {
		return
	}

	out, ok := resp.Result().(*NetworkInfo)
	if !ok {
		err = ErrFailedToParse
		return
	}

	return
}

// https://docs.arweave.org/developers/server/http-api#get-transaction-price
func (self *Client) GetPrice(ctx context.Context, bytes uint64) (out BigInt, err error) {
	resp, err := self.client.R().
		SetContext(ctx).
		SetPathParam("bytes", strconv.FormatUint(bytes, 10)).
		Get("/price/{bytes}")
	if err != nil {
		return
	}

	return BigIntFromString(string(resp.Body()))
}

// https://docs.arweave.org/developers/server/http-api#get-transaction-anchor
func (self *Client) GetTxAnchor(ctx context.Context) (out Base64String, err error) {
	resp, err := self.client.R().
		SetContext(ctx).
		Get("/tx_anchor")
	if err != nil {
		return
	}

	return FromBase64String(string(resp.Body()))
}

// https://docs.arweave.org/developers/server/http-api#submit-a-transaction
func (self *Client) PostTransaction(ctx context.Context, tx *Transaction) (err error) {
	if len(tx.ID) == 0 {
		return ErrUnsignedTx
	}

	_, err = self.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(tx).
		Post("/tx")
	return
}

// https://docs.arweave.org/developers/server/http-api#upload-chunks
func (self *Client) PostChunk(ctx context.Context, chunk *ChunkUpload) (err error) {
	_, err = self.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(chunk).
		Post("/chunk")
	return
}

// https://docs.arweave.org/developers/server/http-api#get-transaction-status
//
// Maps gateway semantics onto errors: 404 is ErrNotFound, 202 (and a 200
// with a literal "Pending" body) is ErrPending, 2xx with a JSON body is a
// confirmation.
func (self *Client) GetTxStatus(ctx context.Context, id Base64String) (out *TxStatus, err error) {
	ctx = context.WithValue(ctx, ContextRawStatus, true)

	resp, err := self.client.R().
		SetContext(ctx).
		SetPathParam("id", id.String()).
		Get("/tx/{id}/status")
	if err != nil {
		return
	}

	switch resp.StatusCode() {
	case http.StatusOK:
		if string(resp.Body()) == "Pending" {
			err = ErrPending
			return
		}
		out = new(TxStatus)
		err = json.Unmarshal(resp.Body(), out)
		if err != nil {
			err = ErrFailedToParse
			out = nil
		}
		return
	case http.StatusAccepted:
		err = ErrPending
		return
	case http.StatusNotFound:
		err = ErrNotFound
		return
	default:
		err = fmt.Errorf("%w: %s", ErrBadRequest, resp.Status())
		return
	}
}

// https://docs.arweave.org/developers/server/http-api#get-pending-transactions
func (self *Client) GetPendingCount(ctx context.Context) (out int, err error) {
	resp, err := self.client.R().
		SetContext(ctx).
		ForceContentType("application/json").
		SetResult([]string{}).
		Get("/tx/pending")
	if err != nil {
		return
	}

	ids, ok := resp.Result().(*[]string)
	if !ok {
		err = ErrFailedToParse
		return
	}

	return len(*ids), nil
}

// https://docs.arweave.org/developers/server/http-api#get-wallet-balance
func (self *Client) GetWalletBalance(ctx context.Context, address string) (out BigInt, err error) {
	resp, err := self.client.R().
		SetContext(ctx).
		SetPathParam("address", address).
		Get("/wallet/{address}/balance")
	if err != nil {
		return
	}

	return BigIntFromString(string(resp.Body()))
}

// https://docs.arweave.org/developers/server/http-api#get-transaction-by-id
func (self *Client) GetTransaction(ctx context.Context, id Base64String) (out *Transaction, err error) {
	resp, err := self.client.R().
		SetContext(ctx).
		ForceContentType("application/json").
		SetResult(&Transaction{}).
		SetPathParam("id", id.String()).
		Get("/tx/{id}")
	if err != nil {
		return
	}

	out, ok := resp.Result().(*Transaction)
	if !ok {
		err = ErrFailedToParse
		return
	}

	return
}
