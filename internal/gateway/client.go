package gateway

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rookgm/gopherstore/internal/models"
	"github.com/shopspring/decimal"
)

const (
	// default time of retry after
	delaySeconds = 60
	apiVersion   = "6"
	userAgent    = "gopherstore"
	// client token schema understood by drop-in UI
	clientTokenVersion = 2
)

// transaction statuses of a refused sale
var declinedStatuses = map[string]bool{
	"processor_declined":  true,
	"gateway_rejected":    true,
	"settlement_declined": true,
	"failed":              true,
	"voided":              true,
}

// Client is Braintree gateway client speaking its XML API
type Client struct {
	client     *http.Client
	baseURL    string
	merchantID string
	publicKey  string
	privateKey string
}

// NewClient creates new Client instance, zero timeout means no timeout
func NewClient(baseURL, merchantID, publicKey, privateKey string, timeout time.Duration) *Client {
	return &Client{
		client: &http.Client{
			Timeout: timeout,
		},
		baseURL:    baseURL,
		merchantID: merchantID,
		publicKey:  publicKey,
		privateKey: privateKey,
	}
}

type typedBool struct {
	Type  string `xml:"type,attr"`
	Value bool   `xml:",chardata"`
}

type typedInt struct {
	Type  string `xml:"type,attr"`
	Value int    `xml:",chardata"`
}

type transactionRequest struct {
	XMLName            xml.Name           `xml:"transaction"`
	Type               string             `xml:"type"`
	Amount             string             `xml:"amount"`
	PaymentMethodNonce string             `xml:"payment-method-nonce"`
	Options            transactionOptions `xml:"options"`
}

type transactionOptions struct {
	SubmitForSettlement typedBool `xml:"submit-for-settlement"`
}

type transaction struct {
	ID                    string `xml:"id"`
	Status                string `xml:"status"`
	Amount                string `xml:"amount"`
	ProcessorResponseCode string `xml:"processor-response-code"`
	ProcessorResponseText string `xml:"processor-response-text"`
}

// apiErrorResponse is body of 422 response
type apiErrorResponse struct {
	XMLName     xml.Name     `xml:"api-error-response"`
	Message     string       `xml:"message"`
	Transaction *transaction `xml:"transaction"`
}

type clientTokenRequest struct {
	XMLName xml.Name `xml:"client-token"`
	Version typedInt `xml:"version"`
}

type clientTokenResponse struct {
	XMLName xml.Name `xml:"client-token"`
	Value   string   `xml:"value"`
}

// Sale captures amount using payment method nonce and submits it for settlement.
// 201 — transaction created, refused transactions are reported as declined.
// 422 — payment method declined or request rejected.
// 429 — too many requests.
// 5xx — gateway unavailable.
func (c *Client) Sale(ctx context.Context, amount decimal.Decimal, nonce string) (*models.Capture, error) {
	// POST /merchants/{merchant_id}/transactions
	saleReq := transactionRequest{
		Type:               "sale",
		Amount:             amount.StringFixed(2),
		PaymentMethodNonce: nonce,
		Options: transactionOptions{
			SubmitForSettlement: typedBool{Type: "boolean", Value: true},
		},
	}

	tx := transaction{}
	status, err := c.post(ctx, "transactions", saleReq, &tx)
	if err != nil {
		return nil, err
	}

	if tx.ID == "" || declinedStatuses[tx.Status] {
		msg := tx.ProcessorResponseText
		if msg == "" {
			msg = "transaction " + tx.Status
		}
		return nil, &models.GatewayError{StatusCode: status, Declined: true, Message: msg}
	}

	captured, err := decimal.NewFromString(tx.Amount)
	if err != nil {
		captured = amount
	}

	return &models.Capture{
		TransactionID: tx.ID,
		Amount:        captured,
		Status:        tx.Status,
		Success:       true,
	}, nil
}

// ClientToken generates token used by client to tokenize payment method
func (c *Client) ClientToken(ctx context.Context) (string, error) {
	// POST /merchants/{merchant_id}/client_token
	tokenReq := clientTokenRequest{Version: typedInt{Type: "integer", Value: clientTokenVersion}}

	tokenResp := clientTokenResponse{}
	status, err := c.post(ctx, "client_token", tokenReq, &tokenResp)
	if err != nil {
		return "", err
	}

	if tokenResp.Value == "" {
		return "", &models.GatewayError{StatusCode: status, Message: "empty client token"}
	}

	return tokenResp.Value, nil
}

// post sends XML request and decodes 2xx response into out.
// Errors are *models.GatewayError; Unknown is set when the request may have been processed.
func (c *Client) post(ctx context.Context, path string, body, out any) (int, error) {
	u, err := url.JoinPath(c.baseURL, "merchants", c.merchantID, path)
	if err != nil {
		return 0, &models.GatewayError{Err: err}
	}

	buf, err := xml.Marshal(body)
	if err != nil {
		return 0, &models.GatewayError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(append([]byte(xml.Header), buf...)))
	if err != nil {
		return 0, &models.GatewayError{Err: err}
	}
	req.SetBasicAuth(c.publicKey, c.privateKey)
	req.Header.Set("Content-Type", "application/xml")
	req.Header.Set("Accept", "application/xml")
	req.Header.Set("X-ApiVersion", apiVersion)
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if resp != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		return 0, &models.GatewayError{Unknown: !notSent(err), Err: err}
	}

	if err := checkStatus(resp); err != nil {
		return resp.StatusCode, err
	}

	if err := xml.NewDecoder(resp.Body).Decode(out); err != nil {
		// accepted by gateway, the outcome can not be read
		return resp.StatusCode, &models.GatewayError{StatusCode: resp.StatusCode, Unknown: true, Err: err}
	}

	return resp.StatusCode, nil
}

// notSent reports whether request failed before reaching the gateway
func notSent(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return true
	}
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

// checkStatus converts non 2xx response to *models.GatewayError
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	gwErr := &models.GatewayError{StatusCode: resp.StatusCode}

	switch {
	case resp.StatusCode == http.StatusUnprocessableEntity:
		gwErr.Declined = true
		apiErr := readAPIError(resp.Body)
		gwErr.Message = apiErr.Message
		if apiErr.Transaction != nil && apiErr.Transaction.ProcessorResponseText != "" {
			gwErr.Message = apiErr.Transaction.ProcessorResponseText
		}
	case resp.StatusCode == http.StatusTooManyRequests:
		gwErr.RetryAfter = retryAfter(resp.Header.Get("Retry-After"))
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		gwErr.Err = errors.New("gateway rejected merchant credentials")
	case resp.StatusCode == http.StatusUpgradeRequired:
		gwErr.Err = errors.New("gateway API version is not supported")
	case resp.StatusCode >= http.StatusInternalServerError:
		gwErr.Err = fmt.Errorf("gateway unavailable: %s", resp.Status)
	}

	return gwErr
}

func readAPIError(r io.Reader) apiErrorResponse {
	apiErr := apiErrorResponse{}
	_ = xml.NewDecoder(io.LimitReader(r, 1<<16)).Decode(&apiErr)
	return apiErr
}

func retryAfter(val string) time.Duration {
	t, err := strconv.Atoi(val)
	if err != nil || t <= 0 {
		t = delaySeconds
	}
	return time.Duration(t) * time.Second
}
