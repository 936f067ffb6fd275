package chain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/projectchronos/chronos/chronos/database/models"
	"github.com/sethvargo/go-retry"
)

const (
	defaultRequestTimeout = 15 * time.Second
	defaultMaxRetries     = 3
	retryBaseDelay        = 500 * time.Millisecond
)

type GatewayConfig struct {
	BaseURL        string `toml:"base_url"`
	APIKey         string `toml:"api_key"`
	RequestTimeout int    `toml:"request_timeout"` // seconds, 0 = default
	MaxRetries     int    `toml:"max_retries"`
}

// Gateway is an HTTP client for the ledger gateway. Mutating calls carry an
// idempotency key so retries never double-mint.
type Gateway struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	maxRetries uint64
}

func NewGateway(cfg GatewayConfig) *Gateway {
	timeout := defaultRequestTimeout
	if cfg.RequestTimeout > 0 {
		timeout = time.Duration(cfg.RequestTimeout) * time.Second
	}
	maxRetries := uint64(defaultMaxRetries)
	if cfg.MaxRetries > 0 {
		maxRetries = uint64(cfg.MaxRetries)
	}
	return &Gateway{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		maxRetries: maxRetries,
	}
}

type mintRequest struct {
	Cards   []models.CardInstance `json:"cards"`
	OwnerID string                `json:"ownerId"`
}

type mintResponse struct {
	TxHash string `json:"txHash"`
	Error  string `json:"error,omitempty"`
}

// MintAndAssign mints the pack's cards and assigns them to the owner on
// chain. Retries with backoff on transient failures; the idempotency key is
// the pack id, so a retry after an ambiguous failure is safe.
func (g *Gateway) MintAndAssign(ctx context.Context, cards []models.CardInstance, ownerID, idempotencyKey string) (string, error) {
	body, err := json.Marshal(mintRequest{Cards: cards, OwnerID: ownerID})
	if err != nil {
		return "", fmt.Errorf("failed to encode mint request: %w", err)
	}

	var ref string
	backoff := retry.WithMaxRetries(g.maxRetries, retry.NewFibonacci(retryBaseDelay))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		resp, err := g.post(ctx, "/erc1155/mintTo", body, idempotencyKey)
		if err != nil {
			return retry.RetryableError(err)
		}
		ref = resp.TxHash
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("mint-and-assign for pack %s: %w", idempotencyKey, err)
	}

	slog.Info("On-chain assignment confirmed",
		slog.String("type", "chain"),
		slog.String("pack_id", idempotencyKey),
		slog.String("tx_hash", ref))
	return ref, nil
}

type transferRequest struct {
	TokenID string `json:"tokenId"`
	To      string `json:"address"`
	Amount  int    `json:"amount"`
}

// Transfer moves an already-minted token to another owner.
func (g *Gateway) Transfer(ctx context.Context, tokenID, toOwnerID string, amount int, idempotencyKey string) (*TxResult, error) {
	if amount <= 0 {
		amount = 1
	}
	body, err := json.Marshal(transferRequest{TokenID: tokenID, To: toOwnerID, Amount: amount})
	if err != nil {
		return nil, fmt.Errorf("failed to encode transfer request: %w", err)
	}

	resp, err := g.post(ctx, "/erc1155/transfer", body, idempotencyKey)
	if err != nil {
		return nil, fmt.Errorf("transfer of token %s: %w", tokenID, err)
	}
	return &TxResult{TxHash: resp.TxHash, TokenID: tokenID, Status: "submitted"}, nil
}

type claimConditionsRequest struct {
	TokenID    string          `json:"tokenId"`
	Conditions ClaimConditions `json:"claimConditions"`
}

// SetClaimConditions configures the on-chain claim rules for a token.
func (g *Gateway) SetClaimConditions(ctx context.Context, tokenID string, conditions ClaimConditions) error {
	body, err := json.Marshal(claimConditionsRequest{TokenID: tokenID, Conditions: conditions})
	if err != nil {
		return fmt.Errorf("failed to encode claim conditions: %w", err)
	}

	if _, err := g.post(ctx, "/erc1155/setClaimingConditions", body, tokenID); err != nil {
		return fmt.Errorf("set claim conditions for token %s: %w", tokenID, err)
	}
	return nil
}

func (g *Gateway) post(ctx context.Context, path string, body []byte, idempotencyKey string) (*mintResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", idempotencyKey)
	if g.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read gateway response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gateway returned %d: %s", resp.StatusCode, string(payload))
	}

	var out mintResponse
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, fmt.Errorf("failed to decode gateway response: %w", err)
	}
	if out.Error != "" {
		return nil, fmt.Errorf("gateway error: %s", out.Error)
	}
	return &out, nil
}
