// internal/solbc/client.go
package solbc

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
	"go.uber.org/zap"
)

// Client is a thin adapter over the solana-go RPC client. It is
// read-mostly and shared across requests.
type Client struct {
	rpc    *rpc.Client
	url    string
	logger *zap.Logger
}

var ErrAccountNotFound = errors.New("account not found")

// IsAccountNotFoundError reports whether an RPC error means the account
// does not exist (as opposed to the call failing). Nodes answer a
// getTokenAccountBalance for a missing account with code -32602
// "Invalid param: could not find account" rather than a null result, so
// the JSON-RPC error payload has to be inspected, not just the message.
func IsAccountNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, rpc.ErrNotFound) {
		return true
	}
	var rpcErr *jsonrpc.RPCError
	if errors.As(err, &rpcErr) {
		msg := strings.ToLower(rpcErr.Message)
		if rpcErr.Code == invalidParamsCode && strings.Contains(msg, "could not find account") {
			return true
		}
		return strings.Contains(msg, "not found")
	}
	return strings.Contains(strings.ToLower(err.Error()), "not found")
}

// JSON-RPC "invalid params", the code nodes use for missing token accounts.
const invalidParamsCode = -32602

// NewClient creates a client for the given RPC endpoint.
func NewClient(rpcURL string, logger *zap.Logger) *Client {
	return &Client{
		rpc:    rpc.New(rpcURL),
		url:    rpcURL,
		logger: logger.Named("solbc-client"),
	}
}

// URL returns the endpoint the client talks to.
func (c *Client) URL() string { return c.url }

// GetLatestBlockhash fetches the most recent blockhash.
func (c *Client) GetLatestBlockhash(ctx context.Context) (solana.Hash, error) {
	result, err := c.rpc.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		c.logger.Warn("GetLatestBlockhash error", zap.String("endpoint", c.url), zap.Error(err))
		return solana.Hash{}, err
	}
	return result.Value.Blockhash, nil
}

// GetAccountInfo fetches a single account.
func (c *Client) GetAccountInfo(ctx context.Context, pubkey solana.PublicKey) (*rpc.GetAccountInfoResult, error) {
	result, err := c.rpc.GetAccountInfo(ctx, pubkey)
	if err != nil {
		c.logger.Debug("GetAccountInfo error",
			zap.String("pubkey", pubkey.String()),
			zap.Error(err))
		return nil, err
	}
	return result, nil
}

// GetMultipleAccounts fetches a batch of accounts in one request.
func (c *Client) GetMultipleAccounts(ctx context.Context, pubkeys []solana.PublicKey) (*rpc.GetMultipleAccountsResult, error) {
	if len(pubkeys) == 0 {
		return &rpc.GetMultipleAccountsResult{}, nil
	}

	opts := rpc.GetMultipleAccountsOpts{
		Commitment: rpc.CommitmentConfirmed,
		Encoding:   solana.EncodingBase64,
	}

	res, err := c.rpc.GetMultipleAccountsWithOpts(ctx, pubkeys, &opts)
	if err != nil {
		c.logger.Debug("GetMultipleAccounts error", zap.Error(err))
		return nil, err
	}
	return res, nil
}

// GetTokenAccountBalance fetches the raw balance of a token account.
// Returns ErrAccountNotFound when the account does not exist.
func (c *Client) GetTokenAccountBalance(ctx context.Context, account solana.PublicKey) (uint64, error) {
	result, err := c.rpc.GetTokenAccountBalance(ctx, account, rpc.CommitmentConfirmed)
	if err != nil {
		if IsAccountNotFoundError(err) {
			return 0, ErrAccountNotFound
		}
		c.logger.Debug("GetTokenAccountBalance error",
			zap.String("account", account.String()),
			zap.Error(err))
		return 0, err
	}
	if result == nil || result.Value == nil || result.Value.Amount == "" {
		return 0, ErrAccountNotFound
	}

	// SPL balances come back as decimal strings.
	balance, err := strconv.ParseUint(result.Value.Amount, 10, 64)
	if err != nil {
		return 0, err
	}
	return balance, nil
}

// SimulateTransaction simulates a transaction and returns the program error
// payload, if any, for verbatim surfacing.
func (c *Client) SimulateTransaction(ctx context.Context, tx *solana.Transaction) (*SimulationResult, error) {
	result, err := c.rpc.SimulateTransaction(ctx, tx)
	if err != nil {
		c.logger.Error("SimulateTransaction error", zap.Error(err))
		return nil, err
	}
	units := uint64(0)
	if result.Value.UnitsConsumed != nil {
		units = *result.Value.UnitsConsumed
	}
	return &SimulationResult{
		Err:           result.Value.Err,
		Logs:          result.Value.Logs,
		UnitsConsumed: units,
	}, nil
}

// SendTransaction broadcasts a fully signed transaction. Only the
// server-signed free_market path uses this; user transactions are returned
// to the client unsent.
func (c *Client) SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	sig, err := c.rpc.SendTransaction(ctx, tx)
	if err != nil {
		c.logger.Error("SendTransaction error", zap.Error(err))
		return solana.Signature{}, err
	}
	return sig, nil
}

// WaitForConfirmation polls signature status until the transaction is
// confirmed or the timeout elapses.
func (c *Client) WaitForConfirmation(ctx context.Context, signature solana.Signature) error {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()
	timeout := time.After(30 * time.Second)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timeout:
			return errors.New("confirmation timeout")
		case <-ticker.C:
			statuses, err := c.rpc.GetSignatureStatuses(ctx, false, signature)
			if err != nil {
				c.logger.Warn("GetSignatureStatuses error", zap.Error(err))
				continue
			}
			if statuses != nil && len(statuses.Value) > 0 && statuses.Value[0] != nil {
				status := statuses.Value[0]
				if status.ConfirmationStatus == rpc.ConfirmationStatusFinalized ||
					status.ConfirmationStatus == rpc.ConfirmationStatusConfirmed {
					return nil
				}
			}
		}
	}
}

// SimulationResult is the subset of the simulation response the service
// inspects for on-chain precondition errors.
type SimulationResult struct {
	Err           interface{}
	Logs          []string
	UnitsConsumed uint64
}
