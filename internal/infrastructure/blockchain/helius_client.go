package blockchain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/caiovicentino/whalescope/internal/domain/entity"
	"github.com/caiovicentino/whalescope/internal/domain/service"
	"github.com/caiovicentino/whalescope/internal/infrastructure/config"
	"github.com/caiovicentino/whalescope/internal/infrastructure/logger"

	"go.uber.org/zap"
)

// TokenProgramID is the SPL token program, used when listing all token
// accounts of an owner
const TokenProgramID = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"

// HeliusClient talks to the Helius enhanced transactions API and RPC node
type HeliusClient struct {
	apiKey     string
	baseURL    string
	rpcURL     string
	httpClient *http.Client
	logger     *logger.Logger
}

// NewHeliusClient creates a Helius-backed blockchain data service
func NewHeliusClient(cfg *config.HeliusConfig, logger *logger.Logger) *HeliusClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}

	return &HeliusClient{
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		rpcURL:     cfg.RPCURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.WithComponent("helius-client"),
	}
}

// rpcRequest is a JSON-RPC 2.0 request envelope
type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

// rpcError is a JSON-RPC error object
type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// GetRecentTransactions fetches enhanced transactions for an address,
// newest first
func (c *HeliusClient) GetRecentTransactions(ctx context.Context, address string, limit int) ([]*entity.RawTransaction, error) {
	url := fmt.Sprintf("%s/v0/addresses/%s/transactions?api-key=%s&limit=%d",
		c.baseURL, address, c.apiKey, limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("helius transactions API returned status %d", resp.StatusCode)
	}

	var transactions []*entity.RawTransaction
	if err := json.NewDecoder(resp.Body).Decode(&transactions); err != nil {
		return nil, fmt.Errorf("failed to decode transactions: %w", err)
	}

	c.logger.Debug("Fetched transactions",
		zap.String("address", address),
		zap.Int("count", len(transactions)))
	return transactions, nil
}

// GetLargestTokenHolders fetches the largest token accounts for a mint
func (c *HeliusClient) GetLargestTokenHolders(ctx context.Context, mint string, limit int) ([]*entity.TokenHolder, error) {
	var result struct {
		Value []struct {
			Address  string  `json:"address"`
			Amount   string  `json:"amount"`
			Decimals int     `json:"decimals"`
			UIAmount float64 `json:"uiAmount"`
		} `json:"value"`
	}

	if err := c.rpcCall(ctx, "getTokenLargestAccounts", []any{mint}, &result); err != nil {
		return nil, err
	}

	holders := make([]*entity.TokenHolder, 0, len(result.Value))
	for _, v := range result.Value {
		if limit > 0 && len(holders) == limit {
			break
		}
		holders = append(holders, &entity.TokenHolder{
			Address:  v.Address,
			Amount:   v.Amount,
			Decimals: v.Decimals,
			UIAmount: v.UIAmount,
		})
	}

	c.logger.Debug("Fetched largest token holders",
		zap.String("mint", mint),
		zap.Int("count", len(holders)))
	return holders, nil
}

// GetTokenAccountsByOwner fetches token accounts held by an owner. An empty
// mint lists all SPL token accounts.
func (c *HeliusClient) GetTokenAccountsByOwner(ctx context.Context, owner, mint string) ([]*entity.TokenHolder, error) {
	filter := map[string]string{"programId": TokenProgramID}
	if mint != "" {
		filter = map[string]string{"mint": mint}
	}

	var result struct {
		Value []struct {
			Pubkey  string `json:"pubkey"`
			Account struct {
				Data struct {
					Parsed struct {
						Info struct {
							Mint        string `json:"mint"`
							TokenAmount struct {
								Amount   string  `json:"amount"`
								Decimals int     `json:"decimals"`
								UIAmount float64 `json:"uiAmount"`
							} `json:"tokenAmount"`
						} `json:"info"`
					} `json:"parsed"`
				} `json:"data"`
			} `json:"account"`
		} `json:"value"`
	}

	params := []any{owner, filter, map[string]string{"encoding": "jsonParsed"}}
	if err := c.rpcCall(ctx, "getTokenAccountsByOwner", params, &result); err != nil {
		return nil, err
	}

	accounts := make([]*entity.TokenHolder, 0, len(result.Value))
	for _, v := range result.Value {
		accounts = append(accounts, &entity.TokenHolder{
			Address:  v.Pubkey,
			Amount:   v.Account.Data.Parsed.Info.TokenAmount.Amount,
			Decimals: v.Account.Data.Parsed.Info.TokenAmount.Decimals,
			UIAmount: v.Account.Data.Parsed.Info.TokenAmount.UIAmount,
		})
	}
	return accounts, nil
}

// rpcCall performs a JSON-RPC call against the Helius RPC endpoint and
// decodes the result field into out
func (c *HeliusClient) rpcCall(ctx context.Context, method string, params []any, out any) error {
	body, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal rpc request: %w", err)
	}

	url := fmt.Sprintf("%s/?api-key=%s", c.rpcURL, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create rpc request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("rpc call %s failed: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("rpc call %s returned status %d", method, resp.StatusCode)
	}

	var envelope struct {
		Result json.RawMessage `json:"result"`
		Error  *rpcError       `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("failed to decode rpc response: %w", err)
	}
	if envelope.Error != nil {
		return fmt.Errorf("rpc call %s failed: %s (code %d)", method, envelope.Error.Message, envelope.Error.Code)
	}

	if err := json.Unmarshal(envelope.Result, out); err != nil {
		return fmt.Errorf("failed to decode rpc result: %w", err)
	}
	return nil
}

var _ service.BlockchainDataService = (*HeliusClient)(nil)
