// Package plaid imports bank transactions from the Plaid API as cash flow entries.
package plaid

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/Veraticus/erpdash/internal/common"
	"github.com/Veraticus/erpdash/internal/format"
	"github.com/Veraticus/erpdash/internal/model"
	"github.com/Veraticus/erpdash/internal/service"
	"github.com/plaid/plaid-go/v20/plaid"
	"github.com/shopspring/decimal"
)

// Source tags entries imported from Plaid.
const Source = "plaid"

// pageSize is Plaid's maximum page size for /transactions/get.
const pageSize = int32(500)

var environments = map[string]plaid.Environment{
	"sandbox":    plaid.Sandbox,
	"production": plaid.Production,
}

// Error codes worth retrying.
var retryableCodes = map[string]bool{
	"RATE_LIMIT_EXCEEDED":   true,
	"INTERNAL_SERVER_ERROR": true,
	"PLANNED_MAINTENANCE":   true,
	"PRODUCT_NOT_READY":     true,
}

// Config holds Plaid API configuration.
type Config struct {
	ClientID    string
	Secret      string
	Environment string // sandbox or production
	AccessToken string
	BaseURL     string // Overrides the environment's URL
	Timeout     time.Duration
}

// Validate ensures all required fields are present.
func (c *Config) Validate() error {
	if c.ClientID == "" {
		return fmt.Errorf("%w: plaid client ID is required", common.ErrMissingConfig)
	}
	if c.Secret == "" {
		return fmt.Errorf("%w: plaid secret is required", common.ErrMissingConfig)
	}
	if c.AccessToken == "" {
		return fmt.Errorf("%w: plaid access token is required", common.ErrMissingConfig)
	}
	if _, ok := environments[c.Environment]; !ok {
		return fmt.Errorf("%w: invalid Plaid environment %q: must be sandbox or production", common.ErrInvalidConfig, c.Environment)
	}
	return nil
}

// pageFetcher returns one page of transactions and the total available.
type pageFetcher func(ctx context.Context, start, end time.Time, offset int32) ([]plaid.Transaction, int32, error)

// Client fetches cash flow entries from Plaid.
type Client struct {
	client    *plaid.APIClient
	fetchPage pageFetcher
	logger    *slog.Logger
	retryOpts service.RetryOptions
	token     string
}

var _ Fetcher = (*Client)(nil)

// NewClient creates a new Plaid client with the given configuration.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	configuration := plaid.NewConfiguration()
	configuration.AddDefaultHeader("PLAID-CLIENT-ID", cfg.ClientID)
	configuration.AddDefaultHeader("PLAID-SECRET", cfg.Secret)
	if cfg.BaseURL != "" {
		configuration.UseEnvironment(plaid.Environment(cfg.BaseURL))
	} else {
		configuration.UseEnvironment(environments[cfg.Environment])
	}
	if cfg.Timeout > 0 {
		configuration.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	c := &Client{
		client: plaid.NewAPIClient(configuration),
		token:  cfg.AccessToken,
		logger: slog.Default().With("component", "plaid"),
		retryOpts: service.RetryOptions{
			MaxAttempts:  3,
			InitialDelay: time.Second,
			MaxDelay:     30 * time.Second,
			Multiplier:   2.0,
		},
	}
	c.fetchPage = c.transactionsPage
	return c, nil
}

// GetCashFlow fetches every transaction in [start, end] and maps it to a cash
// flow entry. Transactions with an unparseable date are skipped.
func (c *Client) GetCashFlow(ctx context.Context, start, end time.Time) ([]model.CashFlowEntry, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context cannot be nil")
	}
	if start.After(end) {
		return nil, fmt.Errorf("start date must be before end date")
	}

	c.logger.Info("Fetching transactions from Plaid",
		"start_date", start.Format(time.DateOnly),
		"end_date", end.Format(time.DateOnly))

	var all []plaid.Transaction
	for offset := int32(0); ; offset += pageSize {
		var page []plaid.Transaction
		var total int32
		err := common.WithRetry(ctx, func() error {
			var err error
			page, total, err = c.fetchPage(ctx, start, end, offset)
			return err
		}, c.retryOpts)
		if err != nil {
			return nil, err
		}

		all = append(all, page...)
		c.logger.Debug("Fetched transaction batch", "count", len(page), "offset", offset, "total", total)

		if len(page) < int(pageSize) || int32(len(all)) >= total {
			break
		}
	}

	entries := make([]model.CashFlowEntry, 0, len(all))
	for _, pt := range all {
		entry, err := mapTransaction(pt)
		if err != nil {
			c.logger.Warn("Skipping Plaid transaction", "transaction_id", pt.GetTransactionId(), "error", err)
			continue
		}
		entries = append(entries, entry)
	}

	c.logger.Info("Fetched all transactions", "count", len(entries))
	return entries, nil
}

func (c *Client) transactionsPage(ctx context.Context, start, end time.Time, offset int32) ([]plaid.Transaction, int32, error) {
	request := plaid.NewTransactionsGetRequest(c.token, start.Format(time.DateOnly), end.Format(time.DateOnly))
	request.SetOptions(plaid.TransactionsGetRequestOptions{
		Count:  plaid.PtrInt32(pageSize),
		Offset: plaid.PtrInt32(offset),
	})

	resp, _, err := c.client.PlaidApi.TransactionsGet(ctx).TransactionsGetRequest(*request).Execute()
	if err != nil {
		return nil, 0, classifyError("failed to fetch transactions", err)
	}
	return resp.GetTransactions(), resp.GetTotalTransactions(), nil
}

// GetAccounts fetches account IDs from Plaid.
func (c *Client) GetAccounts(ctx context.Context) ([]string, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context cannot be nil")
	}

	var accounts []plaid.AccountBase
	err := common.WithRetry(ctx, func() error {
		request := plaid.NewAccountsGetRequest(c.token)
		resp, _, err := c.client.PlaidApi.AccountsGet(ctx).AccountsGetRequest(*request).Execute()
		if err != nil {
			return classifyError("failed to fetch accounts", err)
		}
		accounts = resp.GetAccounts()
		return nil
	}, c.retryOpts)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(accounts))
	for _, account := range accounts {
		ids = append(ids, account.GetAccountId())
	}
	return ids, nil
}

// classifyError turns an API failure into a retryable or permanent error.
func classifyError(msg string, err error) error {
	plaidErr, convErr := plaid.ToPlaidError(err)
	if convErr != nil {
		// Transport failures are retried.
		return fmt.Errorf("%s: %w: %w", msg, common.ErrPlaidConnection, err)
	}
	return plaidError(plaidErr)
}

func plaidError(pe plaid.PlaidError) error {
	err := fmt.Errorf("plaid API error: %s - %s", pe.ErrorCode, pe.ErrorMessage)
	if pe.ErrorCode == "RATE_LIMIT_EXCEEDED" {
		return &common.RetryableError{Err: fmt.Errorf("%w: %w", common.ErrPlaidRateLimit, err), Retryable: true}
	}
	if retryableCodes[pe.ErrorCode] {
		return &common.RetryableError{Err: err, Retryable: true}
	}
	return common.Permanent(err)
}

// mapTransaction converts a Plaid transaction. Plaid reports money leaving the
// account as a positive amount.
func mapTransaction(pt plaid.Transaction) (model.CashFlowEntry, error) {
	date, err := time.Parse(time.DateOnly, pt.GetDate())
	if err != nil {
		return model.CashFlowEntry{}, fmt.Errorf("invalid date %q: %w", pt.GetDate(), err)
	}

	name := pt.GetMerchantName()
	if name == "" {
		name = pt.GetName()
	}

	amount := decimal.NewFromFloat(pt.GetAmount())
	direction := format.Inflow
	if amount.IsPositive() {
		direction = format.Outflow
	}

	entry := model.CashFlowEntry{
		ID:          pt.GetTransactionId(),
		Date:        date,
		Description: cleanMerchantName(name),
		AccountID:   pt.GetAccountId(),
		Source:      Source,
		Type:        transactionType(pt),
		CheckNumber: pt.GetCheckNumber(),
		Amount:      amount.Abs(),
		Direction:   direction,
	}
	if categories := pt.GetCategory(); len(categories) > 0 {
		entry.Category = categories[0]
	}
	entry.Hash = entry.GenerateHash()

	if err := entry.Validate(); err != nil {
		return model.CashFlowEntry{}, err
	}
	return entry, nil
}

func transactionType(pt plaid.Transaction) string {
	if pt.GetCheckNumber() != "" {
		return "CHECK"
	}
	switch pt.GetPaymentChannel() {
	case "online":
		return "ONLINE"
	case "in store":
		return "POS"
	case "":
		return ""
	default:
		return "OTHER"
	}
}

// Company suffixes dropped from merchant names.
var merchantSuffixes = []string{
	" Ltda", " Sa", " S/a", " Me", " Eireli", " Epp",
	" Llc", " Inc", " Corp", " Corporation", " Company", " Co", " Ltd", " Limited",
}

// cleanMerchantName title-cases a merchant name and drops trailing reference
// numbers and company suffixes.
func cleanMerchantName(name string) string {
	words := strings.Fields(strings.ToLower(name))
	for i, word := range words {
		runes := []rune(word)
		for j := range runes {
			if j == 0 || !unicode.IsLetter(runes[j-1]) {
				runes[j] = unicode.ToUpper(runes[j])
			}
		}
		words[i] = string(runes)
	}

	// A long all-digit last word is a transaction reference.
	if n := len(words); n > 1 && len(words[n-1]) > 5 && isAllDigits(words[n-1]) {
		words = words[:n-1]
	}
	name = strings.Join(words, " ")

	for changed := true; changed; {
		changed = false
		for _, suffix := range merchantSuffixes {
			if strings.HasSuffix(name, suffix) {
				name = strings.TrimSuffix(name, suffix)
				changed = true
			}
		}
	}

	return strings.TrimSpace(name)
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
