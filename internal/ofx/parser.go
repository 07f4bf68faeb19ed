// Package ofx imports OFX/QFX bank and credit card statements as cash flow entries.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/Veraticus/erpdash/internal/format"
	"github.com/Veraticus/erpdash/internal/model"
	"github.com/aclindsa/ofxgo"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Source tags entries imported from statement files.
const Source = "ofx"

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	// Opening tags missing their closing bracket at end of line.
	tagFixRegex = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// Bank-specific prefixes stripped from descriptions.
var descriptionPrefixes = []string{
	"COMPRA CARTAO ",
	"COMPRA COM CARTAO ",
	"PIX ENVIADO ",
	"PIX RECEBIDO ",
	"PAG BOLETO ",
	"TED ENVIADA ",
	"TED RECEBIDA ",
	"POS PURCHASE ",
	"DEBIT CARD PURCHASE ",
	"ACH DEBIT ",
}

var genericDescriptions = map[string]bool{
	"DEBITO":    true,
	"CREDITO":   true,
	"PAGAMENTO": true,
	"COMPRA":    true,
	"DEBIT":     true,
	"CREDIT":    true,
	"PAYMENT":   true,
}

// Categories inferred from the OFX transaction type.
var typeCategories = map[string]string{
	"INT":    "Receitas financeiras",
	"DIV":    "Receitas financeiras",
	"FEE":    "Tarifas bancárias",
	"SRVCHG": "Tarifas bancárias",
	"ATM":    "Saques",
}

// Parser implements OFX/QFX file parsing.
type Parser struct {
	logger *slog.Logger
}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{logger: slog.Default().With("component", "ofx")}
}

// preprocessOFX fixes common formatting issues in OFX files.
func (p *Parser) preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)
	return tagFixRegex.ReplaceAllString(content, "$1>")
}

func (p *Parser) parse(reader io.Reader) (*ofxgo.Response, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}
	return resp, nil
}

// ParseFile parses an OFX/QFX file into cash flow entries.
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader) ([]model.CashFlowEntry, error) {
	resp, err := p.parse(reader)
	if err != nil {
		return nil, err
	}

	var entries []model.CashFlowEntry
	var bankStmts, ccStmts int

	for _, msg := range resp.Bank {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			entries = append(entries, p.convertList(stmt.BankTranList, string(stmt.BankAcctFrom.AcctID))...)
		}
	}

	for _, msg := range resp.CreditCard {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			entries = append(entries, p.convertList(stmt.BankTranList, string(stmt.CCAcctFrom.AcctID))...)
		}
	}

	p.logger.Info("Parsed OFX file",
		"entries", len(entries),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return entries, nil
}

func (p *Parser) convertList(list *ofxgo.TransactionList, accountID string) []model.CashFlowEntry {
	if list == nil {
		return nil
	}

	entries := make([]model.CashFlowEntry, 0, len(list.Transactions))
	for _, tx := range list.Transactions {
		entry, err := p.convertTransaction(tx, accountID)
		if err != nil {
			p.logger.Warn("Skipping OFX transaction", "fitid", tx.FiTID, "account", accountID, "error", err)
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

// convertTransaction maps an OFX transaction: negative amounts are outflows.
func (p *Parser) convertTransaction(tx ofxgo.Transaction, accountID string) (model.CashFlowEntry, error) {
	amount, err := decimal.NewFromString(tx.TrnAmt.FloatString(4))
	if err != nil {
		return model.CashFlowEntry{}, fmt.Errorf("invalid amount: %w", err)
	}

	direction := format.Inflow
	if amount.IsNegative() {
		direction = format.Outflow
	}

	entry := model.CashFlowEntry{
		ID:          string(tx.FiTID),
		Date:        tx.DtPosted.Time,
		Description: p.extractDescription(tx),
		AccountID:   accountID,
		Source:      Source,
		Type:        tx.TrnType.String(),
		CheckNumber: string(tx.CheckNum),
		Amount:      amount.Abs(),
		Direction:   direction,
	}
	entry.Category = typeCategories[entry.Type]
	entry.Hash = entry.GenerateHash()

	// Re-importing the same file yields the same id.
	if entry.ID == "" {
		entry.ID = uuid.NewSHA1(uuid.NameSpaceOID, []byte(entry.Hash)).String()
	}

	if err := entry.Validate(); err != nil {
		return model.CashFlowEntry{}, err
	}
	return entry, nil
}

// extractDescription tries to get a clean counterparty name from OFX data.
func (p *Parser) extractDescription(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return strings.TrimSpace(string(tx.Payee.Name))
	}

	name := strings.TrimSpace(string(tx.Name))
	if tx.Memo != "" && (name == "" || genericDescriptions[strings.ToUpper(name)]) {
		name = strings.TrimSpace(string(tx.Memo))
	}

	upper := strings.ToUpper(name)
	for _, prefix := range descriptionPrefixes {
		if strings.HasPrefix(upper, prefix) {
			name = strings.TrimSpace(name[len(prefix):])
			break
		}
	}

	// Leading "DD/MM " dates.
	if len(name) > 6 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}

	return name
}

// GetAccounts extracts unique account IDs from the OFX file, in file order.
func (p *Parser) GetAccounts(_ context.Context, reader io.Reader) ([]string, error) {
	resp, err := p.parse(reader)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var accounts []string
	add := func(id string) {
		if id != "" && !seen[id] {
			seen[id] = true
			accounts = append(accounts, id)
		}
	}

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			add(string(stmt.BankAcctFrom.AcctID))
		}
	}
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			add(string(stmt.CCAcctFrom.AcctID))
		}
	}

	return accounts, nil
}
