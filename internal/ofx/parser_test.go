package ofx

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/erpdash/internal/format"
	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Sample OFX data for testing.
const sampleBankOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240131120000[0:GMT]
<LANGUAGE>POR
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>BRL
<BANKACCTFROM>
<BANKID>341
<ACCTID>12345-6
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240114120000[0:GMT]
<TRNAMT>-85000.00
<FITID>2024011401
<NAME>PAGAMENTO
<MEMO>Folha de pagamento janeiro
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20240114120000[0:GMT]
<TRNAMT>22890.00
<FITID>2024011402
<NAME>PIX RECEBIDO Pedro Costa
</STMTTRN>
<STMTTRN>
<TRNTYPE>CHECK
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>-3240.00
<FITID>2024011501
<CHECKNUM>000123
<NAME>Energia Eletrica SP
</STMTTRN>
<STMTTRN>
<TRNTYPE>FEE
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>-12.90
<FITID>2024011502
<NAME>TARIFA PACOTE SERVICOS
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>121177.10
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

const sampleCreditCardOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>POR
</SONRS>
</SIGNONMSGSRSV1>
<CREDITCARDMSGSRSV1>
<CCSTMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<CCSTMTRS>
<CURDEF>BRL
<CCACCTFROM>
<ACCTID>4111111111111111
</CCACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240110120000[0:GMT]
<TRNAMT>-459.90
<FITID>CC2024011001
<NAME>COMPRA CARTAO 10/01 KALUNGA
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>-55.90
<FITID>CC2024011501
<NAME>NETFLIX.COM
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>-515.80
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</CCSTMTRS>
</CCSTMTTRNRS>
</CREDITCARDMSGSRSV1>
</OFX>`

func TestParseFile(t *testing.T) {
	tests := []struct {
		name          string
		ofxData       string
		expectedCount int
		expectedError bool
	}{
		{name: "valid bank statement", ofxData: sampleBankOFX, expectedCount: 4},
		{name: "valid credit card statement", ofxData: sampleCreditCardOFX, expectedCount: 2},
		{name: "leading blank lines", ofxData: "\n\n  " + sampleBankOFX, expectedCount: 4},
		{name: "invalid OFX data", ofxData: "not valid OFX", expectedError: true},
		{name: "empty OFX", ofxData: "", expectedError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := NewParser().ParseFile(context.Background(), strings.NewReader(tt.ofxData))

			if tt.expectedError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, entries, tt.expectedCount)
			for _, e := range entries {
				assert.NoError(t, e.Validate())
				assert.Equal(t, Source, e.Source)
				assert.NotEmpty(t, e.Hash)
			}
		})
	}
}

func TestParseBankEntries(t *testing.T) {
	entries, err := NewParser().ParseFile(context.Background(), strings.NewReader(sampleBankOFX))
	require.NoError(t, err)
	require.Len(t, entries, 4)

	tests := []struct {
		id          string
		description string
		category    string
		amount      string
		checkNumber string
		direction   format.Direction
	}{
		{id: "2024011401", description: "Folha de pagamento janeiro", amount: "85000", direction: format.Outflow},
		{id: "2024011402", description: "Pedro Costa", amount: "22890", direction: format.Inflow},
		{id: "2024011501", description: "Energia Eletrica SP", amount: "3240", direction: format.Outflow, checkNumber: "000123"},
		{id: "2024011502", description: "TARIFA PACOTE SERVICOS", amount: "12.9", direction: format.Outflow, category: "Tarifas bancárias"},
	}

	for i, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			e := entries[i]
			assert.Equal(t, tt.id, e.ID)
			assert.Equal(t, tt.description, e.Description)
			assert.Equal(t, tt.category, e.Category)
			assert.True(t, e.Amount.Equal(decimal.RequireFromString(tt.amount)), e.Amount.String())
			assert.Equal(t, tt.direction, e.Direction)
			assert.Equal(t, tt.checkNumber, e.CheckNumber)
			assert.Equal(t, "12345-6", e.AccountID)
		})
	}

	assert.Equal(t, 2024, entries[0].Date.Year())
	assert.Equal(t, time.January, entries[0].Date.Month())
	assert.Equal(t, 14, entries[0].Date.Day())
}

func TestParseCreditCardEntries(t *testing.T) {
	parser := NewParser()

	entries, err := parser.ParseFile(context.Background(), strings.NewReader(sampleCreditCardOFX))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "CC2024011001", entries[0].ID)
	assert.Equal(t, "KALUNGA", entries[0].Description)
	assert.Equal(t, "4111111111111111", entries[0].AccountID)

	assert.Equal(t, "NETFLIX.COM", entries[1].Description)
}

func TestConvertTransaction_MissingFITID(t *testing.T) {
	parser := NewParser()
	tx := ofxgo.Transaction{
		TrnType:  ofxgo.TrnTypeDebit,
		DtPosted: ofxgo.Date{Time: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		Name:     "Papelaria Central",
	}
	tx.TrnAmt.SetFrac64(-1999, 100)

	first, err := parser.convertTransaction(tx, "acct")
	require.NoError(t, err)
	second, err := parser.convertTransaction(tx, "acct")
	require.NoError(t, err)

	// The id is derived from the content hash so re-imports match.
	assert.Len(t, first.ID, 36)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "DEBIT", first.Type)
	assert.True(t, first.Amount.Equal(decimal.RequireFromString("19.99")))
	assert.Equal(t, format.Outflow, first.Direction)

	_, err = parser.convertTransaction(ofxgo.Transaction{FiTID: "x"}, "acct")
	assert.Error(t, err, "zero date is rejected")
}

func TestParseFile_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewParser().ParseFile(ctx, strings.NewReader(sampleBankOFX))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtractDescription(t *testing.T) {
	parser := NewParser()

	tests := []struct {
		name     string
		tx       ofxgo.Transaction
		expected string
	}{
		{name: "remove pix prefix", tx: ofxgo.Transaction{Name: "PIX ENVIADO Office Plus"}, expected: "Office Plus"},
		{name: "remove card prefix and date", tx: ofxgo.Transaction{Name: "COMPRA CARTAO 12/01 POSTO SHELL"}, expected: "POSTO SHELL"},
		{name: "keep clean name", tx: ofxgo.Transaction{Name: "NETFLIX.COM"}, expected: "NETFLIX.COM"},
		{name: "trim whitespace", tx: ofxgo.Transaction{Name: "  MERCADO LIVRE  "}, expected: "MERCADO LIVRE"},
		{name: "generic name uses memo", tx: ofxgo.Transaction{Name: "DEBITO", Memo: "Aluguel galpão"}, expected: "Aluguel galpão"},
		{name: "payee wins", tx: ofxgo.Transaction{Name: "PAGAMENTO", Payee: &ofxgo.Payee{Name: "Tech Solutions Ltda"}}, expected: "Tech Solutions Ltda"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parser.extractDescription(tt.tx))
		})
	}
}

func TestPreprocessOFX(t *testing.T) {
	parser := NewParser()

	got := parser.preprocessOFX("\n  <SEVERITY>Warn</SEVERITY>\n<BANKTRANLIST\n")
	assert.Equal(t, "<SEVERITY>WARN</SEVERITY>\n<BANKTRANLIST>\n", got)
}

func TestGetAccounts(t *testing.T) {
	parser := NewParser()

	accounts, err := parser.GetAccounts(context.Background(), strings.NewReader(sampleBankOFX))
	require.NoError(t, err)
	assert.Equal(t, []string{"12345-6"}, accounts)

	accounts, err = parser.GetAccounts(context.Background(), strings.NewReader(sampleCreditCardOFX))
	require.NoError(t, err)
	assert.Equal(t, []string{"4111111111111111"}, accounts)

	_, err = parser.GetAccounts(context.Background(), strings.NewReader("junk"))
	assert.Error(t, err)
}
