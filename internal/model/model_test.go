package model

import (
	"testing"
	"time"

	"github.com/Veraticus/erpdash/internal/catalog"
	"github.com/Veraticus/erpdash/internal/format"
	"github.com/Veraticus/erpdash/internal/status"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProduct_Record(t *testing.T) {
	p := Product{
		ID: "PRD-004", Name: "Smartphone 128GB", Status: "out_of_stock",
		Price: decimal.RequireFromString("2100"), Stock: 0, MinStock: 10, MaxStock: 25,
	}

	r := p.Record()
	assert.Equal(t, catalog.DomainStock, r.Domain)
	assert.Equal(t, "inventory", r.Module)
	require.NotNil(t, r.Stock)
	assert.Equal(t, 10, r.Stock.Min)
	require.NotNil(t, r.Progress)
	assert.InDelta(t, 25, r.Progress.Total, 1e-9)
	assert.True(t, r.Amount.Valid)
	require.NoError(t, r.Validate())

	got, err := status.Classify(catalog.Stock, p.StatusRecord())
	require.NoError(t, err)
	assert.Equal(t, status.Canonical("out_of_stock"), got)
}

func TestTitle_Record(t *testing.T) {
	tests := []struct {
		name   string
		want   status.Canonical
		title  Title
		domain string
	}{
		{
			name:   "receivable past due",
			title:  Title{ID: "CR-2024-002", Party: "Maria Oliveira", Status: "pending", DaysPastDue: IntPtr(5)},
			domain: catalog.DomainReceivable,
			want:   "overdue",
		},
		{
			name:   "paid stays paid",
			title:  Title{ID: "CR-2024-003", Party: "Pedro Costa", Status: "paid", DaysPastDue: IntPtr(3)},
			domain: catalog.DomainReceivable,
			want:   "paid",
		},
		{
			name:   "payable without days",
			title:  Title{ID: "CP-2024-002", Party: "Office Plus", Status: "approved", Kind: Payable},
			domain: catalog.DomainPayable,
			want:   "approved",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.title.Record()
			assert.Equal(t, tt.domain, r.Domain)
			assert.Equal(t, "financial", r.Module)

			d, err := catalog.Lookup(r.Domain)
			require.NoError(t, err)
			got, err := status.Classify(d, tt.title.StatusRecord())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRecord_Validate(t *testing.T) {
	tests := []struct {
		name    string
		record  Record
		wantErr bool
	}{
		{name: "valid", record: Record{ID: "a", Domain: "stock", Name: "x"}},
		{name: "missing id", record: Record{Domain: "stock", Name: "x"}, wantErr: true},
		{name: "missing domain", record: Record{ID: "a", Name: "x"}, wantErr: true},
		{name: "missing name", record: Record{ID: "a", Domain: "stock"}, wantErr: true},
		{name: "negative total", record: Record{ID: "a", Domain: "stock", Name: "x", Progress: &Fraction{Total: -1}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.record.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEntities_Derived(t *testing.T) {
	p := PayrollEntry{
		Gross:      decimal.RequireFromString("8500"),
		Benefits:   decimal.RequireFromString("850"),
		Deductions: decimal.RequireFromString("1700"),
	}
	assert.True(t, p.Net().Equal(decimal.RequireFromString("7650")))

	assert.Equal(t, status.Positive, Machine{Efficiency: 85}.EfficiencySeverity())
	assert.Equal(t, status.Caution, Machine{Efficiency: 60}.EfficiencySeverity())
	assert.Equal(t, status.Critical, Machine{Efficiency: 0}.EfficiencySeverity())

	po := PurchaseOrder{ID: "OC-2024-002", Supplier: "Office Plus", Status: "pending", Urgency: "high"}
	u := po.UrgencyRecord()
	assert.Equal(t, catalog.DomainUrgency, u.Domain)
	assert.Equal(t, "purchases", u.Module)
	assert.Equal(t, "high", u.RawStatus)
	assert.Equal(t, "high", po.Record().Attr("urgency"))
	assert.Empty(t, Record{}.Attr("missing"))
}

func TestApplyRunningBalance(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	entries := []CashFlowEntry{
		{ID: "3", Date: day(15), Amount: decimal.NewFromInt(45890), Direction: format.Outflow},
		{ID: "1", Date: day(14), Amount: decimal.NewFromInt(85000), Direction: format.Outflow},
		{ID: "2", Date: day(14), Amount: decimal.NewFromInt(22890), Direction: format.Inflow},
		{ID: "4", Date: day(15), Amount: decimal.NewFromInt(15430), Direction: format.Inflow},
	}

	closing := ApplyRunningBalance(decimal.NewFromInt(187540), entries)

	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids)
	assert.True(t, entries[0].Balance.Decimal.Equal(decimal.NewFromInt(102540)))
	assert.True(t, entries[1].Balance.Decimal.Equal(decimal.NewFromInt(125430)))
	assert.True(t, entries[2].Balance.Decimal.Equal(decimal.NewFromInt(79540)))
	assert.True(t, closing.Equal(decimal.NewFromInt(94970)))
}

func TestCashFlowEntry(t *testing.T) {
	e := CashFlowEntry{
		ID: "x", Date: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Amount: decimal.RequireFromString("10.5"), Direction: format.Outflow, Description: "Energia",
	}
	require.NoError(t, e.Validate())
	assert.True(t, e.Signed().Equal(decimal.RequireFromString("-10.5")))

	h := e.GenerateHash()
	assert.Len(t, h, 64)
	assert.Equal(t, h, e.GenerateHash())

	other := e
	other.Direction = format.Inflow
	assert.NotEqual(t, h, other.GenerateHash())

	bad := e
	bad.Amount = decimal.NewFromInt(-1)
	assert.Error(t, bad.Validate())

	bad = e
	bad.Date = time.Time{}
	assert.Error(t, bad.Validate())
}
