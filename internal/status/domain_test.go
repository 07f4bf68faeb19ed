package status

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var titleStatuses = []Canonical{"pending", "approved", "paid", "overdue"}

func titleEntries() []Entry {
	return []Entry{
		{Status: "pending", Label: "Pendente", Severity: Caution},
		{Status: "approved", Label: "Aprovado", Severity: Neutral},
		{Status: "paid", Label: "Pago", Severity: Positive},
		{Status: "overdue", Label: "Vencido", Severity: Critical},
	}
}

func TestNewDomain_Valid(t *testing.T) {
	d, err := NewDomain("payable", titleStatuses, titleEntries())
	require.NoError(t, err)

	assert.Equal(t, "payable", d.Name())
	assert.Equal(t, titleStatuses, d.Statuses())
	assert.False(t, d.HasDeriver())
	assert.True(t, d.Contains("paid"))
	assert.False(t, d.Contains("rejected"))

	entries := d.Entries()
	require.Len(t, entries, 4)
	assert.Equal(t, Canonical("pending"), entries[0].Status)
	assert.Equal(t, "Vencido", entries[3].Label)
}

func TestNewDomain_TableErrors(t *testing.T) {
	tests := []struct {
		name     string
		domain   string
		statuses []Canonical
		entries  func() []Entry
		opts     []DomainOption
	}{
		{
			name:     "empty name",
			domain:   " ",
			statuses: titleStatuses,
			entries:  titleEntries,
		},
		{
			name:     "empty enumeration",
			domain:   "payable",
			statuses: nil,
			entries:  titleEntries,
		},
		{
			name:     "missing entry",
			domain:   "payable",
			statuses: titleStatuses,
			entries:  func() []Entry { return titleEntries()[:3] },
		},
		{
			name:     "entry for undeclared status",
			domain:   "payable",
			statuses: titleStatuses,
			entries: func() []Entry {
				return append(titleEntries(), Entry{Status: "rejected", Label: "Rejeitado", Severity: Critical})
			},
		},
		{
			name:     "duplicate entry",
			domain:   "payable",
			statuses: titleStatuses,
			entries: func() []Entry {
				return append(titleEntries(), Entry{Status: "paid", Label: "Quitado", Severity: Positive})
			},
		},
		{
			name:     "empty label",
			domain:   "payable",
			statuses: titleStatuses,
			entries: func() []Entry {
				e := titleEntries()
				e[1].Label = ""
				return e
			},
		},
		{
			name:     "duplicate label",
			domain:   "payable",
			statuses: titleStatuses,
			entries: func() []Entry {
				e := titleEntries()
				e[1].Label = "Pendente"
				return e
			},
		},
		{
			name:     "invalid severity",
			domain:   "payable",
			statuses: titleStatuses,
			entries: func() []Entry {
				e := titleEntries()
				e[2].Severity = Severity(42)
				return e
			},
		},
		{
			name:     "status not normalized",
			domain:   "payable",
			statuses: []Canonical{"Pending"},
			entries: func() []Entry {
				return []Entry{{Status: "Pending", Label: "Pendente", Severity: Caution}}
			},
		},
		{
			name:     "duplicate status",
			domain:   "payable",
			statuses: []Canonical{"paid", "paid"},
			entries: func() []Entry {
				return []Entry{{Status: "paid", Label: "Pago", Severity: Positive}}
			},
		},
		{
			name:     "alias to undeclared status",
			domain:   "payable",
			statuses: titleStatuses,
			entries:  titleEntries,
			opts:     []DomainOption{WithAlias("settled", "closed")},
		},
		{
			name:     "deriver without outputs",
			domain:   "payable",
			statuses: titleStatuses,
			entries:  titleEntries,
			opts:     []DomainOption{WithDeriver(OverdueDeriver("overdue", "paid"))},
		},
		{
			name:     "deriver producing undeclared status",
			domain:   "payable",
			statuses: titleStatuses,
			entries:  titleEntries,
			opts:     []DomainOption{WithDeriver(OverdueDeriver("late", "paid"), "late")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewDomain(tt.domain, tt.statuses, tt.entries(), tt.opts...)
			require.Error(t, err)
			assert.Nil(t, d)
			assert.ErrorIs(t, err, ErrIncompleteTable)
			assert.False(t, errors.Is(err, ErrUnknownStatus))

			var tableErr *TableError
			require.ErrorAs(t, err, &tableErr)
			assert.NotEmpty(t, tableErr.Reason)
		})
	}
}

func TestMustDomain_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustDomain("payable", titleStatuses, titleEntries()[:2])
	})
	assert.NotPanics(t, func() {
		MustDomain("payable", titleStatuses, titleEntries())
	})
}

func TestDomain_StatusesIsACopy(t *testing.T) {
	d := MustDomain("payable", titleStatuses, titleEntries())
	got := d.Statuses()
	got[0] = "mutated"
	assert.Equal(t, Canonical("pending"), d.Statuses()[0])
}

func TestPresent_TotalAndInjective(t *testing.T) {
	d := MustDomain("payable", titleStatuses, titleEntries())

	seen := make(map[string]bool)
	for _, s := range d.Statuses() {
		disp, err := Present(d, s)
		require.NoError(t, err)
		assert.NotEmpty(t, disp.Label)
		assert.True(t, disp.Severity.Valid())
		assert.False(t, seen[disp.Label], "label %q reused", disp.Label)
		seen[disp.Label] = true
	}
}

func TestPresent_Unknown(t *testing.T) {
	d := MustDomain("payable", titleStatuses, titleEntries())

	_, err := Present(d, "archived")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownStatus)

	var unknown *UnknownStatusError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "payable", unknown.Domain)
	assert.Equal(t, "archived", unknown.Status)

	_, err = Present(nil, "paid")
	assert.ErrorIs(t, err, ErrNilDomain)
}
