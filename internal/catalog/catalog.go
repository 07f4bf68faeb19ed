// Package catalog declares the status domains of every ERP module.
//
// Severity follows the dashboard colours: success is Positive, warning is
// Caution, danger is Critical, and the primary and secondary (informational)
// colours are Neutral.
package catalog

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Veraticus/erpdash/internal/status"
)

// ErrUnknownDomain is returned by Lookup for undeclared domain names.
var ErrUnknownDomain = errors.New("unknown domain")

// Domain names.
const (
	DomainStock           = "stock"
	DomainReceivable      = "receivable"
	DomainPayable         = "payable"
	DomainCustomer        = "customer"
	DomainSalesOrder      = "sales_order"
	DomainSupplier        = "supplier"
	DomainPurchaseOrder   = "purchase_order"
	DomainUrgency         = "urgency"
	DomainPriority        = "priority"
	DomainEmployee        = "employee"
	DomainPayroll         = "payroll"
	DomainTimesheet       = "timesheet"
	DomainProductionOrder = "production_order"
	DomainMachine         = "machine"
	DomainQuality         = "quality"
	DomainActivity        = "activity"
)

var (
	// Stock is derived from the stock level whenever it is known.
	Stock = status.MustDomain(DomainStock,
		[]status.Canonical{"in_stock", "low_stock", "out_of_stock"},
		[]status.Entry{
			{Status: "in_stock", Label: "Em Estoque", Severity: status.Positive},
			{Status: "low_stock", Label: "Estoque Baixo", Severity: status.Caution},
			{Status: "out_of_stock", Label: "Sem Estoque", Severity: status.Critical},
		},
		status.WithAlias("active", "in_stock"),
		status.WithDeriver(status.StockDeriver("out_of_stock", "low_stock", "in_stock"),
			"out_of_stock", "low_stock", "in_stock"),
	)

	// Receivable titles become overdue once past due unless already paid.
	Receivable = titleDomain(DomainReceivable)

	// Payable titles share the receivable rules.
	Payable = titleDomain(DomainPayable)

	Customer = status.MustDomain(DomainCustomer,
		[]status.Canonical{"active", "inactive"},
		[]status.Entry{
			{Status: "active", Label: "Ativo", Severity: status.Positive},
			{Status: "inactive", Label: "Inativo", Severity: status.Critical},
		},
	)

	SalesOrder = status.MustDomain(DomainSalesOrder,
		[]status.Canonical{"pending", "confirmed", "delivered"},
		[]status.Entry{
			{Status: "pending", Label: "Pendente", Severity: status.Caution},
			{Status: "confirmed", Label: "Confirmado", Severity: status.Neutral},
			{Status: "delivered", Label: "Entregue", Severity: status.Positive},
		},
	)

	// Supplier includes pending for suppliers still under registration.
	Supplier = status.MustDomain(DomainSupplier,
		[]status.Canonical{"active", "pending", "inactive"},
		[]status.Entry{
			{Status: "active", Label: "Ativo", Severity: status.Positive},
			{Status: "pending", Label: "Pendente", Severity: status.Caution},
			{Status: "inactive", Label: "Inativo", Severity: status.Critical},
		},
	)

	PurchaseOrder = status.MustDomain(DomainPurchaseOrder,
		[]status.Canonical{"pending", "approved", "delivered", "rejected"},
		[]status.Entry{
			{Status: "pending", Label: "Pendente", Severity: status.Caution},
			{Status: "approved", Label: "Aprovado", Severity: status.Neutral},
			{Status: "delivered", Label: "Entregue", Severity: status.Positive},
			{Status: "rejected", Label: "Rejeitado", Severity: status.Critical},
		},
	)

	// Urgency of purchase requisitions.
	Urgency = levelDomain(DomainUrgency)

	// Priority of production orders.
	Priority = levelDomain(DomainPriority)

	Employee = status.MustDomain(DomainEmployee,
		[]status.Canonical{"active", "vacation", "inactive"},
		[]status.Entry{
			{Status: "active", Label: "Ativo", Severity: status.Positive},
			{Status: "vacation", Label: "Férias", Severity: status.Caution},
			{Status: "inactive", Label: "Inativo", Severity: status.Critical},
		},
	)

	Payroll = status.MustDomain(DomainPayroll,
		[]status.Canonical{"pending", "processed"},
		[]status.Entry{
			{Status: "pending", Label: "Pendente", Severity: status.Caution},
			{Status: "processed", Label: "Processado", Severity: status.Positive},
		},
	)

	Timesheet = status.MustDomain(DomainTimesheet,
		[]status.Canonical{"pending", "completed"},
		[]status.Entry{
			{Status: "pending", Label: "Pendente", Severity: status.Caution},
			{Status: "completed", Label: "Completo", Severity: status.Neutral},
		},
	)

	ProductionOrder = status.MustDomain(DomainProductionOrder,
		[]status.Canonical{"planned", "in_progress", "completed", "delayed"},
		[]status.Entry{
			{Status: "planned", Label: "Planejado", Severity: status.Neutral},
			{Status: "in_progress", Label: "Em Andamento", Severity: status.Neutral},
			{Status: "completed", Label: "Finalizado", Severity: status.Positive},
			{Status: "delayed", Label: "Atrasado", Severity: status.Critical},
		},
	)

	Machine = status.MustDomain(DomainMachine,
		[]status.Canonical{"operating", "maintenance", "idle"},
		[]status.Entry{
			{Status: "operating", Label: "Operando", Severity: status.Positive},
			{Status: "maintenance", Label: "Manutenção", Severity: status.Caution},
			{Status: "idle", Label: "Parado", Severity: status.Neutral},
		},
	)

	Quality = status.MustDomain(DomainQuality,
		[]status.Canonical{"approved", "partial", "rejected"},
		[]status.Entry{
			{Status: "approved", Label: "Aprovado", Severity: status.Positive},
			{Status: "partial", Label: "Parcial", Severity: status.Caution},
			{Status: "rejected", Label: "Rejeitado", Severity: status.Critical},
		},
	)

	// Activity is the dashboard's recent-activity feed.
	Activity = status.MustDomain(DomainActivity,
		[]status.Canonical{"info", "success", "warning"},
		[]status.Entry{
			{Status: "info", Label: "Informação", Severity: status.Neutral},
			{Status: "success", Label: "Sucesso", Severity: status.Positive},
			{Status: "warning", Label: "Atenção", Severity: status.Caution},
		},
	)
)

func titleDomain(name string) *status.Domain {
	return status.MustDomain(name,
		[]status.Canonical{"pending", "approved", "paid", "overdue"},
		[]status.Entry{
			{Status: "pending", Label: "Pendente", Severity: status.Caution},
			{Status: "approved", Label: "Aprovado", Severity: status.Neutral},
			{Status: "paid", Label: "Pago", Severity: status.Positive},
			{Status: "overdue", Label: "Vencido", Severity: status.Critical},
		},
		status.WithDeriver(status.OverdueDeriver("overdue", "paid"), "overdue"),
	)
}

func levelDomain(name string) *status.Domain {
	return status.MustDomain(name,
		[]status.Canonical{"low", "normal", "high"},
		[]status.Entry{
			{Status: "low", Label: "Baixa", Severity: status.Neutral},
			{Status: "normal", Label: "Normal", Severity: status.Neutral},
			{Status: "high", Label: "Alta", Severity: status.Critical},
		},
	)
}

var registry = func() map[string]*status.Domain {
	m := make(map[string]*status.Domain)
	for _, d := range []*status.Domain{
		Stock, Receivable, Payable, Customer, SalesOrder, Supplier, PurchaseOrder,
		Urgency, Priority, Employee, Payroll, Timesheet, ProductionOrder, Machine,
		Quality, Activity,
	} {
		m[d.Name()] = d
	}
	return m
}()

// Lookup returns the domain with the given name.
func Lookup(name string) (*status.Domain, error) {
	d, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDomain, name)
	}
	return d, nil
}

// All returns every domain sorted by name.
func All() []*status.Domain {
	out := make([]*status.Domain, 0, len(registry))
	for _, d := range registry {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}
