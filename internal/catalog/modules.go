package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownModule is returned by LookupModule for undeclared module names.
var ErrUnknownModule = errors.New("unknown module")

// Module is one tab of the dashboard and the domains its views use.
type Module struct {
	Name    string
	Title   string
	Domains []string
}

// Modules lists the dashboard tabs in display order.
var Modules = []Module{
	{Name: "dashboard", Title: "Dashboard", Domains: []string{DomainActivity}},
	{Name: "sales", Title: "Vendas", Domains: []string{DomainCustomer, DomainSalesOrder}},
	{Name: "inventory", Title: "Estoque", Domains: []string{DomainStock}},
	{Name: "purchases", Title: "Compras", Domains: []string{DomainSupplier, DomainPurchaseOrder, DomainUrgency}},
	{Name: "financial", Title: "Financeiro", Domains: []string{DomainReceivable, DomainPayable}},
	{Name: "hr", Title: "RH", Domains: []string{DomainEmployee, DomainPayroll, DomainTimesheet}},
	{Name: "production", Title: "Produção", Domains: []string{DomainProductionOrder, DomainPriority, DomainMachine, DomainQuality}},
	{Name: "reports", Title: "Relatórios"},
}

// LookupModule finds a module by name, case-insensitively.
func LookupModule(name string) (Module, error) {
	for _, m := range Modules {
		if strings.EqualFold(m.Name, name) {
			return m, nil
		}
	}
	return Module{}, fmt.Errorf("%w: %q", ErrUnknownModule, name)
}

// ModuleOf returns the module that owns a domain.
func ModuleOf(domain string) (Module, bool) {
	for _, m := range Modules {
		for _, d := range m.Domains {
			if d == domain {
				return m, true
			}
		}
	}
	return Module{}, false
}
