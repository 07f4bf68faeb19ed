// Package mockdata holds the demo data set used to seed a fresh database.
package mockdata

import (
	"time"

	"github.com/Veraticus/erpdash/internal/format"
	"github.com/Veraticus/erpdash/internal/model"
	"github.com/shopspring/decimal"
)

// OpeningBalance is the cash balance before the first seeded movement.
var OpeningBalance = decimal.NewFromInt(187540)

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func brl(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Products returns the inventory items.
func Products() []model.Product {
	return []model.Product{
		{ID: "PRD-001", Name: `Monitor LED 24" Full HD`, Category: "Informática", Stock: 45, MinStock: 10, MaxStock: 100, Price: brl("890"), Supplier: "Tech Solutions", Location: "A-01-15", Status: "active"},
		{ID: "PRD-002", Name: "Teclado Mecânico Gamer", Category: "Periféricos", Stock: 5, MinStock: 15, MaxStock: 50, Price: brl("350"), Supplier: "Gaming Store", Location: "B-03-08", Status: "low_stock"},
		{ID: "PRD-003", Name: "Cadeira Ergonômica", Category: "Móveis", Stock: 28, MinStock: 5, MaxStock: 30, Price: brl("1200"), Supplier: "Office Plus", Location: "C-05-22", Status: "active"},
		{ID: "PRD-004", Name: "Smartphone 128GB", Category: "Celulares", Stock: 0, MinStock: 10, MaxStock: 25, Price: brl("2100"), Supplier: "Mobile Tech", Location: "D-02-10", Status: "out_of_stock"},
	}
}

// Titles returns receivables followed by payables.
func Titles() []model.Title {
	return []model.Title{
		{ID: "CR-2024-001", Party: "João Silva Santos", Document: "NF-12345", Value: brl("15430"), IssueDate: day("2024-01-15"), DueDate: day("2024-01-25"), Status: "pending", DaysPastDue: model.IntPtr(0)},
		{ID: "CR-2024-002", Party: "Maria Oliveira", Document: "NF-12346", Value: brl("8250"), IssueDate: day("2024-01-10"), DueDate: day("2024-01-20"), Status: "overdue", DaysPastDue: model.IntPtr(5)},
		{ID: "CR-2024-003", Party: "Pedro Costa", Document: "NF-12347", Value: brl("22890"), IssueDate: day("2024-01-08"), DueDate: day("2024-01-18"), Status: "paid", DaysPastDue: model.IntPtr(0)},
		{ID: "CP-2024-001", Party: "Tech Solutions Ltda", Category: "Equipamentos", Value: brl("45890"), IssueDate: day("2024-01-15"), DueDate: day("2024-01-30"), Status: "pending", Kind: model.Payable},
		{ID: "CP-2024-002", Party: "Office Plus Móveis", Category: "Móveis", Value: brl("28450"), IssueDate: day("2024-01-12"), DueDate: day("2024-01-22"), Status: "approved", Kind: model.Payable},
		{ID: "CP-2024-003", Party: "Energia Elétrica SP", Category: "Utilidades", Value: brl("3240"), IssueDate: day("2024-01-05"), DueDate: day("2024-01-19"), Status: "overdue", Kind: model.Payable},
	}
}

// CashFlow returns the seeded cash movements with running balances applied.
func CashFlow() []model.CashFlowEntry {
	entries := []model.CashFlowEntry{
		{ID: "CF-001", Date: day("2024-01-14"), Description: "Pagamento salários", Category: "Pessoal", Amount: brl("85000"), Direction: format.Outflow},
		{ID: "CF-002", Date: day("2024-01-14"), Description: "Venda - Pedido #PV-002", Category: "Vendas", Amount: brl("22890"), Direction: format.Inflow},
		{ID: "CF-003", Date: day("2024-01-15"), Description: "Compra - Fornecedor Tech Solutions", Category: "Compras", Amount: brl("45890"), Direction: format.Outflow},
		{ID: "CF-004", Date: day("2024-01-15"), Description: "Venda - Pedido #PV-001", Category: "Vendas", Amount: brl("15430"), Direction: format.Inflow},
	}
	for i := range entries {
		entries[i].Source = "seed"
		entries[i].Hash = entries[i].GenerateHash()
	}
	model.ApplyRunningBalance(OpeningBalance, entries)
	return entries
}

// Records returns every seeded entity in stored form, grouped by module.
func Records() []model.Record {
	var out []model.Record

	for _, a := range []model.Activity{
		{ID: "ACT-1", Kind: "sale", Title: "Nova venda realizada", Description: "Pedido #12345 - Cliente: João Silva", When: "2 minutos atrás", Status: "success"},
		{ID: "ACT-2", Kind: "inventory", Title: "Estoque baixo", Description: `Produto: Monitor LED 24" - Qtd: 5 unidades`, When: "15 minutos atrás", Status: "warning"},
		{ID: "ACT-3", Kind: "purchase", Title: "Compra aprovada", Description: "Ordem de compra #OC-2024-001", When: "1 hora atrás", Status: "success"},
		{ID: "ACT-4", Kind: "hr", Title: "Novo funcionário", Description: "Maria Santos - Analista de Vendas", When: "2 horas atrás", Status: "info"},
	} {
		out = append(out, a.Record())
	}

	for _, c := range []model.Customer{
		{ID: "CLI-1", Name: "João Silva Santos", Email: "joao@empresa.com", Company: "Empresa ABC Ltda", TotalPurchases: brl("125430"), LastPurchase: day("2024-01-15"), Status: "active"},
		{ID: "CLI-2", Name: "Maria Oliveira", Email: "maria@xyz.com", Company: "XYZ Comércio", TotalPurchases: brl("89250"), LastPurchase: day("2024-01-10"), Status: "active"},
		{ID: "CLI-3", Name: "Pedro Costa", Email: "pedro@costa.com", Company: "Costa & Associados", TotalPurchases: brl("45890"), LastPurchase: day("2023-12-28"), Status: "inactive"},
	} {
		out = append(out, c.Record())
	}

	for _, o := range []model.SalesOrder{
		{ID: "PED-2024-001", Customer: "João Silva Santos", Date: day("2024-01-15"), Value: brl("15430"), Status: "confirmed", Items: 5},
		{ID: "PED-2024-002", Customer: "Maria Oliveira", Date: day("2024-01-14"), Value: brl("8250"), Status: "pending", Items: 3},
		{ID: "PED-2024-003", Customer: "Pedro Costa", Date: day("2024-01-12"), Value: brl("22890"), Status: "delivered", Items: 8},
	} {
		out = append(out, o.Record())
	}

	for _, p := range Products() {
		out = append(out, p.Record())
	}

	for _, s := range []model.Supplier{
		{ID: "FORN-001", Name: "Tech Solutions Ltda", Contact: "Carlos Silva", Category: "Informática", Rating: 4.8, TotalPurchases: brl("2450890"), Status: "active"},
		{ID: "FORN-002", Name: "Office Plus Móveis", Contact: "Ana Santos", Category: "Móveis", Rating: 4.5, TotalPurchases: brl("1250450"), Status: "active"},
		{ID: "FORN-003", Name: "Material Escritório SA", Contact: "Pedro Costa", Category: "Material de Escritório", Rating: 3.9, TotalPurchases: brl("890230"), Status: "pending"},
	} {
		out = append(out, s.Record())
	}

	for _, o := range []model.PurchaseOrder{
		{ID: "OC-2024-001", Supplier: "Tech Solutions Ltda", Date: day("2024-01-15"), DeliveryDate: day("2024-01-22"), Value: brl("45890"), Items: 12, Status: "approved", Urgency: "normal"},
		{ID: "OC-2024-002", Supplier: "Office Plus Móveis", Date: day("2024-01-14"), DeliveryDate: day("2024-01-28"), Value: brl("28450"), Items: 5, Status: "pending", Urgency: "high"},
		{ID: "OC-2024-003", Supplier: "Material Escritório SA", Date: day("2024-01-12"), DeliveryDate: day("2024-01-20"), Value: brl("12340"), Items: 8, Status: "delivered", Urgency: "normal"},
		{ID: "OC-2024-004", Supplier: "Tech Solutions Ltda", Date: day("2024-01-10"), DeliveryDate: day("2024-01-25"), Value: brl("67200"), Items: 15, Status: "rejected", Urgency: "low"},
	} {
		out = append(out, o.Record(), o.UrgencyRecord())
	}

	for _, t := range Titles() {
		out = append(out, t.Record())
	}

	for _, e := range []model.Employee{
		{ID: "EMP-001", Name: "Ana Silva Santos", Position: "Gerente de Vendas", Department: "Comercial", Salary: brl("8500"), HireDate: day("2022-03-15"), Status: "active"},
		{ID: "EMP-002", Name: "Carlos Oliveira", Position: "Desenvolvedor Senior", Department: "TI", Salary: brl("9200"), HireDate: day("2021-08-10"), Status: "active"},
		{ID: "EMP-003", Name: "Maria Costa", Position: "Analista Financeiro", Department: "Financeiro", Salary: brl("6800"), HireDate: day("2023-01-20"), Status: "active"},
		{ID: "EMP-004", Name: "João Pereira", Position: "Assistente Administrativo", Department: "Administrativo", Salary: brl("3200"), HireDate: day("2023-06-01"), Status: "vacation"},
	} {
		out = append(out, e.Record())
	}

	for _, p := range []model.PayrollEntry{
		{ID: "FOL-2024-01", Employee: "Ana Silva Santos", Month: "2024-01", Gross: brl("8500"), Benefits: brl("850"), Deductions: brl("1700"), Status: "processed"},
		{ID: "FOL-2024-02", Employee: "Carlos Oliveira", Month: "2024-01", Gross: brl("9200"), Benefits: brl("920"), Deductions: brl("1840"), Status: "processed"},
		{ID: "FOL-2024-03", Employee: "Maria Costa", Month: "2024-01", Gross: brl("6800"), Benefits: brl("680"), Deductions: brl("1360"), Status: "pending"},
	} {
		out = append(out, p.Record())
	}

	for _, e := range []model.TimeEntry{
		{ID: "PT-001", Employee: "Ana Silva Santos", Date: day("2024-01-15"), Worked: 9*time.Hour + 15*time.Minute, Overtime: 75 * time.Minute, Status: "completed"},
		{ID: "PT-002", Employee: "Carlos Oliveira", Date: day("2024-01-15"), Worked: 8 * time.Hour, Status: "completed"},
		{ID: "PT-003", Employee: "Maria Costa", Date: day("2024-01-15"), Worked: 8 * time.Hour, Status: "completed"},
	} {
		out = append(out, e.Record())
	}

	for _, o := range []model.ProductionOrder{
		{ID: "OP-2024-001", Product: "Cadeira Ergonômica Premium", Quantity: 50, Produced: 35, Start: day("2024-01-10"), End: day("2024-01-20"), Priority: "high", Status: "in_progress", Machine: "Linha A - Montagem", Responsible: "Carlos Santos"},
		{ID: "OP-2024-002", Product: "Mesa de Escritório 120cm", Quantity: 25, Produced: 25, Start: day("2024-01-05"), End: day("2024-01-15"), Priority: "normal", Status: "completed", Machine: "Linha B - Marcenaria", Responsible: "Ana Costa"},
		{ID: "OP-2024-003", Product: "Estante Modular 5 Prateleiras", Quantity: 30, Produced: 0, Start: day("2024-01-20"), End: day("2024-01-30"), Priority: "normal", Status: "planned", Machine: "Linha C - Montagem", Responsible: "João Silva"},
		{ID: "OP-2024-004", Product: "Armário Executivo", Quantity: 15, Produced: 8, Start: day("2024-01-12"), End: day("2024-01-25"), Priority: "low", Status: "delayed", Machine: "Linha A - Montagem", Responsible: "Maria Oliveira"},
	} {
		out = append(out, o.Record(), o.PriorityRecord())
	}

	for _, m := range []model.Machine{
		{ID: "MAQ-001", Name: "Linha A - Montagem", Type: "Linha de Montagem", Status: "operating", Efficiency: 85, CurrentOrder: "OP-2024-001", Operators: 4},
		{ID: "MAQ-002", Name: "Linha B - Marcenaria", Type: "Centro de Usinagem", Status: "maintenance", Operators: 2},
		{ID: "MAQ-003", Name: "Linha C - Montagem", Type: "Linha de Montagem", Status: "idle", Operators: 3},
		{ID: "MAQ-004", Name: "Prensa Hidráulica", Type: "Equipamento Especial", Status: "operating", Efficiency: 92, CurrentOrder: "OP-2024-004", Operators: 1},
	} {
		out = append(out, m.Record())
	}

	for _, q := range []model.QualityInspection{
		{ID: "QC-001", Order: "OP-2024-001", Product: "Cadeira Ergonômica Premium", Inspector: "Pedro Alves", Date: day("2024-01-15"), Tested: 10, Approved: 9, Rejected: 1, Status: "partial"},
		{ID: "QC-002", Order: "OP-2024-002", Product: "Mesa de Escritório 120cm", Inspector: "Laura Silva", Date: day("2024-01-15"), Tested: 25, Approved: 25, Status: "approved"},
	} {
		out = append(out, q.Record())
	}

	return out
}
