package model

import (
	"strconv"
	"time"

	"github.com/Veraticus/erpdash/internal/catalog"
	"github.com/Veraticus/erpdash/internal/status"
	"github.com/shopspring/decimal"
)

// Product is an inventory item.
type Product struct {
	ID       string
	Name     string
	Category string
	Supplier string
	Location string
	Status   string
	Price    decimal.Decimal
	Stock    int
	MinStock int
	MaxStock int
}

// StatusRecord returns the classifier input for the product.
func (p Product) StatusRecord() status.Record {
	return p.Record().StatusRecord()
}

// Record converts the product to its stored form.
func (p Product) Record() Record {
	r := newRecord(catalog.DomainStock, p.ID, p.Name, p.Status)
	r.Stock = &status.StockLevel{Current: p.Stock, Min: p.MinStock, Max: p.MaxStock}
	r.Amount = decimal.NewNullDecimal(p.Price)
	if p.MaxStock > 0 {
		r.Progress = &Fraction{Done: float64(p.Stock), Total: float64(p.MaxStock)}
	}
	r.Attributes = map[string]string{"category": p.Category, "supplier": p.Supplier, "location": p.Location}
	return r
}

// TitleKind separates receivables from payables.
type TitleKind int

// Title kinds.
const (
	Receivable TitleKind = iota
	Payable
)

// Title is an account receivable or payable.
type Title struct {
	IssueDate   time.Time
	DueDate     time.Time
	DaysPastDue *int
	ID          string
	Party       string
	Document    string
	Category    string
	Status      string
	Value       decimal.Decimal
	Kind        TitleKind
}

// StatusRecord returns the classifier input for the title.
func (t Title) StatusRecord() status.Record {
	return t.Record().StatusRecord()
}

// Record converts the title to its stored form.
func (t Title) Record() Record {
	domain := catalog.DomainReceivable
	if t.Kind == Payable {
		domain = catalog.DomainPayable
	}
	r := newRecord(domain, t.ID, t.Party, t.Status)
	r.DaysPastDue = t.DaysPastDue
	r.Amount = decimal.NewNullDecimal(t.Value)
	r.Attributes = map[string]string{"document": t.Document, "category": t.Category}
	if !t.DueDate.IsZero() {
		r.Attributes["due_date"] = t.DueDate.Format(time.DateOnly)
	}
	return r
}

// Customer is a sales customer.
type Customer struct {
	LastPurchase   time.Time
	ID             string
	Name           string
	Company        string
	Email          string
	Status         string
	TotalPurchases decimal.Decimal
}

// Record converts the customer to its stored form.
func (c Customer) Record() Record {
	r := newRecord(catalog.DomainCustomer, c.ID, c.Name, c.Status)
	r.Amount = decimal.NewNullDecimal(c.TotalPurchases)
	r.Attributes = map[string]string{"company": c.Company, "email": c.Email}
	return r
}

// SalesOrder is a customer order.
type SalesOrder struct {
	Date     time.Time
	ID       string
	Customer string
	Status   string
	Value    decimal.Decimal
	Items    int
}

// Record converts the order to its stored form.
func (o SalesOrder) Record() Record {
	r := newRecord(catalog.DomainSalesOrder, o.ID, o.Customer, o.Status)
	r.Amount = decimal.NewNullDecimal(o.Value)
	r.Attributes = map[string]string{"items": strconv.Itoa(o.Items)}
	return r
}

// Supplier is a purchasing supplier.
type Supplier struct {
	ID             string
	Name           string
	Category       string
	Contact        string
	Status         string
	TotalPurchases decimal.Decimal
	Rating         float64
}

// Record converts the supplier to its stored form.
func (s Supplier) Record() Record {
	r := newRecord(catalog.DomainSupplier, s.ID, s.Name, s.Status)
	r.Amount = decimal.NewNullDecimal(s.TotalPurchases)
	r.Attributes = map[string]string{
		"category": s.Category,
		"contact":  s.Contact,
		"rating":   strconv.FormatFloat(s.Rating, 'f', 1, 64),
	}
	return r
}

// PurchaseOrder is an order placed with a supplier.
type PurchaseOrder struct {
	Date         time.Time
	DeliveryDate time.Time
	ID           string
	Supplier     string
	Status       string
	Urgency      string
	Value        decimal.Decimal
	Items        int
}

// Record converts the order to its stored form.
func (o PurchaseOrder) Record() Record {
	r := newRecord(catalog.DomainPurchaseOrder, o.ID, o.Supplier, o.Status)
	r.Amount = decimal.NewNullDecimal(o.Value)
	r.Attributes = map[string]string{"urgency": o.Urgency, "items": strconv.Itoa(o.Items)}
	return r
}

// UrgencyRecord is the order's urgency as a record of the urgency domain.
func (o PurchaseOrder) UrgencyRecord() Record {
	return newRecord(catalog.DomainUrgency, o.ID+"/urgency", o.Supplier, o.Urgency)
}

// Employee is a staff member.
type Employee struct {
	HireDate   time.Time
	ID         string
	Name       string
	Position   string
	Department string
	Status     string
	Salary     decimal.Decimal
}

// Record converts the employee to its stored form.
func (e Employee) Record() Record {
	r := newRecord(catalog.DomainEmployee, e.ID, e.Name, e.Status)
	r.Amount = decimal.NewNullDecimal(e.Salary)
	r.Attributes = map[string]string{"position": e.Position, "department": e.Department}
	return r
}

// PayrollEntry is one employee's payslip for a month.
type PayrollEntry struct {
	ID         string
	Employee   string
	Month      string
	Status     string
	Gross      decimal.Decimal
	Benefits   decimal.Decimal
	Deductions decimal.Decimal
}

// Net is gross plus benefits minus deductions.
func (p PayrollEntry) Net() decimal.Decimal {
	return p.Gross.Add(p.Benefits).Sub(p.Deductions)
}

// Record converts the payslip to its stored form.
func (p PayrollEntry) Record() Record {
	r := newRecord(catalog.DomainPayroll, p.ID, p.Employee, p.Status)
	r.Amount = decimal.NewNullDecimal(p.Net())
	r.Attributes = map[string]string{"month": p.Month}
	return r
}

// TimeEntry is a day on the time clock.
type TimeEntry struct {
	Date     time.Time
	ID       string
	Employee string
	Status   string
	Worked   time.Duration
	Overtime time.Duration
}

// Record converts the entry to its stored form.
func (e TimeEntry) Record() Record {
	r := newRecord(catalog.DomainTimesheet, e.ID, e.Employee, e.Status)
	r.Attributes = map[string]string{"worked": e.Worked.String(), "overtime": e.Overtime.String()}
	return r
}

// ProductionOrder is a manufacturing order.
type ProductionOrder struct {
	Start       time.Time
	End         time.Time
	ID          string
	Product     string
	Machine     string
	Responsible string
	Priority    string
	Status      string
	Quantity    int
	Produced    int
}

// Record converts the order to its stored form.
func (o ProductionOrder) Record() Record {
	r := newRecord(catalog.DomainProductionOrder, o.ID, o.Product, o.Status)
	if o.Quantity > 0 {
		r.Progress = &Fraction{Done: float64(o.Produced), Total: float64(o.Quantity)}
	}
	r.Attributes = map[string]string{"machine": o.Machine, "responsible": o.Responsible, "priority": o.Priority}
	return r
}

// PriorityRecord is the order's priority as a record of the priority domain.
func (o ProductionOrder) PriorityRecord() Record {
	return newRecord(catalog.DomainPriority, o.ID+"/priority", o.Product, o.Priority)
}

// Machine is a production line or piece of equipment.
type Machine struct {
	ID           string
	Name         string
	Type         string
	CurrentOrder string
	Status       string
	Efficiency   float64
	Operators    int
}

// EfficiencySeverity grades the machine's efficiency percentage.
func (m Machine) EfficiencySeverity() status.Severity {
	return status.EfficiencyBands.Severity(m.Efficiency)
}

// Record converts the machine to its stored form.
func (m Machine) Record() Record {
	r := newRecord(catalog.DomainMachine, m.ID, m.Name, m.Status)
	r.Progress = &Fraction{Done: m.Efficiency, Total: 100}
	r.Attributes = map[string]string{
		"type":      m.Type,
		"order":     m.CurrentOrder,
		"operators": strconv.Itoa(m.Operators),
	}
	return r
}

// QualityInspection is a quality-control batch result.
type QualityInspection struct {
	Date      time.Time
	ID        string
	Order     string
	Product   string
	Inspector string
	Status    string
	Tested    int
	Approved  int
	Rejected  int
}

// Record converts the inspection to its stored form.
func (q QualityInspection) Record() Record {
	r := newRecord(catalog.DomainQuality, q.ID, q.Product, q.Status)
	if q.Tested > 0 {
		r.Progress = &Fraction{Done: float64(q.Approved), Total: float64(q.Tested)}
	}
	r.Attributes = map[string]string{"order": q.Order, "inspector": q.Inspector, "rejected": strconv.Itoa(q.Rejected)}
	return r
}

// Activity is an entry of the dashboard's recent-activity feed.
type Activity struct {
	ID          string
	Kind        string
	Title       string
	Description string
	When        string
	Status      string
}

// Record converts the activity to its stored form.
func (a Activity) Record() Record {
	r := newRecord(catalog.DomainActivity, a.ID, a.Title, a.Status)
	r.Attributes = map[string]string{"kind": a.Kind, "description": a.Description, "when": a.When}
	return r
}

func newRecord(domain, id, name, raw string) Record {
	r := Record{ID: id, Domain: domain, Name: name, RawStatus: raw}
	if m, ok := catalog.ModuleOf(domain); ok {
		r.Module = m.Name
	}
	return r
}
