package reporting

import (
	"sort"
	"time"

	"github.com/lilybakes/ovenbook/internal/models"
	"github.com/shopspring/decimal"
)

// Service provides dashboard and report calculations over bakery records
type Service struct{}

// NewService creates a new reporting service
func NewService() *Service {
	return &Service{}
}

// MonthRevenue is one month's confirmed and completed order value
type MonthRevenue struct {
	Month   string          `json:"month"` // "2025-05"
	Revenue decimal.Decimal `json:"revenue"`
	Orders  int             `json:"orders"`
}

// CategoryTotal is the spend accumulated under one expense category
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"count"`
}

// DashboardSummary is the headline view for a business
type DashboardSummary struct {
	UpcomingOrders   []*models.Order  `json:"upcoming_orders"`
	OpenQuotes       int              `json:"open_quotes"`
	RevenueThisMonth decimal.Decimal  `json:"revenue_this_month"`
	ExpensesThisMonth decimal.Decimal `json:"expenses_this_month"`
	UnpaidInvoices   int              `json:"unpaid_invoices"`
	OverdueInvoices  int              `json:"overdue_invoices"`
}

// RevenueByMonth groups confirmed and completed orders by event month.
// Quotes and cancelled orders carry no revenue. Months come back sorted.
func (s *Service) RevenueByMonth(orders []*models.Order) []MonthRevenue {
	byMonth := make(map[string]*MonthRevenue)
	for _, o := range orders {
		if !countsAsRevenue(o) {
			continue
		}
		key := o.EventDate.Format("2006-01")
		m, ok := byMonth[key]
		if !ok {
			m = &MonthRevenue{Month: key, Revenue: decimal.Zero}
			byMonth[key] = m
		}
		m.Revenue = m.Revenue.Add(o.Price)
		m.Orders++
	}

	months := make([]MonthRevenue, 0, len(byMonth))
	for _, m := range byMonth {
		months = append(months, *m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Month < months[j].Month })
	return months
}

// UpcomingOrders returns non-cancelled orders with events in the next n
// days, soonest first.
func (s *Service) UpcomingOrders(orders []*models.Order, days int) []*models.Order {
	var upcoming []*models.Order
	for _, o := range orders {
		if o.IsUpcoming(days) {
			upcoming = append(upcoming, o)
		}
	}
	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].EventDate.Before(upcoming[j].EventDate)
	})
	return upcoming
}

// ExpensesByCategory totals spend per category, largest first.
// Uncategorized expenses group under "other".
func (s *Service) ExpensesByCategory(expenses []*models.Expense) []CategoryTotal {
	byCategory := make(map[string]*CategoryTotal)
	for _, e := range expenses {
		cat := e.Category
		if cat == "" {
			cat = "other"
		}
		c, ok := byCategory[cat]
		if !ok {
			c = &CategoryTotal{Category: cat, Total: decimal.Zero}
			byCategory[cat] = c
		}
		c.Total = c.Total.Add(e.Amount)
		c.Count++
	}

	totals := make([]CategoryTotal, 0, len(byCategory))
	for _, c := range byCategory {
		totals = append(totals, *c)
	}
	sort.Slice(totals, func(i, j int) bool {
		if !totals[i].Total.Equal(totals[j].Total) {
			return totals[i].Total.GreaterThan(totals[j].Total)
		}
		return totals[i].Category < totals[j].Category
	})
	return totals
}

// Summarize builds the dashboard headline numbers for the current month
func (s *Service) Summarize(orders []*models.Order, expenses []*models.Expense, invoices []*models.Invoice) *DashboardSummary {
	now := time.Now().UTC()
	month := now.Format("2006-01")

	summary := &DashboardSummary{
		UpcomingOrders:    s.UpcomingOrders(orders, 14),
		RevenueThisMonth:  decimal.Zero,
		ExpensesThisMonth: decimal.Zero,
	}

	for _, o := range orders {
		if o.Status == models.OrderStatusQuote && !o.IsExpired() {
			summary.OpenQuotes++
		}
		if countsAsRevenue(o) && o.EventDate.Format("2006-01") == month {
			summary.RevenueThisMonth = summary.RevenueThisMonth.Add(o.Price)
		}
	}

	for _, e := range expenses {
		if e.IncurredOn.Format("2006-01") == month {
			summary.ExpensesThisMonth = summary.ExpensesThisMonth.Add(e.Amount)
		}
	}

	for _, inv := range invoices {
		if !inv.Paid {
			summary.UnpaidInvoices++
			if inv.IsOverdue() {
				summary.OverdueInvoices++
			}
		}
	}

	return summary
}

func countsAsRevenue(o *models.Order) bool {
	return o.Status == models.OrderStatusConfirmed || o.Status == models.OrderStatusCompleted
}
