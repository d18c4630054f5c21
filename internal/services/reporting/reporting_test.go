package reporting

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lilybakes/ovenbook/internal/models"
	"github.com/shopspring/decimal"
)

func testOrder(status models.OrderStatus, eventDate time.Time, price string) *models.Order {
	o := models.NewOrder(uuid.New(), uuid.New(), "Q-1")
	o.Status = status
	o.EventDate = eventDate
	o.Price, _ = decimal.NewFromString(price)
	return o
}

func TestRevenueByMonth(t *testing.T) {
	svc := NewService()

	may := time.Date(2025, time.May, 10, 0, 0, 0, 0, time.UTC)
	june := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)

	orders := []*models.Order{
		testOrder(models.OrderStatusConfirmed, may, "45.00"),
		testOrder(models.OrderStatusCompleted, may, "30.00"),
		testOrder(models.OrderStatusConfirmed, june, "100.00"),
		testOrder(models.OrderStatusQuote, may, "999.00"),     // quotes carry no revenue
		testOrder(models.OrderStatusCancelled, june, "50.00"), // nor do cancellations
	}

	months := svc.RevenueByMonth(orders)
	if len(months) != 2 {
		t.Fatalf("got %d months, want 2", len(months))
	}

	if months[0].Month != "2025-05" {
		t.Errorf("first month = %q, want %q", months[0].Month, "2025-05")
	}
	if months[0].Revenue.String() != "75" {
		t.Errorf("May revenue = %s, want 75", months[0].Revenue)
	}
	if months[0].Orders != 2 {
		t.Errorf("May orders = %d, want 2", months[0].Orders)
	}
	if months[1].Revenue.String() != "100" {
		t.Errorf("June revenue = %s, want 100", months[1].Revenue)
	}
}

func TestRevenueByMonthEmpty(t *testing.T) {
	svc := NewService()
	if months := svc.RevenueByMonth(nil); len(months) != 0 {
		t.Errorf("got %d months for no orders, want 0", len(months))
	}
}

func TestUpcomingOrders(t *testing.T) {
	svc := NewService()
	now := time.Now().UTC()

	soon := testOrder(models.OrderStatusConfirmed, now.AddDate(0, 0, 3), "45.00")
	sooner := testOrder(models.OrderStatusConfirmed, now.AddDate(0, 0, 1), "20.00")
	far := testOrder(models.OrderStatusConfirmed, now.AddDate(0, 0, 60), "80.00")
	cancelled := testOrder(models.OrderStatusCancelled, now.AddDate(0, 0, 2), "10.00")
	past := testOrder(models.OrderStatusCompleted, now.AddDate(0, 0, -5), "15.00")

	upcoming := svc.UpcomingOrders([]*models.Order{soon, sooner, far, cancelled, past}, 14)
	if len(upcoming) != 2 {
		t.Fatalf("got %d upcoming orders, want 2", len(upcoming))
	}
	if upcoming[0] != sooner || upcoming[1] != soon {
		t.Error("upcoming orders not sorted soonest first")
	}
}

func TestExpensesByCategory(t *testing.T) {
	svc := NewService()
	userID := uuid.New()

	flour := models.NewExpense(userID, "Flour Co", decimal.NewFromFloat(12.50))
	flour.Category = "ingredients"
	butter := models.NewExpense(userID, "Dairy Ltd", decimal.NewFromFloat(8.00))
	butter.Category = "ingredients"
	mixer := models.NewExpense(userID, "Kitchen Kit", decimal.NewFromFloat(150.00))
	mixer.Category = "equipment"
	misc := models.NewExpense(userID, "Corner Shop", decimal.NewFromFloat(3.00))

	totals := svc.ExpensesByCategory([]*models.Expense{flour, butter, mixer, misc})
	if len(totals) != 3 {
		t.Fatalf("got %d categories, want 3", len(totals))
	}

	if totals[0].Category != "equipment" {
		t.Errorf("largest category = %q, want %q", totals[0].Category, "equipment")
	}
	if totals[1].Category != "ingredients" || totals[1].Total.String() != "20.5" {
		t.Errorf("ingredients total = %s, want 20.5", totals[1].Total)
	}
	if totals[2].Category != "other" {
		t.Errorf("uncategorized bucket = %q, want %q", totals[2].Category, "other")
	}
}

func TestSummarize(t *testing.T) {
	svc := NewService()
	now := time.Now().UTC()
	userID := uuid.New()

	confirmed := testOrder(models.OrderStatusConfirmed, now.AddDate(0, 0, 2), "45.00")
	quote := testOrder(models.OrderStatusQuote, now.AddDate(0, 0, 30), "60.00")

	expense := models.NewExpense(userID, "Flour Co", decimal.NewFromFloat(12.50))
	expense.IncurredOn = now

	unpaid := models.NewInvoice(userID, confirmed.ID, 1, decimal.NewFromFloat(45.00))
	overdue := models.NewInvoice(userID, confirmed.ID, 2, decimal.NewFromFloat(20.00))
	overdue.DueDate = now.AddDate(0, 0, -1)
	paid := models.NewInvoice(userID, confirmed.ID, 3, decimal.NewFromFloat(10.00))
	paid.MarkPaid()

	summary := svc.Summarize(
		[]*models.Order{confirmed, quote},
		[]*models.Expense{expense},
		[]*models.Invoice{unpaid, overdue, paid},
	)

	if summary.OpenQuotes != 1 {
		t.Errorf("OpenQuotes = %d, want 1", summary.OpenQuotes)
	}
	if len(summary.UpcomingOrders) != 1 {
		t.Errorf("got %d upcoming orders, want 1", len(summary.UpcomingOrders))
	}
	if summary.ExpensesThisMonth.String() != "12.5" {
		t.Errorf("ExpensesThisMonth = %s, want 12.5", summary.ExpensesThisMonth)
	}
	if summary.UnpaidInvoices != 2 {
		t.Errorf("UnpaidInvoices = %d, want 2", summary.UnpaidInvoices)
	}
	if summary.OverdueInvoices != 1 {
		t.Errorf("OverdueInvoices = %d, want 1", summary.OverdueInvoices)
	}
}
