package importer

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lilybakes/ovenbook/internal/models"
)

// fakeOrderStore upserts on (user, order number) like the real repository
type fakeOrderStore struct {
	orders map[string]*models.Order
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{orders: make(map[string]*models.Order)}
}

func (s *fakeOrderStore) UpsertByOrderNumber(o *models.Order) error {
	key := o.UserID.String() + "|" + o.OrderNumber
	if existing, ok := s.orders[key]; ok {
		o.ID = existing.ID
	}
	s.orders[key] = o
	return nil
}

// fakeExpenseStore upserts on (user, content hash) like the real repository
type fakeExpenseStore struct {
	expenses map[string]*models.Expense
}

func newFakeExpenseStore() *fakeExpenseStore {
	return &fakeExpenseStore{expenses: make(map[string]*models.Expense)}
}

func (s *fakeExpenseStore) UpsertByContentHash(e *models.Expense) error {
	key := e.UserID.String() + "|" + e.ContentHash
	if existing, ok := s.expenses[key]; ok && e.ContentHash != "" {
		e.ID = existing.ID
	}
	s.expenses[key] = e
	return nil
}

func newTestService() (*Service, *fakeContactStore, *fakeOrderStore, *fakeExpenseStore) {
	contacts := &fakeContactStore{}
	orders := newFakeOrderStore()
	expenses := newFakeExpenseStore()
	return NewService(contacts, orders, expenses), contacts, orders, expenses
}

func TestRunImportsOrders(t *testing.T) {
	svc, contacts, orders, _ := newTestService()
	userID := uuid.New()

	raw := "Order Number,Contact,Event Date,Event Type,Theme,Order Total\n" +
		"Q-1,Jane Doe,19/05/2025,Birthday,Unicorn,45.00\n"

	summary, err := svc.Run(context.Background(), raw, Options{Entity: EntityOrders, UserID: userID})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if summary.SuccessCount != 1 || summary.ErrorCount != 0 {
		t.Fatalf("got %d/%d success/error, want 1/0", summary.SuccessCount, summary.ErrorCount)
	}
	if got := summary.Message(); got != "Successfully imported 1. 0 failed." {
		t.Errorf("Message() = %q", got)
	}

	if len(orders.orders) != 1 {
		t.Fatalf("got %d orders, want 1", len(orders.orders))
	}
	var order *models.Order
	for _, o := range orders.orders {
		order = o
	}
	if order.OrderNumber != "Q-1" {
		t.Errorf("OrderNumber = %q, want %q", order.OrderNumber, "Q-1")
	}
	want := time.Date(2025, time.May, 19, 0, 0, 0, 0, time.UTC)
	if !order.EventDate.Equal(want) {
		t.Errorf("EventDate = %v, want %v", order.EventDate, want)
	}
	if order.Price.String() != "45" {
		t.Errorf("Price = %s, want 45", order.Price)
	}
	if order.Description != "Unicorn" {
		t.Errorf("Description = %q, want %q", order.Description, "Unicorn")
	}
	if order.Status != models.OrderStatusQuote {
		t.Errorf("Status = %q, want %q", order.Status, models.OrderStatusQuote)
	}
	if order.Source != string(FormatStandard) {
		t.Errorf("Source = %q, want %q", order.Source, FormatStandard)
	}

	if len(contacts.contacts) != 1 {
		t.Fatalf("got %d contacts, want 1", len(contacts.contacts))
	}
	if got := contacts.contacts[0].FullName(); got != "Jane Doe" {
		t.Errorf("contact = %q, want %q", got, "Jane Doe")
	}
	if order.ContactID != contacts.contacts[0].ID {
		t.Error("order not linked to created contact")
	}
}

func TestRunContinuesPastBadRows(t *testing.T) {
	svc, _, orders, _ := newTestService()

	raw := "Order Number,Contact,Event Date\n" +
		"Q-1,Jane Doe,19/05/2025\n" +
		"Q-2,Amy Lee,20/05/2025\n" +
		"Q-3,too,many,cells,here\n" +
		"Q-4,Bo Ng,21/05/2025\n" +
		"Q-5,Cy Fox,22/05/2025\n"

	summary, err := svc.Run(context.Background(), raw, Options{Entity: EntityOrders, UserID: uuid.New()})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if summary.SuccessCount != 4 || summary.ErrorCount != 1 {
		t.Fatalf("got %d/%d success/error, want 4/1", summary.SuccessCount, summary.ErrorCount)
	}

	failures := summary.Failures()
	if len(failures) != 1 {
		t.Fatalf("got %d failures, want 1", len(failures))
	}
	if failures[0].Row != 3 {
		t.Errorf("failed row = %d, want 3", failures[0].Row)
	}
	if len(orders.orders) != 4 {
		t.Errorf("got %d orders, want 4", len(orders.orders))
	}
	if got := summary.Message(); got != "Successfully imported 4. 1 failed." {
		t.Errorf("Message() = %q", got)
	}
}

func TestRunIsIdempotentForOrders(t *testing.T) {
	svc, contacts, orders, _ := newTestService()
	userID := uuid.New()

	raw := "Order Number,Contact,Event Date,Order Total\n" +
		"Q-1,Jane Doe,19/05/2025,45.00\n"

	if _, err := svc.Run(context.Background(), raw, Options{Entity: EntityOrders, UserID: userID}); err != nil {
		t.Fatalf("first Run() error = %v", err)
	}
	firstID := orders.orders[userID.String()+"|Q-1"].ID

	raw2 := "Order Number,Contact,Event Date,Order Total\n" +
		"Q-1,Jane Doe,19/05/2025,50.00\n"
	summary, err := svc.Run(context.Background(), raw2, Options{Entity: EntityOrders, UserID: userID})
	if err != nil {
		t.Fatalf("second Run() error = %v", err)
	}

	if len(orders.orders) != 1 {
		t.Fatalf("got %d orders after re-import, want 1", len(orders.orders))
	}
	updated := orders.orders[userID.String()+"|Q-1"]
	if updated.ID != firstID {
		t.Error("re-import changed the order identity")
	}
	// The outcome must echo the surviving row's id, not a discarded one
	if got := summary.Outcomes[0].ID; got != firstID.String() {
		t.Errorf("outcome ID = %s, want %s", got, firstID)
	}
	if updated.Price.String() != "50" {
		t.Errorf("Price = %s, want 50 after re-import", updated.Price)
	}
	if len(contacts.contacts) != 1 {
		t.Errorf("got %d contacts, want 1", len(contacts.contacts))
	}
}

func TestRunImportsBannerExport(t *testing.T) {
	svc, _, orders, _ := newTestService()
	userID := uuid.New()

	raw := "Bake Diary Export,,\n" +
		"Generated 01/05/2025,,\n" +
		"Order Number,Contact,Event Date\n" +
		"Q-7,Jane Doe,19/05/2025\n"

	summary, err := svc.Run(context.Background(), raw, Options{Entity: EntityOrders, UserID: userID})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if summary.SuccessCount != 1 {
		t.Fatalf("SuccessCount = %d, want 1", summary.SuccessCount)
	}
	order := orders.orders[userID.String()+"|Q-7"]
	if order == nil {
		t.Fatal("order Q-7 not persisted")
	}
	if order.Source != string(FormatBannerExport) {
		t.Errorf("Source = %q, want %q", order.Source, FormatBannerExport)
	}
}

func TestRunImportsExpenses(t *testing.T) {
	svc, _, _, expenses := newTestService()
	userID := uuid.New()

	raw := "Vendor,Amount (Inc VAT),Date,Description,VAT,Paid\n" +
		"Flour Co,12.50,01/05/2025,Bread flour,2.08,yes\n"

	summary, err := svc.Run(context.Background(), raw, Options{Entity: EntityExpenses, UserID: userID})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if summary.SuccessCount != 1 {
		t.Fatalf("SuccessCount = %d, want 1", summary.SuccessCount)
	}

	if len(expenses.expenses) != 1 {
		t.Fatalf("got %d expenses, want 1", len(expenses.expenses))
	}
	var expense *models.Expense
	for _, e := range expenses.expenses {
		expense = e
	}
	if expense.Vendor != "Flour Co" {
		t.Errorf("Vendor = %q, want %q", expense.Vendor, "Flour Co")
	}
	if expense.Amount.String() != "12.5" {
		t.Errorf("Amount = %s, want 12.5", expense.Amount)
	}
	if expense.VATAmount.String() != "2.08" {
		t.Errorf("VATAmount = %s, want 2.08", expense.VATAmount)
	}
	if !expense.Paid {
		t.Error("Paid = false, want true")
	}
	if expense.ContentHash == "" {
		t.Error("ContentHash is empty")
	}
}

func TestRunIsIdempotentForExpenses(t *testing.T) {
	svc, _, _, expenses := newTestService()
	userID := uuid.New()

	raw := "Vendor,Amount (Inc VAT),Date\n" +
		"Flour Co,12.50,01/05/2025\n"

	var outcomeIDs []string
	for i := 0; i < 2; i++ {
		summary, err := svc.Run(context.Background(), raw, Options{Entity: EntityExpenses, UserID: userID})
		if err != nil {
			t.Fatalf("Run() #%d error = %v", i+1, err)
		}
		outcomeIDs = append(outcomeIDs, summary.Outcomes[0].ID)
	}

	if len(expenses.expenses) != 1 {
		t.Errorf("got %d expenses after re-import, want 1", len(expenses.expenses))
	}
	// Both runs must echo the same stored identity
	if outcomeIDs[0] != outcomeIDs[1] {
		t.Errorf("outcome IDs differ across re-import: %s vs %s", outcomeIDs[0], outcomeIDs[1])
	}
}

func TestRunMissingMappingAborts(t *testing.T) {
	svc, _, orders, _ := newTestService()

	raw := "Reference,Customer,When\n" +
		"Q-1,Jane Doe,19/05/2025\n"

	_, err := svc.Run(context.Background(), raw, Options{Entity: EntityOrders, UserID: uuid.New()})
	var mapErr *MappingError
	if !errors.As(err, &mapErr) {
		t.Fatalf("Run() error = %v, want *MappingError", err)
	}
	if len(mapErr.Missing) == 0 {
		t.Error("MappingError.Missing is empty")
	}
	if len(orders.orders) != 0 {
		t.Errorf("got %d orders, want 0 after aborted batch", len(orders.orders))
	}
}

func TestRunMappingOverrides(t *testing.T) {
	svc, _, orders, _ := newTestService()
	userID := uuid.New()

	raw := "Reference,Contact,Event Date\n" +
		"Q-9,Jane Doe,19/05/2025\n"

	opts := Options{
		Entity:    EntityOrders,
		UserID:    userID,
		Overrides: map[string]string{"order_number": "Reference"},
	}
	summary, err := svc.Run(context.Background(), raw, opts)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if summary.SuccessCount != 1 {
		t.Fatalf("SuccessCount = %d, want 1", summary.SuccessCount)
	}
	if orders.orders[userID.String()+"|Q-9"] == nil {
		t.Error("order Q-9 not persisted via override")
	}
}

func TestRunMalformedFileAborts(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Run(context.Background(), "just one line\n", Options{Entity: EntityOrders, UserID: uuid.New()})
	if !errors.Is(err, ErrMalformedFile) {
		t.Errorf("Run() error = %v, want ErrMalformedFile", err)
	}
}

func TestRunCancelledContextStopsEarly(t *testing.T) {
	svc, _, orders, _ := newTestService()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	raw := "Order Number,Contact,Event Date\n" +
		"Q-1,Jane Doe,19/05/2025\n" +
		"Q-2,Amy Lee,20/05/2025\n"

	summary, err := svc.Run(ctx, raw, Options{Entity: EntityOrders, UserID: uuid.New()})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(summary.Outcomes) != 0 {
		t.Errorf("got %d outcomes under cancelled context, want 0", len(summary.Outcomes))
	}
	if len(orders.orders) != 0 {
		t.Errorf("got %d orders, want 0", len(orders.orders))
	}
}

func TestRunStatusNormalization(t *testing.T) {
	tests := []struct {
		raw  string
		want models.OrderStatus
	}{
		{"Confirmed", models.OrderStatusConfirmed},
		{"booked", models.OrderStatusConfirmed},
		{"COMPLETED", models.OrderStatusCompleted},
		{"cancelled", models.OrderStatusCancelled},
		{"canceled", models.OrderStatusCancelled},
		{"", models.OrderStatusQuote},
		{"pending", models.OrderStatusQuote},
	}

	for _, tt := range tests {
		if got := orderStatusFrom(tt.raw); got != tt.want {
			t.Errorf("orderStatusFrom(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestPreview(t *testing.T) {
	svc, _, _, _ := newTestService()

	raw := "Order Number,Contact,Event Date\n" +
		"Q-1,Jane Doe,19/05/2025\n" +
		"Q-2,Amy Lee,20/05/2025\n"

	preview, err := svc.Preview(raw, EntityOrders)
	if err != nil {
		t.Fatalf("Preview() error = %v", err)
	}
	if preview.RowCount != 2 {
		t.Errorf("RowCount = %d, want 2", preview.RowCount)
	}
	if len(preview.SampleRows) != 2 {
		t.Errorf("got %d sample rows, want 2", len(preview.SampleRows))
	}
	if got := preview.Mapping["contact_name"]; got != "Contact" {
		t.Errorf("mapping contact_name = %q, want %q", got, "Contact")
	}
	wantRequired := []string{"order_number", "contact_name", "event_date"}
	if !reflect.DeepEqual(preview.Required, wantRequired) {
		t.Errorf("Required = %v, want %v", preview.Required, wantRequired)
	}
	if preview.Layout.Format != FormatStandard {
		t.Errorf("Format = %q, want %q", preview.Layout.Format, FormatStandard)
	}
}
