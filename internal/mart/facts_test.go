package mart

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func testDims() ([]Store, []Product) {
	stores := []Store{
		{ID: 3, Location: "Astoria"},
		{ID: 5, Location: "Lower Manhattan"},
		{ID: 8, Location: "Hell's Kitchen"},
	}
	products := []Product{
		{ID: 32, Category: "Coffee", ProductType: "Gourmet brewed coffee", Detail: "Ethiopia Rg"},
		{ID: 57, Category: "Tea", ProductType: "Brewed Chai tea", Detail: "Spicy Eye Opener Chai Lg"},
	}
	return stores, products
}

func cleanItem(t *testing.T, txID int64, date, clock string, storeID, productID, qty int, price string) LineItem {
	t.Helper()
	d, err := time.ParseInLocation(DateFormat, date, time.UTC)
	if err != nil {
		t.Fatalf("bad date %q: %v", date, err)
	}
	tod, err := ParseTimeOfDay(clock)
	if err != nil {
		t.Fatalf("bad time %q: %v", clock, err)
	}
	return LineItem{
		TransactionID: txID,
		Date:          d,
		Time:          tod,
		StoreID:       storeID,
		ProductID:     productID,
		Quantity:      qty,
		UnitPrice:     mustDecimal(t, price),
	}
}

func TestBuildFactsRevenue(t *testing.T) {
	stores, products := testDims()
	items := []LineItem{
		cleanItem(t, 1, "2023-01-01", "08:00:00", 5, 32, 2, "3.00"),
		cleanItem(t, 2, "2023-01-01", "08:00:00", 5, 57, 3, "4.75"),
	}

	facts, err := BuildFacts(items, stores, products)
	if err != nil {
		t.Fatalf("BuildFacts failed: %v", err)
	}
	if facts.Len() != 2 {
		t.Fatalf("Expected 2 facts, got %d", facts.Len())
	}

	f1, ok := facts.Lookup(1)
	if !ok {
		t.Fatal("Lookup(1) not found")
	}
	if !f1.Revenue.Equal(mustDecimal(t, "6.00")) {
		t.Errorf("Revenue for tx 1: expected 6.00, got %s", f1.Revenue)
	}
	f2, _ := facts.Lookup(2)
	if !f2.Revenue.Equal(mustDecimal(t, "14.25")) {
		t.Errorf("Revenue for tx 2: expected 14.25, got %s", f2.Revenue)
	}
}

// Revenue must equal quantity x unit_price exactly for arbitrary valid
// inputs; decimal arithmetic over 2-place prices never drifts.
func TestBuildFactsRevenueProperty(t *testing.T) {
	stores, products := testDims()
	rng := rand.New(rand.NewSource(42))

	items := make([]LineItem, 0, 500)
	for i := 0; i < 500; i++ {
		qty := rng.Intn(20) + 1
		cents := rng.Intn(100000)
		price := decimal.New(int64(cents), -2)
		it := cleanItem(t, int64(i+1), "2023-03-14", "12:30:00", 5, 32, qty, price.String())
		items = append(items, it)
	}

	facts, err := BuildFacts(items, stores, products)
	if err != nil {
		t.Fatalf("BuildFacts failed: %v", err)
	}
	for i := 0; i < facts.Len(); i++ {
		f := facts.At(i)
		want := f.UnitPrice.Mul(decimal.NewFromInt(int64(f.Quantity)))
		if !f.Revenue.Equal(want) {
			t.Fatalf("tx %d: revenue %s != %d x %s", f.TransactionID, f.Revenue, f.Quantity, f.UnitPrice)
		}
		if f.Revenue.Exponent() < -2 {
			t.Fatalf("tx %d: revenue %s has more than 2 fractional digits", f.TransactionID, f.Revenue)
		}
	}
}

func TestBuildFactsDuplicateTransactionID(t *testing.T) {
	stores, products := testDims()
	items := []LineItem{
		cleanItem(t, 7, "2023-01-01", "08:00:00", 5, 32, 1, "3.00"),
		cleanItem(t, 7, "2023-01-01", "09:00:00", 8, 57, 1, "4.00"),
	}

	_, err := BuildFacts(items, stores, products)
	var ue *UniquenessError
	if !errors.As(err, &ue) {
		t.Fatalf("Expected *UniquenessError, got %v", err)
	}
	if ue.Column != "transaction_id" {
		t.Errorf("Column: expected transaction_id, got %s", ue.Column)
	}
	if len(ue.Keys) != 1 || ue.Keys[0] != 7 {
		t.Errorf("Expected offending key 7, got %v", ue.Keys)
	}
}

func TestBuildFactsDanglingForeignKeys(t *testing.T) {
	stores, products := testDims()

	tests := []struct {
		name      string
		item      LineItem
		dimension string
	}{
		{"unknown store", cleanItem(t, 1, "2023-01-01", "08:00:00", 99, 32, 1, "3.00"), "store"},
		{"unknown product", cleanItem(t, 1, "2023-01-01", "08:00:00", 5, 999, 1, "3.00"), "product"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildFacts([]LineItem{tt.item}, stores, products)
			var rie *ReferentialIntegrityError
			if !errors.As(err, &rie) {
				t.Fatalf("Expected *ReferentialIntegrityError, got %v", err)
			}
			if rie.Dimension != tt.dimension {
				t.Errorf("Dimension: expected %s, got %s", tt.dimension, rie.Dimension)
			}
			if len(rie.Keys) != 1 {
				t.Errorf("Expected 1 offending key, got %v", rie.Keys)
			}
		})
	}
}

func TestFactSetOrderedByTransactionID(t *testing.T) {
	stores, products := testDims()
	items := []LineItem{
		cleanItem(t, 30, "2023-01-01", "08:00:00", 5, 32, 1, "3.00"),
		cleanItem(t, 10, "2023-01-01", "08:00:00", 5, 32, 1, "3.00"),
		cleanItem(t, 20, "2023-01-01", "08:00:00", 5, 32, 1, "3.00"),
	}

	facts, err := BuildFacts(items, stores, products)
	if err != nil {
		t.Fatalf("BuildFacts failed: %v", err)
	}
	for i := 1; i < facts.Len(); i++ {
		if facts.At(i-1).TransactionID >= facts.At(i).TransactionID {
			t.Fatalf("FactSet not ordered by transaction id at %d", i)
		}
	}
}

func TestFactSetFactsReturnsCopy(t *testing.T) {
	stores, products := testDims()
	items := []LineItem{cleanItem(t, 1, "2023-01-01", "08:00:00", 5, 32, 1, "3.00")}
	facts, err := BuildFacts(items, stores, products)
	if err != nil {
		t.Fatalf("BuildFacts failed: %v", err)
	}

	copied := facts.Facts()
	copied[0].Quantity = 999
	if facts.At(0).Quantity == 999 {
		t.Error("Mutating Facts() result must not change the set")
	}
}

func TestBuildFactsEmptyInput(t *testing.T) {
	facts, err := BuildFacts(nil, nil, nil)
	if err != nil {
		t.Fatalf("BuildFacts on empty input failed: %v", err)
	}
	if facts.Len() != 0 {
		t.Errorf("Expected empty fact set, got %d", facts.Len())
	}
	if _, ok := facts.Lookup(1); ok {
		t.Error("Lookup on empty set should miss")
	}
}

func BenchmarkBuildFacts(b *testing.B) {
	stores := []Store{{ID: 5, Location: "Lower Manhattan"}}
	products := []Product{{ID: 32, Category: "Coffee", ProductType: "Brewed", Detail: "House"}}
	date, _ := time.ParseInLocation(DateFormat, "2023-01-01", time.UTC)
	items := make([]LineItem, 10000)
	for i := range items {
		items[i] = LineItem{
			TransactionID: int64(i + 1),
			Date:          date,
			Time:          TimeOfDay(i % 86400),
			StoreID:       5,
			ProductID:     32,
			Quantity:      i%5 + 1,
			UnitPrice:     decimal.New(int64(i%1000), -2),
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := BuildFacts(items, stores, products); err != nil {
			b.Fatal(err)
		}
	}
}
