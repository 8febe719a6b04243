package dataset

import (
	"fmt"
	"math"
	"reflect"
	"regexp"
	"testing"
	"time"

	"github.com/im45145v/bipulse/internal/model"
)

func testConfig() Config {
	return Config{
		NumCustomers: 25,
		SegmentDistribution: map[model.Segment]float64{
			model.SegmentNew:       0.30,
			model.SegmentReturning: 0.40,
			model.SegmentVIP:       0.15,
			model.SegmentAtRisk:    0.15,
		},
		OrdersPerCustomerMin: 3,
		OrdersPerCustomerMax: 5,
		InterestPool:         []string{"electronics", "fashion", "fitness", "books", "travel", "home_decor", "gaming", "beauty"},
		ProductCategories:    []string{"electronics", "fashion", "fitness", "books", "travel", "home_decor", "gaming", "beauty"},
		OrderChannels:        []model.Channel{model.ChannelWeb, model.ChannelApp, model.ChannelStore},
		DaysBack:             180,
		Seed:                 42,
		Today:                time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestGenerateDeterminism(t *testing.T) {
	t.Parallel()

	a, err := Generate(testConfig())
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	b, err := Generate(testConfig())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatal("two runs with the same config and seed differ")
	}
}

func TestSegmentCounts(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.NumCustomers = 10 // truncation leaves a remainder of 1
	ds, err := Generate(cfg)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	counts := map[model.Segment]int{}
	for _, c := range ds.Customers {
		counts[c.Segment]++
	}
	total := 0
	for _, n := range counts {
		total += n
	}
	if total != cfg.NumCustomers {
		t.Fatalf("segment counts sum to %d, want %d", total, cfg.NumCustomers)
	}
	// 10*0.4 = 4 plus the rounding remainder of 1
	if counts[model.SegmentReturning] != 5 {
		t.Fatalf("returning count = %d, want 5 (remainder assigned)", counts[model.SegmentReturning])
	}
}

func TestGeneratedInvariants(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	ds, err := Generate(cfg)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	custIDRe := regexp.MustCompile(`^CUST\d{4}$`)
	orderIDRe := regexp.MustCompile(`^ORD\d{8}$`)

	custIDs := map[string]bool{}
	for i, c := range ds.Customers {
		if !custIDRe.MatchString(c.CustomerID) {
			t.Fatalf("bad customer id %q", c.CustomerID)
		}
		// dense assignment, no gaps
		if want := fmt.Sprintf("CUST%04d", i+1); c.CustomerID != want {
			t.Fatalf("customer id %q at index %d, want %q", c.CustomerID, i, want)
		}
		if custIDs[c.CustomerID] {
			t.Fatalf("duplicate customer id %q", c.CustomerID)
		}
		custIDs[c.CustomerID] = true

		if n := len(c.Interests); n < 2 || n > 4 {
			t.Fatalf("customer %s has %d interests, want 2-4", c.CustomerID, n)
		}
		seen := map[string]bool{}
		for _, in := range c.Interests {
			if seen[in] {
				t.Fatalf("customer %s has duplicate interest %q", c.CustomerID, in)
			}
			seen[in] = true
		}
		if c.EngagementScore < 0 || c.EngagementScore > 100 {
			t.Fatalf("customer %s engagement %d out of [0,100]", c.CustomerID, c.EngagementScore)
		}
		if c.ResponseRate < 0 || c.ResponseRate > 1 {
			t.Fatalf("customer %s response rate %v out of [0,1]", c.CustomerID, c.ResponseRate)
		}
		if !c.BuyingBehavior.Valid() {
			t.Fatalf("customer %s invalid buying behavior %q", c.CustomerID, c.BuyingBehavior)
		}
	}

	orderIDs := map[string]bool{}
	prevID := ""
	for _, o := range ds.Orders {
		if !orderIDRe.MatchString(o.OrderID) {
			t.Fatalf("bad order id %q", o.OrderID)
		}
		if orderIDs[o.OrderID] {
			t.Fatalf("duplicate order id %q", o.OrderID)
		}
		orderIDs[o.OrderID] = true
		if o.OrderID <= prevID {
			t.Fatalf("order ids not monotonically increasing: %q after %q", o.OrderID, prevID)
		}
		prevID = o.OrderID

		if !custIDs[o.CustomerID] {
			t.Fatalf("order %s references unknown customer %s", o.OrderID, o.CustomerID)
		}
		if o.Amount <= 0 {
			t.Fatalf("order %s amount %v not positive", o.OrderID, o.Amount)
		}
		if o.OrderDate.After(cfg.Today) || o.OrderDate.Before(cfg.Today.AddDate(0, 0, -cfg.DaysBack)) {
			t.Fatalf("order %s date %v outside trailing window", o.OrderID, o.OrderDate)
		}
		if !o.Channel.Valid() {
			t.Fatalf("order %s invalid channel %q", o.OrderID, o.Channel)
		}
	}
}

func TestOrdersPerCustomerScenario(t *testing.T) {
	t.Parallel()

	ds, err := Generate(testConfig())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	perCustomer := map[string]int{}
	for _, o := range ds.Orders {
		perCustomer[o.CustomerID]++
	}
	for _, c := range ds.Customers {
		n := perCustomer[c.CustomerID]
		if n < 3 || n > 5 {
			t.Fatalf("customer %s has %d orders, want 3-5", c.CustomerID, n)
		}
	}
	if total := len(ds.Orders); total < 75 || total > 125 {
		t.Fatalf("total orders %d outside [75,125]", total)
	}
}

func TestAmountBands(t *testing.T) {
	t.Parallel()

	ds, err := Generate(testConfig())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	segOf := map[string]model.Segment{}
	for _, c := range ds.Customers {
		segOf[c.CustomerID] = c.Segment
	}
	for _, o := range ds.Orders {
		lo, hi := amountBand(segOf[o.CustomerID])
		if o.Amount < lo || o.Amount >= hi+0.01 { // rounded to 2 decimals
			t.Fatalf("order %s amount %v outside %s band [%v,%v)", o.OrderID, o.Amount, segOf[o.CustomerID], lo, hi)
		}
	}
}

func TestLifetimeValueMatchesOrders(t *testing.T) {
	t.Parallel()

	ds, err := Generate(testConfig())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	spend := map[string]float64{}
	for _, o := range ds.Orders {
		spend[o.CustomerID] += o.Amount
	}
	for _, c := range ds.Customers {
		if math.Abs(c.LifetimeValue-round2(spend[c.CustomerID])) > 1e-6 {
			t.Fatalf("customer %s lifetime value %v, want %v", c.CustomerID, c.LifetimeValue, spend[c.CustomerID])
		}
	}
}

func TestConfigValidation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero customers", func(c *Config) { c.NumCustomers = 0 }},
		{"empty interest pool", func(c *Config) { c.InterestPool = nil }},
		{"empty categories", func(c *Config) { c.ProductCategories = nil }},
		{"empty channels", func(c *Config) { c.OrderChannels = nil }},
		{"min > max orders", func(c *Config) { c.OrdersPerCustomerMin = 6 }},
		{"negative min orders", func(c *Config) { c.OrdersPerCustomerMin = -1; c.OrdersPerCustomerMax = 2 }},
		{"negative days back", func(c *Config) { c.DaysBack = -1 }},
		{"fractions not summing to 1", func(c *Config) {
			c.SegmentDistribution[model.SegmentNew] = 0.5
		}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := testConfig()
			tc.mutate(&cfg)
			if _, err := Generate(cfg); err == nil {
				t.Fatal("expected configuration error, got nil")
			}
		})
	}
}
