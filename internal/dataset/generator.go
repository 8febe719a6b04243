package dataset

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/im45145v/bipulse/internal/model"
)

// PainPointPool is the fixed vocabulary customers sample pain points from.
var PainPointPool = []string{
	"budget_conscious",
	"price_sensitive",
	"time_constrained",
	"quality_focused",
	"decision_fatigue",
}

var contactTimes = []string{"morning", "afternoon", "evening"}

// Config is the generation parameter bundle. A fixed Config (including Seed)
// always produces byte-identical output.
type Config struct {
	NumCustomers          int
	SegmentDistribution   map[model.Segment]float64
	OrdersPerCustomerMin  int
	OrdersPerCustomerMax  int
	InterestPool          []string
	ProductCategories     []string
	OrderChannels         []model.Channel
	DaysBack              int
	Seed                  int64

	// Today anchors all relative date draws; zero value means time.Now().
	Today time.Time
}

// Validate fails fast on malformed configuration, before any data is produced.
func (c Config) Validate() error {
	if c.NumCustomers <= 0 {
		return fmt.Errorf("generator config: num_customers must be > 0, got %d", c.NumCustomers)
	}
	if len(c.InterestPool) == 0 {
		return fmt.Errorf("generator config: interest_pool must not be empty")
	}
	if len(c.ProductCategories) == 0 {
		return fmt.Errorf("generator config: product_categories must not be empty")
	}
	if len(c.OrderChannels) == 0 {
		return fmt.Errorf("generator config: order_channels must not be empty")
	}
	if c.OrdersPerCustomerMin < 0 || c.OrdersPerCustomerMax < c.OrdersPerCustomerMin {
		return fmt.Errorf("generator config: invalid orders_per_customer range [%d,%d]",
			c.OrdersPerCustomerMin, c.OrdersPerCustomerMax)
	}
	if c.DaysBack < 0 {
		return fmt.Errorf("generator config: days_back must be >= 0, got %d", c.DaysBack)
	}
	var sum float64
	for _, seg := range model.Segments {
		frac := c.SegmentDistribution[seg]
		if frac < 0 {
			return fmt.Errorf("generator config: negative fraction for segment %s", seg)
		}
		sum += frac
	}
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("generator config: segment fractions sum to %v, want 1.0", sum)
	}
	return nil
}

// Dataset holds one generation run. Records are never mutated after creation;
// regeneration is a full replace.
type Dataset struct {
	Customers []model.Customer
	Orders    []model.Order
}

// Generate produces the synthetic customer/order population described by cfg.
//
// Draw order is load-bearing for reproducibility and must not be reordered:
// segments are visited in canonical order; per customer the draws are
// created_at, last_contact_date, interests, engagement_score,
// preferred_contact_time, pain_points, buying_behavior, response_rate, then
// that customer's orders before the next customer. Names and emails come from
// a second source seeded with the same seed so persona draws never shift the
// core sequence (the original tool seeded its name faker independently for the
// same reason). lifetime_value is not drawn; it is the sum of the customer's
// order amounts.
func Generate(cfg Config) (*Dataset, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	persona := rand.New(rand.NewSource(cfg.Seed))

	today := cfg.Today
	if today.IsZero() {
		today = time.Now()
	}
	today = midnightUTC(today)

	// Integer per-segment counts by truncation; the rounding remainder goes
	// entirely to the returning segment.
	counts := make(map[model.Segment]int, len(model.Segments))
	total := 0
	for _, seg := range model.Segments {
		n := int(float64(cfg.NumCustomers) * cfg.SegmentDistribution[seg])
		counts[seg] = n
		total += n
	}
	if diff := cfg.NumCustomers - total; diff > 0 {
		counts[model.SegmentReturning] += diff
	}

	ds := &Dataset{
		Customers: make([]model.Customer, 0, cfg.NumCustomers),
	}

	customerSeq := 1
	orderSeq := 1
	for _, seg := range model.Segments {
		for i := 0; i < counts[seg]; i++ {
			custID := fmt.Sprintf("CUST%04d", customerSeq)

			createdAt := today.AddDate(0, 0, -randInt(rng, 90, 365))
			lastContact := today.AddDate(0, 0, -randInt(rng, 0, 30))

			interests := sample(rng, cfg.InterestPool, randInt(rng, 2, 4))

			engagement := rng.Intn(101)
			contactTime := contactTimes[rng.Intn(len(contactTimes))]
			painPoints := sample(rng, PainPointPool, rng.Intn(3))
			behavior := model.BuyingBehaviors[rng.Intn(len(model.BuyingBehaviors))]
			responseRate := round2(rng.Float64())

			name, email := personaFor(persona, customerSeq)

			cust := model.Customer{
				CustomerID:           custID,
				Name:                 name,
				Email:                email,
				Segment:              seg,
				Interests:            interests,
				LastContactDate:      lastContact,
				CreatedAt:            createdAt,
				EngagementScore:      engagement,
				PreferredContactTime: contactTime,
				PainPoints:           painPoints,
				BuyingBehavior:       behavior,
				ResponseRate:         responseRate,
			}

			numOrders := randInt(rng, cfg.OrdersPerCustomerMin, cfg.OrdersPerCustomerMax)
			var spend float64
			for j := 0; j < numOrders; j++ {
				orderID := fmt.Sprintf("ORD%08d", orderSeq)
				orderSeq++

				orderDate := today.AddDate(0, 0, -randInt(rng, 0, cfg.DaysBack))
				lo, hi := amountBand(seg)
				amount := round2(uniform(rng, lo, hi))

				var category string
				if len(interests) > 0 {
					category = interests[rng.Intn(len(interests))]
				} else {
					category = cfg.ProductCategories[rng.Intn(len(cfg.ProductCategories))]
				}
				channel := cfg.OrderChannels[rng.Intn(len(cfg.OrderChannels))]

				ds.Orders = append(ds.Orders, model.Order{
					OrderID:         orderID,
					CustomerID:      custID,
					OrderDate:       orderDate,
					Amount:          amount,
					ProductCategory: category,
					Channel:         channel,
				})
				spend += amount
			}

			cust.LifetimeValue = round2(spend)
			ds.Customers = append(ds.Customers, cust)
			customerSeq++
		}
	}

	return ds, nil
}

// amountBand returns the half-open uniform range [lo,hi) for a segment.
func amountBand(seg model.Segment) (lo, hi float64) {
	switch seg {
	case model.SegmentVIP:
		return 5000, 20000
	case model.SegmentReturning:
		return 2000, 8000
	case model.SegmentNew:
		return 500, 3000
	default: // at_risk
		return 300, 2000
	}
}

// randInt draws an integer in [lo,hi] inclusive.
func randInt(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// sample draws n distinct elements from pool, preserving selection order.
// One Intn draw per picked element.
func sample(rng *rand.Rand, pool []string, n int) []string {
	if n > len(pool) {
		n = len(pool)
	}
	remaining := make([]string, len(pool))
	copy(remaining, pool)
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		idx := rng.Intn(len(remaining))
		out = append(out, remaining[idx])
		remaining = append(remaining[:idx], remaining[idx+1:]...)
	}
	return out
}

func midnightUTC(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var firstNames = []string{
	"Aarav", "Ananya", "Arjun", "Diya", "Ishaan", "Kavya", "Rohan", "Priya",
	"Vikram", "Meera", "Aditya", "Sneha", "Karan", "Nisha", "Rahul", "Pooja",
	"Sanjay", "Riya", "Amit", "Tanvi", "Dev", "Lakshmi", "Nikhil", "Shreya",
}

var lastNames = []string{
	"Sharma", "Patel", "Iyer", "Reddy", "Gupta", "Nair", "Mehta", "Singh",
	"Kulkarni", "Das", "Joshi", "Chopra", "Banerjee", "Rao", "Verma", "Menon",
}

var mailDomains = []string{"example.com", "example.org", "example.net"}

// personaFor draws a realistic name and derives a unique, syntactically valid
// email from it. seq keeps emails unique when names collide.
func personaFor(rng *rand.Rand, seq int) (name, email string) {
	first := firstNames[rng.Intn(len(firstNames))]
	last := lastNames[rng.Intn(len(lastNames))]
	domain := mailDomains[rng.Intn(len(mailDomains))]
	name = first + " " + last
	email = fmt.Sprintf("%s.%s%d@%s", strings.ToLower(first), strings.ToLower(last), seq, domain)
	return name, email
}
