// Package analysis derives KPIs, trends, and breakdowns from a fixed
// customer/order dataset. Every function is a pure computation over its
// inputs: no hidden state, no mutation of the passed slices, and the
// "customer has zero orders" case always yields the documented zero-valued
// sentinel instead of an error.
package analysis

import (
	"fmt"
	"sort"
	"time"

	"github.com/im45145v/bipulse/internal/model"
)

// KPIs is the per-customer indicator record.
type KPIs struct {
	TotalSpend        float64 `json:"total_spend"`
	OrdersCount       int     `json:"orders_count"`
	AverageOrderValue float64 `json:"average_order_value"`
	OrderFrequency    float64 `json:"order_frequency"`
	TopCategory       string  `json:"top_category"`
	DaysActive        int     `json:"days_active"`
}

// CustomerKPIs computes spend, count, AOV, monthly order frequency, active
// span and top category for one customer. With no matching orders it returns
// the zero sentinel (top_category "N/A"). Ties for top category break toward
// the ascending category label.
func CustomerKPIs(customerID string, orders []model.Order) KPIs {
	var (
		total    float64
		count    int
		minDate  time.Time
		maxDate  time.Time
		byCat    = map[string]float64{}
	)
	for _, o := range orders {
		if o.CustomerID != customerID {
			continue
		}
		if count == 0 || o.OrderDate.Before(minDate) {
			minDate = o.OrderDate
		}
		if count == 0 || o.OrderDate.After(maxDate) {
			maxDate = o.OrderDate
		}
		total += o.Amount
		count++
		byCat[o.ProductCategory] += o.Amount
	}

	if count == 0 {
		return KPIs{TopCategory: "N/A"}
	}

	daysActive := int(maxDate.Sub(minDate).Hours()/24) + 1
	monthsActive := float64(daysActive) / 30.0
	frequency := float64(count)
	if monthsActive > 0 {
		frequency = float64(count) / monthsActive
	}

	cats := make([]string, 0, len(byCat))
	for c := range byCat {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	top := cats[0]
	for _, c := range cats[1:] {
		if byCat[c] > byCat[top] {
			top = c
		}
	}

	return KPIs{
		TotalSpend:        total,
		OrdersCount:       count,
		AverageOrderValue: total / float64(count),
		OrderFrequency:    frequency,
		TopCategory:       top,
		DaysActive:        daysActive,
	}
}

// Profile returns the first customer with the given id, or nil when absent.
// Duplicates are not expected but must not crash; first row wins.
func Profile(customerID string, customers []model.Customer) *model.Customer {
	for i := range customers {
		if customers[i].CustomerID == customerID {
			c := customers[i]
			return &c
		}
	}
	return nil
}

// TrendPoint pairs an order date with the cumulative spend up to it.
type TrendPoint struct {
	Date  time.Time `json:"date"`
	Spend float64   `json:"spend"`
}

// RecentTrend returns the customer's cumulative spend series over the last
// `days` days before today. The sort by date is stable so same-day orders
// keep their original relative order, which pins the cumulative sums.
func RecentTrend(customerID string, orders []model.Order, days int, today time.Time) []TrendPoint {
	cutoff := today.AddDate(0, 0, -days)

	var recent []model.Order
	for _, o := range orders {
		if o.CustomerID != customerID || o.OrderDate.Before(cutoff) {
			continue
		}
		recent = append(recent, o)
	}
	if len(recent) == 0 {
		return nil
	}

	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].OrderDate.Before(recent[j].OrderDate)
	})

	out := make([]TrendPoint, 0, len(recent))
	var cum float64
	for _, o := range recent {
		cum += o.Amount
		out = append(out, TrendPoint{Date: o.OrderDate, Spend: cum})
	}
	return out
}

// CategorySpend is one category's summed spend for a customer.
type CategorySpend struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// CategoryDistribution returns per-category spend totals for one customer,
// descending by amount (ties ascending by label). Empty when no orders.
func CategoryDistribution(customerID string, orders []model.Order) []CategorySpend {
	byCat := map[string]float64{}
	for _, o := range orders {
		if o.CustomerID == customerID {
			byCat[o.ProductCategory] += o.Amount
		}
	}
	return sortedCategories(byCat)
}

// SegmentCount is the number of customers in one segment.
type SegmentCount struct {
	Segment model.Segment `json:"segment"`
	Count   int           `json:"count"`
}

// SegmentDistribution counts customers per segment, in canonical segment
// order; segments absent from the data are omitted.
func SegmentDistribution(customers []model.Customer) []SegmentCount {
	counts := map[model.Segment]int{}
	for _, c := range customers {
		counts[c.Segment]++
	}
	var out []SegmentCount
	for _, seg := range model.Segments {
		if n := counts[seg]; n > 0 {
			out = append(out, SegmentCount{Segment: seg, Count: n})
		}
	}
	// segments outside the canonical set (uploaded data) still count
	extras := make([]model.Segment, 0)
	for seg := range counts {
		if !seg.Valid() {
			extras = append(extras, seg)
		}
	}
	sort.Slice(extras, func(i, j int) bool { return extras[i] < extras[j] })
	for _, seg := range extras {
		out = append(out, SegmentCount{Segment: seg, Count: counts[seg]})
	}
	return out
}

// CategoryRevenue is one category's total revenue across all orders.
type CategoryRevenue struct {
	Category string  `json:"category"`
	Revenue  float64 `json:"revenue"`
}

// CategoryShare returns total revenue per product category across all
// orders, descending by revenue (ties ascending by label).
func CategoryShare(orders []model.Order) []CategoryRevenue {
	byCat := map[string]float64{}
	for _, o := range orders {
		byCat[o.ProductCategory] += o.Amount
	}
	spends := sortedCategories(byCat)
	out := make([]CategoryRevenue, 0, len(spends))
	for _, s := range spends {
		out = append(out, CategoryRevenue{Category: s.Category, Revenue: s.Amount})
	}
	return out
}

func sortedCategories(byCat map[string]float64) []CategorySpend {
	out := make([]CategorySpend, 0, len(byCat))
	for c, amt := range byCat {
		out = append(out, CategorySpend{Category: c, Amount: amt})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// Frequency selects the revenue bucket size.
type Frequency string

const (
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
)

func (f Frequency) Valid() bool {
	return f == Daily || f == Weekly || f == Monthly
}

// ParseFrequency normalizes input; empty => weekly (the dashboard default).
// Returns (value, true) if valid; otherwise (weekly, false).
func ParseFrequency(s string) (Frequency, bool) {
	switch s {
	case "", "weekly", "w", "W":
		return Weekly, true
	case "daily", "d", "D":
		return Daily, true
	case "monthly", "m", "M":
		return Monthly, true
	default:
		return Weekly, false
	}
}

// RevenueBucket is one fixed-size time bucket's summed revenue.
type RevenueBucket struct {
	Date    time.Time `json:"date"`
	Revenue float64   `json:"revenue"`
}

// RevenueOverTime resamples order revenue into daily, weekly (Monday-start)
// or monthly buckets, in chronological order. Buckets between the first and
// last order with no orders appear with zero revenue.
func RevenueOverTime(orders []model.Order, freq Frequency) []RevenueBucket {
	if len(orders) == 0 {
		return nil
	}

	sums := map[time.Time]float64{}
	minDate, maxDate := orders[0].OrderDate, orders[0].OrderDate
	for _, o := range orders {
		b := bucketStart(o.OrderDate, freq)
		sums[b] += o.Amount
		if o.OrderDate.Before(minDate) {
			minDate = o.OrderDate
		}
		if o.OrderDate.After(maxDate) {
			maxDate = o.OrderDate
		}
	}

	var out []RevenueBucket
	last := bucketStart(maxDate, freq)
	for b := bucketStart(minDate, freq); !b.After(last); b = nextBucket(b, freq) {
		out = append(out, RevenueBucket{Date: b, Revenue: sums[b]})
	}
	return out
}

func bucketStart(d time.Time, freq Frequency) time.Time {
	switch freq {
	case Daily:
		return d
	case Monthly:
		return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
	default: // weekly, Monday start
		offset := (int(d.Weekday()) + 6) % 7
		return d.AddDate(0, 0, -offset)
	}
}

func nextBucket(b time.Time, freq Frequency) time.Time {
	switch freq {
	case Daily:
		return b.AddDate(0, 0, 1)
	case Monthly:
		return b.AddDate(0, 1, 0)
	default:
		return b.AddDate(0, 0, 7)
	}
}

// Overview is the cross-customer headline card.
type Overview struct {
	TotalCustomers     int     `json:"total_customers"`
	TotalRevenue       float64 `json:"total_revenue"`
	AvgLifetimeValue   float64 `json:"avg_lifetime_value"`
	AvgEngagementScore float64 `json:"avg_engagement_score"`
}

// ComputeOverview aggregates the overall business metrics shown on the
// all-users dashboard.
func ComputeOverview(customers []model.Customer, orders []model.Order) Overview {
	ov := Overview{TotalCustomers: len(customers)}
	for _, o := range orders {
		ov.TotalRevenue += o.Amount
	}
	if len(customers) > 0 {
		var ltv, eng float64
		for _, c := range customers {
			ltv += c.LifetimeValue
			eng += float64(c.EngagementScore)
		}
		ov.AvgLifetimeValue = ltv / float64(len(customers))
		ov.AvgEngagementScore = eng / float64(len(customers))
	}
	return ov
}

// SummaryText renders the deterministic narration summary for a customer.
// Pure string formatting; no randomness.
func SummaryText(customerName string, k KPIs) string {
	return fmt.Sprintf(
		"Hi %s, this is your weekly summary. "+
			"You placed %d orders totaling %.0f rupees. "+
			"Your average order value is %.0f rupees. "+
			"Your top category is %s. "+
			"Thank you for being a valued customer!",
		customerName, k.OrdersCount, k.TotalSpend, k.AverageOrderValue, k.TopCategory,
	)
}
