package analysis

import (
	"math/rand"
	"reflect"
	"regexp"
	"strings"
	"testing"

	"github.com/im45145v/bipulse/internal/model"
)

func pitchCustomer() *model.Customer {
	return &model.Customer{
		CustomerID:      "CUST0001",
		Name:            "Asha Rao",
		Segment:         model.SegmentVIP,
		Interests:       []string{"electronics", "home_decor", "travel"},
		EngagementScore: 85,
		PainPoints:      []string{"price_sensitive", "time_constrained"},
		BuyingBehavior:  model.BehaviorResearcher,
	}
}

func TestGenerateSalesPitchDeterministic(t *testing.T) {
	t.Parallel()

	c := pitchCustomer()
	kpis := KPIs{OrdersCount: 4, TotalSpend: 400, TopCategory: "electronics"}

	a := GenerateSalesPitch(c, kpis, rand.New(rand.NewSource(7)))
	b := GenerateSalesPitch(c, kpis, rand.New(rand.NewSource(7)))
	if !reflect.DeepEqual(a, b) {
		t.Fatal("same seed produced different pitches")
	}

	for name, field := range map[string]string{
		"subject": a.Subject,
		"opening": a.Opening,
		"body":    a.Body,
		"cta":     a.CTA,
		"closing": a.Closing,
	} {
		if field == "" {
			t.Fatalf("pitch %s is empty", name)
		}
	}
	wantFull := a.Opening + "\n\n" + a.Body + "\n\n" + a.CTA + "\n\n" + a.Closing
	if a.FullPitch != wantFull {
		t.Fatal("full pitch is not the joined components")
	}
}

func TestGenerateSalesPitchContent(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(1))
	c := pitchCustomer()
	kpis := KPIs{OrdersCount: 4, TopCategory: "electronics"}
	p := GenerateSalesPitch(c, kpis, rng)

	// engagement 85 picks the most-engaged opening
	if !strings.Contains(p.Opening, "most engaged customers") {
		t.Fatalf("opening = %q, want high-engagement variant", p.Opening)
	}
	// price_sensitive pain point adds the value block
	if !strings.Contains(p.Body, "value matters to you") {
		t.Fatalf("body missing price-sensitive block:\n%s", p.Body)
	}
	if !strings.Contains(p.Body, "express delivery") {
		t.Fatalf("body missing time-constrained block:\n%s", p.Body)
	}
	// only the top two interests are named
	if !strings.Contains(p.Body, "interest in electronics, home_decor") {
		t.Fatalf("body missing top-two interests line:\n%s", p.Body)
	}
	if !strings.Contains(p.Body, "As a VIP customer") {
		t.Fatalf("body missing VIP benefits:\n%s", p.Body)
	}
	if !strings.Contains(p.Body, "You've placed 4 orders") {
		t.Fatalf("body missing KPI line:\n%s", p.Body)
	}
	if !strings.Contains(p.CTA, "Explore Our Collection") {
		t.Fatalf("cta = %q, want researcher variant", p.CTA)
	}
	if !strings.HasSuffix(p.CTA, "[View Personalized Recommendations] [Shop Now] [Learn More]") {
		t.Fatalf("cta missing link row: %q", p.CTA)
	}
	if !strings.Contains(p.Closing, "Dedicated Account Team") {
		t.Fatalf("closing = %q, want VIP variant", p.Closing)
	}
}

func TestGenerateSalesPitchAtRisk(t *testing.T) {
	t.Parallel()

	c := &model.Customer{
		CustomerID:      "CUST0002",
		Name:            "Ravi Iyer",
		Segment:         model.SegmentAtRisk,
		Interests:       []string{"books"},
		EngagementScore: 20,
		BuyingBehavior:  model.BehaviorBargainHunter,
	}
	p := GenerateSalesPitch(c, KPIs{TopCategory: "N/A"}, rand.New(rand.NewSource(3)))

	if !strings.Contains(p.Opening, "welcome you back") {
		t.Fatalf("opening = %q, want win-back variant", p.Opening)
	}
	if !strings.Contains(p.Body, "win you back") {
		t.Fatalf("body missing at-risk benefits:\n%s", p.Body)
	}
	// zero orders: no KPI line
	if strings.Contains(p.Body, "orders with us so far") {
		t.Fatalf("body mentions order history for zero-order customer:\n%s", p.Body)
	}
	if !strings.Contains(p.Body, "Hot deals alert") {
		t.Fatalf("body missing bargain-hunter line:\n%s", p.Body)
	}
}

func TestRecommendations(t *testing.T) {
	t.Parallel()

	discountRe := regexp.MustCompile(`^\d{2}% OFF$`)
	interests := []string{"electronics", "home_decor", "travel", "books", "fitness"}

	for seed := int64(0); seed < 5; seed++ {
		rng := rand.New(rand.NewSource(seed))
		recs := Recommendations(interests, rng)
		if len(recs) < 3 || len(recs) > 5 {
			t.Fatalf("seed %d: %d recommendations, want 3-5", seed, len(recs))
		}
		for i, r := range recs {
			if r.Category != interests[i] {
				t.Fatalf("seed %d: rec %d category %q, want %q", seed, i, r.Category, interests[i])
			}
			if !discountRe.MatchString(r.Discount) {
				t.Fatalf("seed %d: discount %q not of form NN%% OFF", seed, r.Discount)
			}
			if r.Urgency == "" || r.Title == "" || r.Description == "" {
				t.Fatalf("seed %d: incomplete recommendation %+v", seed, r)
			}
		}
	}

	// never more suggestions than interests
	recs := Recommendations([]string{"books"}, rand.New(rand.NewSource(9)))
	if len(recs) != 1 {
		t.Fatalf("%d recommendations from one interest, want 1", len(recs))
	}
}

func TestTitleCase(t *testing.T) {
	t.Parallel()

	cases := []struct{ in, want string }{
		{"electronics", "Electronics"},
		{"home_decor", "Home Decor"},
		{"home decor", "Home Decor"},
	}
	for _, tc := range cases {
		if got := titleCase(tc.in); got != tc.want {
			t.Fatalf("titleCase(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
