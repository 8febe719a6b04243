package analysis

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/im45145v/bipulse/internal/model"
)

// Pitch is a personalized sales pitch broken into its components.
type Pitch struct {
	Subject   string `json:"subject"`
	Opening   string `json:"opening"`
	Body      string `json:"body"`
	CTA       string `json:"cta"`
	Closing   string `json:"closing"`
	FullPitch string `json:"full_pitch"`
}

// Recommendation is one suggested product/service entry.
type Recommendation struct {
	Category    string `json:"category"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Discount    string `json:"discount"`
	Urgency     string `json:"urgency"`
}

// GenerateSalesPitch builds a pitch from the customer's profile and KPIs.
// Template choices draw from rng, so a fixed source reproduces the pitch.
func GenerateSalesPitch(c *model.Customer, kpis KPIs, rng *rand.Rand) Pitch {
	interest := "our catalog"
	if len(c.Interests) > 0 {
		interest = c.Interests[0]
	}

	subject := subjectLine(c.Segment, interest, rng)
	opening := opening(c.Name, c.Segment, c.EngagementScore)
	body := pitchBody(c, kpis)
	cta := callToAction(c.BuyingBehavior)
	closing := closing(c.Name, c.Segment)

	return Pitch{
		Subject:   subject,
		Opening:   opening,
		Body:      body,
		CTA:       cta,
		Closing:   closing,
		FullPitch: opening + "\n\n" + body + "\n\n" + cta + "\n\n" + closing,
	}
}

func subjectLine(seg model.Segment, interest string, rng *rand.Rand) string {
	t := titleCase(interest)
	var templates []string
	switch seg {
	case model.SegmentVIP:
		templates = []string{
			fmt.Sprintf("Exclusive VIP Offer: Premium %s Collection", t),
			fmt.Sprintf("Your VIP Access: New %s Arrivals", t),
			"A Special Treat for Our Most Valued Customer",
		}
	case model.SegmentReturning:
		templates = []string{
			fmt.Sprintf("Welcome Back! New %s Just For You", t),
			fmt.Sprintf("We Missed You! Fresh %s Deals Inside", t),
			"Handpicked Recommendations Based on Your Preferences",
		}
	case model.SegmentNew:
		templates = []string{
			fmt.Sprintf("Welcome! Discover Amazing %s Deals", t),
			fmt.Sprintf("Get Started: Your %s Journey Begins", t),
			"Welcome to the Community! Special First-Time Offer",
		}
	case model.SegmentAtRisk:
		templates = []string{
			fmt.Sprintf("We Want You Back! Special %s Offer", t),
			"Don't Miss Out: Exclusive Come-Back Deal",
			fmt.Sprintf("We've Got Something Special for You in %s", t),
		}
	default:
		return fmt.Sprintf("Personalized Recommendations for %s Lovers", t)
	}
	return templates[rng.Intn(len(templates))]
}

func opening(name string, seg model.Segment, engagement int) string {
	switch {
	case engagement > 80:
		return fmt.Sprintf("Hi %s!\n\nIt's always a pleasure connecting with our most engaged customers!", name)
	case engagement > 50:
		return fmt.Sprintf("Hello %s!\n\nWe hope you're doing great! We have something exciting to share.", name)
	case seg == model.SegmentAtRisk:
		return fmt.Sprintf("Hi %s,\n\nWe noticed it's been a while since we last connected. We'd love to welcome you back with something special!", name)
	default:
		return fmt.Sprintf("Dear %s,\n\nWe're excited to share some personalized recommendations just for you!", name)
	}
}

func pitchBody(c *model.Customer, kpis KPIs) string {
	var parts []string

	if contains(c.PainPoints, "budget_conscious") || contains(c.PainPoints, "price_sensitive") {
		interest := "your favorite"
		if len(c.Interests) > 0 {
			interest = c.Interests[0]
		}
		parts = append(parts, fmt.Sprintf(
			"We understand value matters to you. That's why we're offering exclusive discounts on %s items that match your preferences perfectly.",
			interest))
	}
	if contains(c.PainPoints, "time_constrained") {
		parts = append(parts,
			"Save time with our quick checkout process and express delivery options. Get what you need, when you need it.")
	}
	if contains(c.PainPoints, "quality_focused") {
		parts = append(parts,
			"Premium quality is our priority. Every product we recommend meets the highest standards and comes with our satisfaction guarantee.")
	}

	top := c.Interests
	if len(top) > 2 {
		top = top[:2]
	}
	parts = append(parts, fmt.Sprintf(
		"Based on your interest in %s, we've curated a selection that we think you'll love:",
		strings.Join(top, ", ")))

	switch c.Segment {
	case model.SegmentVIP:
		parts = append(parts, "As a VIP customer, you get:\n"+
			"- Priority access to new releases\n"+
			"- Exclusive member-only pricing\n"+
			"- Complimentary express shipping\n"+
			"- Dedicated customer support")
	case model.SegmentReturning:
		parts = append(parts, "As a valued returning customer:\n"+
			"- Special loyalty rewards points\n"+
			"- Early access to sales\n"+
			"- Personalized product recommendations")
	case model.SegmentNew:
		parts = append(parts, "Welcome bonus for new members:\n"+
			"- 20% off your next purchase\n"+
			"- Free shipping on orders over $50\n"+
			"- Access to our exclusive community")
	case model.SegmentAtRisk:
		parts = append(parts, "We want to win you back with:\n"+
			"- Extra 30% discount on your favorite categories\n"+
			"- No-questions-asked returns\n"+
			"- Free premium membership for 3 months")
	}

	switch c.BuyingBehavior {
	case model.BehaviorImpulseBuyer:
		parts = append(parts, "Limited time offer! These deals won't last long. Grab them while you can!")
	case model.BehaviorResearcher:
		parts = append(parts, "We've included detailed specifications and customer reviews to help you make an informed decision.")
	case model.BehaviorBargainHunter:
		parts = append(parts, "Hot deals alert! Save up to 50% on selected items. Best prices guaranteed!")
	}

	if kpis.OrdersCount > 0 {
		parts = append(parts, fmt.Sprintf(
			"You've placed %d orders with us so far. Your top category is %s.",
			kpis.OrdersCount, kpis.TopCategory))
	}

	return strings.Join(parts, "\n\n")
}

func callToAction(b model.BuyingBehavior) string {
	ctas := map[model.BuyingBehavior]string{
		model.BehaviorImpulseBuyer:  "Shop Now - Limited Stock Available!",
		model.BehaviorResearcher:    "Explore Our Collection & Read Reviews",
		model.BehaviorBargainHunter: "See All Deals - Save Big Today!",
		model.BehaviorLoyal:         "View Your Exclusive Offers",
		model.BehaviorSeasonal:      "Check Out This Season's Must-Haves",
	}
	cta, ok := ctas[b]
	if !ok {
		cta = "Discover Your Perfect Match"
	}
	return cta + "\n\n[View Personalized Recommendations] [Shop Now] [Learn More]"
}

func closing(name string, seg model.Segment) string {
	switch seg {
	case model.SegmentVIP:
		return fmt.Sprintf("Thank you for being an exceptional customer, %s! Your satisfaction is our top priority.\n\nBest regards,\nYour Dedicated Account Team", name)
	case model.SegmentAtRisk:
		return fmt.Sprintf("We truly value your business, %s, and hope to serve you again soon.\n\nWarmly,\nThe Customer Success Team", name)
	default:
		return fmt.Sprintf("Happy shopping, %s! We're here if you need anything.\n\nBest wishes,\nYour Customer Care Team", name)
	}
}

var urgencyLines = []string{
	"Only 3 left in stock!",
	"Sale ends in 24 hours",
	"Limited edition",
	"Bestseller",
	"Trending now",
}

// Recommendations builds 3-5 product suggestions from the customer's
// interests. Discount and urgency draws come from rng.
func Recommendations(interests []string, rng *rand.Rand) []Recommendation {
	n := 3 + rng.Intn(3)
	if n > len(interests) {
		n = len(interests)
	}

	out := make([]Recommendation, 0, n)
	for _, interest := range interests[:n] {
		out = append(out, Recommendation{
			Category:    interest,
			Title:       fmt.Sprintf("Premium %s Collection", titleCase(interest)),
			Description: fmt.Sprintf("Handpicked %s items based on your preferences", interest),
			Discount:    fmt.Sprintf("%d%% OFF", 10+rng.Intn(31)),
			Urgency:     urgencyLines[rng.Intn(len(urgencyLines))],
		})
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// titleCase uppercases the first letter of each underscore or space
// separated word: "home_decor" -> "Home Decor".
func titleCase(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool { return r == '_' || r == ' ' })
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
