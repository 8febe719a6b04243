package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/im45145v/bipulse/internal/model"
)

const (
	CustomersFile = "customers.csv"
	OrdersFile    = "orders.csv"

	dateLayout = "2006-01-02"
)

// ErrNotFound reports missing dataset files; callers may regenerate instead.
var ErrNotFound = errors.New("dataset files not found")

var customerHeader = []string{
	"customer_id", "name", "email", "segment", "interests",
	"last_contact_date", "created_at", "engagement_score",
	"preferred_contact_time", "pain_points", "buying_behavior",
	"response_rate", "lifetime_value",
}

var orderHeader = []string{
	"order_id", "customer_id", "order_date", "amount", "product_category", "channel",
}

// SaveCSV writes the dataset to dir as customers.csv and orders.csv.
// Dates persist as ISO calendar dates and list fields as a textual list
// representation that round-trips without reordering.
func SaveCSV(dir string, ds *Dataset) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	custRows := make([][]string, 0, len(ds.Customers)+1)
	custRows = append(custRows, customerHeader)
	for _, c := range ds.Customers {
		custRows = append(custRows, []string{
			c.CustomerID,
			c.Name,
			c.Email,
			c.Segment.String(),
			FormatList(c.Interests),
			c.LastContactDate.Format(dateLayout),
			c.CreatedAt.Format(dateLayout),
			strconv.Itoa(c.EngagementScore),
			c.PreferredContactTime,
			FormatList(c.PainPoints),
			c.BuyingBehavior.String(),
			strconv.FormatFloat(c.ResponseRate, 'f', 2, 64),
			strconv.FormatFloat(c.LifetimeValue, 'f', 2, 64),
		})
	}
	if err := writeCSV(filepath.Join(dir, CustomersFile), custRows); err != nil {
		return err
	}

	orderRows := make([][]string, 0, len(ds.Orders)+1)
	orderRows = append(orderRows, orderHeader)
	for _, o := range ds.Orders {
		orderRows = append(orderRows, []string{
			o.OrderID,
			o.CustomerID,
			o.OrderDate.Format(dateLayout),
			strconv.FormatFloat(o.Amount, 'f', 2, 64),
			o.ProductCategory,
			o.Channel.String(),
		})
	}
	return writeCSV(filepath.Join(dir, OrdersFile), orderRows)
}

func writeCSV(path string, rows [][]string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// LoadCSV reads a dataset back from dir. Malformed rows surface as load
// failures; nothing is silently defaulted.
func LoadCSV(dir string) (*Dataset, error) {
	custPath := filepath.Join(dir, CustomersFile)
	orderPath := filepath.Join(dir, OrdersFile)
	for _, p := range []string{custPath, orderPath} {
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, p)
		}
	}

	custRows, err := readCSV(custPath, customerHeader)
	if err != nil {
		return nil, err
	}
	orderRows, err := readCSV(orderPath, orderHeader)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{
		Customers: make([]model.Customer, 0, len(custRows)),
		Orders:    make([]model.Order, 0, len(orderRows)),
	}

	for i, row := range custRows {
		c, err := parseCustomerRow(row)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", CustomersFile, i+2, err)
		}
		ds.Customers = append(ds.Customers, c)
	}
	for i, row := range orderRows {
		o, err := parseOrderRow(row)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", OrdersFile, i+2, err)
		}
		ds.Orders = append(ds.Orders, o)
	}

	return ds, nil
}

func readCSV(path string, wantHeader []string) (rows [][]string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	r := csv.NewReader(f)
	all, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("read %s: empty file", path)
	}
	if !equalHeader(all[0], wantHeader) {
		return nil, fmt.Errorf("read %s: unexpected header %v", path, all[0])
	}
	return all[1:], nil
}

func equalHeader(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if strings.TrimSpace(got[i]) != want[i] {
			return false
		}
	}
	return true
}

func parseCustomerRow(row []string) (model.Customer, error) {
	var c model.Customer
	if len(row) != len(customerHeader) {
		return c, fmt.Errorf("want %d columns, got %d", len(customerHeader), len(row))
	}

	seg, ok := model.ParseSegment(row[3])
	if !ok {
		return c, fmt.Errorf("invalid segment %q", row[3])
	}
	interests, err := ParseList(row[4])
	if err != nil {
		return c, fmt.Errorf("interests: %w", err)
	}
	lastContact, err := time.Parse(dateLayout, row[5])
	if err != nil {
		return c, fmt.Errorf("last_contact_date: %w", err)
	}
	createdAt, err := time.Parse(dateLayout, row[6])
	if err != nil {
		return c, fmt.Errorf("created_at: %w", err)
	}
	engagement, err := strconv.Atoi(row[7])
	if err != nil {
		return c, fmt.Errorf("engagement_score: %w", err)
	}
	painPoints, err := ParseList(row[9])
	if err != nil {
		return c, fmt.Errorf("pain_points: %w", err)
	}
	behavior, ok := model.ParseBuyingBehavior(row[10])
	if !ok {
		return c, fmt.Errorf("invalid buying_behavior %q", row[10])
	}
	responseRate, err := strconv.ParseFloat(row[11], 64)
	if err != nil {
		return c, fmt.Errorf("response_rate: %w", err)
	}
	ltv, err := strconv.ParseFloat(row[12], 64)
	if err != nil {
		return c, fmt.Errorf("lifetime_value: %w", err)
	}

	c = model.Customer{
		CustomerID:           row[0],
		Name:                 row[1],
		Email:                row[2],
		Segment:              seg,
		Interests:            interests,
		LastContactDate:      lastContact,
		CreatedAt:            createdAt,
		EngagementScore:      engagement,
		PreferredContactTime: row[8],
		PainPoints:           painPoints,
		BuyingBehavior:       behavior,
		ResponseRate:         responseRate,
		LifetimeValue:        ltv,
	}
	return c, nil
}

func parseOrderRow(row []string) (model.Order, error) {
	var o model.Order
	if len(row) != len(orderHeader) {
		return o, fmt.Errorf("want %d columns, got %d", len(orderHeader), len(row))
	}

	orderDate, err := time.Parse(dateLayout, row[2])
	if err != nil {
		return o, fmt.Errorf("order_date: %w", err)
	}
	amount, err := strconv.ParseFloat(row[3], 64)
	if err != nil {
		return o, fmt.Errorf("amount: %w", err)
	}
	channel, ok := model.ParseChannel(row[5])
	if !ok {
		return o, fmt.Errorf("invalid channel %q", row[5])
	}

	o = model.Order{
		OrderID:         row[0],
		CustomerID:      row[1],
		OrderDate:       orderDate,
		Amount:          amount,
		ProductCategory: row[4],
		Channel:         channel,
	}
	return o, nil
}

// FormatList renders an ordered string list the way the original dashboard
// persisted it: ['a', 'b']. Order is preserved on both sides of the trip.
func FormatList(items []string) string {
	if len(items) == 0 {
		return "[]"
	}
	var b strings.Builder
	b.WriteByte('[')
	for i, it := range items {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('\'')
		b.WriteString(it)
		b.WriteByte('\'')
	}
	b.WriteByte(']')
	return b.String()
}

// ParseList parses the textual list representation back into an ordered
// string slice. Accepts single or double quoted elements; anything else is a
// parse error.
func ParseList(s string) ([]string, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		return nil, fmt.Errorf("malformed list %q", s)
	}
	inner := strings.TrimSpace(s[1 : len(s)-1])
	if inner == "" {
		return []string{}, nil
	}

	var (
		out   []string
		i     = 0
		runes = []rune(inner)
	)
	for i < len(runes) {
		// skip separators
		for i < len(runes) && (runes[i] == ' ' || runes[i] == ',') {
			i++
		}
		if i >= len(runes) {
			break
		}
		quote := runes[i]
		if quote != '\'' && quote != '"' {
			return nil, fmt.Errorf("malformed list element at offset %d in %q", i, s)
		}
		i++
		start := i
		for i < len(runes) && runes[i] != quote {
			i++
		}
		if i >= len(runes) {
			return nil, fmt.Errorf("unterminated list element in %q", s)
		}
		out = append(out, string(runes[start:i]))
		i++ // closing quote
	}
	return out, nil
}
