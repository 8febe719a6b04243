package http

import (
	"hash/fnv"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/im45145v/bipulse/internal/analysis"
	"github.com/im45145v/bipulse/internal/dataset"
	"github.com/im45145v/bipulse/internal/metrics"
	echo "github.com/labstack/echo/v4"
)

func listCustomersHandler(ds *dataset.Dataset) echo.HandlerFunc {
	return func(c echo.Context) error {
		metrics.AnalyticsRequestsTotal.WithLabelValues("customers").Inc()

		out := make([]map[string]any, 0, len(ds.Customers))
		for _, cu := range ds.Customers {
			out = append(out, map[string]any{
				"customer_id": cu.CustomerID,
				"name":        cu.Name,
				"segment":     cu.Segment,
			})
		}
		return c.JSON(http.StatusOK, map[string]any{
			"count":   len(out),
			"results": out,
		})
	}
}

func getCustomerHandler(ds *dataset.Dataset) echo.HandlerFunc {
	return func(c echo.Context) error {
		metrics.AnalyticsRequestsTotal.WithLabelValues("customer").Inc()

		cust := analysis.Profile(c.Param("id"), ds.Customers)
		if cust == nil {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "customer not found"})
		}
		return c.JSON(http.StatusOK, cust)
	}
}

func customerKPIsHandler(ds *dataset.Dataset) echo.HandlerFunc {
	return func(c echo.Context) error {
		metrics.AnalyticsRequestsTotal.WithLabelValues("kpis").Inc()

		id := c.Param("id")
		if analysis.Profile(id, ds.Customers) == nil {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "customer not found"})
		}
		return c.JSON(http.StatusOK, analysis.CustomerKPIs(id, ds.Orders))
	}
}

func customerTrendHandler(ds *dataset.Dataset) echo.HandlerFunc {
	return func(c echo.Context) error {
		metrics.AnalyticsRequestsTotal.WithLabelValues("trend").Inc()

		days := 90
		if v := c.QueryParam("days"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				days = n
			}
		}
		trend := analysis.RecentTrend(c.Param("id"), ds.Orders, days, time.Now().UTC())
		return c.JSON(http.StatusOK, map[string]any{
			"days":    days,
			"count":   len(trend),
			"results": trend,
		})
	}
}

func customerCategoriesHandler(ds *dataset.Dataset) echo.HandlerFunc {
	return func(c echo.Context) error {
		metrics.AnalyticsRequestsTotal.WithLabelValues("categories").Inc()

		dist := analysis.CategoryDistribution(c.Param("id"), ds.Orders)
		return c.JSON(http.StatusOK, map[string]any{
			"count":   len(dist),
			"results": dist,
		})
	}
}

func customerSummaryHandler(ds *dataset.Dataset) echo.HandlerFunc {
	return func(c echo.Context) error {
		metrics.AnalyticsRequestsTotal.WithLabelValues("summary").Inc()

		id := c.Param("id")
		cust := analysis.Profile(id, ds.Customers)
		if cust == nil {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "customer not found"})
		}
		kpis := analysis.CustomerKPIs(id, ds.Orders)
		return c.JSON(http.StatusOK, map[string]any{
			"customer_id": id,
			"summary":     analysis.SummaryText(cust.Name, kpis),
		})
	}
}

func customerPitchHandler(ds *dataset.Dataset, seed int64) echo.HandlerFunc {
	return func(c echo.Context) error {
		metrics.AnalyticsRequestsTotal.WithLabelValues("pitch").Inc()

		id := c.Param("id")
		cust := analysis.Profile(id, ds.Customers)
		if cust == nil {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "customer not found"})
		}
		kpis := analysis.CustomerKPIs(id, ds.Orders)

		// per-customer deterministic source: the same customer always gets
		// the same pitch for a given dataset seed
		rng := rand.New(rand.NewSource(seed ^ int64(hashID(id))))
		pitch := analysis.GenerateSalesPitch(cust, kpis, rng)
		recs := analysis.Recommendations(cust.Interests, rng)

		return c.JSON(http.StatusOK, map[string]any{
			"customer_id":     id,
			"pitch":           pitch,
			"recommendations": recs,
		})
	}
}

func hashID(id string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return h.Sum32()
}
