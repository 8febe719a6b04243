package http

import (
	"net/http"

	"github.com/im45145v/bipulse/internal/analysis"
	"github.com/im45145v/bipulse/internal/dataset"
	"github.com/im45145v/bipulse/internal/metrics"
	echo "github.com/labstack/echo/v4"
)

func overviewHandler(ds *dataset.Dataset) echo.HandlerFunc {
	return func(c echo.Context) error {
		metrics.AnalyticsRequestsTotal.WithLabelValues("overview").Inc()

		return c.JSON(http.StatusOK, analysis.ComputeOverview(ds.Customers, ds.Orders))
	}
}

func segmentsHandler(ds *dataset.Dataset) echo.HandlerFunc {
	return func(c echo.Context) error {
		metrics.AnalyticsRequestsTotal.WithLabelValues("segments").Inc()

		dist := analysis.SegmentDistribution(ds.Customers)
		return c.JSON(http.StatusOK, map[string]any{
			"count":   len(dist),
			"results": dist,
		})
	}
}

func categoryShareHandler(ds *dataset.Dataset) echo.HandlerFunc {
	return func(c echo.Context) error {
		metrics.AnalyticsRequestsTotal.WithLabelValues("category_share").Inc()

		share := analysis.CategoryShare(ds.Orders)
		return c.JSON(http.StatusOK, map[string]any{
			"count":   len(share),
			"results": share,
		})
	}
}

func revenueHandler(ds *dataset.Dataset) echo.HandlerFunc {
	return func(c echo.Context) error {
		metrics.AnalyticsRequestsTotal.WithLabelValues("revenue").Inc()

		freq, ok := analysis.ParseFrequency(c.QueryParam("freq"))
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid freq"})
		}
		buckets := analysis.RevenueOverTime(ds.Orders, freq)
		return c.JSON(http.StatusOK, map[string]any{
			"freq":    freq,
			"count":   len(buckets),
			"results": buckets,
		})
	}
}
