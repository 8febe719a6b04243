package cmd

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/im45145v/bipulse/internal/analysis"
	"github.com/im45145v/bipulse/internal/config"
	"github.com/im45145v/bipulse/internal/logger"
	"github.com/spf13/cobra"
)

var (
	reportCustomerID string
	reportWithPitch  bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print a customer report (profile, KPIs, summary)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		logger.Init(cfg.Log.Level)

		ds, err := loadDataset(cfg)
		if err != nil {
			return err
		}

		cust := analysis.Profile(reportCustomerID, ds.Customers)
		if cust == nil {
			return fmt.Errorf("customer %s not found", reportCustomerID)
		}
		kpis := analysis.CustomerKPIs(reportCustomerID, ds.Orders)

		fmt.Printf("%s  %s <%s>\n", cust.CustomerID, cust.Name, cust.Email)
		fmt.Printf("segment=%s  behavior=%s  engagement=%d  interests=%s\n",
			cust.Segment, cust.BuyingBehavior, cust.EngagementScore,
			strings.Join(cust.Interests, ","))
		fmt.Printf("member since %s, last contact %s\n",
			cust.CreatedAt.Format("2006-01-02"), cust.LastContactDate.Format("2006-01-02"))
		fmt.Println()
		fmt.Printf("total spend:    %.2f\n", kpis.TotalSpend)
		fmt.Printf("orders:         %d\n", kpis.OrdersCount)
		fmt.Printf("avg order:      %.2f\n", kpis.AverageOrderValue)
		fmt.Printf("orders/month:   %.2f\n", kpis.OrderFrequency)
		fmt.Printf("top category:   %s\n", kpis.TopCategory)
		fmt.Printf("days active:    %d\n", kpis.DaysActive)
		fmt.Println()
		fmt.Println(analysis.SummaryText(cust.Name, kpis))

		if reportWithPitch {
			rng := rand.New(rand.NewSource(cfg.Generator.Seed))
			pitch := analysis.GenerateSalesPitch(cust, kpis, rng)
			fmt.Println()
			fmt.Println("--- pitch ---")
			fmt.Println("Subject: " + pitch.Subject)
			fmt.Println()
			fmt.Println(pitch.FullPitch)
		}

		return nil
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportCustomerID, "customer", "", "customer id, e.g. CUST0001")
	reportCmd.Flags().BoolVar(&reportWithPitch, "pitch", false, "include a personalized sales pitch")
	_ = reportCmd.MarkFlagRequired("customer")
}
