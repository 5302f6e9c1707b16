// cmd/forecastctl/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/Akmalwizdom/siprems-backend/internal/cache"
	"github.com/Akmalwizdom/siprems-backend/internal/config"
	"github.com/Akmalwizdom/siprems-backend/internal/domain"
	"github.com/Akmalwizdom/siprems-backend/internal/forecast"
	"github.com/Akmalwizdom/siprems-backend/internal/mlservice"
	"github.com/Akmalwizdom/siprems-backend/internal/repository/postgres"
	"github.com/Akmalwizdom/siprems-backend/internal/service"
	"github.com/Akmalwizdom/siprems-backend/internal/timeutil"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "forecastctl",
		Usage: "Run restock recommendations and maintenance tasks from the command line",
		Commands: []*cli.Command{
			{
				Name:  "recommend",
				Usage: "Generate restock recommendations for a store and print them",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:    "ml-url",
						Usage:   "Base URL of the forecasting model service",
						Value:   "http://localhost:8001",
						EnvVars: []string{"ML_SERVICE_URL"},
					},
					&cli.StringFlag{
						Name:  "store-id",
						Usage: "Store identifier passed to the model service",
						Value: "default",
					},
					&cli.IntFlag{
						Name:  "days",
						Usage: "Forecast horizon in days",
						Value: 84,
					},
					&cli.IntFlag{
						Name:  "lookback",
						Usage: "Sales lookback window in days",
						Value: 90,
					},
					&cli.IntFlag{
						Name:  "lead-time",
						Usage: "Supplier lead time in days",
						Value: 7,
					},
					&cli.Float64Flag{
						Name:  "service-level",
						Usage: "Target service level (0.95 or 0.99)",
						Value: 0.95,
					},
				},
				Action: runRecommend,
			},
			{
				Name:  "rebuild-summary",
				Usage: "Rebuild the daily sales summary table from raw transactions",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:    "redis-url",
						Usage:   "Redis connection string; when set, the dashboard cache is invalidated after the rebuild",
						EnvVars: []string{"REDIS_URL"},
					},
				},
				Action: runRebuildSummary,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runRecommend(c *cli.Context) error {
	db, err := sqlx.Open("pgx", c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	ctx := context.Background()
	now := timeutil.NowWIB()
	lookback := c.Int("lookback")
	days := c.Int("days")

	salesRepo := postgres.NewSalesRepository(db)
	productRepo := postgres.NewProductRepository(db)

	lookbackStart := timeutil.Midnight(now).AddDate(0, 0, -lookback)
	salesRecords, err := salesRepo.GetSalesSince(ctx, lookbackStart)
	if err != nil {
		return fmt.Errorf("failed to load sales history: %w", err)
	}

	catalog, err := productRepo.GetCatalog(ctx)
	if err != nil {
		return fmt.Errorf("failed to load product catalog: %w", err)
	}
	if len(catalog) == 0 {
		return fmt.Errorf("product catalog is empty, nothing to recommend")
	}

	predictor := mlservice.NewClient(c.String("ml-url"), 60*time.Second)
	prediction, err := predictor.Predict(ctx, c.String("store-id"), days)
	if err != nil {
		return fmt.Errorf("model service prediction failed: %w", err)
	}

	var aggregateForecast float64
	for _, p := range prediction.Points {
		if p.Predicted > 0 {
			aggregateForecast += p.Predicted
		}
	}

	policy := forecast.DefaultPolicy()
	snapshot := forecast.Aggregate(policy, catalog, salesRecords, now, lookback)
	demands := forecast.Allocate(policy, forecast.AllocationInput{
		AggregateForecast: aggregateForecast,
		ForecastDays:      days,
		Catalog:           catalog,
		Snapshot:          snapshot,
	})
	recommendations := forecast.BuildRecommendations(policy, demands, days, c.Int("lead-time"), c.Float64("service-level"))

	printRecommendations(recommendations)
	log.Printf("Generated %d recommendations over a %d day horizon (aggregate forecast %.0f units)",
		len(recommendations), days, aggregateForecast)
	return nil
}

func printRecommendations(recs []domain.RestockRecommendation) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PRODUCT\tCATEGORY\tURGENCY\tSTOCK\tRESTOCK\tDAYS LEFT\tCONFIDENCE")
	for _, r := range recs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%d%%\n",
			r.ProductName, r.Category, r.Urgency, r.CurrentStock, r.RecommendedRestock, r.DaysOfStock, r.Confidence)
	}
	w.Flush()
}

// runRebuildSummary regenerates daily_sales_summary from the transactions
// table. The summary is what the model service trains on, so it has to be
// rebuilt after any bulk import.
func runRebuildSummary(c *cli.Context) error {
	db, err := sqlx.Open("pgx", c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM daily_sales_summary`); err != nil {
		return fmt.Errorf("failed to clear daily sales summary: %w", err)
	}

	const query = `
		INSERT INTO daily_sales_summary (ds, y)
		SELECT DATE(t.date) AS ds, SUM(t.total_amount) AS y
		FROM transactions t
		GROUP BY DATE(t.date)
		ORDER BY ds
	`
	result, err := tx.ExecContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to rebuild daily sales summary: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	rows, _ := result.RowsAffected()
	log.Printf("Rebuilt daily sales summary (%d days)", rows)

	// The dashboard reads come from the tables just rewritten; a stale
	// cache would keep serving the pre-rebuild numbers until the TTL.
	if redisURL := c.String("redis-url"); redisURL != "" {
		dc, err := cache.NewDashboardCache(config.CacheConfig{Enabled: true, RedisURL: redisURL})
		if err != nil {
			log.Printf("warning: dashboard cache not reachable, skipping invalidation: %v", err)
			return nil
		}
		dashboards := service.NewDashboardService(postgres.NewDashboardRepository(db), dc)
		if err := dashboards.InvalidateCache(ctx); err != nil {
			log.Printf("warning: failed to invalidate dashboard cache: %v", err)
			return nil
		}
		log.Println("Invalidated dashboard cache")
	}
	return nil
}
