// Package cli is the command line front end of the route planner.
//
//	planner plan     --input requests.csv [--out data/routes] [--db data/app.db]
//	planner validate --input requests.csv
//	planner depots   --site requests-a.csv=51.5074,-0.1278 --site requests-b.csv=53.4808,-2.2426
//
// Every command accepts --config pointing at a planner YAML file; without it
// the built-in defaults are used.
package cli

import (
	"context"
	"delivery-dispatch-service/internal/adapters/csvio"
	"delivery-dispatch-service/internal/adapters/repositories"
	"delivery-dispatch-service/internal/config"
	"delivery-dispatch-service/internal/domain"
	"delivery-dispatch-service/internal/geo"
	"delivery-dispatch-service/internal/platform/db"
	"delivery-dispatch-service/internal/services"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var ErrInvalidRecords = errors.New("input contains invalid records")

func BuildCLI() *cobra.Command {
	var configFile string

	rootCmd := &cobra.Command{
		Use:           "planner",
		Short:         "Greedy delivery route planner",
		Long:          "Plans single-depot delivery routes under time-window, distance, duration and stop limits.",
		Version:       "1.0.0",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "planner YAML config file (defaults when empty)")

	rootCmd.AddCommand(buildPlanCommand(&configFile))
	rootCmd.AddCommand(buildValidateCommand(&configFile))
	rootCmd.AddCommand(buildDepotsCommand(&configFile))

	return rootCmd
}

func buildPlanCommand(configFile *string) *cobra.Command {
	var input, outDir, dbPath string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan routes for a request file",
		Long:  "Read delivery requests, build routes, write optimized_routes.csv and print one map link per route.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadPlanner(*configFile)
			if err != nil {
				return err
			}
			return runPlan(cmd.Context(), cmd.OutOrStdout(), cfg, input, outDir, dbPath)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "CSV file of delivery requests")
	cmd.Flags().StringVarP(&outDir, "out", "o", "data/routes", "directory for optimized_routes.csv")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite file to persist the plan in (optional)")
	cmd.MarkFlagRequired("input")

	return cmd
}

func runPlan(ctx context.Context, out io.Writer, cfg config.Planner, input, outDir, dbPath string) error {
	deps := services.Dependencies{
		Source:   csvio.NewJobSource(input, cfg.Region),
		Exporter: csvio.NewRouteExporter(outDir),
	}

	if dbPath != "" {
		conn, err := db.OpenSQLite(dbPath)
		if err != nil {
			return err
		}
		defer conn.Close()
		if err := repositories.InitSchema(conn); err != nil {
			return err
		}
		deps.Plans = repositories.NewSQLPlanRepository(conn, db.SQLite)
	}

	res, err := services.OptimizeRoutes(ctx, cfg, deps)
	if err != nil {
		return err
	}

	for _, link := range res.Plan.MapLinks() {
		fmt.Fprintln(out, link)
	}
	fmt.Fprintf(out, "routes=%d unassigned=%d rejected=%d file=%s\n",
		len(res.Plan.Routes), len(res.Plan.Unassigned), len(res.Failures), res.ExportPath)
	return nil
}

func buildValidateCommand(configFile *string) *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a request file without planning",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadPlanner(*configFile)
			if err != nil {
				return err
			}
			return runValidate(cmd.Context(), cmd.OutOrStdout(), cfg.Region, input)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "CSV file of delivery requests")
	cmd.MarkFlagRequired("input")

	return cmd
}

func runValidate(ctx context.Context, out io.Writer, region geo.Bounds, input string) error {
	jobs, failures, err := csvio.NewJobSource(input, region).LoadJobs(ctx)
	if err != nil {
		return err
	}

	for _, f := range failures {
		fmt.Fprintf(out, "row %d (%s -> %s): %s\n", f.Row, f.PickupAddress, f.DropoffAddress, f.Reason)
	}
	fmt.Fprintf(out, "valid=%d invalid=%d\n", len(jobs), len(failures))

	if len(failures) > 0 {
		return fmt.Errorf("%w: %d of %d", ErrInvalidRecords, len(failures), len(jobs)+len(failures))
	}
	return nil
}

func buildDepotsCommand(configFile *string) *cobra.Command {
	var sites []string

	cmd := &cobra.Command{
		Use:   "depots",
		Short: "Plan several independent depots concurrently",
		Long:  "Each --site is FILE=LAT,LNG: a request file and the depot that serves it.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadPlanner(*configFile)
			if err != nil {
				return err
			}
			return runDepots(cmd.Context(), cmd.OutOrStdout(), cfg, sites)
		},
	}

	cmd.Flags().StringArrayVar(&sites, "site", nil, "FILE=LAT,LNG (repeatable)")
	cmd.MarkFlagRequired("site")

	return cmd
}

func runDepots(ctx context.Context, out io.Writer, cfg config.Planner, sites []string) error {
	depots := make([]services.DepotJobs, 0, len(sites))
	for _, site := range sites {
		path, depot, err := parseSite(site, cfg.Region)
		if err != nil {
			return err
		}

		jobs, failures, err := csvio.NewJobSource(path, cfg.Region).LoadJobs(ctx)
		if err != nil {
			return err
		}
		if len(failures) > 0 {
			fmt.Fprintf(out, "%s: %d invalid records skipped\n", path, len(failures))
		}
		depots = append(depots, services.DepotJobs{Depot: depot, Jobs: jobs})
	}

	plans, err := services.PlanDepots(ctx, depots, cfg)
	if err != nil {
		return err
	}

	for i, p := range plans {
		fmt.Fprintf(out, "depot %d (%v,%v): routes=%d unassigned=%d\n",
			i+1, p.Depot.Lat, p.Depot.Lng, len(p.Routes), len(p.Unassigned))
		for _, link := range p.MapLinks() {
			fmt.Fprintln(out, link)
		}
	}
	return nil
}

func parseSite(site string, region geo.Bounds) (string, domain.Coordinates, error) {
	path, coords, ok := strings.Cut(site, "=")
	lat, lng, ok2 := strings.Cut(coords, ",")
	if !ok || !ok2 || strings.TrimSpace(path) == "" {
		return "", domain.Coordinates{}, fmt.Errorf("site %q: want FILE=LAT,LNG", site)
	}

	depot, err := geo.ValidateCoordinates(lat, lng, region)
	if err != nil {
		return "", domain.Coordinates{}, fmt.Errorf("site %q: %w", site, err)
	}
	return path, depot, nil
}
