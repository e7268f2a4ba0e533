package repositories

import (
	"context"
	"database/sql"
	"delivery-dispatch-service/internal/domain"
	"delivery-dispatch-service/internal/platform/db"
	"delivery-dispatch-service/internal/platform/obs"
	"delivery-dispatch-service/internal/ports"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// SQL-backed implementation of the PlanRepository port.
type SQLPlanRepository struct {
	DB      *sql.DB
	Dialect db.Dialect
}

func NewSQLPlanRepository(conn *sql.DB, dialect db.Dialect) *SQLPlanRepository {
	return &SQLPlanRepository{DB: conn, Dialect: dialect}
}

// Store a plan with its routes and stops in one transaction.
func (s *SQLPlanRepository) SavePlan(ctx context.Context, plan *domain.Plan) (err error) {
	defer obs.Time(ctx, "plans.SavePlan")(&err)

	if s.DB == nil {
		return errors.New("sql plan repository: DB is nil")
	}
	if plan == nil || plan.RunID == "" {
		return errors.New("save plan: plan must have a run id")
	}

	unassigned, err := json.Marshal(plan.Unassigned)
	if err != nil {
		return fmt.Errorf("save plan: encode unassigned: %w", err)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save plan: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, s.Dialect.Rebind(`
	INSERT INTO plans (run_id, created_at, depot_lat, depot_lng, unassigned)
	VALUES (?, ?, ?, ?, ?);
	`), plan.RunID, plan.CreatedAt.UnixNano(), plan.Depot.Lat, plan.Depot.Lng, string(unassigned))
	if err != nil {
		return fmt.Errorf("save plan: insert run_id=%s: %w", plan.RunID, err)
	}

	routeStmt, err := tx.PrepareContext(ctx, s.Dialect.Rebind(`
	INSERT INTO plan_routes (run_id, route_number, start_time, end_time, distance_miles, duration_minutes, map_link)
	VALUES (?, ?, ?, ?, ?, ?, ?);
	`))
	if err != nil {
		return fmt.Errorf("save plan: prepare route insert: %w", err)
	}
	defer routeStmt.Close()

	stopStmt, err := tx.PrepareContext(ctx, s.Dialect.Rebind(`
	INSERT INTO plan_stops (run_id, route_number, stop_number, job, pickup_arrival, dropoff_arrival, completion)
	VALUES (?, ?, ?, ?, ?, ?, ?);
	`))
	if err != nil {
		return fmt.Errorf("save plan: prepare stop insert: %w", err)
	}
	defer stopStmt.Close()

	for _, r := range plan.Routes {
		_, err := routeStmt.ExecContext(ctx,
			plan.RunID, r.Number, r.Start.String(), r.End.String(), r.DistanceMiles, r.DurationMinutes, r.MapLink)
		if err != nil {
			return fmt.Errorf("save plan: insert route %d: %w", r.Number, err)
		}

		for i, st := range r.Stops {
			job, err := json.Marshal(st.Job)
			if err != nil {
				return fmt.Errorf("save plan: encode route %d stop %d: %w", r.Number, i+1, err)
			}
			_, err = stopStmt.ExecContext(ctx,
				plan.RunID, r.Number, i+1, string(job),
				st.PickupArrival.String(), st.DropoffArrival.String(), st.Completion.String())
			if err != nil {
				return fmt.Errorf("save plan: insert route %d stop %d: %w", r.Number, i+1, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save plan: commit tx: %w", err)
	}

	return nil
}

// Return the most recently created plan, or ports.ErrNotFound.
func (s *SQLPlanRepository) LatestPlan(ctx context.Context) (_ *domain.Plan, err error) {
	defer obs.Time(ctx, "plans.LatestPlan")(&err)

	if s.DB == nil {
		return nil, errors.New("sql plan repository: DB is nil")
	}

	var (
		plan       domain.Plan
		createdAt  int64
		unassigned string
	)
	err = s.DB.QueryRowContext(ctx, `
	SELECT run_id, created_at, depot_lat, depot_lng, unassigned
	FROM plans
	ORDER BY created_at DESC
	LIMIT 1;
	`).Scan(&plan.RunID, &createdAt, &plan.Depot.Lat, &plan.Depot.Lng, &unassigned)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("latest plan: %w", ports.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("latest plan: query plans table: %w", err)
	}

	plan.CreatedAt = time.Unix(0, createdAt).UTC()
	if err := json.Unmarshal([]byte(unassigned), &plan.Unassigned); err != nil {
		return nil, fmt.Errorf("latest plan: decode unassigned: %w", err)
	}
	if plan.Unassigned == nil {
		plan.Unassigned = []domain.Job{}
	}

	plan.Routes, err = s.loadRoutes(ctx, plan.RunID)
	if err != nil {
		return nil, fmt.Errorf("latest plan: %w", err)
	}

	return &plan, nil
}

func (s *SQLPlanRepository) loadRoutes(ctx context.Context, runID string) ([]domain.RoutePlan, error) {
	rows, err := s.DB.QueryContext(ctx, s.Dialect.Rebind(`
	SELECT route_number, start_time, end_time, distance_miles, duration_minutes, map_link
	FROM plan_routes
	WHERE run_id = ?
	ORDER BY route_number;
	`), runID)
	if err != nil {
		return nil, fmt.Errorf("load routes: query plan_routes table: %w", err)
	}
	defer rows.Close()

	routes := []domain.RoutePlan{}
	index := map[int]int{}
	for rows.Next() {
		var r domain.RoutePlan
		var start, end string
		if err := rows.Scan(&r.Number, &start, &end, &r.DistanceMiles, &r.DurationMinutes, &r.MapLink); err != nil {
			return nil, fmt.Errorf("load routes: scan row: %w", err)
		}
		if r.Start, err = domain.ParseClock(start); err != nil {
			return nil, fmt.Errorf("load routes: route %d: %w", r.Number, err)
		}
		if r.End, err = domain.ParseClock(end); err != nil {
			return nil, fmt.Errorf("load routes: route %d: %w", r.Number, err)
		}
		r.Stops = []domain.RouteStop{}
		index[r.Number] = len(routes)
		routes = append(routes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load routes: row iteration: %w", err)
	}

	stops, err := s.DB.QueryContext(ctx, s.Dialect.Rebind(`
	SELECT route_number, job, pickup_arrival, dropoff_arrival, completion
	FROM plan_stops
	WHERE run_id = ?
	ORDER BY route_number, stop_number;
	`), runID)
	if err != nil {
		return nil, fmt.Errorf("load routes: query plan_stops table: %w", err)
	}
	defer stops.Close()

	for stops.Next() {
		var (
			number                         int
			job, pickup, dropoff, complete string
			st                             domain.RouteStop
		)
		if err := stops.Scan(&number, &job, &pickup, &dropoff, &complete); err != nil {
			return nil, fmt.Errorf("load routes: scan stop: %w", err)
		}
		if err := json.Unmarshal([]byte(job), &st.Job); err != nil {
			return nil, fmt.Errorf("load routes: decode stop job: %w", err)
		}
		if st.PickupArrival, err = domain.ParseClock(pickup); err != nil {
			return nil, fmt.Errorf("load routes: %w", err)
		}
		if st.DropoffArrival, err = domain.ParseClock(dropoff); err != nil {
			return nil, fmt.Errorf("load routes: %w", err)
		}
		if st.Completion, err = domain.ParseClock(complete); err != nil {
			return nil, fmt.Errorf("load routes: %w", err)
		}

		i, ok := index[number]
		if !ok {
			return nil, fmt.Errorf("load routes: stop references unknown route %d", number)
		}
		routes[i].Stops = append(routes[i].Stops, st)
	}
	if err := stops.Err(); err != nil {
		return nil, fmt.Errorf("load routes: stop iteration: %w", err)
	}

	return routes, nil
}
