package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"groupmixer/internal/rotation"
)

var ErrPlanNotFound = errors.New("db: plan not found")

type Plan struct {
	ID        int64         `db:"id"`
	RosterID  int64         `db:"roster_id"`
	Groups    int           `db:"n_groups"`
	Rounds    int           `db:"n_rounds"`
	Restarts  int           `db:"restarts"`
	Seed      sql.NullInt64 `db:"seed"`
	CreatedAt time.Time     `db:"created_at"`
}

// SavePlan persists one finished schedule together with the parameters that
// produced it. The whole plan lands in one transaction so readers never see
// a half-written schedule.
func (s *Store) SavePlan(ctx context.Context, rosterID int64, groups, rounds, restarts int, seed *int64, plan rotation.Schedule) (int64, error) {
	var planID int64
	err := s.WithTx(ctx, func(tx *sqlx.Tx) error {
		var seedVal sql.NullInt64
		if seed != nil {
			seedVal = sql.NullInt64{Int64: *seed, Valid: true}
		}
		res, err := tx.Exec(
			"INSERT INTO plans (roster_id, n_groups, n_rounds, restarts, seed) VALUES (?, ?, ?, ?, ?)",
			rosterID, groups, rounds, restarts, seedVal)
		if err != nil {
			return fmt.Errorf("insert plan: %w", err)
		}
		planID, err = res.LastInsertId()
		if err != nil {
			return err
		}
		for ri, round := range plan {
			for gi, g := range round {
				for pi, member := range g {
					if _, err := tx.Exec(
						"INSERT INTO plan_groups (plan_id, round_no, group_no, position, member) VALUES (?, ?, ?, ?, ?)",
						planID, ri+1, gi+1, pi, member); err != nil {
						return fmt.Errorf("insert plan group row: %w", err)
					}
				}
			}
		}
		return nil
	})
	return planID, err
}

func (s *Store) GetPlan(id int64) (Plan, rotation.Schedule, error) {
	var p Plan
	err := s.DB.Get(&p,
		"SELECT id, roster_id, n_groups, n_rounds, restarts, seed, created_at FROM plans WHERE id=?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return Plan{}, nil, fmt.Errorf("%w: id %d", ErrPlanNotFound, id)
	}
	if err != nil {
		return Plan{}, nil, err
	}
	schedule, err := s.planBody(id)
	if err != nil {
		return Plan{}, nil, err
	}
	return p, schedule, nil
}

func (s *Store) ListPlans(rosterID int64) ([]Plan, error) {
	var out []Plan
	err := s.DB.Select(&out,
		"SELECT id, roster_id, n_groups, n_rounds, restarts, seed, created_at FROM plans WHERE roster_id=? ORDER BY id DESC",
		rosterID)
	return out, err
}

// planBody reassembles the stored rows into round/group order.
func (s *Store) planBody(planID int64) (rotation.Schedule, error) {
	rows, err := s.DB.Queryx(
		"SELECT round_no, group_no, member FROM plan_groups WHERE plan_id=? ORDER BY round_no, group_no, position",
		planID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schedule rotation.Schedule
	lastRound, lastGroup := 0, 0
	for rows.Next() {
		var roundNo, groupNo int
		var member string
		if err := rows.Scan(&roundNo, &groupNo, &member); err != nil {
			return nil, err
		}
		if roundNo != lastRound {
			schedule = append(schedule, rotation.Round{})
			lastRound, lastGroup = roundNo, 0
		}
		if groupNo != lastGroup {
			schedule[len(schedule)-1] = append(schedule[len(schedule)-1], rotation.Group{})
			lastGroup = groupNo
		}
		round := schedule[len(schedule)-1]
		round[len(round)-1] = append(round[len(round)-1], member)
	}
	return schedule, rows.Err()
}
