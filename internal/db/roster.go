package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var ErrRosterNotFound = errors.New("db: roster not found")

type Roster struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

type Member struct {
	ID       int64  `db:"id"`
	RosterID int64  `db:"roster_id"`
	Name     string `db:"name"`
	Present  bool   `db:"present"`
}

func (s *Store) CreateRoster(name string) (int64, error) {
	res, err := s.DB.Exec("INSERT INTO rosters (name) VALUES (?)", name)
	if err != nil {
		return 0, fmt.Errorf("create roster %q: %w", name, err)
	}
	return res.LastInsertId()
}

func (s *Store) GetRoster(name string) (Roster, error) {
	var r Roster
	err := s.DB.Get(&r, "SELECT id, name, created_at FROM rosters WHERE name=?", name)
	if errors.Is(err, sql.ErrNoRows) {
		return Roster{}, fmt.Errorf("%w: %s", ErrRosterNotFound, name)
	}
	return r, err
}

func (s *Store) ListRosters() ([]Roster, error) {
	var out []Roster
	err := s.DB.Select(&out, "SELECT id, name, created_at FROM rosters ORDER BY name")
	return out, err
}

func (s *Store) AddMember(rosterID int64, name string) error {
	_, err := s.DB.Exec(
		"INSERT INTO members (roster_id, name) VALUES (?, ?) ON CONFLICT(roster_id, name) DO NOTHING",
		rosterID, name)
	return err
}

func (s *Store) RemoveMember(rosterID int64, name string) error {
	_, err := s.DB.Exec("DELETE FROM members WHERE roster_id=? AND name=?", rosterID, name)
	return err
}

func (s *Store) SetPresent(rosterID int64, name string, present bool) error {
	res, err := s.DB.Exec("UPDATE members SET present=? WHERE roster_id=? AND name=?", present, rosterID, name)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("db: no member %q in roster %d", name, rosterID)
	}
	return nil
}

func (s *Store) Members(rosterID int64) ([]Member, error) {
	var out []Member
	err := s.DB.Select(&out,
		"SELECT id, roster_id, name, present FROM members WHERE roster_id=? ORDER BY name", rosterID)
	return out, err
}

// PresentMembers returns the names of roster members currently marked
// present, in name order.
func (s *Store) PresentMembers(rosterID int64) ([]string, error) {
	var out []string
	err := s.DB.Select(&out,
		"SELECT name FROM members WHERE roster_id=? AND present=1 ORDER BY name", rosterID)
	return out, err
}
