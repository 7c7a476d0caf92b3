// Package cache persists a frozen snapshot.Data to a relational store
// and rebuilds it on load, so a process can start from a warm cache
// instead of re-ingesting from whatever external builder produced the
// original snapshot. Grounded on the teacher's storage/sqlite.go and
// storage/postgres.go (see DESIGN.md): same schema-on-open,
// prepared-statement-insert-in-a-transaction shape, generalized from
// GTFS feed rows to the transit-graph entity tables.
package cache

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"transitkernel.dev/core/model"
	"transitkernel.dev/core/snapshot"
)

// SQLiteConfig selects where the cache database lives.
type SQLiteConfig struct {
	OnDisk bool
	Path   string
}

// SQLiteStore is a snapshot cache backed by an embedded SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS stop_area (idx INTEGER PRIMARY KEY, uri TEXT NOT NULL, name TEXT NOT NULL, lon REAL NOT NULL, lat REAL NOT NULL);
CREATE TABLE IF NOT EXISTS stop_point (idx INTEGER PRIMARY KEY, uri TEXT NOT NULL, name TEXT NOT NULL, lon REAL NOT NULL, lat REAL NOT NULL, stop_area_idx INTEGER NOT NULL, properties INTEGER NOT NULL);
CREATE TABLE IF NOT EXISTS admin (idx INTEGER PRIMARY KEY, uri TEXT NOT NULL, name TEXT NOT NULL, lon REAL NOT NULL, lat REAL NOT NULL);
CREATE TABLE IF NOT EXISTS admin_ref (owner_kind TEXT NOT NULL, owner_idx INTEGER NOT NULL, admin_idx INTEGER NOT NULL);
CREATE TABLE IF NOT EXISTS journey_pattern (idx INTEGER PRIMARY KEY);
CREATE TABLE IF NOT EXISTS journey_pattern_point (idx INTEGER PRIMARY KEY, journey_pattern INTEGER NOT NULL, stop_point_idx INTEGER NOT NULL, point_order INTEGER NOT NULL);
CREATE TABLE IF NOT EXISTS vehicle_journey (idx INTEGER PRIMARY KEY, properties INTEGER NOT NULL);
CREATE TABLE IF NOT EXISTS stop_time (
    vehicle_journey_idx INTEGER NOT NULL,
    journey_pattern_point_idx INTEGER NOT NULL,
    departure_time INTEGER NOT NULL,
    arrival_time INTEGER NOT NULL,
    flags INTEGER NOT NULL,
    frequency_headway INTEGER NOT NULL,
    frequency_start INTEGER NOT NULL,
    frequency_end INTEGER NOT NULL
);
`

// OpenSQLiteStore opens (creating if necessary) the cache database at
// cfg.Path, or an in-memory database when cfg.OnDisk is false.
func OpenSQLiteStore(cfg SQLiteConfig) (*SQLiteStore, error) {
	source := ":memory:"
	if cfg.OnDisk {
		source = cfg.Path
	}
	db, err := sql.Open("sqlite3", source)
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Save writes data's stop areas, stop points, admins, admin
// references, journey patterns, vehicle journeys and stop times into
// the cache database, replacing whatever was there before. POIs, ways
// and lines are not written. Validity patterns and vehicle-journey
// calendars are not persisted here: a reload rebuilds every stop time
// with an empty pattern (valid on no day), matching the teacher's
// "cache holds the raw shape, not the derived indices" split.
func (s *SQLiteStore) Save(data *snapshot.Data) (err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning cache save transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	for _, table := range []string{
		"stop_area", "stop_point", "admin", "admin_ref",
		"journey_pattern", "journey_pattern_point", "vehicle_journey", "stop_time",
	} {
		if _, err = tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	if err = saveStopAreas(tx, data.StopAreas); err != nil {
		return err
	}
	if err = saveStopPoints(tx, data.StopPoints); err != nil {
		return err
	}
	if err = saveAdmins(tx, data.Admins); err != nil {
		return err
	}
	if err = saveAdminRefs(tx, data); err != nil {
		return err
	}
	if err = saveJourneyPatterns(tx, data.JourneyPatterns, data.JourneyPatternPoints); err != nil {
		return err
	}
	if err = saveVehicleJourneys(tx, data.VehicleJourneys); err != nil {
		return err
	}
	if err = saveStopTimes(tx, data.StopTimes); err != nil {
		return err
	}

	return tx.Commit()
}

func saveStopAreas(tx *sql.Tx, areas []*model.StopArea) error {
	stmt, err := tx.Prepare("INSERT INTO stop_area (idx, uri, name, lon, lat) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing stop_area insert: %w", err)
	}
	defer stmt.Close()
	for _, sa := range areas {
		if _, err := stmt.Exec(sa.Idx, sa.URI, sa.Name, sa.Coord.Lon, sa.Coord.Lat); err != nil {
			return fmt.Errorf("inserting stop_area %d: %w", sa.Idx, err)
		}
	}
	return nil
}

func saveStopPoints(tx *sql.Tx, points []*model.StopPoint) error {
	stmt, err := tx.Prepare("INSERT INTO stop_point (idx, uri, name, lon, lat, stop_area_idx, properties) VALUES (?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing stop_point insert: %w", err)
	}
	defer stmt.Close()
	for _, sp := range points {
		if _, err := stmt.Exec(sp.Idx, sp.URI, sp.Name, sp.Coord.Lon, sp.Coord.Lat, sp.StopAreaIdx, encodeAccessibility(sp.Properties)); err != nil {
			return fmt.Errorf("inserting stop_point %d: %w", sp.Idx, err)
		}
	}
	return nil
}

func saveAdmins(tx *sql.Tx, admins []*model.Admin) error {
	stmt, err := tx.Prepare("INSERT INTO admin (idx, uri, name, lon, lat) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing admin insert: %w", err)
	}
	defer stmt.Close()
	for _, a := range admins {
		if _, err := stmt.Exec(a.Idx, a.URI, a.Name, a.Coord.Lon, a.Coord.Lat); err != nil {
			return fmt.Errorf("inserting admin %d: %w", a.Idx, err)
		}
	}
	return nil
}

func saveAdminRefs(tx *sql.Tx, data *snapshot.Data) error {
	stmt, err := tx.Prepare("INSERT INTO admin_ref (owner_kind, owner_idx, admin_idx) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing admin_ref insert: %w", err)
	}
	defer stmt.Close()
	insert := func(kind string, ownerIdx int, adminList []int) error {
		for _, adminIdx := range adminList {
			if _, err := stmt.Exec(kind, ownerIdx, adminIdx); err != nil {
				return fmt.Errorf("inserting admin_ref %s/%d: %w", kind, ownerIdx, err)
			}
		}
		return nil
	}
	for _, sa := range data.StopAreas {
		if err := insert("stop_area", sa.Idx, sa.AdminList); err != nil {
			return err
		}
	}
	for _, sp := range data.StopPoints {
		if err := insert("stop_point", sp.Idx, sp.AdminList); err != nil {
			return err
		}
	}
	for _, p := range data.POIs {
		if err := insert("poi", p.Idx, p.AdminList); err != nil {
			return err
		}
	}
	for _, w := range data.Ways {
		if err := insert("way", w.Idx, w.AdminList); err != nil {
			return err
		}
	}
	return nil
}

func saveJourneyPatterns(tx *sql.Tx, patterns []*model.JourneyPattern, points []*model.JourneyPatternPoint) error {
	jpStmt, err := tx.Prepare("INSERT INTO journey_pattern (idx) VALUES (?)")
	if err != nil {
		return fmt.Errorf("preparing journey_pattern insert: %w", err)
	}
	defer jpStmt.Close()
	for _, jp := range patterns {
		if _, err := jpStmt.Exec(jp.Idx); err != nil {
			return fmt.Errorf("inserting journey_pattern %d: %w", jp.Idx, err)
		}
	}

	pointStmt, err := tx.Prepare("INSERT INTO journey_pattern_point (idx, journey_pattern, stop_point_idx, point_order) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing journey_pattern_point insert: %w", err)
	}
	defer pointStmt.Close()
	for _, p := range points {
		if _, err := pointStmt.Exec(p.Idx, p.JourneyPattern, p.StopPointIdx, p.Order); err != nil {
			return fmt.Errorf("inserting journey_pattern_point %d: %w", p.Idx, err)
		}
	}
	return nil
}

func saveVehicleJourneys(tx *sql.Tx, vjs []*model.VehicleJourney) error {
	stmt, err := tx.Prepare("INSERT INTO vehicle_journey (idx, properties) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("preparing vehicle_journey insert: %w", err)
	}
	defer stmt.Close()
	for _, vj := range vjs {
		if _, err := stmt.Exec(vj.Idx, encodeVehicle(vj.Properties)); err != nil {
			return fmt.Errorf("inserting vehicle_journey %d: %w", vj.Idx, err)
		}
	}
	return nil
}

func saveStopTimes(tx *sql.Tx, sts []*model.StopTime) error {
	stmt, err := tx.Prepare(`INSERT INTO stop_time
		(vehicle_journey_idx, journey_pattern_point_idx, departure_time, arrival_time, flags, frequency_headway, frequency_start, frequency_end)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing stop_time insert: %w", err)
	}
	defer stmt.Close()
	for _, st := range sts {
		if _, err := stmt.Exec(
			st.VehicleJourneyIdx, st.JourneyPatternPointIdx, st.DepartureTime, st.ArrivalTime,
			st.Flags, st.FrequencyHeadway, st.FrequencyStart, st.FrequencyEnd,
		); err != nil {
			return fmt.Errorf("inserting stop_time for vehicle journey %d: %w", st.VehicleJourneyIdx, err)
		}
	}
	return nil
}

func encodeAccessibility(p model.AccessibilityProperties) int64 {
	var bits int64
	if p.Wheelchair {
		bits |= 1
	}
	if p.Escalator {
		bits |= 2
	}
	if p.TTS {
		bits |= 4
	}
	if p.Elevator {
		bits |= 8
	}
	if p.Audible {
		bits |= 16
	}
	if p.Visual {
		bits |= 32
	}
	return bits
}

func encodeVehicle(p model.VehicleProperties) int64 {
	var bits int64
	if p.Wheelchair {
		bits |= 1
	}
	if p.Bike {
		bits |= 2
	}
	if p.AirConditioned {
		bits |= 4
	}
	return bits
}
