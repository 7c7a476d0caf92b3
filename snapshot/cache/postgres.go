package cache

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"transitkernel.dev/core/model"
	"transitkernel.dev/core/snapshot"
)

// PostgresStore is a snapshot cache backed by Postgres, for deployments
// that want the cache shared across process instances rather than
// local to one disk. Mirrors SQLiteStore's schema; the two are not
// unified behind one query builder (the teacher's storage/sqlite.go
// and storage/postgres.go are likewise independent implementations,
// not a shared abstraction).
type PostgresStore struct {
	db *sql.DB
}

const postgresSchema = `
CREATE TABLE IF NOT EXISTS stop_area (idx INTEGER PRIMARY KEY, uri TEXT NOT NULL, name TEXT NOT NULL, lon DOUBLE PRECISION NOT NULL, lat DOUBLE PRECISION NOT NULL);
CREATE TABLE IF NOT EXISTS stop_point (idx INTEGER PRIMARY KEY, uri TEXT NOT NULL, name TEXT NOT NULL, lon DOUBLE PRECISION NOT NULL, lat DOUBLE PRECISION NOT NULL, stop_area_idx INTEGER NOT NULL, properties BIGINT NOT NULL);
CREATE TABLE IF NOT EXISTS admin (idx INTEGER PRIMARY KEY, uri TEXT NOT NULL, name TEXT NOT NULL, lon DOUBLE PRECISION NOT NULL, lat DOUBLE PRECISION NOT NULL);
CREATE TABLE IF NOT EXISTS admin_ref (owner_kind TEXT NOT NULL, owner_idx INTEGER NOT NULL, admin_idx INTEGER NOT NULL);
CREATE TABLE IF NOT EXISTS journey_pattern (idx INTEGER PRIMARY KEY);
CREATE TABLE IF NOT EXISTS journey_pattern_point (idx INTEGER PRIMARY KEY, journey_pattern INTEGER NOT NULL, stop_point_idx INTEGER NOT NULL, point_order INTEGER NOT NULL);
CREATE TABLE IF NOT EXISTS vehicle_journey (idx INTEGER PRIMARY KEY, properties BIGINT NOT NULL);
CREATE TABLE IF NOT EXISTS stop_time (
    vehicle_journey_idx INTEGER NOT NULL,
    journey_pattern_point_idx INTEGER NOT NULL,
    departure_time INTEGER NOT NULL,
    arrival_time INTEGER NOT NULL,
    flags BIGINT NOT NULL,
    frequency_headway INTEGER NOT NULL,
    frequency_start INTEGER NOT NULL,
    frequency_end INTEGER NOT NULL
);
`

// OpenPostgresStore connects to connStr and ensures the cache schema
// exists. If clearDB is true, every cache table is dropped and
// recreated empty first; callers should only set this in tests.
func OpenPostgresStore(connStr string, clearDB bool) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening postgres cache: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging postgres cache: %w", err)
	}
	if clearDB {
		_, err = db.Exec(`
DROP TABLE IF EXISTS stop_area;
DROP TABLE IF EXISTS stop_point;
DROP TABLE IF EXISTS admin;
DROP TABLE IF EXISTS admin_ref;
DROP TABLE IF EXISTS journey_pattern;
DROP TABLE IF EXISTS journey_pattern_point;
DROP TABLE IF EXISTS vehicle_journey;
DROP TABLE IF EXISTS stop_time;
`)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("clearing postgres cache: %w", err)
		}
	}
	if _, err := db.Exec(postgresSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating postgres cache schema: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// Load reloads this store's content through the shared Load function.
func (s *PostgresStore) Load() (*snapshot.Data, error) {
	return Load(s.db)
}

// Save writes the same tables as SQLiteStore.Save (POIs, ways and
// lines are not written), replacing whatever was there before. Uses
// $N placeholders throughout, unlike
// SQLiteStore.Save's `?`, since lib/pq requires positional parameters.
func (s *PostgresStore) Save(data *snapshot.Data) (err error) {
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

	if err = pgSaveStopAreas(tx, data.StopAreas); err != nil {
		return err
	}
	if err = pgSaveStopPoints(tx, data.StopPoints); err != nil {
		return err
	}
	if err = pgSaveAdmins(tx, data.Admins); err != nil {
		return err
	}
	if err = pgSaveAdminRefs(tx, data); err != nil {
		return err
	}
	if err = pgSaveJourneyPatterns(tx, data.JourneyPatterns, data.JourneyPatternPoints); err != nil {
		return err
	}
	if err = pgSaveVehicleJourneys(tx, data.VehicleJourneys); err != nil {
		return err
	}
	if err = pgSaveStopTimes(tx, data.StopTimes); err != nil {
		return err
	}

	return tx.Commit()
}

func pgSaveStopAreas(tx *sql.Tx, areas []*model.StopArea) error {
	stmt, err := tx.Prepare("INSERT INTO stop_area (idx, uri, name, lon, lat) VALUES ($1, $2, $3, $4, $5)")
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

func pgSaveStopPoints(tx *sql.Tx, points []*model.StopPoint) error {
	stmt, err := tx.Prepare("INSERT INTO stop_point (idx, uri, name, lon, lat, stop_area_idx, properties) VALUES ($1, $2, $3, $4, $5, $6, $7)")
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

func pgSaveAdmins(tx *sql.Tx, admins []*model.Admin) error {
	stmt, err := tx.Prepare("INSERT INTO admin (idx, uri, name, lon, lat) VALUES ($1, $2, $3, $4, $5)")
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

func pgSaveAdminRefs(tx *sql.Tx, data *snapshot.Data) error {
	stmt, err := tx.Prepare("INSERT INTO admin_ref (owner_kind, owner_idx, admin_idx) VALUES ($1, $2, $3)")
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

func pgSaveJourneyPatterns(tx *sql.Tx, patterns []*model.JourneyPattern, points []*model.JourneyPatternPoint) error {
	jpStmt, err := tx.Prepare("INSERT INTO journey_pattern (idx) VALUES ($1)")
	if err != nil {
		return fmt.Errorf("preparing journey_pattern insert: %w", err)
	}
	defer jpStmt.Close()
	for _, jp := range patterns {
		if _, err := jpStmt.Exec(jp.Idx); err != nil {
			return fmt.Errorf("inserting journey_pattern %d: %w", jp.Idx, err)
		}
	}

	pointStmt, err := tx.Prepare("INSERT INTO journey_pattern_point (idx, journey_pattern, stop_point_idx, point_order) VALUES ($1, $2, $3, $4)")
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

func pgSaveVehicleJourneys(tx *sql.Tx, vjs []*model.VehicleJourney) error {
	stmt, err := tx.Prepare("INSERT INTO vehicle_journey (idx, properties) VALUES ($1, $2)")
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

func pgSaveStopTimes(tx *sql.Tx, sts []*model.StopTime) error {
	stmt, err := tx.Prepare(`INSERT INTO stop_time
		(vehicle_journey_idx, journey_pattern_point_idx, departure_time, arrival_time, flags, frequency_headway, frequency_start, frequency_end)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`)
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
