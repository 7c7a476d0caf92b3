package cache

import (
	"database/sql"
	"fmt"
	"sort"

	"transitkernel.dev/core/model"
	"transitkernel.dev/core/snapshot"
)

// Load rebuilds a *snapshot.Data from whatever was last Saved,
// running every entity back through a fresh snapshot.Builder so the
// RAPTOR tables and §3 invariants are recomputed rather than trusted
// from disk. Validity patterns are not persisted (see Save's doc
// comment); every stop time reloads with an empty, non-nil pattern
// that is valid on no day until the caller Adds days to it.
func Load(db *sql.DB) (*snapshot.Data, error) {
	b := snapshot.NewBuilder()

	if _, err := loadStopAreas(db, b); err != nil {
		return nil, err
	}
	if err := loadStopPoints(db, b); err != nil {
		return nil, err
	}
	if err := loadAdmins(db, b); err != nil {
		return nil, err
	}
	if err := loadAdminRefs(db, b); err != nil {
		return nil, err
	}
	jpRemap, err := loadJourneyPatterns(db, b)
	if err != nil {
		return nil, err
	}
	vjRemap, err := loadVehicleJourneys(db, b)
	if err != nil {
		return nil, err
	}
	if err := loadStopTimes(db, b, jpRemap, vjRemap); err != nil {
		return nil, err
	}

	return b.Freeze()
}

func loadStopAreas(db *sql.DB, b *snapshot.Builder) (map[int]int, error) {
	rows, err := db.Query("SELECT idx, uri, name, lon, lat FROM stop_area ORDER BY idx")
	if err != nil {
		return nil, fmt.Errorf("loading stop_area: %w", err)
	}
	defer rows.Close()

	remap := map[int]int{}
	for rows.Next() {
		var oldIdx int
		sa := &model.StopArea{}
		if err := rows.Scan(&oldIdx, &sa.URI, &sa.Name, &sa.Coord.Lon, &sa.Coord.Lat); err != nil {
			return nil, fmt.Errorf("scanning stop_area: %w", err)
		}
		remap[oldIdx] = b.AddStopArea(sa)
	}
	return remap, rows.Err()
}

func loadStopPoints(db *sql.DB, b *snapshot.Builder) error {
	rows, err := db.Query("SELECT idx, uri, name, lon, lat, stop_area_idx, properties FROM stop_point ORDER BY idx")
	if err != nil {
		return fmt.Errorf("loading stop_point: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var oldIdx int
		var props int64
		sp := &model.StopPoint{}
		if err := rows.Scan(&oldIdx, &sp.URI, &sp.Name, &sp.Coord.Lon, &sp.Coord.Lat, &sp.StopAreaIdx, &props); err != nil {
			return fmt.Errorf("scanning stop_point: %w", err)
		}
		sp.Properties = decodeAccessibility(props)
		b.AddStopPoint(sp)
	}
	return rows.Err()
}

func loadAdmins(db *sql.DB, b *snapshot.Builder) error {
	rows, err := db.Query("SELECT idx, uri, name, lon, lat FROM admin ORDER BY idx")
	if err != nil {
		return fmt.Errorf("loading admin: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var oldIdx int
		a := &model.Admin{}
		if err := rows.Scan(&oldIdx, &a.URI, &a.Name, &a.Coord.Lon, &a.Coord.Lat); err != nil {
			return fmt.Errorf("scanning admin: %w", err)
		}
		b.AddAdmin(a)
	}
	return rows.Err()
}

// loadAdminRefs re-attaches admin_list entries. It relies on stop
// areas/stop points/admins having been loaded in ascending idx order
// with no gaps, so the stored owner_idx/admin_idx values line up
// one-to-one with the freshly assigned builder indexes.
func loadAdminRefs(db *sql.DB, b *snapshot.Builder) error {
	rows, err := db.Query("SELECT owner_kind, owner_idx, admin_idx FROM admin_ref ORDER BY owner_kind, owner_idx")
	if err != nil {
		return fmt.Errorf("loading admin_ref: %w", err)
	}
	defer rows.Close()

	refs := map[string]map[int][]int{}
	for rows.Next() {
		var kind string
		var ownerIdx, adminIdx int
		if err := rows.Scan(&kind, &ownerIdx, &adminIdx); err != nil {
			return fmt.Errorf("scanning admin_ref: %w", err)
		}
		if refs[kind] == nil {
			refs[kind] = map[int][]int{}
		}
		refs[kind][ownerIdx] = append(refs[kind][ownerIdx], adminIdx)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	b.AttachAdminRefs(refs)
	return nil
}

func loadJourneyPatterns(db *sql.DB, b *snapshot.Builder) (map[int]int, error) {
	rows, err := db.Query("SELECT idx FROM journey_pattern ORDER BY idx")
	if err != nil {
		return nil, fmt.Errorf("loading journey_pattern: %w", err)
	}
	defer rows.Close()

	remap := map[int]int{}
	for rows.Next() {
		var oldIdx int
		if err := rows.Scan(&oldIdx); err != nil {
			return nil, fmt.Errorf("scanning journey_pattern: %w", err)
		}
		remap[oldIdx] = b.AddJourneyPattern()
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	pointRows, err := db.Query("SELECT journey_pattern, stop_point_idx FROM journey_pattern_point ORDER BY journey_pattern, point_order")
	if err != nil {
		return nil, fmt.Errorf("loading journey_pattern_point: %w", err)
	}
	defer pointRows.Close()

	for pointRows.Next() {
		var oldJP, stopPointIdx int
		if err := pointRows.Scan(&oldJP, &stopPointIdx); err != nil {
			return nil, fmt.Errorf("scanning journey_pattern_point: %w", err)
		}
		b.AddJourneyPatternPoint(remap[oldJP], stopPointIdx)
	}
	return remap, pointRows.Err()
}

func loadVehicleJourneys(db *sql.DB, b *snapshot.Builder) (map[int]int, error) {
	rows, err := db.Query("SELECT idx, properties FROM vehicle_journey ORDER BY idx")
	if err != nil {
		return nil, fmt.Errorf("loading vehicle_journey: %w", err)
	}
	defer rows.Close()

	remap := map[int]int{}
	for rows.Next() {
		var oldIdx int
		var props int64
		if err := rows.Scan(&oldIdx, &props); err != nil {
			return nil, fmt.Errorf("scanning vehicle_journey: %w", err)
		}
		vj := &model.VehicleJourney{Properties: decodeVehicle(props)}
		remap[oldIdx] = b.AddVehicleJourney(vj)
	}
	return remap, rows.Err()
}

// loadStopTimes groups stop_time rows back into per-(journey pattern,
// vehicle journey) trips and replays them through AddTrip, since the
// builder only accepts whole trips at a time.
func loadStopTimes(db *sql.DB, b *snapshot.Builder, jpRemap, vjRemap map[int]int) error {
	rows, err := db.Query(`SELECT vehicle_journey_idx, journey_pattern_point_idx, departure_time, arrival_time, flags, frequency_headway, frequency_start, frequency_end
		FROM stop_time ORDER BY vehicle_journey_idx, journey_pattern_point_idx`)
	if err != nil {
		return fmt.Errorf("loading stop_time: %w", err)
	}
	defer rows.Close()

	type tripKey struct{ jp, vj int }
	trips := map[tripKey][]*model.StopTime{}
	tripOrder := []tripKey{}

	for rows.Next() {
		var oldVJ, jpp int
		var flags int64
		st := &model.StopTime{ArrivalValidityPattern: model.NewValidityPattern(0), DepartureValidityPattern: model.NewValidityPattern(0)}
		if err := rows.Scan(&oldVJ, &jpp, &st.DepartureTime, &st.ArrivalTime, &flags, &st.FrequencyHeadway, &st.FrequencyStart, &st.FrequencyEnd); err != nil {
			return fmt.Errorf("scanning stop_time: %w", err)
		}
		st.Flags = model.StopTimeFlags(flags)

		jpIdx := b.JourneyPatternOf(jpp)
		key := tripKey{jp: jpIdx, vj: vjRemap[oldVJ]}
		if _, ok := trips[key]; !ok {
			tripOrder = append(tripOrder, key)
		}
		trips[key] = append(trips[key], st)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	sort.Slice(tripOrder, func(i, j int) bool {
		if tripOrder[i].jp != tripOrder[j].jp {
			return tripOrder[i].jp < tripOrder[j].jp
		}
		return tripOrder[i].vj < tripOrder[j].vj
	})

	for _, key := range tripOrder {
		if err := b.AddTrip(key.jp, key.vj, trips[key]); err != nil {
			return fmt.Errorf("replaying trip jp=%d vj=%d: %w", key.jp, key.vj, err)
		}
	}
	return nil
}

func decodeAccessibility(bits int64) model.AccessibilityProperties {
	return model.AccessibilityProperties{
		Wheelchair: bits&1 != 0,
		Escalator:  bits&2 != 0,
		TTS:        bits&4 != 0,
		Elevator:   bits&8 != 0,
		Audible:    bits&16 != 0,
		Visual:     bits&32 != 0,
	}
}

func decodeVehicle(bits int64) model.VehicleProperties {
	return model.VehicleProperties{
		Wheelchair:     bits&1 != 0,
		Bike:           bits&2 != 0,
		AirConditioned: bits&4 != 0,
	}
}

// Load reloads this store's content through the shared Load function.
func (s *SQLiteStore) Load() (*snapshot.Data, error) {
	return Load(s.db)
}
