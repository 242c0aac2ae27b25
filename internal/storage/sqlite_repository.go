package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteTimeLayout = time.RFC3339Nano

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) UpsertMedication(ctx context.Context, in MedicationRecord) error {
	times, err := marshalStrings(in.Times)
	if err != nil {
		return err
	}
	days, err := marshalStrings(in.Days)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO medications (id, user_id, name, dosage, times, days, timezone, is_active, last_taken, provenance, sync_state, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			user_id = excluded.user_id,
			name = excluded.name,
			dosage = excluded.dosage,
			times = excluded.times,
			days = excluded.days,
			timezone = excluded.timezone,
			is_active = excluded.is_active,
			last_taken = excluded.last_taken,
			provenance = excluded.provenance,
			sync_state = excluded.sync_state`,
		in.ID, in.UserID, in.Name, in.Dosage, times, days, in.Timezone,
		boolInt(in.IsActive), nullTime(in.LastTaken), in.Provenance, in.SyncState, mustTime(in.CreatedAt),
	)
	return err
}

func (r *SQLiteRepository) GetMedication(ctx context.Context, id string) (MedicationRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, dosage, times, days, timezone, is_active, last_taken, provenance, sync_state, created_at
		FROM medications WHERE id = ?`, id)
	item, err := scanMedication(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return MedicationRecord{}, ErrNotFound
		}
		return MedicationRecord{}, err
	}
	return item, nil
}

func (r *SQLiteRepository) DeleteMedication(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM medications WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListMedications(ctx context.Context, filter MedicationListFilter) ([]MedicationRecord, error) {
	query := `SELECT id, user_id, name, dosage, times, days, timezone, is_active, last_taken, provenance, sync_state, created_at FROM medications`
	clauses := make([]string, 0, 2)
	args := make([]any, 0, 4)
	if filter.SyncState != "" {
		clauses = append(clauses, "sync_state = ?")
		args = append(args, filter.SyncState)
	}
	if filter.ActiveOnly {
		clauses = append(clauses, "is_active = 1")
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY created_at ASC, id ASC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]MedicationRecord, 0)
	for rows.Next() {
		item, scanErr := scanMedication(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) AppendDoseLog(ctx context.Context, in DoseLogRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO dose_logs (id, medication_name, status, confirmation_method, timestamp)
		VALUES (?, ?, ?, ?, ?)`,
		in.ID, in.MedicationName, in.Status, in.ConfirmationMethod, mustTime(in.Timestamp),
	)
	return err
}

func (r *SQLiteRepository) ListDoseLogs(ctx context.Context, filter DoseLogFilter) ([]DoseLogRecord, error) {
	query := `SELECT id, medication_name, status, confirmation_method, timestamp FROM dose_logs`
	clauses := make([]string, 0, 3)
	args := make([]any, 0, 5)
	if filter.MedicationName != "" {
		clauses = append(clauses, "medication_name = ?")
		args = append(args, filter.MedicationName)
	}
	if filter.Status != "" {
		clauses = append(clauses, "status = ?")
		args = append(args, filter.Status)
	}
	if filter.Day != "" {
		clauses = append(clauses, "substr(timestamp, 1, 10) = ?")
		args = append(args, filter.Day)
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY timestamp DESC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]DoseLogRecord, 0)
	for rows.Next() {
		item, scanErr := scanDoseLog(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) AppendMealLog(ctx context.Context, in MealLogRecord) error {
	items, err := marshalStrings(in.Items)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO meal_logs (id, meal_type, items, completion_level, logged_at)
		VALUES (?, ?, ?, ?, ?)`,
		in.ID, in.MealType, items, in.CompletionLevel, mustTime(in.LoggedAt),
	)
	return err
}

func (r *SQLiteRepository) ListMealLogs(ctx context.Context, filter DayFilter) ([]MealLogRecord, error) {
	query := `SELECT id, meal_type, items, completion_level, logged_at FROM meal_logs`
	args := make([]any, 0, 3)
	if filter.Day != "" {
		query += ` WHERE substr(logged_at, 1, 10) = ?`
		args = append(args, filter.Day)
	}
	query += ` ORDER BY logged_at ASC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]MealLogRecord, 0)
	for rows.Next() {
		var item MealLogRecord
		var items string
		var logged string
		if err := rows.Scan(&item.ID, &item.MealType, &items, &item.CompletionLevel, &logged); err != nil {
			return nil, err
		}
		if item.Items, err = unmarshalStrings(items); err != nil {
			return nil, err
		}
		if item.LoggedAt, err = parseRequiredTime(logged); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) AppendHydration(ctx context.Context, in HydrationEvent) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO hydration_events (id, glasses, logged_at)
		VALUES (?, ?, ?)`,
		in.ID, in.Glasses, mustTime(in.LoggedAt),
	)
	return err
}

func (r *SQLiteRepository) HydrationGlassesOn(ctx context.Context, day string) (int, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(glasses), 0) FROM hydration_events WHERE substr(logged_at, 1, 10) = ?`, day)
	var total int
	if err := row.Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *SQLiteRepository) AppendActivity(ctx context.Context, in ActivityRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO activity_logs (id, activity_type, notes, logged_at)
		VALUES (?, ?, ?, ?)`,
		in.ID, in.ActivityType, in.Notes, mustTime(in.LoggedAt),
	)
	return err
}

func (r *SQLiteRepository) ListActivities(ctx context.Context, filter DayFilter) ([]ActivityRecord, error) {
	query := `SELECT id, activity_type, notes, logged_at FROM activity_logs`
	args := make([]any, 0, 3)
	if filter.Day != "" {
		query += ` WHERE substr(logged_at, 1, 10) = ?`
		args = append(args, filter.Day)
	}
	query += ` ORDER BY logged_at ASC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ActivityRecord, 0)
	for rows.Next() {
		var item ActivityRecord
		var logged string
		if err := rows.Scan(&item.ID, &item.ActivityType, &item.Notes, &logged); err != nil {
			return nil, err
		}
		var parseErr error
		if item.LoggedAt, parseErr = parseRequiredTime(logged); parseErr != nil {
			return nil, parseErr
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CreateAppointment(ctx context.Context, in AppointmentRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO appointments (id, title, appointment_type, location, date_time, notes)
		VALUES (?, ?, ?, ?, ?, ?)`,
		in.ID, in.Title, in.AppointmentType, in.Location, mustTime(in.DateTime), in.Notes,
	)
	return err
}

func (r *SQLiteRepository) ListAppointments(ctx context.Context, filter DayFilter) ([]AppointmentRecord, error) {
	query := `SELECT id, title, appointment_type, location, date_time, notes FROM appointments`
	args := make([]any, 0, 3)
	if filter.Day != "" {
		query += ` WHERE substr(date_time, 1, 10) = ?`
		args = append(args, filter.Day)
	}
	query += ` ORDER BY date_time ASC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]AppointmentRecord, 0)
	for rows.Next() {
		var item AppointmentRecord
		var when string
		if err := rows.Scan(&item.ID, &item.Title, &item.AppointmentType, &item.Location, &when, &item.Notes); err != nil {
			return nil, err
		}
		var parseErr error
		if item.DateTime, parseErr = parseRequiredTime(when); parseErr != nil {
			return nil, parseErr
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func marshalStrings(v []string) (string, error) {
	if v == nil {
		v = []string{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("storage: marshal string list: %w", err)
	}
	return string(b), nil
}

func unmarshalStrings(raw string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("storage: unmarshal string list: %w", err)
	}
	return out, nil
}

func nullTime(v *time.Time) any {
	if v == nil {
		return nil
	}
	return v.UTC().Format(sqliteTimeLayout)
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func parseNullableTime(v sql.NullString) (*time.Time, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	tm, err := time.Parse(sqliteTimeLayout, v.String)
	if err != nil {
		return nil, err
	}
	return &tm, nil
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func applyPagination(args *[]any, limit, offset int) string {
	sql := ""
	if limit > 0 {
		sql += " LIMIT ?"
		*args = append(*args, limit)
	}
	if offset > 0 {
		sql += " OFFSET ?"
		*args = append(*args, offset)
	}
	return sql
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMedication(s scanner) (MedicationRecord, error) {
	var out MedicationRecord
	var times string
	var days string
	var active int
	var lastTaken sql.NullString
	var created string
	if err := s.Scan(&out.ID, &out.UserID, &out.Name, &out.Dosage, &times, &days, &out.Timezone, &active, &lastTaken, &out.Provenance, &out.SyncState, &created); err != nil {
		return MedicationRecord{}, err
	}
	var err error
	if out.Times, err = unmarshalStrings(times); err != nil {
		return MedicationRecord{}, err
	}
	if out.Days, err = unmarshalStrings(days); err != nil {
		return MedicationRecord{}, err
	}
	out.IsActive = active != 0
	if out.LastTaken, err = parseNullableTime(lastTaken); err != nil {
		return MedicationRecord{}, err
	}
	if out.CreatedAt, err = parseRequiredTime(created); err != nil {
		return MedicationRecord{}, err
	}
	return out, nil
}

func scanDoseLog(s scanner) (DoseLogRecord, error) {
	var out DoseLogRecord
	var ts string
	if err := s.Scan(&out.ID, &out.MedicationName, &out.Status, &out.ConfirmationMethod, &ts); err != nil {
		return DoseLogRecord{}, err
	}
	var err error
	if out.Timestamp, err = parseRequiredTime(ts); err != nil {
		return DoseLogRecord{}, err
	}
	return out, nil
}
