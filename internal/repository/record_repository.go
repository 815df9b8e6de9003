package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/edgarsv/passvault/internal/model"
)

// RecordRepo encapsulates all database queries related to records. Every
// read and write is filtered by owner id; there is no method that can reach
// another user's records.
type RecordRepo struct {
	db *sql.DB
}

// NewRecordRepo constructs a RecordRepo with the provided DB handle.
func NewRecordRepo(db *sql.DB) *RecordRepo {
	return &RecordRepo{db: db}
}

// Create persists a record. Id and creation time are assigned here, at
// persistence time, and the stored row is returned.
func (r *RecordRepo) Create(ctx context.Context, rec model.Record) (model.Record, error) {
	rec.ID = uuid.NewString()
	rec.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO records (id, type, name, id_number, secret, notes, owner_id, created_at) VALUES (?,?,?,?,?,?,?,?)",
		rec.ID, rec.Type, rec.Name, rec.IDNumber, rec.Secret, rec.Notes, rec.OwnerID, rec.CreatedAt)
	if err != nil {
		return model.Record{}, err
	}
	return rec, nil
}

// ListByOwner returns all records owned by ownerID, most recent first. An
// owner with no records gets an empty, non-nil slice.
func (r *RecordRepo) ListByOwner(ctx context.Context, ownerID string) ([]model.Record, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, type, name, id_number, secret, notes, owner_id, created_at FROM records WHERE owner_id=? ORDER BY created_at DESC",
		ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recs := []model.Record{}
	for rows.Next() {
		var rec model.Record
		if err := rows.Scan(&rec.ID, &rec.Type, &rec.Name, &rec.IDNumber, &rec.Secret, &rec.Notes, &rec.OwnerID, &rec.CreatedAt); err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return recs, nil
}

// DeleteByIDAndOwner deletes the record only when it exists AND belongs to
// ownerID. Both failure cases collapse into ErrRecordNotFound so a caller
// cannot probe for records owned by someone else.
func (r *RecordRepo) DeleteByIDAndOwner(ctx context.Context, id, ownerID string) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM records WHERE id=? AND owner_id=?", id, ownerID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRecordNotFound
	}
	return nil
}
