package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

// validID reports whether id can be a primary key. Malformed IDs are treated as
// missing rows instead of being sent to Postgres, which would reject the cast.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// queryIDs runs a single-column query and collects the results.
func queryIDs(ctx context.Context, db *sql.DB, query string, args ...any) ([]string, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}
