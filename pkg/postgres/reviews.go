package postgres

import (
	"context"
	"fmt"
)

// GetHospitalRatings returns average review ratings keyed by hospital id
func (db *DB) GetHospitalRatings(ctx context.Context) (map[string]float64, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT hospital_id, AVG(rating)::float8
		FROM hospital_reviews
		GROUP BY hospital_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query hospital ratings: %w", err)
	}
	defer rows.Close()

	ratings := make(map[string]float64)
	for rows.Next() {
		var hospitalID string
		var avg float64
		if err := rows.Scan(&hospitalID, &avg); err != nil {
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}
		ratings[hospitalID] = avg
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ratings: %w", err)
	}
	return ratings, nil
}
