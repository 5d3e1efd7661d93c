package postgres

import "context"

func (r *sequenceRepository) Next(ctx context.Context, key string) (int64, error) {
	const query = `INSERT INTO order_sequences (day, value) VALUES ($1, 1)
                   ON CONFLICT (day) DO UPDATE SET value = order_sequences.value + 1
                   RETURNING value`
	var value int64
	if err := r.storage.pool.QueryRow(ctx, query, key).Scan(&value); err != nil {
		return 0, r.storage.storeError("next sequence", err)
	}
	return value, nil
}
