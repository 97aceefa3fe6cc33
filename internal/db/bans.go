package db

import "context"

// Bans are kept in their own table rather than derived from submission rows,
// so a ban outlives the submission that created it. Deleting every record
// from a host does not un-ban the host.

// IsHostBanned reports whether a normalized host has an active ban.
// The empty host is never banned.
func (d *DB) IsHostBanned(ctx context.Context, host string) (bool, error) {
	if host == "" {
		return false, nil
	}
	var banned bool
	err := d.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM banned_hosts WHERE host = $1)`, host,
	).Scan(&banned)
	return banned, err
}

// BanHost records a ban for a normalized host. Banning an already-banned
// host is a no-op.
func (d *DB) BanHost(ctx context.Context, host string) error {
	if host == "" {
		return nil
	}
	_, err := d.Pool.Exec(ctx,
		`INSERT INTO banned_hosts (host) VALUES ($1) ON CONFLICT (host) DO NOTHING`, host)
	return err
}

// UnbanHostIfUnused removes a host's ban entry unless some other submission
// still holds it as banned_host. This keeps reversal semantics equivalent to
// the row-scan model: a host stays banned while any banned record remains.
func (d *DB) UnbanHostIfUnused(ctx context.Context, host string, excludeIDs []int64) error {
	if host == "" {
		return nil
	}
	query := `
		DELETE FROM banned_hosts
		WHERE host = $1
		  AND NOT EXISTS (
			SELECT 1 FROM submissions
			WHERE banned_host = $1 AND NOT (id = ANY($2))
		  )
	`
	_, err := d.Pool.Exec(ctx, query, host, excludeIDs)
	return err
}
