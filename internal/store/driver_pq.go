//go:build pq

package store

// lib/pq registers the "postgres" driver under the pq build tag, as an
// alternate to pgx's stdlib adapter (SPEC_FULL.md §10.5) for deployments
// that already standardize on lib/pq.
import _ "github.com/lib/pq"
