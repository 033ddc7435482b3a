// Package storage persists analysis results as append-only history in a
// SQLite database. Records are never updated or deleted; retrieval is a
// case-insensitive substring match on the domain, newest first.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/getstack/cmsdetect/pkg/detect"
)

const schema = `
CREATE TABLE IF NOT EXISTS detection_requests (
	id TEXT PRIMARY KEY,
	domain TEXT NOT NULL,
	cms_type TEXT,
	wordpress_version TEXT,
	theme TEXT,
	plugin_count TEXT,
	plugins TEXT,
	technologies TEXT,
	error TEXT,
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_detection_requests_domain ON detection_requests(domain);
`

// Record is one persisted analysis.
type Record struct {
	ID               string    `json:"id"`
	Domain           string    `json:"domain"`
	CMSType          string    `json:"cmsType,omitempty"`
	WordPressVersion string    `json:"wordPressVersion,omitempty"`
	Theme            string    `json:"theme,omitempty"`
	PluginCount      string    `json:"pluginCount,omitempty"`
	Plugins          string    `json:"plugins,omitempty"`      // JSON
	Technologies     string    `json:"technologies,omitempty"` // JSON
	Error            string    `json:"error,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

// Store wraps the history database. Safe for concurrent use.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the history database at path. ":memory:" works
// for tests.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create history schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save appends one analysis result and returns its generated id.
func (s *Store) Save(ctx context.Context, res *detect.AnalysisResult) (string, error) {
	id := uuid.NewString()

	plugins := ""
	if len(res.Plugins) > 0 {
		data, err := json.Marshal(res.Plugins)
		if err != nil {
			return "", fmt.Errorf("encode plugins: %w", err)
		}
		plugins = string(data)
	}
	technologies := ""
	if len(res.Technologies) > 0 {
		data, err := json.Marshal(res.Technologies)
		if err != nil {
			return "", fmt.Errorf("encode technologies: %w", err)
		}
		technologies = string(data)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO detection_requests
		(id, domain, cms_type, wordpress_version, theme, plugin_count, plugins, technologies, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, res.Domain, res.CMSType, res.WordPressVersion, res.Theme,
		res.PluginCount, plugins, technologies, res.Error, res.CreatedAt,
	)
	if err != nil {
		return "", fmt.Errorf("insert analysis: %w", err)
	}
	return id, nil
}

// ByDomain returns all records whose domain contains the query,
// case-insensitively, newest first.
func (s *Store) ByDomain(ctx context.Context, domain string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, domain, cms_type, wordpress_version, theme, plugin_count, plugins, technologies, error, created_at
		FROM detection_requests
		WHERE instr(lower(domain), lower(?)) > 0
		ORDER BY created_at DESC`,
		domain,
	)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(
			&r.ID, &r.Domain, &r.CMSType, &r.WordPressVersion, &r.Theme,
			&r.PluginCount, &r.Plugins, &r.Technologies, &r.Error, &r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
