package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"SketchBoard/internal/element"
	"SketchBoard/internal/logging"
	"SketchBoard/internal/state"
	"SketchBoard/internal/store"

	_ "modernc.org/sqlite"
)

// Repository implements store.Store using SQLite
type Repository struct {
	db *sql.DB
}

var _ store.Store = (*Repository)(nil)

// New opens (creating if needed) the database at dbPath
func New(dbPath string) (*Repository, error) {
	dsn := "file:" + dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	repo := &Repository{db: db}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	logging.L().Debug("scene store opened", "path", dbPath)
	return repo, nil
}

func (r *Repository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS scenes (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		app_state JSON NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS elements (
		scene_id TEXT NOT NULL,
		id TEXT NOT NULL,
		position INTEGER NOT NULL,
		type TEXT NOT NULL,
		version INTEGER NOT NULL,
		is_deleted INTEGER NOT NULL DEFAULT 0,
		data JSON NOT NULL,
		PRIMARY KEY (scene_id, id),
		FOREIGN KEY (scene_id) REFERENCES scenes(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS files (
		scene_id TEXT NOT NULL,
		id TEXT NOT NULL,
		mime_type TEXT NOT NULL,
		data_url TEXT NOT NULL,
		created INTEGER NOT NULL,
		PRIMARY KEY (scene_id, id),
		FOREIGN KEY (scene_id) REFERENCES scenes(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_elements_type ON elements(scene_id, type);
	CREATE INDEX IF NOT EXISTS idx_elements_deleted ON elements(scene_id, is_deleted);
	`

	_, err := r.db.Exec(schema)
	return err
}

// SaveScene replaces the stored copy of a scene in one transaction
func (r *Repository) SaveScene(ctx context.Context, sc *store.Scene) error {
	appState, err := json.Marshal(sc.AppState)
	if err != nil {
		return fmt.Errorf("failed to marshal app state: %w", err)
	}
	updated := sc.Updated
	if updated.IsZero() {
		updated = time.Now()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO scenes (id, name, app_state, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, app_state = excluded.app_state, updated_at = excluded.updated_at
	`, sc.ID, sc.Name, string(appState), updated.UTC()); err != nil {
		return fmt.Errorf("failed to upsert scene: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM elements WHERE scene_id = ?`, sc.ID); err != nil {
		return fmt.Errorf("failed to clear elements: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM files WHERE scene_id = ?`, sc.ID); err != nil {
		return fmt.Errorf("failed to clear files: %w", err)
	}

	elStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO elements (scene_id, id, position, type, version, is_deleted, data)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare element insert: %w", err)
	}
	defer elStmt.Close()

	for i, el := range sc.Elements {
		data, err := element.Marshal(el)
		if err != nil {
			return fmt.Errorf("failed to marshal element %s: %w", el.Common().ID, err)
		}
		b := el.Common()
		if _, err := elStmt.ExecContext(ctx, sc.ID, b.ID, i, string(b.Type), b.Version, boolToInt(b.IsDeleted), string(data)); err != nil {
			return fmt.Errorf("failed to insert element %s: %w", b.ID, err)
		}
	}

	fileStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO files (scene_id, id, mime_type, data_url, created) VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare file insert: %w", err)
	}
	defer fileStmt.Close()

	for _, f := range sc.Files {
		if _, err := fileStmt.ExecContext(ctx, sc.ID, f.ID, f.MIMEType, f.DataURL, f.Created); err != nil {
			return fmt.Errorf("failed to insert file %s: %w", f.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit scene: %w", err)
	}
	logging.L().Debug("scene saved", "id", sc.ID, "elements", len(sc.Elements), "files", len(sc.Files))
	return nil
}

// LoadScene reads one scene with its elements in stored order
func (r *Repository) LoadScene(ctx context.Context, id string) (*store.Scene, error) {
	sc := &store.Scene{ID: id}

	var appState string
	err := r.db.QueryRowContext(ctx, `
		SELECT name, app_state, updated_at FROM scenes WHERE id = ?
	`, id).Scan(&sc.Name, &appState, &sc.Updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("load scene %s: %w", id, store.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query scene: %w", err)
	}

	sc.AppState = state.DefaultAppState()
	if err := json.Unmarshal([]byte(appState), &sc.AppState); err != nil {
		return nil, fmt.Errorf("failed to unmarshal app state: %w", err)
	}

	if sc.Elements, err = r.loadElements(ctx, id); err != nil {
		return nil, err
	}
	if sc.Files, err = r.loadFiles(ctx, id); err != nil {
		return nil, err
	}
	return sc, nil
}

func (r *Repository) loadElements(ctx context.Context, sceneID string) ([]element.Element, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT data FROM elements WHERE scene_id = ? ORDER BY position
	`, sceneID)
	if err != nil {
		return nil, fmt.Errorf("failed to query elements: %w", err)
	}
	defer rows.Close()

	els := make([]element.Element, 0)
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan element: %w", err)
		}
		el, err := element.Unmarshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to unmarshal element: %w", err)
		}
		els = append(els, el)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating elements: %w", err)
	}
	return els, nil
}

func (r *Repository) loadFiles(ctx context.Context, sceneID string) ([]state.BinaryFile, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, mime_type, data_url, created FROM files WHERE scene_id = ? ORDER BY id
	`, sceneID)
	if err != nil {
		return nil, fmt.Errorf("failed to query files: %w", err)
	}
	defer rows.Close()

	var out []state.BinaryFile
	for rows.Next() {
		var f state.BinaryFile
		if err := rows.Scan(&f.ID, &f.MIMEType, &f.DataURL, &f.Created); err != nil {
			return nil, fmt.Errorf("failed to scan file: %w", err)
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating files: %w", err)
	}
	return out, nil
}

// ListScenes returns every stored scene, most recently updated first
func (r *Repository) ListScenes(ctx context.Context) ([]store.SceneInfo, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT s.id, s.name, s.updated_at,
			(SELECT COUNT(*) FROM elements e WHERE e.scene_id = s.id AND e.is_deleted = 0)
		FROM scenes s
		ORDER BY s.updated_at DESC, s.id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query scenes: %w", err)
	}
	defer rows.Close()

	var out []store.SceneInfo
	for rows.Next() {
		var info store.SceneInfo
		if err := rows.Scan(&info.ID, &info.Name, &info.Updated, &info.Elements); err != nil {
			return nil, fmt.Errorf("failed to scan scene: %w", err)
		}
		out = append(out, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scenes: %w", err)
	}
	return out, nil
}

// DeleteScene removes a scene and everything stored with it
func (r *Repository) DeleteScene(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM scenes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete scene: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("delete scene %s: %w", id, store.ErrNotFound)
	}
	return nil
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
