package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/mmbalbas1132/Task-Management-System/tasks/core"
)

const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite3"
)

type DB struct {
	log    *slog.Logger
	conn   *sqlx.DB
	driver string
	now    func() time.Time
}

// New connects to address using driver ("pgx" or "sqlite3").
func New(log *slog.Logger, driver, address string) (*DB, error) {
	switch driver {
	case DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}

	if driver == DriverSQLite && !strings.Contains(address, "_foreign_keys") {
		address += sep(address) + "_foreign_keys=on"
	}

	conn, err := sqlx.Connect(driver, address)
	if err != nil {
		log.Error("connection problem", "driver", driver, "error", err)
		return nil, err
	}
	if driver == DriverSQLite {
		// one writer; also keeps :memory: databases on a single connection
		conn.SetMaxOpenConns(1)
	}

	return &DB{
		log:    log,
		conn:   conn,
		driver: driver,
		now:    func() time.Time { return time.Now().UTC() },
	}, nil
}

func sep(dsn string) string {
	if strings.Contains(dsn, "?") {
		return "&"
	}
	return "?"
}

func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// q rewrites ?-placeholders for the connected driver.
func (db *DB) q(query string) string {
	return db.conn.Rebind(query)
}

func (db *DB) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.conn.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// Categories

func (db *DB) GetCategory(ctx context.Context, id int64) (core.Category, error) {
	const q = `SELECT id, name, created_at FROM categories WHERE id = ?`

	var c core.Category
	if err := db.conn.GetContext(ctx, &c, db.q(q), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Category{}, core.ErrCategoryNotFound
		}
		return core.Category{}, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

func (db *DB) ListCategories(ctx context.Context) ([]core.Category, error) {
	const q = `SELECT id, name, created_at FROM categories ORDER BY lower(name) ASC, id ASC`

	out := []core.Category{}
	if err := db.conn.SelectContext(ctx, &out, q); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return out, nil
}

// Tasks

const taskColumns = `id, user_id, category_id, title, COALESCE(description, '') AS description, priority, due_date, created_at, updated_at`

func (db *DB) CreateTask(ctx context.Context, t core.Task, tagIDs []int64) (core.Task, error) {
	t.Title = strings.TrimSpace(t.Title)
	if t.UserID <= 0 || t.Title == "" {
		return core.Task{}, core.ErrTaskInvalidArgs
	}

	const q = `
		INSERT INTO tasks(user_id, category_id, title, description, priority, due_date, created_at, updated_at)
		VALUES (?, ?, ?, NULLIF(?, ''), ?, ?, ?, ?)
		RETURNING id;
	`

	now := db.now()

	var out core.Task
	err := db.withTx(ctx, func(tx *sqlx.Tx) error {
		var id int64
		if err := tx.QueryRowxContext(ctx, db.q(q),
			t.UserID, t.CategoryID, t.Title, strings.TrimSpace(t.Description), string(t.Priority), t.DueDate, now, now,
		).Scan(&id); err != nil {
			return mapWriteErr("insert task", err)
		}

		if err := db.replaceTaskTags(ctx, tx, id, tagIDs); err != nil {
			return err
		}

		var err error
		out, err = db.getTask(ctx, tx, id)
		return err
	})
	if err != nil {
		return core.Task{}, err
	}

	db.log.Debug("task created", "id", out.ID, "user_id", out.UserID, "tags", len(out.Tags))
	return out, nil
}

func (db *DB) GetTask(ctx context.Context, id int64) (core.Task, error) {
	return db.getTask(ctx, db.conn, id)
}

func (db *DB) getTask(ctx context.Context, ext sqlx.QueryerContext, id int64) (core.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`

	var t core.Task
	if err := sqlx.GetContext(ctx, ext, &t, db.q(query), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Task{}, core.ErrTaskNotFound
		}
		return core.Task{}, fmt.Errorf("get task: %w", err)
	}

	tags, err := db.tagsByTask(ctx, ext, []int64{id})
	if err != nil {
		return core.Task{}, err
	}
	t.Tags = tags[id]
	if t.Tags == nil {
		t.Tags = []core.Tag{}
	}
	return t, nil
}

func (db *DB) ListTasks(ctx context.Context, f core.ListTasksFilter) ([]core.Task, error) {
	var (
		sb   strings.Builder
		args []any
	)

	sb.WriteString(`SELECT ` + taskColumns + ` FROM tasks WHERE user_id = ?`)
	args = append(args, f.UserID)

	if f.CategoryID != nil {
		sb.WriteString(" AND category_id = ?")
		args = append(args, *f.CategoryID)
	}
	if f.Priority != nil {
		sb.WriteString(" AND priority = ?")
		args = append(args, string(*f.Priority))
	}

	sb.WriteString(" ORDER BY id ASC")

	out := []core.Task{}
	if err := db.conn.SelectContext(ctx, &out, db.q(sb.String()), args...); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	if len(out) == 0 {
		return out, nil
	}

	ids := make([]int64, 0, len(out))
	for _, t := range out {
		ids = append(ids, t.ID)
	}
	tags, err := db.tagsByTask(ctx, db.conn, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Tags = tags[out[i].ID]
		if out[i].Tags == nil {
			out[i].Tags = []core.Tag{}
		}
	}
	return out, nil
}

func (db *DB) UpdateTask(ctx context.Context, t core.Task, tagIDs []int64) (core.Task, error) {
	t.Title = strings.TrimSpace(t.Title)
	if t.ID <= 0 || t.Title == "" {
		return core.Task{}, core.ErrTaskInvalidArgs
	}

	const q = `
		UPDATE tasks
		SET category_id = ?,
		    title = ?,
		    description = NULLIF(?, ''),
		    priority = ?,
		    due_date = ?,
		    updated_at = ?
		WHERE id = ?;
	`

	var out core.Task
	err := db.withTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, db.q(q),
			t.CategoryID, t.Title, strings.TrimSpace(t.Description), string(t.Priority), t.DueDate, db.now(), t.ID,
		)
		if err != nil {
			return mapWriteErr("update task", err)
		}
		if aff, _ := res.RowsAffected(); aff == 0 {
			return core.ErrTaskNotFound
		}

		if err := db.replaceTaskTags(ctx, tx, t.ID, tagIDs); err != nil {
			return err
		}

		out, err = db.getTask(ctx, tx, t.ID)
		return err
	})
	if err != nil {
		return core.Task{}, err
	}

	db.log.Debug("task updated", "id", out.ID, "tags", len(out.Tags))
	return out, nil
}

func (db *DB) DeleteTask(ctx context.Context, id int64) error {
	return db.withTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, db.q(`DELETE FROM task_tags WHERE task_id = ?`), id); err != nil {
			return fmt.Errorf("delete task tags: %w", err)
		}

		res, err := tx.ExecContext(ctx, db.q(`DELETE FROM tasks WHERE id = ?`), id)
		if err != nil {
			return fmt.Errorf("delete task: %w", err)
		}
		if aff, _ := res.RowsAffected(); aff == 0 {
			return core.ErrTaskNotFound
		}
		return nil
	})
}

var _ core.DB = (*DB)(nil)
