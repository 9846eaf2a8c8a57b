package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/mmbalbas1132/Task-Management-System/tasks/core"
)

func (db *DB) ListTags(ctx context.Context) ([]core.Tag, error) {
	const q = `SELECT id, name, created_at FROM tags ORDER BY lower(name) ASC, id ASC`

	out := []core.Tag{}
	if err := db.conn.SelectContext(ctx, &out, q); err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return out, nil
}

// FindTags returns the tags among ids that exist, ordered by id.
func (db *DB) FindTags(ctx context.Context, ids []int64) ([]core.Tag, error) {
	out := []core.Tag{}
	if len(ids) == 0 {
		return out, nil
	}

	q, args, err := sqlx.In(`SELECT id, name, created_at FROM tags WHERE id IN (?) ORDER BY id`, ids)
	if err != nil {
		return nil, fmt.Errorf("find tags: %w", err)
	}
	if err := db.conn.SelectContext(ctx, &out, db.q(q), args...); err != nil {
		return nil, fmt.Errorf("find tags: %w", err)
	}
	return out, nil
}

type taskTagRow struct {
	TaskID int64 `db:"task_id"`
	core.Tag
}

// tagsByTask loads the tag sets of the given tasks in one query.
func (db *DB) tagsByTask(ctx context.Context, ext sqlx.QueryerContext, taskIDs []int64) (map[int64][]core.Tag, error) {
	q, args, err := sqlx.In(`
		SELECT tt.task_id, t.id, t.name, t.created_at
		FROM task_tags tt
		JOIN tags t ON t.id = tt.tag_id
		WHERE tt.task_id IN (?)
		ORDER BY tt.task_id, t.id
	`, taskIDs)
	if err != nil {
		return nil, fmt.Errorf("task tags: %w", err)
	}

	var rows []taskTagRow
	if err := sqlx.SelectContext(ctx, ext, &rows, db.q(q), args...); err != nil {
		return nil, fmt.Errorf("task tags: %w", err)
	}

	out := make(map[int64][]core.Tag, len(taskIDs))
	for _, r := range rows {
		out[r.TaskID] = append(out[r.TaskID], r.Tag)
	}
	return out, nil
}

// replaceTaskTags makes tagIDs the whole tag set of the task.
func (db *DB) replaceTaskTags(ctx context.Context, tx *sqlx.Tx, taskID int64, tagIDs []int64) error {
	if _, err := tx.ExecContext(ctx, db.q(`DELETE FROM task_tags WHERE task_id = ?`), taskID); err != nil {
		return fmt.Errorf("clear task tags: %w", err)
	}

	seen := make(map[int64]struct{}, len(tagIDs))
	for _, tagID := range tagIDs {
		if _, ok := seen[tagID]; ok {
			continue
		}
		seen[tagID] = struct{}{}

		if _, err := tx.ExecContext(ctx, db.q(`INSERT INTO task_tags(task_id, tag_id) VALUES (?, ?)`), taskID, tagID); err != nil {
			return mapWriteErr("attach tag", err)
		}
	}
	return nil
}
