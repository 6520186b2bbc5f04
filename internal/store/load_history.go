package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dvmian56/dashboard-control-anglo/internal/model"
	"github.com/Dvmian56/dashboard-control-anglo/internal/report"
)

const timeLayout = time.RFC3339Nano

// LoadEntry 一次报表加载记录
type LoadEntry struct {
	ID         int64            `json:"id"`
	Kind       model.ReportKind `json:"kind"`
	Keyword    string           `json:"keyword"`
	Found      bool             `json:"found"`
	FileName   string           `json:"fileName,omitempty"`
	FilePath   string           `json:"filePath,omitempty"`
	FileSize   int64            `json:"fileSize,omitempty"`
	FileCTime  *time.Time       `json:"fileCreated,omitempty"`
	Candidates int              `json:"candidates"`
	Rows       int              `json:"rows"`
	Error      string           `json:"error,omitempty"`
	ElapsedMS  int64            `json:"elapsedMs"`
	LoadedAt   time.Time        `json:"loadedAt"`
}

// RecordLoad 写入一次加载记录；"未找到文件" 不记录错误文本
func (s *Store) RecordLoad(ctx context.Context, kind model.ReportKind, res report.Result) error {
	entry := LoadEntry{
		Kind:       kind,
		Keyword:    res.Keyword,
		Found:      res.Found,
		Candidates: res.Candidates,
		ElapsedMS:  res.Elapsed.Milliseconds(),
		LoadedAt:   time.Now(),
	}
	if res.File != nil {
		created := res.File.Created
		entry.FileName = res.File.Name
		entry.FilePath = res.File.Path
		entry.FileSize = res.File.Size
		entry.FileCTime = &created
	}
	if res.Report != nil {
		entry.Rows = res.Report.Len()
	}
	if res.Err != nil && !errors.Is(res.Err, report.ErrNoCandidate) {
		entry.Error = res.Err.Error()
	}

	if _, err := s.InsertLoad(ctx, entry); err != nil {
		return err
	}
	return s.maybePrune(ctx)
}

func (s *Store) maybePrune(ctx context.Context) error {
	if s.keep <= 0 {
		return nil
	}
	if s.inserts.Add(1)%s.pruneEvery != 0 {
		return nil
	}
	_, err := s.PruneLoads(ctx, s.keep)
	return err
}

// InsertLoad 插入加载记录，返回 ID
func (s *Store) InsertLoad(ctx context.Context, e LoadEntry) (int64, error) {
	ctime := ""
	if e.FileCTime != nil {
		ctime = e.FileCTime.UTC().Format(timeLayout)
	}
	found := 0
	if e.Found {
		found = 1
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO load_history (
			kind, keyword, found, file_name, file_path, file_size, file_ctime,
			candidates, row_count, error, elapsed_ms, loaded_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, string(e.Kind), e.Keyword, found, e.FileName, e.FilePath, e.FileSize, ctime,
		e.Candidates, e.Rows, e.Error, e.ElapsedMS, e.LoadedAt.UTC().Format(timeLayout))
	if err != nil {
		return 0, fmt.Errorf("failed to insert load history: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get load history id: %w", err)
	}
	return id, nil
}

// LoadQuery 加载历史查询条件
type LoadQuery struct {
	Kind  model.ReportKind // 为空表示全部
	Limit int
}

// ListLoads 按时间倒序列出加载记录
func (s *Store) ListLoads(ctx context.Context, q LoadQuery) ([]LoadEntry, error) {
	limit := q.Limit
	if limit <= 0 || limit > 500 {
		limit = 50
	}

	query := `
		SELECT id, kind, keyword, found, file_name, file_path, file_size, file_ctime,
		       candidates, row_count, error, elapsed_ms, loaded_at
		FROM load_history`
	args := []any{}
	if q.Kind != "" {
		query += " WHERE kind = ?"
		args = append(args, string(q.Kind))
	}
	query += " ORDER BY id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query load history failed: %w", err)
	}
	defer rows.Close()

	out := make([]LoadEntry, 0)
	for rows.Next() {
		var (
			e        LoadEntry
			kind     string
			found    int
			ctime    string
			loadedAt string
		)
		if err := rows.Scan(&e.ID, &kind, &e.Keyword, &found, &e.FileName, &e.FilePath, &e.FileSize, &ctime,
			&e.Candidates, &e.Rows, &e.Error, &e.ElapsedMS, &loadedAt); err != nil {
			return nil, fmt.Errorf("scan load history failed: %w", err)
		}
		e.Kind = model.ReportKind(kind)
		e.Found = found == 1
		if ctime != "" {
			if ts, err := time.Parse(timeLayout, ctime); err == nil {
				e.FileCTime = &ts
			}
		}
		if ts, err := time.Parse(timeLayout, loadedAt); err == nil {
			e.LoadedAt = ts
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate load history failed: %w", err)
	}
	return out, nil
}

// PruneLoads 只保留最近 keep 条记录
func (s *Store) PruneLoads(ctx context.Context, keep int) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM load_history
		WHERE id NOT IN (SELECT id FROM load_history ORDER BY id DESC LIMIT ?)
	`, keep)
	if err != nil {
		return 0, fmt.Errorf("prune load history failed: %w", err)
	}
	return res.RowsAffected()
}
