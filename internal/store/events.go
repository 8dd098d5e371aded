package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrNotFound is returned when a requested event does not exist.
var ErrNotFound = errors.New("event not found")

// LLMRequestEventData is the payload for an LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEventRecord is a stored LLM request event.
type LLMEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// Session event actions.
const (
	SessionStarted = "started"
	SessionEnded   = "ended"
)

// SessionEventData is the payload for a coaching session lifecycle event.
type SessionEventData struct {
	SessionID      string
	Action         string
	ProgramID      string
	SkillLevel     string
	Mode           string
	QuestionsAsked int
	CreditsUsed    int
	DurationSecs   int
}

// SessionEventRecord is a stored session event.
type SessionEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	SessionEventData
}

// Upgrade prompt trigger points.
const (
	TriggerQuota  = "quota"
	TriggerGuided = "guided"
)

// UpgradeEventData is the payload for an upgrade prompt event.
type UpgradeEventData struct {
	SessionID string
	Trigger   string
	Accepted  bool
}

// QueryOpts limits event queries. A zero Limit means no limit.
type QueryOpts struct {
	Limit   int
	Purpose string
}

// UsageStat aggregates LLM usage per purpose.
type UsageStat struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsageStat aggregates LLM usage per model.
type ModelUsageStat struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// SessionStat aggregates coaching session usage.
type SessionStat struct {
	Sessions       int
	QuestionsAsked int
	CreditsUsed    int
	TotalSecs      int
}

// EventRepo appends and queries coaching events.
type EventRepo interface {
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error)
	GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error)
	LLMUsageByPurpose(ctx context.Context) ([]UsageStat, error)
	LLMUsageByModel(ctx context.Context) ([]ModelUsageStat, error)

	AppendSessionEvent(ctx context.Context, data SessionEventData) error
	QuerySessionEvents(ctx context.Context, opts QueryOpts) ([]SessionEventRecord, error)
	SessionStats(ctx context.Context) (*SessionStat, error)

	AppendUpgrade(ctx context.Context, data UpgradeEventData) error
	CountUpgrades(ctx context.Context) (accepted, shown int, err error)
}

// sequenceCounter hands out monotonically increasing sequence numbers
// shared across all event tables, so the combined log has a total order.
type sequenceCounter struct {
	mu   sync.Mutex
	next int64
}

func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	var max sql.NullInt64
	query := `
	SELECT MAX(seq) FROM (
		SELECT MAX(sequence) AS seq FROM llm_events
		UNION ALL
		SELECT MAX(sequence) AS seq FROM session_events
		UNION ALL
		SELECT MAX(sequence) AS seq FROM upgrade_events
	)`
	if err := db.QueryRow(query).Scan(&max); err != nil {
		return nil, err
	}
	return &sequenceCounter{next: max.Int64 + 1}, nil
}

func (c *sequenceCounter) take() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := c.next
	c.next++
	return n
}

type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO llm_events (
			sequence, timestamp, provider, model, purpose,
			input_tokens, output_tokens, latency_ms, success,
			error_message, request_body, response_body
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.seq.take(), time.Now().Unix(), data.Provider, data.Model, data.Purpose,
		data.InputTokens, data.OutputTokens, data.LatencyMs, boolToInt(data.Success),
		data.ErrorMessage, data.RequestBody, data.ResponseBody,
	)
	if err != nil {
		return fmt.Errorf("append llm event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error) {
	query := `
		SELECT id, sequence, timestamp, provider, model, purpose,
		       input_tokens, output_tokens, latency_ms, success,
		       error_message, request_body, response_body
		FROM llm_events`
	args := []any{}
	if opts.Purpose != "" {
		query += " WHERE purpose = ?"
		args = append(args, opts.Purpose)
	}
	query += " ORDER BY sequence DESC"
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query llm events: %w", err)
	}
	defer rows.Close()

	var events []LLMEventRecord
	for rows.Next() {
		rec, err := scanLLMEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *rec)
	}
	return events, rows.Err()
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, sequence, timestamp, provider, model, purpose,
		       input_tokens, output_tokens, latency_ms, success,
		       error_message, request_body, response_body
		FROM llm_events WHERE id = ?`, id)

	rec, err := scanLLMEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return rec, err
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]UsageStat, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT purpose, COUNT(*), SUM(input_tokens), SUM(output_tokens),
		       CAST(AVG(latency_ms) AS INTEGER)
		FROM llm_events
		GROUP BY purpose
		ORDER BY COUNT(*) DESC`)
	if err != nil {
		return nil, fmt.Errorf("usage by purpose: %w", err)
	}
	defer rows.Close()

	var stats []UsageStat
	for rows.Next() {
		var s UsageStat
		if err := rows.Scan(&s.Purpose, &s.Calls, &s.InputTokens, &s.OutputTokens, &s.AvgLatencyMs); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]ModelUsageStat, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT model, COUNT(*), SUM(input_tokens), SUM(output_tokens)
		FROM llm_events
		GROUP BY model
		ORDER BY COUNT(*) DESC`)
	if err != nil {
		return nil, fmt.Errorf("usage by model: %w", err)
	}
	defer rows.Close()

	var stats []ModelUsageStat
	for rows.Next() {
		var s ModelUsageStat
		if err := rows.Scan(&s.Model, &s.Calls, &s.InputTokens, &s.OutputTokens); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO session_events (
			sequence, timestamp, session_id, action, program_id,
			skill_level, mode, questions_asked, credits_used, duration_secs
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.seq.take(), time.Now().Unix(), data.SessionID, data.Action, data.ProgramID,
		data.SkillLevel, data.Mode, data.QuestionsAsked, data.CreditsUsed, data.DurationSecs,
	)
	if err != nil {
		return fmt.Errorf("append session event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySessionEvents(ctx context.Context, opts QueryOpts) ([]SessionEventRecord, error) {
	query := `
		SELECT id, sequence, timestamp, session_id, action, program_id,
		       skill_level, mode, questions_asked, credits_used, duration_secs
		FROM session_events
		ORDER BY sequence DESC`
	args := []any{}
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	defer rows.Close()

	var events []SessionEventRecord
	for rows.Next() {
		var rec SessionEventRecord
		var ts int64
		if err := rows.Scan(
			&rec.ID, &rec.Sequence, &ts, &rec.SessionID, &rec.Action, &rec.ProgramID,
			&rec.SkillLevel, &rec.Mode, &rec.QuestionsAsked, &rec.CreditsUsed, &rec.DurationSecs,
		); err != nil {
			return nil, err
		}
		rec.Timestamp = time.Unix(ts, 0)
		events = append(events, rec)
	}
	return events, rows.Err()
}

func (r *eventRepo) SessionStats(ctx context.Context) (*SessionStat, error) {
	var s SessionStat
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(questions_asked), 0),
		       COALESCE(SUM(credits_used), 0), COALESCE(SUM(duration_secs), 0)
		FROM session_events WHERE action = ?`, SessionEnded).Scan(
		&s.Sessions, &s.QuestionsAsked, &s.CreditsUsed, &s.TotalSecs)
	if err != nil {
		return nil, fmt.Errorf("session stats: %w", err)
	}
	return &s, nil
}

func (r *eventRepo) AppendUpgrade(ctx context.Context, data UpgradeEventData) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO upgrade_events (sequence, timestamp, session_id, trigger_point, accepted)
		VALUES (?, ?, ?, ?, ?)`,
		r.seq.take(), time.Now().Unix(), data.SessionID, data.Trigger, boolToInt(data.Accepted),
	)
	if err != nil {
		return fmt.Errorf("append upgrade event: %w", err)
	}
	return nil
}

func (r *eventRepo) CountUpgrades(ctx context.Context) (accepted, shown int, err error) {
	err = r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(accepted), 0), COUNT(*) FROM upgrade_events`).Scan(&accepted, &shown)
	if err != nil {
		return 0, 0, fmt.Errorf("count upgrades: %w", err)
	}
	return accepted, shown, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanLLMEvent(row rowScanner) (*LLMEventRecord, error) {
	var rec LLMEventRecord
	var ts int64
	var success int
	if err := row.Scan(
		&rec.ID, &rec.Sequence, &ts, &rec.Provider, &rec.Model, &rec.Purpose,
		&rec.InputTokens, &rec.OutputTokens, &rec.LatencyMs, &success,
		&rec.ErrorMessage, &rec.RequestBody, &rec.ResponseBody,
	); err != nil {
		return nil, err
	}
	rec.Timestamp = time.Unix(ts, 0)
	rec.Success = success != 0
	return &rec, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
