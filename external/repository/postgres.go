package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gparth254/meet-ai/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	agentColumns = `a.id, a.user_id, a.name, a.instructions,
		(SELECT COUNT(*) FROM meetings mc WHERE mc.agent_id = a.id) AS meeting_count,
		a.created_at, a.updated_at`
	meetingColumns = `id, user_id, agent_id, name, status, started_at, ended_at,
		transcript_url, recording_url, created_at, updated_at`
	meetingJoinColumns = `m.id, m.user_id, m.agent_id, m.name, m.status, m.started_at, m.ended_at,
		m.transcript_url, m.recording_url, m.created_at, m.updated_at,
		a.id, a.user_id, a.name, a.instructions, a.created_at, a.updated_at`
	meetingJoinFrom = `FROM meetings m JOIN agents a ON a.id = m.agent_id`
)

type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) repository.Repository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*repository.User, error) {
	var u repository.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Image, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func scanAgent(row rowScanner) (*repository.Agent, error) {
	var a repository.Agent
	if err := row.Scan(&a.ID, &a.UserID, &a.Name, &a.Instructions, &a.MeetingCount, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

func scanMeeting(row rowScanner) (*repository.Meeting, error) {
	var m repository.Meeting
	var status string
	err := row.Scan(&m.ID, &m.UserID, &m.AgentID, &m.Name, &status, &m.StartedAt, &m.EndedAt,
		&m.TranscriptURL, &m.RecordingURL, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	m.Status = repository.MeetingStatus(status)
	return &m, nil
}

func scanMeetingWithAgent(row rowScanner) (*repository.MeetingWithAgent, error) {
	var mw repository.MeetingWithAgent
	var status string
	err := row.Scan(&mw.ID, &mw.UserID, &mw.AgentID, &mw.Name, &status, &mw.StartedAt, &mw.EndedAt,
		&mw.TranscriptURL, &mw.RecordingURL, &mw.CreatedAt, &mw.UpdatedAt,
		&mw.Agent.ID, &mw.Agent.UserID, &mw.Agent.Name, &mw.Agent.Instructions, &mw.Agent.CreatedAt, &mw.Agent.UpdatedAt)
	if err != nil {
		return nil, err
	}
	mw.Status = repository.MeetingStatus(status)
	return &mw, nil
}

// noRows maps pgx.ErrNoRows to the (nil, nil) not-found convention.
func noRows[T any](v *T, err error) (*T, error) {
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return v, nil
}

func (r *PostgresRepository) GetUserBySessionToken(ctx context.Context, token string, now time.Time) (*repository.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT u.id, u.name, u.email, u.image, u.created_at
		 FROM auth_sessions s JOIN users u ON u.id = s.user_id
		 WHERE s.token = $1 AND s.expires_at > $2`,
		token, now)
	return noRows(scanUser(row))
}

func (r *PostgresRepository) ListUsersByIDs(ctx context.Context, ids []string) ([]repository.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, email, image, created_at FROM users WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []repository.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *u)
	}
	return list, rows.Err()
}

func (r *PostgresRepository) CreateAgent(ctx context.Context, input repository.CreateAgentInput) (*repository.Agent, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO agents AS a (id, user_id, name, instructions)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+agentColumns,
		input.ID, input.UserID, input.Name, input.Instructions)
	return scanAgent(row)
}

func (r *PostgresRepository) GetAgent(ctx context.Context, userID, id string) (*repository.Agent, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+agentColumns+` FROM agents a WHERE a.id = $1 AND a.user_id = $2`,
		id, userID)
	return noRows(scanAgent(row))
}

func (r *PostgresRepository) ListAgents(ctx context.Context, filter repository.AgentFilter, limit, offset int) ([]repository.Agent, error) {
	p := agentPredicate(filter)
	n := p.next()
	query := fmt.Sprintf(`SELECT %s FROM agents a %s
		ORDER BY a.created_at DESC, a.id DESC
		LIMIT $%d OFFSET $%d`, agentColumns, p.where(), n, n+1)
	rows, err := r.pool.Query(ctx, query, append(p.args, limit, offset)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []repository.Agent
	for rows.Next() {
		a, err := scanAgent(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *a)
	}
	return list, rows.Err()
}

func (r *PostgresRepository) CountAgents(ctx context.Context, filter repository.AgentFilter) (int, error) {
	p := agentPredicate(filter)
	var total int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM agents a `+p.where(), p.args...).Scan(&total)
	return total, err
}

func (r *PostgresRepository) UpdateAgent(ctx context.Context, userID, id string, input repository.UpdateAgentInput) (*repository.Agent, error) {
	a := agentAssignment(input)
	n := len(a.args) + 1
	query := fmt.Sprintf(`UPDATE agents AS a SET %s WHERE a.id = $%d AND a.user_id = $%d RETURNING %s`,
		a.clause(), n, n+1, agentColumns)
	row := r.pool.QueryRow(ctx, query, append(a.args, id, userID)...)
	return noRows(scanAgent(row))
}

func (r *PostgresRepository) DeleteAgent(ctx context.Context, userID, id string) (*repository.Agent, error) {
	row := r.pool.QueryRow(ctx,
		`DELETE FROM agents AS a WHERE a.id = $1 AND a.user_id = $2
		 RETURNING a.id, a.user_id, a.name, a.instructions, 0, a.created_at, a.updated_at`,
		id, userID)
	return noRows(scanAgent(row))
}

func (r *PostgresRepository) CountOpenMeetingsByAgent(ctx context.Context, agentID string) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM meetings
		 WHERE agent_id = $1 AND status IN ('upcoming', 'active', 'processing')`,
		agentID).Scan(&total)
	return total, err
}

func (r *PostgresRepository) ListAgentsByIDs(ctx context.Context, ids []string) ([]repository.Agent, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+agentColumns+` FROM agents a WHERE a.id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []repository.Agent
	for rows.Next() {
		a, err := scanAgent(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *a)
	}
	return list, rows.Err()
}

func (r *PostgresRepository) CreateMeeting(ctx context.Context, input repository.CreateMeetingInput) (*repository.Meeting, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO meetings (id, user_id, agent_id, name, status)
		 VALUES ($1, $2, $3, $4, 'upcoming')
		 RETURNING `+meetingColumns,
		input.ID, input.UserID, input.AgentID, input.Name)
	return scanMeeting(row)
}

func (r *PostgresRepository) GetMeeting(ctx context.Context, userID, id string) (*repository.MeetingWithAgent, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+meetingJoinColumns+` `+meetingJoinFrom+` WHERE m.id = $1 AND m.user_id = $2`,
		id, userID)
	return noRows(scanMeetingWithAgent(row))
}

func (r *PostgresRepository) ListMeetings(ctx context.Context, filter repository.MeetingFilter, limit, offset int) ([]repository.MeetingWithAgent, error) {
	p := meetingPredicate(filter)
	n := p.next()
	query := fmt.Sprintf(`SELECT %s %s %s
		ORDER BY m.created_at DESC, m.id DESC
		LIMIT $%d OFFSET $%d`, meetingJoinColumns, meetingJoinFrom, p.where(), n, n+1)
	rows, err := r.pool.Query(ctx, query, append(p.args, limit, offset)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []repository.MeetingWithAgent
	for rows.Next() {
		mw, err := scanMeetingWithAgent(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *mw)
	}
	return list, rows.Err()
}

func (r *PostgresRepository) CountMeetings(ctx context.Context, filter repository.MeetingFilter) (int, error) {
	p := meetingPredicate(filter)
	var total int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) `+meetingJoinFrom+` `+p.where(), p.args...).Scan(&total)
	return total, err
}

func (r *PostgresRepository) UpdateMeeting(ctx context.Context, userID, id string, input repository.UpdateMeetingInput) (*repository.Meeting, error) {
	a := meetingAssignment(input)
	n := len(a.args) + 1
	query := fmt.Sprintf(`UPDATE meetings SET %s WHERE id = $%d AND user_id = $%d RETURNING %s`,
		a.clause(), n, n+1, meetingColumns)
	row := r.pool.QueryRow(ctx, query, append(a.args, id, userID)...)
	return noRows(scanMeeting(row))
}

func (r *PostgresRepository) DeleteMeeting(ctx context.Context, userID, id string) (*repository.Meeting, error) {
	row := r.pool.QueryRow(ctx,
		`DELETE FROM meetings WHERE id = $1 AND user_id = $2 RETURNING `+meetingColumns,
		id, userID)
	return noRows(scanMeeting(row))
}
