package repository

import (
	"fmt"
	"strings"

	"github.com/gparth254/meet-ai/internal/repository"
)

// predicate accumulates AND-ed clauses with positional arguments. The same
// predicate value renders the WHERE of both the page query and the count
// query so the two always agree.
type predicate struct {
	clauses []string
	args    []any
}

// add appends a clause whose single %d placeholder becomes the next $n.
func (p *predicate) add(clause string, arg any) {
	p.args = append(p.args, arg)
	p.clauses = append(p.clauses, fmt.Sprintf(clause, len(p.args)))
}

func (p *predicate) where() string {
	if len(p.clauses) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(p.clauses, " AND ")
}

// next returns the placeholder index following the predicate's arguments.
func (p *predicate) next() int {
	return len(p.args) + 1
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns a search term into an ILIKE substring pattern.
// Backslash is the default LIKE escape character in PostgreSQL.
func containsPattern(search string) string {
	return "%" + likeEscaper.Replace(search) + "%"
}

func agentPredicate(f repository.AgentFilter) predicate {
	var p predicate
	p.add("a.user_id = $%d", f.UserID)
	if f.Search != "" {
		p.add("a.name ILIKE $%d", containsPattern(f.Search))
	}
	return p
}

func meetingPredicate(f repository.MeetingFilter) predicate {
	var p predicate
	p.add("m.user_id = $%d", f.UserID)
	if f.Search != "" {
		p.add("m.name ILIKE $%d", containsPattern(f.Search))
	}
	if f.AgentID != "" {
		p.add("m.agent_id = $%d", f.AgentID)
	}
	if f.Status != "" {
		p.add("m.status = $%d", string(f.Status))
	}
	return p
}

type assignment struct {
	sets []string
	args []any
}

func (a *assignment) set(column string, arg any) {
	a.args = append(a.args, arg)
	a.sets = append(a.sets, fmt.Sprintf("%s = $%d", column, len(a.args)))
}

func (a *assignment) clause() string {
	return strings.Join(append(a.sets, "updated_at = NOW()"), ", ")
}

func agentAssignment(in repository.UpdateAgentInput) assignment {
	var a assignment
	if in.Name != nil {
		a.set("name", *in.Name)
	}
	if in.Instructions != nil {
		a.set("instructions", *in.Instructions)
	}
	return a
}

func meetingAssignment(in repository.UpdateMeetingInput) assignment {
	var a assignment
	if in.Name != nil {
		a.set("name", *in.Name)
	}
	if in.AgentID != nil {
		a.set("agent_id", *in.AgentID)
	}
	if in.Status != nil {
		a.set("status", string(*in.Status))
	}
	if in.StartedAt != nil {
		a.set("started_at", *in.StartedAt)
	}
	if in.EndedAt != nil {
		a.set("ended_at", *in.EndedAt)
	}
	if in.TranscriptURL != nil {
		a.set("transcript_url", *in.TranscriptURL)
	}
	if in.RecordingURL != nil {
		a.set("recording_url", *in.RecordingURL)
	}
	return a
}
