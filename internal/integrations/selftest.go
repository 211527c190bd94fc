package integrations

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/tbourn/go-pm-backend/internal/domain"
	"github.com/tbourn/go-pm-backend/internal/repo"
)

// SelfTestScope selects which services SelfTest exercises.
type SelfTestScope string

const (
	ScopeMail SelfTestScope = "mail"
	ScopeChat SelfTestScope = "chat"
	ScopeAll  SelfTestScope = "all"
)

// ErrUnknownScope is returned by ParseSelfTestScope.
var ErrUnknownScope = errors.New("unknown self-test scope")

// ParseSelfTestScope validates a raw scope. "email" and "slack" are accepted
// as aliases of mail and chat; empty means all.
func ParseSelfTestScope(s string) (SelfTestScope, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return ScopeAll, nil
	case "mail", "email":
		return ScopeMail, nil
	case "chat", "slack":
		return ScopeChat, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownScope, s)
}

// Check outcome values.
const (
	CheckOK      = "ok"
	CheckSkipped = "skipped"
	CheckFailed  = "failed"
)

// Check is one line of a self-test report.
type Check struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// SelfTestReport is the outcome of SelfTest.
type SelfTestReport struct {
	Scope    SelfTestScope                `json:"scope"`
	Checks   []Check                      `json:"checks"`
	Settings []domain.IntegrationSettings `json:"settings"`
}

// Failed reports whether any check failed.
func (r SelfTestReport) Failed() bool {
	for _, c := range r.Checks {
		if c.Status == CheckFailed {
			return true
		}
	}
	return false
}

// selfTestRecipient is the address used for probe assignments.
const selfTestRecipient = "test@example.com"

// SelfTest drives the notification services against live data without
// touching the integration log: the overdue formatter must reject a nil
// task, the assignment mail runs against the first task, the daily digest
// against the first organization, and with ScopeAll the orchestrator fans
// out an assignment. The report ends with the current settings rows.
func SelfTest(ctx context.Context, db *gorm.DB, o *Orchestrator, scope SelfTestScope) (SelfTestReport, error) {
	rep := SelfTestReport{Scope: scope}

	var task *domain.Task
	if scope == ScopeMail || scope == ScopeAll {
		if _, err := o.Mail.SendOverdueReminder(ctx, nil); errors.Is(err, ErrMissingEntity) {
			rep.add("mail: overdue reminder rejects nil task", CheckOK, err.Error())
		} else {
			rep.add("mail: overdue reminder rejects nil task", CheckFailed, fmt.Sprintf("unexpected result: %v", err))
		}

		var err error
		task, err = firstTask(ctx, db)
		if err != nil {
			return rep, err
		}
		if task == nil {
			rep.add("mail: task assignment", CheckSkipped, "no tasks available")
		} else if res, err := o.Mail.SendTaskAssignment(ctx, task, selfTestRecipient); err != nil {
			rep.add("mail: task assignment", CheckFailed, err.Error())
		} else {
			rep.add("mail: task assignment", CheckOK, res.Status)
		}
	}

	if scope == ScopeChat || scope == ScopeAll {
		org, err := repo.FirstOrganization(ctx, db)
		switch {
		case errors.Is(err, repo.ErrNotFound):
			rep.add("chat: daily digest", CheckSkipped, "no organizations available")
		case err != nil:
			return rep, err
		default:
			if res, err := o.Chat.PostDailyDigest(ctx, org, 10, 7); err != nil {
				rep.add("chat: daily digest", CheckFailed, err.Error())
			} else {
				rep.add("chat: daily digest", CheckOK, res.Status)
			}
		}
	}

	if scope == ScopeAll {
		if task == nil {
			rep.add("orchestrator: task assignment", CheckSkipped, "no tasks available")
		} else if results, err := o.HandleTaskAssigned(ctx, task, selfTestRecipient); err != nil {
			rep.add("orchestrator: task assignment", CheckFailed, err.Error())
		} else {
			rep.add("orchestrator: task assignment", CheckOK, fmt.Sprintf("%d services triggered", len(results)))
		}
	}

	settings, err := repo.ListSettings(ctx, db)
	if err != nil {
		return rep, err
	}
	rep.Settings = settings
	return rep, nil
}

func (r *SelfTestReport) add(name, status, detail string) {
	r.Checks = append(r.Checks, Check{Name: name, Status: status, Detail: detail})
}

func firstTask(ctx context.Context, db *gorm.DB) (*domain.Task, error) {
	task, err := repo.FirstTask(ctx, db)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil
	}
	return task, err
}
