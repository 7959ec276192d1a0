package dto

import (
	"time"

	"github.com/tenantdesk/helpdesk/internal/domain/company"
	"github.com/tenantdesk/helpdesk/internal/domain/ticket"
	vo "github.com/tenantdesk/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/tenantdesk/helpdesk/internal/domain/user"
	"github.com/tenantdesk/helpdesk/internal/shared/mapper"
)

type UserRef struct {
	SID         string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

type CompanyRef struct {
	SID      string `json:"id"`
	Name     string `json:"name"`
	Initials string `json:"initials"`
}

// TicketRecord is a ticket with the rows its views reference. Use cases
// return it; handlers project it per caller.
type TicketRecord struct {
	Ticket       *ticket.Ticket
	Company      *company.Company
	Assignee     *user.User
	CreatedBy    *user.User
	TotalMinutes int
}

// TicketView is what scoped callers see. It never exposes the company.
type TicketView struct {
	SID             string    `json:"id"`
	Reference       string    `json:"unique_reference"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Priority        string    `json:"priority"`
	PriorityDisplay string    `json:"priority_display"`
	Type            string    `json:"type"`
	TypeDisplay     string    `json:"type_display"`
	Status          string    `json:"status"`
	StatusDisplay   string    `json:"status_display"`
	Assignee        *UserRef  `json:"assignee"`
	CreatedBy       *UserRef  `json:"created_by"`
	TotalTimeSpent  int       `json:"total_time_spent"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// StaffTicketView adds the owning company for privileged callers.
type StaffTicketView struct {
	TicketView
	Company *CompanyRef `json:"company"`
}

func ToUserRef(u *user.User) *UserRef {
	if u == nil {
		return nil
	}
	return &UserRef{SID: u.SID(), Email: u.Email(), DisplayName: u.DisplayName()}
}

func ToCompanyRef(c *company.Company) *CompanyRef {
	if c == nil {
		return nil
	}
	return &CompanyRef{SID: c.SID(), Name: c.Name(), Initials: c.Initials()}
}

func ToTicketView(r *TicketRecord) TicketView {
	t := r.Ticket
	return TicketView{
		SID:             t.SID(),
		Reference:       t.Reference(),
		Title:           t.Title(),
		Description:     t.Description(),
		Priority:        t.Priority().String(),
		PriorityDisplay: t.Priority().Label(),
		Type:            t.Type().String(),
		TypeDisplay:     t.Type().Label(),
		Status:          t.Status().String(),
		StatusDisplay:   t.Status().Label(),
		Assignee:        ToUserRef(r.Assignee),
		CreatedBy:       ToUserRef(r.CreatedBy),
		TotalTimeSpent:  r.TotalMinutes,
		CreatedAt:       t.CreatedAt(),
		UpdatedAt:       t.UpdatedAt(),
	}
}

func ToStaffTicketView(r *TicketRecord) StaffTicketView {
	return StaffTicketView{
		TicketView: ToTicketView(r),
		Company:    ToCompanyRef(r.Company),
	}
}

// ProjectTicket picks the view for the caller's privilege.
func ProjectTicket(r *TicketRecord, privileged bool) any {
	if privileged {
		return ToStaffTicketView(r)
	}
	return ToTicketView(r)
}

func ProjectTickets(records []*TicketRecord, privileged bool) []any {
	return mapper.MapSlice(records, func(r *TicketRecord) any {
		return ProjectTicket(r, privileged)
	})
}

type CommentView struct {
	ID          uint      `json:"id"`
	Author      *UserRef  `json:"author"`
	Message     string    `json:"message"`
	MessageHTML string    `json:"message_html"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type TimeEntryView struct {
	ID        uint      `json:"id"`
	Operator  *UserRef  `json:"operator"`
	Minutes   int       `json:"minutes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type HistoryView struct {
	ID               uint                          `json:"id"`
	EventType        string                        `json:"event_type"`
	EventTypeDisplay string                        `json:"event_type_display"`
	Message          string                        `json:"message"`
	PreviousStatus   *string                       `json:"previous_status"`
	NewStatus        *string                       `json:"new_status"`
	User             *UserRef                      `json:"user"`
	Changes          map[string]ticket.FieldChange `json:"changes,omitempty"`
	ChangedAt        time.Time                     `json:"changed_at"`
}

func ToTimeEntryView(e *ticket.TimeEntry, operator *user.User) TimeEntryView {
	return TimeEntryView{
		ID:        e.ID(),
		Operator:  ToUserRef(operator),
		Minutes:   e.Minutes(),
		CreatedAt: e.CreatedAt(),
		UpdatedAt: e.UpdatedAt(),
	}
}

// ToHistoryView drops the company change for scoped callers, matching
// TicketView.
func ToHistoryView(h *ticket.HistoryEntry, actor *user.User, privileged bool) HistoryView {
	changes := h.Changes()
	if !privileged {
		delete(changes, ticket.FieldCompany)
		if len(changes) == 0 {
			changes = nil
		}
	}
	return HistoryView{
		ID:               h.ID(),
		EventType:        h.EventType().String(),
		EventTypeDisplay: h.EventType().Label(),
		Message:          h.Message(),
		PreviousStatus:   statusString(h.PreviousStatus()),
		NewStatus:        statusString(h.NewStatus()),
		User:             ToUserRef(actor),
		Changes:          changes,
		ChangedAt:        h.ChangedAt(),
	}
}

func statusString(s *vo.TicketStatus) *string {
	if s == nil {
		return nil
	}
	v := s.String()
	return &v
}
