package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/tenantdesk/helpdesk/internal/application/ticket/services"
	"github.com/tenantdesk/helpdesk/internal/domain/access"
	"github.com/tenantdesk/helpdesk/internal/domain/company"
	"github.com/tenantdesk/helpdesk/internal/domain/ticket"
	vo "github.com/tenantdesk/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/tenantdesk/helpdesk/internal/domain/user"
	uservo "github.com/tenantdesk/helpdesk/internal/domain/user/valueobjects"
	"github.com/tenantdesk/helpdesk/internal/shared/errors"
	"github.com/tenantdesk/helpdesk/internal/shared/logger"
	"github.com/tenantdesk/helpdesk/internal/shared/query"
	"github.com/tenantdesk/helpdesk/internal/shared/services/markdown"
)

type mockTicketRepository struct {
	CreateFunc         func(ctx context.Context, t *ticket.Ticket) error
	UpdateFunc         func(ctx context.Context, t *ticket.Ticket) error
	DeleteFunc         func(ctx context.Context, ticketID uint) error
	GetBySIDFunc       func(ctx context.Context, sid string, scope access.Scope) (*ticket.Ticket, error)
	ListFunc           func(ctx context.Context, filter ticket.TicketFilter, scope access.Scope) ([]*ticket.Ticket, int64, error)
	CountByCompanyFunc func(ctx context.Context, companyID uint) (int64, error)
}

func (m *mockTicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) Delete(ctx context.Context, ticketID uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, ticketID)
	}
	return nil
}

func (m *mockTicketRepository) GetBySID(ctx context.Context, sid string, scope access.Scope) (*ticket.Ticket, error) {
	if m.GetBySIDFunc != nil {
		return m.GetBySIDFunc(ctx, sid, scope)
	}
	return nil, errors.NewNotFoundError("ticket not found")
}

func (m *mockTicketRepository) List(ctx context.Context, filter ticket.TicketFilter, scope access.Scope) ([]*ticket.Ticket, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter, scope)
	}
	return nil, 0, nil
}

func (m *mockTicketRepository) CountByCompany(ctx context.Context, companyID uint) (int64, error) {
	if m.CountByCompanyFunc != nil {
		return m.CountByCompanyFunc(ctx, companyID)
	}
	return 0, nil
}

// scopedTicketRepo serves a single ticket and honours the scope like the
// real repository does.
func scopedTicketRepo(t *ticket.Ticket) *mockTicketRepository {
	return &mockTicketRepository{
		GetBySIDFunc: func(_ context.Context, sid string, scope access.Scope) (*ticket.Ticket, error) {
			if sid != t.SID() || !scope.Allows(t.CompanyID()) {
				return nil, errors.NewNotFoundError("ticket not found")
			}
			return t, nil
		},
	}
}

type mockSequence struct {
	NextFunc func(ctx context.Context, companyID uint) (int64, error)
}

func (m *mockSequence) Next(ctx context.Context, companyID uint) (int64, error) {
	if m.NextFunc != nil {
		return m.NextFunc(ctx, companyID)
	}
	return 1, nil
}

type mockCommentRepository struct {
	CreateFunc       func(ctx context.Context, c *ticket.Comment) error
	UpdateFunc       func(ctx context.Context, c *ticket.Comment) error
	DeleteFunc       func(ctx context.Context, commentID uint) error
	GetByIDFunc      func(ctx context.Context, ticketID, commentID uint, scope access.Scope) (*ticket.Comment, error)
	ListByTicketFunc func(ctx context.Context, ticketID uint, scope access.Scope) ([]*ticket.Comment, error)
}

func (m *mockCommentRepository) Create(ctx context.Context, c *ticket.Comment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, c)
	}
	return nil
}

func (m *mockCommentRepository) Update(ctx context.Context, c *ticket.Comment) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, c)
	}
	return nil
}

func (m *mockCommentRepository) Delete(ctx context.Context, commentID uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, commentID)
	}
	return nil
}

func (m *mockCommentRepository) GetByID(ctx context.Context, ticketID, commentID uint, scope access.Scope) (*ticket.Comment, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, ticketID, commentID, scope)
	}
	return nil, errors.NewNotFoundError("comment not found")
}

func (m *mockCommentRepository) ListByTicket(ctx context.Context, ticketID uint, scope access.Scope) ([]*ticket.Comment, error) {
	if m.ListByTicketFunc != nil {
		return m.ListByTicketFunc(ctx, ticketID, scope)
	}
	return nil, nil
}

type mockTimeEntryRepository struct {
	CreateFunc       func(ctx context.Context, e *ticket.TimeEntry) error
	UpdateFunc       func(ctx context.Context, e *ticket.TimeEntry) error
	DeleteFunc       func(ctx context.Context, entryID uint) error
	GetByIDFunc      func(ctx context.Context, ticketID, entryID uint, scope access.Scope) (*ticket.TimeEntry, error)
	ListByTicketFunc func(ctx context.Context, ticketID uint, scope access.Scope) ([]*ticket.TimeEntry, error)
	SumMinutesFunc   func(ctx context.Context, ticketIDs []uint) (map[uint]int, error)
}

func (m *mockTimeEntryRepository) Create(ctx context.Context, e *ticket.TimeEntry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, e)
	}
	return nil
}

func (m *mockTimeEntryRepository) Update(ctx context.Context, e *ticket.TimeEntry) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, e)
	}
	return nil
}

func (m *mockTimeEntryRepository) Delete(ctx context.Context, entryID uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, entryID)
	}
	return nil
}

func (m *mockTimeEntryRepository) GetByID(ctx context.Context, ticketID, entryID uint, scope access.Scope) (*ticket.TimeEntry, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, ticketID, entryID, scope)
	}
	return nil, errors.NewNotFoundError("time entry not found")
}

func (m *mockTimeEntryRepository) ListByTicket(ctx context.Context, ticketID uint, scope access.Scope) ([]*ticket.TimeEntry, error) {
	if m.ListByTicketFunc != nil {
		return m.ListByTicketFunc(ctx, ticketID, scope)
	}
	return nil, nil
}

func (m *mockTimeEntryRepository) SumMinutes(ctx context.Context, ticketIDs []uint) (map[uint]int, error) {
	if m.SumMinutesFunc != nil {
		return m.SumMinutesFunc(ctx, ticketIDs)
	}
	return map[uint]int{}, nil
}

type mockHistoryRepository struct {
	entries   []*ticket.HistoryEntry
	appendErr error
}

func (m *mockHistoryRepository) Append(_ context.Context, e *ticket.HistoryEntry) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	e.SetID(uint(len(m.entries) + 1))
	m.entries = append(m.entries, e)
	return nil
}

func (m *mockHistoryRepository) ListByTicket(_ context.Context, ticketID uint, _ access.Scope) ([]*ticket.HistoryEntry, error) {
	var out []*ticket.HistoryEntry
	for i := len(m.entries) - 1; i >= 0; i-- {
		if m.entries[i].TicketID() == ticketID {
			out = append(out, m.entries[i])
		}
	}
	return out, nil
}

type mockCompanyRepository struct {
	companies []*company.Company
}

func (m *mockCompanyRepository) Create(context.Context, *company.Company) error { return nil }

func (m *mockCompanyRepository) Update(context.Context, *company.Company) error { return nil }

func (m *mockCompanyRepository) GetByID(_ context.Context, id uint) (*company.Company, error) {
	for _, c := range m.companies {
		if c.ID() == id {
			return c, nil
		}
	}
	return nil, errors.NewNotFoundError("company not found")
}

func (m *mockCompanyRepository) ListByIDs(_ context.Context, ids []uint) ([]*company.Company, error) {
	var out []*company.Company
	for _, id := range ids {
		for _, c := range m.companies {
			if c.ID() == id {
				out = append(out, c)
			}
		}
	}
	return out, nil
}

func (m *mockCompanyRepository) GetBySID(_ context.Context, sid string, scope access.Scope) (*company.Company, error) {
	for _, c := range m.companies {
		if c.SID() == sid && scope.Allows(c.ID()) {
			return c, nil
		}
	}
	return nil, errors.NewNotFoundError("company not found")
}

func (m *mockCompanyRepository) GetByInitials(_ context.Context, initials string) (*company.Company, error) {
	for _, c := range m.companies {
		if c.Initials() == initials {
			return c, nil
		}
	}
	return nil, errors.NewNotFoundError("company not found")
}

func (m *mockCompanyRepository) List(context.Context, query.PageFilter, access.Scope) ([]*company.Company, int64, error) {
	return m.companies, int64(len(m.companies)), nil
}

type mockUserRepository struct {
	users []*user.User
}

func (m *mockUserRepository) Create(context.Context, *user.User) error { return nil }

func (m *mockUserRepository) Update(context.Context, *user.User) error { return nil }

func (m *mockUserRepository) GetByID(_ context.Context, id uint) (*user.User, error) {
	for _, u := range m.users {
		if u.ID() == id {
			return u, nil
		}
	}
	return nil, errors.NewNotFoundError("user not found")
}

func (m *mockUserRepository) ListByIDs(_ context.Context, ids []uint) ([]*user.User, error) {
	var out []*user.User
	for _, id := range ids {
		for _, u := range m.users {
			if u.ID() == id {
				out = append(out, u)
			}
		}
	}
	return out, nil
}

func (m *mockUserRepository) GetBySID(_ context.Context, sid string) (*user.User, error) {
	for _, u := range m.users {
		if u.SID() == sid {
			return u, nil
		}
	}
	return nil, errors.NewNotFoundError("user not found")
}

func (m *mockUserRepository) GetByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range m.users {
		if u.Email() == email {
			return u, nil
		}
	}
	return nil, errors.NewNotFoundError("user not found")
}

func (m *mockUserRepository) List(context.Context, user.ListFilter) ([]*user.User, int64, error) {
	return m.users, int64(len(m.users)), nil
}

// inlineTx runs the function without a database.
type inlineTx struct{}

func (inlineTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// privilegedOnly grants every policy object to privileged callers.
type privilegedOnly struct{}

func (privilegedOnly) Enforce(subject, _, _ string) (bool, error) {
	return subject == access.SubjectPrivileged, nil
}

type recordingNotifier struct {
	notices chan services.AssignmentNotice
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{notices: make(chan services.AssignmentNotice, 4)}
}

func (n *recordingNotifier) NotifyAssigned(_ context.Context, notice services.AssignmentNotice) error {
	n.notices <- notice
	return nil
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

var fixedTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func uintPtr(v uint) *uint { return &v }

func strPtr(v string) *string { return &v }

type fixture struct {
	acme      *company.Company
	globex    *company.Company
	admin     *user.User
	agent     *user.User
	u1        *user.User
	u2        *user.User
	companies *mockCompanyRepository
	users     *mockUserRepository
	history   *mockHistoryRepository
	entries   *mockTimeEntryRepository
	recorder  *services.HistoryRecorder
	assembler *services.Assembler
	guard     *access.Guard
	log       logger.Interface
}

func newFixture() *fixture {
	f := &fixture{
		acme:   company.ReconstructCompany(1, "cmp_acme", "ACME", "ACM", "", "", fixedTime, fixedTime),
		globex: company.ReconstructCompany(2, "cmp_globex", "Globex", "GLX", "", "", fixedTime, fixedTime),
		admin: user.ReconstructUser(1, "usr_admin", "admin@helpdesk.io", "admin", "Ada", "Admin", "",
			uservo.RoleAdmin, nil, false, true, "", fixedTime, fixedTime),
		agent: user.ReconstructUser(2, "usr_agent", "agent@helpdesk.io", "agent", "", "", "",
			uservo.RoleStaff, nil, true, true, "", fixedTime, fixedTime),
		u1: user.ReconstructUser(3, "usr_u1", "u1@acme.io", "u1", "Una", "One", "",
			uservo.RoleCustomer, uintPtr(1), false, true, "", fixedTime, fixedTime),
		u2: user.ReconstructUser(4, "usr_u2", "u2@acme.io", "u2", "", "", "",
			uservo.RoleCustomer, uintPtr(1), false, true, "", fixedTime, fixedTime),
		history: &mockHistoryRepository{},
		entries: &mockTimeEntryRepository{},
		guard:   access.NewGuard(privilegedOnly{}),
		log:     logger.NewNopLogger(),
	}
	f.companies = &mockCompanyRepository{companies: []*company.Company{f.acme, f.globex}}
	f.users = &mockUserRepository{users: []*user.User{f.admin, f.agent, f.u1, f.u2}}
	f.recorder = services.NewHistoryRecorder(f.history, f.users, f.companies)
	f.assembler = services.NewAssembler(f.users, f.companies, f.entries, markdown.NewRenderer())
	return f
}

func (f *fixture) caller(u *user.User) access.Caller {
	return access.CallerFromUser(u)
}

// ticketFor builds a persisted ticket of company, created by u1.
func (f *fixture) ticketFor(t *testing.T, id uint, c *company.Company, status vo.TicketStatus) *ticket.Ticket {
	t.Helper()
	tk, err := ticket.ReconstructTicket(id, "tkt_"+c.Initials(), "Broken printer", "", vo.PriorityMedium, vo.TypeIncident,
		status, nil, f.u1.ID(), c.ID(), ticket.FormatReference(c.Initials(), int64(id)), fixedTime, fixedTime)
	if err != nil {
		t.Fatalf("reconstruct ticket: %v", err)
	}
	return tk
}
