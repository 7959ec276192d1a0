package constants

const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	DefaultPage = 1

	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	// Gin context keys set by middleware.
	ContextKeyUserSID   = "user_sid"
	ContextKeyUserRole  = "user_role"
	ContextKeyCaller    = "caller"
	ContextKeyRequestID = "request_id"

	// Password assigned by user administration when none is supplied.
	DefaultUserPassword = "changeme123"

	ErrMsgInternalServerError = "Internal server error occurred"
)

// Table names shared by the gorm models and the SQL migrations.
const (
	TableCompanies       = "companies"
	TableUsers           = "users"
	TableTickets         = "tickets"
	TableComments        = "ticket_comments"
	TableTimeEntries     = "ticket_time_entries"
	TableTicketHistory   = "ticket_history"
	TableTicketSequences = "ticket_sequences"
)
