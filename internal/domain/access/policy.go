package access

// Policy subjects. A caller maps to exactly one of them via user.IsPrivileged.
const (
	SubjectPrivileged = "privileged"
	SubjectScoped     = "scoped"
)

// Policy objects.
const (
	ObjectTicket    = "ticket"
	ObjectComment   = "comment"
	ObjectTimeEntry = "time_entry"
	ObjectCompany   = "company"
	ObjectUser      = "user"
)

// Policy actions.
const (
	ActionCreate     = "create"
	ActionUpdate     = "update"
	ActionDelete     = "delete"
	ActionSetCompany = "set_company"
	ActionModifyAny  = "modify_any"
	ActionManage     = "manage"
)

// PolicyEnforcer answers whether subject may perform action on object.
type PolicyEnforcer interface {
	Enforce(subject, object, action string) (bool, error)
}

// DefaultPolicies is the policy set seeded into a fresh deployment.
func DefaultPolicies() [][]string {
	return [][]string{
		{SubjectPrivileged, ObjectTicket, ActionSetCompany},
		{SubjectPrivileged, ObjectTicket, ActionDelete},
		{SubjectPrivileged, ObjectComment, ActionModifyAny},
		{SubjectPrivileged, ObjectTimeEntry, ActionCreate},
		{SubjectPrivileged, ObjectTimeEntry, ActionUpdate},
		{SubjectPrivileged, ObjectTimeEntry, ActionDelete},
		{SubjectPrivileged, ObjectCompany, ActionCreate},
		{SubjectPrivileged, ObjectCompany, ActionUpdate},
		{SubjectPrivileged, ObjectUser, ActionManage},
	}
}
