package access

type scopeKind int

const (
	scopeDenyAll scopeKind = iota
	scopeUnrestricted
	scopeCompany
)

// Scope is the set of tenant rows a caller may read. The zero value denies
// everything.
type Scope struct {
	kind      scopeKind
	companyID uint
}

// ScopeFor is the visibility filter. Privileged callers are unrestricted,
// scoped callers see their own company only, and a scoped caller without a
// company sees nothing at all (never a null-equals-null match).
func ScopeFor(c Caller) Scope {
	switch {
	case c.IsPrivileged():
		return Unrestricted()
	case c.CompanyID != nil:
		return CompanyScope(*c.CompanyID)
	default:
		return DenyAll()
	}
}

func Unrestricted() Scope { return Scope{kind: scopeUnrestricted} }

func CompanyScope(companyID uint) Scope { return Scope{kind: scopeCompany, companyID: companyID} }

func DenyAll() Scope { return Scope{kind: scopeDenyAll} }

func (s Scope) IsUnrestricted() bool { return s.kind == scopeUnrestricted }

func (s Scope) IsDenyAll() bool { return s.kind == scopeDenyAll }

// CompanyID returns the single visible company for a company scope.
func (s Scope) CompanyID() (uint, bool) {
	return s.companyID, s.kind == scopeCompany
}

// Allows reports whether a row owned by companyID is visible.
func (s Scope) Allows(companyID uint) bool {
	switch s.kind {
	case scopeUnrestricted:
		return true
	case scopeCompany:
		return s.companyID == companyID
	default:
		return false
	}
}
