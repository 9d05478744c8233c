package common

// Role is the platform-wide role attached to an identity by the verifier.
type Role string

const (
	RoleSuperAdmin  Role = "SUPER_ADMIN"
	RoleSchoolAdmin Role = "SCHOOL_ADMIN"
	RoleStaff       Role = "STAFF"
	RoleParent      Role = "PARENT"
	RoleStudent     Role = "STUDENT"
)

// Identity is the resolved caller of a connection or request.
type Identity struct {
	ID       string `json:"id"`
	TenantID string `json:"tenant_id"`
	Role     Role   `json:"role"`
}

// CanUseMessaging reports whether the role may open a realtime session.
// Students are categorically excluded from the messaging channel.
func (r Role) CanUseMessaging() bool {
	return r != RoleStudent && r != ""
}

// CanPublishLocation reports whether the role may push vehicle telemetry.
func (r Role) CanPublishLocation() bool {
	return r == RoleStaff || r == RoleSchoolAdmin
}

// CanSubscribeTenantTransport reports whether the role may join the
// tenant-wide transport room.
func (r Role) CanSubscribeTenantTransport() bool {
	switch r {
	case RoleSchoolAdmin, RoleSuperAdmin, RoleStaff:
		return true
	}
	return false
}
