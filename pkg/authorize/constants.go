package authorize

import (
	"github.com/Alijeyrad/hms_backend/pkg/constants"
)

type Action string
type Resource string
type Role string

// ----------------------------
// Actions
// ----------------------------

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionList   Action = "list"

	// Status transitions on appointments and payments
	ActionApprove Action = "approve"

	ActionManage Action = "manage" // any action on the resource
)

const (
	WildcardAction Action = "*"
)

var KnownActions = map[Action]struct{}{
	ActionCreate: {}, ActionRead: {}, ActionUpdate: {}, ActionDelete: {}, ActionList: {},
	ActionApprove: {}, ActionManage: {},
}

// ----------------------------
// Resources
// ----------------------------

const (
	WildcardResource Resource = "*"

	ResourceUser         Resource = "user"
	ResourceFeedback     Resource = "feedback"
	ResourceNotification Resource = "notification"

	ResourceDoctor         Resource = "doctor"
	ResourceAppointment    Resource = "appointment"
	ResourceBookingMessage Resource = "booking_message"

	ResourceTestRecord Resource = "test_record"
	ResourceTreatment  Resource = "treatment"

	ResourcePayment Resource = "payment"
	ResourceReport  Resource = "report"
	ResourceFile    Resource = "file"
)

var KnownResources = map[Resource]struct{}{
	ResourceUser: {}, ResourceFeedback: {}, ResourceNotification: {},
	ResourceDoctor: {}, ResourceAppointment: {}, ResourceBookingMessage: {},
	ResourceTestRecord: {}, ResourceTreatment: {},
	ResourcePayment: {}, ResourceReport: {}, ResourceFile: {},
}

// ----------------------------
// Roles
// ----------------------------
//
// Policy subjects. A user document's role field maps onto one of these.

const (
	RoleAdmin Role = "role:admin"
	RoleUser  Role = "role:user"
)

var KnownRoles = map[Role]struct{}{
	RoleAdmin: {},
	RoleUser:  {},
}

// RoleFor maps a stored user role onto its policy subject. Anything that is
// not admin is treated as a regular user.
func RoleFor(userRole string) Role {
	if userRole == constants.RoleAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// ----------------------------
// Casbin tuple helpers
// ----------------------------

type PolicyEffect string

const (
	EffectAllow PolicyEffect = "allow"
	EffectDeny  PolicyEffect = "deny"
)

// Permission rows: p, role, resource, action, eft
type PermissionPolicy struct {
	Subject Role
	Object  Resource
	Action  Action
	Effect  PolicyEffect
}
