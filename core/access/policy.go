package access

import "github.com/trezcool/darasa/core/user"

// Action is a portal operation gated by the access policy.
type Action string

const (
	ViewDashboard      Action = "view_dashboard"
	AddAssignment      Action = "add_assignment"
	DeleteAssignment   Action = "delete_assignment"
	AddNotification    Action = "add_notification"
	DeleteNotification Action = "delete_notification"
)

var contentActions = map[Action]bool{
	ViewDashboard:      true,
	AddAssignment:      true,
	DeleteAssignment:   true,
	AddNotification:    true,
	DeleteNotification: true,
}

// rolePerms maps each role to its allowed actions. Login and registration are
// public and never consult the policy.
var rolePerms = map[string]map[Action]bool{
	user.RoleStudent: {
		ViewDashboard: true,
	},
	user.RoleTeacher: contentActions,
	user.RoleHead:    contentActions,
}

// Can reports whether `role` may perform `action`.
// Unknown roles and unknown actions are denied.
func Can(role string, action Action) bool {
	perms, ok := rolePerms[role]
	if !ok {
		return false
	}
	return perms[action]
}
