package services

import "fakestore/internal/models"

// Action names an operation subject to authorization.
type Action string

const (
	ActionCreateProduct        Action = "create product"
	ActionUpdateProduct        Action = "update product"
	ActionDeleteProduct        Action = "delete product"
	ActionListProducts         Action = "list products"
	ActionListUsers            Action = "list users"
	ActionCreateCustomer       Action = "create customer"
	ActionCreatePrivilegedUser Action = "create user with a non-customer role"
	ActionDeleteUser           Action = "delete user"
	ActionUpdateOwnProfile     Action = "update own profile"
	ActionUpdateOtherProfile   Action = "update another user's profile"
	ActionChangeRole           Action = "change user role"
)

var anyRole = models.Roles

var policy = map[Action][]models.Role{
	ActionCreateProduct:        {models.RoleAdmin},
	ActionUpdateProduct:        {models.RoleAdmin, models.RoleManager},
	ActionDeleteProduct:        {models.RoleAdmin},
	ActionListProducts:         anyRole,
	ActionListUsers:            anyRole,
	ActionCreateCustomer:       anyRole,
	ActionCreatePrivilegedUser: {models.RoleAdmin},
	ActionDeleteUser:           {models.RoleAdmin},
	ActionUpdateOwnProfile:     anyRole,
	ActionUpdateOtherProfile:   {models.RoleAdmin},
	ActionChangeRole:           {models.RoleAdmin},
}

// Allowed reports whether role may perform action. Unknown actions are denied.
func Allowed(action Action, role models.Role) bool {
	for _, r := range policy[action] {
		if r == role {
			return true
		}
	}
	return false
}

// Authorize returns a *ForbiddenError when role may not perform action.
func Authorize(action Action, role models.Role) error {
	if !Allowed(action, role) {
		return &ForbiddenError{Action: action, Role: role}
	}
	return nil
}

// CreateUserAction is the action required to create a user with the given role.
func CreateUserAction(role models.Role) Action {
	if role == models.RoleCustomer {
		return ActionCreateCustomer
	}
	return ActionCreatePrivilegedUser
}

// UpdateUserAction is the action required for actor to edit the user targetID.
func UpdateUserAction(actorID, targetID uint) Action {
	if actorID == targetID {
		return ActionUpdateOwnProfile
	}
	return ActionUpdateOtherProfile
}
