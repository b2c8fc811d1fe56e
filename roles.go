package auth

// IsValidRole checks if the role is one of the predefined valid roles
func IsValidRole(r Role) bool {
	switch r {
	case RoleEstudiante, RoleProfesor, RoleAdmin:
		return true
	default:
		return false
	}
}

// ParseRole safely parses a string into a Role. Unknown values are rejected,
// never silently trusted.
func ParseRole(roleStr string) (Role, bool) {
	role := Role(roleStr)
	return role, IsValidRole(role)
}

// GetAllRoles returns all predefined roles in hierarchical order
func GetAllRoles() []Role {
	return []Role{
		RoleEstudiante,
		RoleProfesor,
		RoleAdmin,
	}
}

// RoleIsAtLeast checks if role meets the minimum required level
func RoleIsAtLeast(role, minRole Role) bool {
	roleHierarchy := map[Role]int{
		RoleEstudiante: 0,
		RoleProfesor:   1,
		RoleAdmin:      2,
	}

	currentLevel, exists := roleHierarchy[role]
	if !exists {
		return false
	}

	minLevel, exists := roleHierarchy[minRole]
	if !exists {
		return false
	}

	return currentLevel >= minLevel
}

// RoleIn reports whether role appears in the allowed set. This is the one
// authorization predicate shared by the guard and any view-level check.
func RoleIn(role Role, allowed []Role) bool {
	for _, candidate := range allowed {
		if candidate == role {
			return true
		}
	}
	return false
}
