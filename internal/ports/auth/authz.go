package auth

// Operation identifica una operación autorizable del sistema.
type Operation string

const (
	OpLogsRead   Operation = "logs:read"
	OpLogsCreate Operation = "logs:create"
	OpLogsUpdate Operation = "logs:update"
	OpLogsDelete Operation = "logs:delete"
)

// Allow es el predicado de autorización único.
// Reglas:
// - Lectura: cualquier sesión autenticada, sin importar el rol.
// - Mutaciones: solo rol admin.
// Los handlers lo consultan en cada request; no se cachea nada.
func Allow(op Operation, c Claims) bool {
	if !c.Authenticated() {
		return false
	}

	switch op {
	case OpLogsRead:
		return true
	case OpLogsCreate, OpLogsUpdate, OpLogsDelete:
		return c.Role == RoleAdmin
	default:
		return false
	}
}
