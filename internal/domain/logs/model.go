package logs

import "time"

// Log representa un evento de cuidado de mascota registrado en el sistema.
type Log struct {
	ID int64

	PetName string
	Task    string

	// Time es cuándo ocurrió el cuidado, no cuándo se registró.
	Time time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
