package logs

import "context"

type Repository interface {
	// Create inserta el log y devuelve la fila tal como quedó
	// almacenada (con el id asignado por el store).
	Create(ctx context.Context, l Log) (Log, error)

	GetByID(ctx context.Context, id int64) (Log, error)

	// List devuelve todos los logs ordenados por Time descendente.
	List(ctx context.Context) ([]Log, error)

	// Update reemplaza pet_name/task/time y refresca updated_at.
	Update(ctx context.Context, l Log) error

	Delete(ctx context.Context, id int64) error
}
