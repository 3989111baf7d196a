package logs

// Task define las categorías de cuidado que muestra la UI.
// El servidor NO restringe el valor a este set: acepta cualquier string
// no vacío. Las constantes existen para el cliente y la documentación.
type Task = string

const (
	TaskFed        Task = "Fed"
	TaskWalked     Task = "Walked"
	TaskVetVisit   Task = "Vet Visit"
	TaskMedication Task = "Medication"
	TaskOther      Task = "Other"
)

// KnownTasks lista las categorías en el orden que las muestra el formulario.
func KnownTasks() []Task {
	return []Task{TaskFed, TaskWalked, TaskVetVisit, TaskMedication, TaskOther}
}
