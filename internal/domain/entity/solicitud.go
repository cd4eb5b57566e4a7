package entity

import "time"

// Estado es el estado de flujo de trabajo de una solicitud.
// El grafo de transiciones es abierto: un actor autorizado puede fijar
// cualquier estado sin importar el actual.
type Estado string

const (
	EstadoPendiente      Estado = "pendiente"
	EstadoEnDiseno       Estado = "en_diseño"
	EstadoEnProgramacion Estado = "en_programación"
	EstadoCompletada     Estado = "completada"
)

// Estados lista los valores válidos en el orden del flujo de trabajo.
func Estados() []Estado {
	return []Estado{EstadoPendiente, EstadoEnDiseno, EstadoEnProgramacion, EstadoCompletada}
}

// Valid reporta si el estado es uno de los valores enumerados.
func (e Estado) Valid() bool {
	switch e {
	case EstadoPendiente, EstadoEnDiseno, EstadoEnProgramacion, EstadoCompletada:
		return true
	}
	return false
}

// Prioridad es la prioridad de triaje de una solicitud. Puramente
// descriptiva/filtrable; no afecta transiciones de estado.
type Prioridad string

const (
	PrioridadAlta  Prioridad = "alta"
	PrioridadMedia Prioridad = "media"
	PrioridadBaja  Prioridad = "baja"
)

// Prioridades lista los valores válidos.
func Prioridades() []Prioridad {
	return []Prioridad{PrioridadAlta, PrioridadMedia, PrioridadBaja}
}

// Valid reporta si la prioridad es uno de los valores enumerados.
func (p Prioridad) Valid() bool {
	switch p {
	case PrioridadAlta, PrioridadMedia, PrioridadBaja:
		return true
	}
	return false
}

// Solicitud representa una petición de landing page registrada por un usuario.
// UserID (dueño) y FechaCreacion son inmutables después de la creación.
// ArchivoPDF y Logo son rutas relativas dentro del FileStore; nulas de forma
// independiente.
type Solicitud struct {
	ID             string
	NombreCliente  string
	NombreLanding  string
	NombreProducto string
	Estado         Estado
	Prioridad      Prioridad
	FechaCreacion  time.Time
	ArchivoPDF     *string
	Logo           *string
	UserID         string // dueño: quien creó la solicitud
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsCompletada reporta si la solicitud está en estado completada.
// Las solicitudes completadas no pueden eliminarse.
func (s *Solicitud) IsCompletada() bool {
	return s.Estado == EstadoCompletada
}
