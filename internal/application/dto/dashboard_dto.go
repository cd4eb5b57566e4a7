package dto

import "time"

// UltimaSolicitudDTO fila del widget de últimas solicitudes: la solicitud
// enriquecida con el nombre de su dueño.
type UltimaSolicitudDTO struct {
	ID             string    `json:"id"`
	NombreCliente  string    `json:"nombre_cliente"`
	NombreLanding  string    `json:"nombre_landing"`
	Estado         string    `json:"estado"`
	Prioridad      string    `json:"prioridad"`
	FechaCreacion  time.Time `json:"fecha_creacion"`
	UserName       string    `json:"user_name"`
}

// DashboardStatsDTO estadísticas globales del sistema. No tienen alcance por
// rol: el dashboard es global aunque los listados no lo sean.
type DashboardStatsDTO struct {
	TotalSolicitudes          int                  `json:"total_solicitudes"`
	SolicitudesPendientes     int                  `json:"solicitudes_pendientes"`
	SolicitudesEnDiseno       int                  `json:"solicitudes_en_diseño"`
	SolicitudesEnProgramacion int                  `json:"solicitudes_en_programación"`
	SolicitudesCompletadas    int                  `json:"solicitudes_completadas"`
	SolicitudesEsteMes        int                  `json:"solicitudes_este_mes"`
	SolicitudesPorPrioridad   map[string]int       `json:"solicitudes_por_prioridad"`
	UltimasSolicitudes        []UltimaSolicitudDTO `json:"ultimas_solicitudes"`
	// PromedioCompletado porcentaje de completadas sobre el total, redondeado
	// a un decimal. Cero cuando no hay solicitudes.
	PromedioCompletado float64 `json:"promedio_completado"`
	MesLabel           string  `json:"mes"`
}
