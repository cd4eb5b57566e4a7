package dto

import (
	"io"
	"time"
)

// FileUpload adjunto entrante ya validado por el handler (tamaño y mime).
// Content se consume una sola vez al persistir en el FileStore.
type FileUpload struct {
	Filename string
	Content  io.Reader
}

// CreateSolicitudRequest datos para crear una solicitud. Los adjuntos llegan
// por separado (multipart). El dueño lo fija el use case con el actor
// autenticado; cualquier user_id enviado por el cliente se ignora.
type CreateSolicitudRequest struct {
	NombreCliente  string `form:"nombre_cliente"`
	NombreLanding  string `form:"nombre_landing"`
	NombreProducto string `form:"nombre_producto"`
	Estado         string `form:"estado"` // opcional, default pendiente
	Prioridad      string `form:"prioridad"`
	ArchivoPDF     *FileUpload
	Logo           *FileUpload
}

// UpdateSolicitudRequest actualización parcial de contenido. El estado nunca
// se toca por esta vía (ver UpdateEstadoRequest); dueño y fecha_creacion no
// están en el conjunto mutable y se ignoran si el cliente los envía.
type UpdateSolicitudRequest struct {
	NombreCliente  *string `form:"nombre_cliente"`
	NombreLanding  *string `form:"nombre_landing"`
	NombreProducto *string `form:"nombre_producto"`
	Prioridad      *string `form:"prioridad"`
	ArchivoPDF     *FileUpload
	Logo           *FileUpload
}

// UpdateEstadoRequest cambio de estado (solo super-admin).
type UpdateEstadoRequest struct {
	Estado string `json:"estado" form:"estado"`
}

// SolicitudResponse representación de salida de una solicitud.
type SolicitudResponse struct {
	ID             string    `json:"id"`
	NombreCliente  string    `json:"nombre_cliente"`
	NombreLanding  string    `json:"nombre_landing"`
	NombreProducto string    `json:"nombre_producto"`
	Estado         string    `json:"estado"`
	Prioridad      string    `json:"prioridad"`
	FechaCreacion  time.Time `json:"fecha_creacion"`
	ArchivoPDF     *string   `json:"archivo_pdf"`
	Logo           *string   `json:"logo"`
	UserID         string    `json:"user_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// SolicitudFilters eco de los filtros aplicados, para la UI.
type SolicitudFilters struct {
	Estado    string `json:"estado"`
	Prioridad string `json:"prioridad"`
}

// SolicitudListResponse listado paginado + filtros aplicados + listas de
// valores de enum para el filtro del cliente.
type SolicitudListResponse struct {
	Data        []SolicitudResponse `json:"data"`
	Meta        PageMeta            `json:"meta"`
	Filters     SolicitudFilters    `json:"filters"`
	Estados     []string            `json:"estados"`
	Prioridades []string            `json:"prioridades"`
}
