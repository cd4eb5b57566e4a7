package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/solicitudes-api/internal/application/dto"
	"github.com/jhoicas/solicitudes-api/internal/application/ports"
	"github.com/jhoicas/solicitudes-api/internal/domain"
	"github.com/jhoicas/solicitudes-api/internal/domain/authz"
	"github.com/jhoicas/solicitudes-api/internal/domain/entity"
	"github.com/jhoicas/solicitudes-api/internal/domain/repository"
)

// Directorios lógicos de adjuntos dentro del FileStore.
const (
	dirPDFs  = "solicitudes/pdfs"
	dirLogos = "solicitudes/logos"
)

// SolicitudesPorPagina tamaño de página fijo del listado de solicitudes.
const SolicitudesPorPagina = 10

// SolicitudUseCase implementa el ciclo de vida de las solicitudes: creación
// con dueño forzado al actor, actualización de contenido (nunca el estado),
// cambio de estado como acción dedicada, y eliminación con protección de
// solicitudes completadas. Toda decisión de acceso se delega en authz.
type SolicitudUseCase struct {
	repo  repository.SolicitudRepository
	store ports.FileStore
}

// NewSolicitudUseCase construye el caso de uso.
func NewSolicitudUseCase(repo repository.SolicitudRepository, store ports.FileStore) *SolicitudUseCase {
	return &SolicitudUseCase{repo: repo, store: store}
}

// List devuelve el listado paginado según el alcance del rol del actor:
// user ve solo lo propio, admin y super-admin ven todo. Filtros exactos
// opcionales por estado y prioridad.
func (uc *SolicitudUseCase) List(p authz.Principal, estado, prioridad string, page int) (*dto.SolicitudListResponse, error) {
	if estado != "" && !entity.Estado(estado).Valid() {
		return nil, domain.ErrEstadoInvalido
	}
	if prioridad != "" && !entity.Prioridad(prioridad).Valid() {
		return nil, domain.ErrPrioridadInvalida
	}
	if page < 1 {
		page = 1
	}

	f := repository.SolicitudFilter{
		OwnerID:   authz.ListScope(p),
		Estado:    entity.Estado(estado),
		Prioridad: entity.Prioridad(prioridad),
	}
	items, total, err := uc.repo.List(f, SolicitudesPorPagina, (page-1)*SolicitudesPorPagina)
	if err != nil {
		return nil, err
	}

	data := make([]dto.SolicitudResponse, 0, len(items))
	for _, s := range items {
		data = append(data, *toSolicitudResponse(s))
	}
	return &dto.SolicitudListResponse{
		Data:        data,
		Meta:        dto.NewPageMeta(page, SolicitudesPorPagina, total, len(data)),
		Filters:     dto.SolicitudFilters{Estado: estado, Prioridad: prioridad},
		Estados:     estadoLabels(),
		Prioridades: prioridadLabels(),
	}, nil
}

// GetByID devuelve una solicitud si el actor puede verla.
func (uc *SolicitudUseCase) GetByID(p authz.Principal, id string) (*dto.SolicitudResponse, error) {
	s, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	if err := authz.CanViewSolicitud(p, s); err != nil {
		return nil, err
	}
	return toSolicitudResponse(s), nil
}

// Create crea una solicitud. El dueño es siempre el actor autenticado; el
// estado inicial es pendiente salvo que se indique otro valor válido. Los
// adjuntos se escriben en el FileStore antes de persistir la fila, de modo
// que una fila nunca apunte a un blob inexistente.
func (uc *SolicitudUseCase) Create(p authz.Principal, in dto.CreateSolicitudRequest) (*dto.SolicitudResponse, error) {
	if ferrs := validateCreate(in); len(ferrs) > 0 {
		return nil, &ValidationError{Fields: ferrs}
	}

	estado := entity.EstadoPendiente
	if in.Estado != "" {
		estado = entity.Estado(in.Estado)
	}

	var pdfPath, logoPath *string
	if in.ArchivoPDF != nil {
		path, err := uc.store.Put(dirPDFs, in.ArchivoPDF.Filename, in.ArchivoPDF.Content)
		if err != nil {
			return nil, fmt.Errorf("%w: archivo_pdf: %v", domain.ErrStorage, err)
		}
		pdfPath = &path
	}
	if in.Logo != nil {
		path, err := uc.store.Put(dirLogos, in.Logo.Filename, in.Logo.Content)
		if err != nil {
			// No dejar el PDF recién subido huérfano.
			uc.deleteBlob(pdfPath, "archivo_pdf")
			return nil, fmt.Errorf("%w: logo: %v", domain.ErrStorage, err)
		}
		logoPath = &path
	}

	now := time.Now()
	s := &entity.Solicitud{
		ID:             uuid.New().String(),
		NombreCliente:  in.NombreCliente,
		NombreLanding:  in.NombreLanding,
		NombreProducto: in.NombreProducto,
		Estado:         estado,
		Prioridad:      entity.Prioridad(in.Prioridad),
		FechaCreacion:  now,
		ArchivoPDF:     pdfPath,
		Logo:           logoPath,
		UserID:         p.ID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(s); err != nil {
		uc.deleteBlob(pdfPath, "archivo_pdf")
		uc.deleteBlob(logoPath, "logo")
		return nil, err
	}
	return toSolicitudResponse(s), nil
}

// Update actualiza campos de contenido de una solicitud (dueño o rol
// admin/super-admin). El estado nunca cambia por esta vía; dueño y
// fecha_creacion no están en el conjunto mutable. Reemplazo de adjunto por
// ranura: se sube el nuevo blob, se borra el anterior best-effort y la fila
// se persiste al final. Las dos ranuras son independientes.
func (uc *SolicitudUseCase) Update(p authz.Principal, id string, in dto.UpdateSolicitudRequest) (*dto.SolicitudResponse, error) {
	s, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	if err := authz.CanEditSolicitud(p, s); err != nil {
		return nil, err
	}

	if ferrs := validateUpdate(in); len(ferrs) > 0 {
		return nil, &ValidationError{Fields: ferrs}
	}

	if in.NombreCliente != nil {
		s.NombreCliente = *in.NombreCliente
	}
	if in.NombreLanding != nil {
		s.NombreLanding = *in.NombreLanding
	}
	if in.NombreProducto != nil {
		s.NombreProducto = *in.NombreProducto
	}
	if in.Prioridad != nil {
		s.Prioridad = entity.Prioridad(*in.Prioridad)
	}

	if in.ArchivoPDF != nil {
		path, err := uc.store.Put(dirPDFs, in.ArchivoPDF.Filename, in.ArchivoPDF.Content)
		if err != nil {
			return nil, fmt.Errorf("%w: archivo_pdf: %v", domain.ErrStorage, err)
		}
		uc.deleteBlob(s.ArchivoPDF, "archivo_pdf")
		s.ArchivoPDF = &path
	}
	if in.Logo != nil {
		path, err := uc.store.Put(dirLogos, in.Logo.Filename, in.Logo.Content)
		if err != nil {
			return nil, fmt.Errorf("%w: logo: %v", domain.ErrStorage, err)
		}
		uc.deleteBlob(s.Logo, "logo")
		s.Logo = &path
	}

	s.UpdatedAt = time.Now()
	if err := uc.repo.Update(s); err != nil {
		return nil, err
	}
	return toSolicitudResponse(s), nil
}

// UpdateEstado cambia únicamente el estado de la solicitud. Acción exclusiva
// del super-admin. Cualquier estado válido es alcanzable desde cualquier otro.
func (uc *SolicitudUseCase) UpdateEstado(p authz.Principal, id, estado string) (*dto.SolicitudResponse, error) {
	if err := authz.CanChangeEstado(p); err != nil {
		return nil, err
	}
	if !entity.Estado(estado).Valid() {
		return nil, domain.ErrEstadoInvalido
	}
	s, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	s.Estado = entity.Estado(estado)
	s.UpdatedAt = time.Now()
	if err := uc.repo.Update(s); err != nil {
		return nil, err
	}
	return toSolicitudResponse(s), nil
}

// Delete elimina una solicitud (solo admin/super-admin). Las solicitudes
// completadas no se eliminan, sin importar el rol. Los adjuntos se borran del
// store best-effort después de eliminar la fila.
func (uc *SolicitudUseCase) Delete(p authz.Principal, id string) error {
	if err := authz.CanDeleteSolicitud(p); err != nil {
		return err
	}
	s, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.ErrNotFound
	}
	if s.IsCompletada() {
		return domain.ErrSolicitudCompletada
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	uc.deleteBlob(s.ArchivoPDF, "archivo_pdf")
	uc.deleteBlob(s.Logo, "logo")
	return nil
}

// Attachment devuelve la ruta absoluta en disco del adjunto pedido, aplicando
// la misma política de lectura que GetByID. slot es "pdf" o "logo".
func (uc *SolicitudUseCase) Attachment(p authz.Principal, id, slot string) (string, error) {
	s, err := uc.repo.GetByID(id)
	if err != nil {
		return "", err
	}
	if s == nil {
		return "", domain.ErrNotFound
	}
	if err := authz.CanViewSolicitud(p, s); err != nil {
		return "", err
	}
	var rel *string
	switch slot {
	case "pdf":
		rel = s.ArchivoPDF
	case "logo":
		rel = s.Logo
	default:
		return "", fmt.Errorf("%w: adjunto desconocido: %s", domain.ErrInvalidInput, slot)
	}
	if rel == nil {
		return "", domain.ErrNotFound
	}
	return uc.store.Resolve(*rel)
}

// deleteBlob borra un adjunto best-effort: un fallo se registra y se traga.
func (uc *SolicitudUseCase) deleteBlob(path *string, slot string) {
	if path == nil {
		return
	}
	if err := uc.store.Delete(*path); err != nil {
		log.Warn().Err(err).Str("slot", slot).Str("path", *path).
			Msg("no se pudo borrar adjunto del store")
	}
}

func validateCreate(in dto.CreateSolicitudRequest) []dto.FieldError {
	var ferrs []dto.FieldError
	if in.NombreCliente == "" {
		ferrs = append(ferrs, dto.FieldError{Field: "nombre_cliente", Message: "El nombre del cliente es obligatorio."})
	}
	if in.NombreLanding == "" {
		ferrs = append(ferrs, dto.FieldError{Field: "nombre_landing", Message: "El nombre de la landing page es obligatorio."})
	}
	if in.NombreProducto == "" {
		ferrs = append(ferrs, dto.FieldError{Field: "nombre_producto", Message: "El nombre del producto es obligatorio."})
	}
	if !entity.Prioridad(in.Prioridad).Valid() {
		ferrs = append(ferrs, dto.FieldError{Field: "prioridad", Message: "La prioridad seleccionada no es válida."})
	}
	if in.Estado != "" && !entity.Estado(in.Estado).Valid() {
		ferrs = append(ferrs, dto.FieldError{Field: "estado", Message: "El estado seleccionado no es válido."})
	}
	return ferrs
}

func validateUpdate(in dto.UpdateSolicitudRequest) []dto.FieldError {
	var ferrs []dto.FieldError
	if in.NombreCliente != nil && *in.NombreCliente == "" {
		ferrs = append(ferrs, dto.FieldError{Field: "nombre_cliente", Message: "El nombre del cliente es obligatorio."})
	}
	if in.NombreLanding != nil && *in.NombreLanding == "" {
		ferrs = append(ferrs, dto.FieldError{Field: "nombre_landing", Message: "El nombre de la landing page es obligatorio."})
	}
	if in.NombreProducto != nil && *in.NombreProducto == "" {
		ferrs = append(ferrs, dto.FieldError{Field: "nombre_producto", Message: "El nombre del producto es obligatorio."})
	}
	if in.Prioridad != nil && !entity.Prioridad(*in.Prioridad).Valid() {
		ferrs = append(ferrs, dto.FieldError{Field: "prioridad", Message: "La prioridad seleccionada no es válida."})
	}
	return ferrs
}

func estadoLabels() []string {
	estados := entity.Estados()
	out := make([]string, len(estados))
	for i, e := range estados {
		out[i] = string(e)
	}
	return out
}

func prioridadLabels() []string {
	prioridades := entity.Prioridades()
	out := make([]string, len(prioridades))
	for i, p := range prioridades {
		out[i] = string(p)
	}
	return out
}

func toSolicitudResponse(s *entity.Solicitud) *dto.SolicitudResponse {
	if s == nil {
		return nil
	}
	return &dto.SolicitudResponse{
		ID:             s.ID,
		NombreCliente:  s.NombreCliente,
		NombreLanding:  s.NombreLanding,
		NombreProducto: s.NombreProducto,
		Estado:         string(s.Estado),
		Prioridad:      string(s.Prioridad),
		FechaCreacion:  s.FechaCreacion,
		ArchivoPDF:     s.ArchivoPDF,
		Logo:           s.Logo,
		UserID:         s.UserID,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}
