package http

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/solicitudes-api/internal/application/dto"
	"github.com/jhoicas/solicitudes-api/internal/application/usecase"
)

// Límites de tamaño por adjunto.
const (
	maxPDFBytes  = 10 << 20 // 10 MB
	maxLogoBytes = 5 << 20  // 5 MB
)

var logoExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".svg": true}

// SolicitudHandler maneja las peticiones HTTP para Solicitud (protegido).
type SolicitudHandler struct {
	uc *usecase.SolicitudUseCase
}

// NewSolicitudHandler construye el handler.
func NewSolicitudHandler(uc *usecase.SolicitudUseCase) *SolicitudHandler {
	return &SolicitudHandler{uc: uc}
}

// List godoc
// @Summary      Listar solicitudes
// @Tags         solicitudes
// @Security     Bearer
// @Produce      json
// @Param        page       query  int     false  "Página"  default(1)
// @Param        estado     query  string  false  "Filtro por estado"
// @Param        prioridad  query  string  false  "Filtro por prioridad"
// @Success      200  {object}  dto.SolicitudListResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/solicitudes [get]
func (h *SolicitudHandler) List(c *fiber.Ctx) error {
	p := principalFrom(c)
	page := c.QueryInt("page", 1)
	estado := c.Query("estado")
	prioridad := c.Query("prioridad")

	out, err := h.uc.List(p, estado, prioridad, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener solicitud por ID
// @Tags         solicitudes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la solicitud"
// @Success      200  {object}  dto.SolicitudResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/solicitudes/{id} [get]
func (h *SolicitudHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetByID(principalFrom(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear solicitud
// @Tags         solicitudes
// @Security     Bearer
// @Accept       mpfd
// @Produce      json
// @Param        nombre_cliente   formData  string  true   "Nombre del cliente"
// @Param        nombre_landing   formData  string  true   "Nombre de la landing"
// @Param        nombre_producto  formData  string  true   "Nombre del producto"
// @Param        prioridad        formData  string  true   "alta | media | baja"
// @Param        estado           formData  string  false  "Estado inicial (default pendiente)"
// @Param        archivo_pdf      formData  file    false  "Brief en PDF (máx 10MB)"
// @Param        logo             formData  file    false  "Logo jpg/jpeg/png/svg (máx 5MB)"
// @Success      201  {object}  dto.SolicitudResponse
// @Failure      422  {object}  dto.ValidationErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/solicitudes [post]
func (h *SolicitudHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSolicitudRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	pdf, logo, closeFiles, fieldErrs := parseAttachments(c)
	defer closeFiles()
	if len(fieldErrs) > 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ValidationErrorResponse{
			Code: "VALIDATION", Message: "adjuntos inválidos", Errors: fieldErrs,
		})
	}
	in.ArchivoPDF = pdf
	in.Logo = logo

	out, err := h.uc.Create(principalFrom(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar solicitud (contenido, no estado)
// @Tags         solicitudes
// @Security     Bearer
// @Accept       mpfd
// @Produce      json
// @Param        id               path      string  true   "ID de la solicitud"
// @Param        nombre_cliente   formData  string  false  "Nombre del cliente"
// @Param        nombre_landing   formData  string  false  "Nombre de la landing"
// @Param        nombre_producto  formData  string  false  "Nombre del producto"
// @Param        prioridad        formData  string  false  "alta | media | baja"
// @Param        archivo_pdf      formData  file    false  "Reemplazo del PDF"
// @Param        logo             formData  file    false  "Reemplazo del logo"
// @Success      200  {object}  dto.SolicitudResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ValidationErrorResponse
// @Router       /api/solicitudes/{id} [put]
func (h *SolicitudHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdateSolicitudRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	pdf, logo, closeFiles, fieldErrs := parseAttachments(c)
	defer closeFiles()
	if len(fieldErrs) > 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ValidationErrorResponse{
			Code: "VALIDATION", Message: "adjuntos inválidos", Errors: fieldErrs,
		})
	}
	in.ArchivoPDF = pdf
	in.Logo = logo

	out, err := h.uc.Update(principalFrom(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateEstado godoc
// @Summary      Cambiar estado de una solicitud (solo super-admin)
// @Tags         solicitudes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la solicitud"
// @Param        body  body  dto.UpdateEstadoRequest  true  "Nuevo estado"
// @Success      200  {object}  dto.SolicitudResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/solicitudes/{id}/estado [patch]
func (h *SolicitudHandler) UpdateEstado(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdateEstadoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateEstado(principalFrom(c), id, in.Estado)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar solicitud (admin, nunca completadas)
// @Tags         solicitudes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la solicitud"
// @Success      204  "Sin contenido"
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/solicitudes/{id} [delete]
func (h *SolicitudHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.Delete(principalFrom(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DownloadAttachment godoc
// @Summary      Descargar un adjunto de la solicitud
// @Tags         solicitudes
// @Security     Bearer
// @Produce      octet-stream
// @Param        id    path  string  true  "ID de la solicitud"
// @Param        slot  path  string  true  "pdf | logo"
// @Success      200  {file}  file
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/solicitudes/{id}/adjuntos/{slot} [get]
func (h *SolicitudHandler) DownloadAttachment(c *fiber.Ctx) error {
	id := c.Params("id")
	slot := c.Params("slot")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	abs, err := h.uc.Attachment(principalFrom(c), id, slot)
	if err != nil {
		return respondError(c, err)
	}
	return c.SendFile(abs)
}

// parseAttachments extrae y valida los adjuntos opcionales del multipart.
// Devuelve un cierre que libera los ficheros abiertos; llamarlo siempre.
func parseAttachments(c *fiber.Ctx) (pdf, logo *dto.FileUpload, closeFiles func(), errs []dto.FieldError) {
	var closers []multipart.File
	closeFiles = func() {
		for _, f := range closers {
			f.Close()
		}
	}

	if fh, err := c.FormFile("archivo_pdf"); err == nil && fh != nil {
		if fieldErr := checkUpload(fh, maxPDFBytes, map[string]bool{".pdf": true}, "archivo_pdf", ".pdf"); fieldErr != nil {
			errs = append(errs, *fieldErr)
		} else if f, openErr := fh.Open(); openErr != nil {
			errs = append(errs, dto.FieldError{Field: "archivo_pdf", Message: "no se pudo leer el archivo"})
		} else {
			closers = append(closers, f)
			pdf = &dto.FileUpload{Filename: fh.Filename, Content: f}
		}
	}

	if fh, err := c.FormFile("logo"); err == nil && fh != nil {
		if fieldErr := checkUpload(fh, maxLogoBytes, logoExts, "logo", ".jpg, .jpeg, .png, .svg"); fieldErr != nil {
			errs = append(errs, *fieldErr)
		} else if f, openErr := fh.Open(); openErr != nil {
			errs = append(errs, dto.FieldError{Field: "logo", Message: "no se pudo leer el archivo"})
		} else {
			closers = append(closers, f)
			logo = &dto.FileUpload{Filename: fh.Filename, Content: f}
		}
	}
	return pdf, logo, closeFiles, errs
}

// checkUpload valida tamaño y extensión de un adjunto.
func checkUpload(fh *multipart.FileHeader, maxBytes int64, allowed map[string]bool, field, allowedDesc string) *dto.FieldError {
	if fh.Size > maxBytes {
		return &dto.FieldError{Field: field, Message: fmt.Sprintf("el archivo supera el máximo de %dMB", maxBytes>>20)}
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowed[ext] {
		return &dto.FieldError{Field: field, Message: "extensión no permitida, solo: " + allowedDesc}
	}
	return nil
}
