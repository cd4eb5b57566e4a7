package usecase_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/solicitudes-api/internal/application/dto"
	"github.com/jhoicas/solicitudes-api/internal/application/usecase"
	"github.com/jhoicas/solicitudes-api/internal/domain"
	"github.com/jhoicas/solicitudes-api/internal/domain/authz"
	"github.com/jhoicas/solicitudes-api/internal/domain/entity"
)

var (
	actorUser       = authz.Principal{ID: "u-user", Role: entity.RoleUser}
	actorOtroUser   = authz.Principal{ID: "u-otro", Role: entity.RoleUser}
	actorAdmin      = authz.Principal{ID: "u-admin", Role: entity.RoleAdmin}
	actorSuperAdmin = authz.Principal{ID: "u-super", Role: entity.RoleSuperAdmin}
)

func validCreate() dto.CreateSolicitudRequest {
	return dto.CreateSolicitudRequest{
		NombreCliente:  "Cliente Test",
		NombreLanding:  "Landing Test",
		NombreProducto: "Producto Test",
		Prioridad:      "alta",
	}
}

func upload(name, content string) *dto.FileUpload {
	return &dto.FileUpload{Filename: name, Content: strings.NewReader(content)}
}

func setup() (*usecase.SolicitudUseCase, *fakeSolicitudRepo, *fakeFileStore) {
	repo := newFakeSolicitudRepo()
	store := newFakeFileStore()
	return usecase.NewSolicitudUseCase(repo, store), repo, store
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_DuenoForzadoAlActor(t *testing.T) {
	uc, repo, _ := setup()

	out, err := uc.Create(actorUser, validCreate())
	require.NoError(t, err)

	assert.Equal(t, actorUser.ID, out.UserID, "el dueño es siempre el actor autenticado")
	assert.Equal(t, "pendiente", out.Estado, "sin estado explícito, el default es pendiente")
	assert.Equal(t, "alta", out.Prioridad)
	assert.False(t, out.FechaCreacion.IsZero())

	persisted, _ := repo.GetByID(out.ID)
	require.NotNil(t, persisted)
	assert.Equal(t, actorUser.ID, persisted.UserID)
}

func TestCreate_EstadoExplicito(t *testing.T) {
	uc, _, _ := setup()
	in := validCreate()
	in.Estado = "en_diseño"

	out, err := uc.Create(actorUser, in)
	require.NoError(t, err)
	assert.Equal(t, "en_diseño", out.Estado)
}

func TestCreate_ValidacionPorCampo(t *testing.T) {
	uc, repo, _ := setup()
	in := dto.CreateSolicitudRequest{Prioridad: "urgente"} // todo inválido

	_, err := uc.Create(actorUser, in)
	require.Error(t, err)

	var verr *usecase.ValidationError
	require.ErrorAs(t, err, &verr, "la validación se reporta campo por campo")

	fields := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		fields = append(fields, f.Field)
	}
	assert.ElementsMatch(t, []string{"nombre_cliente", "nombre_landing", "nombre_producto", "prioridad"}, fields)
	assert.Empty(t, repo.items, "nada se persiste ante un error de validación")
}

func TestCreate_EstadoInvalidoRechazado(t *testing.T) {
	uc, _, _ := setup()
	in := validCreate()
	in.Estado = "terminada"

	_, err := uc.Create(actorUser, in)
	var verr *usecase.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "estado", verr.Fields[0].Field)
}

func TestCreate_ConAdjuntos(t *testing.T) {
	uc, _, store := setup()
	in := validCreate()
	in.ArchivoPDF = upload("propuesta.pdf", "%PDF-contenido")
	in.Logo = upload("logo.png", "png-bytes")

	out, err := uc.Create(actorUser, in)
	require.NoError(t, err)
	require.NotNil(t, out.ArchivoPDF)
	require.NotNil(t, out.Logo)

	// Round-trip: las rutas persistidas resuelven en el store.
	_, err = store.Resolve(*out.ArchivoPDF)
	assert.NoError(t, err)
	_, err = store.Resolve(*out.Logo)
	assert.NoError(t, err)
	assert.Contains(t, *out.ArchivoPDF, "solicitudes/pdfs/")
	assert.Contains(t, *out.Logo, "solicitudes/logos/")
}

func TestCreate_FalloDeStoreAbortaSinPersistir(t *testing.T) {
	uc, repo, store := setup()
	store.failPut = true
	in := validCreate()
	in.ArchivoPDF = upload("propuesta.pdf", "x")

	_, err := uc.Create(actorUser, in)
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.Empty(t, repo.items, "la fila nunca se escribe si el blob no se pudo guardar")
}

// ──────────────────────────────────────────────────────────────────────────────
// Update (contenido)
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_NoDuenoRecibeForbiddenSinCambios(t *testing.T) {
	uc, repo, _ := setup()
	created, err := uc.Create(actorUser, validCreate())
	require.NoError(t, err)

	nombre := "Hackeado"
	_, err = uc.Update(actorOtroUser, created.ID, dto.UpdateSolicitudRequest{NombreCliente: &nombre})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	persisted, _ := repo.GetByID(created.ID)
	assert.Equal(t, "Cliente Test", persisted.NombreCliente, "el repositorio queda intacto")
}

func TestUpdate_DuenoYAdminPueden(t *testing.T) {
	uc, _, _ := setup()
	created, err := uc.Create(actorUser, validCreate())
	require.NoError(t, err)

	nombre := "Cliente Editado"
	out, err := uc.Update(actorUser, created.ID, dto.UpdateSolicitudRequest{NombreCliente: &nombre})
	require.NoError(t, err)
	assert.Equal(t, "Cliente Editado", out.NombreCliente)

	prioridad := "baja"
	out, err = uc.Update(actorAdmin, created.ID, dto.UpdateSolicitudRequest{Prioridad: &prioridad})
	require.NoError(t, err)
	assert.Equal(t, "baja", out.Prioridad)
	assert.Equal(t, actorUser.ID, out.UserID, "el dueño nunca cambia en una actualización")
}

func TestUpdate_NoCambiaEstadoNiFechaCreacion(t *testing.T) {
	uc, repo, _ := setup()
	in := validCreate()
	in.Estado = "en_programación"
	created, err := uc.Create(actorUser, in)
	require.NoError(t, err)

	nombre := "Otro"
	out, err := uc.Update(actorUser, created.ID, dto.UpdateSolicitudRequest{NombreCliente: &nombre})
	require.NoError(t, err)

	assert.Equal(t, "en_programación", out.Estado, "la edición de contenido jamás toca el estado")
	assert.True(t, out.FechaCreacion.Equal(created.FechaCreacion))

	persisted, _ := repo.GetByID(created.ID)
	assert.Equal(t, entity.EstadoEnProgramacion, persisted.Estado)
}

func TestUpdate_NotFound(t *testing.T) {
	uc, _, _ := setup()
	nombre := "X"
	_, err := uc.Update(actorAdmin, "no-existe", dto.UpdateSolicitudRequest{NombreCliente: &nombre})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate_ReemplazoDeAdjuntoPorRanura(t *testing.T) {
	uc, _, store := setup()
	in := validCreate()
	in.ArchivoPDF = upload("v1.pdf", "pdf-v1")
	in.Logo = upload("logo.png", "logo-v1")
	created, err := uc.Create(actorUser, in)
	require.NoError(t, err)
	oldPDF, oldLogo := *created.ArchivoPDF, *created.Logo

	out, err := uc.Update(actorUser, created.ID, dto.UpdateSolicitudRequest{
		ArchivoPDF: upload("v2.pdf", "pdf-v2"),
	})
	require.NoError(t, err)

	assert.NotEqual(t, oldPDF, *out.ArchivoPDF, "la ranura del PDF apunta al blob nuevo")
	_, err = store.Resolve(oldPDF)
	assert.Error(t, err, "el blob anterior del PDF fue eliminado")
	_, err = store.Resolve(*out.ArchivoPDF)
	assert.NoError(t, err)

	// La otra ranura no se toca.
	assert.Equal(t, oldLogo, *out.Logo)
	_, err = store.Resolve(oldLogo)
	assert.NoError(t, err, "el logo sigue intacto al reemplazar solo el PDF")
}

func TestUpdate_FalloDeStoreNoTocaFilaNiBlobAnterior(t *testing.T) {
	uc, repo, store := setup()
	in := validCreate()
	in.ArchivoPDF = upload("v1.pdf", "pdf-v1")
	created, err := uc.Create(actorUser, in)
	require.NoError(t, err)

	store.failPut = true
	_, err = uc.Update(actorUser, created.ID, dto.UpdateSolicitudRequest{
		ArchivoPDF: upload("v2.pdf", "pdf-v2"),
	})
	assert.ErrorIs(t, err, domain.ErrStorage)

	persisted, _ := repo.GetByID(created.ID)
	assert.Equal(t, *created.ArchivoPDF, *persisted.ArchivoPDF, "la fila sigue apuntando al blob original")
	_, err = store.Resolve(*created.ArchivoPDF)
	assert.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateEstado
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateEstado_SoloSuperAdmin(t *testing.T) {
	uc, repo, _ := setup()
	created, err := uc.Create(actorUser, validCreate())
	require.NoError(t, err)

	for _, actor := range []authz.Principal{actorUser, actorAdmin} {
		_, err := uc.UpdateEstado(actor, created.ID, "completada")
		assert.ErrorIs(t, err, domain.ErrForbidden, "rol %s no puede cambiar estados", actor.Role)

		persisted, _ := repo.GetByID(created.ID)
		assert.Equal(t, entity.EstadoPendiente, persisted.Estado, "el estado queda sin cambios tras la denegación")
	}

	out, err := uc.UpdateEstado(actorSuperAdmin, created.ID, "completada")
	require.NoError(t, err)
	assert.Equal(t, "completada", out.Estado)
}

func TestUpdateEstado_GrafoAbierto(t *testing.T) {
	uc, _, _ := setup()
	in := validCreate()
	in.Estado = "completada"
	created, err := uc.Create(actorUser, in)
	require.NoError(t, err)

	// Cualquier estado es alcanzable desde cualquier otro, incluso hacia atrás.
	out, err := uc.UpdateEstado(actorSuperAdmin, created.ID, "pendiente")
	require.NoError(t, err)
	assert.Equal(t, "pendiente", out.Estado)
}

func TestUpdateEstado_ValorInvalido(t *testing.T) {
	uc, _, _ := setup()
	created, err := uc.Create(actorUser, validCreate())
	require.NoError(t, err)

	_, err = uc.UpdateEstado(actorSuperAdmin, created.ID, "archivada")
	assert.ErrorIs(t, err, domain.ErrEstadoInvalido)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_UserNoPuede(t *testing.T) {
	uc, repo, _ := setup()
	created, err := uc.Create(actorUser, validCreate())
	require.NoError(t, err)

	err = uc.Delete(actorUser, created.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden, "ni siquiera el dueño con rol user puede eliminar")
	assert.Len(t, repo.items, 1)
}

func TestDelete_CompletadaProtegidaParaTodosLosRoles(t *testing.T) {
	uc, repo, _ := setup()
	in := validCreate()
	in.Estado = "completada"
	created, err := uc.Create(actorUser, in)
	require.NoError(t, err)

	for _, actor := range []authz.Principal{actorAdmin, actorSuperAdmin} {
		err := uc.Delete(actor, created.ID)
		assert.ErrorIs(t, err, domain.ErrSolicitudCompletada,
			"rol %s tampoco puede eliminar una completada", actor.Role)
		assert.Len(t, repo.items, 1, "el repositorio queda sin cambios")
	}
}

func TestDelete_EliminaFilaYAdjuntos(t *testing.T) {
	uc, repo, store := setup()
	in := validCreate()
	in.ArchivoPDF = upload("doc.pdf", "pdf")
	in.Logo = upload("logo.jpg", "jpg")
	created, err := uc.Create(actorUser, in)
	require.NoError(t, err)

	require.NoError(t, uc.Delete(actorAdmin, created.ID))

	assert.Empty(t, repo.items)
	_, err = store.Resolve(*created.ArchivoPDF)
	assert.Error(t, err, "el PDF se borró del store")
	_, err = store.Resolve(*created.Logo)
	assert.Error(t, err, "el logo se borró del store")
}

func TestDelete_NotFound(t *testing.T) {
	uc, _, _ := setup()
	assert.ErrorIs(t, uc.Delete(actorAdmin, "no-existe"), domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// List y GetByID
// ──────────────────────────────────────────────────────────────────────────────

func sembrar(t *testing.T, uc *usecase.SolicitudUseCase, actor authz.Principal, n int, prioridad string) {
	t.Helper()
	for i := 0; i < n; i++ {
		in := validCreate()
		in.NombreCliente = fmt.Sprintf("Cliente %d", i)
		in.Prioridad = prioridad
		_, err := uc.Create(actor, in)
		require.NoError(t, err)
		time.Sleep(time.Millisecond) // fecha_creacion estrictamente creciente
	}
}

func TestList_AlcancePorRol(t *testing.T) {
	uc, _, _ := setup()
	sembrar(t, uc, actorUser, 2, "alta")
	sembrar(t, uc, actorOtroUser, 3, "media")

	propio, err := uc.List(actorUser, "", "", 1)
	require.NoError(t, err)
	assert.Equal(t, 2, propio.Meta.Total, "user ve solo sus registros")
	for _, s := range propio.Data {
		assert.Equal(t, actorUser.ID, s.UserID)
	}

	todos, err := uc.List(actorAdmin, "", "", 1)
	require.NoError(t, err)
	assert.Equal(t, 5, todos.Meta.Total, "admin ve todos los registros")

	todosSuper, err := uc.List(actorSuperAdmin, "", "", 1)
	require.NoError(t, err)
	assert.Equal(t, 5, todosSuper.Meta.Total)
}

func TestList_FiltrosExactos(t *testing.T) {
	uc, _, _ := setup()
	sembrar(t, uc, actorUser, 2, "alta")
	sembrar(t, uc, actorUser, 1, "baja")

	out, err := uc.List(actorAdmin, "", "baja", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Meta.Total)
	assert.Equal(t, "baja", out.Filters.Prioridad, "la respuesta hace eco del filtro aplicado")

	out, err = uc.List(actorAdmin, "completada", "", 1)
	require.NoError(t, err)
	assert.Zero(t, out.Meta.Total, "filtro sin coincidencias devuelve vacío, no error")

	_, err = uc.List(actorAdmin, "inexistente", "", 1)
	assert.ErrorIs(t, err, domain.ErrEstadoInvalido, "valor de filtro fuera del enum se rechaza")
}

func TestList_PaginacionYOrden(t *testing.T) {
	uc, _, _ := setup()
	sembrar(t, uc, actorUser, 15, "media")

	p1, err := uc.List(actorAdmin, "", "", 1)
	require.NoError(t, err)
	assert.Len(t, p1.Data, 10)
	assert.Equal(t, 1, p1.Meta.CurrentPage)
	assert.Equal(t, 2, p1.Meta.LastPage)
	assert.Equal(t, 15, p1.Meta.Total)
	assert.Equal(t, 1, p1.Meta.From)
	assert.Equal(t, 10, p1.Meta.To)
	assert.Equal(t, "Cliente 14", p1.Data[0].NombreCliente, "orden por fecha_creacion descendente")

	p2, err := uc.List(actorAdmin, "", "", 2)
	require.NoError(t, err)
	assert.Len(t, p2.Data, 5, "página 2 de 15 registros con tamaño 10 devuelve 5")
	assert.Equal(t, 2, p2.Meta.LastPage)
	assert.Equal(t, 11, p2.Meta.From)
	assert.Equal(t, 15, p2.Meta.To)

	// Las listas de enums acompañan al listado para el filtro de la UI.
	assert.Equal(t, []string{"pendiente", "en_diseño", "en_programación", "completada"}, p1.Estados)
	assert.Equal(t, []string{"alta", "media", "baja"}, p1.Prioridades)
}

func TestGetByID_Permisos(t *testing.T) {
	uc, _, _ := setup()
	created, err := uc.Create(actorUser, validCreate())
	require.NoError(t, err)

	_, err = uc.GetByID(actorUser, created.ID)
	assert.NoError(t, err)

	_, err = uc.GetByID(actorOtroUser, created.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.GetByID(actorAdmin, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAttachment_ResuelveRutaConPermisos(t *testing.T) {
	uc, _, _ := setup()
	in := validCreate()
	in.ArchivoPDF = upload("brief.pdf", "%PDF contenido")
	created, err := uc.Create(actorUser, in)
	require.NoError(t, err)

	abs, err := uc.Attachment(actorUser, created.ID, "pdf")
	require.NoError(t, err)
	assert.Equal(t, "/fake/"+*created.ArchivoPDF, abs)

	// Misma política de lectura que GetByID.
	_, err = uc.Attachment(actorOtroUser, created.ID, "pdf")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// Slot sin adjunto.
	_, err = uc.Attachment(actorUser, created.ID, "logo")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Slot desconocido.
	_, err = uc.Attachment(actorUser, created.ID, "zip")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
