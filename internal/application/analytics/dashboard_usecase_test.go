package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/solicitudes-api/internal/domain/entity"
	"github.com/jhoicas/solicitudes-api/internal/domain/repository"
)

// fakeStatsRepo computa los agregados sobre un slice en memoria, con la misma
// semántica que la implementación SQL.
type fakeStatsRepo struct {
	rows []repository.UltimaSolicitud
}

func (r *fakeStatsRepo) CountTotal(ctx context.Context) (int, error) {
	return len(r.rows), nil
}

func (r *fakeStatsRepo) CountByEstado(ctx context.Context) (map[entity.Estado]int, error) {
	out := make(map[entity.Estado]int)
	for _, e := range entity.Estados() {
		out[e] = 0
	}
	for _, row := range r.rows {
		out[row.Solicitud.Estado]++
	}
	return out, nil
}

func (r *fakeStatsRepo) CountByPrioridad(ctx context.Context) (map[entity.Prioridad]int, error) {
	out := make(map[entity.Prioridad]int)
	for _, p := range entity.Prioridades() {
		out[p] = 0
	}
	for _, row := range r.rows {
		out[row.Solicitud.Prioridad]++
	}
	return out, nil
}

func (r *fakeStatsRepo) CountCreatedBetween(ctx context.Context, desde, hasta time.Time) (int, error) {
	n := 0
	for _, row := range r.rows {
		fc := row.Solicitud.FechaCreacion
		if !fc.Before(desde) && !fc.After(hasta) {
			n++
		}
	}
	return n, nil
}

func (r *fakeStatsRepo) Latest(ctx context.Context, limit int) ([]repository.UltimaSolicitud, error) {
	// Las filas del fake ya vienen en orden descendente.
	if len(r.rows) > limit {
		return r.rows[:limit], nil
	}
	return r.rows, nil
}

func fila(id string, estado entity.Estado, prioridad entity.Prioridad, fecha time.Time, userName string) repository.UltimaSolicitud {
	return repository.UltimaSolicitud{
		Solicitud: entity.Solicitud{
			ID:            id,
			NombreCliente: "Cliente " + id,
			Estado:        estado,
			Prioridad:     prioridad,
			FechaCreacion: fecha,
		},
		UserName: userName,
	}
}

func dashboardEn(repo *fakeStatsRepo, ahora time.Time) *DashboardUseCase {
	uc := NewDashboardUseCase(repo)
	uc.now = func() time.Time { return ahora }
	return uc
}

func TestGetStats_SinSolicitudes(t *testing.T) {
	uc := dashboardEn(&fakeStatsRepo{}, time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC))

	stats, err := uc.GetStats(context.Background())
	require.NoError(t, err)

	assert.Zero(t, stats.TotalSolicitudes)
	assert.Zero(t, stats.PromedioCompletado, "con cero registros el promedio es 0, no división por cero")
	assert.Empty(t, stats.UltimasSolicitudes)
	assert.Equal(t, map[string]int{"alta": 0, "media": 0, "baja": 0}, stats.SolicitudesPorPrioridad)
	assert.Equal(t, "Agosto 2026", stats.MesLabel)
}

func TestGetStats_Agregados(t *testing.T) {
	ahora := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	repo := &fakeStatsRepo{rows: []repository.UltimaSolicitud{
		fila("s-4", entity.EstadoCompletada, entity.PrioridadAlta, ahora.Add(-1*time.Hour), "Ana"),
		fila("s-3", entity.EstadoPendiente, entity.PrioridadAlta, ahora.Add(-2*time.Hour), "Ana"),
		fila("s-2", entity.EstadoEnDiseno, entity.PrioridadMedia, ahora.Add(-3*time.Hour), "Beto"),
		// Fuera del mes en curso.
		fila("s-1", entity.EstadoEnProgramacion, entity.PrioridadBaja, ahora.AddDate(0, -2, 0), "Beto"),
	}}
	uc := dashboardEn(repo, ahora)

	stats, err := uc.GetStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, stats.TotalSolicitudes)
	assert.Equal(t, 1, stats.SolicitudesPendientes)
	assert.Equal(t, 1, stats.SolicitudesEnDiseno)
	assert.Equal(t, 1, stats.SolicitudesEnProgramacion)
	assert.Equal(t, 1, stats.SolicitudesCompletadas)
	assert.Equal(t, 3, stats.SolicitudesEsteMes, "solo cuentan las del mes calendario actual")
	assert.Equal(t, map[string]int{"alta": 2, "media": 1, "baja": 1}, stats.SolicitudesPorPrioridad)
	assert.InDelta(t, 25.0, stats.PromedioCompletado, 0.001, "1 completada de 4 → 25.0%")

	require.Len(t, stats.UltimasSolicitudes, 4)
	assert.Equal(t, "s-4", stats.UltimasSolicitudes[0].ID, "más reciente primero")
	assert.Equal(t, "Ana", stats.UltimasSolicitudes[0].UserName, "enriquecida con el nombre del dueño")
}

func TestGetStats_RedondeoAUnDecimal(t *testing.T) {
	ahora := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	rows := []repository.UltimaSolicitud{
		fila("s-1", entity.EstadoCompletada, entity.PrioridadAlta, ahora, "Ana"),
		fila("s-2", entity.EstadoPendiente, entity.PrioridadAlta, ahora, "Ana"),
		fila("s-3", entity.EstadoPendiente, entity.PrioridadAlta, ahora, "Ana"),
	}
	uc := dashboardEn(&fakeStatsRepo{rows: rows}, ahora)

	stats, err := uc.GetStats(context.Background())
	require.NoError(t, err)
	// 1/3 = 33.333...% → 33.3
	assert.InDelta(t, 33.3, stats.PromedioCompletado, 0.001)
}

func TestGetStats_UltimasLimitadasACinco(t *testing.T) {
	ahora := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	var rows []repository.UltimaSolicitud
	for i := 0; i < 8; i++ {
		rows = append(rows, fila(
			string(rune('a'+i)), entity.EstadoPendiente, entity.PrioridadMedia,
			ahora.Add(-time.Duration(i)*time.Hour), "Ana"))
	}
	uc := dashboardEn(&fakeStatsRepo{rows: rows}, ahora)

	stats, err := uc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Len(t, stats.UltimasSolicitudes, 5)
}
