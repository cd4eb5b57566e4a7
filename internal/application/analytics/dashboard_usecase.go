// Package analytics contiene el agregador de reportes: las estadísticas
// globales del dashboard de solicitudes.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/solicitudes-api/internal/application/dto"
	"github.com/jhoicas/solicitudes-api/internal/domain/entity"
	"github.com/jhoicas/solicitudes-api/internal/domain/repository"
)

const dashboardUltimas = 5 // número de solicitudes en el widget de recientes

// DashboardUseCase computa las estadísticas del sistema completo sobre el
// StatsRepository: conteos por estado y prioridad, solicitudes del mes en
// curso, porcentaje de completado y últimas solicitudes con su dueño.
//
// El cómputo es por petición, sin caché, y no tiene alcance por rol: el
// dashboard es global aunque los listados estén restringidos por dueño
// (asimetría documentada del diseño).
type DashboardUseCase struct {
	statsRepo repository.StatsRepository
	now       func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(statsRepo repository.StatsRepository) *DashboardUseCase {
	return &DashboardUseCase{statsRepo: statsRepo, now: time.Now}
}

// GetStats construye el DashboardStatsDTO con el mes calendario actual como
// ventana de "este mes".
//
// Cuatro llamadas en paralelo:
//  1. CountByEstado           → total + conteos por estado
//  2. CountByPrioridad        → distribución de prioridades
//  3. CountCreatedBetween     → solicitudes de este mes
//  4. Latest(5)               → últimas solicitudes con nombre del dueño
func (uc *DashboardUseCase) GetStats(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	now := uc.now()

	// Mes calendario en curso: día 1 a las 00:00 – fin de hoy.
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		Add(24*time.Hour - time.Nanosecond)

	type estadoResult struct {
		counts map[entity.Estado]int
		err    error
	}
	type prioridadResult struct {
		counts map[entity.Prioridad]int
		err    error
	}
	type mesResult struct {
		count int
		err   error
	}
	type ultimasResult struct {
		rows []repository.UltimaSolicitud
		err  error
	}

	estadoCh := make(chan estadoResult, 1)
	prioridadCh := make(chan prioridadResult, 1)
	mesCh := make(chan mesResult, 1)
	ultimasCh := make(chan ultimasResult, 1)

	go func() {
		counts, err := uc.statsRepo.CountByEstado(ctx)
		estadoCh <- estadoResult{counts, err}
	}()
	go func() {
		counts, err := uc.statsRepo.CountByPrioridad(ctx)
		prioridadCh <- prioridadResult{counts, err}
	}()
	go func() {
		count, err := uc.statsRepo.CountCreatedBetween(ctx, monthStart, monthEnd)
		mesCh <- mesResult{count, err}
	}()
	go func() {
		rows, err := uc.statsRepo.Latest(ctx, dashboardUltimas)
		ultimasCh <- ultimasResult{rows, err}
	}()

	estados := <-estadoCh
	prioridades := <-prioridadCh
	mes := <-mesCh
	ultimas := <-ultimasCh

	if estados.err != nil {
		return nil, fmt.Errorf("dashboard: conteo por estado: %w", estados.err)
	}
	if prioridades.err != nil {
		return nil, fmt.Errorf("dashboard: conteo por prioridad: %w", prioridades.err)
	}
	if mes.err != nil {
		return nil, fmt.Errorf("dashboard: solicitudes del mes: %w", mes.err)
	}
	if ultimas.err != nil {
		return nil, fmt.Errorf("dashboard: últimas solicitudes: %w", ultimas.err)
	}

	total := 0
	for _, n := range estados.counts {
		total += n
	}
	completadas := estados.counts[entity.EstadoCompletada]

	porPrioridad := make(map[string]int, len(prioridades.counts))
	for _, p := range entity.Prioridades() {
		porPrioridad[string(p)] = prioridades.counts[p]
	}

	ultimasDTO := make([]dto.UltimaSolicitudDTO, 0, len(ultimas.rows))
	for _, row := range ultimas.rows {
		ultimasDTO = append(ultimasDTO, dto.UltimaSolicitudDTO{
			ID:            row.Solicitud.ID,
			NombreCliente: row.Solicitud.NombreCliente,
			NombreLanding: row.Solicitud.NombreLanding,
			Estado:        string(row.Solicitud.Estado),
			Prioridad:     string(row.Solicitud.Prioridad),
			FechaCreacion: row.Solicitud.FechaCreacion,
			UserName:      row.UserName,
		})
	}

	return &dto.DashboardStatsDTO{
		TotalSolicitudes:          total,
		SolicitudesPendientes:     estados.counts[entity.EstadoPendiente],
		SolicitudesEnDiseno:       estados.counts[entity.EstadoEnDiseno],
		SolicitudesEnProgramacion: estados.counts[entity.EstadoEnProgramacion],
		SolicitudesCompletadas:    completadas,
		SolicitudesEsteMes:        mes.count,
		SolicitudesPorPrioridad:   porPrioridad,
		UltimasSolicitudes:        ultimasDTO,
		PromedioCompletado:        promedioCompletado(completadas, total),
		MesLabel:                  monthLabel(now),
	}, nil
}

// promedioCompletado devuelve el porcentaje de completadas sobre el total,
// redondeado a un decimal. Cero cuando el total es cero.
func promedioCompletado(completadas, total int) float64 {
	if total == 0 {
		return 0
	}
	pct := decimal.NewFromInt(int64(completadas)).
		Div(decimal.NewFromInt(int64(total))).
		Mul(decimal.NewFromInt(100)).
		Round(1)
	out, _ := pct.Float64()
	return out
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Agosto 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
