package analytics

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/estoque-ti/internal/application/dto"
	"github.com/jhoicas/estoque-ti/internal/application/state"
	"github.com/jhoicas/estoque-ti/internal/domain"
)

// SnapshotSource provee el snapshot cargado (state.Cache).
type SnapshotSource interface {
	Snapshot() *state.Snapshot
}

// Exporter serializa un relatório ya renderizado (xlsx, csv o pdf).
type Exporter interface {
	Format() string
	ContentType() string
	Export(table dto.ReportTable) ([]byte, error)
}

// ExportFile archivo listo para descargar.
type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// ReportUseCase genera los relatórios sobre el snapshot en memoria; no consulta el gateway.
type ReportUseCase struct {
	snapshots SnapshotSource
	loc       *time.Location
	exporters map[string]Exporter
}

// NewReportUseCase construye el caso de uso con los formatos de exportación disponibles.
func NewReportUseCase(snapshots SnapshotSource, loc *time.Location, exporters ...Exporter) *ReportUseCase {
	uc := &ReportUseCase{snapshots: snapshots, loc: loc, exporters: make(map[string]Exporter, len(exporters))}
	for _, e := range exporters {
		uc.exporters[e.Format()] = e
	}
	return uc
}

// Build renderiza el relatório del tipo pedido.
func (uc *ReportUseCase) Build(reportType string) (*dto.ReportTable, error) {
	snap := uc.snapshots.Snapshot()
	var t dto.ReportTable
	switch reportType {
	case ReportStock:
		t = StockReport(snap.Products)
	case ReportMovements:
		t = MovementReport(snap.Movements)
	case ReportCategory:
		t = CategoryReport(snap.Movements)
	case ReportHistory:
		t = HistoryReport(snap, uc.loc)
	default:
		return nil, fmt.Errorf("%w: tipo de relatório desconhecido %q", domain.ErrInvalidInput, reportType)
	}
	return &t, nil
}

// Export renderiza y serializa el relatório; el archivo se llama "<tipo>.<formato>".
func (uc *ReportUseCase) Export(reportType, format string) (*ExportFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = "xlsx"
	}
	exp, ok := uc.exporters[format]
	if !ok {
		return nil, fmt.Errorf("%w: formato de exportação desconhecido %q", domain.ErrInvalidInput, format)
	}
	t, err := uc.Build(reportType)
	if err != nil {
		return nil, err
	}
	data, err := exp.Export(*t)
	if err != nil {
		return nil, fmt.Errorf("exportar %s como %s: %w", reportType, format, err)
	}
	return &ExportFile{
		Name:        reportType + "." + format,
		ContentType: exp.ContentType(),
		Data:        data,
	}, nil
}
