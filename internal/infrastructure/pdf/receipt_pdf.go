// Package pdf genera el comprobante imprimible de una recepción de
// mercancía.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del negocio  │  Código PN + Fecha           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PROVEEDOR + UBICACIÓN + ESTADO                              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Insumo | Unidad | P.Unit | Total              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL DE LA RECEPCIÓN                                       │
//	│  FIRMAS: creado por / completado por                         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/tu-usuario/resto-backoffice/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ReceiptPDFGenerator genera comprobantes de recepción con Maroto v2.
type ReceiptPDFGenerator struct {
	businessName string
}

// NewReceiptPDFGenerator construye el generador.
func NewReceiptPDFGenerator(businessName string) *ReceiptPDFGenerator {
	return &ReceiptPDFGenerator{businessName: businessName}
}

// Generate produce el PDF de la recepción y devuelve sus bytes. supplier
// puede ser nil si el proveedor fue eliminado después.
func (g *ReceiptPDFGenerator) Generate(_ context.Context, rc *entity.ImportReceipt, supplier *entity.Supplier) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Recepción de mercancía "+rc.Code, true).
		WithAuthor(g.businessName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(rc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(detailsRow(rc, supplier))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(rc.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(rc))
	m.AddRows(line.NewRow(3))
	m.AddRows(signaturesRow(rc))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: nombre del negocio (izq), código y fecha (der).
func (g *ReceiptPDFGenerator) headerRow(rc *entity.ImportReceipt) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.businessName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Recepción de mercancía", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(rc.Code, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 3,
			}),
			text.New("Fecha: "+rc.CreatedAt.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 11, Color: colorGray,
			}),
		),
	)
}

// detailsRow: proveedor, ubicación destino y estado del documento.
func detailsRow(rc *entity.ImportReceipt, supplier *entity.Supplier) core.Row {
	supplierName := "—"
	if supplier != nil {
		supplierName = supplier.Name
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("Proveedor: "+supplierName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 1,
			}),
			text.New(fmt.Sprintf("Destino: %s   |   Estado: %s", rc.Location.String(), rc.Status),
				props.Text{Size: 8, Top: 8, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 2, align.Center),
		h("Insumo", 4, align.Left),
		h("Unidad", 2, align.Center),
		h("P. Unit.", 2, align.Right),
		h("Total", 2, align.Right),
	)
}

// tableItemRows: una fila por línea de la recepción.
func tableItemRows(items []entity.ReceiptItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				it.Quantity.String(),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(4).Add(text.New(
				it.IngredientName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				it.Unit,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				it.PricePerUnit.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				it.Total.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalRow: total del documento alineado a la derecha.
func totalRow(rc *entity.ImportReceipt) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(3).Add(text.New(rc.TotalAmount.StringFixed(2), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: 2,
		})),
	)
}

// signaturesRow: quién creó y quién completó el documento.
func signaturesRow(rc *entity.ImportReceipt) core.Row {
	completed := "—"
	if rc.CompletedByName != "" && rc.CompletedAt != nil {
		completed = fmt.Sprintf("%s (%s)", rc.CompletedByName, rc.CompletedAt.Format("02/01/2006 15:04"))
	}
	created := rc.CreatedByName
	if created == "" {
		created = "—"
	}
	return row.New(12).Add(
		col.New(6).Add(
			text.New("Creado por", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(created, props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
		col.New(6).Add(
			text.New("Completado por", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(completed, props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}
