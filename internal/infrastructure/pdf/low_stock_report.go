// Package pdf renders the printable low-stock replenishment report handed to
// warehouse staff.
//
// A4 layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: title + generated-at timestamp                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: Item | Warehouse | On hand | Threshold | Deficit    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALS: items below threshold / stockouts / value at risk  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

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
	"github.com/shopspring/decimal"

	"github.com/ecothreads/marketplace-api/internal/application/dto"
)

var (
	colorPrimary = &props.Color{Red: 34, Green: 102, Blue: 68}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 40, Blue: 40}
)

// LowStockReportGenerator renders low-stock rows into a PDF using Maroto v2.
type LowStockReportGenerator struct{}

// NewLowStockReportGenerator builds the generator.
func NewLowStockReportGenerator() *LowStockReportGenerator { return &LowStockReportGenerator{} }

// Generate renders the report and returns its bytes.
func (g *LowStockReportGenerator) Generate(_ context.Context, title string, items []dto.LowStockItemView) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(title))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(items) {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(items))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(title string) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Replenishment report", props.Text{
				Size: 8, Top: 10, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generated: "+time.Now().Format("2006-01-02 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Item", 4, align.Left),
		h("Warehouse", 3, align.Left),
		h("On hand", 2, align.Right),
		h("Threshold", 1, align.Right),
		h("Deficit", 2, align.Right),
	)
}

func tableItemRows(items []dto.LowStockItemView) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		nameColor := colorGray
		if it.Stockout {
			nameColor = colorAlert
		}
		result = append(result, row.New(7).Add(
			col.New(4).Add(text.New(
				fmt.Sprintf("%s (%s)", it.ItemName, it.ItemType),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1, Color: nameColor},
			)),
			col.New(3).Add(text.New(
				nonEmpty(it.WarehouseName, "—"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				it.QuantityOnHand.String()+" "+it.Unit,
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				it.MinThreshold.String(),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				it.Difference.String(),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1, Color: colorAlert},
			)),
		))
	}
	return result
}

func totalsRow(items []dto.LowStockItemView) core.Row {
	stockouts := 0
	valueAtRisk := decimal.Zero
	for _, it := range items {
		if it.Stockout {
			stockouts++
		}
		valueAtRisk = valueAtRisk.Add(it.EstimatedValue)
	}

	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}

	return row.New(20).Add(
		col.New(4),
		col.New(5).Add(
			label("Items below threshold:"),
			label("Stockouts:"),
			label("Inventory value at risk:"),
		),
		col.New(3).Add(
			value(fmt.Sprintf("%d", len(items))),
			value(fmt.Sprintf("%d", stockouts)),
			value("$"+valueAtRisk.StringFixed(2)),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
