package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GenerateJobCostPDF creates the job-cost report PDF using maroto/v2.
// It returns the raw PDF bytes or an error.
func GenerateJobCostPDF(data JobCostExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addJobCostHeader(m, data)
	addJobCostTableHeader(m)

	for _, group := range data.Groups {
		addJobCostGroup(m, group)
	}

	addJobCostGrandTotal(m, data.GrandTotal)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// addJobCostHeader adds the title, project/lot line, and as-of date.
func addJobCostHeader(m core.Maroto, data JobCostExportData) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(data.Title, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)

	scope := data.ProjectName
	if data.LotName != "" {
		scope += " — " + data.LotName
	}

	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(
				text.New(scope, props.Text{
					Size:  9,
					Align: align.Left,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
			col.New(6).Add(
				text.New(fmt.Sprintf("As of: %s", data.AsOfDate), props.Text{
					Size:  9,
					Align: align.Right,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
		),
	)

	m.AddRows(row.New(4))
}

// addJobCostTableHeader adds the column header row.
func addJobCostTableHeader(m core.Maroto) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left

	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(2).Add(
				text.New("Cost Code", headerTextLeft),
			).WithStyle(&headerCell),
			col.New(4).Add(
				text.New("Description", headerTextLeft),
			).WithStyle(&headerCell),
			col.New(2).Add(
				text.New("Budget", headerText),
			).WithStyle(&headerCell),
			col.New(2).Add(
				text.New("Actual", headerText),
			).WithStyle(&headerCell),
			col.New(2).Add(
				text.New("Variance", headerText),
			).WithStyle(&headerCell),
		),
	)
}

// addJobCostGroup adds a group header row, its data rows, and the shaded
// subtotal row.
func addJobCostGroup(m core.Maroto, group JobCostGroup) {
	groupBg := &props.Color{Red: 225, Green: 228, Blue: 232}
	groupCell := &props.Cell{BackgroundColor: groupBg}

	m.AddRows(
		row.New(7).Add(
			col.New(12).Add(
				text.New(group.Group, props.Text{
					Size:  8,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			).WithStyle(groupCell),
		),
	)

	baseText := props.Text{Size: 7, Align: align.Left}
	rightText := props.Text{Size: 7, Align: align.Right}

	for _, r := range group.Rows {
		m.AddRows(
			row.New(6).Add(
				col.New(2).Add(text.New(r.CostCode, baseText)),
				col.New(4).Add(text.New(r.Name, baseText)),
				col.New(2).Add(text.New(FormatCurrency(r.Budget), rightText)),
				col.New(2).Add(text.New(FormatCurrency(r.Actual), rightText)),
				col.New(2).Add(text.New(FormatAccounting(r.Variance), rightText)),
			),
		)
	}

	subtotalBg := &props.Color{Red: 245, Green: 245, Blue: 245}
	subtotalCell := &props.Cell{BackgroundColor: subtotalBg}
	subtotalLabel := props.Text{Size: 7, Style: fontstyle.Bold, Align: align.Left}
	subtotalValue := props.Text{Size: 7, Style: fontstyle.Bold, Align: align.Right}

	m.AddRows(
		row.New(7).Add(
			col.New(6).Add(
				text.New(fmt.Sprintf("Subtotal %s", group.Group), subtotalLabel),
			).WithStyle(subtotalCell),
			col.New(2).Add(
				text.New(FormatCurrency(group.Subtotal.Budget), subtotalValue),
			).WithStyle(subtotalCell),
			col.New(2).Add(
				text.New(FormatCurrency(group.Subtotal.Actual), subtotalValue),
			).WithStyle(subtotalCell),
			col.New(2).Add(
				text.New(FormatAccounting(group.Subtotal.Variance), subtotalValue),
			).WithStyle(subtotalCell),
		),
	)
}

// addJobCostGrandTotal adds the final total row across all groups.
func addJobCostGrandTotal(m core.Maroto, totals JobCostTotals) {
	m.AddRows(row.New(4))

	totalBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	totalCell := &props.Cell{BackgroundColor: totalBg}
	totalLabel := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Left,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	totalValue := totalLabel
	totalValue.Align = align.Right

	m.AddRows(
		row.New(9).Add(
			col.New(6).Add(
				text.New("Grand Total", totalLabel),
			).WithStyle(totalCell),
			col.New(2).Add(
				text.New(FormatCurrency(totals.Budget), totalValue),
			).WithStyle(totalCell),
			col.New(2).Add(
				text.New(FormatCurrency(totals.Actual), totalValue),
			).WithStyle(totalCell),
			col.New(2).Add(
				text.New(FormatAccounting(totals.Variance), totalValue),
			).WithStyle(totalCell),
		),
	)
}
