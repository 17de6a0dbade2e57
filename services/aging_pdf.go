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
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GenerateAgingPDF creates the A/P aging PDF: one row per vendor, amounts
// bucketed by days past due, followed by a totals row.
func GenerateAgingPDF(data AgingExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Horizontal).
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
	m.AddRows(
		row.New(8).Add(
			col.New(12).Add(
				text.New(fmt.Sprintf("As of: %s", data.AsOfDate), props.Text{
					Size:  9,
					Align: align.Right,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
		),
	)
	m.AddRows(row.New(4))

	addAgingTableHeader(m)
	for _, r := range data.Rows {
		addAgingRow(m, r, false)
	}
	addAgingRow(m, data.Totals, true)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func addAgingTableHeader(m core.Maroto) {
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

	cols := []core.Col{
		col.New(3).Add(text.New("Vendor", headerTextLeft)).WithStyle(&headerCell),
	}
	for _, label := range AgingBucketLabels {
		cols = append(cols,
			col.New(1).Add(text.New(label, headerText)).WithStyle(&headerCell))
	}
	cols = append(cols,
		col.New(4).Add(text.New("Total", headerText)).WithStyle(&headerCell))

	m.AddRows(row.New(8).Add(cols...))
}

func addAgingRow(m core.Maroto, r AgingRow, isTotal bool) {
	textSize := 7.0
	style := fontstyle.Normal
	var cellStyle *props.Cell
	if isTotal {
		style = fontstyle.Bold
		textSize = 8
		bg := &props.Color{Red: 235, Green: 235, Blue: 235}
		cellStyle = &props.Cell{BackgroundColor: bg}
	}

	leftText := props.Text{Size: textSize, Style: style, Align: align.Left}
	rightText := props.Text{Size: textSize, Style: style, Align: align.Right}

	cols := []core.Col{
		col.New(3).Add(text.New(r.VendorName, leftText)),
	}
	for _, v := range r.Buckets {
		cols = append(cols, col.New(1).Add(text.New(FormatCurrency(v), rightText)))
	}
	cols = append(cols, col.New(4).Add(text.New(FormatCurrency(r.Total), rightText)))

	if cellStyle != nil {
		for i, c := range cols {
			cols[i] = c.WithStyle(cellStyle)
		}
	}

	m.AddRows(row.New(7).Add(cols...))
}
