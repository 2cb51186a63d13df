package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/Clssp/New-Radas-Local/internal/snapshot"
)

// Generate renders one snapshot as a PDF document for download.
func Generate(snap *snapshot.Snapshot) ([]byte, error) {
	p := snap.Payload

	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(12, "Market Analysis Report", props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)

	m.AddRow(16,
		col.New(12).Add(
			text.New(fmt.Sprintf("%s — %s", p.Term, p.Location), props.Text{
				Size:  12,
				Style: fontstyle.Bold,
			}),
			text.New("Business type: "+p.BusinessType, props.Text{Top: 6, Size: 9}),
			text.New("Generated: "+snap.CreatedAt.Format(time.DateOnly), props.Text{Top: 10, Size: 9}),
		),
	)

	if p.ExecutiveSummary != "" {
		sectionTitle(m, "Executive Summary")
		m.AddRow(24,
			text.NewCol(12, p.ExecutiveSummary, props.Text{Size: 9}),
		)
	}

	sectionTitle(m, "Sentiment")
	m.AddRow(10,
		text.NewCol(4, fmt.Sprintf("Positive: %.0f%%", p.Sentiment.Positive), props.Text{Size: 9}),
		text.NewCol(4, fmt.Sprintf("Neutral: %.0f%%", p.Sentiment.Neutral), props.Text{Size: 9}),
		text.NewCol(4, fmt.Sprintf("Negative: %.0f%%", p.Sentiment.Negative), props.Text{Size: 9}),
	)

	if len(p.Competitors) > 0 {
		sectionTitle(m, fmt.Sprintf("Competitors (%d)", len(p.Competitors)))
		m.AddRow(8,
			text.NewCol(6, "Name", props.Text{Style: fontstyle.Bold, Size: 9}),
			text.NewCol(3, "Rating", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
			text.NewCol(3, "Reviews", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		)
		for _, c := range p.Competitors {
			rating := "—"
			if c.Rating != nil {
				rating = fmt.Sprintf("%.1f", *c.Rating)
			}
			reviews := "—"
			if c.RatingCount != nil {
				reviews = fmt.Sprintf("%d", *c.RatingCount)
			}
			m.AddRow(8,
				text.NewCol(6, c.Name, props.Text{Size: 9}),
				text.NewCol(3, rating, props.Text{Size: 9, Align: align.Right}),
				text.NewCol(3, reviews, props.Text{Size: 9, Align: align.Right}),
			)
		}
	}

	if len(p.ActionPlan) > 0 {
		sectionTitle(m, "Action Plan")
		for i, step := range p.ActionPlan {
			m.AddRow(10,
				text.NewCol(12, fmt.Sprintf("%d. %s", i+1, step), props.Text{Size: 9}),
			)
		}
	}

	for _, d := range p.Dossiers {
		sectionTitle(m, "Dossier: "+d.Name)
		m.AddRow(28,
			col.New(12).Add(
				text.New(d.MarketPositioning, props.Text{Size: 9}),
				text.New("Strengths: "+d.Strengths, props.Text{Top: 10, Size: 9}),
				text.New("Weaknesses: "+d.Weaknesses, props.Text{Top: 16, Size: 9}),
			),
		)
	}

	if p.Demographics.Summary != "" {
		sectionTitle(m, "Demographics")
		m.AddRow(20,
			col.New(12).Add(
				text.New(p.Demographics.Summary, props.Text{Size: 9}),
				text.New("Age range: "+p.Demographics.AgeRange, props.Text{Top: 10, Size: 9}),
				text.New("Interests: "+strings.Join(p.Demographics.MainInterests, ", "), props.Text{Top: 14, Size: 9}),
			),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

func sectionTitle(m core.Maroto, title string) {
	m.AddRow(12,
		text.NewCol(12, title, props.Text{
			Size:  13,
			Style: fontstyle.Bold,
			Top:   4,
		}),
	)
}
