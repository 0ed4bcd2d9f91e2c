// Package pdf genera la ficha cadastral del cliente en PDF.
//
// Layout de la página A4:
//
//	┌──────────────────────────────────────────────┐
//	│  HEADER: Ficha cadastral + fecha de cadastro  │
//	│  DADOS PESSOAIS: nome, CPF                    │
//	│  CONTATO: email, telefone                     │
//	│  ENDEREÇO: rua/número, bairro, cidade/UF, CEP │
//	└──────────────────────────────────────────────┘
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

	"github.com/jhoicas/cadastro-clientes/internal/application/dto"
	"github.com/jhoicas/cadastro-clientes/internal/application/usecase"
	"github.com/jhoicas/cadastro-clientes/pkg/brformat"
)

var _ usecase.CustomerSheetGenerator = (*MarotoSheetGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 37, Green: 99, Blue: 235}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoSheetGenerator implementa usecase.CustomerSheetGenerator usando Maroto v2.
type MarotoSheetGenerator struct {
	loc *time.Location
}

// NewMarotoSheetGenerator construye el generador; las fechas se muestran en loc.
func NewMarotoSheetGenerator(loc *time.Location) *MarotoSheetGenerator {
	return &MarotoSheetGenerator{loc: loc}
}

// GenerateCustomerSheet genera el PDF y devuelve sus bytes.
func (g *MarotoSheetGenerator) GenerateCustomerSheet(_ context.Context, c *dto.CustomerResponse) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(15).WithBottomMargin(15).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 10}).
		WithTitle("Ficha cadastral - "+c.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(c))
	m.AddRows(line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(sectionRow("DADOS PESSOAIS"))
	m.AddRows(fieldRow("Nome completo", c.Name))
	m.AddRows(fieldRow("CPF", brformat.CPF(c.TaxID)))

	m.AddRows(sectionRow("CONTATO"))
	m.AddRows(fieldRow("Email", c.Email))
	m.AddRows(fieldRow("Telefone", c.Phone))

	a := c.Address
	m.AddRows(sectionRow("ENDEREÇO"))
	m.AddRows(fieldRow("Rua", a.Street+", "+a.Number))
	if a.Complement != "" {
		m.AddRows(fieldRow("Complemento", a.Complement))
	}
	m.AddRows(fieldRow("Bairro", a.Neighborhood))
	m.AddRows(fieldRow("Cidade / UF", a.City+" / "+a.State))
	m.AddRows(fieldRow("CEP", brformat.CEP(a.PostalCode)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar ficha: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *MarotoSheetGenerator) headerRow(c *dto.CustomerResponse) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("FICHA CADASTRAL", props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New(c.Name, props.Text{Size: 10, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Data de cadastro", props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New(brformat.Date(c.RegisteredAt, g.loc), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 7,
			}),
		),
	)
}

func sectionRow(title string) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 4,
		}),
	))
}

func fieldRow(label, value string) core.Row {
	return row.New(7).Add(
		col.New(4).Add(text.New(label, props.Text{Size: 9, Color: colorGray, Top: 1})),
		col.New(8).Add(text.New(value, props.Text{Size: 10, Top: 1})),
	)
}
