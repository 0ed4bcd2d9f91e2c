package http

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cadastro-clientes/pkg/brformat"
)

//go:embed views/*.html
var viewsFS embed.FS

// Páginas disponibles; cada una se combina con layout.html.
const (
	pageHome    = "home"
	pageList    = "list"
	pageDetail  = "detail"
	pageForm    = "form"
	pageConfirm = "confirm"
	pageMessage = "message"
)

// Renderer plantillas HTML parseadas una sola vez al arrancar.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parsea layout + páginas embebidas. loc es la zona horaria de las fechas.
func NewRenderer(loc *time.Location) (*Renderer, error) {
	if loc == nil {
		loc = time.UTC
	}
	funcMap := template.FuncMap{
		"cpf":  brformat.CPF,
		"cep":  brformat.CEP,
		"date": func(t time.Time) string { return brformat.Date(t, loc) },
		"year": func() int { return time.Now().In(loc).Year() },
	}

	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, name := range []string{pageHome, pageList, pageDetail, pageForm, pageConfirm, pageMessage} {
		tmpl, err := template.New("layout.html").Funcs(funcMap).ParseFS(viewsFS, "views/layout.html", "views/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parsear vista %s: %w", name, err)
		}
		r.pages[name] = tmpl
	}
	return r, nil
}

// Render ejecuta la página en un buffer y la envía con el status indicado.
func (r *Renderer) Render(c *fiber.Ctx, status int, page string, data any) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("vista desconocida: %s", page)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		return fmt.Errorf("renderizar %s: %w", page, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).Send(buf.Bytes())
}
