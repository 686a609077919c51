package render

import (
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/pborges/kmap/internal/logic"
)

var page = template.Must(template.New("kmap").Parse(`<div class="karnaugh-map">
<table class="k-map">
<tr><th></th>{{range .ColHeaders}}<th>{{.}}</th>{{end}}</tr>
{{- range .Rows}}
<tr><th>{{.Header}}</th>{{range .Cells}}<td class="{{.Class}}"{{.Attrs}}>{{.Cell}}</td>{{end}}</tr>
{{- end}}
</table>
<div class="legend">
<h4>Prime Implicants:</h4>
<ul>
{{- range .Legend}}
<li class="{{if .Essential}}essential-pi{{else}}prime-implicant{{end}}" data-group-id="{{.ID}}" data-implicant="{{.Pattern}}">{{.Term}}{{if .Essential}} (Essential){{end}}</li>
{{- end}}
</ul>
<div class="simplified">
<h4>Simplified Expression:</h4>
<p>{{.Expression}}</p>
</div>
</div>
</div>
`))

// Attrs tags the cell with one data-group-N attribute per grouping that
// covers it, valued "essential" or "prime".
func (c viewCell) Attrs() template.HTMLAttr {
	var b strings.Builder
	for _, g := range c.Groups {
		fmt.Fprintf(&b, ` data-group-%d="%s"`, g.ID, kind(g.Essential))
	}
	return template.HTMLAttr(b.String())
}

// HTML writes the map as a table followed by a legend of prime implicants
// and the simplified expression.
func HTML(w io.Writer, km *logic.KarnaughMap) error {
	v, err := newView(km)
	if err != nil {
		return err
	}
	return errors.Wrap(page.Execute(w, v), "render html")
}
