package render

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/pborges/kmap/internal/logic"
)

// Text writes the map as an ASCII table. Implicants are listed below it,
// numbered as in the HTML legend.
func Text(w io.Writer, km *logic.KarnaughMap) error {
	v, err := newView(km)
	if err != nil {
		return err
	}

	tw := tablewriter.NewWriter(w)
	tw.SetAutoFormatHeaders(false)
	tw.SetAlignment(tablewriter.ALIGN_CENTER)
	tw.SetHeader(append([]string{""}, v.ColHeaders...))
	for _, row := range v.Rows {
		line := []string{row.Header}
		for _, c := range row.Cells {
			line = append(line, c.Cell.String())
		}
		tw.Append(line)
	}
	tw.Render()

	fmt.Fprintln(w, "Prime implicants:")
	for _, e := range v.Legend {
		suffix := ""
		if e.Essential {
			suffix = " (Essential)"
		}
		fmt.Fprintf(w, "  %d. %s  [%s]%s\n", e.ID, e.Term, e.Pattern, suffix)
	}
	_, err = fmt.Fprintf(w, "Simplified: %s\n", v.Expression)
	return err
}
