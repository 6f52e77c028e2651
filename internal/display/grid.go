package display

import (
	"errors"
	"fmt"
	"strings"

	"github.com/avitase/nbfigtulz/internal/thumbnail"
)

// ErrInvalidColumns is returned by Grid when fewer than one column is requested.
var ErrInvalidColumns = errors.New("number of columns must be at least 1")

// Grid arranges images into a table with the given number of columns. Nil
// entries produce empty cells. A positive width fixes the table width in pixels.
func Grid(images []*thumbnail.Thumbnail, columns, width int) (HTML, error) {
	if columns < 1 {
		return "", fmt.Errorf("%w: got %d", ErrInvalidColumns, columns)
	}

	cells := make([]string, len(images))
	for i, img := range images {
		if img != nil {
			cells[i] = img.ToHTML(true)
		}
	}

	var body strings.Builder
	for start := 0; start < len(cells); start += columns {
		end := min(start+columns, len(cells))

		body.WriteString(`<tr style="background-color: white">`)
		for _, cell := range cells[start:end] {
			fmt.Fprintf(&body, `<td style="text-align:center">%s</td>`, cell)
		}
		body.WriteString("</tr>")
	}

	var sb strings.Builder
	sb.WriteString("<table ")
	if width > 0 {
		fmt.Fprintf(&sb, `style="width: %dpx"`, width)
	}
	sb.WriteString(">")
	sb.WriteString(body.String())
	sb.WriteString("</table>")

	return HTML(sb.String()), nil
}
