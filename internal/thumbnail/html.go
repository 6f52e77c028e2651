package thumbnail

import (
	"fmt"
	"strings"
)

const (
	fullMIME      = "image/png"
	thumbnailMIME = "image/jpeg"
)

// Displayer is implemented by notebook front-ends that can show HTML.
type Displayer interface {
	DisplayHTML(html string)
}

// ToHTML renders the preview as an <img> tag. With link set, the tag is
// wrapped in an anchor that downloads the full image as "<name>.png".
func (t *Thumbnail) ToHTML(link bool) string {
	var sb strings.Builder
	sb.WriteString("<img ")
	if t.width > 0 {
		fmt.Fprintf(&sb, "width=%d ", t.width)
	}
	fmt.Fprintf(&sb, `src="%s" />`, dataURI(thumbnailMIME, t.thumbnailEncoded))
	img := sb.String()

	if !link {
		return img
	}

	return fmt.Sprintf(`<a download="%s" href="%s">%s</a>`,
		t.FileName(), dataURI(fullMIME, t.fullEncoded), img)
}

// Repr shows the linked preview on d and returns the download file name.
func (t *Thumbnail) Repr(d Displayer) string {
	d.DisplayHTML(t.ToHTML(true))
	return t.FileName()
}

// FileName is the download name. The extension is always .png.
func (t *Thumbnail) FileName() string {
	return t.name + ".png"
}

// String implements fmt.Stringer without displaying anything.
func (t *Thumbnail) String() string {
	return t.FileName()
}

func dataURI(mime, encoded string) string {
	return "data:" + mime + ";base64," + encoded
}
