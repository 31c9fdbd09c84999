package pptx

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDeck(t *testing.T, p *Presentation) *zip.Reader {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, p.Write(&buf))
	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	return zr
}

func partNames(zr *zip.Reader) map[string]bool {
	names := make(map[string]bool, len(zr.File))
	for _, f := range zr.File {
		names[f.Name] = true
	}
	return names
}

func readPart(t *testing.T, zr *zip.Reader, name string) string {
	t.Helper()
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		var buf bytes.Buffer
		_, err = buf.ReadFrom(rc)
		require.NoError(t, err)
		return buf.String()
	}
	t.Fatalf("part %s not found", name)
	return ""
}

func TestWriteEmptyDeck(t *testing.T) {
	zr := writeDeck(t, New())
	names := partNames(zr)

	for _, required := range []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"ppt/presentation.xml",
		"ppt/_rels/presentation.xml.rels",
		"ppt/slideMasters/slideMaster1.xml",
		"ppt/slideLayouts/slideLayout1.xml",
		"ppt/theme/theme1.xml",
	} {
		assert.True(t, names[required], "missing part %s", required)
	}
	assert.False(t, names["ppt/slides/slide1.xml"])
}

func TestWriteDeckWithSlides(t *testing.T) {
	p := New()
	s1 := p.AddSlide()
	s1.AddTextBox("Hello", Box{X: 1, Y: 0.5, W: 2, H: 0.4}, TextOptions{SizePt: 14})
	p.AddSlide()

	require.Equal(t, 2, p.SlideCount())

	zr := writeDeck(t, p)
	names := partNames(zr)
	assert.True(t, names["ppt/slides/slide1.xml"])
	assert.True(t, names["ppt/slides/slide2.xml"])
	assert.True(t, names["ppt/slides/_rels/slide1.xml.rels"])

	presentation := readPart(t, zr, "ppt/presentation.xml")
	// 10 x 5.625in at 914400 EMU per inch.
	assert.Contains(t, presentation, `cx="9144000" cy="5143500"`)
	assert.Contains(t, presentation, `<p:sldId id="256" r:id="rId2"/>`)
	assert.Contains(t, presentation, `<p:sldId id="257" r:id="rId3"/>`)
}

func TestSlideGeometryAndText(t *testing.T) {
	p := New()
	s := p.AddSlide()
	s.AddTextBox("Q3 <Report> & Summary", Box{X: 1, Y: 1, W: 2, H: 0.5}, TextOptions{SizePt: 14, Color: "FF0000", Bold: true})

	zr := writeDeck(t, p)
	slide := readPart(t, zr, "ppt/slides/slide1.xml")

	assert.Contains(t, slide, `<a:off x="914400" y="914400"/>`)
	assert.Contains(t, slide, `<a:ext cx="1828800" cy="457200"/>`)
	assert.Contains(t, slide, `sz="1400" b="1"`)
	assert.Contains(t, slide, `val="FF0000"`)
	// Markup in field values must be escaped.
	assert.Contains(t, slide, "Q3 &lt;Report&gt; &amp; Summary")
}

func TestBackgroundPicture(t *testing.T) {
	data := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

	p := New()
	s := p.AddSlide()
	s.AddBackground(data, "png")

	zr := writeDeck(t, p)
	names := partNames(zr)
	assert.True(t, names["ppt/media/image1.png"])

	slide := readPart(t, zr, "ppt/slides/slide1.xml")
	assert.Contains(t, slide, `r:embed="rId1"`)
	assert.Contains(t, slide, `<a:ext cx="9144000" cy="5143500"/>`)

	rels := readPart(t, zr, "ppt/slides/_rels/slide1.xml.rels")
	assert.Contains(t, rels, `Target="../media/image1.png"`)
	assert.Contains(t, rels, "slideLayout1.xml")
}

func TestContentTypesListEverySlide(t *testing.T) {
	p := New()
	p.AddSlide()
	p.AddSlide()
	p.AddSlide()

	zr := writeDeck(t, p)
	contentTypes := readPart(t, zr, "[Content_Types].xml")
	assert.Contains(t, contentTypes, "/ppt/slides/slide3.xml")
}
