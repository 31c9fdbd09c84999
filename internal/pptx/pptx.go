// Package pptx writes minimal PresentationML (.pptx) files: a fixed
// 10in x 5.625in slide size, full-bleed background pictures, positioned
// pictures and text boxes. It covers exactly what the generation pipeline
// needs without an external OOXML dependency.
package pptx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"os"
)

// EMUPerInch is the OOXML English Metric Unit scale.
const EMUPerInch = 914400

// Slide dimensions in inches (16:9 deck).
const (
	SlideWidthInches  = 10.0
	SlideHeightInches = 5.625
)

// Box is a rectangle in inches.
type Box struct {
	X, Y, W, H float64
}

// TextOptions styles a text run.
type TextOptions struct {
	// SizePt is the font size in points. Zero means 18pt.
	SizePt float64
	// Color is a hex RGB string like "FF0000". Empty means black.
	Color string
	Bold  bool
}

type image struct {
	data   []byte
	format string // "png" or "jpeg"
}

type picture struct {
	imageIndex int
	box        Box
}

type textbox struct {
	text string
	box  Box
	opts TextOptions
}

// Slide accumulates shapes in z-order: pictures first, then text boxes.
type Slide struct {
	pres     *Presentation
	pictures []picture
	texts    []textbox
}

// Presentation builds a deck in memory and writes it as a zip archive.
type Presentation struct {
	slides []*Slide
	images []image
}

// New creates an empty presentation.
func New() *Presentation {
	return &Presentation{}
}

// AddSlide appends a blank slide.
func (p *Presentation) AddSlide() *Slide {
	s := &Slide{pres: p}
	p.slides = append(p.slides, s)
	return s
}

// SlideCount returns the number of slides.
func (p *Presentation) SlideCount() int {
	return len(p.slides)
}

func (p *Presentation) addImage(data []byte, format string) int {
	if format != "jpeg" {
		format = "png"
	}
	p.images = append(p.images, image{data: data, format: format})
	return len(p.images) - 1
}

// AddBackground places a full-bleed picture behind subsequent shapes.
func (s *Slide) AddBackground(data []byte, format string) {
	s.AddPicture(data, format, Box{X: 0, Y: 0, W: SlideWidthInches, H: SlideHeightInches})
}

// AddPicture places a picture at the given box.
func (s *Slide) AddPicture(data []byte, format string, box Box) {
	idx := s.pres.addImage(data, format)
	s.pictures = append(s.pictures, picture{imageIndex: idx, box: box})
}

// AddTextBox places a text box at the given box.
func (s *Slide) AddTextBox(text string, box Box, opts TextOptions) {
	s.texts = append(s.texts, textbox{text: text, box: box, opts: opts})
}

func emu(inches float64) int64 {
	return int64(math.Round(inches * EMUPerInch))
}

func escape(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s)) //nolint:errcheck // bytes.Buffer cannot fail
	return buf.String()
}

// WriteFile writes the deck to path.
func (p *Presentation) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := p.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Write serializes the deck as a pptx archive.
func (p *Presentation) Write(w io.Writer) error {
	zw := zip.NewWriter(w)

	parts := []struct {
		name string
		data []byte
	}{
		{"[Content_Types].xml", p.contentTypesXML()},
		{"_rels/.rels", []byte(rootRelsXML)},
		{"ppt/presentation.xml", p.presentationXML()},
		{"ppt/_rels/presentation.xml.rels", p.presentationRelsXML()},
		{"ppt/slideMasters/slideMaster1.xml", []byte(slideMasterXML)},
		{"ppt/slideMasters/_rels/slideMaster1.xml.rels", []byte(slideMasterRelsXML)},
		{"ppt/slideLayouts/slideLayout1.xml", []byte(slideLayoutXML)},
		{"ppt/slideLayouts/_rels/slideLayout1.xml.rels", []byte(slideLayoutRelsXML)},
		{"ppt/theme/theme1.xml", []byte(themeXML)},
	}

	for i, slide := range p.slides {
		parts = append(parts,
			struct {
				name string
				data []byte
			}{fmt.Sprintf("ppt/slides/slide%d.xml", i+1), slide.xml()},
			struct {
				name string
				data []byte
			}{fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", i+1), slide.relsXML()},
		)
	}

	for i, img := range p.images {
		parts = append(parts, struct {
			name string
			data []byte
		}{fmt.Sprintf("ppt/media/image%d.%s", i+1, img.format), img.data})
	}

	for _, part := range parts {
		fw, err := zw.Create(part.name)
		if err != nil {
			return fmt.Errorf("create part %s: %w", part.name, err)
		}
		if _, err := fw.Write(part.data); err != nil {
			return fmt.Errorf("write part %s: %w", part.name, err)
		}
	}

	return zw.Close()
}

func (p *Presentation) contentTypesXML() []byte {
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	buf.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	buf.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	buf.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	buf.WriteString(`<Default Extension="png" ContentType="image/png"/>`)
	buf.WriteString(`<Default Extension="jpeg" ContentType="image/jpeg"/>`)
	buf.WriteString(`<Override PartName="/ppt/presentation.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"/>`)
	buf.WriteString(`<Override PartName="/ppt/slideMasters/slideMaster1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"/>`)
	buf.WriteString(`<Override PartName="/ppt/slideLayouts/slideLayout1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"/>`)
	buf.WriteString(`<Override PartName="/ppt/theme/theme1.xml" ContentType="application/vnd.openxmlformats-officedocument.theme+xml"/>`)
	for i := range p.slides {
		fmt.Fprintf(&buf, `<Override PartName="/ppt/slides/slide%d.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slide+xml"/>`, i+1)
	}
	buf.WriteString(`</Types>`)
	return buf.Bytes()
}

func (p *Presentation) presentationXML() []byte {
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	buf.WriteString(`<p:presentation xmlns:a="` + nsDrawing + `" xmlns:r="` + nsRelationships + `" xmlns:p="` + nsPresentation + `">`)
	buf.WriteString(`<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>`)
	buf.WriteString(`<p:sldIdLst>`)
	for i := range p.slides {
		fmt.Fprintf(&buf, `<p:sldId id="%d" r:id="rId%d"/>`, 256+i, 2+i)
	}
	buf.WriteString(`</p:sldIdLst>`)
	fmt.Fprintf(&buf, `<p:sldSz cx="%d" cy="%d"/>`, emu(SlideWidthInches), emu(SlideHeightInches))
	buf.WriteString(`<p:notesSz cx="6858000" cy="9144000"/>`)
	buf.WriteString(`</p:presentation>`)
	return buf.Bytes()
}

func (p *Presentation) presentationRelsXML() []byte {
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	buf.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	buf.WriteString(`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster" Target="slideMasters/slideMaster1.xml"/>`)
	for i := range p.slides {
		fmt.Fprintf(&buf, `<Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="slides/slide%d.xml"/>`, 2+i, i+1)
	}
	buf.WriteString(`</Relationships>`)
	return buf.Bytes()
}

func (s *Slide) xml() []byte {
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	buf.WriteString(`<p:sld xmlns:a="` + nsDrawing + `" xmlns:r="` + nsRelationships + `" xmlns:p="` + nsPresentation + `">`)
	buf.WriteString(`<p:cSld><p:spTree>`)
	buf.WriteString(`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>`)
	buf.WriteString(`<p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr>`)

	shapeID := 2
	for relIdx, pic := range s.pictures {
		fmt.Fprintf(&buf, `<p:pic><p:nvPicPr><p:cNvPr id="%d" name="Picture %d"/><p:cNvPicPr/><p:nvPr/></p:nvPicPr>`, shapeID, shapeID)
		fmt.Fprintf(&buf, `<p:blipFill><a:blip r:embed="rId%d"/><a:stretch><a:fillRect/></a:stretch></p:blipFill>`, relIdx+1)
		fmt.Fprintf(&buf, `<p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr></p:pic>`,
			emu(pic.box.X), emu(pic.box.Y), emu(pic.box.W), emu(pic.box.H))
		shapeID++
	}

	for _, tb := range s.texts {
		size := tb.opts.SizePt
		if size <= 0 {
			size = 18
		}
		color := tb.opts.Color
		if color == "" {
			color = "000000"
		}
		bold := 0
		if tb.opts.Bold {
			bold = 1
		}
		fmt.Fprintf(&buf, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="TextBox %d"/><p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr>`, shapeID, shapeID)
		fmt.Fprintf(&buf, `<p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom><a:noFill/></p:spPr>`,
			emu(tb.box.X), emu(tb.box.Y), emu(tb.box.W), emu(tb.box.H))
		buf.WriteString(`<p:txBody><a:bodyPr wrap="square" lIns="0" tIns="0" rIns="0" bIns="0"><a:normAutofit/></a:bodyPr><a:lstStyle/>`)
		fmt.Fprintf(&buf, `<a:p><a:r><a:rPr lang="en-US" sz="%d" b="%d" dirty="0"><a:solidFill><a:srgbClr val="%s"/></a:solidFill></a:rPr><a:t>%s</a:t></a:r></a:p>`,
			int(math.Round(size*100)), bold, color, escape(tb.text))
		buf.WriteString(`</p:txBody></p:sp>`)
		shapeID++
	}

	buf.WriteString(`</p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sld>`)
	return buf.Bytes()
}

func (s *Slide) relsXML() []byte {
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	buf.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	for relIdx, pic := range s.pictures {
		img := s.pres.images[pic.imageIndex]
		fmt.Fprintf(&buf, `<Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="../media/image%d.%s"/>`,
			relIdx+1, pic.imageIndex+1, img.format)
	}
	// Every slide references its layout with the next free rel id.
	fmt.Fprintf(&buf, `<Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout1.xml"/>`,
		len(s.pictures)+1)
	buf.WriteString(`</Relationships>`)
	return buf.Bytes()
}
