package generate

import "io"

// drawOp records one draw call on a fake slide.
type drawOp struct {
	kind   string
	text   string
	format string
	box    Box
}

type fakeSlide struct {
	pageW, pageH float64
	background   string
	bgErr        error
	ops          []drawOp
}

func (s *fakeSlide) PageSize() (float64, float64) { return s.pageW, s.pageH }

func (s *fakeSlide) SetBackground(imagePath string) error {
	s.background = imagePath
	return s.bgErr
}

func (s *fakeSlide) DrawText(text string, box Box) error {
	s.ops = append(s.ops, drawOp{kind: "text", text: text, box: box})
	return nil
}

func (s *fakeSlide) DrawWarning(text string, box Box) error {
	s.ops = append(s.ops, drawOp{kind: "warning", text: text, box: box})
	return nil
}

func (s *fakeSlide) DrawCheckmark(box Box) error {
	s.ops = append(s.ops, drawOp{kind: "checkmark", box: box})
	return nil
}

func (s *fakeSlide) DrawImage(data []byte, format string, box Box) error {
	s.ops = append(s.ops, drawOp{kind: "image", format: format, box: box})
	return nil
}

type fakeDocument struct {
	pageW, pageH float64
	slides       []*fakeSlide
}

func newFakeDocument(pageW, pageH float64) *fakeDocument {
	return &fakeDocument{pageW: pageW, pageH: pageH}
}

func (d *fakeDocument) AddSlide() SlideCanvas {
	slide := &fakeSlide{pageW: d.pageW, pageH: d.pageH}
	d.slides = append(d.slides, slide)
	return slide
}

func (d *fakeDocument) Write(w io.Writer) error { return nil }
