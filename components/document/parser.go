package document

import (
	"bytes"
	"context"
	"io"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/ledongthuc/pdf"
)

// Parser converts raw document bytes into text written to w
type Parser interface {
	Parse(ctx context.Context, r *bytes.Reader, w io.Writer) error
}

var (
	_ Parser = (*TextParser)(nil)
	_ Parser = (*HTMLParser)(nil)
	_ Parser = (*PDFParser)(nil)
)

// TextParser copies text and Markdown files unchanged
type TextParser struct{}

func (TextParser) Parse(_ context.Context, r *bytes.Reader, w io.Writer) error {
	_, err := io.Copy(w, r)
	return err
}

// HTMLParser converts HTML to Markdown
type HTMLParser struct {
	opts []converter.ConvertOptionFunc
}

func NewHTMLParser(opts ...converter.ConvertOptionFunc) *HTMLParser {
	return &HTMLParser{
		opts: opts,
	}
}

func (h *HTMLParser) Parse(_ context.Context, r *bytes.Reader, w io.Writer) error {
	bs, err := htmltomarkdown.ConvertReader(r, h.opts...)
	if err != nil {
		return err
	}
	_, err = w.Write(bs)
	return err
}

// PDFParser extracts the text of a PDF row by row. Pages are separated by a
// blank line.
type PDFParser struct {
	password string
}

type PDFParserOption func(*PDFParser)

func PDFParserWithPassword(password string) PDFParserOption {
	return func(p *PDFParser) {
		p.password = password
	}
}

func NewPDFParser(opts ...PDFParserOption) *PDFParser {
	ret := new(PDFParser)
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

func (p *PDFParser) Parse(ctx context.Context, reader *bytes.Reader, w io.Writer) error {
	var (
		r   *pdf.Reader
		err error
	)
	if p.password != "" {
		r, err = pdf.NewReaderEncrypted(reader, reader.Size(), func() string {
			return p.password
		})
	} else {
		r, err = pdf.NewReader(reader, reader.Size())
	}
	if err != nil {
		return err
	}
	buf := new(bytes.Buffer)
	for pageIndex := 1; pageIndex <= r.NumPage(); pageIndex++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return err
		}
		if buf.Len() > 0 {
			buf.WriteString("\n\n")
		}
		for idx, row := range rows {
			if idx > 0 {
				buf.WriteByte('\n')
			}
			for _, word := range row.Content {
				buf.WriteString(word.S)
			}
		}
	}
	_, err = buf.WriteTo(w)
	return err
}
