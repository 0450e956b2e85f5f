// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdftest

import (
	"archive/zip"
	"encoding/xml"
	"io"
	"strings"
	"testing"
)

// Paragraph is one w:p of word/document.xml.
type Paragraph struct {
	Style string
	Text  string
}

// ReadDocx returns the non-empty paragraphs of a .docx file.
func ReadDocx(t testing.TB, path string) []Paragraph {
	t.Helper()

	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("opening %s: %v", path, err)
	}
	defer zr.Close()

	var body []byte
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("opening %s: %v", f.Name, err)
		}
		body, err = io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("reading %s: %v", f.Name, err)
		}
	}
	if len(body) == 0 {
		t.Fatalf("%s: word/document.xml missing", path)
	}

	var doc struct {
		Body struct {
			Paragraphs []struct {
				Style struct {
					Val string `xml:"val,attr"`
				} `xml:"pPr>pStyle"`
				Runs []struct {
					Text []string `xml:"t"`
				} `xml:"r"`
			} `xml:"p"`
		} `xml:"body"`
	}
	if err := xml.Unmarshal(body, &doc); err != nil {
		t.Fatalf("parsing document.xml: %v", err)
	}

	var out []Paragraph
	for _, p := range doc.Body.Paragraphs {
		var b strings.Builder
		for _, r := range p.Runs {
			for _, s := range r.Text {
				b.WriteString(s)
			}
		}
		if b.Len() == 0 {
			continue
		}
		out = append(out, Paragraph{Style: p.Style.Val, Text: b.String()})
	}
	return out
}
