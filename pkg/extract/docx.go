package extract

import (
	"archive/zip"
	"fmt"
	"io"
	"regexp"
	"strings"
)

var (
	docxLineBreak  = regexp.MustCompile(`<w:br[^>]*/>`)
	docxParagraph  = regexp.MustCompile(`<w:p[^>]*>`)
	xmlTag         = regexp.MustCompile(`<[^>]+>`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
)

// A .docx file is a zip archive; the document body lives in
// word/document.xml. Stripping the tags is enough for retrieval text since
// no formatting survives anyway.
func fromDocx(path string) (string, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return "", err
	}
	defer archive.Close()

	for _, file := range archive.File {
		if file.Name != "word/document.xml" {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return "", err
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", err
		}

		return stripDocumentXML(string(data)), nil
	}

	return "", fmt.Errorf("no word/document.xml entry in archive")
}

func stripDocumentXML(xml string) string {
	text := docxLineBreak.ReplaceAllString(xml, "\n")
	text = docxParagraph.ReplaceAllString(text, "\n")
	text = xmlTag.ReplaceAllString(text, "")

	replacer := strings.NewReplacer(
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
	)
	text = replacer.Replace(text)

	return strings.TrimSpace(whitespaceRuns.ReplaceAllString(text, " "))
}
