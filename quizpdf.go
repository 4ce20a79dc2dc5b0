package chapterquiz

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// RenderWorksheetPDF renders a printable worksheet for one quiz: numbered
// prompts with lettered options, and the answer key on a separate final page.
// Cyrillic text goes through the cp1251 translator so the core fonts can
// render it.
func RenderWorksheetPDF(set *QuizSet) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("cp1251")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	title := fmt.Sprintf("Квиз — Поглавје %d", set.Chapter)
	if set.ChapterTitle != "" {
		title += ": " + set.ChapterTitle
	}
	pdf.CellFormat(0, 10, tr(title), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	for i, item := range set.Items {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.MultiCell(0, 6, tr(fmt.Sprintf("%d. %s", i+1, item.Text)), "", "L", false)
		pdf.SetFont("Helvetica", "", 11)
		for j, opt := range item.Options {
			pdf.MultiCell(0, 6, tr(fmt.Sprintf("    %s) %s", optionLetter(j), opt)), "", "L", false)
		}
		pdf.Ln(3)
	}

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, tr("Одговори"), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for i, item := range set.Items {
		pdf.CellFormat(0, 6, tr(fmt.Sprintf("%d. %s", i+1, optionLetter(item.CorrectAnswer))), "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func optionLetter(i int) string {
	return string(rune('A' + i))
}
