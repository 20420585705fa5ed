package pdf

import (
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/goliatone/go-fosterdocs/pkg/layout"
)

const (
	fontFamily   = "Helvetica"
	lineBody     = 5.0
	lineLabel    = 4.0
	blockSpacing = 2.5
	signatureBox = 16.0
	slotsPerRow  = 3
	columnGutter = 4.0
	checkboxSize = 3.5
)

// row is the unit a block is drawn in. A block whose rows fit on one page is
// never split; an oversized block breaks between rows.
type row struct {
	height float64
	draw   func(x, y float64)
}

func (w *writer) blockRows(block layout.Block) []row {
	switch block.Kind {
	case layout.BlockHeading:
		return w.headingRows(block)
	case layout.BlockParagraph:
		return w.paragraphRows(block.Text)
	case layout.BlockFields:
		return w.fieldRows(block.Fields)
	case layout.BlockTable:
		return w.tableRows(block.Columns, block.Rows)
	case layout.BlockChecklist:
		return w.checklistRows(block)
	case layout.BlockSignatures:
		return w.signatureRows(block.Signatures)
	default:
		return nil
	}
}

func (w *writer) headingRows(block layout.Block) []row {
	size := 13.0
	if block.Level > 1 {
		size = 11
	}
	w.pdf.SetFont(fontFamily, "B", size)
	lines := w.lines(block.Text, w.width)
	height := float64(lines)*6 + 1
	return []row{{
		height: height,
		draw: func(x, y float64) {
			w.pdf.SetFont(fontFamily, "B", size)
			w.pdf.SetXY(x, y)
			w.pdf.MultiCell(w.width, 6, w.tr(block.Text), "", "L", false)
		},
	}}
}

func (w *writer) paragraphRows(text string) []row {
	w.pdf.SetFont(fontFamily, "", 10)
	split := w.pdf.SplitLines([]byte(w.tr(text)), w.width)
	if len(split) == 0 {
		return nil
	}
	rows := make([]row, 0, len(split))
	for _, line := range split {
		line := string(line)
		rows = append(rows, row{
			height: lineBody,
			draw: func(x, y float64) {
				w.pdf.SetFont(fontFamily, "", 10)
				w.pdf.SetXY(x, y)
				w.pdf.CellFormat(w.width, lineBody, line, "", 0, "L", false, 0, "")
			},
		})
	}
	return rows
}

func (w *writer) fieldRows(lines []layout.FieldLine) []row {
	var rows []row
	var pending []layout.FieldLine
	flush := func() {
		if len(pending) == 0 {
			return
		}
		rows = append(rows, w.fieldRow(pending))
		pending = nil
	}
	for _, line := range lines {
		if line.Wide {
			flush()
			pending = []layout.FieldLine{line}
			flush()
			continue
		}
		pending = append(pending, line)
		if len(pending) == 2 {
			flush()
		}
	}
	flush()
	return rows
}

func (w *writer) fieldRow(cells []layout.FieldLine) row {
	colW := w.width
	if len(cells) > 1 || !cells[0].Wide {
		colW = (w.width - columnGutter) / 2
	}
	w.pdf.SetFont(fontFamily, "", 10)
	maxLines := 1
	for _, cell := range cells {
		if n := w.lines(cell.Value, colW); n > maxLines {
			maxLines = n
		}
	}
	height := lineLabel + float64(maxLines)*lineBody + 1.5
	return row{
		height: height,
		draw: func(x, y float64) {
			for i, cell := range cells {
				cx := x + float64(i)*(colW+columnGutter)
				w.pdf.SetFont(fontFamily, "B", 8)
				w.pdf.SetTextColor(90, 90, 90)
				w.pdf.SetXY(cx, y)
				w.pdf.CellFormat(colW, lineLabel, w.tr(cell.Label), "", 0, "L", false, 0, "")
				w.pdf.SetTextColor(0, 0, 0)
				w.pdf.SetFont(fontFamily, "", 10)
				w.pdf.SetXY(cx, y+lineLabel)
				w.pdf.MultiCell(colW, lineBody, w.tr(cell.Value), "", "L", false)
				w.pdf.Line(cx, y+height-0.8, cx+colW, y+height-0.8)
			}
		},
	}
}

func (w *writer) tableRows(columns []string, cells [][]string) []row {
	count := len(columns)
	for _, r := range cells {
		if len(r) > count {
			count = len(r)
		}
	}
	if count == 0 {
		return nil
	}
	colW := w.width / float64(count)

	rows := make([]row, 0, len(cells)+1)
	if len(columns) > 0 {
		rows = append(rows, w.tableRow(columns, colW, true))
	}
	for _, r := range cells {
		rows = append(rows, w.tableRow(r, colW, false))
	}
	return rows
}

func (w *writer) tableRow(cells []string, colW float64, header bool) row {
	style, size := "", 9.0
	if header {
		style = "B"
	}
	w.pdf.SetFont(fontFamily, style, size)
	maxLines := 1
	for _, cell := range cells {
		if n := w.lines(cell, colW-2); n > maxLines {
			maxLines = n
		}
	}
	height := float64(maxLines)*lineLabel + 2
	return row{
		height: height,
		draw: func(x, y float64) {
			w.pdf.SetFont(fontFamily, style, size)
			if header {
				w.pdf.SetFillColor(235, 235, 235)
				w.pdf.Rect(x, y, colW*float64(len(cells)), height, "F")
			}
			for i, cell := range cells {
				cx := x + float64(i)*colW
				w.pdf.Rect(cx, y, colW, height, "D")
				w.pdf.SetXY(cx+1, y+1)
				w.pdf.MultiCell(colW-2, lineLabel, w.tr(cell), "", "L", false)
			}
		},
	}
}

func (w *writer) checklistRows(block layout.Block) []row {
	var rows []row
	if strings.TrimSpace(block.Text) != "" {
		title := block.Text
		rows = append(rows, row{
			height: 6,
			draw: func(x, y float64) {
				w.pdf.SetFont(fontFamily, "B", 10)
				w.pdf.SetXY(x, y)
				w.pdf.CellFormat(w.width, 6, w.tr(title), "", 0, "L", false, 0, "")
			},
		})
	}
	for _, check := range block.Checks {
		rows = append(rows, row{
			height: lineBody + 0.5,
			draw: func(x, y float64) {
				w.pdf.Rect(x, y+0.8, checkboxSize, checkboxSize, "D")
				if check.Checked {
					w.pdf.Line(x+0.6, y+1.4, x+checkboxSize-0.6, y+0.2+checkboxSize)
					w.pdf.Line(x+checkboxSize-0.6, y+1.4, x+0.6, y+0.2+checkboxSize)
				}
				w.pdf.SetFont(fontFamily, "", 10)
				w.pdf.SetXY(x+checkboxSize+2, y)
				w.pdf.CellFormat(w.width-checkboxSize-2, lineBody, w.tr(check.Label), "", 0, "L", false, 0, "")
			},
		})
	}
	return rows
}

func (w *writer) signatureRows(slots []layout.SignatureSlot) []row {
	var rows []row
	for start := 0; start < len(slots); start += slotsPerRow {
		end := start + slotsPerRow
		if end > len(slots) {
			end = len(slots)
		}
		group := slots[start:end]
		colW := (w.width - columnGutter*float64(slotsPerRow-1)) / slotsPerRow
		rows = append(rows, row{
			height: signatureBox + 2*lineLabel + 3,
			draw: func(x, y float64) {
				for i, slot := range group {
					w.drawSignature(slot, x+float64(i)*(colW+columnGutter), y, colW)
				}
			},
		})
	}
	return rows
}

func (w *writer) drawSignature(slot layout.SignatureSlot, x, y, colW float64) {
	if slot.Signed && slot.Image != "" {
		if img, ok := w.image(slot.Image); ok {
			boxW, boxH := colW, signatureBox-1
			iw, ih := boxH*float64(img.width)/float64(img.height), boxH
			if iw > boxW {
				iw, ih = boxW, boxW*float64(img.height)/float64(img.width)
			}
			w.pdf.ImageOptions(img.name, x, y+signatureBox-ih-0.5, iw, ih, false,
				fpdf.ImageOptions{ImageType: "JPEG"}, 0, "")
		} else {
			w.pdf.SetFont(fontFamily, "I", 8)
			w.pdf.SetXY(x, y+signatureBox-lineBody)
			w.pdf.CellFormat(colW, lineBody, "Signature on file", "", 0, "L", false, 0, "")
		}
	}
	w.pdf.Line(x, y+signatureBox, x+colW, y+signatureBox)
	w.pdf.SetFont(fontFamily, "", 8)
	w.pdf.SetXY(x, y+signatureBox+0.5)
	w.pdf.CellFormat(colW, lineLabel, w.tr(slot.Label), "", 0, "L", false, 0, "")
	date := "Date: ____________"
	if slot.Date != "" {
		date = "Date: " + slot.Date
	}
	w.pdf.SetXY(x, y+signatureBox+0.5+lineLabel)
	w.pdf.CellFormat(colW, lineLabel, w.tr(date), "", 0, "L", false, 0, "")
}

func (w *writer) lines(text string, width float64) int {
	if text == "" {
		return 1
	}
	n := len(w.pdf.SplitLines([]byte(w.tr(text)), width))
	if n < 1 {
		return 1
	}
	return n
}
