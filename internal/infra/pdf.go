package infra

// pdf.go renders purchase and sale documents with go-pdf/fpdf.
// The layout is an A4 portrait sheet with:
//   - Document title, number, date and estado
//   - Counterparty line (proveedor or cliente)
//   - Line table (producto, cantidad, precio, descuento, subtotal)
//   - Subtotal, discount and bold total
//
// The bytes are returned to the caller; nothing is written to disk.

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// DocumentoPDF is the printable view of a Compra or Venta.
type DocumentoPDF struct {
	Titulo      string // "Orden de Compra", "Comprobante de Venta"
	Numero      string
	Fecha       string
	Estado      string
	Contraparte string // "Proveedor: ..." / "Cliente: ..."
	Lineas      []LineaPDF

	Subtotal       decimal.Decimal
	DescuentoTotal decimal.Decimal
	Total          decimal.Decimal
}

type LineaPDF struct {
	Producto            string
	Cantidad            int
	PrecioUnitario      decimal.Decimal
	PorcentajeDescuento decimal.Decimal
	Subtotal            decimal.Decimal
}

// RenderDocumentoPDF renders doc and returns the PDF bytes.
func RenderDocumentoPDF(doc DocumentoPDF) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetTitle(doc.Titulo, true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, tr(doc.Titulo), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	numero := doc.Numero
	if numero == "" {
		numero = "s/n"
	}
	pdf.CellFormat(contentW/2, 6, tr("N° "+numero), "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW/2, 6, doc.Fecha, "", 1, "R", false, 0, "")
	pdf.CellFormat(contentW/2, 6, tr(doc.Contraparte), "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW/2, 6, "Estado: "+doc.Estado, "", 1, "R", false, 0, "")
	pdf.Ln(4)

	// ── Lines ────────────────────────────────────────────────────────────────
	widths := []float64{contentW * 0.40, contentW * 0.10, contentW * 0.17, contentW * 0.13, contentW * 0.20}
	headers := []string{"Producto", "Cant", "Precio", "Desc %", "Subtotal"}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		align := "R"
		if i == 0 {
			align = "L"
		}
		pdf.CellFormat(widths[i], 7, h, "1", 0, align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, l := range doc.Lineas {
		nombre := l.Producto
		if len([]rune(nombre)) > 40 {
			nombre = string([]rune(nombre)[:39]) + "..."
		}
		pdf.CellFormat(widths[0], 6, tr(nombre), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, fmt.Sprintf("%d", l.Cantidad), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[2], 6, "$"+l.PrecioUnitario.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 6, l.PorcentajeDescuento.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 6, "$"+l.Subtotal.StringFixed(2), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(3)

	// ── Totals ───────────────────────────────────────────────────────────────
	labelW := contentW - widths[4]
	pdf.CellFormat(labelW, 6, "Subtotal:", "", 0, "R", false, 0, "")
	pdf.CellFormat(widths[4], 6, "$"+doc.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	if !doc.DescuentoTotal.IsZero() {
		pdf.CellFormat(labelW, 6, "Descuento:", "", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 6, "-$"+doc.DescuentoTotal.StringFixed(2), "", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(labelW, 7, "TOTAL:", "", 0, "R", false, 0, "")
	pdf.CellFormat(widths[4], 7, "$"+doc.Total.StringFixed(2), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render: %w", err)
	}
	return buf.Bytes(), nil
}
