package infra

// pdf.go — document generation using go-pdf/fpdf.
// Two outputs share this file: A7 thermal-style sale receipts and the A4
// monthly commission payout sheet.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bernardesrodrigoc/explotrack/internal/dto"
	"github.com/bernardesrodrigoc/explotrack/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateReciboPDF renders an internal PDF receipt for a committed Venda.
// storagePath is the directory where the PDF will be written (created if
// needed). Returns the absolute path to the generated file.
func GenerateReciboPDF(venda *model.Venda, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("recibo_%s.pdf", venda.ID)
	filePath := filepath.Join(storagePath, fileName)

	// A7 ≈ 74mm × 105mm, close to thermal receipt paper
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 105},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, "ExploTrack", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Recibo de Compra", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Venda %s", shortID(venda.ID.String())), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, venda.Data.Format("02/01/2006  15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	// Item table
	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(contentW*0.5, 4, "Produto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.15, 4, "Qtd", "B", 0, "C", false, 0, "")
	pdf.CellFormat(contentW*0.35, 4, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	for _, item := range venda.Items {
		pdf.CellFormat(contentW*0.5, 4, truncate(item.Descricao, 22), "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.15, 4, fmt.Sprintf("%d", item.Quantidade), "", 0, "C", false, 0, "")
		pdf.CellFormat(contentW*0.35, 4, "R$ "+item.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	}
	pdf.Ln(1)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW, 6, "TOTAL  R$ "+venda.Total.StringFixed(2), "T", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	if venda.Modalidade == model.ModalidadeMisto {
		for _, p := range venda.Pagamentos {
			pdf.CellFormat(contentW, 4,
				fmt.Sprintf("%s  R$ %s", p.Modalidade, p.Valor.StringFixed(2)), "", 1, "R", false, 0, "")
		}
	} else {
		pdf.CellFormat(contentW, 4, string(venda.Modalidade), "", 1, "R", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write %s: %w", filePath, err)
	}
	return filePath, nil
}

// GenerateComissaoPDF renders the payout sheet for one filial and one month:
// one row per vendedora with realized sales, attainment, base, bonus, vales
// and the net amount to pay.
func GenerateComissaoPDF(comissoes []dto.ComissaoResponse, mes, ano int, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("comissoes_%04d_%02d.pdf", ano, mes)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 20

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, "ExploTrack", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("Comissões — %02d/%04d", mes, ano), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	cols := []struct {
		titulo  string
		largura float64
		alinha  string
	}{
		{"Vendedora", 0.14, "L"},
		{"Vendas", 0.12, "R"},
		{"Meta", 0.12, "R"},
		{"Ating. %", 0.10, "R"},
		{"Base", 0.11, "R"},
		{"Bônus", 0.10, "R"},
		{"Vales", 0.10, "R"},
		{"Líquido", 0.12, "R"},
		{"Política", 0.09, "C"},
	}

	pdf.SetFont("Helvetica", "B", 8)
	for _, col := range cols {
		pdf.CellFormat(contentW*col.largura, 6, col.titulo, "B", 0, col.alinha, false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for _, cm := range comissoes {
		valores := []string{
			shortID(cm.VendedorID),
			"R$ " + cm.VendasTotal.StringFixed(2),
			"R$ " + cm.Meta.StringFixed(2),
			cm.PercentualAtingido.StringFixed(1),
			"R$ " + cm.ComissaoBase.StringFixed(2),
			"R$ " + cm.Bonus.StringFixed(2),
			"R$ " + cm.TotalVales.StringFixed(2),
			"R$ " + cm.LiquidoAPagar.StringFixed(2),
			cm.Politica,
		}
		for i, col := range cols {
			pdf.CellFormat(contentW*col.largura, 5, valores[i], "", 0, col.alinha, false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write %s: %w", filePath, err)
	}
	return filePath, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
