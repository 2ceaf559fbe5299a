package employees

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/go-faster/errors"
	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

const (
	Currency    = money.EUR
	exportSheet = "Colaboradores"
)

// amountFormat renders euros the Portuguese way.
var amountFormat = money.NewFormatter(2, ",", ".", money.GetCurrency(Currency).Grapheme, "1$")

// FormatAmount renders an amount in euros, e.g. "1.540,00€".
func FormatAmount(amount float64) string {
	return amountFormat.Format(money.NewFromFloat(amount, Currency).Amount())
}

var exportHeader = []any{
	"ID", "Nome", "NIF", "Email", "Telemóvel", "Departamento", "Cargo",
	"Data de admissão", "Idade", "Salário bruto", "Salário líquido", "Descontos",
}

// WriteSpreadsheet writes the employee list as an XLSX workbook.
func WriteSpreadsheet(w io.Writer, rows []Summary) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return errors.Wrap(err, "rename sheet")
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return errors.Wrap(err, "write header")
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		id, _ := strconv.Atoi(r.ID)
		values := []any{
			id, r.FullName, r.NIF, r.Email, r.Phone, r.Department, r.Role,
			r.AdmissionDate, r.Age, r.BaseSalaryGross, r.NetSalary, r.Deductions,
		}
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			return errors.Wrapf(err, "write row %d", i+2)
		}
	}

	style, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return errors.Wrap(err, "money style")
	}
	if len(rows) > 0 {
		last := strconv.Itoa(len(rows) + 1)
		if err := f.SetCellStyle(exportSheet, "J2", "L"+last, style); err != nil {
			return errors.Wrap(err, "apply money style")
		}
	}
	if err := f.SetColWidth(exportSheet, "B", "G", 22); err != nil {
		return errors.Wrap(err, "column width")
	}
	return f.Write(w)
}

// WriteStatement renders a one-page financial and vacation statement.
func WriteStatement(w io.Writer, d *Detail, now time.Time) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr("Declaração do colaborador"))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	line := func(format string, args ...any) {
		pdf.Cell(0, 7, tr(fmt.Sprintf(format, args...)))
		pdf.Ln(7)
	}
	line("Nome: %s", d.FullName)
	line("NIF: %s", d.NIF)
	line("Departamento: %s", d.Department)
	line("Cargo: %s", d.Role)
	if d.AdmissionDate != "" {
		line("Data de admissão: %s", d.AdmissionDate)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	line("Remuneração")
	pdf.SetFont("Helvetica", "", 11)
	line("Salário bruto: %s", FormatAmount(d.Financials.BaseSalaryGross))
	line("Descontos: %s", FormatAmount(d.Financials.Deductions))
	line("Salário líquido: %s", FormatAmount(d.Financials.NetSalary))
	for _, b := range d.Financials.Benefits {
		line("%s: %s", b.Type, FormatAmount(b.Value))
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	line("Férias %d", now.Year())
	pdf.SetFont("Helvetica", "", 11)
	line("Dias atribuídos: %d", d.Vacations.TotalDays)
	line("Dias gozados: %d", d.Vacations.UsedDays)
	line("Dias disponíveis: %d", d.Vacations.RemainingDays)
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "I", 9)
	line("Emitido em %s", now.Format(time.DateOnly))

	if err := pdf.Output(w); err != nil {
		return errors.Wrap(err, "render statement")
	}
	return nil
}
