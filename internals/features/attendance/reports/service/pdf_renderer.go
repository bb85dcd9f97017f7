package service

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"github.com/naufaladysaputro/be-absensi-qrcode/internals/constants"
)

// ukuran dalam point, A4 landscape = 842 x 595
const (
	pdfStartX    = 30.0
	pdfRowHeight = 16.0
	pdfColNo     = 20.0
	pdfColNama   = 110.0
	pdfColDay    = 18.0
	pdfColTotal  = 20.0
	pdfBottom    = 50.0
)

var totalCodes = []string{constants.CodeHadir, constants.CodeSakit, constants.CodeIzin, constants.CodeAlfa}

type pdfReport struct {
	pdf *gofpdf.Fpdf
	ds  *Dataset
	tr  func(string) string
	y   float64
}

// RenderPDF menggambar daftar hadir bulanan satu kelas
func RenderPDF(ds *Dataset) ([]byte, error) {
	pdf := gofpdf.New("L", "pt", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle("Daftar Hadir Siswa", false)
	pdf.AddPage()

	r := &pdfReport{pdf: pdf, ds: ds, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	r.titleBlock()
	r.y = 135
	r.tableHeader()
	for _, row := range ds.Rows {
		if r.y+pdfRowHeight > r.pageHeight()-pdfBottom {
			pdf.AddPage()
			r.y = 30
			r.tableHeader()
		}
		r.studentRow(row)
	}
	r.footer()

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *pdfReport) pageHeight() float64 {
	_, h := r.pdf.GetPageSize()
	return h
}

func (r *pdfReport) pageWidth() float64 {
	w, _ := r.pdf.GetPageSize()
	return w
}

func (r *pdfReport) titleBlock() {
	pdf := r.pdf
	w := r.pageWidth()

	if len(r.ds.Logo) > 0 {
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("logo", opts, bytes.NewReader(r.ds.Logo))
		if pdf.Ok() {
			pdf.ImageOptions("logo", 30, 30, 45, 0, false, opts, 0, "")
		} else {
			// logo rusak tidak boleh menggagalkan laporan
			pdf.ClearError()
		}
	}

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(0, 30)
	pdf.CellFormat(w, 18, "DAFTAR HADIR SISWA", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 13)
	pdf.SetX(0)
	pdf.CellFormat(w, 15, r.tr(r.ds.SchoolName), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.SetX(0)
	pdf.CellFormat(w, 14, "TAHUN PELAJARAN "+r.ds.AcademicYear, "", 1, "C", false, 0, "")

	pdf.SetLineWidth(1)
	pdf.Line(30, 80, w-42, 80)
	pdf.SetLineWidth(0.5)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Text(30, 105, fmt.Sprintf("Bulan : %s %d", r.ds.MonthLabel(), r.ds.Year))
	pdf.Text(30, 120, r.tr(fmt.Sprintf("Kelas : %s %s", r.ds.ClassName, r.ds.SelectionName)))
}

func (r *pdfReport) cell(x, w, h float64, text, align string, fill bool) {
	r.pdf.SetXY(x, r.y)
	r.pdf.CellFormat(w, h, text, "1", 0, align, fill, 0, "")
}

func (r *pdfReport) tableHeader() {
	pdf := r.pdf
	pdf.SetFont("Helvetica", "B", 6)
	pdf.SetTextColor(0, 0, 0)

	x := pdfStartX
	r.cell(x, pdfColNo, pdfRowHeight*2, "No", "C", false)
	x += pdfColNo
	r.cell(x, pdfColNama, pdfRowHeight*2, "Nama", "C", false)
	x += pdfColNama

	dayX := x
	for day := 1; day <= r.ds.Days; day++ {
		if r.ds.IsWeekend(day) {
			pdf.SetTextColor(255, 77, 77)
		} else {
			pdf.SetTextColor(0, 0, 0)
		}
		r.cell(x, pdfColDay, pdfRowHeight, r.ds.DayLabel(day), "C", false)
		x += pdfColDay
	}
	pdf.SetTextColor(0, 0, 0)
	for _, code := range totalCodes {
		r.cell(x, pdfColTotal, pdfRowHeight*2, code, "C", false)
		x += pdfColTotal
	}

	r.y += pdfRowHeight
	x = dayX
	for day := 1; day <= r.ds.Days; day++ {
		r.cell(x, pdfColDay, pdfRowHeight, fmt.Sprintf("%02d", day), "C", false)
		x += pdfColDay
	}
	r.y += pdfRowHeight
	pdf.SetFont("Helvetica", "", 6)
}

// fit memotong teks agar muat di lebar w
func (r *pdfReport) fit(s string, w float64) string {
	s = r.tr(s)
	for len(s) > 0 && r.pdf.GetStringWidth(s) > w {
		s = s[:len(s)-1]
	}
	return s
}

func (r *pdfReport) studentRow(row StudentRow) {
	pdf := r.pdf
	x := pdfStartX
	r.cell(x, pdfColNo, pdfRowHeight, strconv.Itoa(row.No), "C", false)
	x += pdfColNo
	r.cell(x, pdfColNama, pdfRowHeight, " "+r.fit(row.Nama, pdfColNama-4), "L", false)
	x += pdfColNama

	for _, code := range row.Daily {
		if code == constants.CodeAlfa {
			pdf.SetFillColor(255, 77, 77)
			pdf.SetTextColor(255, 255, 255)
			r.cell(x, pdfColDay, pdfRowHeight, code, "C", true)
			pdf.SetTextColor(0, 0, 0)
		} else {
			r.cell(x, pdfColDay, pdfRowHeight, code, "C", false)
		}
		x += pdfColDay
	}

	for _, n := range []int{row.Totals.H, row.Totals.S, row.Totals.I, row.Totals.A} {
		r.cell(x, pdfColTotal, pdfRowHeight, strconv.Itoa(n), "C", false)
		x += pdfColTotal
	}
	r.y += pdfRowHeight
}

func (r *pdfReport) footer() {
	pdf := r.pdf
	// legenda + rekap butuh sekitar 110pt
	if r.y+125 > r.pageHeight() {
		pdf.AddPage()
		r.y = 30
	}
	y := r.y + 15

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.Text(30, y, "Keterangan")
	pdf.SetFont("Helvetica", "", 8)
	for i, line := range []string{"H : Hadir", "S : Sakit", "I : Izin", "A : Alpa"} {
		pdf.Text(45, y+12+float64(i)*10, line)
	}

	y += 60
	pdf.SetFont("Helvetica", "B", 9)
	pdf.Text(30, y, "Rekapitulasi Siswa")
	pdf.SetFont("Helvetica", "", 8)
	pdf.Text(45, y+12, fmt.Sprintf("Jumlah siswa : %d", len(r.ds.Rows)))
	pdf.Text(45, y+22, fmt.Sprintf("Laki-laki : %d", r.ds.Male))
	pdf.Text(45, y+32, fmt.Sprintf("Perempuan : %d", r.ds.Female))
}
