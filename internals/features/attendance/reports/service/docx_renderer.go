package service

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/fumiama/go-docx"

	"github.com/naufaladysaputro/be-absensi-qrcode/internals/constants"
)

// lebar kolom dalam twip
const (
	twNo    = 400
	twNama  = 2200
	twDay   = 360
	twTotal = 400
)

const (
	colorWeekend = "FF4D4D"
	colorWhite   = "FFFFFF"
)

// RenderDOCX menulis blok judul dan tabel yang sama seperti versi PDF,
// A4 landscape.
func RenderDOCX(ds *Dataset) ([]byte, error) {
	doc := docx.New().WithDefaultTheme()

	docxPara(doc, "DAFTAR HADIR SISWA", "32", true, "center")
	docxPara(doc, ds.SchoolName, "26", false, "center")
	docxPara(doc, "TAHUN PELAJARAN "+ds.AcademicYear, "24", false, "center")
	doc.AddParagraph()
	docxPara(doc, fmt.Sprintf("Bulan : %s %d", ds.MonthLabel(), ds.Year), "22", false, "")
	docxPara(doc, fmt.Sprintf("Kelas : %s %s", ds.ClassName, ds.SelectionName), "22", false, "")
	doc.AddParagraph()

	attendanceTable(doc, ds)

	doc.AddParagraph()
	docxPara(doc, "Keterangan", "18", true, "")
	for _, line := range []string{"H : Hadir", "S : Sakit", "I : Izin", "A : Alpa"} {
		docxPara(doc, line, "16", false, "")
	}
	doc.AddParagraph()
	docxPara(doc, "Rekapitulasi Siswa", "18", true, "")
	docxPara(doc, fmt.Sprintf("Jumlah siswa : %d", len(ds.Rows)), "16", false, "")
	docxPara(doc, fmt.Sprintf("Laki-laki : %d", ds.Male), "16", false, "")
	docxPara(doc, fmt.Sprintf("Perempuan : %d", ds.Female), "16", false, "")

	// sectPr harus item terakhir di body
	doc.Document.Body.Items = append(doc.Document.Body.Items, &docx.SectPr{
		PgSz:  &docx.PgSz{W: 16838, H: 11906},
		PgMar: &docx.PgMar{Top: 720, Left: 720, Bottom: 720, Right: 720},
	})

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// docxPara: size dalam half-point, align kosong = rata kiri
func docxPara(doc *docx.Docx, text, size string, bold bool, align string) {
	p := doc.AddParagraph()
	if align != "" {
		p.Justification(align)
	}
	r := p.AddText(text).Size(size)
	if bold {
		r.Bold()
	}
}

type docxCell struct {
	text  string
	fill  string
	color string
	bold  bool
	align string
}

func fillCell(c *docx.WTableCell, v docxCell) {
	if v.fill != "" {
		c.Shade("clear", "auto", v.fill)
	}
	align := v.align
	if align == "" {
		align = "center"
	}
	r := c.AddParagraph().Justification(align).AddText(v.text).Size("12")
	if v.bold {
		r.Bold()
	}
	if v.color != "" {
		r.Color(v.color)
	}
}

// mergeDown menggabungkan sel header baris pertama dengan sel di bawahnya
func mergeDown(top, below *docx.WTableCell) {
	top.TableCellProperties.VMerge = &docx.WvMerge{Val: "restart"}
	below.TableCellProperties.VMerge = &docx.WvMerge{}
	below.AddParagraph()
}

func attendanceTable(doc *docx.Docx, ds *Dataset) {
	widths := make([]int64, 0, 2+ds.Days+len(totalCodes))
	widths = append(widths, twNo, twNama)
	for day := 1; day <= ds.Days; day++ {
		widths = append(widths, twDay)
	}
	for range totalCodes {
		widths = append(widths, twTotal)
	}

	// dua baris header (nama hari, tanggal) lalu satu baris per siswa
	tbl := doc.AddTableTwips(make([]int64, 2+len(ds.Rows)), widths, 0, nil)
	day0 := 2
	total0 := day0 + ds.Days

	hdr, sub := tbl.TableRows[0].TableCells, tbl.TableRows[1].TableCells
	fillCell(hdr[0], docxCell{text: "No", bold: true})
	fillCell(hdr[1], docxCell{text: "Nama", bold: true})
	mergeDown(hdr[0], sub[0])
	mergeDown(hdr[1], sub[1])
	for day := 1; day <= ds.Days; day++ {
		c := docxCell{text: ds.DayLabel(day), bold: true}
		if ds.IsWeekend(day) {
			c.color = colorWeekend
		}
		fillCell(hdr[day0+day-1], c)
		fillCell(sub[day0+day-1], docxCell{text: fmt.Sprintf("%02d", day), bold: true})
	}
	for i, code := range totalCodes {
		fillCell(hdr[total0+i], docxCell{text: code, bold: true})
		mergeDown(hdr[total0+i], sub[total0+i])
	}

	for i, row := range ds.Rows {
		cells := tbl.TableRows[2+i].TableCells
		fillCell(cells[0], docxCell{text: strconv.Itoa(row.No)})
		fillCell(cells[1], docxCell{text: row.Nama, align: "left"})
		for d, code := range row.Daily {
			c := docxCell{text: code}
			if code == constants.CodeAlfa {
				c.fill, c.color = colorWeekend, colorWhite
			}
			fillCell(cells[day0+d], c)
		}
		for j, n := range []int{row.Totals.H, row.Totals.S, row.Totals.I, row.Totals.A} {
			fillCell(cells[total0+j], docxCell{text: strconv.Itoa(n)})
		}
	}
}
