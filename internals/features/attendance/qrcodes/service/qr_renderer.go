package service

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	QRImageSize  = 400
	captionScale = 2
	captionPad   = 10
)

// RenderPNG menggambar QR code berisi code (quiet zone 1 modul, lebar
// QRImageSize px) dengan caption nama siswa di bawahnya.
func RenderPNG(code, caption string) ([]byte, error) {
	q, err := qrcode.New(code, qrcode.Medium)
	if err != nil {
		return nil, err
	}
	q.DisableBorder = true

	modules := len(q.Bitmap())
	px := QRImageSize / (modules + 2)
	if px < 1 {
		px = 1
	}
	qrImg := q.Image(px * modules)
	margin := (QRImageSize - qrImg.Bounds().Dx()) / 2

	var label image.Image
	height := QRImageSize
	if caption != "" {
		label = renderCaption(caption, QRImageSize-2*captionPad)
		height += label.Bounds().Dy() + captionPad*2
	}

	canvas := imaging.New(QRImageSize, height, color.White)
	canvas = imaging.Paste(canvas, qrImg, image.Pt(margin, margin))
	if label != nil {
		x := (QRImageSize - label.Bounds().Dx()) / 2
		canvas = imaging.Paste(canvas, label, image.Pt(x, QRImageSize+captionPad/2))
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, canvas, imaging.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// renderCaption: teks basicfont 7x13 diperbesar captionScale kali,
// dikecilkan lagi kalau lebih lebar dari maxW
func renderCaption(text string, maxW int) image.Image {
	face := basicfont.Face7x13
	w := font.MeasureString(face, text).Ceil()
	h := face.Metrics().Height.Ceil()

	img := image.NewRGBA(image.Rect(0, 0, w+2, h+2))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	d := &font.Drawer{
		Dst:  img,
		Src:  image.Black,
		Face: face,
		Dot:  fixed.P(1, face.Metrics().Ascent.Ceil()+1),
	}
	d.DrawString(text)

	scaled := imaging.Resize(img, img.Bounds().Dx()*captionScale, 0, imaging.NearestNeighbor)
	if scaled.Bounds().Dx() > maxW {
		return imaging.Fit(scaled, maxW, scaled.Bounds().Dy(), imaging.Lanczos)
	}
	return scaled
}
