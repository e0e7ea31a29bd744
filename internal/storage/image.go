package storage

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"

	"github.com/CocoPetControl/clinic-api/internal/httperr"
)

const (
	// lado maior após o resize; raio-x e foto de consulta não
	// precisam de mais que isso na tela
	maxDimension = 1600

	webpQuality = 85
)

// ProcessImage valida, redimensiona e converte para webp.
func ProcessImage(raw []byte) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_image")
	}

	switch format {
	case "jpeg", "png", "webp":
	default:
		return nil, httperr.ErrBusiness("unsupported_image_format")
	}

	img = resize(img)

	var out bytes.Buffer
	if err := webp.Encode(&out, img, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}

	return out.Bytes(), nil
}

func resize(img image.Image) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w <= maxDimension && h <= maxDimension {
		return img
	}

	if w > h {
		h = h * maxDimension / w
		w = maxDimension
	} else {
		w = w * maxDimension / h
		h = maxDimension
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
