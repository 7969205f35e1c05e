package credentials

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"strings"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
)

var ErrEmptyCode = errors.New("barcode value is empty")

const (
	barcodeWidth  = 600
	barcodeHeight = 160
)

// BarcodePNG renders value as a Code 128 symbol scaled to a printable size.
func BarcodePNG(value string) ([]byte, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, ErrEmptyCode
	}
	code, err := code128.Encode(value)
	if err != nil {
		return nil, fmt.Errorf("encode code128: %w", err)
	}
	width := barcodeWidth
	if bounds := code.Bounds().Dx(); bounds > width {
		width = bounds
	}
	scaled, err := barcode.Scale(code, width, barcodeHeight)
	if err != nil {
		return nil, fmt.Errorf("scale barcode: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
