// SPDX-License-Identifier: MIT
package imaging

import (
	"image"
	"image/png"
	"io"
)

var pngEncoder = png.Encoder{CompressionLevel: png.BestCompression}

func encodePNG(w io.Writer, img image.Image, _ int) error {
	return pngEncoder.Encode(w, img)
}
