// SPDX-License-Identifier: MIT
package imaging

import (
	"image"
	"io"

	"github.com/gen2brain/webp"
)

// encodeWebP writes lossy WebP at the given quality
func encodeWebP(w io.Writer, img image.Image, quality int) error {
	return webp.Encode(w, img, webp.Options{Quality: quality, Method: 4})
}
