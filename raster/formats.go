package raster

// Registering these decoders makes the stdlib image.Decode (and therefore
// imaging.Open/imaging.Decode) understand bmp/tiff/webp in addition to the
// png/jpeg/gif it already supports.
import (
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)
