package qr

// ScaleToRGB nearest-neighbor-scales a grayscale Image to width x height,
// independently on each axis, and expands it to 3-byte-per-pixel RGB by
// replicating the gray value across all three channels. This is the
// scaling step spec'd for the encode coordinator's buildVideo.
func ScaleToRGB(img Image, width, height int) []byte {
	rgb := make([]byte, width*height*3)
	for y := 0; y < height; y++ {
		srcY := y * img.Height / height
		for x := 0; x < width; x++ {
			srcX := x * img.Width / width
			gray := img.Pixels[srcY*img.Width+srcX]
			off := (y*width + x) * 3
			rgb[off] = gray
			rgb[off+1] = gray
			rgb[off+2] = gray
		}
	}
	return rgb
}

// Luma converts an RGB byte buffer (3 bytes per pixel) to a grayscale
// Image using the standard luma weighting, the inverse of ScaleToRGB's
// channel replication for frames that were not otherwise modified.
func Luma(rgb []byte, width, height int) Image {
	pixels := make([]byte, width*height)
	for i := 0; i < width*height; i++ {
		r, g, b := rgb[i*3], rgb[i*3+1], rgb[i*3+2]
		pixels[i] = byte((299*int(r) + 587*int(g) + 114*int(b)) / 1000)
	}
	return Image{Width: width, Height: height, Pixels: pixels}
}
