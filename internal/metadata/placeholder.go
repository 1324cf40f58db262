package metadata

import (
	"bytes"
	"encoding/base64"
	"hash/fnv"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"strings"

	"github.com/fogleman/gg"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Placeholder renders a generated cover for albums without artwork: a flat
// background with a vinyl-disc motif, colored from a hash of the name so
// every album gets a stable, distinct placeholder.
func Placeholder(name string, size int) string {
	h := fnv.New32a()
	h.Write([]byte(name))
	v := h.Sum32()

	r := 0.2 + float64(v&0xFF)/255*0.5
	g := 0.2 + float64((v>>8)&0xFF)/255*0.5
	b := 0.2 + float64((v>>16)&0xFF)/255*0.5

	dc := gg.NewContext(size, size)
	dc.SetRGB(r, g, b)
	dc.Clear()

	cx := float64(size) / 2
	dc.SetRGB(r*0.45, g*0.45, b*0.45)
	dc.DrawCircle(cx, cx, float64(size)*0.34)
	dc.Fill()
	dc.SetRGB(r, g, b)
	dc.DrawCircle(cx, cx, float64(size)*0.08)
	dc.Fill()

	return pngDataURI(dc.Image())
}

// Thumbnail re-encodes an artwork data URI scaled to size x size pixels.
// Anything that cannot be decoded is returned unchanged.
func Thumbnail(artURI string, size int) string {
	data, ok := decodeDataURI(artURI)
	if !ok {
		return artURI
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return artURI
	}

	srcBounds := img.Bounds()
	if srcBounds.Dx() == 0 || srcBounds.Dy() == 0 {
		return artURI
	}

	dc := gg.NewContext(size, size)
	dc.Scale(float64(size)/float64(srcBounds.Dx()), float64(size)/float64(srcBounds.Dy()))
	dc.DrawImage(img, 0, 0)

	return pngDataURI(dc.Image())
}

func pngDataURI(img image.Image) string {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return ""
	}
	return dataURI("image/png", buf.Bytes())
}

// decodeDataURI extracts the raw payload of a base64 data URI.
func decodeDataURI(uri string) ([]byte, bool) {
	if !strings.HasPrefix(uri, "data:") {
		return nil, false
	}
	_, payload, ok := strings.Cut(uri, ";base64,")
	if !ok {
		return nil, false
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, false
	}
	return data, true
}
