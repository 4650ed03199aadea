package stickercolors

import (
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/setanarut/stickercolors/utils"
)

// Source is one sticker to aggregate: a file path, a stream of encoded image
// data, or an image that is already decoded. Build one with Path, Reader or
// Image.
type Source interface {
	fmt.Stringer
	decode() (image.Image, error)
}

type pathSource string

// Path is a sticker read from a file. The file is opened and closed during New.
func Path(path string) Source {
	return pathSource(path)
}

// Paths wraps every path with Path.
func Paths(paths ...string) []Source {
	out := make([]Source, len(paths))
	for i, p := range paths {
		out[i] = Path(p)
	}
	return out
}

func (s pathSource) decode() (image.Image, error) {
	return utils.ReadImage(string(s))
}

func (s pathSource) String() string {
	return string(s)
}

type readerSource struct {
	r io.Reader
}

// Reader is a sticker decoded from r. r is read to the end of the image but
// not closed.
func Reader(r io.Reader) Source {
	return readerSource{r: r}
}

func (s readerSource) decode() (image.Image, error) {
	if s.r == nil {
		return nil, errors.New("nil reader")
	}
	return utils.DecodeImage(s.r)
}

func (s readerSource) String() string {
	return "<reader>"
}

type imageSource struct {
	img image.Image
}

// Image is a sticker that is already decoded.
func Image(img image.Image) Source {
	return imageSource{img: img}
}

func (s imageSource) decode() (image.Image, error) {
	if s.img == nil {
		return nil, errors.New("nil image")
	}
	return s.img, nil
}

func (s imageSource) String() string {
	if s.img == nil {
		return "<image nil>"
	}
	b := s.img.Bounds()
	return fmt.Sprintf("<image %dx%d>", b.Dx(), b.Dy())
}
