package satisimg

import (
	"errors"
	"image"
	"os"

	"github.com/setanarut/satisimg/utils"
)

var errEmptyFile = errors.New("file is empty")

// LoadImage opens and decodes an image file. Missing, empty and undecodable
// files are reported as *IOError.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, &IOError{Op: "stat", Path: path, Err: err}
	}
	if info.Size() == 0 {
		return nil, &IOError{Op: "read", Path: path, Err: errEmptyFile}
	}

	img, err := utils.DecodeImage(f)
	if err != nil {
		return nil, &IOError{Op: "decode", Path: path, Err: err}
	}
	return img, nil
}

// ReadFile reads the whole input file.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}
	return data, nil
}

// WriteFile writes the output artifact in one call.
func WriteFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}
