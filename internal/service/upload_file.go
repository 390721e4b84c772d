package service

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/image/draw"
)

const baseDir = "statics"

const thumbnailWidth = 128

func InArray[T comparable](val T, array []T) bool {
	for _, v := range array {
		if val == v {
			return true
		}
	}
	return false
}

// Upload - uploads file to the specified folder
func Upload(file *multipart.FileHeader, folder string) (path string, err error) {
	targetPath := filepath.Join(baseDir, folder)
	if file == nil {
		return "", nil
	}

	expectedContentType := []string{
		"image/jpeg",
		"image/png",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", // for .xlsx files
		"application/vnd.ms-excel", // for .xls files
	}

	incomeContentType := file.Header.Get("Content-Type")
	if !InArray(incomeContentType, expectedContentType) {
		return "", fmt.Errorf("invalid file type, expected: %v, got: %s", expectedContentType, incomeContentType)
	}

	if _, err := os.Stat(targetPath); errors.Is(err, os.ErrNotExist) {
		err = os.MkdirAll(targetPath, os.ModePerm)
		if err != nil {
			return "", err
		}
	}

	filePath := filepath.Join(targetPath, time.Now().Format(time.RFC3339)+"-"+file.Filename)

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer func() {
		if closeErr := src.Close(); closeErr != nil {
			log.Println("file upload src.Close() error:", closeErr)
		}
	}()

	out, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil {
			log.Println("file upload out.Close() error:", closeErr)
		}
	}()

	_, err = io.Copy(out, src)
	if err != nil {
		return "", err
	}

	return filePath, nil
}

// UploadPhoto stores an employee photo and writes a scaled thumbnail next to
// it. The thumbnail path mirrors the original with a "thumb-" prefix.
func UploadPhoto(file *multipart.FileHeader, folder string) (path string, thumbPath string, err error) {
	path, err = Upload(file, folder)
	if err != nil || path == "" {
		return path, "", err
	}

	thumbPath, err = writeThumbnail(path)
	if err != nil {
		// The original is already stored, a missing thumbnail is not fatal.
		log.Println("thumbnail generation error:", err)
		return path, "", nil
	}

	return path, thumbPath, nil
}

func writeThumbnail(path string) (string, error) {
	in, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer in.Close()

	img, format, err := image.Decode(in)
	if err != nil {
		return "", err
	}

	bounds := img.Bounds()
	if bounds.Dx() <= thumbnailWidth {
		return path, nil
	}
	height := bounds.Dy() * thumbnailWidth / bounds.Dx()

	thumb := image.NewRGBA(image.Rect(0, 0, thumbnailWidth, height))
	draw.CatmullRom.Scale(thumb, thumb.Bounds(), img, bounds, draw.Over, nil)

	dir, name := filepath.Split(path)
	thumbPath := filepath.Join(dir, "thumb-"+name)
	out, err := os.Create(thumbPath)
	if err != nil {
		return "", err
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil {
			log.Println("thumbnail out.Close() error:", closeErr)
		}
	}()

	switch {
	case format == "png" || strings.HasSuffix(strings.ToLower(name), ".png"):
		err = png.Encode(out, thumb)
	default:
		err = jpeg.Encode(out, thumb, &jpeg.Options{Quality: 85})
	}
	if err != nil {
		return "", err
	}

	return thumbPath, nil
}
