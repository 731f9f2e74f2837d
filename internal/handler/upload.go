package handler

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

// multipartのファイルを一時ファイルへ保存してローカルパスを返す。
// 呼び出し側がos.Removeする。
func saveTempUpload(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	ext := filepath.Ext(fh.Filename)
	dst, err := os.CreateTemp("", "upload-*"+ext)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", err
	}

	return dst.Name(), nil
}
