package repository

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// ErrInvalidName 檔名不是單一路徑元素
var ErrInvalidName = errors.New("invalid file name")

// ArtifactStore 上傳區與輸出區的檔案操作
type ArtifactStore interface {
	SaveUpload(name string, src io.Reader) (path string, size int64, err error)
	ResolveUpload(name string) (string, error)
	RemoveUpload(name string) error

	ReserveOutput(name string) (string, error)
	ResolveOutput(name string) (string, os.FileInfo, error)
	RemoveOutput(name string) error
}

// FileStore 以本機目錄實作 ArtifactStore
type FileStore struct {
	uploadDir string
	outputDir string
}

// 讓測試可以替換檔案操作
var (
	createDir = func(path string) error {
		return os.MkdirAll(path, 0755)
	}

	createExclusive = func(name string) (*os.File, error) {
		return os.OpenFile(name, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	}

	copyFile = func(dst *os.File, src io.Reader) (written int64, err error) {
		return io.Copy(dst, src)
	}
)

// NewFileStore 建立 FileStore, 目錄不存在時建立
func NewFileStore(uploadDir, outputDir string) (*FileStore, error) {
	for _, dir := range []string{uploadDir, outputDir} {
		if err := createDir(dir); err != nil {
			return nil, fmt.Errorf("dir[%s] 建立目錄失敗: %w", dir, err)
		}
	}

	up, err := filepath.Abs(uploadDir)
	if err != nil {
		return nil, err
	}
	out, err := filepath.Abs(outputDir)
	if err != nil {
		return nil, err
	}
	return &FileStore{uploadDir: up, outputDir: out}, nil
}

// UploadDir absolute upload area
func (s *FileStore) UploadDir() string {
	return s.uploadDir
}

// OutputDir absolute output area
func (s *FileStore) OutputDir() string {
	return s.outputDir
}

// SaveUpload 寫入上傳區, 檔名已存在時失敗
func (s *FileStore) SaveUpload(name string, src io.Reader) (string, int64, error) {
	if !ValidName(name) {
		return "", 0, ErrInvalidName
	}

	path := filepath.Join(s.uploadDir, name)
	f, err := createExclusive(path)
	if err != nil {
		return "", 0, fmt.Errorf("fileName[%s] 建立檔案失敗: %w", name, err)
	}

	size, err := copyFile(f, src)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", 0, fmt.Errorf("fileName[%s] 儲存檔案失敗: %w", name, err)
	}
	return path, size, nil
}

// ResolveUpload 取得上傳區檔案路徑, 不存在時回傳 os.ErrNotExist
func (s *FileStore) ResolveUpload(name string) (string, error) {
	path, _, err := resolve(s.uploadDir, name)
	return path, err
}

// RemoveUpload 刪除上傳區檔案
func (s *FileStore) RemoveUpload(name string) error {
	return remove(s.uploadDir, name)
}

// ReserveOutput 以獨佔方式建立空檔佔住檔名, 已存在時回傳 os.ErrExist
func (s *FileStore) ReserveOutput(name string) (string, error) {
	if !ValidName(name) {
		return "", ErrInvalidName
	}

	path := filepath.Join(s.outputDir, name)
	f, err := createExclusive(path)
	if err != nil {
		return "", err
	}
	return path, f.Close()
}

// ResolveOutput 取得輸出區檔案
func (s *FileStore) ResolveOutput(name string) (string, os.FileInfo, error) {
	return resolve(s.outputDir, name)
}

// RemoveOutput 刪除輸出區檔案
func (s *FileStore) RemoveOutput(name string) error {
	return remove(s.outputDir, name)
}

func resolve(dir, name string) (string, os.FileInfo, error) {
	if !ValidName(name) {
		return "", nil, ErrInvalidName
	}

	path := filepath.Join(dir, name)
	info, err := os.Stat(path)
	if err != nil {
		return "", nil, err
	}
	if !info.Mode().IsRegular() {
		return "", nil, os.ErrNotExist
	}
	return path, info, nil
}

func remove(dir, name string) error {
	if !ValidName(name) {
		return ErrInvalidName
	}
	if err := os.Remove(filepath.Join(dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// ValidName 檔名必須是單一路徑元素
func ValidName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, `/\`+"\x00") {
		return false
	}
	return filepath.Base(name) == name
}

// SanitizeName 將不允許的字元換成底線, maxLen > 0 時截斷
func SanitizeName(s string, maxLen int) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsControl(r) {
			continue
		}
		if isAllowedNameRune(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}

	cleaned := strings.TrimSpace(b.String())
	if maxLen > 0 {
		runes := []rune(cleaned)
		if len(runes) > maxLen {
			cleaned = string(runes[len(runes)-maxLen:])
		}
	}
	cleaned = strings.TrimLeft(cleaned, ".")
	if cleaned == "" {
		return "video"
	}
	return cleaned
}

func isAllowedNameRune(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsDigit(r) {
		return true
	}
	switch r {
	case ' ', '-', '_', '.', '(', ')':
		return true
	default:
		return false
	}
}
