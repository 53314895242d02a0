package fs

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/afero"
)

// FileSystem wraps the Afero Fs interface
type FileSystem struct {
	Fs afero.Fs
}

// NewMemoryFileSystem creates a new in-memory file system
func NewMemoryFileSystem() *FileSystem {
	return &FileSystem{
		Fs: afero.NewMemMapFs(),
	}
}

// NewOsFileSystem creates a new OS-based file system
func NewOsFileSystem() *FileSystem {
	return &FileSystem{
		Fs: afero.NewOsFs(),
	}
}

// WriteFile creates a new file with the given content or overwrites an existing file with the content
func (fs *FileSystem) WriteFile(path string, content string) error {
	dir := filepath.Dir(path)
	if err := fs.Fs.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating directory %s: %w", dir, err)
	}
	err := afero.WriteFile(fs.Fs, path, []byte(content), 0644)
	if err != nil {
		return fmt.Errorf("error writing file %s: %w", path, err)
	}
	return nil
}

// ReadFile returns the content of the file at path
func (fs *FileSystem) ReadFile(path string) (string, error) {
	content, err := afero.ReadFile(fs.Fs, path)
	if err != nil {
		return "", fmt.Errorf("error reading file %s: %w", path, err)
	}
	return string(content), nil
}

// Exists checks if a file or directory exists
func (fs *FileSystem) Exists(path string) bool {
	_, err := fs.Fs.Stat(path)
	return err == nil
}

// IsDir checks if a path is a directory
func (fs *FileSystem) IsDir(path string) bool {
	info, err := fs.Fs.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// MkdirAll creates a directory and any missing parents
func (fs *FileSystem) MkdirAll(path string) error {
	if err := fs.Fs.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("error creating directory %s: %w", path, err)
	}
	return nil
}

// RemoveAll removes a path and any children it contains
func (fs *FileSystem) RemoveAll(path string) error {
	if err := fs.Fs.RemoveAll(path); err != nil {
		return fmt.Errorf("error removing %s: %w", path, err)
	}
	return nil
}

// Rename moves a file or directory to a new path
func (fs *FileSystem) Rename(oldPath, newPath string) error {
	if err := fs.Fs.Rename(oldPath, newPath); err != nil {
		return fmt.Errorf("error renaming %s to %s: %w", oldPath, newPath, err)
	}
	return nil
}

// CopyFile copies a file from src to dst
func (fs *FileSystem) CopyFile(src, dst string) error {
	sourceFile, err := fs.Fs.Open(src)
	if err != nil {
		return fmt.Errorf("error opening source file: %w", err)
	}
	defer sourceFile.Close()

	dstFile, err := fs.Fs.Create(dst)
	if err != nil {
		return fmt.Errorf("error creating destination file: %w", err)
	}
	defer dstFile.Close()

	_, err = io.Copy(dstFile, sourceFile)
	if err != nil {
		return fmt.Errorf("error copying file: %w", err)
	}

	return nil
}

// CopyDir recursively copies a directory tree within the file system
func (fs *FileSystem) CopyDir(src string, dst string) error {
	src = filepath.Clean(src)
	dst = filepath.Clean(dst)

	si, err := fs.Fs.Stat(src)
	if err != nil {
		return err
	}
	if !si.IsDir() {
		return fmt.Errorf("source is not a directory")
	}

	err = fs.Fs.MkdirAll(dst, si.Mode())
	if err != nil {
		return err
	}

	entries, err := afero.ReadDir(fs.Fs, src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			err = fs.CopyDir(srcPath, dstPath)
			if err != nil {
				return err
			}
		} else {
			err = fs.CopyFile(srcPath, dstPath)
			if err != nil {
				return err
			}
		}
	}

	return nil
}

// ReadDirNames lists the entry names of a directory
func (fs *FileSystem) ReadDirNames(path string) ([]string, error) {
	entries, err := afero.ReadDir(fs.Fs, path)
	if err != nil {
		return nil, fmt.Errorf("error reading directory %s: %w", path, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names, nil
}

// Create creates a file, truncating it if it already exists
func (fs *FileSystem) Create(path string) (afero.File, error) {
	dir := filepath.Dir(path)
	if err := fs.Fs.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("error creating directory %s: %w", dir, err)
	}
	f, err := fs.Fs.Create(path)
	if err != nil {
		return nil, fmt.Errorf("error creating file %s: %w", path, err)
	}
	return f, nil
}
