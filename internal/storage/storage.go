package storage

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

var (
	ErrNotFound    = errors.New("file not found")
	ErrExists      = errors.New("file already exists")
	ErrInvalidName = errors.New("invalid file name")
)

// 文件系统即数据库：目录列举就是查询，文件存在就是记录存在
type Store struct {
	fs  afero.Fs
	dir string
}

func NewStore(fs afero.Fs, dir string) (*Store, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{fs: fs, dir: dir}, nil
}

// ValidName 校验文件名是否为裸文件名，防止路径逃逸；所有拼接调用方输入的地方都要经过它
func ValidName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, `/\`) {
		return false
	}
	return filepath.Base(name) == name
}

func (s *Store) path(name string) (string, error) {
	if !ValidName(name) {
		return "", ErrInvalidName
	}
	return filepath.Join(s.dir, name), nil
}

// Save 写入新文件；同名冲突时返回 ErrExists 而不是覆盖
func (s *Store) Save(name string, r io.Reader) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}

	out, err := s.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return ErrExists
		}
		return fmt.Errorf("create file: %w", err)
	}

	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		s.fs.Remove(path)
		return fmt.Errorf("write file: %w", err)
	}
	return out.Close()
}

func (s *Store) Delete(name string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}

	if exists, err := afero.Exists(s.fs, path); err != nil {
		return fmt.Errorf("stat file: %w", err)
	} else if !exists {
		return ErrNotFound
	}
	if err := s.fs.Remove(path); err != nil {
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}

func (s *Store) Open(name string) (io.ReadCloser, error) {
	path, err := s.path(name)
	if err != nil {
		return nil, err
	}

	f, err := s.fs.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

// List 返回按字典序升序排列的全部文件名，这是唯一的排序保证
func (s *Store) List() ([]string, error) {
	entries, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		return nil, fmt.Errorf("read upload dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// HTTPFileSystem 暴露上传目录用于静态挂载
func (s *Store) HTTPFileSystem() http.FileSystem {
	return afero.NewHttpFs(s.fs).Dir(s.dir)
}
