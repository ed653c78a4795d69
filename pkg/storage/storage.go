// Package storage 管理 uploads 目录中的附件副本。
// 每个文档持有一份独立的副本，文件名为 "<unix 秒>_<原文件名，空格替换为下划线>"。
package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrSourceMissing = errors.New("source file does not exist")

// Store 是 uploads 目录的句柄。
type Store struct {
	dir string
	now func() time.Time
}

// NewStore 确保目录存在并返回 Store，dir 会被转换为绝对路径。
func NewStore(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("uploads dir is required")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &Store{dir: abs, now: time.Now}, nil
}

func (s *Store) Dir() string { return s.dir }

// StoredName 生成副本文件名。
func StoredName(src string, now time.Time) string {
	base := strings.ReplaceAll(filepath.Base(src), " ", "_")
	return fmt.Sprintf("%d_%s", now.Unix(), base)
}

// Copy 把 src 复制到 uploads 并返回副本的绝对路径。
// 同一秒内复制同名文件时追加一段随机串，避免覆盖已有副本。
func (s *Store) Copy(src string) (string, error) {
	info, err := os.Stat(src)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrSourceMissing, src)
		}
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("source %s is a directory", src)
	}

	name := StoredName(src, s.now())
	dest := filepath.Join(s.dir, name)
	if _, err := os.Stat(dest); err == nil {
		ext := filepath.Ext(name)
		dest = filepath.Join(s.dir, fmt.Sprintf("%s_%s%s", strings.TrimSuffix(name, ext), uuid.NewString()[:8], ext))
	}

	if err := copyFile(src, dest, info); err != nil {
		_ = os.Remove(dest)
		return "", err
	}
	return dest, nil
}

// Save 把上传流写入 uploads，命名规则与 Copy 相同。
func (s *Store) Save(filename string, r io.Reader) (string, error) {
	name := StoredName(filename, s.now())
	dest := filepath.Join(s.dir, name)
	if _, err := os.Stat(dest); err == nil {
		ext := filepath.Ext(name)
		dest = filepath.Join(s.dir, fmt.Sprintf("%s_%s%s", strings.TrimSuffix(name, ext), uuid.NewString()[:8], ext))
	}

	f, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(dest)
		return "", err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(dest)
		return "", err
	}
	return dest, nil
}

// Resolve 查找导入数据中引用的文件：先按原路径，再按 uploads 目录下的同名文件。
func (s *Store) Resolve(ref string) (string, bool) {
	if ref == "" {
		return "", false
	}
	if isFile(ref) {
		return ref, true
	}
	alt := filepath.Join(s.dir, filepath.Base(ref))
	if isFile(alt) {
		return alt, true
	}
	return "", false
}

// Remove 删除一个附件；文件本来就不存在时不算错误。
func (s *Store) Remove(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// RemoveAll 逐个删除附件，返回成功删除的数量和失败信息。
func (s *Store) RemoveAll(paths []string) (removed int, warnings []string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if !isFile(p) {
			continue
		}
		if err := os.Remove(p); err != nil {
			warnings = append(warnings, fmt.Sprintf("remove %s: %v", p, err))
			continue
		}
		removed++
	}
	return removed, warnings
}

// Clear 删除 uploads 目录树中的所有文件，保留目录本身。
func (s *Store) Clear() (removed int, warnings []string) {
	_ = filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("walk %s: %v", path, err))
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if err := os.Remove(path); err != nil {
			warnings = append(warnings, fmt.Sprintf("remove %s: %v", path, err))
			return nil
		}
		removed++
		return nil
	})
	return removed, warnings
}

func copyFile(src, dest string, info fs.FileInfo) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	// 保留修改时间
	return os.Chtimes(dest, info.ModTime(), info.ModTime())
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
