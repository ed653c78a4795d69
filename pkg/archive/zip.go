// Package archive 读写备份用的 zip 包（数据库快照 + uploads 目录）。
package archive

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
)

var ErrUnsafePath = errors.New("archive entry escapes target directory")

// Entry 描述要写入压缩包的一个文件。
type Entry struct {
	// Name 是包内路径，统一使用 "/" 分隔。
	Name string
	// Source 是磁盘上的源文件。
	Source string
}

// DirEntries 遍历 root 下的所有文件，生成以 prefix 为前缀的包内路径。
// root 不存在时返回空列表。
func DirEntries(root, prefix string) ([]Entry, error) {
	var out []Entry
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && p == root {
				return filepath.SkipDir
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		out = append(out, Entry{Name: path.Join(prefix, filepath.ToSlash(rel)), Source: p})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Create 把 entries 压缩写入 dest。写入失败时删除不完整的文件。
func Create(dest string, entries []Entry) (err error) {
	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(dest)
		}
	}()

	zw := zip.NewWriter(f)
	for _, e := range entries {
		if err = addFile(zw, e); err != nil {
			_ = zw.Close()
			_ = f.Close()
			return err
		}
	}
	if err = zw.Close(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func addFile(zw *zip.Writer, e Entry) error {
	in, err := os.Open(e.Source)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	hdr, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	hdr.Name = e.Name
	hdr.Method = zip.Deflate

	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return fmt.Errorf("add %s: %w", e.Name, err)
	}
	if _, err := io.Copy(w, in); err != nil {
		return fmt.Errorf("write %s: %w", e.Name, err)
	}
	return nil
}

// Router 决定包内条目解压到哪里：返回目标根目录和相对路径，ok=false 表示跳过。
type Router func(name string) (root, rel string, ok bool)

// Extract 按 route 解压 src，返回写出的文件数。
// 任何条目解析后不在其根目录内时立即返回 ErrUnsafePath。
func Extract(src string, route Router) (int, error) {
	zr, err := zip.OpenReader(src)
	if err != nil {
		return 0, err
	}
	defer zr.Close()

	// 先整体校验，避免写出一半才发现非法条目
	targets := make([]string, len(zr.File))
	for i, zf := range zr.File {
		if zf.FileInfo().IsDir() {
			continue
		}
		root, rel, ok := route(zf.Name)
		if !ok {
			continue
		}
		dest, err := SafeJoin(root, rel)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", zf.Name, err)
		}
		targets[i] = dest
	}

	n := 0
	for i, zf := range zr.File {
		if targets[i] == "" {
			continue
		}
		if err := extractFile(zf, targets[i]); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

func extractFile(zf *zip.File, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	rc, err := zf.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		_ = out.Close()
		return fmt.Errorf("extract %s: %w", zf.Name, err)
	}
	return out.Close()
}

// SafeJoin 拼接 root 与包内相对路径，拒绝绝对路径和跳出 root 的 ".."。
func SafeJoin(root, rel string) (string, error) {
	rel = filepath.FromSlash(rel)
	if rel == "" || filepath.IsAbs(rel) || strings.HasPrefix(rel, `\`) || filepath.VolumeName(rel) != "" {
		return "", ErrUnsafePath
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	dest := filepath.Join(absRoot, rel)
	if !strings.HasPrefix(dest, absRoot+string(os.PathSeparator)) {
		return "", ErrUnsafePath
	}
	return dest, nil
}
