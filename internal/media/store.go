package media

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FileInfo describes one stored image.
type FileInfo struct {
	Name    string    `json:"name"`
	Path    string    `json:"path"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

// CopySpec names one source image and the file name it should be
// copied to inside the board folder.
type CopySpec struct {
	SourcePath string `json:"source_path"`
	TargetName string `json:"target_name"`
}

// Store is the image-storage collaborator the board layer talks to.
// The core treats it as opaque: it hands over board/property data and
// gets file descriptors back.
type Store interface {
	ListBoardImages(ctx context.Context, boardID uint, propertyIDs []uint) ([]FileInfo, error)
	CopyAndRename(ctx context.Context, boardID uint, specs []CopySpec) ([]FileInfo, error)
}

type diskStore struct {
	root string
}

// NewDiskStore returns a Store backed by the local filesystem under
// root: property images live in properties/<id>/, board copies in
// boards/<id>/.
func NewDiskStore(root string) (Store, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create media root: %w", err)
	}
	return &diskStore{root: root}, nil
}

func (s *diskStore) ListBoardImages(_ context.Context, boardID uint, propertyIDs []uint) ([]FileInfo, error) {
	var files []FileInfo
	for _, pid := range propertyIDs {
		dir := filepath.Join(s.root, "properties", fmt.Sprint(pid))
		entries, err := os.ReadDir(dir)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read property %d images: %w", pid, err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				continue
			}
			files = append(files, FileInfo{
				Name:    entry.Name(),
				Path:    filepath.Join(dir, entry.Name()),
				Size:    info.Size(),
				ModTime: info.ModTime(),
			})
		}
	}
	log.Printf("listed %d images for board %d", len(files), boardID)
	return files, nil
}

func (s *diskStore) CopyAndRename(_ context.Context, boardID uint, specs []CopySpec) ([]FileInfo, error) {
	targetDir := filepath.Join(s.root, "boards", fmt.Sprint(boardID))
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create board media directory: %w", err)
	}

	var copied []FileInfo
	for _, spec := range specs {
		cleanSrc := filepath.Clean(spec.SourcePath)
		if !strings.HasPrefix(cleanSrc, filepath.Clean(s.root)) {
			return copied, fmt.Errorf("source %s outside media root", spec.SourcePath)
		}

		name := spec.TargetName
		if name == "" {
			name = uuid.NewString() + filepath.Ext(cleanSrc)
		}
		name = filepath.Base(name)

		dst := filepath.Join(targetDir, name)
		if err := copyFile(cleanSrc, dst); err != nil {
			return copied, fmt.Errorf("failed to copy %s: %w", spec.SourcePath, err)
		}

		info, err := os.Stat(dst)
		if err != nil {
			return copied, err
		}
		copied = append(copied, FileInfo{
			Name:    name,
			Path:    dst,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	return copied, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
