package finder

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
)

// LocalScanner is a Scanner implementation that walks local filesystem paths.
type LocalScanner struct {
	Paths     []string
	Recursive bool

	// Depths optionally restricts the walk to entries at specific depths
	// below each root (the root's direct children are at depth 1). A nil
	// map means no restriction.
	Depths map[int]struct{}
}

var _ Scanner = (*LocalScanner)(nil)

// Run starts the local scanner. Entries are passed to the argument entry
// channel.
func (l *LocalScanner) Run(
	ctx context.Context,
	entryChan chan Entry,
) error {
	for rootIndex, path := range l.Paths {
		fileInfo, err := os.Stat(path)
		if err != nil {
			return err
		}
		if fileInfo.IsDir() {
			err = filepath.Walk(
				path,
				func(subPath string, subInfo os.FileInfo, err error) error {
					if err != nil {
						return err
					}

					if subInfo.IsDir() {
						if !l.Recursive && subPath != path {
							return filepath.SkipDir
						}
						return nil
					}

					depth, err := l.entryDepth(path, subPath)
					if err != nil {
						return err
					}
					if !l.depthWanted(depth) {
						log.Debugf("Skipping %s at depth %d", subPath, depth)
						return nil
					}

					return l.emit(ctx, entryChan, subPath, subInfo, rootIndex)
				},
			)
			if err != nil {
				return err
			}
		} else {
			err := l.emit(ctx, entryChan, path, fileInfo, rootIndex)
			if err != nil {
				return err
			}
		}
	}

	return nil
}

func (l *LocalScanner) emit(
	ctx context.Context,
	entryChan chan Entry,
	path string,
	fileInfo os.FileInfo,
	rootIndex int,
) error {
	log.Debugf("Scanning file %s", path)

	entry := Entry{
		Path:    path,
		Root:    rootIndex,
		Size:    fileInfo.Size(),
		Mode:    fileInfo.Mode(),
		ModTime: fileInfo.ModTime(),
	}

	select {
	case entryChan <- entry:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *LocalScanner) entryDepth(root string, path string) (int, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return 0, err
	}

	return strings.Count(rel, string(filepath.Separator)) + 1, nil
}

func (l *LocalScanner) depthWanted(depth int) bool {
	if l.Depths == nil {
		return true
	}

	_, ok := l.Depths[depth]
	return ok
}
