package frames

import (
	"fmt"
	"os"
	"path/filepath"
)

// MakeAbsPaths rewrites every frame item into an absolute file path, in
// place. Image items are written to fresh files under tmpdir named
// <tag>-<unique>.fits; path items are resolved against the working
// directory. No file is created for items that are already paths.
//
// The returned slice holds exactly the paths this call created; removing
// them afterwards is the caller's job. On error the slice still lists
// everything created so far.
func MakeAbsPaths(frameList []Frame, tmpdir string) ([]string, error) {
	var tmpfiles []string
	for i, frame := range frameList {
		switch item := frame.Item.(type) {
		case Image:
			f, err := os.CreateTemp(tmpdir, frame.Tag+"-*.fits")
			if err != nil {
				return tmpfiles, fmt.Errorf("failed to create temp frame for tag %s: %w", frame.Tag, err)
			}
			if err := f.Close(); err != nil {
				return tmpfiles, fmt.Errorf("failed to close temp frame %s: %w", f.Name(), err)
			}
			path, err := filepath.Abs(f.Name())
			if err != nil {
				return tmpfiles, fmt.Errorf("failed to resolve temp frame path %s: %w", f.Name(), err)
			}
			frameList[i] = Frame{Tag: frame.Tag, Item: path}
			tmpfiles = append(tmpfiles, path)
			if err := item.WriteFile(path); err != nil {
				return tmpfiles, fmt.Errorf("failed to write image for tag %s: %w", frame.Tag, err)
			}
		case string:
			path, err := filepath.Abs(item)
			if err != nil {
				return tmpfiles, fmt.Errorf("failed to resolve path %s: %w", item, err)
			}
			frameList[i] = Frame{Tag: frame.Tag, Item: path}
		default:
			return tmpfiles, fmt.Errorf("frame for tag %s is neither a path nor an image", frame.Tag)
		}
	}
	return tmpfiles, nil
}
