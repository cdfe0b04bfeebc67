package faces

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Default is the built-in face set.
func Default() []string {
	return []string{
		"♠", "♥", "♦", "♣", "★", "☀", "☂", "♪",
		"☯", "⚑", "✿", "☘", "☕", "⚓", "✈", "☎",
		"♞", "⌘", "☃", "✂", "⚙", "♛", "☾", "✉",
	}
}

// ForValue returns the face for a 1-based pair value, cycling through the set.
func ForValue(set []string, value int) string {
	if len(set) == 0 || value < 1 {
		return fmt.Sprint(value)
	}
	return set[(value-1)%len(set)]
}

// Load reads faces from a list of paths (files or directories). Each
// non-empty line is one face; lines starting with # are comments.
func Load(paths []string) ([]string, error) {
	var faces []string

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to access path %s: %w", path, err)
		}

		if info.IsDir() {
			entries, err := os.ReadDir(path)
			if err != nil {
				return nil, fmt.Errorf("failed to read dir %s: %w", path, err)
			}
			for _, entry := range entries {
				if entry.IsDir() {
					continue
				}
				f, err := loadFile(filepath.Join(path, entry.Name()))
				if err != nil {
					return nil, err
				}
				faces = append(faces, f...)
			}
			continue
		}

		f, err := loadFile(path)
		if err != nil {
			return nil, err
		}
		faces = append(faces, f...)
	}

	if len(faces) == 0 {
		return nil, fmt.Errorf("no faces found in %s", strings.Join(paths, ", "))
	}
	return faces, nil
}

func loadFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	var faces []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		faces = append(faces, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan file %s: %w", path, err)
	}
	return faces, nil
}
