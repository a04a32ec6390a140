package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FilePathValidator provides secure file path validation and sanitization
type FilePathValidator struct {
	// AllowedBaseDirs restricts file operations to specific base directories
	AllowedBaseDirs []string
	// AllowRelativePaths determines if relative paths are permitted
	AllowRelativePaths bool
	MaxPathLength      int
}

// NewFilePathValidator only accepts paths under the application's own
// directories and the temp dir.
func NewFilePathValidator() *FilePathValidator {
	homeDir, _ := os.UserHomeDir()
	return &FilePathValidator{
		AllowedBaseDirs: []string{
			filepath.Join(homeDir, ".cinemaddict"),
			filepath.Join(homeDir, ".config", "cinemaddict"),
			os.TempDir(),
		},
		MaxPathLength: 4096,
	}
}

// NewPermissiveFilePathValidator accepts any directory.
func NewPermissiveFilePathValidator() *FilePathValidator {
	return &FilePathValidator{
		AllowRelativePaths: true,
		MaxPathLength:      4096,
	}
}

// ValidateAndSanitize validates and normalizes a file path
func (v *FilePathValidator) ValidateAndSanitize(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("path cannot be empty")
	}
	if len(path) > v.MaxPathLength {
		return "", fmt.Errorf("path too long (max %d characters)", v.MaxPathLength)
	}
	if err := validateCharacters(path); err != nil {
		return "", err
	}

	normalized, err := v.normalizePath(path)
	if err != nil {
		return "", fmt.Errorf("path normalization failed: %w", err)
	}
	if err := v.validateBaseDirs(normalized); err != nil {
		return "", err
	}
	return normalized, nil
}

func validateCharacters(path string) error {
	if strings.Contains(path, "\x00") {
		return fmt.Errorf("path contains null bytes")
	}
	for _, char := range path {
		if char < 32 && char != '\t' {
			return fmt.Errorf("path contains control characters")
		}
	}
	for _, component := range strings.FieldsFunc(filepath.ToSlash(path), func(r rune) bool { return r == '/' }) {
		if component == ".." {
			return fmt.Errorf("directory traversal not allowed")
		}
	}
	return nil
}

// normalizePath expands the home directory and makes the path absolute
func (v *FilePathValidator) normalizePath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	} else if strings.HasPrefix(path, "~") {
		return "", fmt.Errorf("invalid tilde usage")
	}

	if !v.AllowRelativePaths && !filepath.IsAbs(path) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("cannot make path absolute: %w", err)
		}
		path = abs
	}
	return filepath.Clean(path), nil
}

// validateBaseDirs ensures the path is within allowed base directories
func (v *FilePathValidator) validateBaseDirs(path string) error {
	if len(v.AllowedBaseDirs) == 0 {
		return nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("cannot resolve absolute path: %w", err)
	}
	for _, baseDir := range v.AllowedBaseDirs {
		absBase, err := filepath.Abs(baseDir)
		if err != nil {
			continue
		}
		rel, err := filepath.Rel(absBase, absPath)
		if err != nil {
			continue
		}
		if rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return nil
		}
	}
	return fmt.Errorf("path not within allowed directories: %v", v.AllowedBaseDirs)
}

// ValidateFile ensures a file path is safe and does not name a directory.
func (v *FilePathValidator) ValidateFile(path string) (string, error) {
	validated, err := v.ValidateAndSanitize(path)
	if err != nil {
		return "", err
	}
	if info, err := os.Stat(validated); err == nil && info.IsDir() {
		return "", fmt.Errorf("path is a directory, not a file: %s", validated)
	}
	return validated, nil
}

// PathHandler resolves the files the application writes.
type PathHandler struct {
	validator *FilePathValidator
}

func NewSecurePathHandler() *PathHandler {
	return &PathHandler{validator: NewFilePathValidator()}
}

func NewPermissivePathHandler() *PathHandler {
	return &PathHandler{validator: NewPermissiveFilePathValidator()}
}

// DBPath validates the bbolt database path and creates its directory.
func (ph *PathHandler) DBPath(userPath string) (string, error) {
	if userPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		userPath = filepath.Join(homeDir, ".cinemaddict", "cinemaddict.db")
	}

	path, err := ph.validator.ValidateFile(userPath)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("creating database directory: %w", err)
	}
	return path, nil
}

// ConfigPath validates a configuration file path.
func (ph *PathHandler) ConfigPath(userPath string) (string, error) {
	if userPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		userPath = filepath.Join(homeDir, ".config", "cinemaddict", "config.toml")
	}
	return ph.validator.ValidateFile(userPath)
}
