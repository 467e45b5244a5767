package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Spreadsheet extensions the loader and the report writer accept.
var workbookExtensions = []string{".xlsx", ".xlsm"}

// FileValidator checks workbook paths before the CLI reads or writes them
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger.With(slog.String("component", "file_validator")),
	}
}

// ValidateWorkbook checks that path names a readable spreadsheet.
// A missing file returns an error satisfying os.IsNotExist.
func (v *FileValidator) ValidateWorkbook(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		v.logger.Error("Failed to stat workbook",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return err
	}
	if info.IsDir() {
		v.logger.Error("Path is a directory, not a workbook",
			slog.String("path", path))
		return fmt.Errorf("%s is a directory, not a workbook", path)
	}
	if err := v.checkExtension(path); err != nil {
		return err
	}

	// Office lock files share the workbook extension.
	if strings.HasPrefix(filepath.Base(path), "~$") {
		v.logger.Warn("Skipping temporary Excel file",
			slog.String("file", path))
		return fmt.Errorf("file %s is a temporary Excel file", path)
	}

	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("Workbook is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return fmt.Errorf("workbook %s is not readable: %w", path, err)
	}
	file.Close()

	v.logger.Debug("Workbook validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateOutputWorkbook ensures the report can be written at path: the
// extension is a spreadsheet one and the parent directory exists and is
// writable.
func (v *FileValidator) ValidateOutputWorkbook(path string) error {
	if err := v.checkExtension(path); err != nil {
		return err
	}
	return v.ValidateOutputDirectory(filepath.Dir(path))
}

// ValidateOutputDirectory ensures output directory exists or can be created
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	testFile := filepath.Join(dir, ".write_test")
	file, err := os.Create(testFile)
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("output directory %s is not writable: %w", dir, err)
	}
	file.Close()
	os.Remove(testFile)

	v.logger.Debug("Output directory validated",
		slog.String("directory", dir))
	return nil
}

func (v *FileValidator) checkExtension(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range workbookExtensions {
		if ext == want {
			return nil
		}
	}
	v.logger.Error("File is not an Excel workbook",
		slog.String("file", path),
		slog.String("extension", ext))
	return fmt.Errorf("file %s is not an Excel workbook (extension: %q)", path, ext)
}
