package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/JonMunkholm/orderlookup/internal/dataset"
)

// ErrCustomerNotFound is returned by History for an unknown customer id.
var ErrCustomerNotFound = errors.New("customer not found")

// AcceptedFormats lists the artifact forms the default resolver chain reads,
// as shown to users when data files are missing.
var AcceptedFormats = []string{".csv", ".zip", ".csv.gz", ".csv.bz2", ".csv.xz", ".xlsx"}

// MissingDatasetError reports datasets that no resolver could find.
// It matches dataset.ErrNotFound with errors.Is.
type MissingDatasetError struct {
	Missing []dataset.Ref
}

func (e *MissingDatasetError) Error() string {
	return fmt.Sprintf("dataset not found: %s", strings.Join(e.Files(), ", "))
}

func (e *MissingDatasetError) Is(target error) bool {
	return target == dataset.ErrNotFound
}

// Files returns the expected base file name of every missing dataset.
func (e *MissingDatasetError) Files() []string {
	files := make([]string, len(e.Missing))
	for i, ref := range e.Missing {
		files[i] = ref.BaseFile
	}
	return files
}

// Instructions tells the user which files to provide and in what forms.
func (e *MissingDatasetError) Instructions() string {
	return fmt.Sprintf(
		"Place these files in the data directory (or their .zip equivalents): %s. Accepted formats: %s",
		strings.Join(e.Files(), ", "),
		strings.Join(AcceptedFormats, ", "),
	)
}
