package dataset

import (
	"archive/zip"
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Resolver locates and parses one kind of artifact for a dataset.
// Resolve returns ErrNotFound when its artifact does not exist; any other
// error means the artifact exists but could not be read.
type Resolver interface {
	Name() string
	Resolve(ctx context.Context, ref Ref) (*Table, error)
}

// DefaultResolvers returns the file-based chain for dir:
// plain file, zip archive, compressed file, workbook, and (when glob is true)
// a pattern match over the directory.
func DefaultResolvers(dir string, glob bool) []Resolver {
	resolvers := []Resolver{
		PlainFile{Dir: dir},
		ZipArchive{Dir: dir},
		CompressedFile{Dir: dir},
		Workbook{Dir: dir},
	}
	if glob {
		resolvers = append(resolvers, GlobMatch{Dir: dir})
	}
	return resolvers
}

// PlainFile reads <Dir>/<BaseFile> directly.
type PlainFile struct{ Dir string }

func (PlainFile) Name() string { return "plain" }

func (p PlainFile) Resolve(ctx context.Context, ref Ref) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return loadFile(ref, filepath.Join(p.Dir, ref.BaseFile))
}

// ZipArchive reads <Dir>/<stem>.zip, which must hold exactly one file.
type ZipArchive struct{ Dir string }

func (ZipArchive) Name() string { return "zip" }

func (z ZipArchive) Resolve(ctx context.Context, ref Ref) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return loadFile(ref, filepath.Join(z.Dir, ref.Stem()+".zip"))
}

// CompressedFile reads <Dir>/<BaseFile>.gz, .bz2 or .xz, first found wins.
type CompressedFile struct{ Dir string }

func (CompressedFile) Name() string { return "compressed" }

func (c CompressedFile) Resolve(ctx context.Context, ref Ref) (*Table, error) {
	for _, s := range compressionSuffixes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		t, err := loadFile(ref, filepath.Join(c.Dir, ref.BaseFile+s.ext))
		if errors.Is(err, ErrNotFound) {
			continue
		}
		return t, err
	}
	return nil, ErrNotFound
}

// Workbook reads <Dir>/<stem>.xlsx.
type Workbook struct{ Dir string }

func (Workbook) Name() string { return "xlsx" }

func (w Workbook) Resolve(ctx context.Context, ref Ref) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(ref.BaseFile), ".xlsx") {
		// PlainFile already covers it.
		return nil, ErrNotFound
	}
	return loadFile(ref, filepath.Join(w.Dir, ref.Stem()+".xlsx"))
}

// GlobMatch reads the first supported file (in lexical order) matching
// ref.Pattern inside Dir. Patterns use doublestar syntax: "Customers_*.{csv,zip}".
type GlobMatch struct{ Dir string }

func (GlobMatch) Name() string { return "glob" }

func (g GlobMatch) Resolve(ctx context.Context, ref Ref) (*Table, error) {
	if ref.Pattern == "" {
		return nil, ErrNotFound
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	matches, err := doublestar.Glob(os.DirFS(g.Dir), ref.Pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", ref.Pattern, err)
	}
	sort.Strings(matches)
	for _, m := range matches {
		if !supportedFile(m) {
			continue
		}
		return loadFile(ref, filepath.Join(g.Dir, filepath.FromSlash(m)))
	}
	return nil, ErrNotFound
}

// supportedFile reports whether loadFile knows how to read name.
func supportedFile(name string) bool {
	lower := strings.ToLower(name)
	if c := compressionByExt(lower); c != CompressionNone {
		lower = lower[:strings.LastIndex(lower, ".")]
	}
	switch path.Ext(lower) {
	case ".csv", ".zip", ".xlsx":
		return true
	}
	return false
}

// loadFile opens p and parses it according to its extension:
// .zip archives, .gz/.bz2/.xz streams, .xlsx workbooks, otherwise CSV.
// A missing file yields ErrNotFound.
func loadFile(ref Ref, p string) (*Table, error) {
	lower := strings.ToLower(p)
	if strings.HasSuffix(lower, ".zip") {
		return loadZip(ref, p)
	}

	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("open %s: %w", p, err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	var (
		r      io.Reader = br
		format           = "csv"
		inner            = lower
	)
	comp := compressionByExt(lower)
	if comp == CompressionNone && !strings.HasSuffix(lower, ".xlsx") {
		// A compressed stream saved under a plain name is still read.
		head, _ := br.Peek(len(xzMagic))
		comp = compressionByMagic(head)
	} else if comp != CompressionNone {
		inner = lower[:strings.LastIndex(lower, ".")]
	}
	if comp != CompressionNone {
		dr, closeFn, err := decompress(r, comp)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		defer closeFn()
		r = dr
		format = comp.String()
	}

	header, rows, err := parseByName(inner, r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p, err)
	}
	if format == "csv" && strings.HasSuffix(inner, ".xlsx") {
		format = "xlsx"
	}
	return &Table{Name: ref.Name, Source: p, Format: format, Header: header, Rows: rows}, nil
}

// loadZip reads the single tabular member of a zip archive.
func loadZip(ref Ref, p string) (*Table, error) {
	zr, err := zip.OpenReader(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("invalid zip archive %s: %w", p, err)
	}
	defer zr.Close()

	var members []*zip.File
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || strings.HasPrefix(f.Name, "__MACOSX/") {
			continue
		}
		members = append(members, f)
	}
	switch len(members) {
	case 0:
		return nil, fmt.Errorf("zip archive %s is empty", p)
	case 1:
	default:
		return nil, fmt.Errorf("multiple files found in zip archive %s (%d), expected exactly one", p, len(members))
	}

	member := members[0]
	rc, err := member.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s:%s: %w", p, member.Name, err)
	}
	defer rc.Close()

	header, rows, err := parseByName(strings.ToLower(member.Name), rc)
	if err != nil {
		return nil, fmt.Errorf("%s:%s: %w", p, member.Name, err)
	}
	return &Table{
		Name:   ref.Name,
		Source: p + ":" + member.Name,
		Format: "zip",
		Header: header,
		Rows:   rows,
	}, nil
}

// parseByName picks the parser from the (lowercased) file name.
func parseByName(name string, r io.Reader) ([]string, [][]string, error) {
	if strings.HasSuffix(name, ".xlsx") {
		return ParseWorkbook(r)
	}
	return ParseCSV(r)
}
