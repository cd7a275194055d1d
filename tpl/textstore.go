package tpl

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"path"
	"strings"
	"text/template"
	"unicode/utf8"
)

const FileSuffix = ".tmpl"

var ErrTemplateNotFound = errors.New("tpl: template not found")

// TextTemplateStore holds plain-text templates keyed by their path
// relative to the load root, without FileSuffix ("history/list")
type TextTemplateStore struct {
	Base  map[string]*template.Template // each file → one template
	Funcs template.FuncMap              // applied to every template parsed after it is set
}

func NewTextTemplateStore() *TextTemplateStore {
	return &TextTemplateStore{
		Base: make(map[string]*template.Template),
	}
}

// LoadBaseTemplates parses every FileSuffix file under root in fsys.
// Works the same over os.DirFS and embed.FS
func (s *TextTemplateStore) LoadBaseTemplates(fsys fs.FS, root string) error {
	root = path.Clean(root)
	err := fs.WalkDir( // Pre-order Depth-first Traversal
		fsys,
		root,
		func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			name := d.Name()
			// Skip Hidden Files & Hidden Directories
			if strings.HasPrefix(name, ".") && p != root {
				if d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if d.IsDir() || !strings.HasSuffix(p, FileSuffix) {
				return nil
			}
			data, err := fs.ReadFile(fsys, p)
			if err != nil {
				return err
			}
			if !utf8.Valid(data) {
				return fmt.Errorf("file %s is not valid UTF-8", p)
			}
			// template key: relative path to the template root without extension
			rel := strings.TrimPrefix(strings.TrimPrefix(p, root), "/")
			key := strings.TrimSuffix(rel, FileSuffix)
			if _, exists := s.Base[key]; exists {
				return fmt.Errorf("duplicate template key detected: %s (file=%s)", key, p)
			}
			t := template.New(key)
			if s.Funcs != nil {
				t = t.Funcs(s.Funcs)
			}
			t, err = t.Parse(string(data))
			if err != nil {
				return fmt.Errorf("parse error in %s: %w", p, err)
			}
			s.Base[key] = t
			return nil
		},
	)
	if err != nil {
		return err
	}
	log.Printf("[INFO][TEMPLATE] Loaded %d templates from %s", len(s.Base), root)
	return nil
}

// Execute writes template key applied to data into w
func (s *TextTemplateStore) Execute(w io.Writer, key string, data any) error {
	t, ok := s.Base[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrTemplateNotFound, key)
	}
	return t.Execute(w, data)
}
