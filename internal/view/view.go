// Package view renders the editor templates. It keeps the parsed templates
// in a small cache and exposes the formatting helpers the pages need.
package view

import (
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/manteauvert/go-papiers/i18n"
)

var tplCache = struct {
	sync.RWMutex
	m map[string]*template.Template
}{m: map[string]*template.Template{}}

// Funcs returns the helper functions available inside templates. Monetary
// values are formatted to two decimals here, at display time only.
func Funcs(lang string) template.FuncMap {
	return template.FuncMap{
		"money": func(v float64) string {
			return decimal.NewFromFloat(v).StringFixed(2)
		},
		"t": func(code string) string {
			return i18n.T(lang, code)
		},
		"date": func(layout string, v interface{ Format(string) string }) string {
			return v.Format(layout)
		},
	}
}

// Render executes the named template inside the shared layout and writes it
// to w. Parsed templates are cached per name and language.
func Render(w http.ResponseWriter, baseDir, name, lang string, data any) error {
	key := lang + ":" + name

	tplCache.RLock()
	tpl, ok := tplCache.m[key]
	tplCache.RUnlock()

	if !ok {
		var err error
		tpl, err = template.New("layout.html").Funcs(Funcs(lang)).ParseFiles(
			filepath.Join(baseDir, "layout.html"),
			filepath.Join(baseDir, name),
		)
		if err != nil {
			return fmt.Errorf("view: parse %s: %w", name, err)
		}
		tplCache.Lock()
		tplCache.m[key] = tpl
		tplCache.Unlock()
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tpl.ExecuteTemplate(w, "layout.html", data); err != nil {
		return fmt.Errorf("view: execute %s: %w", name, err)
	}
	return nil
}
