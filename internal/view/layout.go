// Package view renders the workflow UI as templ components.
package view

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
)

const appName = "Campaign Workflow"

// html accumulates markup; every dynamic value goes through text or attr.
type html struct {
	strings.Builder
}

func (h *html) raw(s string) { h.WriteString(s) }

func (h *html) rawf(format string, args ...interface{}) { fmt.Fprintf(&h.Builder, format, args...) }

func (h *html) text(s string) { h.WriteString(templ.EscapeString(s)) }

// tag writes <name class="...">text</name>.
func (h *html) tag(name, class, s string) {
	if class != "" {
		h.rawf(`<%s class="%s">`, name, templ.EscapeString(class))
	} else {
		h.rawf(`<%s>`, name)
	}
	h.text(s)
	h.rawf(`</%s>`, name)
}

func component(build func(ctx context.Context, h *html)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var h html
		build(ctx, &h)
		_, err := io.WriteString(w, h.String())
		return err
	})
}

func render(ctx context.Context, h *html, c templ.Component) {
	var b strings.Builder
	if err := c.Render(ctx, &b); err != nil {
		h.tag("p", "notice notice-error", err.Error())
		return
	}
	h.raw(b.String())
}

// PageTitle appends the app name unless title already carries it.
func PageTitle(title string) string {
	title = strings.TrimSpace(title)
	if title == "" || strings.HasSuffix(title, appName) {
		return appName
	}
	return title + " | " + appName
}

// Page wraps body in the document shell.
func Page(title string, body templ.Component) templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.tag("title", "", PageTitle(title))
		h.raw(`<style>` + stylesheet + `</style></head><body><main class="container">`)
		render(ctx, h, body)
		h.raw(`</main></body></html>`)
	})
}

// ErrorNotice is shown when the data source failed, as opposed to having no data.
func ErrorNotice(err error) templ.Component {
	return component(func(_ context.Context, h *html) {
		h.raw(`<div class="notice notice-error" role="alert">`)
		h.tag("strong", "", "Could not load data.")
		h.raw(" ")
		h.text(err.Error())
		h.raw(`</div>`)
	})
}

// EmptyState is the guidance shown for a record without data.
func EmptyState(message string) templ.Component {
	return component(func(_ context.Context, h *html) {
		h.tag("div", "empty-state", message)
	})
}

const stylesheet = `
body{font-family:system-ui,sans-serif;background:#fff8f6;color:#2d1f2b;margin:0}
.container{max-width:1080px;margin:0 auto;padding:2rem}
.banner{background:#fde8e4;border-left:4px solid #ff6b6b;padding:.75rem 1rem;margin-bottom:1rem}
.notice-error{background:#fde2e2;border-left:4px solid #c0392b;padding:.75rem 1rem;margin:1rem 0}
.empty-state{color:#6b5b66;padding:2rem;text-align:center;border:1px dashed #e0c8cf;border-radius:8px}
.tabs{display:flex;gap:.5rem;border-bottom:1px solid #e0c8cf;margin-bottom:1rem}
.tabs a{padding:.5rem 1rem;text-decoration:none;color:inherit}
.tabs a.active{border-bottom:3px solid #ff6b6b;font-weight:600}
.progress{background:#f1e4e8;border-radius:4px;height:8px}
.progress span{display:block;background:#ff6b6b;height:8px;border-radius:4px}
.chip{display:inline-block;padding:.1rem .5rem;border-radius:999px;font-size:.85rem;background:#f1e4e8}
.chip-ok{background:#d4f4dd}.chip-warn{background:#fff3cd}.chip-error{background:#fde2e2}
table{border-collapse:collapse;width:100%}td,th{padding:.4rem;border-bottom:1px solid #f1e4e8;text-align:left}
`
